package metaball

import _ "embed"

var (
	//go:embed shaders/quad.vert
	quadVertexSource string
	//go:embed shaders/quad.frag
	quadFragmentSource string
	//go:embed shaders/frame.vert
	frameVertexSource string
	//go:embed shaders/frame.frag
	frameFragmentSource string
)
