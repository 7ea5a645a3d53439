package gfx

// Mat4 is a column-major 4x4 matrix, the layout GL expects with transpose
// disabled.
type Mat4 [16]float32

// Ortho2D maps pixel coordinates with a top-left origin onto clip space:
// (0,0) goes to (-1,1) and (width,height) to (1,-1).
func Ortho2D(width, height float32) Mat4 {
	return Mat4{
		2 / width, 0, 0, 0,
		0, -2 / height, 0, 0,
		0, 0, 0, 0,
		-1, 1, 0, 1,
	}
}

// Transform applies m to the point (x, y, 0, 1) and returns its x and y.
func (m Mat4) Transform(x, y float32) (float32, float32) {
	return m[0]*x + m[4]*y + m[12], m[1]*x + m[5]*y + m[13]
}
