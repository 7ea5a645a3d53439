package platform

type Event interface{}

// Resize reports a new logical surface size.
type Resize struct {
	Width, Height int
}
type KeyPress struct {
	Code  uint64
	Label string
}
type DestroyNotify struct{}
