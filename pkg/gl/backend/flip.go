package backend

// flipRows returns a copy of an image with its rows in reverse order.
func flipRows(data []byte, height int) []byte {
	if height <= 1 || len(data)%height != 0 {
		return data
	}
	stride := len(data) / height
	out := make([]byte, len(data))
	for y := 0; y < height; y++ {
		copy(out[y*stride:(y+1)*stride], data[(height-1-y)*stride:(height-y)*stride])
	}
	return out
}
