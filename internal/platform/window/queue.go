package window

import "github.com/kjkrol/metaball/internal/platform"

// eventQueue buffers events produced by platform callbacks until the render
// loop drains them.
type eventQueue chan platform.Event

func newEventQueue(size int) eventQueue {
	if size == 0 {
		size = 64
	}
	return make(eventQueue, size)
}

func (q eventQueue) push(e platform.Event) {
	select {
	case q <- e:
	default:
		// drop if buffer full to avoid blocking the producer
	}
}

func (q eventQueue) next() (platform.Event, bool) {
	select {
	case e := <-q:
		return e, true
	default:
		return nil, false
	}
}
