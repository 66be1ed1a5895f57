package protocol

import "errors"

// MaxTreeDepth limits the nesting depth of decoded trees. Operations carry
// trees too, so the same limit applies inside operation batches.
const MaxTreeDepth = 256

// ErrMaxDepthExceeded is returned when a decoded tree nests too deeply.
var ErrMaxDepthExceeded = errors.New("protocol: maximum nesting depth exceeded")

// depthContext tracks the current decoding depth for recursive structures.
type depthContext struct {
	current int
	max     int
}

// newDepthContext creates a new depth context with the given maximum.
func newDepthContext(max int) *depthContext {
	return &depthContext{max: max}
}

// enter increments the depth and returns an error if the limit would be exceeded.
// The depth is only incremented on success.
func (dc *depthContext) enter() error {
	if dc.current >= dc.max {
		return ErrMaxDepthExceeded
	}
	dc.current++
	return nil
}

// leave decrements the depth.
func (dc *depthContext) leave() {
	dc.current--
}
