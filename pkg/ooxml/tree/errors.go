package tree

import (
	"errors"
	"fmt"
)

var (
	// ErrUnbalancedStream means a close event arrived with no open element,
	// a second root was opened, or the stream ended with elements still open.
	ErrUnbalancedStream = errors.New("unbalanced event stream")
	// ErrTextOutsideElement means character data arrived with no open element.
	ErrTextOutsideElement = errors.New("text outside any element")
)

// StreamError reports a structural failure while building a tree.
type StreamError struct {
	Err   error
	Event int  // 1-based index of the offending event
	Name  Name // element involved, if any
}

func (e *StreamError) Error() string {
	if e.Name.Local != "" {
		return fmt.Sprintf("event %d (%s): %v", e.Event, e.Name, e.Err)
	}
	return fmt.Sprintf("event %d: %v", e.Event, e.Err)
}

func (e *StreamError) Unwrap() error {
	return e.Err
}
