package parallel

import (
	"errors"
	"fmt"
)

// TaskMetaError exposes correlation metadata for a task failure. Any error
// found in a Result implements it, wrapping the underlying error returned (or
// panicked) by the task together with the task's submission id.
type TaskMetaError interface {
	error
	Unwrap() error
	TaskID() (int, bool)
}

type taskTaggedError struct {
	err error
	id  int
}

func newTaskError(err error, id int) error {
	if err == nil {
		return nil
	}
	return &taskTaggedError{err: err, id: id}
}

func (e *taskTaggedError) Error() string { return e.err.Error() }
func (e *taskTaggedError) Unwrap() error { return e.err }

func (e *taskTaggedError) TaskID() (int, bool) { return e.id, true }

func (e *taskTaggedError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			_, _ = fmt.Fprintf(s, "task(id=%d): %+v", e.id, e.err)
			return
		}
		fallthrough
	case 's':
		_, _ = fmt.Fprint(s, e.Error())
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", e.Error())
	}
}

// ExtractTaskID returns the failing task's id from err if present.
func ExtractTaskID(err error) (int, bool) {
	var tme TaskMetaError
	if errors.As(err, &tme) {
		return tme.TaskID()
	}
	return 0, false
}
