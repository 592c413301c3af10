package pipeline

import (
	"errors"
	"fmt"

	"github.com/teemow/inboxpilot/internal/artifact"
)

// PreconditionError signals that a stage's input artifact is missing.
// The stage did not run; earlier stages have to produce the artifact
// first.
type PreconditionError struct {
	Stage   string
	Missing string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("stage %s requires artifact %s; run the earlier stages first", e.Stage, e.Missing)
}

// asPrecondition converts a missing-artifact load failure into a
// PreconditionError, passing other errors through.
func asPrecondition(stage string, err error) error {
	var notFound *artifact.ErrNotFound
	if errors.As(err, &notFound) {
		return &PreconditionError{Stage: stage, Missing: notFound.Path}
	}
	return err
}
