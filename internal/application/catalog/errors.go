package catalog

import (
	"errors"
	"fmt"

	"github.com/marketplace/catalogue/internal/domain/shared"
)

// OrchestrationError reports the first fatal step of a write sequence.
// Steps already completed before it are left in place; there is no
// compensation, so callers must treat the write as partially applied.
type OrchestrationError struct {
	Step    string
	Message string
}

// Error implements the error interface
func (e *OrchestrationError) Error() string {
	return fmt.Sprintf("orchestration step %s failed: %s", e.Step, e.Message)
}

func newOrchestrationError(step, message string) *OrchestrationError {
	return &OrchestrationError{Step: step, Message: message}
}

func isNotFound(err error) bool {
	return errors.Is(err, shared.ErrNotFound)
}
