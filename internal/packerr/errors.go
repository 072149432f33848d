package packerr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation    = errors.New("validation error")
	ErrEnvironment   = errors.New("environment error")
	ErrMissingInput  = errors.New("missing input file")
	ErrSerialization = errors.New("serialization error")
	ErrArchive       = errors.New("archive error")
	ErrCanceled      = errors.New("build canceled")
	// ErrInternal marks failures that are bugs rather than bad input or a bad
	// environment, such as a recovered panic.
	ErrInternal = errors.New("internal error")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker. The marker should be one of the exported sentinel
// errors above; a nil marker is treated as ErrEnvironment.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrEnvironment
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Kind returns a short label for the marker carried by err, suitable for
// structured logs and JSON output.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrEnvironment):
		return "environment"
	case errors.Is(err, ErrMissingInput):
		return "missing_input"
	case errors.Is(err, ErrSerialization):
		return "serialization"
	case errors.Is(err, ErrArchive):
		return "archive"
	case errors.Is(err, ErrCanceled):
		return "canceled"
	case errors.Is(err, ErrInternal):
		return "internal"
	default:
		return "internal"
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "pack failure"
	}
	return strings.Join(parts, ": ")
}
