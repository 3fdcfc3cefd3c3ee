package cli

import (
	"context"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/spivocab/internal/attempt"
)

// AttemptSource reads the whole attempt log
type AttemptSource interface {
	All(ctx context.Context) ([]attempt.Attempt, error)
}

// AttemptBulkRecorder appends many attempts in one write
type AttemptBulkRecorder interface {
	AppendAll(ctx context.Context, attempts []attempt.Attempt) error
}

// ExportAttempts writes the valid attempts of the log as a YAML sequence
func ExportAttempts(ctx context.Context, output io.Writer, source AttemptSource) (int, error) {
	attempts, err := source.All(ctx)
	if err != nil {
		return 0, fmt.Errorf("source.All > %w", err)
	}

	encoder := yaml.NewEncoder(output)
	encoder.SetIndent(2)
	if err := encoder.Encode(attempts); err != nil {
		return 0, fmt.Errorf("encoder.Encode > %w", err)
	}
	if err := encoder.Close(); err != nil {
		return 0, fmt.Errorf("encoder.Close > %w", err)
	}
	return len(attempts), nil
}

// CopyAttempts appends every valid attempt of source to the end of destination
func CopyAttempts(ctx context.Context, source AttemptSource, destination AttemptBulkRecorder) (int, error) {
	attempts, err := source.All(ctx)
	if err != nil {
		return 0, fmt.Errorf("source.All > %w", err)
	}
	if err := destination.AppendAll(ctx, attempts); err != nil {
		return 0, fmt.Errorf("destination.AppendAll > %w", err)
	}
	return len(attempts), nil
}
