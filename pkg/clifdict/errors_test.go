package clifdict

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"invalid dictionary", fmt.Errorf("diff: %w", ErrInvalidDictionary), ExitConfigError},
		{"invalid config", ErrInvalidConfig, ExitConfigError},
		{"input not found", fmt.Errorf("read schema: %w", ErrInputNotFound), ExitInputError},
		{"fs not exist", &fs.PathError{Op: "open", Path: "schema.sql", Err: fs.ErrNotExist}, ExitInputError},
		{"fs permission", fs.ErrPermission, ExitInputError},
		{"cobra arg count", errors.New("accepts 2 arg(s), received 0"), ExitUsageError},
		{"cobra unknown flag", errors.New("unknown flag: --frobnicate"), ExitUsageError},
		{"unclassified", errors.New("boom"), ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCodeForError(tt.err))
		})
	}
}
