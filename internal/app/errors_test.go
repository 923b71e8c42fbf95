package app

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorWrapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"not found", NotFoundError("goal abc"), ErrNotFound},
		{"validation", ValidationError("rating out of range"), ErrValidation},
		{"external", ExternalError("timeout", errors.New("dial tcp")), ErrExternal},
		{"external no cause", ExternalError("status 500", nil), ErrExternal},
		{"config missing", ConfigMissingError("no credentials"), ErrConfigMissing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.sentinel)
		})
	}
}

func TestExternalErrorKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := ExternalError("boards fetch failed", cause)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Contains(t, err.Error(), "boards fetch failed")
}

func TestSentinelsAreDistinct(t *testing.T) {
	assert.NotErrorIs(t, ValidationError("x"), ErrNotFound)
	assert.NotErrorIs(t, NotFoundError("x"), ErrValidation)
	assert.NotErrorIs(t, ConfigMissingError("x"), ErrExternal)
}
