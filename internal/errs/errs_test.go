package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Message(t *testing.T) {
	err := &Error{Code: 1001, Message: "Device not found"}
	assert.Equal(t, "API error: 1001 - Device not found", err.Error())
}

func TestError_IsSentinels(t *testing.T) {
	wrapped := fmt.Errorf("add schedule: %w", Validation("Invalid hours"))
	assert.True(t, errors.Is(wrapped, ErrValidation))
	assert.False(t, errors.Is(wrapped, ErrNotFound))

	nf := NotFound("Effect 3 not found")
	assert.True(t, errors.Is(nf, ErrNotFound))
	assert.False(t, errors.Is(nf, ErrValidation))

	remote := &Error{Code: 1001, Message: "Device not found"}
	assert.False(t, errors.Is(remote, ErrNotFound))
}

func TestCodeOf(t *testing.T) {
	code, ok := CodeOf(fmt.Errorf("wrap: %w", &Error{Code: 7, Message: "x"}))
	assert.True(t, ok)
	assert.Equal(t, 7, code)

	_, ok = CodeOf(errors.New("plain"))
	assert.False(t, ok)
}
