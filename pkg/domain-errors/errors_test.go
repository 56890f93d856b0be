package derrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasCode(t *testing.T) {
	err := New(CodeConflict, "handle has been used")
	assert.True(t, HasCode(err, CodeConflict))
	assert.False(t, HasCode(err, CodeUnauthorized))
	assert.False(t, HasCode(errors.New("plain"), CodeConflict))

	// Codes survive fmt wrapping.
	wrapped := fmt.Errorf("login: %w", err)
	assert.True(t, HasCode(wrapped, CodeConflict))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, CodeInternal, "failed to register")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to register", MessageOf(err))
	assert.NotContains(t, MessageOf(err), "connection refused")
}

func TestCodeOfDefaultsToInternal(t *testing.T) {
	assert.Equal(t, CodeInternal, CodeOf(errors.New("unclassified")))
	assert.Equal(t, CodeValidation, CodeOf(New(CodeValidation, "too short")))
}

func TestToHTTPStatus(t *testing.T) {
	cases := map[Code]int{
		CodeValidation:   http.StatusUnprocessableEntity,
		CodeBadRequest:   http.StatusBadRequest,
		CodeConflict:     http.StatusConflict,
		CodeUnauthorized: http.StatusUnauthorized,
		CodeNotFound:     http.StatusNotFound,
		CodeInternal:     http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, ToHTTPStatus(code), string(code))
	}
	assert.Equal(t, http.StatusInternalServerError, ToHTTPStatus(Code("unknown")))
}
