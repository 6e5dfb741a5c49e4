package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	e := New(CodeCompoundNotFound, "compound not found")
	assert.Equal(t, "[CMP_001] compound not found", e.Error())

	withDetail := e.WithDetail("hash=a1b2c3d4")
	assert.Equal(t, "[CMP_001] compound not found: hash=a1b2c3d4", withDetail.Error())
	// WithDetail must not mutate the receiver.
	assert.Empty(t, e.Detail)
}

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(nil, CodeDatabaseError, "should be nil"))

	cause := stderrors.New("connection refused")
	wrapped := Wrap(cause, CodeDatabaseError, "query failed")
	require.NotNil(t, wrapped)
	assert.Equal(t, CodeDatabaseError, wrapped.Code)
	assert.ErrorIs(t, wrapped, cause)
}

func TestWrap_PreservesCodeForUnknown(t *testing.T) {
	inner := New(CodeCodeNotInLibrary, "code not in library")
	outer := Wrap(inner, CodeUnknown, "conversion failed")
	assert.Equal(t, CodeCodeNotInLibrary, outer.Code)
}

func TestIsCode(t *testing.T) {
	inner := New(CodeNotationSyntax, "bad linkage block")
	outer := fmt.Errorf("handler: %w", inner)

	assert.True(t, IsCode(outer, CodeNotationSyntax))
	assert.False(t, IsCode(outer, CodeNotationBadStereo))
	assert.False(t, IsCode(nil, CodeNotationSyntax))
}

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"generic_not_found", NotFound("missing"), true},
		{"compound_not_found", New(CodeCompoundNotFound, "missing"), true},
		{"code_not_in_library", New(CodeCodeNotInLibrary, "missing"), true},
		{"conflict", Conflict("exists"), false},
		{"plain_error", stderrors.New("boom"), false},
		{"wrapped", fmt.Errorf("outer: %w", New(CodeCompoundNotFound, "missing")), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsNotFound(tt.err))
		})
	}
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, CodeOK, GetCode(nil))
	assert.Equal(t, CodeUnknown, GetCode(stderrors.New("plain")))
	assert.Equal(t, CodeConversionFailed, GetCode(New(CodeConversionFailed, "x")))
}

func TestErrorCode_HTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, CodeCompoundNotFound.HTTPStatus())
	assert.Equal(t, http.StatusBadRequest, CodeNotationSyntax.HTTPStatus())
	assert.Equal(t, http.StatusUnprocessableEntity, CodeNotationUnsupported.HTTPStatus())
	assert.Equal(t, http.StatusInternalServerError, ErrorCode("BOGUS_999").HTTPStatus())
}
