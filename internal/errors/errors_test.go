package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DerivesCategory(t *testing.T) {
	tests := []struct {
		code   string
		expect Category
	}{
		{ErrCodeConfigInvalid, CategoryConfig},
		{ErrCodeSourceUnavailable, CategorySource},
		{ErrCodeInvalidInput, CategoryValidation},
		{ErrCodeInternal, CategoryInternal},
		{"bogus", CategoryInternal},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expect, New(tt.code, "msg", nil).Category)
		})
	}
}

func TestError_Format(t *testing.T) {
	err := New(ErrCodeCollectionCorrupt, "bad sales document", nil)
	assert.Equal(t, "[ERR_203_COLLECTION_CORRUPT] bad sales document", err.Error())
}

func TestError_IsMatchesByCode(t *testing.T) {
	err := SourceError("open db", stderrors.New("disk gone"))

	assert.True(t, stderrors.Is(err, New(ErrCodeSourceUnavailable, "", nil)))
	assert.False(t, stderrors.Is(err, New(ErrCodeCollectionCorrupt, "", nil)))
}

func TestError_UnwrapChain(t *testing.T) {
	cause := stderrors.New("root cause")
	err := fmt.Errorf("outer: %w", Wrap(ErrCodeInternal, cause))

	assert.True(t, stderrors.Is(err, cause))

	var typed *Error
	require.True(t, stderrors.As(err, &typed))
	assert.Equal(t, ErrCodeInternal, typed.Code)
	assert.Equal(t, "root cause", typed.Message)
}

func TestWrap_NilIsNil(t *testing.T) {
	assert.Nil(t, Wrap(ErrCodeInternal, nil))
}

func TestWithDetail(t *testing.T) {
	err := ValidationError("bad limit", nil).
		WithDetail("field", "limit").
		WithDetail("value", "-1")

	assert.Equal(t, map[string]string{"field": "limit", "value": "-1"}, err.Details)
}
