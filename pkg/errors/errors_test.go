package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	err := New(ErrorTypeLocator, `a[href="/x/followers/"]`, "element has no bounding box")
	assert.Equal(t, `locator error: element has no bounding box (a[href="/x/followers/"])`, err.Error())

	wrapped := Wrap(ErrorTypeListRender, "", "list view failed to render", context.DeadlineExceeded)
	assert.Equal(t, "list_render_timeout error: list view failed to render: context deadline exceeded", wrapped.Error())
	assert.True(t, stderrors.Is(wrapped, context.DeadlineExceeded))
}

func TestTypeOf(t *testing.T) {
	base := New(ErrorTypeNoDialog, "", "dialog not present")
	chained := fmt.Errorf("collect followers: %w", base)

	assert.Equal(t, ErrorTypeNoDialog, TypeOf(chained))
	assert.True(t, IsType(chained, ErrorTypeNoDialog))
	assert.False(t, IsType(chained, ErrorTypeLocator))
	assert.Equal(t, ErrorTypeUnknown, TypeOf(stderrors.New("plain")))
	assert.False(t, IsType(nil, ErrorTypeUnknown))
}

func TestIsFatal(t *testing.T) {
	tests := []struct {
		errorType ErrorType
		fatal     bool
	}{
		{ErrorTypeLocator, true},
		{ErrorTypeListRender, true},
		{ErrorTypeNavigation, true},
		{ErrorTypeBrowser, true},
		{ErrorTypeUnknown, true},
		{ErrorTypeNoDialog, false},
		{ErrorTypeNoScrollContainer, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.errorType), func(t *testing.T) {
			assert.Equal(t, tt.fatal, IsFatal(tt.errorType))
		})
	}
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(ErrorTypeBrowser))
	assert.False(t, IsRetryable(ErrorTypeLocator))
	assert.False(t, IsRetryable(ErrorTypeListRender))
	assert.False(t, IsRetryable(ErrorTypeNavigation))
}
