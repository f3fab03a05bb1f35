package shared

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError(t *testing.T) {
	t.Run("message only", func(t *testing.T) {
		err := NewDomainError(CodeNotFound, "missing")
		assert.Equal(t, "missing", err.Error())
		assert.Nil(t, errors.Unwrap(err))
	})

	t.Run("wrapped cause", func(t *testing.T) {
		cause := errors.New("boom")
		err := WrapDomainError(CodeUpstreamError, "fetch failed", cause)

		assert.Equal(t, "fetch failed: boom", err.Error())
		assert.ErrorIs(t, err, cause)

		var de *DomainError
		assert.True(t, errors.As(error(err), &de))
		assert.Equal(t, CodeUpstreamError, de.Code)
	})
}
