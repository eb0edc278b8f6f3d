package errors_test

import (
	stderrors "errors"
	"testing"

	perrors "github.com/cunservicios/portal/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestWrapf(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		require.NoError(t, perrors.Wrapf(nil, "load %s", "token"))
	})

	t.Run("wraps with context", func(t *testing.T) {
		err := perrors.Wrapf(perrors.ErrNotFound, "load %s", "token")
		require.EqualError(t, err, "load token: not found")
		require.True(t, perrors.Is(err, perrors.ErrNotFound))
		require.True(t, stderrors.Is(err, perrors.ErrNotFound))
	})
}
