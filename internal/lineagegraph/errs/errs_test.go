package errs_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kiosk404/lineagegraph/internal/lineagegraph/errs"
)

func TestIsRetryable_ExactSet(t *testing.T) {
	retryable := []*errs.Error{
		errs.Timeout(100),
		errs.PoolExhausted("gate full"),
		errs.ConcurrentModification("node xyz"),
	}
	for _, e := range retryable {
		assert.Truef(t, e.IsRetryable(), "%s should be retryable", e.Kind)
	}

	terminal := []*errs.Error{
		errs.SessionNotFound("sid"),
		errs.NodeNotFound("nid"),
		errs.Validation("field", "bad value"),
		errs.New(errs.KindOther, "misc"),
	}
	for _, e := range terminal {
		assert.Falsef(t, e.IsRetryable(), "%s should not be retryable", e.Kind)
	}
}

func TestAs_UnwrapsWrappedError(t *testing.T) {
	cause := errors.New("disk full")
	wrapped := errs.Wrap(errs.KindStorage, "write node", cause)

	e, ok := errs.As(wrapped)
	assert.True(t, ok)
	assert.Equal(t, errs.KindStorage, e.Kind)
	assert.ErrorIs(t, wrapped, cause)
}

func TestIsRetryable_NonLineageError(t *testing.T) {
	assert.False(t, errs.IsRetryable(errors.New("plain error")))
}
