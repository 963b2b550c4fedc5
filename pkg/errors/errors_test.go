package errors

import (
	stderr "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError(t *testing.T) {
	e1 := New("cause1")
	e2 := New("cause2").Wrap(e1)
	e := New("dummy").Wrap(e2)
	e3 := e.Unwrap()
	assert.True(t, Is(e, e1))
	assert.True(t, Is(e, e2))
	assert.True(t, e3 == e2)
}

func TestWrapLeavesSentinelUntouched(t *testing.T) {
	sentinel := New("not found")
	cause := stderr.New("no such key")

	wrapped := sentinel.Wrap(cause)

	require.NoError(t, sentinel.Unwrap())
	assert.Equal(t, "not found", sentinel.Error())
	assert.Equal(t, "not found: no such key", wrapped.Error())
	assert.True(t, Is(wrapped, sentinel))
	assert.True(t, Is(wrapped, cause))

	rewrapped := wrapped.Wrap(stderr.New("again"))
	assert.True(t, Is(rewrapped, sentinel))
	assert.False(t, Is(rewrapped, New("not found")))
}

func TestWrapf(t *testing.T) {
	sentinel := New("clash")
	err := fmt.Errorf("context: %w", sentinel.Wrapf("%s vs %s", "a", "b"))

	assert.True(t, Is(err, sentinel))
	assert.Equal(t, "context: clash: a vs b", err.Error())

	var target *Error
	require.True(t, As(err, &target))
	assert.Equal(t, "clash: a vs b", target.Error())
}
