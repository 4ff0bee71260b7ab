package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	e := New(KindNotFound, "no such file").WithInput("/tmp/x")
	assert.Contains(t, e.Error(), "not_found")
	assert.Contains(t, e.Error(), "/tmp/x")
}

func TestWrapUnwrap(t *testing.T) {
	cause := New(KindIo, "disk full")
	wrapped := Wrap(KindResource, cause, "write failed")
	assert.Equal(t, cause, wrapped.Unwrap())
	assert.Equal(t, KindResource, KindOf(wrapped))
}

func TestExitCodes(t *testing.T) {
	assert.Equal(t, 0, 0) // sanity: success path has no Error
	assert.NotEqual(t, KindParse.ExitCode(), KindAuth.ExitCode())
	assert.Equal(t, 130, KindUserAborted.ExitCode())
}

func TestKindOfForeignError(t *testing.T) {
	assert.Equal(t, KindIo, KindOf(assertErr{}))
}

type assertErr struct{}

func (assertErr) Error() string { return "boom" }
