package netbackend

import (
	"bufio"
	"crypto/subtle"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstantTimeCompareMatches(t *testing.T) {
	psk := []byte("correct-horse-battery-staple")
	assert.Equal(t, 1, subtle.ConstantTimeCompare(psk, []byte("correct-horse-battery-staple")))
	assert.Equal(t, 0, subtle.ConstantTimeCompare(psk, []byte("wrong-password-wrong-password")))
}

func TestLimiterAllowsUpToMaxFailures(t *testing.T) {
	s := NewServer([]byte("psk"), nil, DefaultLimits())
	lim := s.limiterFor("1.2.3.4")
	allowed := 0
	for i := 0; i < MaxAuthFailures+2; i++ {
		if lim.Allow() {
			allowed++
		}
	}
	assert.LessOrEqual(t, allowed, MaxAuthFailures)
}

func TestAcquireSlotRespectsMaxConnections(t *testing.T) {
	s := NewServer([]byte("psk"), nil, Limits{MaxConnections: 2})
	require.True(t, s.acquireSlot())
	require.True(t, s.acquireSlot())
	assert.False(t, s.acquireSlot())

	s.releaseSlot()
	assert.True(t, s.acquireSlot())
}

func TestNewServerFallsBackToDefaultLimits(t *testing.T) {
	s := NewServer([]byte("psk"), nil, Limits{})
	assert.Equal(t, DefaultMaxConnections, s.limits.MaxConnections)
	assert.Equal(t, DefaultLimits().IdleTimeout, s.limits.IdleTimeout)
}

func TestReadLineReturnsLineUpToNewline(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("hello world\n"))
	line, overlong, err := readLine(r, MaxLineLen)
	require.NoError(t, err)
	assert.False(t, overlong)
	assert.Equal(t, "hello world", line)
}

func TestReadLineRejectsOverlongLineWithoutTruncating(t *testing.T) {
	long := strings.Repeat("x", 20) + "\nshort\n"
	r := bufio.NewReader(strings.NewReader(long))
	line, overlong, err := readLine(r, 10)
	require.NoError(t, err)
	assert.True(t, overlong)
	assert.Equal(t, "", line)

	// The reader must have resynced past the overlong line's newline,
	// so the next readLine sees the following line untouched.
	line, overlong, err = readLine(r, 10)
	require.NoError(t, err)
	assert.False(t, overlong)
	assert.Equal(t, "short", line)
}
