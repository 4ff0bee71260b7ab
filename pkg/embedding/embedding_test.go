package embedding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oasis-os/oasis/pkg/input"
)

func newTestHandle(t *testing.T) Handle {
	t.Helper()
	h := Create(Options{ScreenWidth: 480, ScreenHeight: 272, User: "guest", Home: "/home"})
	t.Cleanup(func() { Destroy(h) })
	return h
}

func TestCreateReturnsDistinctHandles(t *testing.T) {
	a := newTestHandle(t)
	b := newTestHandle(t)
	assert.NotEqual(t, a, b)
}

func TestSendCommandRunsThroughCoordinator(t *testing.T) {
	h := newTestHandle(t)
	out := SendCommand(h, "echo hello")
	assert.Equal(t, "hello", out)
}

func TestAddVfsFileThenCatRoundTrips(t *testing.T) {
	h := newTestHandle(t)
	require.NoError(t, AddVfsFile(h, "/greeting.txt", []byte("hi there")))
	assert.Equal(t, "hi there", SendCommand(h, "cat /greeting.txt"))
}

func TestSendInputIsDrainedOnTick(t *testing.T) {
	h := newTestHandle(t)
	SendInput(h, input.TextInput("x"))
	require.NoError(t, Tick(h, 16))
}

func TestGetBufferReportsUnsupportedOnNullRendering(t *testing.T) {
	h := newTestHandle(t)
	_, err := GetBuffer(h)
	assert.Error(t, err)
}

func TestRegisterCallbackFiresOnSkinSwap(t *testing.T) {
	h := newTestHandle(t)
	var got string
	RegisterCallback(h, CallbackSkinSwap, func(kind CallbackKind, payload string) {
		if kind == CallbackSkinSwap {
			got = payload
		}
	})
	SendCommand(h, "skin classic")
	assert.Equal(t, "classic", got)
}

func TestDestroyMakesHandleInert(t *testing.T) {
	h := Create(Options{ScreenWidth: 480, ScreenHeight: 272})
	Destroy(h)
	assert.Equal(t, "", SendCommand(h, "echo hello"))
	assert.NoError(t, Tick(h, 16))
}
