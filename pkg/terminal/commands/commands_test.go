package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oasis-os/oasis/pkg/terminal"
	"github.com/oasis-os/oasis/pkg/vfs"
)

func newTestInterp(t *testing.T) (*terminal.Interpreter, *terminal.Environment) {
	t.Helper()
	r := terminal.NewRegistry()
	RegisterAll(r, &Deps{})
	interp := terminal.New(r, vfs.NewMemory())
	env := terminal.NewEnvironment("/", "guest", "/home")
	return interp, env
}

func TestExprAddsIntegers(t *testing.T) {
	interp, env := newTestInterp(t)
	out, err := interp.Execute("expr 2 + 3", env)
	require.NoError(t, err)
	require.Equal(t, terminal.OutputText, out.Kind)
	assert.Equal(t, []string{"5"}, out.Lines)
}

func TestTestComparisonSetsStatus(t *testing.T) {
	interp, env := newTestInterp(t)
	_, err := interp.Execute("test 1 -lt 3", env)
	require.NoError(t, err)
	assert.Equal(t, 0, env.LastStatus)

	_, err = interp.Execute("test 5 -lt 3", env)
	require.NoError(t, err)
	assert.NotEqual(t, 0, env.LastStatus)
}

// TestExprPipedIntoSet covers spec scenario F's control-flow idiom:
// `expr $I + 1 | set I`.
func TestExprPipedIntoSet(t *testing.T) {
	interp, env := newTestInterp(t)
	env.Vars["I"] = "0"
	_, err := interp.Execute("expr $I + 1 | set I", env)
	require.NoError(t, err)
	assert.Equal(t, "1", env.Vars["I"])
}

func TestWhileLoopWithTestAndExpr(t *testing.T) {
	interp, env := newTestInterp(t)
	env.Vars["I"] = "0"
	script := "while test $I -lt 3\necho $I\nexpr $I + 1 | set I\ndone"
	out, err := interp.RunScript(script, env)
	require.NoError(t, err)
	require.Equal(t, terminal.OutputText, out.Kind)
	assert.Equal(t, []string{"0", "1", "2"}, out.Lines)
	assert.Equal(t, "3", env.Vars["I"])
}

func TestSeqRange(t *testing.T) {
	interp, env := newTestInterp(t)
	out, err := interp.Execute("seq 1 3", env)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, out.Lines)
}

func TestBase64RoundTrip(t *testing.T) {
	interp, env := newTestInterp(t)
	out, err := interp.Execute("base64 hello", env)
	require.NoError(t, err)
	encoded := out.Lines[0]

	out, err = interp.Execute("base64 -d "+encoded, env)
	require.NoError(t, err)
	assert.Equal(t, []string{"hello"}, out.Lines)
}

func TestXargsDispatchesPerLine(t *testing.T) {
	interp, env := newTestInterp(t)
	require.NoError(t, interp.Vfs.Write("/a.txt", []byte("hi")))
	require.NoError(t, interp.Vfs.Write("/b.txt", []byte("hi")))
	out, err := interp.Execute("ls | xargs echo", env)
	require.NoError(t, err)
	assert.NotEmpty(t, out.Lines)
}

func TestUICommandsDegradeWithoutDeps(t *testing.T) {
	interp, env := newTestInterp(t)
	out, err := interp.Execute("skin modern", env)
	require.NoError(t, err)
	assert.Equal(t, terminal.OutputError, out.Kind)
}

func TestSkinSwapOutputRefusesToPipe(t *testing.T) {
	r := terminal.NewRegistry()
	swapped := ""
	RegisterAll(r, &Deps{
		SwapSkin:    func(name string) error { swapped = name; return nil },
		CurrentSkin: func() string { return swapped },
		ListSkins:   func() []string { return []string{"modern", "retro"} },
	})
	interp := terminal.New(r, vfs.NewMemory())
	env := terminal.NewEnvironment("/", "guest", "/home")

	out, err := interp.Execute("skin modern | cat", env)
	require.NoError(t, err)
	assert.Equal(t, "modern", swapped)
	assert.Equal(t, terminal.OutputError, out.Kind)
}

func TestWhoamiDefaultsToGuest(t *testing.T) {
	interp, env := newTestInterp(t)
	out, err := interp.Execute("whoami", env)
	require.NoError(t, err)
	assert.Equal(t, []string{"guest"}, out.Lines)
}

func TestFortunePicksFromList(t *testing.T) {
	interp, env := newTestInterp(t)
	out, err := interp.Execute("fortune", env)
	require.NoError(t, err)
	require.Len(t, out.Lines, 1)
	assert.Contains(t, fortunes, out.Lines[0])
}
