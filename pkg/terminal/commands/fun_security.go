package commands

import (
	"crypto/sha256"
	"encoding/hex"
	"math/rand"
	"strings"

	oerrors "github.com/oasis-os/oasis/pkg/errors"
	"github.com/oasis-os/oasis/pkg/terminal"
)

var fortunes = []string{
	"A byte saved is a byte earned.",
	"There are only two hard problems in computing: cache invalidation, naming things, and off-by-one errors.",
	"The terminal is the last honest interface.",
	"Every window you don't close is a window you'll have to explain later.",
	"Somewhere, a frame is being dropped.",
}

func registerFunAndSecurity(r *terminal.Registry) {
	r.Register(terminal.Command{Name: "fortune", Category: terminal.CategoryFun, Usage: "fortune",
		Description: "print a random one-line quip", Run: cmdFortune})
	r.Register(terminal.Command{Name: "cowsay", Category: terminal.CategoryFun, Usage: "cowsay <text>",
		Description: "print text in a speech bubble", Run: cmdCowsay})
	r.Register(terminal.Command{Name: "whoami", Category: terminal.CategorySecurity, Usage: "whoami",
		Description: "print the current session user", Run: cmdWhoami})
	r.Register(terminal.Command{Name: "passwd", Category: terminal.CategorySecurity, Usage: "passwd <new-password>",
		Description: "set the session passphrase hash in $OASIS_PASSWD_HASH", Run: cmdPasswd})
}

func cmdFortune(ctx *terminal.InvocationContext) terminal.CommandOutput {
	return terminal.Text(fortunes[rand.Intn(len(fortunes))])
}

func cmdCowsay(ctx *terminal.InvocationContext) terminal.CommandOutput {
	text := strings.Join(ctx.Args, " ")
	if text == "" {
		text = "moo"
	}
	border := strings.Repeat("-", len(text)+2)
	lines := []string{
		" " + border,
		"< " + text + " >",
		" " + border,
		"        \\   ^__^",
		"         \\  (oo)\\_______",
		"            (__)\\       )\\/\\",
		"                ||----w |",
		"                ||     ||",
	}
	return terminal.Text(lines...)
}

func cmdWhoami(ctx *terminal.InvocationContext) terminal.CommandOutput {
	user := ctx.Env.Vars["USER"]
	if user == "" {
		user = "guest"
	}
	return terminal.Text(user)
}

// cmdPasswd stores only a salted-free SHA-256 digest in the session
// environment, never the plaintext — good enough for the local
// lock-screen gate this backs, not a credential store.
func cmdPasswd(ctx *terminal.InvocationContext) terminal.CommandOutput {
	if len(ctx.Args) != 1 {
		return terminal.ErrorOutput(oerrors.KindParse, "usage: passwd <new-password>")
	}
	sum := sha256.Sum256([]byte(ctx.Args[0]))
	ctx.Env.Vars["OASIS_PASSWD_HASH"] = hex.EncodeToString(sum[:])
	return terminal.CommandOutput{Kind: terminal.OutputText}
}
