package commands

import (
	"encoding/base64"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/google/uuid"

	oerrors "github.com/oasis-os/oasis/pkg/errors"
	"github.com/oasis-os/oasis/pkg/terminal"
)

func registerDeveloper(r *terminal.Registry) {
	r.Register(terminal.Command{Name: "base64", Category: terminal.CategoryDeveloper, Usage: "base64 [-d] <text>",
		Description: "encode or decode base64", Run: cmdBase64})
	r.Register(terminal.Command{Name: "json", Category: terminal.CategoryDeveloper, Usage: "json <text>",
		Description: "pretty-print JSON", Run: cmdJSON})
	r.Register(terminal.Command{Name: "uuid", Category: terminal.CategoryDeveloper, Usage: "uuid",
		Description: "generate a random UUID", Run: cmdUUID})
	r.Register(terminal.Command{Name: "seq", Category: terminal.CategoryDeveloper, Usage: "seq <n> | seq <first> <last>",
		Description: "print a sequence of numbers", Run: cmdSeq})
	r.Register(terminal.Command{Name: "expr", Category: terminal.CategoryDeveloper, Usage: "expr <a> <op> <b>",
		Description: "evaluate a simple arithmetic expression", Run: cmdExpr})
	r.Register(terminal.Command{Name: "test", Category: terminal.CategoryDeveloper, Usage: "test <a> <op> <b>",
		Description: "evaluate a comparison, setting $?", Run: cmdTest})
	r.Register(terminal.Command{Name: "xargs", Category: terminal.CategoryDeveloper, Usage: "xargs <command>",
		Description: "run a command once per stdin line, appended as an argument", Run: xargsRun(r)})
}

func cmdBase64(ctx *terminal.InvocationContext) terminal.CommandOutput {
	decode := false
	args := ctx.Args
	if len(args) > 0 && args[0] == "-d" {
		decode = true
		args = args[1:]
	}
	input := strings.Join(args, " ")
	if input == "" {
		input = strings.TrimSuffix(ctx.Stdin, "\n")
	}
	if decode {
		data, err := base64.StdEncoding.DecodeString(input)
		if err != nil {
			return terminal.FromError(oerrors.Wrap(oerrors.KindParse, err, "invalid base64"))
		}
		return terminal.Text(string(data))
	}
	return terminal.Text(base64.StdEncoding.EncodeToString([]byte(input)))
}

func cmdJSON(ctx *terminal.InvocationContext) terminal.CommandOutput {
	input := strings.Join(ctx.Args, " ")
	if input == "" {
		input = ctx.Stdin
	}
	var v any
	if err := json.Unmarshal([]byte(input), &v); err != nil {
		return terminal.FromError(oerrors.Wrap(oerrors.KindParse, err, "invalid JSON"))
	}
	pretty, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return terminal.FromError(err)
	}
	return terminal.Text(strings.Split(string(pretty), "\n")...)
}

func cmdUUID(ctx *terminal.InvocationContext) terminal.CommandOutput {
	return terminal.Text(uuid.NewString())
}

func cmdSeq(ctx *terminal.InvocationContext) terminal.CommandOutput {
	first, last := 1, 1
	switch len(ctx.Args) {
	case 1:
		n, err := strconv.Atoi(ctx.Args[0])
		if err != nil {
			return terminal.FromError(oerrors.New(oerrors.KindParse, "seq: not a number").WithInput(ctx.Args[0]))
		}
		last = n
	case 2:
		f, err1 := strconv.Atoi(ctx.Args[0])
		l, err2 := strconv.Atoi(ctx.Args[1])
		if err1 != nil || err2 != nil {
			return terminal.FromError(oerrors.New(oerrors.KindParse, "seq: not a number"))
		}
		first, last = f, l
	default:
		return terminal.ErrorOutput(oerrors.KindParse, "usage: seq <n> | seq <first> <last>")
	}
	var lines []string
	for i := first; i <= last; i++ {
		lines = append(lines, strconv.Itoa(i))
	}
	return terminal.Text(lines...)
}

// cmdExpr evaluates a single `a OP b` arithmetic expression, the
// minimal subset spec §4.4 scenario F's control-flow example needs
// (`expr $I + 1 | set I`).
func cmdExpr(ctx *terminal.InvocationContext) terminal.CommandOutput {
	if len(ctx.Args) != 3 {
		return terminal.ErrorOutput(oerrors.KindParse, "usage: expr <a> <op> <b>")
	}
	a, err1 := strconv.ParseFloat(ctx.Args[0], 64)
	b, err2 := strconv.ParseFloat(ctx.Args[2], 64)
	if err1 != nil || err2 != nil {
		return terminal.ErrorOutput(oerrors.KindParse, "expr: operands must be numbers")
	}
	var result float64
	switch ctx.Args[1] {
	case "+":
		result = a + b
	case "-":
		result = a - b
	case "*":
		result = a * b
	case "/":
		if b == 0 {
			return terminal.ErrorOutput(oerrors.KindParse, "expr: division by zero")
		}
		result = a / b
	default:
		return terminal.ErrorOutput(oerrors.KindParse, "expr: unknown operator "+ctx.Args[1])
	}
	if result == float64(int64(result)) {
		return terminal.Text(strconv.FormatInt(int64(result), 10))
	}
	return terminal.Text(strconv.FormatFloat(result, 'g', -1, 64))
}

// cmdTest evaluates a comparison and signals truth via $? (0 = true),
// per the `while test $I -lt 3` form used by script control flow.
func cmdTest(ctx *terminal.InvocationContext) terminal.CommandOutput {
	if len(ctx.Args) != 3 {
		return terminal.ErrorOutput(oerrors.KindParse, "usage: test <a> <op> <b>")
	}
	a, b := ctx.Args[0], ctx.Args[2]
	op := ctx.Args[1]

	truth, ok := evalTest(a, op, b)
	if !ok {
		return terminal.ErrorOutput(oerrors.KindParse, "test: unknown operator "+op)
	}
	if truth {
		return terminal.CommandOutput{Kind: terminal.OutputText}
	}
	return terminal.CommandOutput{Kind: terminal.OutputExit, ExitCode: 1}
}

func evalTest(a, op, b string) (bool, bool) {
	if na, erra := strconv.ParseFloat(a, 64); erra == nil {
		if nb, errb := strconv.ParseFloat(b, 64); errb == nil {
			switch op {
			case "-lt":
				return na < nb, true
			case "-le":
				return na <= nb, true
			case "-gt":
				return na > nb, true
			case "-ge":
				return na >= nb, true
			case "-eq":
				return na == nb, true
			case "-ne":
				return na != nb, true
			}
		}
	}
	switch op {
	case "=", "==":
		return a == b, true
	case "!=":
		return a != b, true
	}
	return false, false
}

// xargsRun closes over the registry so it can dispatch a builtin by
// name for each stdin line, without the commands package depending on
// the interpreter's pipeline machinery.
func xargsRun(r *terminal.Registry) func(*terminal.InvocationContext) terminal.CommandOutput {
	return func(ctx *terminal.InvocationContext) terminal.CommandOutput {
		if len(ctx.Args) == 0 {
			return terminal.ErrorOutput(oerrors.KindParse, "usage: xargs <command> [args...]")
		}
		cmd, ok := r.Lookup(ctx.Args[0])
		if !ok {
			return terminal.ErrorOutput(oerrors.KindNotFound, "unknown command: "+ctx.Args[0])
		}
		var allLines []string
		for _, line := range strings.Split(strings.TrimSuffix(ctx.Stdin, "\n"), "\n") {
			if line == "" {
				continue
			}
			sub := &terminal.InvocationContext{
				Args: append(append([]string{}, ctx.Args[1:]...), line),
				Env:  ctx.Env, Vfs: ctx.Vfs,
			}
			out := cmd.Run(sub)
			allLines = append(allLines, out.Lines...)
		}
		return terminal.Text(allLines...)
	}
}
