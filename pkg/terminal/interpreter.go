package terminal

import (
	"strconv"
	"strings"

	oerrors "github.com/oasis-os/oasis/pkg/errors"
	"github.com/oasis-os/oasis/pkg/vfs"
)

// minOutputLines is the floor on the coordinator's retained scrollback
// (spec §4.4: "N ≥ 200").
const minOutputLines = 200

// Interpreter runs the tokenize → expand → parse → dispatch → collect
// pipeline over a command Registry and a VFS handle.
type Interpreter struct {
	Registry    *Registry
	Vfs         vfs.Vfs
	OutputLines int
}

// New creates an interpreter with the documented scrollback floor.
func New(registry *Registry, fs vfs.Vfs) *Interpreter {
	return &Interpreter{Registry: registry, Vfs: fs, OutputLines: minOutputLines}
}

// Execute runs one input line: history recall (`!!`/`!n`), tokenize,
// chain/pipe/redirect parsing, and sequential dispatch with
// short-circuit `&&`/`||` semantics (spec §4.4).
func (interp *Interpreter) Execute(line string, env *Environment) (CommandOutput, error) {
	resolved, err := interp.resolveHistoryRecall(line, env)
	if err != nil {
		env.LastStatus = oerrors.KindOf(err).ExitCode()
		return FromError(err), err
	}
	if strings.TrimSpace(resolved) != "" {
		env.History.Push(resolved)
	}
	return interp.ExecuteLine(resolved, env)
}

// ExecuteLine runs a single already-recalled line without touching
// history, used both at the top level and by the control-flow
// interpreter for condition/body lines.
func (interp *Interpreter) ExecuteLine(line string, env *Environment) (CommandOutput, error) {
	tokens, err := Tokenize(line)
	if err != nil {
		env.LastStatus = oerrors.KindOf(err).ExitCode()
		return FromError(err), err
	}
	if len(tokens) == 0 {
		return CommandOutput{Kind: OutputText}, nil
	}

	links, err := ParseLine(tokens)
	if err != nil {
		env.LastStatus = oerrors.KindOf(err).ExitCode()
		return FromError(err), err
	}

	var last CommandOutput
	run := true
	for _, link := range links {
		if run {
			last = interp.executePipeline(link.Pipeline, env)
		}
		switch link.Op {
		case OpSeq, OpNone:
			run = true
		case OpAnd:
			run = env.LastStatus == 0
		case OpOr:
			run = env.LastStatus != 0
		}
	}
	return last, nil
}

func (interp *Interpreter) resolveHistoryRecall(line string, env *Environment) (string, error) {
	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == "!!":
		return env.History.Last()
	case strings.HasPrefix(trimmed, "!") && len(trimmed) > 1:
		if n, err := strconv.Atoi(trimmed[1:]); err == nil {
			return env.History.ByOrdinal(n)
		}
		return line, nil
	default:
		return line, nil
	}
}

func (interp *Interpreter) executePipeline(pipeline Pipeline, env *Environment) CommandOutput {
	var stdin string
	var out CommandOutput

	for i, inv := range pipeline {
		args, err := interp.resolveArgs(inv.Words, env)
		if err != nil {
			env.LastStatus = oerrors.KindOf(err).ExitCode()
			return FromError(err)
		}
		if len(args) == 0 {
			continue
		}
		name := strings.ToLower(args[0])

		if body, ok := env.Functions[name]; ok {
			out = interp.runFunction(body, args[1:], env)
		} else {
			cmd, ok := interp.Registry.Lookup(name)
			if !ok {
				out = ErrorOutput(oerrors.KindNotFound, "unknown command: "+name)
			} else {
				ctx := &InvocationContext{Args: args[1:], Env: env, Vfs: interp.Vfs, Stdin: stdin}
				out = cmd.Run(ctx)
			}
		}

		isLast := i == len(pipeline)-1
		if !isLast {
			text, pipeable := out.Pipeable()
			if !pipeable {
				out = ErrorOutput(oerrors.KindProtocol, "output of "+name+" cannot be piped")
				env.LastStatus = out.ExitStatus()
				return out
			}
			stdin = text
		} else if inv.Redirect != nil {
			if err := interp.applyRedirect(inv.Redirect, out, env); err != nil {
				out = FromError(err)
			}
		}
		env.LastStatus = out.ExitStatus()
	}
	return out
}

func (interp *Interpreter) resolveArgs(words []Token, env *Environment) ([]string, error) {
	expanded := ExpandVariables(words, env)
	aliased, err := ExpandAliases(expanded, env)
	if err != nil {
		return nil, err
	}
	return ExpandGlobs(aliased, interp.Vfs, env.Cwd), nil
}

func (interp *Interpreter) applyRedirect(r *Redirect, out CommandOutput, env *Environment) error {
	text, ok := out.Pipeable()
	if !ok {
		return oerrors.New(oerrors.KindProtocol, "output cannot be redirected").WithInput(r.Path)
	}
	if r.Append {
		existing, err := interp.Vfs.Read(r.Path)
		if err == nil {
			text = string(existing) + "\n" + text
		}
	}
	return interp.Vfs.Write(r.Path, []byte(text))
}

// runFunction executes a user-defined function body with positional
// args bound to $1.. and the caller's environment, returning its last
// statement's output.
func (interp *Interpreter) runFunction(body string, args []string, env *Environment) CommandOutput {
	for i, a := range args {
		env.Vars[strconv.Itoa(i+1)] = a
	}
	out, err := interp.RunScript(body, env)
	if err != nil {
		return FromError(err)
	}
	return out
}
