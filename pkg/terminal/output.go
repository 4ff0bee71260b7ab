package terminal

import (
	"time"

	oerrors "github.com/oasis-os/oasis/pkg/errors"
)

// OutputKind is the tagged-variant discriminant for CommandOutput
// (spec §3).
type OutputKind int

const (
	OutputText OutputKind = iota
	OutputTable
	OutputClear
	OutputSkinSwap
	OutputScreenshot
	OutputExit
	OutputError
	// OutputPending is returned by a command (e.g. sleep) that must
	// yield to the frame loop rather than block the dispatch call; the
	// coordinator resumes it on a later frame (spec §5 suspension
	// points).
	OutputPending
)

// CommandOutput is the single return type every command produces.
// Only Text and Table are pipeable; every other variant refuses to
// become another command's stdin (spec §4.4, scenario D).
type CommandOutput struct {
	Kind OutputKind

	Lines []string   // OutputText
	Rows  [][]string // OutputTable

	SkinName   string // OutputSkinSwap
	Screenshot []byte // OutputScreenshot
	ExitCode   int    // OutputExit

	ErrKind    oerrors.Kind // OutputError
	ErrMessage string       // OutputError

	// PendingFor is how long the frame loop should wait before calling
	// PendingResume (OutputPending only).
	PendingFor time.Duration
	// PendingResume produces the output to deliver once PendingFor has
	// elapsed. Never called by the interpreter itself — only by a
	// frame-loop owner that polls without blocking.
	PendingResume func() CommandOutput
}

// Pending builds a suspension: the frame loop waits for, then
// delivers, resume's result instead of blocking the calling goroutine.
func Pending(after time.Duration, resume func() CommandOutput) CommandOutput {
	return CommandOutput{Kind: OutputPending, PendingFor: after, PendingResume: resume}
}

// Text builds a text output from one or more lines.
func Text(lines ...string) CommandOutput {
	return CommandOutput{Kind: OutputText, Lines: lines}
}

// Table builds a tabular output.
func Table(rows [][]string) CommandOutput {
	return CommandOutput{Kind: OutputTable, Rows: rows}
}

// ErrorOutput builds an error output; the interpreter maps ErrKind to
// a nonzero $? via Kind.ExitCode().
func ErrorOutput(kind oerrors.Kind, message string) CommandOutput {
	return CommandOutput{Kind: OutputError, ErrKind: kind, ErrMessage: message}
}

// FromError converts a typed error into an OutputError, defaulting
// foreign errors to KindIo (spec §7 propagation policy: commands never
// terminate the shell on error).
func FromError(err error) CommandOutput {
	return ErrorOutput(oerrors.KindOf(err), err.Error())
}

// Pipeable reports whether this output can feed the next pipeline
// stage's stdin, and returns its text form if so.
func (o CommandOutput) Pipeable() (string, bool) {
	switch o.Kind {
	case OutputText:
		return joinLines(o.Lines), true
	case OutputTable:
		return renderTable(o.Rows), true
	default:
		return "", false
	}
}

// ExitStatus computes the shell exit status this output sets.
func (o CommandOutput) ExitStatus() int {
	switch o.Kind {
	case OutputError:
		return o.ErrKind.ExitCode()
	case OutputExit:
		return o.ExitCode
	default:
		return 0
	}
}

func joinLines(lines []string) string {
	out := ""
	for i, l := range lines {
		if i > 0 {
			out += "\n"
		}
		out += l
	}
	return out
}

func renderTable(rows [][]string) string {
	out := ""
	for i, row := range rows {
		if i > 0 {
			out += "\n"
		}
		for j, cell := range row {
			if j > 0 {
				out += "\t"
			}
			out += cell
		}
	}
	return out
}
