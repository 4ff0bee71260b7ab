package commands

import (
	"sort"
	"strconv"
	"strings"

	oerrors "github.com/oasis-os/oasis/pkg/errors"
	"github.com/oasis-os/oasis/pkg/terminal"
)

func registerText(r *terminal.Registry) {
	r.Register(terminal.Command{Name: "head", Category: terminal.CategoryText, Usage: "head [-n N] [path]",
		Description: "print the first lines of input", Run: cmdHead})
	r.Register(terminal.Command{Name: "tail", Category: terminal.CategoryText, Usage: "tail [-n N] [path]",
		Description: "print the last lines of input", Run: cmdTail})
	r.Register(terminal.Command{Name: "wc", Category: terminal.CategoryText, Usage: "wc [path]",
		Description: "count lines, words, bytes", Run: cmdWc})
	r.Register(terminal.Command{Name: "grep", Category: terminal.CategoryText, Usage: "grep <pattern> [path]",
		Description: "filter lines containing a substring", Run: cmdGrep})
	r.Register(terminal.Command{Name: "sort", Category: terminal.CategoryText, Usage: "sort [path]",
		Description: "sort lines lexicographically", Run: cmdSort})
	r.Register(terminal.Command{Name: "uniq", Category: terminal.CategoryText, Usage: "uniq [path]",
		Description: "collapse adjacent duplicate lines", Run: cmdUniq})
	r.Register(terminal.Command{Name: "tr", Category: terminal.CategoryText, Usage: "tr <from> <to> [path]",
		Description: "translate characters", Run: cmdTr})
	r.Register(terminal.Command{Name: "cut", Category: terminal.CategoryText, Usage: "cut -d <delim> -f <n> [path]",
		Description: "extract a delimited field", Run: cmdCut})
	r.Register(terminal.Command{Name: "diff", Category: terminal.CategoryText, Usage: "diff <a> <b>",
		Description: "show lines differing between two files", Run: cmdDiff})
	r.Register(terminal.Command{Name: "tee", Category: terminal.CategoryText, Usage: "tee <path>",
		Description: "write input to a file and echo it back", Run: cmdTee})
	r.Register(terminal.Command{Name: "echo", Category: terminal.CategoryText, Usage: "echo [args...]",
		Description: "print arguments separated by spaces", Run: cmdEcho})
}

func cmdEcho(ctx *terminal.InvocationContext) terminal.CommandOutput {
	return terminal.Text(strings.Join(ctx.Args, " "))
}

// inputLines resolves a command's input: stdin from a pipe if present
// and no path given, else the named VFS file.
func inputLines(ctx *terminal.InvocationContext, pathArg string) ([]string, error) {
	if pathArg == "" {
		if ctx.Stdin != "" {
			return strings.Split(strings.TrimSuffix(ctx.Stdin, "\n"), "\n"), nil
		}
		return nil, oerrors.New(oerrors.KindParse, "no input: pass a path or pipe stdin")
	}
	data, err := ctx.Vfs.Read(resolvePath(ctx, pathArg))
	if err != nil {
		return nil, err
	}
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n"), nil
}

func cmdHead(ctx *terminal.InvocationContext) terminal.CommandOutput {
	n, path := parseDashN(ctx.Args, 10)
	lines, err := inputLines(ctx, path)
	if err != nil {
		return terminal.FromError(err)
	}
	if n > len(lines) {
		n = len(lines)
	}
	return terminal.Text(lines[:n]...)
}

func cmdTail(ctx *terminal.InvocationContext) terminal.CommandOutput {
	n, path := parseDashN(ctx.Args, 10)
	lines, err := inputLines(ctx, path)
	if err != nil {
		return terminal.FromError(err)
	}
	if n > len(lines) {
		n = len(lines)
	}
	return terminal.Text(lines[len(lines)-n:]...)
}

func parseDashN(args []string, defaultN int) (n int, path string) {
	n = defaultN
	for i := 0; i < len(args); i++ {
		if args[i] == "-n" && i+1 < len(args) {
			if v, err := strconv.Atoi(args[i+1]); err == nil {
				n = v
			}
			i++
			continue
		}
		path = args[i]
	}
	return n, path
}

func cmdWc(ctx *terminal.InvocationContext) terminal.CommandOutput {
	lines, err := inputLines(ctx, firstArg(ctx.Args))
	if err != nil {
		return terminal.FromError(err)
	}
	words, bytes := 0, 0
	for _, l := range lines {
		words += len(strings.Fields(l))
		bytes += len(l) + 1
	}
	return terminal.Text(strconv.Itoa(len(lines)) + " " + strconv.Itoa(words) + " " + strconv.Itoa(bytes))
}

func cmdGrep(ctx *terminal.InvocationContext) terminal.CommandOutput {
	if len(ctx.Args) == 0 {
		return terminal.FromError(oerrors.New(oerrors.KindParse, "usage: grep <pattern> [path]"))
	}
	pattern := ctx.Args[0]
	lines, err := inputLines(ctx, firstArgAfter(ctx.Args, 1))
	if err != nil {
		return terminal.FromError(err)
	}
	var out []string
	for _, l := range lines {
		if strings.Contains(l, pattern) {
			out = append(out, l)
		}
	}
	return terminal.Text(out...)
}

func firstArgAfter(args []string, i int) string {
	if i >= len(args) {
		return ""
	}
	return args[i]
}

func cmdSort(ctx *terminal.InvocationContext) terminal.CommandOutput {
	lines, err := inputLines(ctx, firstArg(ctx.Args))
	if err != nil {
		return terminal.FromError(err)
	}
	sorted := append([]string(nil), lines...)
	sort.Strings(sorted)
	return terminal.Text(sorted...)
}

func cmdUniq(ctx *terminal.InvocationContext) terminal.CommandOutput {
	lines, err := inputLines(ctx, firstArg(ctx.Args))
	if err != nil {
		return terminal.FromError(err)
	}
	var out []string
	for i, l := range lines {
		if i == 0 || l != lines[i-1] {
			out = append(out, l)
		}
	}
	return terminal.Text(out...)
}

func cmdTr(ctx *terminal.InvocationContext) terminal.CommandOutput {
	if len(ctx.Args) < 2 {
		return terminal.FromError(oerrors.New(oerrors.KindParse, "usage: tr <from> <to> [path]"))
	}
	from, to := ctx.Args[0], ctx.Args[1]
	lines, err := inputLines(ctx, firstArgAfter(ctx.Args, 2))
	if err != nil {
		return terminal.FromError(err)
	}
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = translate(l, from, to)
	}
	return terminal.Text(out...)
}

func translate(s, from, to string) string {
	var sb strings.Builder
	for _, r := range s {
		idx := strings.IndexRune(from, r)
		if idx >= 0 && idx < len(to) {
			sb.WriteByte(to[idx])
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func cmdCut(ctx *terminal.InvocationContext) terminal.CommandOutput {
	delim, field, path := "\t", 1, ""
	for i := 0; i < len(ctx.Args); i++ {
		switch ctx.Args[i] {
		case "-d":
			if i+1 < len(ctx.Args) {
				delim = ctx.Args[i+1]
				i++
			}
		case "-f":
			if i+1 < len(ctx.Args) {
				if v, err := strconv.Atoi(ctx.Args[i+1]); err == nil {
					field = v
				}
				i++
			}
		default:
			path = ctx.Args[i]
		}
	}
	lines, err := inputLines(ctx, path)
	if err != nil {
		return terminal.FromError(err)
	}
	var out []string
	for _, l := range lines {
		parts := strings.Split(l, delim)
		if field-1 < len(parts) && field > 0 {
			out = append(out, parts[field-1])
		} else {
			out = append(out, "")
		}
	}
	return terminal.Text(out...)
}

func cmdDiff(ctx *terminal.InvocationContext) terminal.CommandOutput {
	if len(ctx.Args) < 2 {
		return terminal.FromError(oerrors.New(oerrors.KindParse, "usage: diff <a> <b>"))
	}
	a, err := ctx.Vfs.Read(resolvePath(ctx, ctx.Args[0]))
	if err != nil {
		return terminal.FromError(err)
	}
	b, err := ctx.Vfs.Read(resolvePath(ctx, ctx.Args[1]))
	if err != nil {
		return terminal.FromError(err)
	}
	return terminal.Text(unifiedDiff(string(a), string(b))...)
}

func cmdTee(ctx *terminal.InvocationContext) terminal.CommandOutput {
	if len(ctx.Args) == 0 {
		return terminal.FromError(oerrors.New(oerrors.KindParse, "usage: tee <path>"))
	}
	if err := ctx.Vfs.Write(resolvePath(ctx, ctx.Args[0]), []byte(ctx.Stdin)); err != nil {
		return terminal.FromError(err)
	}
	return terminal.Text(strings.Split(ctx.Stdin, "\n")...)
}
