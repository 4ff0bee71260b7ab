package commands

import (
	"strings"

	oerrors "github.com/oasis-os/oasis/pkg/errors"
	"github.com/oasis-os/oasis/pkg/terminal"
	"github.com/oasis-os/oasis/pkg/vfs"
)

func registerFilesystem(r *terminal.Registry) {
	r.Register(terminal.Command{Name: "ls", Category: terminal.CategoryFilesystem, Usage: "ls [path]",
		Description: "list directory entries", Run: cmdLs})
	r.Register(terminal.Command{Name: "cd", Category: terminal.CategoryFilesystem, Usage: "cd <path>",
		Description: "change the working directory", Run: cmdCd})
	r.Register(terminal.Command{Name: "pwd", Category: terminal.CategoryFilesystem, Usage: "pwd",
		Description: "print the working directory", Run: cmdPwd})
	r.Register(terminal.Command{Name: "cat", Category: terminal.CategoryFilesystem, Usage: "cat <path>",
		Description: "print file contents", Run: cmdCat})
	r.Register(terminal.Command{Name: "mkdir", Category: terminal.CategoryFilesystem, Usage: "mkdir <path>",
		Description: "create a directory", Run: cmdMkdir})
	r.Register(terminal.Command{Name: "rm", Category: terminal.CategoryFilesystem, Usage: "rm [-r] <path>",
		Description: "remove a file or directory", Run: cmdRm})
	r.Register(terminal.Command{Name: "touch", Category: terminal.CategoryFilesystem, Usage: "touch <path>",
		Description: "create an empty file", Run: cmdTouch})
	r.Register(terminal.Command{Name: "cp", Category: terminal.CategoryFilesystem, Usage: "cp <src> <dst>",
		Description: "copy a file", Run: cmdCp})
	r.Register(terminal.Command{Name: "mv", Category: terminal.CategoryFilesystem, Usage: "mv <src> <dst>",
		Description: "move or rename a path", Run: cmdMv})
	r.Register(terminal.Command{Name: "find", Category: terminal.CategoryFilesystem, Usage: "find <path> [-name pattern]",
		Description: "recursively list matching paths", Run: cmdFind})
}

func resolvePath(ctx *terminal.InvocationContext, arg string) string {
	if arg == "" {
		return ctx.Env.Cwd
	}
	if strings.HasPrefix(arg, "/") {
		return vfs.Normalize(arg)
	}
	return vfs.Normalize(ctx.Env.Cwd + "/" + arg)
}

func cmdLs(ctx *terminal.InvocationContext) terminal.CommandOutput {
	path := resolvePath(ctx, firstArg(ctx.Args))
	entries, err := ctx.Vfs.List(path)
	if err != nil {
		return terminal.FromError(err)
	}
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Kind == vfs.EntryDirectory {
			lines = append(lines, e.Name+"/")
		} else {
			lines = append(lines, e.Name)
		}
	}
	return terminal.Text(lines...)
}

func cmdCd(ctx *terminal.InvocationContext) terminal.CommandOutput {
	target := resolvePath(ctx, firstArg(ctx.Args))
	meta, err := ctx.Vfs.Stat(target)
	if err != nil {
		return terminal.FromError(err)
	}
	if meta.Kind != vfs.EntryDirectory {
		return terminal.FromError(oerrors.New(oerrors.KindIo, "not a directory").WithInput(target))
	}
	ctx.Env.Cwd = target
	return terminal.Text()
}

func cmdPwd(ctx *terminal.InvocationContext) terminal.CommandOutput {
	return terminal.Text(ctx.Env.Cwd)
}

func cmdCat(ctx *terminal.InvocationContext) terminal.CommandOutput {
	if len(ctx.Args) == 0 {
		return terminal.FromError(oerrors.New(oerrors.KindParse, "usage: cat <path>"))
	}
	data, err := ctx.Vfs.Read(resolvePath(ctx, ctx.Args[0]))
	if err != nil {
		return terminal.FromError(err)
	}
	return terminal.Text(strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")...)
}

func cmdMkdir(ctx *terminal.InvocationContext) terminal.CommandOutput {
	if len(ctx.Args) == 0 {
		return terminal.FromError(oerrors.New(oerrors.KindParse, "usage: mkdir <path>"))
	}
	if err := ctx.Vfs.Mkdir(resolvePath(ctx, ctx.Args[0])); err != nil {
		return terminal.FromError(err)
	}
	return terminal.Text()
}

func cmdRm(ctx *terminal.InvocationContext) terminal.CommandOutput {
	recursive := false
	var target string
	for _, a := range ctx.Args {
		if a == "-r" || a == "-rf" {
			recursive = true
			continue
		}
		target = a
	}
	if target == "" {
		return terminal.FromError(oerrors.New(oerrors.KindParse, "usage: rm [-r] <path>"))
	}
	if err := ctx.Vfs.Remove(resolvePath(ctx, target), recursive); err != nil {
		return terminal.FromError(err)
	}
	return terminal.Text()
}

func cmdTouch(ctx *terminal.InvocationContext) terminal.CommandOutput {
	if len(ctx.Args) == 0 {
		return terminal.FromError(oerrors.New(oerrors.KindParse, "usage: touch <path>"))
	}
	path := resolvePath(ctx, ctx.Args[0])
	if ctx.Vfs.Exists(path) {
		return terminal.Text()
	}
	if err := ctx.Vfs.Write(path, []byte{}); err != nil {
		return terminal.FromError(err)
	}
	return terminal.Text()
}

func cmdCp(ctx *terminal.InvocationContext) terminal.CommandOutput {
	if len(ctx.Args) < 2 {
		return terminal.FromError(oerrors.New(oerrors.KindParse, "usage: cp <src> <dst>"))
	}
	data, err := ctx.Vfs.Read(resolvePath(ctx, ctx.Args[0]))
	if err != nil {
		return terminal.FromError(err)
	}
	if err := ctx.Vfs.Write(resolvePath(ctx, ctx.Args[1]), data); err != nil {
		return terminal.FromError(err)
	}
	return terminal.Text()
}

func cmdMv(ctx *terminal.InvocationContext) terminal.CommandOutput {
	if len(ctx.Args) < 2 {
		return terminal.FromError(oerrors.New(oerrors.KindParse, "usage: mv <src> <dst>"))
	}
	if err := ctx.Vfs.Rename(resolvePath(ctx, ctx.Args[0]), resolvePath(ctx, ctx.Args[1])); err != nil {
		return terminal.FromError(err)
	}
	return terminal.Text()
}

func cmdFind(ctx *terminal.InvocationContext) terminal.CommandOutput {
	if len(ctx.Args) == 0 {
		return terminal.FromError(oerrors.New(oerrors.KindParse, "usage: find <path> [-name pattern]"))
	}
	root := resolvePath(ctx, ctx.Args[0])
	pattern := ""
	for i, a := range ctx.Args {
		if a == "-name" && i+1 < len(ctx.Args) {
			pattern = ctx.Args[i+1]
		}
	}
	var out []string
	walkFind(ctx.Vfs, root, pattern, &out)
	return terminal.Text(out...)
}

func walkFind(fs vfs.Vfs, path, pattern string, out *[]string) {
	entries, err := fs.List(path)
	if err != nil {
		return
	}
	for _, e := range entries {
		child := path + "/" + e.Name
		if path == "/" {
			child = "/" + e.Name
		}
		if pattern == "" || nameMatches(pattern, e.Name) {
			*out = append(*out, child)
		}
		if e.Kind == vfs.EntryDirectory {
			walkFind(fs, child, pattern, out)
		}
	}
}

func nameMatches(pattern, name string) bool {
	if !strings.ContainsAny(pattern, "*?") {
		return pattern == name
	}
	return terminal.GlobMatch(pattern, name)
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
