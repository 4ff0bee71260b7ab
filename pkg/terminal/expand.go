package terminal

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	oerrors "github.com/oasis-os/oasis/pkg/errors"
	"github.com/oasis-os/oasis/pkg/vfs"
)

const maxAliasDepth = 16

var varPattern = regexp.MustCompile(`\$(\{[A-Za-z_][A-Za-z0-9_]*\}|\?|[A-Za-z_][A-Za-z0-9_]*)`)

// ExpandVariables substitutes `$VAR`/`${VAR}` and the special
// variables `$?`, `$CWD`, `$USER`, `$HOME` in every non-literal token.
// Unbound variables expand to the empty string (spec §4.4).
func ExpandVariables(tokens []Token, env *Environment) []Token {
	out := make([]Token, len(tokens))
	for i, t := range tokens {
		if t.Literal {
			out[i] = t
			continue
		}
		out[i] = Token{Kind: t.Kind, Value: substituteVars(t.Value, env)}
	}
	return out
}

func substituteVars(s string, env *Environment) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		name := strings.TrimSuffix(strings.TrimPrefix(match[1:], "{"), "}")
		return lookupVar(name, env)
	})
}

func lookupVar(name string, env *Environment) string {
	switch name {
	case "?":
		return statusString(env.LastStatus)
	case "CWD":
		return env.Cwd
	case "USER":
		return env.Vars["USER"]
	case "HOME":
		return env.Vars["HOME"]
	default:
		return env.Vars[name]
	}
}

func statusString(status int) string {
	return strconv.Itoa(status)
}

// ExpandAliases replaces the first token with its alias definition,
// recursively, failing on a cycle or on exceeding the depth limit
// (spec §4.4: depth limit 16).
func ExpandAliases(tokens []Token, env *Environment) ([]Token, error) {
	if len(tokens) == 0 {
		return tokens, nil
	}
	seen := make(map[string]bool)
	for depth := 0; depth < maxAliasDepth; depth++ {
		first := tokens[0].Value
		repl, ok := env.Aliases[first]
		if !ok {
			return tokens, nil
		}
		if seen[first] {
			return nil, oerrors.New(oerrors.KindParse, "alias expansion cycle").WithInput(first)
		}
		seen[first] = true
		replTokens, err := Tokenize(repl)
		if err != nil {
			return nil, err
		}
		tokens = append(replTokens, tokens[1:]...)
		if len(tokens) == 0 {
			return tokens, nil
		}
	}
	return nil, oerrors.New(oerrors.KindParse, "alias expansion depth exceeded").WithInput(tokens[0].Value)
}

// ExpandGlobs expands tokens containing `*` or `?` against the VFS,
// listing matches lexicographically. A pattern with no matches
// expands to itself, never to nothing (spec §4.4).
func ExpandGlobs(tokens []Token, fs vfs.Vfs, cwd string) []string {
	var out []string
	for _, t := range tokens {
		if t.Literal || !strings.ContainsAny(t.Value, "*?") {
			out = append(out, t.Value)
			continue
		}
		matches := globExpand(t.Value, fs, cwd)
		if len(matches) == 0 {
			out = append(out, t.Value)
			continue
		}
		out = append(out, matches...)
	}
	return out
}

func globExpand(pattern string, fs vfs.Vfs, cwd string) []string {
	dir, base := splitDirPattern(pattern, cwd)
	entries, err := fs.List(dir)
	if err != nil {
		return nil
	}
	var matches []string
	for _, e := range entries {
		if globMatch(base, e.Name) {
			if dir == "/" {
				matches = append(matches, "/"+e.Name)
			} else {
				matches = append(matches, dir+"/"+e.Name)
			}
		}
	}
	sort.Strings(matches)
	return matches
}

func splitDirPattern(pattern, cwd string) (dir, base string) {
	idx := strings.LastIndex(pattern, "/")
	if idx < 0 {
		return vfs.Normalize(cwd), pattern
	}
	dirPart := pattern[:idx]
	if dirPart == "" {
		dirPart = "/"
	} else if !strings.HasPrefix(dirPart, "/") {
		dirPart = vfs.Normalize(cwd + "/" + dirPart)
	}
	return vfs.Normalize(dirPart), pattern[idx+1:]
}

// GlobMatch implements shell-style `*`/`?` matching, grounded on
// oasis-terminal/src/interpreter.rs glob_match. Exported so bundled
// commands (e.g. find -name) can reuse the same matcher.
func GlobMatch(pattern, name string) bool {
	return globMatchRunes([]rune(pattern), []rune(name))
}

func globMatch(pattern, name string) bool {
	return GlobMatch(pattern, name)
}

func globMatchRunes(pattern, name []rune) bool {
	if len(pattern) == 0 {
		return len(name) == 0
	}
	switch pattern[0] {
	case '*':
		if globMatchRunes(pattern[1:], name) {
			return true
		}
		for len(name) > 0 {
			name = name[1:]
			if globMatchRunes(pattern[1:], name) {
				return true
			}
		}
		return globMatchRunes(pattern[1:], name)
	case '?':
		if len(name) == 0 {
			return false
		}
		return globMatchRunes(pattern[1:], name[1:])
	default:
		if len(name) == 0 || name[0] != pattern[0] {
			return false
		}
		return globMatchRunes(pattern[1:], name[1:])
	}
}
