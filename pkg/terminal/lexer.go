// Package terminal implements the OASIS shell pipeline: tokenize,
// expand, parse operators, dispatch, collect output (spec §4.4),
// grounded line-for-line on oasis-terminal/src/interpreter.rs.
package terminal

import (
	"strings"

	oerrors "github.com/oasis-os/oasis/pkg/errors"
)

// TokenKind distinguishes plain words from shell operators.
type TokenKind int

const (
	TokWord TokenKind = iota
	TokSemi
	TokAndAnd
	TokOrOr
	TokPipe
	TokRedirectOut
	TokRedirectAppend
)

// Token is one lexical unit. Literal is true when the word came from
// (or includes) a single-quoted span, meaning variable expansion must
// skip it verbatim.
type Token struct {
	Kind    TokenKind
	Value   string
	Literal bool
}

// Tokenize splits a raw input line into tokens. Whitespace separates
// words; single quotes preserve bytes verbatim except the closing
// quote; double quotes allow $VAR and \" \\ \$ escapes; a bare
// backslash escapes the next byte. An unterminated quote is a
// ParseError — tokenization never panics on foreign input.
func Tokenize(line string) ([]Token, error) {
	runes := []rune(line)
	n := len(runes)
	var toks []Token

	i := 0
	for i < n {
		c := runes[i]
		switch {
		case c == ' ' || c == '\t':
			i++
		case c == ';':
			toks = append(toks, Token{Kind: TokSemi, Value: ";"})
			i++
		case c == '&' && i+1 < n && runes[i+1] == '&':
			toks = append(toks, Token{Kind: TokAndAnd, Value: "&&"})
			i += 2
		case c == '|' && i+1 < n && runes[i+1] == '|':
			toks = append(toks, Token{Kind: TokOrOr, Value: "||"})
			i += 2
		case c == '|':
			toks = append(toks, Token{Kind: TokPipe, Value: "|"})
			i++
		case c == '>' && i+1 < n && runes[i+1] == '>':
			toks = append(toks, Token{Kind: TokRedirectAppend, Value: ">>"})
			i += 2
		case c == '>':
			toks = append(toks, Token{Kind: TokRedirectOut, Value: ">"})
			i++
		default:
			value, literal, consumed, err := readWord(runes[i:])
			if err != nil {
				return nil, err
			}
			toks = append(toks, Token{Kind: TokWord, Value: value, Literal: literal})
			i += consumed
		}
	}
	return toks, nil
}

// readWord consumes one whitespace/operator-delimited word, resolving
// quotes and escapes as it goes.
func readWord(rs []rune) (value string, literal bool, consumed int, err error) {
	var sb strings.Builder
	n := len(rs)
	i := 0
	for i < n {
		c := rs[i]
		switch {
		case c == '\'':
			j := i + 1
			for j < n && rs[j] != '\'' {
				sb.WriteRune(rs[j])
				j++
			}
			if j >= n {
				return "", false, 0, oerrors.New(oerrors.KindParse, "unterminated single quote")
			}
			literal = true
			i = j + 1
		case c == '"':
			j := i + 1
			for j < n && rs[j] != '"' {
				if rs[j] == '\\' && j+1 < n && (rs[j+1] == '"' || rs[j+1] == '\\' || rs[j+1] == '$') {
					sb.WriteRune(rs[j+1])
					j += 2
					continue
				}
				sb.WriteRune(rs[j])
				j++
			}
			if j >= n {
				return "", false, 0, oerrors.New(oerrors.KindParse, "unterminated double quote")
			}
			i = j + 1
		case c == '\\':
			if i+1 >= n {
				return "", false, 0, oerrors.New(oerrors.KindParse, "trailing backslash")
			}
			sb.WriteRune(rs[i+1])
			i += 2
		case c == ' ' || c == '\t' || c == ';' || c == '|' || c == '>' || c == '&':
			return sb.String(), literal, i, nil
		default:
			sb.WriteRune(c)
			i++
		}
	}
	return sb.String(), literal, i, nil
}
