package terminal

import oerrors "github.com/oasis-os/oasis/pkg/errors"

// ChainOp is the operator joining one chain segment to the next.
// ParseLine yields a flat list of links; no operator binds tighter
// than another.
type ChainOp int

const (
	OpNone ChainOp = iota
	OpSeq
	OpAnd
	OpOr
)

// Redirect is a `>`/`>>` target parsed off the tail of an invocation.
type Redirect struct {
	Path   string
	Append bool
}

// Invocation is one unexpanded command call: its words plus an
// optional output redirect.
type Invocation struct {
	Words    []Token
	Redirect *Redirect
}

// Pipeline is a sequence of invocations joined by `|`.
type Pipeline []Invocation

// ChainLink is one pipeline plus the operator that follows it.
type ChainLink struct {
	Pipeline Pipeline
	Op       ChainOp
}

// ParseLine splits a token stream into chain links at top-level `;`,
// `&&`, `||`, then splits each link's tokens into a pipeline at `|`,
// then parses each pipeline stage's trailing redirect.
func ParseLine(tokens []Token) ([]ChainLink, error) {
	var links []ChainLink
	var cur []Token

	flush := func(op ChainOp) error {
		pipeline, err := parsePipeline(cur)
		if err != nil {
			return err
		}
		links = append(links, ChainLink{Pipeline: pipeline, Op: op})
		cur = nil
		return nil
	}

	for _, t := range tokens {
		switch t.Kind {
		case TokSemi:
			if err := flush(OpSeq); err != nil {
				return nil, err
			}
		case TokAndAnd:
			if err := flush(OpAnd); err != nil {
				return nil, err
			}
		case TokOrOr:
			if err := flush(OpOr); err != nil {
				return nil, err
			}
		default:
			cur = append(cur, t)
		}
	}
	if len(cur) > 0 || len(links) == 0 {
		if err := flush(OpNone); err != nil {
			return nil, err
		}
	}
	return links, nil
}

func parsePipeline(tokens []Token) (Pipeline, error) {
	var pipeline Pipeline
	var cur []Token

	flush := func() error {
		inv, err := parseInvocation(cur)
		if err != nil {
			return err
		}
		pipeline = append(pipeline, inv)
		cur = nil
		return nil
	}

	for _, t := range tokens {
		if t.Kind == TokPipe {
			if err := flush(); err != nil {
				return nil, err
			}
		} else {
			cur = append(cur, t)
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return pipeline, nil
}

func parseInvocation(tokens []Token) (Invocation, error) {
	var words []Token
	var redirect *Redirect

	i := 0
	for i < len(tokens) {
		t := tokens[i]
		if t.Kind == TokRedirectOut || t.Kind == TokRedirectAppend {
			if i+1 >= len(tokens) || tokens[i+1].Kind != TokWord {
				return Invocation{}, oerrors.New(oerrors.KindParse, "redirection missing target path")
			}
			redirect = &Redirect{Path: tokens[i+1].Value, Append: t.Kind == TokRedirectAppend}
			i += 2
			continue
		}
		words = append(words, t)
		i++
	}
	if len(words) == 0 {
		return Invocation{}, oerrors.New(oerrors.KindParse, "empty command")
	}
	return Invocation{Words: words, Redirect: redirect}, nil
}
