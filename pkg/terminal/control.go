package terminal

import (
	"strings"

	oerrors "github.com/oasis-os/oasis/pkg/errors"
)

// maxLoopIterations bounds while/for execution to avoid a runaway
// script hanging the frame loop (spec §4.4).
const maxLoopIterations = 1000

// RunScript interprets a multi-line script body: `if/else/fi`,
// `while/done`, `for VAR in WORDS/done`, `function NAME/end`, and
// plain command lines, grounded on
// oasis-terminal/src/interpreter.rs execute_script_block.
func (interp *Interpreter) RunScript(body string, env *Environment) (CommandOutput, error) {
	lines := strings.Split(body, "\n")
	iterations := 0
	var output []string
	runner := &scriptRunner{interp: interp, lines: lines, env: env, iterations: &iterations, output: &output}
	last, _, err := runner.runBlock()
	if err != nil {
		return last, err
	}
	// Every statement the script ran (across every nested if/while/for
	// block, since they all share this output slice) contributes its
	// text lines here, so the script's own result is the concatenation
	// of everything it printed (spec §8 scenario F) rather than just
	// whatever the final statement happened to return.
	if len(output) > 0 {
		return Text(output...), nil
	}
	return last, nil
}

type scriptRunner struct {
	interp     *Interpreter
	lines      []string
	pos        int
	env        *Environment
	iterations *int
	output     *[]string
}

func firstWord(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// runBlock executes lines sequentially until EOF or a top-level
// terminator keyword, returning the terminator it stopped on (if any).
func (r *scriptRunner) runBlock(terminators ...string) (CommandOutput, string, error) {
	var last CommandOutput
	for r.pos < len(r.lines) {
		raw := r.lines[r.pos]
		line := strings.TrimSpace(raw)
		if line == "" {
			r.pos++
			continue
		}
		first := firstWord(line)
		for _, term := range terminators {
			if first == term {
				r.pos++
				return last, term, nil
			}
		}

		switch first {
		case "if":
			out, err := r.runIf()
			if err != nil {
				return out, "", err
			}
			last = out
		case "while":
			out, err := r.runWhile()
			if err != nil {
				return out, "", err
			}
			last = out
		case "for":
			out, err := r.runFor()
			if err != nil {
				return out, "", err
			}
			last = out
		case "function":
			if err := r.defineFunction(); err != nil {
				return CommandOutput{}, "", err
			}
		default:
			r.pos++
			out, err := r.interp.ExecuteLine(line, r.env)
			if err != nil {
				return out, "", err
			}
			last = out
			r.collect(out)
		}
	}
	return last, "", nil
}

// collect appends a statement's printed text to the script's shared
// output buffer, so a whole script's result is everything it printed
// rather than just its final statement (spec §8 scenario F).
func (r *scriptRunner) collect(out CommandOutput) {
	if r.output == nil {
		return
	}
	switch out.Kind {
	case OutputText:
		*r.output = append(*r.output, out.Lines...)
	case OutputTable:
		if text, ok := out.Pipeable(); ok && text != "" {
			*r.output = append(*r.output, strings.Split(text, "\n")...)
		}
	}
}

// collectBlock advances past a nested construct without executing it,
// stopping at the first terminator seen at nesting depth 0.
func (r *scriptRunner) collectBlock(terminators ...string) ([]string, string) {
	var body []string
	depth := 0
	for r.pos < len(r.lines) {
		raw := r.lines[r.pos]
		line := strings.TrimSpace(raw)
		first := firstWord(line)

		if depth == 0 {
			for _, term := range terminators {
				if first == term {
					r.pos++
					return body, term
				}
			}
		}
		switch first {
		case "if", "while", "for", "function":
			depth++
		case "fi", "done", "end":
			depth--
		}
		body = append(body, raw)
		r.pos++
	}
	return body, ""
}

func (r *scriptRunner) runSubBlock(lines []string) (CommandOutput, error) {
	sub := &scriptRunner{interp: r.interp, lines: lines, env: r.env, iterations: r.iterations, output: r.output}
	out, _, err := sub.runBlock()
	return out, err
}

func (r *scriptRunner) evalCondition(cond string) bool {
	if strings.TrimSpace(cond) == "" {
		return false
	}
	_, err := r.interp.ExecuteLine(cond, r.env)
	if err != nil {
		return false
	}
	return r.env.LastStatus == 0
}

func (r *scriptRunner) runIf() (CommandOutput, error) {
	line := strings.TrimSpace(r.lines[r.pos])
	cond := strings.TrimSpace(strings.TrimPrefix(line, "if"))
	r.pos++

	thenLines, term := r.collectBlock("else", "fi")
	var elseLines []string
	if term == "else" {
		elseLines, _ = r.collectBlock("fi")
	}

	if r.evalCondition(cond) {
		return r.runSubBlock(thenLines)
	}
	if elseLines != nil {
		return r.runSubBlock(elseLines)
	}
	return CommandOutput{Kind: OutputText}, nil
}

func (r *scriptRunner) runWhile() (CommandOutput, error) {
	line := strings.TrimSpace(r.lines[r.pos])
	cond := strings.TrimSpace(strings.TrimPrefix(line, "while"))
	r.pos++
	bodyLines, _ := r.collectBlock("done")

	var last CommandOutput
	for r.evalCondition(cond) {
		if *r.iterations >= maxLoopIterations {
			return last, oerrors.New(oerrors.KindResource, "while loop exceeded max iterations")
		}
		*r.iterations++
		out, err := r.runSubBlock(bodyLines)
		if err != nil {
			return out, err
		}
		last = out
	}
	return last, nil
}

func (r *scriptRunner) runFor() (CommandOutput, error) {
	line := strings.TrimSpace(r.lines[r.pos])
	r.pos++
	bodyLines, _ := r.collectBlock("done")

	header := strings.TrimSpace(strings.TrimPrefix(line, "for"))
	fields := strings.Fields(header)
	if len(fields) < 2 || fields[1] != "in" {
		return CommandOutput{}, oerrors.New(oerrors.KindParse, "malformed for header").WithInput(line)
	}
	varName := fields[0]
	words := ExpandVariables(wordTokens(fields[2:]), r.env)

	var last CommandOutput
	for _, w := range words {
		if *r.iterations >= maxLoopIterations {
			return last, oerrors.New(oerrors.KindResource, "for loop exceeded max iterations")
		}
		*r.iterations++
		r.env.Vars[varName] = w.Value
		out, err := r.runSubBlock(bodyLines)
		if err != nil {
			return out, err
		}
		last = out
	}
	return last, nil
}

func wordTokens(words []string) []Token {
	out := make([]Token, len(words))
	for i, w := range words {
		out[i] = Token{Kind: TokWord, Value: w}
	}
	return out
}

func (r *scriptRunner) defineFunction() error {
	line := strings.TrimSpace(r.lines[r.pos])
	name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(line, "function")))
	r.pos++
	bodyLines, _ := r.collectBlock("end")
	if name == "" {
		return oerrors.New(oerrors.KindParse, "function missing name")
	}
	r.env.Functions[name] = strings.Join(bodyLines, "\n")
	return nil
}
