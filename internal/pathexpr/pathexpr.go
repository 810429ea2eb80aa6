// Package pathexpr reads and writes navigation paths in a compact textual
// form, for example:
//
//	types supertypes+
//	~associations:topic roles
//	loopback[types has person]
//	traverse:instance:type [supertypes+ has 'living thing']
//
// Tokens are separated by whitespace and split the way a shell would, so
// note names with spaces can be quoted. A leading ~ reverses a step, a
// trailing + makes it transitive and each bracketed "[<path> has <note>]"
// attaches a predicate to the step before it. Note names may not contain
// brackets.
package pathexpr

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/kballard/go-shellquote"

	"github.com/HendryAvila/notenav/internal/navigate"
	"github.com/HendryAvila/notenav/internal/note"
)

// ErrSyntax marks a malformed path expression.
var ErrSyntax = errors.New("path syntax error")

// Resolver turns a note name into a note.
type Resolver interface {
	ResolveName(name string) (note.Note, error)
}

// Namer gives a note a display name, if it has one.
type Namer interface {
	NameOf(n note.Note) (string, bool)
}

// Builtins resolves and names only well-known notes and literal UUIDs.
type Builtins struct{}

func (Builtins) ResolveName(name string) (note.Note, error) {
	if n, ok := note.ByWellKnownName(name); ok {
		return n, nil
	}
	return note.Parse(name)
}

func (Builtins) NameOf(n note.Note) (string, bool) {
	return note.WellKnownName(n)
}

const hasKeyword = "has"

type token struct {
	text string
	// word is the index of the whitespace-separated word the token came from.
	word int
}

// lex splits expr into words and then splits brackets off each word.
func lex(expr string) ([]token, error) {
	words, err := shellquote.Split(expr)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "split expression"), ErrSyntax)
	}

	var toks []token
	for i, w := range words {
		start := 0
		for j, r := range w {
			if r != '[' && r != ']' {
				continue
			}
			if j > start {
				toks = append(toks, token{text: w[start:j], word: i})
			}
			toks = append(toks, token{text: string(r), word: i})
			start = j + 1
		}
		if start < len(w) {
			toks = append(toks, token{text: w[start:], word: i})
		}
	}
	return toks, nil
}

// Parse reads a path expression. Note names are resolved through r. An
// empty expression is the empty path.
func Parse(expr string, r Resolver) (navigate.Path, error) {
	toks, err := lex(expr)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks, r: r}
	path, err := p.path(false)
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.toks) {
		return nil, p.errorf("unexpected %q", p.toks[p.pos].text)
	}
	return path, nil
}

type parser struct {
	toks []token
	pos  int
	r    Resolver
}

func (p *parser) errorf(format string, args ...any) error {
	at := "end of expression"
	if p.pos < len(p.toks) {
		at = "word " + strconv.Itoa(p.toks[p.pos].word+1)
	}
	return errors.Wrapf(ErrSyntax, "%s: "+format, append([]any{at}, args...)...)
}

func (p *parser) peek() (string, bool) {
	if p.pos >= len(p.toks) {
		return "", false
	}
	return p.toks[p.pos].text, true
}

// path parses steps until the input ends, or until "has" or "]" when
// inside a predicate.
func (p *parser) path(inPredicate bool) (navigate.Path, error) {
	var path navigate.Path
	for {
		tok, ok := p.peek()
		if !ok {
			return path, nil
		}
		if inPredicate && (tok == hasKeyword || tok == "]") {
			return path, nil
		}
		if tok == "[" || tok == "]" {
			return nil, p.errorf("unexpected %q", tok)
		}
		step, err := p.step()
		if err != nil {
			return nil, err
		}
		path = append(path, step)
	}
}

func (p *parser) step() (navigate.Step, error) {
	step, err := p.axisWord(p.toks[p.pos].text)
	if err != nil {
		return navigate.Step{}, err
	}
	p.pos++

	for {
		if tok, ok := p.peek(); !ok || tok != "[" {
			return step, nil
		}
		pred, err := p.predicate()
		if err != nil {
			return navigate.Step{}, err
		}
		step = step.WithPredicate(pred)
	}
}

func (p *parser) predicate() (navigate.Predicate, error) {
	p.pos++ // [
	path, err := p.path(true)
	if err != nil {
		return navigate.Predicate{}, err
	}
	if tok, ok := p.peek(); !ok || tok != hasKeyword {
		return navigate.Predicate{}, p.errorf("predicate needs %q", hasKeyword)
	}
	p.pos++

	name, ok := p.peek()
	if !ok || name == "[" || name == "]" {
		return navigate.Predicate{}, p.errorf("predicate needs a note after %q", hasKeyword)
	}
	n, err := p.resolve(name)
	if err != nil {
		return navigate.Predicate{}, err
	}
	p.pos++

	if tok, ok := p.peek(); !ok || tok != "]" {
		return navigate.Predicate{}, p.errorf("unclosed predicate")
	}
	p.pos++
	return navigate.NewPredicate(path, navigate.Include(n)), nil
}

func (p *parser) axisWord(word string) (navigate.Step, error) {
	w := word
	negate := strings.HasPrefix(w, "~")
	w = strings.TrimPrefix(w, "~")
	transitive := strings.HasSuffix(w, "+")
	w = strings.TrimSuffix(w, "+")

	head, arg, hasArg := strings.Cut(w, ":")
	var step navigate.Step
	switch head {
	case "types":
		step = navigate.Types()
	case "instances":
		step = navigate.Instances()
	case "supertypes":
		step = navigate.Supertypes()
	case "subtypes":
		step = navigate.Subtypes()
	case "loopback":
		step = navigate.Loopback()
	case "roles":
		step = navigate.Roles()
	case "associations", "players":
		if !hasArg || arg == "" {
			return navigate.Step{}, p.errorf("%s needs a role, as in %s:topic", head, head)
		}
		role, err := p.resolve(arg)
		if err != nil {
			return navigate.Step{}, err
		}
		step = navigate.Associations(role)
		if head == "players" {
			step = navigate.Players(role)
		}
	case "traverse":
		from, to, ok := strings.Cut(arg, ":")
		if !hasArg || !ok || from == "" || to == "" {
			return navigate.Step{}, p.errorf("traverse needs two roles, as in traverse:instance:type")
		}
		fromRole, err := p.resolve(from)
		if err != nil {
			return navigate.Step{}, err
		}
		toRole, err := p.resolve(to)
		if err != nil {
			return navigate.Step{}, err
		}
		step = navigate.Traverse(fromRole, toRole)
	default:
		return navigate.Step{}, p.errorf("unknown step %q", word)
	}

	switch head {
	case "associations", "players", "traverse":
	default:
		if hasArg {
			return navigate.Step{}, p.errorf("%s takes no argument", head)
		}
	}

	if transitive {
		step = step.Transitive()
	}
	if negate {
		step = step.Negate()
	}
	return step, nil
}

func (p *parser) resolve(name string) (note.Note, error) {
	n, err := p.r.ResolveName(name)
	if err != nil {
		return note.Nil, errors.Mark(errors.Wrapf(err, "unknown note %q", name), ErrSyntax)
	}
	return n, nil
}
