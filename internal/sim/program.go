package sim

import (
	"github.com/pkg/errors"

	"quartz/grammar"
	"quartz/internal/yul"
)

// program is loaded code: its top-level statements and every function
// definition hoisted into one namespace
type program struct {
	body      []yul.Statement
	functions map[string]*yul.FunctionDefinition
	inline    map[string]yul.Expression
	nested    map[string][]yul.Statement
}

// load expands inline text and hoists function definitions
func load(stmts []yul.Statement) (*program, error) {
	p := &program{
		functions: make(map[string]*yul.FunctionDefinition),
		inline:    make(map[string]yul.Expression),
		nested:    make(map[string][]yul.Statement),
	}
	body, err := p.expand(stmts)
	if err != nil {
		return nil, err
	}
	p.body = body
	if err := p.hoist(body); err != nil {
		return nil, err
	}
	return p, nil
}

// expand replaces inline statements with their parsed form
func (p *program) expand(stmts []yul.Statement) ([]yul.Statement, error) {
	out := make([]yul.Statement, 0, len(stmts))
	for _, s := range stmts {
		inline, ok := s.(*yul.InlineStatement)
		if !ok {
			out = append(out, s)
			continue
		}
		parsed, err := grammar.Parse("inline", inline.Code)
		if err != nil {
			return nil, errors.Wrap(err, "parsing inline code")
		}
		out = append(out, parsed...)
	}
	return out, nil
}

func (p *program) hoist(stmts []yul.Statement) error {
	for _, s := range stmts {
		switch s := s.(type) {
		case *yul.FunctionDefinition:
			if prev, ok := p.functions[s.Name]; ok && prev != s {
				return errors.Errorf("function %s defined twice", s.Name)
			}
			p.functions[s.Name] = s
			if err := p.hoistBlock(s.Body); err != nil {
				return err
			}
		case *yul.Block:
			if err := p.hoistBlock(s); err != nil {
				return err
			}
		case *yul.If:
			if err := p.hoistBlock(s.Body); err != nil {
				return err
			}
		case *yul.Switch:
			for _, c := range s.Cases {
				if err := p.hoistBlock(c.Body); err != nil {
					return err
				}
			}
			if err := p.hoistBlock(s.Default); err != nil {
				return err
			}
		case *yul.ForLoop:
			for _, b := range []*yul.Block{s.Init, s.Post, s.Body} {
				if err := p.hoistBlock(b); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (p *program) hoistBlock(b *yul.Block) error {
	if b == nil {
		return nil
	}
	return p.hoist(b.Statements)
}

// inlineStatements parses nested raw statement text once. Functions it
// defines are not visible outside of it.
func (p *program) inlineStatements(code string) ([]yul.Statement, error) {
	if stmts, ok := p.nested[code]; ok {
		return stmts, nil
	}
	stmts, err := grammar.Parse("inline", code)
	if err != nil {
		return nil, errors.Wrap(err, "parsing inline code")
	}
	if err := p.hoist(stmts); err != nil {
		return nil, err
	}
	p.nested[code] = stmts
	return stmts, nil
}

// inlineExpression parses raw expression text once
func (p *program) inlineExpression(code string) (yul.Expression, error) {
	if e, ok := p.inline[code]; ok {
		return e, nil
	}
	stmts, err := grammar.Parse("inline", code)
	if err != nil {
		return nil, errors.Wrap(err, "parsing inline expression")
	}
	if len(stmts) != 1 {
		return nil, errors.Errorf("inline expression %q is not a single expression", code)
	}
	es, ok := stmts[0].(*yul.ExpressionStatement)
	if !ok {
		return nil, errors.Errorf("inline expression %q is not a single expression", code)
	}
	p.inline[code] = es.Expression
	return es.Expression, nil
}
