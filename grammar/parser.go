package grammar

import (
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/alecthomas/participle/v2"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"quartz/internal/ast"
	diagnostics "quartz/internal/errors"
	"quartz/internal/yul"
)

var buildParser = sync.OnceValues(func() (*participle.Parser[Program], error) {
	return participle.Build[Program](
		participle.Lexer(YulLexer),
		participle.Elide("Whitespace", "Comment", "BlockComment"),
		participle.UseLookahead(4),
	)
})

// Parse parses Yul source into the IR
func Parse(filename, source string) ([]yul.Statement, error) {
	parser, err := buildParser()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build parser")
	}

	program, err := parser.ParseString(filename, source)
	if err != nil {
		return nil, err
	}
	return program.toYul()
}

// ParseFile reads and parses a Yul file. Syntax errors are printed to
// stderr with the offending line before being returned.
func ParseFile(path string) ([]yul.Statement, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read file")
	}

	stmts, err := Parse(path, string(source))
	if err != nil {
		if diag, ok := Diagnostic(err); ok {
			fmt.Fprint(os.Stderr, diagnostics.NewErrorReporter(path, string(source)).FormatError(diag))
		}
		return nil, err
	}
	return stmts, nil
}

// Diagnostic converts a participle syntax error into a compiler diagnostic
func Diagnostic(err error) (diagnostics.CompilerError, bool) {
	var pe participle.Error
	if !errors.As(err, &pe) {
		return diagnostics.CompilerError{}, false
	}
	pos := pe.Position()
	return diagnostics.YulSyntax(pe.Message(), ast.Position{
		Filename: pos.Filename,
		Offset:   pos.Offset,
		Line:     pos.Line,
		Column:   pos.Column,
	}), true
}

// Conversion from the parse tree into the IR

func (p *Program) toYul() ([]yul.Statement, error) {
	return convertStatements(p.Statements)
}

func convertStatements(stmts []*Statement) ([]yul.Statement, error) {
	out := make([]yul.Statement, 0, len(stmts))
	for _, s := range stmts {
		converted, err := s.toYul()
		if err != nil {
			return nil, err
		}
		out = append(out, converted)
	}
	return out, nil
}

func (b *Block) toYul() (*yul.Block, error) {
	stmts, err := convertStatements(b.Statements)
	if err != nil {
		return nil, err
	}
	return yul.NewBlock(stmts...), nil
}

func (s *Statement) toYul() (yul.Statement, error) {
	switch {
	case s.Block != nil:
		return s.Block.toYul()
	case s.Function != nil:
		body, err := s.Function.Body.toYul()
		if err != nil {
			return nil, err
		}
		return &yul.FunctionDefinition{
			Name:    s.Function.Name,
			Params:  typedNames(s.Function.Params),
			Returns: typedNames(s.Function.Returns),
			Body:    body,
		}, nil
	case s.Let != nil:
		decl := &yul.VariableDeclaration{Names: typedNames(s.Let.Names)}
		if s.Let.Value != nil {
			value, err := s.Let.Value.toYul()
			if err != nil {
				return nil, err
			}
			decl.Value = value
		}
		return yul.Stmt(decl), nil
	case s.If != nil:
		cond, err := s.If.Condition.toYul()
		if err != nil {
			return nil, err
		}
		body, err := s.If.Body.toYul()
		if err != nil {
			return nil, err
		}
		return &yul.If{Condition: cond, Body: body}, nil
	case s.Switch != nil:
		return s.Switch.toYul()
	case s.For != nil:
		return s.For.toYul()
	case s.Break:
		return &yul.Break{}, nil
	case s.Continue:
		return &yul.Continue{}, nil
	case s.Leave:
		return &yul.Leave{}, nil
	case s.Assignment != nil:
		value, err := s.Assignment.Value.toYul()
		if err != nil {
			return nil, err
		}
		return yul.Stmt(&yul.Assignment{Names: s.Assignment.Names, Value: value}), nil
	case s.Expression != nil:
		e, err := s.Expression.toYul()
		if err != nil {
			return nil, err
		}
		return yul.Stmt(e), nil
	}
	return nil, errors.Errorf("%s: empty statement", s.Pos)
}

func (s *Switch) toYul() (yul.Statement, error) {
	expr, err := s.Expression.toYul()
	if err != nil {
		return nil, err
	}
	out := &yul.Switch{Expression: expr}
	for _, c := range s.Cases {
		value, err := c.Value.toYul()
		if err != nil {
			return nil, err
		}
		body, err := c.Body.toYul()
		if err != nil {
			return nil, err
		}
		out.Cases = append(out.Cases, yul.Case{Value: value, Body: body})
	}
	if s.Default != nil {
		if out.Default, err = s.Default.toYul(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (f *For) toYul() (yul.Statement, error) {
	init, err := f.Init.toYul()
	if err != nil {
		return nil, err
	}
	cond, err := f.Condition.toYul()
	if err != nil {
		return nil, err
	}
	post, err := f.Post.toYul()
	if err != nil {
		return nil, err
	}
	body, err := f.Body.toYul()
	if err != nil {
		return nil, err
	}
	return &yul.ForLoop{Init: init, Condition: cond, Post: post, Body: body}, nil
}

func (e *Expression) toYul() (yul.Expression, error) {
	switch {
	case e.Literal != nil:
		return e.Literal.toYul()
	case e.Call != nil:
		args := make([]yul.Expression, 0, len(e.Call.Arguments))
		for _, a := range e.Call.Arguments {
			arg, err := a.toYul()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
		return yul.Call(e.Call.Name, args...), nil
	case e.Ident != "":
		return yul.Ident(e.Ident), nil
	}
	return nil, errors.Errorf("%s: empty expression", e.Pos)
}

func (l *Literal) toYul() (yul.Literal, error) {
	switch {
	case l.Hex != "":
		return yul.Hex(l.Hex), nil
	case l.Number != "":
		if v, err := strconv.ParseUint(l.Number, 10, 64); err == nil {
			return yul.Num(v), nil
		}
		// Wider than 64 bits: keep the exact value as hex
		word, err := uint256.FromDecimal(l.Number)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid number %s", l.Number)
		}
		return yul.Hex(word.Hex()), nil
	case l.String != "":
		s, err := strconv.Unquote(l.String)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid string %s", l.String)
		}
		return yul.Str(s), nil
	case l.Bool != "":
		return &yul.BoolLiteral{Value: l.Bool == "true"}, nil
	}
	return nil, errors.New("empty literal")
}

func typedNames(names []*TypedName) []yul.TypedName {
	out := make([]yul.TypedName, 0, len(names))
	for _, n := range names {
		out = append(out, yul.TypedName{Name: n.Name, Type: parseType(n.Type)})
	}
	return out
}

func parseType(name string) yul.Type {
	for t := yul.Bool; t <= yul.S256; t++ {
		if t.String() == name {
			return t
		}
	}
	return yul.Any
}
