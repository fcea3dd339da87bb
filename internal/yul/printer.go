package yul

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrDecimalLiteral is returned when a decimal literal reaches the printer
var ErrDecimalLiteral = errors.New("decimal literals have no Yul representation")

// Printer renders Yul IR as source text
type Printer struct {
	indent int
	output strings.Builder
	err    error
}

// NewPrinter creates a new Yul printer
func NewPrinter() *Printer {
	return &Printer{indent: 0}
}

// Print renders a node. Expressions render on a single line without a
// trailing newline; statements render one per line.
func Print(n Node) (string, error) {
	p := NewPrinter()
	switch n := n.(type) {
	case Expression:
		p.output.WriteString(p.expression(n))
	case Statement:
		p.printStatement(n)
	}
	if p.err != nil {
		return "", p.err
	}
	return p.output.String(), nil
}

// PrintIndented renders statements as if nested indent levels deep
func PrintIndented(indent int, stmts ...Statement) (string, error) {
	p := NewPrinter()
	p.indent = indent
	for _, s := range stmts {
		p.printStatement(s)
	}
	if p.err != nil {
		return "", p.err
	}
	return p.output.String(), nil
}

// Helper methods

func (p *Printer) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.output.WriteString("  ")
	}
}

func (p *Printer) writeLine(format string, args ...interface{}) {
	p.writeIndent()
	p.output.WriteString(fmt.Sprintf(format, args...))
	p.output.WriteString("\n")
}

func (p *Printer) fail(err error) {
	if p.err == nil {
		p.err = err
	}
}

// printBody writes header followed by a braced block
func (p *Printer) printBody(header string, b *Block) {
	open := "{"
	if header != "" {
		open = header + " {"
	}
	if b == nil || b.IsEmpty() {
		p.writeLine("%s }", open)
		return
	}
	p.writeLine("%s", open)
	p.indent++
	for _, s := range b.Statements {
		p.printStatement(s)
	}
	p.indent--
	p.writeLine("}")
}

func (p *Printer) printStatement(s Statement) {
	switch s := s.(type) {
	case *Block:
		p.printBody("", s)
	case *FunctionDefinition:
		header := fmt.Sprintf("function %s(%s)", s.Name, typedNames(s.Params))
		if len(s.Returns) > 0 {
			header += " -> " + typedNames(s.Returns)
		}
		p.printBody(header, s.Body)
	case *If:
		p.printBody("if "+p.expression(s.Condition), s.Body)
	case *ExpressionStatement:
		if text := p.expression(s.Expression); text != "" {
			p.writeLine("%s", text)
		}
	case *Switch:
		p.writeLine("switch %s", p.expression(s.Expression))
		for _, c := range s.Cases {
			p.printBody("case "+p.expression(c.Value), c.Body)
		}
		if s.Default != nil {
			p.printBody("default", s.Default)
		}
	case *ForLoop:
		header := fmt.Sprintf("for %s %s %s", p.inlineBlock(s.Init), p.expression(s.Condition), p.inlineBlock(s.Post))
		p.printBody(header, s.Body)
	case *Break:
		p.writeLine("break")
	case *Continue:
		p.writeLine("continue")
	case *Leave:
		p.writeLine("leave")
	case *NoopStatement:
	case *InlineStatement:
		p.printInline(s.Code)
	default:
		p.fail(fmt.Errorf("unknown statement %T", s))
	}
}

// inlineBlock renders a block on one line, as used by for loop headers
func (p *Printer) inlineBlock(b *Block) string {
	if b == nil || b.IsEmpty() {
		return "{ }"
	}
	sub := NewPrinter()
	for _, s := range b.Statements {
		sub.printStatement(s)
	}
	if sub.err != nil {
		p.fail(sub.err)
	}
	var parts []string
	for _, line := range strings.Split(sub.output.String(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			parts = append(parts, line)
		}
	}
	return "{ " + strings.Join(parts, " ") + " }"
}

// printInline re-indents raw text so it nests under the current level
func (p *Printer) printInline(code string) {
	lines := strings.Split(strings.Trim(code, "\n"), "\n")
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			p.output.WriteString("\n")
			continue
		}
		p.writeLine("%s", line)
	}
}

func (p *Printer) expression(e Expression) string {
	switch e := e.(type) {
	case *FunctionCall:
		args := make([]string, len(e.Arguments))
		for i, a := range e.Arguments {
			args[i] = p.expression(a)
		}
		return fmt.Sprintf("%s(%s)", e.Name, strings.Join(args, ", "))
	case *Identifier:
		return e.Name
	case *VariableDeclaration:
		decl := "let " + typedNames(e.Names)
		if e.Value == nil {
			return decl
		}
		return decl + " := " + p.expression(e.Value)
	case *Assignment:
		return strings.Join(e.Names, ", ") + " := " + p.expression(e.Value)
	case *InlineExpression:
		return e.Code
	case *Catchable:
		return p.expression(e.Value)
	case *NoopExpression:
		return ""
	case *NumLiteral:
		return strconv.FormatUint(e.Value, 10)
	case *StringLiteral:
		return strconv.Quote(e.Value)
	case *BoolLiteral:
		if e.Value {
			return "1"
		}
		return "0"
	case *DecimalLiteral:
		p.fail(ErrDecimalLiteral)
		return ""
	case *HexLiteral:
		return e.Value
	case nil:
		p.fail(errors.New("nil expression"))
		return ""
	}
	p.fail(fmt.Errorf("unknown expression %T", e))
	return ""
}

func typedNames(names []TypedName) string {
	parts := make([]string, len(names))
	for i, n := range names {
		if n.Type == Any {
			parts[i] = n.Name
		} else {
			parts[i] = n.Name + ": " + n.Type.String()
		}
	}
	return strings.Join(parts, ", ")
}
