package sim

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"quartz/internal/mangle"
	"quartz/internal/runtime"
	"quartz/internal/yul"
)

// ErrStepLimit aborts a transaction that runs longer than the configured limit
var ErrStepLimit = errors.New("step limit exceeded")

const maxDepth = 1024

type flow int

const (
	flowNext flow = iota
	flowBreak
	flowContinue
	flowLeave
)

// haltError ends a transaction through return, revert or stop
type haltError struct {
	reverted bool
	data     []byte
	guard    runtime.Guard
}

func (h *haltError) Error() string {
	if h.reverted {
		return "reverted: " + h.guard.String()
	}
	return "halted"
}

// scope holds the variables of one Yul block
type scope struct {
	vars   map[string]uint256.Int
	parent *scope
}

func newScope(parent *scope) *scope {
	return &scope{vars: make(map[string]uint256.Int), parent: parent}
}

func (s *scope) lookup(name string) (uint256.Int, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if v, ok := sc.vars[name]; ok {
			return v, true
		}
	}
	return uint256.Int{}, false
}

func (s *scope) set(name string, v uint256.Int) bool {
	for sc := s; sc != nil; sc = sc.parent {
		if _, ok := sc.vars[name]; ok {
			sc.vars[name] = v
			return true
		}
	}
	return false
}

// machine runs one transaction
type machine struct {
	vm     *VM
	prog   *program
	tx     Tx
	code   []byte
	memory Memory
	frames []string
	steps  int

	// region attributes reverts that happen outside any runtime helper
	region runtime.Guard
}

// enter runs body with region set, restoring the previous region afterwards
func (m *machine) enter(region runtime.Guard, body func() (flow, error)) (flow, error) {
	prev := m.region
	m.region = region
	defer func() { m.region = prev }()
	return body()
}

func (m *machine) step() error {
	m.steps++
	if m.vm.cfg.StepLimit > 0 && m.steps > m.vm.cfg.StepLimit {
		return ErrStepLimit
	}
	return nil
}

func (m *machine) execBlock(b *yul.Block, parent *scope) (flow, error) {
	if b == nil {
		return flowNext, nil
	}
	return m.exec(b.Statements, newScope(parent))
}

func (m *machine) exec(stmts []yul.Statement, sc *scope) (flow, error) {
	for _, s := range stmts {
		f, err := m.execStatement(s, sc)
		if err != nil || f != flowNext {
			return f, err
		}
	}
	return flowNext, nil
}

func (m *machine) execStatement(s yul.Statement, sc *scope) (flow, error) {
	if err := m.step(); err != nil {
		return flowNext, err
	}
	switch s := s.(type) {
	case *yul.Block:
		return m.execBlock(s, sc)
	case *yul.FunctionDefinition, *yul.NoopStatement:
		return flowNext, nil
	case *yul.ExpressionStatement:
		return flowNext, m.execExpression(s.Expression, sc)
	case *yul.If:
		cond, err := m.eval(s.Condition, sc)
		if err != nil {
			return flowNext, err
		}
		if cond.IsZero() {
			return flowNext, nil
		}
		if readsVariable(s.Condition, mangle.CallerCheck) {
			return m.enter(runtime.GuardCallerProtection, func() (flow, error) {
				return m.execBlock(s.Body, sc)
			})
		}
		return m.execBlock(s.Body, sc)
	case *yul.Switch:
		return m.execSwitch(s, sc)
	case *yul.ForLoop:
		return m.execFor(s, sc)
	case *yul.Break:
		return flowBreak, nil
	case *yul.Continue:
		return flowContinue, nil
	case *yul.Leave:
		return flowLeave, nil
	case *yul.InlineStatement:
		stmts, err := m.prog.inlineStatements(s.Code)
		if err != nil {
			return flowNext, err
		}
		return m.exec(stmts, sc)
	}
	return flowNext, errors.Errorf("cannot execute %T", s)
}

func (m *machine) execExpression(e yul.Expression, sc *scope) error {
	switch e := e.(type) {
	case *yul.VariableDeclaration:
		values := make([]uint256.Int, len(e.Names))
		if e.Value != nil {
			var err error
			if values, err = m.evalN(e.Value, len(e.Names), sc); err != nil {
				return err
			}
		}
		for i, n := range e.Names {
			sc.vars[n.Name] = values[i]
		}
		return nil
	case *yul.Assignment:
		values, err := m.evalN(e.Value, len(e.Names), sc)
		if err != nil {
			return err
		}
		for i, name := range e.Names {
			if !sc.set(name, values[i]) {
				return errors.Errorf("assignment to undeclared variable %s", name)
			}
		}
		return nil
	case *yul.NoopExpression:
		return nil
	}
	_, err := m.evalMulti(e, sc)
	return err
}

func (m *machine) execSwitch(s *yul.Switch, sc *scope) (flow, error) {
	v, err := m.eval(s.Expression, sc)
	if err != nil {
		return flowNext, err
	}
	for _, c := range s.Cases {
		key, err := literal(c.Value)
		if err != nil {
			return flowNext, err
		}
		if key.Eq(&v) {
			return m.execBlock(c.Body, sc)
		}
	}
	if call, ok := s.Expression.(*yul.FunctionCall); ok && call.Name == runtime.Selector.Name() {
		return m.enter(runtime.GuardUnknownSelector, func() (flow, error) {
			return m.execBlock(s.Default, sc)
		})
	}
	return m.execBlock(s.Default, sc)
}

func readsVariable(e yul.Expression, name string) bool {
	switch e := e.(type) {
	case *yul.Identifier:
		return e.Name == name
	case *yul.FunctionCall:
		for _, a := range e.Arguments {
			if readsVariable(a, name) {
				return true
			}
		}
	}
	return false
}

func (m *machine) execFor(s *yul.ForLoop, sc *scope) (flow, error) {
	loop := newScope(sc)
	if s.Init != nil {
		if f, err := m.exec(s.Init.Statements, loop); err != nil || f != flowNext {
			return f, err
		}
	}
	for {
		if err := m.step(); err != nil {
			return flowNext, err
		}
		cond, err := m.eval(s.Condition, loop)
		if err != nil {
			return flowNext, err
		}
		if cond.IsZero() {
			return flowNext, nil
		}
		f, err := m.execBlock(s.Body, loop)
		if err != nil {
			return flowNext, err
		}
		switch f {
		case flowBreak:
			return flowNext, nil
		case flowLeave:
			return flowLeave, nil
		}
		if f, err := m.execBlock(s.Post, loop); err != nil || f == flowLeave {
			return f, err
		}
	}
}

func (m *machine) eval(e yul.Expression, sc *scope) (uint256.Int, error) {
	values, err := m.evalN(e, 1, sc)
	if err != nil {
		return uint256.Int{}, err
	}
	return values[0], nil
}

func (m *machine) evalN(e yul.Expression, n int, sc *scope) ([]uint256.Int, error) {
	values, err := m.evalMulti(e, sc)
	if err != nil {
		return nil, err
	}
	if len(values) != n {
		return nil, errors.Errorf("%s yields %d values, expected %d", describe(e), len(values), n)
	}
	return values, nil
}

func (m *machine) evalMulti(e yul.Expression, sc *scope) ([]uint256.Int, error) {
	switch e := e.(type) {
	case *yul.FunctionCall:
		return m.call(e, sc)
	case *yul.Identifier:
		v, ok := sc.lookup(e.Name)
		if !ok {
			return nil, errors.Errorf("undeclared variable %s", e.Name)
		}
		return []uint256.Int{v}, nil
	case *yul.Catchable:
		return m.evalMulti(e.Value, sc)
	case *yul.InlineExpression:
		parsed, err := m.prog.inlineExpression(e.Code)
		if err != nil {
			return nil, err
		}
		return m.evalMulti(parsed, sc)
	case yul.Literal:
		v, err := literal(e)
		if err != nil {
			return nil, err
		}
		return []uint256.Int{v}, nil
	}
	return nil, errors.Errorf("cannot evaluate %s", describe(e))
}

func (m *machine) call(c *yul.FunctionCall, sc *scope) ([]uint256.Int, error) {
	// Yul evaluates arguments right to left
	args := make([]uint256.Int, len(c.Arguments))
	for i := len(c.Arguments) - 1; i >= 0; i-- {
		v, err := m.eval(c.Arguments[i], sc)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	if fn, ok := m.prog.functions[c.Name]; ok {
		return m.callFunction(fn, args)
	}
	b, ok := builtins[c.Name]
	if !ok {
		return nil, errors.Errorf("unknown function %s", c.Name)
	}
	if len(args) != b.arity {
		return nil, errors.Errorf("%s takes %d arguments, got %d", c.Name, b.arity, len(args))
	}
	v, err := b.fn(m, args)
	if err != nil || !b.returns {
		return nil, err
	}
	return []uint256.Int{v}, nil
}

func (m *machine) callFunction(fn *yul.FunctionDefinition, args []uint256.Int) ([]uint256.Int, error) {
	if len(args) != len(fn.Params) {
		return nil, errors.Errorf("%s takes %d arguments, got %d", fn.Name, len(fn.Params), len(args))
	}
	if len(m.frames) >= maxDepth {
		return nil, errors.Errorf("call depth exceeded in %s", fn.Name)
	}
	m.frames = append(m.frames, fn.Name)
	defer func() { m.frames = m.frames[:len(m.frames)-1] }()

	sc := newScope(nil)
	for i, p := range fn.Params {
		sc.vars[p.Name] = args[i]
	}
	for _, r := range fn.Returns {
		sc.vars[r.Name] = uint256.Int{}
	}
	if _, err := m.execBlock(fn.Body, sc); err != nil {
		return nil, err
	}
	out := make([]uint256.Int, len(fn.Returns))
	for i, r := range fn.Returns {
		out[i], _ = sc.lookup(r.Name)
	}
	return out, nil
}

// literal converts a Yul literal to a word
func literal(l yul.Literal) (uint256.Int, error) {
	var v uint256.Int
	switch l := l.(type) {
	case *yul.NumLiteral:
		v.SetUint64(l.Value)
	case *yul.BoolLiteral:
		if l.Value {
			v.SetOne()
		}
	case *yul.HexLiteral:
		return parseHex(l.Value)
	case *yul.StringLiteral:
		if len(l.Value) > 32 {
			return v, errors.Errorf("string literal %q exceeds 32 bytes", l.Value)
		}
		var b [32]byte
		copy(b[:], l.Value)
		v.SetBytes32(b[:])
	default:
		return v, errors.Errorf("cannot evaluate %s", describe(l))
	}
	return v, nil
}

// parseHex accepts leading zeros and odd digit counts
func parseHex(s string) (uint256.Int, error) {
	var v uint256.Int
	digits := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(digits)%2 == 1 {
		digits = "0" + digits
	}
	b, err := hex.DecodeString(digits)
	if err != nil {
		return v, errors.Wrapf(err, "invalid hex literal %s", s)
	}
	if len(b) > 32 {
		return v, errors.Errorf("hex literal %s exceeds 32 bytes", s)
	}
	v.SetBytes(b)
	return v, nil
}

func describe(n yul.Node) string {
	if e, ok := n.(yul.Expression); ok {
		if text, err := yul.Print(e); err == nil && text != "" {
			return text
		}
	}
	return fmt.Sprintf("%T", n)
}
