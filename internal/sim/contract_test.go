package sim

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quartz/internal/ast"
	"quartz/internal/codegen"
	"quartz/internal/config"
	"quartz/internal/env"
	"quartz/internal/runtime"
)

func id(name string) *ast.Identifier { return &ast.Identifier{Name: name} }

func param(name string, t ast.Type) *ast.Parameter { return &ast.Parameter{Name: name, Type: t} }

func assign(lhs, rhs ast.Expression) ast.Statement {
	return &ast.ExpressionStatement{Expression: &ast.BinaryExpression{Op: ast.Assign, LHS: lhs, RHS: rhs}}
}

func public(name string, result ast.Type, params []*ast.Parameter, body ...ast.Statement) *ast.FunctionDeclaration {
	return &ast.FunctionDeclaration{
		Name:       name,
		Modifiers:  []ast.Modifier{ast.Public},
		Parameters: params,
		Result:     result,
		Body:       body,
	}
}

// counterModule lays out Counter as owner@0 count@1 balances@2 slots@3..6
func counterModule() *ast.Module {
	return &ast.Module{Declarations: []ast.Declaration{
		&ast.ContractDeclaration{
			Name: "Counter",
			Fields: []*ast.VariableDeclaration{
				{Name: "owner", Type: ast.AddressType{}},
				{Name: "count", Type: ast.IntType{}},
				{Name: "balances", Type: ast.DictionaryType{Key: ast.AddressType{}, Value: ast.IntType{}}},
				{Name: "slots", Type: ast.FixedArrayType{Elem: ast.IntType{}, Size: 4}},
			},
		},
		&ast.ContractBehaviourDeclaration{
			Contract:          "Counter",
			CallerBinding:     "sender",
			CallerProtections: []ast.CallerProtection{{Name: "any"}},
			Members: []ast.BehaviourMember{
				&ast.SpecialDeclaration{
					Kind:      ast.Init,
					Modifiers: []ast.Modifier{ast.Public},
					Body:      []ast.Statement{assign(id("owner"), id("sender"))},
				},
				public("increment", nil, []*ast.Parameter{param("by", ast.IntType{})},
					assign(id("count"), &ast.BinaryExpression{Op: ast.Plus, LHS: id("count"), RHS: id("by")})),
				public("get", ast.IntType{}, nil, &ast.ReturnStatement{Value: id("count")}),
				public("getOwner", ast.AddressType{}, nil, &ast.ReturnStatement{Value: id("owner")}),
				public("credit", nil, []*ast.Parameter{param("to", ast.AddressType{}), param("amount", ast.IntType{})},
					assign(&ast.SubscriptExpression{Base: id("balances"), Index: id("to")}, id("amount"))),
				public("balance", ast.IntType{}, []*ast.Parameter{param("of", ast.AddressType{})},
					&ast.ReturnStatement{Value: &ast.SubscriptExpression{Base: id("balances"), Index: id("of")}}),
				public("put", nil, []*ast.Parameter{param("i", ast.IntType{}), param("v", ast.IntType{})},
					assign(&ast.SubscriptExpression{Base: id("slots"), Index: id("i")}, id("v"))),
			},
		},
		&ast.ContractBehaviourDeclaration{
			Contract:          "Counter",
			CallerProtections: []ast.CallerProtection{{Name: "owner"}},
			Members: []ast.BehaviourMember{
				public("reset", nil, nil, assign(id("count"), &ast.IntLiteral{Value: 0})),
			},
		},
	}}
}

func deployCounter(t *testing.T) *VM {
	t.Helper()
	return deployModule(t, counterModule())
}

// deployModule compiles a single-contract module, runs its constructor and
// installs its runtime
func deployModule(t *testing.T, module *ast.Module) *VM {
	t.Helper()
	out, err := codegen.New(env.Build(module), config.Default().Compiler).Generate(module)
	require.NoError(t, err)
	require.Len(t, out.Contracts, 1)

	vm := newVM(t)
	res, err := vm.Construct(out.Contracts[0].Constructor.Statements, nil, Tx{})
	require.NoError(t, err)
	require.False(t, res.Reverted)
	require.NoError(t, vm.Deploy(out.Contracts[0].Runtime.Statements))
	return vm
}

func send(t *testing.T, vm *VM, signature string, args ...uint256.Int) *Result {
	t.Helper()
	res, err := vm.Call(Tx{Calldata: Calldata(codegen.Selector(signature), args...)})
	require.NoError(t, err)
	return res
}

func TestCounterConstructorBindsCaller(t *testing.T) {
	vm := deployCounter(t)
	assert.Equal(t, vm.Caller(), vm.Storage().Load(u(0)))

	res := send(t, vm, "getOwner()")
	assert.False(t, res.Reverted)
	assert.Equal(t, vm.Caller(), res.Word())
}

func TestCounterIncrement(t *testing.T) {
	vm := deployCounter(t)
	assert.False(t, send(t, vm, "increment(uint256)", u(3)).Reverted)
	assert.False(t, send(t, vm, "increment(uint256)", u(4)).Reverted)

	res := send(t, vm, "get()")
	assert.False(t, res.Reverted)
	assert.Equal(t, u(7), res.Word())
}

func TestCounterOverflowRevertsWithoutEffect(t *testing.T) {
	vm := deployCounter(t)
	var top uint256.Int
	top.SetAllOne()
	require.False(t, send(t, vm, "increment(uint256)", top).Reverted)

	res := send(t, vm, "increment(uint256)", u(1))
	assert.True(t, res.Reverted)
	assert.Equal(t, runtime.GuardOverflow, res.Guard)
	assert.Equal(t, top, vm.Storage().Load(u(1)))
}

func TestCounterDictionaryKeysAreCountedOnce(t *testing.T) {
	vm := deployCounter(t)
	alice, bob := u(0xa1), u(0xb0)

	send(t, vm, "credit(address,uint256)", alice, u(5))
	send(t, vm, "credit(address,uint256)", alice, u(6))
	assert.Equal(t, u(1), vm.Storage().Load(u(2)))

	send(t, vm, "credit(address,uint256)", bob, u(1))
	assert.Equal(t, u(2), vm.Storage().Load(u(2)))

	assert.Equal(t, u(6), send(t, vm, "balance(address)", alice).Word())
	assert.Equal(t, u(0), send(t, vm, "balance(address)", u(0xcc)).Word())
}

func TestCounterFixedArrayBounds(t *testing.T) {
	vm := deployCounter(t)
	assert.False(t, send(t, vm, "put(uint256,uint256)", u(2), u(9)).Reverted)
	assert.Equal(t, u(9), vm.Storage().Load(u(5)))

	before := vm.Storage().Slots()
	res := send(t, vm, "put(uint256,uint256)", u(7), u(1))
	assert.True(t, res.Reverted)
	assert.Equal(t, runtime.GuardOutOfBounds, res.Guard)
	assert.Equal(t, before, vm.Storage().Slots())
}

func TestCounterDispatch(t *testing.T) {
	vm := deployCounter(t)

	res, err := vm.Call(Tx{Calldata: Calldata(0xdeadbeef)})
	require.NoError(t, err)
	assert.True(t, res.Reverted)
	assert.Equal(t, runtime.GuardUnknownSelector, res.Guard)

	res, err = vm.Call(Tx{Value: u(1), Calldata: Calldata(codegen.Selector("get()"))})
	require.NoError(t, err)
	assert.True(t, res.Reverted)
	assert.Equal(t, runtime.GuardNonPayable, res.Guard)
}

func TestCounterCallerProtection(t *testing.T) {
	vm := deployCounter(t)
	send(t, vm, "increment(uint256)", u(5))

	res, err := vm.Call(Tx{Caller: u(0x1234), Calldata: Calldata(codegen.Selector("reset()"))})
	require.NoError(t, err)
	assert.True(t, res.Reverted)
	assert.Equal(t, runtime.GuardCallerProtection, res.Guard)
	assert.Equal(t, u(5), vm.Storage().Load(u(1)))

	res = send(t, vm, "reset()")
	assert.False(t, res.Reverted)
	count := vm.Storage().Load(u(1))
	assert.True(t, count.IsZero())
}

func TestCounterIsDeterministic(t *testing.T) {
	run := func() []Slot {
		vm := deployCounter(t)
		send(t, vm, "increment(uint256)", u(2))
		send(t, vm, "credit(address,uint256)", u(0xa1), u(5))
		send(t, vm, "put(uint256,uint256)", u(1), u(3))
		return vm.Storage().Slots()
	}
	assert.Equal(t, run(), run())
}
