package sim

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quartz/internal/ast"
	"quartz/internal/codegen"
	"quartz/internal/runtime"
)

func ret(e ast.Expression) ast.Statement { return &ast.ReturnStatement{Value: e} }

func num(v uint64) *ast.IntLiteral { return &ast.IntLiteral{Value: v} }

func index(base string, i ast.Expression) *ast.SubscriptExpression {
	return &ast.SubscriptExpression{Base: id(base), Index: i}
}

func ints(names ...string) []*ast.Parameter {
	out := make([]*ast.Parameter, len(names))
	for i, n := range names {
		out[i] = param(n, ast.IntType{})
	}
	return out
}

// clubModule lays out Club as admins@0 wardens@1 entries@2
func clubModule() *ast.Module {
	return &ast.Module{Declarations: []ast.Declaration{
		&ast.ContractDeclaration{
			Name: "Club",
			Fields: []*ast.VariableDeclaration{
				{Name: "admins", Type: ast.ArrayType{Elem: ast.AddressType{}}},
				{Name: "wardens", Type: ast.DictionaryType{Key: ast.IntType{}, Value: ast.AddressType{}}},
				{Name: "entries", Type: ast.ArrayType{Elem: ast.IntType{}}},
			},
		},
		&ast.ContractBehaviourDeclaration{
			Contract:          "Club",
			CallerProtections: []ast.CallerProtection{{Name: "any"}},
			Members: []ast.BehaviourMember{
				&ast.SpecialDeclaration{Kind: ast.Init, Modifiers: []ast.Modifier{ast.Public}},
				public("addAdmin", nil, []*ast.Parameter{param("i", ast.IntType{}), param("who", ast.AddressType{})},
					assign(index("admins", id("i")), id("who"))),
				public("setWarden", nil, []*ast.Parameter{param("k", ast.IntType{}), param("who", ast.AddressType{})},
					assign(index("wardens", id("k")), id("who"))),
				public("put", nil, ints("i", "v"), assign(index("entries", id("i")), id("v"))),
				public("at", ast.IntType{}, ints("i"), ret(index("entries", id("i")))),
				public("times", ast.IntType{}, ints("a", "b"),
					ret(&ast.BinaryExpression{Op: ast.Times, LHS: id("a"), RHS: id("b")})),
				public("pow", ast.IntType{}, ints("a", "b"),
					ret(&ast.BinaryExpression{Op: ast.Power, LHS: id("a"), RHS: id("b")})),
				public("pick", ast.IntType{}, ints("a"),
					&ast.IfStatement{
						Condition: &ast.BinaryExpression{Op: ast.GreaterThan, LHS: id("a"), RHS: num(1)},
						Body: []ast.Statement{&ast.IfStatement{
							Condition: &ast.BinaryExpression{Op: ast.GreaterThan, LHS: id("a"), RHS: num(5)},
							Body:      []ast.Statement{ret(num(1))},
						}},
					},
					ret(num(2))),
				public("toAddress", ast.AddressType{}, ints("v"),
					ret(&ast.CastExpression{Value: id("v"), Type: ast.AddressType{}})),
			},
		},
		&ast.ContractBehaviourDeclaration{
			Contract:          "Club",
			CallerProtections: []ast.CallerProtection{{Name: "admins"}},
			Members:           []ast.BehaviourMember{public("adminOnly", ast.IntType{}, nil, ret(num(1)))},
		},
		&ast.ContractBehaviourDeclaration{
			Contract:          "Club",
			CallerProtections: []ast.CallerProtection{{Name: "wardens"}},
			Members:           []ast.BehaviourMember{public("wardenOnly", ast.IntType{}, nil, ret(num(2)))},
		},
	}}
}

func pow2(n uint) uint256.Int {
	var v uint256.Int
	v.Lsh(uint256.NewInt(1), n)
	return v
}

func TestClubNestedReturn(t *testing.T) {
	vm := deployModule(t, clubModule())
	for _, tc := range []struct {
		a, want uint64
	}{
		{a: 9, want: 1},
		{a: 6, want: 1},
		{a: 3, want: 2},
		{a: 0, want: 2},
	} {
		res := send(t, vm, "pick(uint256)", u(tc.a))
		require.False(t, res.Reverted)
		assert.Equal(t, u(tc.want), res.Word(), "pick(%d)", tc.a)
	}
}

func TestClubCheckedMultiplication(t *testing.T) {
	vm := deployModule(t, clubModule())
	var top uint256.Int
	top.SetAllOne()

	for _, tc := range []struct {
		name string
		a, b uint256.Int
		want uint256.Int
	}{
		{name: "small", a: u(3), b: u(5), want: u(15)},
		{name: "zero times max", a: u(0), b: top, want: u(0)},
		{name: "max times zero", a: top, b: u(0), want: u(0)},
		{name: "max times one", a: top, b: u(1), want: top},
		{name: "just fits", a: pow2(128), b: pow2(127), want: pow2(255)},
	} {
		res := send(t, vm, "times(uint256,uint256)", tc.a, tc.b)
		require.False(t, res.Reverted, tc.name)
		assert.Equal(t, tc.want, res.Word(), tc.name)
	}

	for _, pair := range [][2]uint256.Int{{pow2(128), pow2(128)}, {top, u(2)}, {u(2), top}} {
		res := send(t, vm, "times(uint256,uint256)", pair[0], pair[1])
		assert.True(t, res.Reverted)
		assert.Equal(t, runtime.GuardOverflow, res.Guard)
	}
}

func TestClubPower(t *testing.T) {
	vm := deployModule(t, clubModule())
	assert.Equal(t, u(1024), send(t, vm, "pow(uint256,uint256)", u(2), u(10)).Word())
	assert.Equal(t, u(1), send(t, vm, "pow(uint256,uint256)", u(7), u(0)).Word())
	assert.Equal(t, u(0), send(t, vm, "pow(uint256,uint256)", u(0), u(3)).Word())
	assert.Equal(t, pow2(255), send(t, vm, "pow(uint256,uint256)", u(2), u(255)).Word())

	res := send(t, vm, "pow(uint256,uint256)", u(2), u(256))
	assert.True(t, res.Reverted)
	assert.Equal(t, runtime.GuardOverflow, res.Guard)
}

func TestClubDynamicArray(t *testing.T) {
	vm := deployModule(t, clubModule())

	// writing at index == length appends
	require.False(t, send(t, vm, "put(uint256,uint256)", u(0), u(10)).Reverted)
	assert.Equal(t, u(1), vm.Storage().Load(u(2)))
	require.False(t, send(t, vm, "put(uint256,uint256)", u(0), u(11)).Reverted)
	assert.Equal(t, u(1), vm.Storage().Load(u(2)))
	require.False(t, send(t, vm, "put(uint256,uint256)", u(1), u(12)).Reverted)
	assert.Equal(t, u(2), vm.Storage().Load(u(2)))

	assert.Equal(t, u(11), send(t, vm, "at(uint256)", u(0)).Word())
	assert.Equal(t, u(12), send(t, vm, "at(uint256)", u(1)).Word())

	before := vm.Storage().Slots()
	res := send(t, vm, "put(uint256,uint256)", u(3), u(1))
	assert.True(t, res.Reverted)
	assert.Equal(t, runtime.GuardOutOfBounds, res.Guard)
	assert.Equal(t, before, vm.Storage().Slots())

	res = send(t, vm, "at(uint256)", u(2))
	assert.True(t, res.Reverted)
	assert.Equal(t, runtime.GuardOutOfBounds, res.Guard)
}

func TestClubArrayCallerProtection(t *testing.T) {
	vm := deployModule(t, clubModule())
	stranger := u(0x1234)

	res := send(t, vm, "adminOnly()")
	assert.True(t, res.Reverted)
	assert.Equal(t, runtime.GuardCallerProtection, res.Guard)

	send(t, vm, "addAdmin(uint256,address)", u(0), stranger)
	assert.True(t, send(t, vm, "adminOnly()").Reverted)

	send(t, vm, "addAdmin(uint256,address)", u(1), vm.Caller())
	res = send(t, vm, "adminOnly()")
	assert.False(t, res.Reverted)
	assert.Equal(t, u(1), res.Word())

	res, err := vm.Call(Tx{Caller: stranger, Calldata: Calldata(codegen.Selector("adminOnly()"))})
	require.NoError(t, err)
	assert.False(t, res.Reverted)
}

func TestClubDictionaryCallerProtection(t *testing.T) {
	vm := deployModule(t, clubModule())
	stranger := u(0x1234)

	res := send(t, vm, "wardenOnly()")
	assert.True(t, res.Reverted)
	assert.Equal(t, runtime.GuardCallerProtection, res.Guard)

	send(t, vm, "setWarden(uint256,address)", u(7), stranger)
	assert.True(t, send(t, vm, "wardenOnly()").Reverted)

	// the keys array is 1-based, so the last key must be visited too
	send(t, vm, "setWarden(uint256,address)", u(9), vm.Caller())
	assert.Equal(t, u(2), vm.Storage().Load(u(1)))
	res = send(t, vm, "wardenOnly()")
	assert.False(t, res.Reverted)
	assert.Equal(t, u(2), res.Word())

	res, err := vm.Call(Tx{Caller: stranger, Calldata: Calldata(codegen.Selector("wardenOnly()"))})
	require.NoError(t, err)
	assert.False(t, res.Reverted)
}

// Address is 160 bits wide, so an Int cast to Address checks its range
func TestClubCastToAddressRejectsWideValues(t *testing.T) {
	vm := deployModule(t, clubModule())

	var widest uint256.Int
	widest.Sub(ptr(pow2(160)), uint256.NewInt(1))
	res := send(t, vm, "toAddress(uint256)", widest)
	require.False(t, res.Reverted)
	assert.Equal(t, widest, res.Word())

	res = send(t, vm, "toAddress(uint256)", pow2(160))
	assert.True(t, res.Reverted)
	assert.Equal(t, runtime.GuardNarrowingCast, res.Guard)
}

func ptr(v uint256.Int) *uint256.Int { return &v }
