package mangle

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"quartz/internal/ast"
)

func TestLocalAndMem(t *testing.T) {
	assert.Equal(t, "_amount", Local("amount"))
	assert.Equal(t, "_QuartzSelf$isMem", Local(Mem(SelfParam)))
}

func TestFunction(t *testing.T) {
	assert.Equal(t, "Bank$close", Function("Bank", "close", nil))
	assert.Equal(t, "Bank$deposit$Address_Int", Function("Bank", "deposit", []ast.Type{ast.AddressType{}, ast.IntType{}}))
	assert.Equal(t, "Point$init$Int_Int", Function("Point", "init", []ast.Type{ast.IntType{}, ast.IntType{}}))
	assert.Equal(t, "Quartz_Global$move$$inoutPoint", Function(GlobalOwner, "move", []ast.Type{ast.InoutType{Key: ast.UserDefinedType{Name: "Point"}}}))
}

func TestNamesNeverCollideAcrossOwners(t *testing.T) {
	a := Function("A", "f", []ast.Type{ast.IntType{}})
	b := Function("B", "f", []ast.Type{ast.IntType{}})
	c := Function("A", "f", []ast.Type{ast.AddressType{}})
	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestStateAndInterface(t *testing.T) {
	assert.Equal(t, "quartzState$Bank", StateProperty("Bank"))
	assert.Equal(t, "_InterfaceToken", Interface("Token"))
}
