package codegen

import (
	"encoding/binary"
	"fmt"
	"strings"

	"golang.org/x/crypto/sha3"

	"quartz/internal/ast"
	"quartz/internal/errors"
	"quartz/internal/mangle"
	"quartz/internal/runtime"
	"quartz/internal/yul"
)

// uninitializedState is the type-state value that rejects every call
const uninitializedState = 10000

// ABIName maps a parameter type to the ABI type used in signatures.
// Only types that fit a single calldata word are representable.
func ABIName(t ast.Type) (string, bool) {
	switch t := ast.Underlying(t).(type) {
	case ast.IntType, ast.BoolType:
		return "uint256", true
	case ast.AddressType:
		return "address", true
	case ast.StringType:
		return "bytes32", true
	case ast.SolidityType:
		return t.String(), true
	}
	return "", false
}

// Signature renders name(t1,t2,...) with ABI type names
func Signature(name string, params []ast.Type) (string, error) {
	names := make([]string, len(params))
	for i, p := range params {
		abi, ok := ABIName(p)
		if !ok {
			return "", fmt.Errorf("type %s has no ABI representation", p)
		}
		names[i] = abi
	}
	return name + "(" + strings.Join(names, ",") + ")", nil
}

// Selector is the first four bytes of keccak256(signature), big-endian
func Selector(signature string) uint32 {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(signature))
	return binary.BigEndian.Uint32(h.Sum(nil)[:4])
}

// dispatchFunction is a public function together with the behaviour guarding it
type dispatchFunction struct {
	decl        *ast.FunctionDeclaration
	mangled     string
	protections []ast.CallerProtection
}

// lowerDispatcher builds the selector switch of a contract's runtime code
func (g *Generator) lowerDispatcher(contract *ast.ContractDeclaration, functions []dispatchFunction) []yul.Statement {
	var out []yul.Statement

	if len(contract.TypeStates) > 0 {
		if offset, ok := g.env.PropertyOffset(mangle.StateProperty(contract.Name), contract.Name); ok {
			out = append(out, &yul.If{
				Condition: yul.Call("eq", StorageAt(offset).Load(), yul.Num(uninitializedState)),
				Body:      yul.NewBlock(yul.Revert()),
			})
		}
	}

	dispatch := &yul.Switch{
		Expression: runtime.Selector.Call(),
		Default:    yul.NewBlock(yul.Revert()),
	}
	for _, f := range functions {
		signature, err := Signature(f.decl.Name, f.decl.ParameterTypes())
		if err != nil {
			g.reportABI(f.decl)
			continue
		}
		body := yul.NewBlock()
		body.Append(g.callerGuard(contract.Name, f.protections)...)
		if !f.decl.Payable {
			body.Append(yul.Stmt(runtime.CheckNoValue.Call(yul.Call("callvalue"))))
		}

		args := make([]yul.Expression, len(f.decl.Parameters))
		for i, p := range f.decl.Parameters {
			decoder := runtime.DecodeAsUInt
			if _, ok := ast.Underlying(p.Type).(ast.AddressType); ok {
				decoder = runtime.DecodeAsAddress
			}
			args[i] = decoder.Call(yul.Num(uint64(i)))
		}
		call := yul.Call(f.mangled, args...)

		if f.decl.Result == nil {
			body.Append(yul.Stmt(call))
		} else if _, ok := ABIName(f.decl.Result); ok {
			body.Append(yul.Stmt(runtime.Return32Bytes.Call(call)))
		} else {
			g.report(errors.UnsupportedABIType(f.decl.Name, f.decl.Result, f.decl.Pos))
			continue
		}

		log.Debugf("dispatch %s as 0x%08x", signature, Selector(signature))
		dispatch.Cases = append(dispatch.Cases, yul.Case{
			Value: yul.Hexf(uint64(Selector(signature)), 8),
			Body:  body,
		})
	}

	return append(out, dispatch)
}

func (g *Generator) reportABI(f *ast.FunctionDeclaration) {
	for _, p := range f.Parameters {
		if _, ok := ABIName(p.Type); !ok {
			g.report(errors.UnsupportedABIType(f.Name, p.Type, p.Pos))
		}
	}
}

// callerGuard counts the caller protections the caller satisfies and reverts
// when there are none. A behaviour open to any caller has no guard.
func (g *Generator) callerGuard(contract string, protections []ast.CallerProtection) []yul.Statement {
	var checks []yul.Expression
	for _, p := range protections {
		if p.IsAny() {
			return nil
		}
		offset, ok := g.env.PropertyOffset(p.Name, contract)
		if !ok {
			g.report(errors.InvalidCallerProtection(p.Name, contract, nil, p.Pos))
			continue
		}
		slot := yul.Num(offset)
		switch t := ast.Underlying(g.env.PropertyType(p.Name, contract)).(type) {
		case ast.AddressType:
			checks = append(checks, runtime.IsValidCallerProtection.Call(yul.Call("sload", slot)))
		case ast.ArrayType:
			if !isAddress(t.Elem) {
				g.report(errors.InvalidCallerProtection(p.Name, contract, t, p.Pos))
				continue
			}
			checks = append(checks, runtime.IsCallerProtectionInArray.Call(slot))
		case ast.DictionaryType:
			if !isAddress(t.Value) {
				g.report(errors.InvalidCallerProtection(p.Name, contract, t, p.Pos))
				continue
			}
			checks = append(checks, runtime.IsCallerProtectionInDictionary.Call(slot))
		default:
			g.report(errors.InvalidCallerProtection(p.Name, contract, t, p.Pos))
		}
	}
	if len(checks) == 0 {
		return nil
	}

	out := []yul.Statement{yul.Stmt(yul.Let(mangle.CallerCheck, yul.Num(0)))}
	for _, check := range checks {
		out = append(out, yul.Stmt(yul.Assign(mangle.CallerCheck, yul.Call("add", yul.Ident(mangle.CallerCheck), check))))
	}
	return append(out, &yul.If{
		Condition: yul.Call("eq", yul.Ident(mangle.CallerCheck), yul.Num(0)),
		Body:      yul.NewBlock(yul.Revert()),
	})
}

func isAddress(t ast.Type) bool {
	_, ok := ast.Underlying(t).(ast.AddressType)
	return ok
}
