// Package sim executes generated Yul against an in-memory contract so that
// lowering can be checked by behaviour rather than by text.
package sim

import (
	"encoding/binary"
	"strings"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github.com/tliron/commonlog"

	"quartz/internal/config"
	"quartz/internal/runtime"
	"quartz/internal/yul"
)

var log = commonlog.GetLogger("quartz.sim")

// CallHandler answers an external call. Returning false fails the call.
type CallHandler func(to, value uint256.Int, input []byte) ([]byte, bool)

// Tx is one message to the contract. A zero Caller stands for the
// configured default caller.
type Tx struct {
	Caller   uint256.Int
	Value    uint256.Int
	Calldata []byte
}

// Result is the outcome of a transaction
type Result struct {
	Return   []byte
	Reverted bool
	Guard    runtime.Guard
	Steps    int
}

// Word returns the first 32 bytes of the return data as a word
func (r *Result) Word() uint256.Int {
	var w uint256.Int
	b := make([]byte, 32)
	copy(b, r.Return)
	w.SetBytes32(b)
	return w
}

// VM holds the state of one deployed contract
type VM struct {
	cfg     config.Simulator
	storage *Storage
	runtime *program
	address uint256.Int
	caller  uint256.Int

	// External answers call(); nil makes every call succeed with no output
	External CallHandler
}

func New(cfg config.Simulator) (*VM, error) {
	caller, err := ParseWord(cfg.Caller)
	if err != nil {
		return nil, errors.Wrap(err, "simulator caller")
	}
	vm := &VM{
		cfg:     cfg,
		storage: NewStorage(),
		caller:  caller,
	}
	vm.address.SetUint64(0xc0ffee)
	return vm, nil
}

// Deploy installs the runtime code that later calls run against
func (vm *VM) Deploy(stmts []yul.Statement) error {
	p, err := load(stmts)
	if err != nil {
		return errors.Wrap(err, "loading runtime")
	}
	vm.runtime = p
	return nil
}

// Construct runs constructor code once. args are the ABI-encoded
// initializer arguments, readable through codecopy at the end of the code.
func (vm *VM) Construct(stmts []yul.Statement, args []byte, tx Tx) (*Result, error) {
	p, err := load(stmts)
	if err != nil {
		return nil, errors.Wrap(err, "loading constructor")
	}
	log.Debugf("constructing with %d argument bytes", len(args))
	return vm.run(p, args, tx)
}

// Call runs the deployed runtime code. Storage written by a transaction
// that reverts or fails is rolled back.
func (vm *VM) Call(tx Tx) (*Result, error) {
	if vm.runtime == nil {
		return nil, errors.New("no runtime deployed")
	}
	if len(tx.Calldata) >= 4 {
		log.Debugf("calling selector 0x%08x", binary.BigEndian.Uint32(tx.Calldata))
	}
	return vm.run(vm.runtime, nil, tx)
}

func (vm *VM) run(p *program, code []byte, tx Tx) (*Result, error) {
	if tx.Caller.IsZero() {
		tx.Caller = vm.caller
	}
	m := &machine{vm: vm, prog: p, tx: tx, code: code}
	snapshot := vm.storage.Snapshot()

	_, err := m.exec(p.body, newScope(nil))
	result := &Result{Steps: m.steps}

	var halt *haltError
	switch {
	case err == nil:
	case errors.As(err, &halt):
		result.Return = halt.data
		result.Reverted = halt.reverted
		result.Guard = halt.guard
	default:
		vm.storage.RevertTo(snapshot)
		return nil, err
	}

	if result.Reverted {
		log.Infof("reverted after %d steps: %s", result.Steps, result.Guard)
		vm.storage.RevertTo(snapshot)
	} else {
		vm.storage.Commit()
	}
	return result, nil
}

// Storage exposes the contract's persistent state
func (vm *VM) Storage() *Storage {
	return vm.storage
}

// Caller is the default sender of transactions
func (vm *VM) Caller() uint256.Int {
	return vm.caller
}

// Calldata encodes a selector followed by 32-byte arguments
func Calldata(selector uint32, args ...uint256.Int) []byte {
	out := make([]byte, 4, 4+32*len(args))
	binary.BigEndian.PutUint32(out, selector)
	for _, a := range args {
		b := a.Bytes32()
		out = append(out, b[:]...)
	}
	return out
}

// Words encodes arguments the way constructor code expects them
func Words(args ...uint256.Int) []byte {
	return Calldata(0, args...)[4:]
}

// ParseWord reads a 0x-prefixed hex or a decimal number
func ParseWord(s string) (uint256.Int, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return parseHex(s)
	}
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return uint256.Int{}, errors.Wrapf(err, "invalid number %q", s)
	}
	return *v, nil
}
