// Package repl is an interactive console over a deployed contract.
package repl

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github.com/tliron/commonlog"

	"quartz/internal/codegen"
	"quartz/internal/sim"
)

const Prompt = "quartz> "

var log = commonlog.GetLogger("quartz.repl")

var (
	okColor     = color.New(color.FgGreen)
	revertColor = color.New(color.FgRed)
	keyColor    = color.New(color.Bold)
)

const help = `commands:
  call <signature> [args...]  send a transaction, e.g. call transfer(address,uint256) 0xaa 5
  sload <slot>                read a storage slot
  caller [address]            show or set the sender
  value [amount]              show or set the value sent with calls
  storage                     list nonzero storage slots
  help                        show this text
  exit                        leave the console
`

// Console executes commands against one VM
type Console struct {
	vm     *sim.VM
	out    io.Writer
	caller uint256.Int
	value  uint256.Int
}

func New(vm *sim.VM, out io.Writer) *Console {
	return &Console{vm: vm, out: out, caller: vm.Caller()}
}

// Execute runs one command line and reports whether the console should exit
func (c *Console) Execute(line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	cmd, args := fields[0], fields[1:]
	switch cmd {
	case "exit", "quit":
		return true, nil
	case "help":
		fmt.Fprint(c.out, help)
	case "call":
		return false, c.call(args)
	case "sload":
		if len(args) != 1 {
			return false, errors.New("usage: sload <slot>")
		}
		slot, err := sim.ParseWord(args[0])
		if err != nil {
			return false, err
		}
		v := c.vm.Storage().Load(slot)
		fmt.Fprintln(c.out, v.Hex())
	case "caller":
		return false, c.setOrShow(&c.caller, args)
	case "value":
		return false, c.setOrShow(&c.value, args)
	case "storage":
		for _, s := range c.vm.Storage().Slots() {
			keyColor.Fprint(c.out, s.Key.Hex())
			fmt.Fprintf(c.out, " = %s\n", s.Value.Hex())
		}
	default:
		return false, errors.Errorf("unknown command %q, try help", cmd)
	}
	return false, nil
}

func (c *Console) setOrShow(w *uint256.Int, args []string) error {
	switch len(args) {
	case 0:
		fmt.Fprintln(c.out, w.Hex())
		return nil
	case 1:
		v, err := sim.ParseWord(args[0])
		if err != nil {
			return err
		}
		*w = v
		return nil
	}
	return errors.New("expected at most one argument")
}

func (c *Console) call(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: call <signature> [args...]")
	}
	signature := args[0]
	if !strings.HasSuffix(signature, ")") || !strings.Contains(signature, "(") {
		return errors.Errorf("%q is not a signature like name(uint256)", signature)
	}
	words := make([]uint256.Int, 0, len(args)-1)
	for _, a := range args[1:] {
		w, err := sim.ParseWord(a)
		if err != nil {
			return err
		}
		words = append(words, w)
	}

	selector := codegen.Selector(signature)
	log.Debugf("%s -> 0x%08x", signature, selector)
	res, err := c.vm.Call(sim.Tx{Caller: c.caller, Value: c.value, Calldata: sim.Calldata(selector, words...)})
	if err != nil {
		return err
	}
	Report(c.out, res)
	return nil
}

// Report prints the outcome of a transaction
func Report(out io.Writer, res *sim.Result) {
	if res.Reverted {
		revertColor.Fprintf(out, "reverted: %s", res.Guard)
		fmt.Fprintf(out, " (%d steps)\n", res.Steps)
		return
	}
	okColor.Fprint(out, "ok")
	if len(res.Return) > 0 {
		fmt.Fprintf(out, " 0x%s", hex.EncodeToString(res.Return))
	}
	fmt.Fprintf(out, " (%d steps)\n", res.Steps)
}

// Start reads commands from the terminal until exit or end of input
func Start(vm *sim.VM) error {
	rl, err := readline.New(Prompt)
	if err != nil {
		return errors.Wrap(err, "opening terminal")
	}
	defer rl.Close()

	console := New(vm, rl.Stdout())
	for {
		line, err := rl.Readline()
		if err != nil {
			// io.EOF or an interrupt ends the session
			return nil
		}
		quit, err := console.Execute(line)
		if err != nil {
			revertColor.Fprintln(rl.Stderr(), err)
			continue
		}
		if quit {
			return nil
		}
	}
}
