package repl

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quartz/grammar"
	"quartz/internal/codegen"
	"quartz/internal/config"
	"quartz/internal/runtime"
	"quartz/internal/sim"
)

func newConsole(t *testing.T) (*Console, *bytes.Buffer) {
	t.Helper()
	color.NoColor = true
	source := fmt.Sprintf(`
switch Quartz$Selector()
case 0x%08x {
  Quartz$Return32Bytes(sload(0))
}
case 0x%08x {
  sstore(0, Quartz$Add(sload(0), Quartz$DecodeAsUInt(0)))
}
case 0x%08x {
  Quartz$Return32Bytes(caller())
}
default {
  revert(0, 0)
}
`, codegen.Selector("get()"), codegen.Selector("add(uint256)"), codegen.Selector("whoami()"))
	stmts, err := grammar.Parse("console.yul", source)
	require.NoError(t, err)

	vm, err := sim.New(config.Default().Simulator)
	require.NoError(t, err)
	require.NoError(t, vm.Deploy(append(stmts, runtime.Library()...)))

	var out bytes.Buffer
	return New(vm, &out), &out
}

func run(t *testing.T, c *Console, line string) {
	t.Helper()
	quit, err := c.Execute(line)
	require.NoError(t, err)
	require.False(t, quit)
}

func TestConsoleCallAndStorage(t *testing.T) {
	c, out := newConsole(t)

	run(t, c, "call add(uint256) 5")
	assert.Contains(t, out.String(), "ok (")
	out.Reset()

	run(t, c, "call get()")
	assert.Contains(t, out.String(), "ok 0x0000000000000000000000000000000000000000000000000000000000000005")
	out.Reset()

	run(t, c, "sload 0")
	assert.Equal(t, "0x5\n", out.String())
	out.Reset()

	run(t, c, "storage")
	assert.Contains(t, out.String(), "0x0")
	assert.Contains(t, out.String(), " = 0x5\n")
}

func TestConsoleReportsReverts(t *testing.T) {
	c, out := newConsole(t)

	run(t, c, "call nothing()")
	assert.Contains(t, out.String(), "reverted: "+runtime.GuardUnknownSelector.String())
	out.Reset()

	run(t, c, "call add(uint256) 0xffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff")
	run(t, c, "call add(uint256) 1")
	assert.Contains(t, out.String(), "reverted: "+runtime.GuardOverflow.String())
}

func TestConsoleCaller(t *testing.T) {
	c, out := newConsole(t)

	run(t, c, "caller")
	assert.Equal(t, "0xaa\n", out.String())
	out.Reset()

	run(t, c, "value 7")
	run(t, c, "value")
	assert.Equal(t, "0x7\n", out.String())
	out.Reset()

	run(t, c, "caller 0x1234")
	run(t, c, "call whoami()")
	assert.Contains(t, out.String(), "ok 0x0000000000000000000000000000000000000000000000000000000000001234")
}

func TestConsoleCommands(t *testing.T) {
	c, out := newConsole(t)

	run(t, c, "")
	run(t, c, "help")
	assert.Contains(t, out.String(), "sload <slot>")

	quit, err := c.Execute("exit")
	require.NoError(t, err)
	assert.True(t, quit)

	for _, line := range []string{"frobnicate", "call", "call get", "call add(uint256) x", "sload", "caller 1 2"} {
		_, err := c.Execute(line)
		assert.Error(t, err, line)
	}
}
