// SPDX-License-Identifier: Apache-2.0
package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/ComedicChimera/olive"
	"github.com/pkg/errors"
	"github.com/pterm/pterm"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"quartz/grammar"
	"quartz/internal/codegen"
	"quartz/internal/config"
	"quartz/internal/runtime"
	"quartz/internal/sim"
	"quartz/repl"
)

var (
	errorStyle = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	infoStyle  = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
)

// commonlog verbosity per --loglevel
var verbosity = map[string]int{
	"silent": -4,
	"error":  -2,
	"warn":   -1,
	"info":   1,
	"debug":  2,
}

func main() {
	cli := olive.NewCLI("quartzc", "quartzc inspects and runs generated Yul", true)
	cli.AddStringArg("config", "c", "path to quartz.toml", false)
	cli.AddSelectorArg("loglevel", "ll", "the log level", false, []string{"silent", "error", "warn", "info", "debug"})

	selectorCmd := cli.AddSubcommand("selector", "print the 4-byte selector of a signature", true)
	selectorCmd.AddPrimaryArg("signature", "a canonical signature such as transfer(address,uint256)", true)

	cli.AddSubcommand("runtime", "print the runtime library", false)

	execCmd := cli.AddSubcommand("exec", "run one transaction against a dispatcher file", true)
	execCmd.AddPrimaryArg("file", "the Yul file holding the runtime code", true)
	execCmd.AddStringArg("calldata", "d", "hex calldata", true)
	execCmd.AddStringArg("caller", "f", "sender address", false)
	execCmd.AddStringArg("value", "v", "value sent with the call", false)

	replCmd := cli.AddSubcommand("repl", "open a console over a dispatcher file", true)
	replCmd.AddPrimaryArg("file", "the Yul file holding the runtime code", true)

	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		fail("Usage Error", err)
	}

	cfg, err := loadConfig(result)
	if err != nil {
		fail("Config Error", err)
	}
	level := cfg.Log.Verbosity
	if name, ok := result.Arguments["loglevel"]; ok {
		level = verbosity[name.(string)]
	}
	commonlog.Configure(level, nil)

	name, sub, _ := result.Subcommand()
	switch name {
	case "selector":
		signature, _ := sub.PrimaryArg()
		fmt.Printf("0x%08x\n", codegen.Selector(signature))
	case "runtime":
		fmt.Print(runtime.LibrarySource())
	case "exec":
		if err := execFile(sub, cfg); err != nil {
			fail("Execution Error", err)
		}
	case "repl":
		path, _ := sub.PrimaryArg()
		vm, err := deploy(path, cfg)
		if err != nil {
			fail("Load Error", err)
		}
		infoStyle.Print("Quartz")
		pterm.Println(" console over " + path + ", type help for commands")
		if err := repl.Start(vm); err != nil {
			fail("Console Error", err)
		}
	}
}

func fail(tag string, err error) {
	errorStyle.Print(tag)
	pterm.FgRed.Println(" " + err.Error())
	os.Exit(1)
}

// loadConfig reads --config, or quartz.toml when present in the working directory
func loadConfig(result *olive.ArgParseResult) (*config.Config, error) {
	if path, ok := result.Arguments["config"]; ok {
		return config.Load(path.(string))
	}
	if _, err := os.Stat(config.FileName); err == nil {
		return config.Load(config.FileName)
	}
	return config.Default(), nil
}

func deploy(path string, cfg *config.Config) (*sim.VM, error) {
	stmts, err := grammar.ParseFile(path)
	if err != nil {
		return nil, err
	}
	vm, err := sim.New(cfg.Simulator)
	if err != nil {
		return nil, err
	}
	if err := vm.Deploy(stmts); err != nil {
		return nil, err
	}
	return vm, nil
}

func execFile(sub *olive.ArgParseResult, cfg *config.Config) error {
	path, _ := sub.PrimaryArg()
	vm, err := deploy(path, cfg)
	if err != nil {
		return err
	}

	calldata, err := hex.DecodeString(strings.TrimPrefix(sub.Arguments["calldata"].(string), "0x"))
	if err != nil {
		return errors.Wrap(err, "calldata")
	}
	tx := sim.Tx{Calldata: calldata}
	if caller, ok := sub.Arguments["caller"]; ok {
		if tx.Caller, err = sim.ParseWord(caller.(string)); err != nil {
			return errors.Wrap(err, "caller")
		}
	}
	if value, ok := sub.Arguments["value"]; ok {
		if tx.Value, err = sim.ParseWord(value.(string)); err != nil {
			return errors.Wrap(err, "value")
		}
	}

	res, err := vm.Call(tx)
	if err != nil {
		return err
	}
	repl.Report(os.Stdout, res)
	return nil
}
