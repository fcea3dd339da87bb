// Package codegen lowers a type-checked contract module to Yul embedded in
// Solidity source. Problems with the input are collected as diagnostics and
// never stop the pass early.
package codegen

import (
	"github.com/tliron/commonlog"

	"quartz/internal/config"
	"quartz/internal/env"
	"quartz/internal/errors"
)

var log = commonlog.GetLogger("quartz.codegen")

// Generator lowers the declarations of one module
type Generator struct {
	env  env.Environment
	cfg  config.Compiler
	errs errors.List
}

// New creates a generator answering type questions through environment
func New(environment env.Environment, cfg config.Compiler) *Generator {
	return &Generator{env: environment, cfg: cfg}
}

func (g *Generator) report(err errors.CompilerError) {
	log.Debugf("%s", err.Error())
	g.errs = append(g.errs, err)
}

// Errors returns every diagnostic recorded so far
func (g *Generator) Errors() errors.List {
	return g.errs
}
