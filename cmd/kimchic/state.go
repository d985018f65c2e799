package main

import (
	"kimchi/internal/compiler"
	"kimchi/internal/registry"
)

// sharedRegistry and sharedRequiredArgs live for the process's lifetime so a
// single invocation compiling several files (or the registry subcommand's
// load/save flow) can resolve a DepStmt against a module compiled earlier in
// the same run, rather than starting from a blank slate per file.
var (
	sharedRegistry     = registry.New()
	sharedRequiredArgs = compiler.NewRequiredArgs()
)
