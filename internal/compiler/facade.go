package compiler

import (
	"kimchi/internal/ast"
	"kimchi/internal/diag"
	"kimchi/internal/emitter"
	"kimchi/internal/lexer"
	"kimchi/internal/parser"
	"kimchi/internal/registry"
	"kimchi/internal/source"
	"kimchi/internal/static"
	"kimchi/internal/token"
	"kimchi/internal/types"
)

// Tokenize scans text in isolation, for callers (tests, a REPL, tooling)
// that want the token stream without committing to a parse.
func Tokenize(text []byte) ([]token.Token, *diag.Diagnostic) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("<tokenize>", text)
	return lexer.New(fs.Get(id)).Scan()
}

// ParseProgram parses an already-tokenized source's text into a Program,
// the `parse(Tokens) -> Program` half of the tokenize/parse/generate
// triad. It re-tokenizes internally since the Parser owns span
// bookkeeping tied to a single FileSet entry; callers that already hold a
// token slice from Tokenize should prefer parser.ParseTokens directly.
func ParseProgram(text []byte) (*ast.Program, *diag.Diagnostic) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("<parse>", text)
	return parser.Parse(fs, id)
}

// Generate lowers an already-parsed Program to JavaScript text, the third
// leg of the tokenize/parse/generate triad, usable without re-running
// Compile's check/lint passes.
func Generate(prog *ast.Program, opts emitter.Options) string {
	return emitter.Emit(prog, opts)
}

// RegisterModule publishes shape as path's export shape in reg — the
// `register_module(path, export_shape)` registry protocol entry point for
// callers seeding a registry ahead of a batch compile (e.g. from a
// persisted Snapshot, or a hand-authored shape for a third-party dep with
// no KimchiLang source of its own).
func RegisterModule(reg *registry.Registry, path string, shape *types.Shape) {
	reg.Register(path, shape)
}

// ModuleExportShape is the `module_export_shape(path)` registry protocol
// entry point.
func ModuleExportShape(reg *registry.Registry, path string) (*types.Shape, bool) {
	return reg.Lookup(path)
}

// ClearRegistry truncates reg back to empty, the `clear_registry()`
// registry protocol entry point.
func ClearRegistry(reg *registry.Registry) {
	reg.Clear()
}

// ParseStaticFile parses a `.static` data file's text into a StaticData
// tree, the data-file side channel's `parse_static_file(text, module_path?)
// -> StaticData` entry point.
func ParseStaticFile(text []byte, modulePath string) (*static.File, *diag.Diagnostic) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("<static>", text)
	return static.Load(fs, id, modulePath)
}

// GenerateStaticCode renders a parsed StaticData tree to JavaScript text,
// the side channel's `generate_static_code(StaticData, module_path) ->
// text` entry point.
func GenerateStaticCode(f *static.File, modulePath string) string {
	return static.Generate(f, modulePath)
}
