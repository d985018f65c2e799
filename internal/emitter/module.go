package emitter

import (
	"strconv"
	"strings"

	"kimchi/internal/ast"
)

// emitModule renders the whole program as a module-factory file: dep
// imports at the top (the only place ES module `import` is legal), then
// `export default function (_opts = {}) { … }` whose body runs, in
// order: required-arg/env checks, arg extraction, env extraction, dep
// resolution, the program's remaining statements, and finally the
// exported-bindings return.
func (e *Emitter) emitModule(stmts []ast.Stmt) {
	deps := collectDeps(stmts)
	for _, d := range deps {
		e.w.linef("import %s from %s;", depBinding(d.Alias), strconv.Quote(depImportPath(d.PathParts)))
	}
	if len(deps) > 0 {
		e.w.line("")
	}

	e.w.line("export default function (_opts = {}) {")
	e.w.push()
	e.emitRequiredChecks(stmts)
	e.emitArgExtraction(stmts)
	e.emitEnvExtraction(stmts)
	e.emitDepResolution(deps)
	e.emitBody(stmts)
	e.emitReturn(stmts)
	e.w.pop()
	e.w.line("}")
}

func depBinding(alias string) string { return "_dep_" + alias }

func depImportPath(parts []string) string {
	return "./" + strings.Join(parts, "/") + ".km"
}

func collectDeps(stmts []ast.Stmt) []*ast.DepStmt {
	var deps []*ast.DepStmt
	for _, s := range stmts {
		if d, ok := s.(*ast.DepStmt); ok {
			deps = append(deps, d)
		}
	}
	return deps
}

func (e *Emitter) emitRequiredChecks(stmts []ast.Stmt) {
	for _, s := range stmts {
		switch d := s.(type) {
		case *ast.ArgDecl:
			if d.Required {
				e.w.linef("if (!Object.prototype.hasOwnProperty.call(_opts, %s)) throw error(%s);",
					strconv.Quote(d.Name), strconv.Quote("missing required arg '"+d.Name+"'"))
			}
		case *ast.EnvDecl:
			if d.Required {
				e.w.linef("if (typeof process.env.%s === \"undefined\") throw error(%s);",
					d.Name, strconv.Quote("missing required env '"+d.Name+"'"))
			}
		}
	}
}

func (e *Emitter) emitArgExtraction(stmts []ast.Stmt) {
	for _, s := range stmts {
		a, ok := s.(*ast.ArgDecl)
		if !ok {
			continue
		}
		defaultExpr := "undefined"
		if a.Default != nil {
			defaultExpr = e.emitExpr(a.Default)
		}
		init := "Object.prototype.hasOwnProperty.call(_opts, " + strconv.Quote(a.Name) + ") ? _opts." + a.Name + " : " + defaultExpr
		if a.Secret {
			init = "_secret(" + init + ")"
		}
		e.w.linef("const %s = %s;", a.Name, init)
	}
}

func (e *Emitter) emitEnvExtraction(stmts []ast.Stmt) {
	for _, s := range stmts {
		d, ok := s.(*ast.EnvDecl)
		if !ok {
			continue
		}
		defaultExpr := "undefined"
		if d.Default != nil {
			defaultExpr = e.emitExpr(d.Default)
		}
		init := "typeof process.env." + d.Name + " !== \"undefined\" ? process.env." + d.Name + " : " + defaultExpr
		if d.Secret {
			init = "_secret(" + init + ")"
		}
		e.w.linef("const %s = %s;", d.Name, init)
	}
}

// emitDepResolution resolves each dep from the caller's override map
// before falling back to invoking the imported module factory, so a
// compile-time override always wins over the dep's own defaults.
func (e *Emitter) emitDepResolution(deps []*ast.DepStmt) {
	for _, d := range deps {
		path := strconv.Quote(strings.Join(d.PathParts, "."))
		call := depBinding(d.Alias) + "()"
		if d.Override != nil {
			call = depBinding(d.Alias) + "(" + e.emitExpr(d.Override) + ")"
		}
		e.w.linef("const %s = _opts[%s] || %s;", d.Alias, path, call)
	}
}

func (e *Emitter) emitBody(stmts []ast.Stmt) {
	for _, s := range stmts {
		switch s.(type) {
		case *ast.ArgDecl, *ast.EnvDecl, *ast.DepStmt:
			continue
		}
		e.emitStmt(s)
	}
}

func (e *Emitter) emitReturn(stmts []ast.Stmt) {
	names := collectExposedNames(stmts)
	e.w.linef("return { %s };", strings.Join(names, ", "))
}

func collectExposedNames(stmts []ast.Stmt) []string {
	var names []string
	for _, s := range stmts {
		switch d := s.(type) {
		case *ast.DecBinding:
			if !d.Exposed {
				continue
			}
			if d.Destructure != nil {
				names = append(names, collectPatternNames(d.Destructure)...)
			} else {
				names = append(names, d.Name)
			}
		case *ast.FunctionDecl:
			if d.Exposed {
				names = append(names, d.Name)
			}
		case *ast.ArgDecl:
			names = append(names, d.Name)
		case *ast.EnvDecl:
			names = append(names, d.Name)
		}
	}
	return names
}

func collectPatternNames(p ast.Pattern) []string {
	switch pp := p.(type) {
	case *ast.IdentPattern:
		return []string{pp.Name}
	case *ast.ObjectPattern:
		var out []string
		for _, prop := range pp.Props {
			out = append(out, collectPatternNames(prop.Bind)...)
		}
		return out
	case *ast.ArrayPattern:
		var out []string
		for _, el := range pp.Elements {
			if el != nil {
				out = append(out, collectPatternNames(el)...)
			}
		}
		return out
	default:
		return nil
	}
}
