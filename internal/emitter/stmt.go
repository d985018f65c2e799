package emitter

import (
	"strconv"
	"strings"

	"kimchi/internal/ast"
)

// emitStmts emits each statement in order, in the writer's current scope
// and indent level.
func (e *Emitter) emitStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		e.emitStmt(s)
	}
}

func (e *Emitter) emitStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.DecBinding:
		e.emitDecBinding(s)
	case *ast.FunctionDecl:
		e.emitFunctionDecl(s)
	case *ast.EnumDecl:
		e.emitEnumDecl(s)
	case *ast.ArgDecl, *ast.EnvDecl, *ast.DepStmt:
		// Top-level-only constructs; the module wrapper emits these in
		// its own dedicated phases rather than through the general walk.
	case *ast.BlockStmt:
		e.w.line("{")
		e.w.push()
		e.emitStmts(s.Statements)
		e.w.pop()
		e.w.line("}")
	case *ast.IfStmt:
		e.emitIfStmt(s)
	case *ast.WhileStmt:
		e.emitWhileStmt(s)
	case *ast.ForInStmt:
		e.emitForInStmt(s)
	case *ast.ReturnStmt:
		if s.Value == nil {
			e.w.line("return;")
		} else {
			e.w.linef("return %s;", e.emitExpr(s.Value))
		}
	case *ast.BreakStmt:
		e.w.line("break;")
	case *ast.ContinueStmt:
		e.w.line("continue;")
	case *ast.TryStmt:
		e.emitTryStmt(s)
	case *ast.ThrowStmt:
		e.w.linef("throw %s;", e.emitExpr(s.Value))
	case *ast.PatternMatchStmt:
		e.emitPatternMatchStmt(s)
	case *ast.PrintStmt:
		e.w.linef("console.log(%s);", joinExprs(e, s.Args))
	case *ast.ExpressionStmt:
		e.emitExpressionStmt(s)
	case *ast.JSBlock:
		e.emitJSBlockStmt(s)
	case *ast.ShellBlock:
		e.w.linef("%s;", e.emitShellBlockExpr(s))
	case *ast.TestBlock:
		e.emitTestBlock(s)
	case *ast.DescribeBlock:
		e.emitDescribeBlock(s)
	case *ast.ExpectStmt:
		e.emitExpectStmt(s)
	case *ast.AssertStmt:
		e.emitAssertStmt(s)
	case *ast.FlowExpr:
		e.emitFlowExpr(s)
	}
}

func joinExprs(e *Emitter, exprs []ast.Expr) string {
	parts := make([]string, len(exprs))
	for i, x := range exprs {
		parts[i] = e.emitExpr(x)
	}
	return strings.Join(parts, ", ")
}

// emitDecBinding lowers `dec`/`secret dec`/`expose dec` into a frozen
// const. A secret binding wraps its initializer in _secret(...) before
// the freeze, matching the preamble's coercion-masking wrapper.
func (e *Emitter) emitDecBinding(d *ast.DecBinding) {
	init := e.emitExpr(d.Init)
	if d.Secret {
		init = "_secret(" + init + ")"
	}
	init = "_deepFreeze(" + init + ")"
	name := d.Name
	if d.Destructure != nil {
		name = patternText(d.Destructure)
	}
	e.w.linef("const %s = %s;", name, init)
}

func (e *Emitter) emitFunctionDecl(fn *ast.FunctionDecl) {
	if fn.Memoized {
		e.emitMemoizedFunctionDecl(fn)
		return
	}
	prefix := "function"
	if fn.Async {
		prefix = "async function"
	}
	e.w.linef("%s %s(%s) {", prefix, fn.Name, e.paramList(fn.Params))
	e.w.push()
	e.emitStmts(fn.Body.Statements)
	e.w.pop()
	e.w.line("}")
}

// emitMemoizedFunctionDecl wraps the function body in an IIFE holding a
// Map keyed by JSON.stringify(arguments), per the memoization contract.
func (e *Emitter) emitMemoizedFunctionDecl(fn *ast.FunctionDecl) {
	params := e.paramList(fn.Params)
	forward := argNames(fn.Params)
	innerPrefix := "function"
	resultExpr := "_result = ("
	if fn.Async {
		innerPrefix = "async function"
		resultExpr = "_result = await ("
	}

	e.w.linef("const %s = (function () {", fn.Name)
	e.w.push()
	e.w.line("const _cache = new Map();")
	e.w.linef("return %s (%s) {", innerPrefix, params)
	e.w.push()
	e.w.line("const _key = JSON.stringify(Array.from(arguments));")
	e.w.line("if (_cache.has(_key)) return _cache.get(_key);")
	e.w.linef("let %s%s (%s) {", resultExpr, innerPrefix, params)
	e.w.push()
	e.emitStmts(fn.Body.Statements)
	e.w.pop()
	e.w.linef("})(%s);", forward)
	e.w.line("_cache.set(_key, _result);")
	e.w.line("return _result;")
	e.w.pop()
	e.w.line("};")
	e.w.pop()
	e.w.line("})();")
}

func (e *Emitter) emitEnumDecl(en *ast.EnumDecl) {
	e.w.linef("const %s = Object.freeze({", en.Name)
	e.w.push()
	var next int64
	for _, m := range en.Members {
		val := next
		if m.ExplicitValue != nil {
			val = *m.ExplicitValue
		}
		e.w.linef("%s: %d,", m.Name, val)
		next = val + 1
	}
	e.w.pop()
	e.w.line("});")
}

func (e *Emitter) emitIfStmt(s *ast.IfStmt) {
	e.w.linef("if (%s) {", e.emitExpr(s.Cond))
	e.w.push()
	e.emitStmts(s.Then.Statements)
	e.w.pop()
	e.w.line("}")
	e.emitElseClause(s.Else)
}

func (e *Emitter) emitElseClause(elseNode ast.Stmt) {
	switch n := elseNode.(type) {
	case nil:
		return
	case *ast.BlockStmt:
		e.w.line("else {")
		e.w.push()
		e.emitStmts(n.Statements)
		e.w.pop()
		e.w.line("}")
	case *ast.IfStmt:
		e.w.linef("else if (%s) {", e.emitExpr(n.Cond))
		e.w.push()
		e.emitStmts(n.Then.Statements)
		e.w.pop()
		e.w.line("}")
		e.emitElseClause(n.Else)
	}
}

func (e *Emitter) emitWhileStmt(s *ast.WhileStmt) {
	e.w.linef("while (%s) {", e.emitExpr(s.Cond))
	e.w.push()
	e.emitStmts(s.Body.Statements)
	e.w.pop()
	e.w.line("}")
}

func (e *Emitter) emitForInStmt(s *ast.ForInStmt) {
	binder := s.Var
	if s.Destructure != nil {
		binder = patternText(s.Destructure)
	}
	e.w.linef("for (const %s of %s) {", binder, e.emitExpr(s.Iterable))
	e.w.push()
	e.emitStmts(s.Body.Statements)
	e.w.pop()
	e.w.line("}")
}

func (e *Emitter) emitTryStmt(s *ast.TryStmt) {
	e.w.line("try {")
	e.w.push()
	e.emitStmts(s.Block.Statements)
	e.w.pop()
	e.w.line("}")
	if s.HasCatch {
		if s.CatchParam == "" {
			e.w.line("catch {")
		} else {
			e.w.linef("catch (%s) {", s.CatchParam)
		}
		e.w.push()
		e.emitStmts(s.CatchBody.Statements)
		e.w.pop()
		e.w.line("}")
	}
	if s.Finally != nil {
		e.w.line("finally {")
		e.w.push()
		e.emitStmts(s.Finally.Statements)
		e.w.pop()
		e.w.line("}")
	}
}

// emitPatternMatchStmt lowers the guarded-arm chain to if/else-if. A
// regex-form arm's "guard" is just the regex literal itself: a RegExp
// value is always truthy in a boolean position, so /pat/ => body reads as
// an unconditional (catch-all) arm without needing a match subject.
func (e *Emitter) emitPatternMatchStmt(s *ast.PatternMatchStmt) {
	for i, arm := range s.Arms {
		keyword := "if"
		if i > 0 {
			keyword = "else if"
		}
		cond := "/" + arm.RegexPat + "/" + arm.RegexFlags
		if !arm.IsRegex {
			cond = e.emitExpr(arm.Guard)
		}
		e.w.linef("%s (%s) {", keyword, cond)
		e.w.push()
		e.emitMatchArmBody(arm.Body, s.InFunction)
		e.w.pop()
		e.w.line("}")
	}
}

func (e *Emitter) emitMatchArmBody(body ast.Stmt, inFunction bool) {
	if block, ok := body.(*ast.BlockStmt); ok {
		e.emitStmts(block.Statements)
	} else {
		e.emitStmt(body)
	}
	if inFunction {
		e.w.line("return;")
	}
}

func (e *Emitter) emitExpressionStmt(s *ast.ExpressionStmt) {
	text := e.emitExpr(s.X)
	if _, ok := s.X.(*ast.ObjectLiteral); ok {
		text = "(" + text + ")"
	}
	e.w.linef("%s;", text)
}

// emitJSBlockStmt inlines a js(...) { … } block's already-reassembled raw
// source as an immediately-invoked function, so its inputs arrive as
// ordinary parameters rather than relying on closure capture.
func (e *Emitter) emitJSBlockStmt(b *ast.JSBlock) {
	params := strings.Join(b.Inputs, ", ")
	e.w.linef("(function (%s) {", params)
	e.w.push()
	for _, ln := range strings.Split(b.Raw, "\n") {
		e.w.line(ln)
	}
	e.w.pop()
	e.w.linef("})(%s);", params)
}

func (e *Emitter) emitJSBlockExpr(b *ast.JSBlock) string {
	params := strings.Join(b.Inputs, ", ")
	indent := strings.Repeat("  ", e.w.indent+1)
	lines := strings.Split(b.Raw, "\n")
	for i, ln := range lines {
		lines[i] = indent + ln
	}
	body := strings.Join(lines, "\n")
	return "(function (" + params + ") {\n" + body + "\n" + strings.Repeat("  ", e.w.indent) + "})(" + params + ")"
}

// emitShellBlockExpr calls the _shell runtime helper with the block's
// raw command text and a vars object built from its declared inputs, so
// $name interpolation happens at runtime against the caller's values.
func (e *Emitter) emitShellBlockExpr(b *ast.ShellBlock) string {
	if len(b.Inputs) == 0 {
		return "_shell(" + strconv.Quote(b.Raw) + ", undefined)"
	}
	parts := make([]string, len(b.Inputs))
	for i, name := range b.Inputs {
		parts[i] = name + ": " + name
	}
	return "_shell(" + strconv.Quote(b.Raw) + ", { " + strings.Join(parts, ", ") + " })"
}

func (e *Emitter) emitTestBlock(s *ast.TestBlock) {
	e.w.linef("_test(%s, function () {", strconv.Quote(s.Name))
	e.w.push()
	e.emitStmts(s.Body.Statements)
	e.w.pop()
	e.w.line("});")
}

func (e *Emitter) emitDescribeBlock(s *ast.DescribeBlock) {
	e.w.linef("_describe(%s, function () {", strconv.Quote(s.Name))
	e.w.push()
	e.emitStmts(s.Body)
	e.w.pop()
	e.w.line("});")
}

func (e *Emitter) emitExpectStmt(s *ast.ExpectStmt) {
	if s.Expected == nil {
		e.w.linef("_expect(%s).%s();", e.emitExpr(s.Actual), s.Matcher)
		return
	}
	e.w.linef("_expect(%s).%s(%s);", e.emitExpr(s.Actual), s.Matcher, e.emitExpr(s.Expected))
}

func (e *Emitter) emitAssertStmt(s *ast.AssertStmt) {
	if s.Message == nil {
		e.w.linef("_assert(%s);", e.emitExpr(s.Cond))
		return
	}
	e.w.linef("_assert(%s, %s);", e.emitExpr(s.Cond), e.emitExpr(s.Message))
}

// emitFlowExpr lowers `name >> f1 f2 … fn` into a const bound to the
// left-to-right composition, f1 applied first.
func (e *Emitter) emitFlowExpr(s *ast.FlowExpr) {
	e.w.linef("const %s = (..._args) => %s;", s.Name, composeCallChain(s.Functions))
}

// composeCallChain builds f_n(f_n-1(...f_1(..._args))) from an
// innermost-first function name list.
func composeCallChain(names []string) string {
	expr := "..._args"
	for i, name := range names {
		if i == 0 {
			expr = name + "(..._args)"
		} else {
			expr = name + "(" + expr + ")"
		}
	}
	return expr
}
