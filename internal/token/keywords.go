package token

// keywords maps every reserved identifier to its keyword Kind.
var keywords = map[string]Kind{
	"expose": KwExpose, "dec": KwDec, "fn": KwFn, "memo": KwMemo, "return": KwReturn,
	"if": KwIf, "else": KwElse, "elif": KwElif, "while": KwWhile, "for": KwFor, "in": KwIn,
	"break": KwBreak, "continue": KwContinue, "as": KwAs, "async": KwAsync, "await": KwAwait,
	"try": KwTry, "catch": KwCatch, "finally": KwFinally, "throw": KwThrow, "print": KwPrint,
	"dep": KwDep, "arg": KwArg, "env": KwEnv, "secret": KwSecret, "is": KwIs, "enum": KwEnum,
	"js": KwJS, "shell": KwShell, "test": KwTest, "describe": KwDescribe, "expect": KwExpect,
	"assert": KwAssert, "true": KwTrue, "false": KwFalse, "null": KwNull,
	"and": KwAnd, "or": KwOr, "not": KwNot,
}

// LookupKeyword returns the keyword Kind for name and true, or (Invalid,
// false) if name is an ordinary identifier.
func LookupKeyword(name string) (Kind, bool) {
	k, ok := keywords[name]
	return k, ok
}
