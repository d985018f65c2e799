package diag

// Category is the five-way diagnostic taxonomy from the error handling
// design: each Code belongs to exactly one Category, and the user-visible
// format prints the Category, never the fine-grained Code.
type Category uint8

const (
	CategoryScan Category = iota
	CategoryParse
	CategoryType
	CategoryLint
	CategoryCompile
)

func (c Category) String() string {
	switch c {
	case CategoryScan:
		return "ScanError"
	case CategoryParse:
		return "ParseError"
	case CategoryType:
		return "TypeError"
	case CategoryLint:
		return "LintError"
	case CategoryCompile:
		return "CompileError"
	default:
		return "Error"
	}
}

// Code identifies a specific diagnostic condition. The name is used by
// tests and tooling that branch on exact cause; users only ever see the
// category.
type Code struct {
	Category Category
	Name     string
}

func (c Code) String() string { return c.Category.String() + "." + c.Name }

// Scan errors.
var (
	CodeUnterminatedString       = Code{CategoryScan, "UnterminatedString"}
	CodeUnterminatedBlockComment = Code{CategoryScan, "UnterminatedBlockComment"}
	CodeUnterminatedRegex        = Code{CategoryScan, "UnterminatedRegex"}
	CodeUnterminatedInterp       = Code{CategoryScan, "UnterminatedInterpolation"}
	CodeMissingShellBody         = Code{CategoryScan, "MissingShellBody"}
	CodeDisallowedChar           = Code{CategoryScan, "DisallowedCharacter"}
	CodeDisallowedBitwiseOp      = Code{CategoryScan, "DisallowedBitwiseOperator"}
)

// Parse errors.
var (
	CodeUnexpectedToken     = Code{CategoryParse, "UnexpectedToken"}
	CodeMissingToken        = Code{CategoryParse, "MissingExpectedToken"}
	CodeDisallowedModifier  = Code{CategoryParse, "DisallowedModifierUse"}
	CodeSecretInConsole     = Code{CategoryParse, "SecretIdentifierInConsoleCall"}
	CodeImmutableAssignment = Code{CategoryParse, "AssignmentToImmutableBinding"}
	CodeInvalidFlowOperand  = Code{CategoryParse, "InvalidFlowLeftOperand"}
	CodeInvalidDestructure  = Code{CategoryParse, "InvalidDestructureElement"}
	CodeExpectedExpression  = Code{CategoryParse, "ExpectedExpression"}
)

// Type errors.
var (
	CodeUndefinedIdentifier = Code{CategoryType, "UndefinedIdentifier"}
	CodeMissingProperty     = Code{CategoryType, "MissingProperty"}
	CodeNotCallable         = Code{CategoryType, "CallOfNonCallable"}
	CodeMissingEnumMember   = Code{CategoryType, "MissingEnumMember"}
	CodeDepOverrideMismatch = Code{CategoryType, "DepOverrideTypeMismatch"}
)

// Lint codes. Only CodeDuplicateKey is error-severity; the rest are
// warning/info and never promoted into the fatal list.
var (
	CodeDuplicateKey      = Code{CategoryLint, "DuplicateKey"}
	CodeUnusedBinding     = Code{CategoryLint, "UnusedBinding"}
	CodeShadowedBinding   = Code{CategoryLint, "ShadowedBinding"}
	CodeUnreachableCode   = Code{CategoryLint, "UnreachableCode"}
	CodeEmptyBlock        = Code{CategoryLint, "EmptyBlock"}
	CodeConstantCondition = Code{CategoryLint, "ConstantCondition"}
)

// Compile (orchestration) errors.
var (
	CodeMissingRequiredArg = Code{CategoryCompile, "MissingRequiredArg"}
)
