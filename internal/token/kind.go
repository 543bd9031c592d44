package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid marks unknown input and parse errors.
	Invalid Kind = iota

	// Whitespace is a run of blanks, ending after at most one newline.
	Whitespace
	// Comment is a //, # or /* */ comment.
	Comment
	// DocComment is a /** */ comment.
	DocComment

	// Variable is $name.
	Variable
	// Identifier is a bare name (function, class, constant or member name).
	Identifier
	// Dollar is a lone '$' (variable variables).
	Dollar

	// LNumber is an integer literal.
	LNumber
	// DNumber is a floating point literal.
	DNumber
	// ConstantString is a single quoted string or a double quoted one without interpolation.
	ConstantString
	// InterpolatedString is a double quoted string containing $ or {$.
	InterpolatedString
	// Heredoc is a whole <<<ID ... ID block.
	Heredoc
	// Nowdoc is a whole <<<'ID' ... ID block.
	Nowdoc
	// Cast is a type cast such as (int).
	Cast

	KwAbstract
	KwArray
	KwAs
	KwBreak
	KwCase
	KwCatch
	KwClass
	KwClone
	KwConst
	KwContinue
	KwDeclare
	KwDefault
	KwDo
	KwEcho
	KwElse
	KwElseif
	KwEmpty
	KwEnddeclare
	KwEndfor
	KwEndforeach
	KwEndif
	KwEndswitch
	KwEndwhile
	KwEnum
	KwExit
	KwExtends
	KwFalse
	KwFinal
	KwFinally
	KwFn
	KwFor
	KwForeach
	KwFunction
	KwGlobal
	KwIf
	KwImplements
	KwInclude
	KwIncludeOnce
	KwInstanceof
	KwInsteadof
	KwInterface
	KwIsset
	KwList
	KwMatch
	KwNamespace
	KwNew
	KwNull
	KwPrint
	KwPrivate
	KwProtected
	KwPublic
	KwReadonly
	KwRequire
	KwRequireOnce
	KwReturn
	KwStatic
	KwSwitch
	KwThrow
	KwTrait
	KwTrue
	KwTry
	KwUnset
	KwUse
	KwVar
	KwWhile
	KwYield
	// LogicalAnd is the 'and' keyword operator.
	LogicalAnd
	// LogicalOr is the 'or' keyword operator.
	LogicalOr
	// LogicalXor is the 'xor' keyword operator.
	LogicalXor

	Plus                   // +
	Minus                  // -
	Star                   // *
	Slash                  // /
	Percent                // %
	Pow                    // **
	Concat                 // .
	Assign                 // =
	PlusAssign             // +=
	MinusAssign            // -=
	MulAssign              // *=
	DivAssign              // /=
	ConcatAssign           // .=
	ModAssign              // %=
	PowAssign              // **=
	AndAssign              // &=
	OrAssign               // |=
	XorAssign              // ^=
	ShlAssign              // <<=
	ShrAssign              // >>=
	CoalesceAssign         // ??=
	Equal                  // ==
	Identical              // ===
	NotEqual               // != или <>
	NotIdentical           // !==
	Less                   // <
	Greater                // >
	LessEqual              // <=
	GreaterEqual           // >=
	Spaceship              // <=>
	BooleanAnd             // &&
	BooleanOr              // ||
	BooleanNot             // !
	BitAnd                 // &
	BitOr                  // |
	BitXor                 // ^
	BitNot                 // ~
	Shl                    // <<
	Shr                    // >>
	Coalesce               // ??
	InlineThen             // ? (ternary)
	InlineElse             // : (ternary)
	Nullable               // ? (nullable type)
	Colon                  // :
	DoubleColon            // ::
	ObjectOperator         // ->
	NullsafeObjectOperator // ?->
	DoubleArrow            // =>
	Inc                    // ++
	Dec                    // --
	At                     // @
	NsSeparator            // \
	Ellipsis               // ...
	Semicolon              // ;
	Comma                  // ,

	OpenParen       // (
	CloseParen      // )
	OpenCurly       // {
	CloseCurly      // }
	OpenSquare      // [ (index access)
	CloseSquare     // ]
	OpenShortArray  // [ (array literal)
	CloseShortArray // ]
	AttributeStart  // #[

	kindCount
)

// NumKinds is the number of defined kinds; usable as a table size.
const NumKinds = int(kindCount)

var kindNames = [...]string{
	Invalid:                "Invalid",
	Whitespace:             "Whitespace",
	Comment:                "Comment",
	DocComment:             "DocComment",
	Variable:               "Variable",
	Identifier:             "Identifier",
	Dollar:                 "Dollar",
	LNumber:                "LNumber",
	DNumber:                "DNumber",
	ConstantString:         "ConstantString",
	InterpolatedString:     "InterpolatedString",
	Heredoc:                "Heredoc",
	Nowdoc:                 "Nowdoc",
	Cast:                   "Cast",
	KwAbstract:             "KwAbstract",
	KwArray:                "KwArray",
	KwAs:                   "KwAs",
	KwBreak:                "KwBreak",
	KwCase:                 "KwCase",
	KwCatch:                "KwCatch",
	KwClass:                "KwClass",
	KwClone:                "KwClone",
	KwConst:                "KwConst",
	KwContinue:             "KwContinue",
	KwDeclare:              "KwDeclare",
	KwDefault:              "KwDefault",
	KwDo:                   "KwDo",
	KwEcho:                 "KwEcho",
	KwElse:                 "KwElse",
	KwElseif:               "KwElseif",
	KwEmpty:                "KwEmpty",
	KwEnddeclare:           "KwEnddeclare",
	KwEndfor:               "KwEndfor",
	KwEndforeach:           "KwEndforeach",
	KwEndif:                "KwEndif",
	KwEndswitch:            "KwEndswitch",
	KwEndwhile:             "KwEndwhile",
	KwEnum:                 "KwEnum",
	KwExit:                 "KwExit",
	KwExtends:              "KwExtends",
	KwFalse:                "KwFalse",
	KwFinal:                "KwFinal",
	KwFinally:              "KwFinally",
	KwFn:                   "KwFn",
	KwFor:                  "KwFor",
	KwForeach:              "KwForeach",
	KwFunction:             "KwFunction",
	KwGlobal:               "KwGlobal",
	KwIf:                   "KwIf",
	KwImplements:           "KwImplements",
	KwInclude:              "KwInclude",
	KwIncludeOnce:          "KwIncludeOnce",
	KwInstanceof:           "KwInstanceof",
	KwInsteadof:            "KwInsteadof",
	KwInterface:            "KwInterface",
	KwIsset:                "KwIsset",
	KwList:                 "KwList",
	KwMatch:                "KwMatch",
	KwNamespace:            "KwNamespace",
	KwNew:                  "KwNew",
	KwNull:                 "KwNull",
	KwPrint:                "KwPrint",
	KwPrivate:              "KwPrivate",
	KwProtected:            "KwProtected",
	KwPublic:               "KwPublic",
	KwReadonly:             "KwReadonly",
	KwRequire:              "KwRequire",
	KwRequireOnce:          "KwRequireOnce",
	KwReturn:               "KwReturn",
	KwStatic:               "KwStatic",
	KwSwitch:               "KwSwitch",
	KwThrow:                "KwThrow",
	KwTrait:                "KwTrait",
	KwTrue:                 "KwTrue",
	KwTry:                  "KwTry",
	KwUnset:                "KwUnset",
	KwUse:                  "KwUse",
	KwVar:                  "KwVar",
	KwWhile:                "KwWhile",
	KwYield:                "KwYield",
	LogicalAnd:             "LogicalAnd",
	LogicalOr:              "LogicalOr",
	LogicalXor:             "LogicalXor",
	Plus:                   "Plus",
	Minus:                  "Minus",
	Star:                   "Star",
	Slash:                  "Slash",
	Percent:                "Percent",
	Pow:                    "Pow",
	Concat:                 "Concat",
	Assign:                 "Assign",
	PlusAssign:             "PlusAssign",
	MinusAssign:            "MinusAssign",
	MulAssign:              "MulAssign",
	DivAssign:              "DivAssign",
	ConcatAssign:           "ConcatAssign",
	ModAssign:              "ModAssign",
	PowAssign:              "PowAssign",
	AndAssign:              "AndAssign",
	OrAssign:               "OrAssign",
	XorAssign:              "XorAssign",
	ShlAssign:              "ShlAssign",
	ShrAssign:              "ShrAssign",
	CoalesceAssign:         "CoalesceAssign",
	Equal:                  "Equal",
	Identical:              "Identical",
	NotEqual:               "NotEqual",
	NotIdentical:           "NotIdentical",
	Less:                   "Less",
	Greater:                "Greater",
	LessEqual:              "LessEqual",
	GreaterEqual:           "GreaterEqual",
	Spaceship:              "Spaceship",
	BooleanAnd:             "BooleanAnd",
	BooleanOr:              "BooleanOr",
	BooleanNot:             "BooleanNot",
	BitAnd:                 "BitAnd",
	BitOr:                  "BitOr",
	BitXor:                 "BitXor",
	BitNot:                 "BitNot",
	Shl:                    "Shl",
	Shr:                    "Shr",
	Coalesce:               "Coalesce",
	InlineThen:             "InlineThen",
	InlineElse:             "InlineElse",
	Nullable:               "Nullable",
	Colon:                  "Colon",
	DoubleColon:            "DoubleColon",
	ObjectOperator:         "ObjectOperator",
	NullsafeObjectOperator: "NullsafeObjectOperator",
	DoubleArrow:            "DoubleArrow",
	Inc:                    "Inc",
	Dec:                    "Dec",
	At:                     "At",
	NsSeparator:            "NsSeparator",
	Ellipsis:               "Ellipsis",
	Semicolon:              "Semicolon",
	Comma:                  "Comma",
	OpenParen:              "OpenParen",
	CloseParen:             "CloseParen",
	OpenCurly:              "OpenCurly",
	CloseCurly:             "CloseCurly",
	OpenSquare:             "OpenSquare",
	CloseSquare:            "CloseSquare",
	OpenShortArray:         "OpenShortArray",
	CloseShortArray:        "CloseShortArray",
	AttributeStart:         "AttributeStart",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// KindByName resolves the String() form back into a Kind.
func KindByName(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return Invalid, false
}

// IsKeyword reports whether k is a reserved word (including and/or/xor).
func (k Kind) IsKeyword() bool {
	return k >= KwAbstract && k <= LogicalXor
}

// IsOperator reports whether k is an operator or punctuation other than brackets.
func (k Kind) IsOperator() bool {
	return k >= Plus && k <= Comma
}

// IsLiteral reports whether k is a numeric or string literal.
func (k Kind) IsLiteral() bool {
	return k >= LNumber && k <= Nowdoc
}

// IsEmpty reports whether k carries no code (whitespace or comments).
func (k Kind) IsEmpty() bool {
	return k == Whitespace || k == Comment || k == DocComment
}
