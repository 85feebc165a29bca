package lexer

import "fmt"

type Kind int

const (
	EOF Kind = iota

	Int
	Float
	Bool
	String
	Ident

	// keywords
	Let
	Fn
	Return
	If
	Else
	While
	For
	Print
	Main
	Import
	Try
	Catch

	// operators
	Plus
	Minus
	Star
	Slash
	Percent
	Assign
	Equal
	NotEqual
	Less
	Greater
	LessEqual
	GreaterEqual
	And
	Or
	Not

	// symbols
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Comma
	Semicolon
	Dot
)

var kindNames = [...]string{
	EOF:          "EOF",
	Int:          "Int",
	Float:        "Float",
	Bool:         "Bool",
	String:       "String",
	Ident:        "Identifier",
	Let:          "let",
	Fn:           "fn",
	Return:       "return",
	If:           "if",
	Else:         "else",
	While:        "while",
	For:          "for",
	Print:        "print",
	Main:         "main",
	Import:       "import",
	Try:          "try",
	Catch:        "catch",
	Plus:         "+",
	Minus:        "-",
	Star:         "*",
	Slash:        "/",
	Percent:      "%",
	Assign:       "=",
	Equal:        "==",
	NotEqual:     "!=",
	Less:         "<",
	Greater:      ">",
	LessEqual:    "<=",
	GreaterEqual: ">=",
	And:          "&&",
	Or:           "||",
	Not:          "!",
	LParen:       "(",
	RParen:       ")",
	LBrace:       "{",
	RBrace:       "}",
	LBracket:     "[",
	RBracket:     "]",
	Comma:        ",",
	Semicolon:    ";",
	Dot:          ".",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

var keywords = map[string]Kind{
	"let":    Let,
	"fn":     Fn,
	"return": Return,
	"if":     If,
	"else":   Else,
	"while":  While,
	"for":    For,
	"print":  Print,
	"main":   Main,
	"import": Import,
	"try":    Try,
	"catch":  Catch,
}

// Token is a lexical token. Only the payload field matching Kind is set.
type Token struct {
	Kind  Kind
	Text  string // String and Ident
	Int   int64
	Float float64
	Bool  bool
}

func (t Token) String() string {
	switch t.Kind {
	case Int:
		return fmt.Sprintf("Int(%d)", t.Int)
	case Float:
		return fmt.Sprintf("Float(%g)", t.Float)
	case Bool:
		return fmt.Sprintf("Bool(%t)", t.Bool)
	case String:
		return fmt.Sprintf("String(%q)", t.Text)
	case Ident:
		return fmt.Sprintf("Identifier(%s)", t.Text)
	default:
		return t.Kind.String()
	}
}

func IsKeyword(s string) bool {
	_, ok := keywords[s]
	return ok
}
