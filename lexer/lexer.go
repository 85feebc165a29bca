// Package lexer turns kode source text into tokens.
package lexer

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/gosuda/kode/diag"
)

type Lexer struct {
	src       []rune
	raw       string
	pos       int
	line      int
	col       int
	tokens    []Token
	positions []diag.Pos
}

func New(src string) *Lexer {
	return &Lexer{
		src:  []rune(src),
		raw:  src,
		line: 1,
		col:  1,
	}
}

// Tokenize lexes the whole input. The returned slice always ends with an EOF
// token. The first error aborts tokenization.
func Tokenize(src string) ([]Token, error) {
	return New(src).Tokenize()
}

// Positions returns the start position of every token produced by the last
// Tokenize call, index-aligned with the token slice.
func (l *Lexer) Positions() []diag.Pos {
	return l.positions
}

func (l *Lexer) Tokenize() ([]Token, error) {
	l.tokens = make([]Token, 0, len(l.src)/3+1)
	l.positions = make([]diag.Pos, 0, cap(l.tokens))
	for l.pos < len(l.src) {
		ch := l.src[l.pos]
		start := diag.Pos{Line: l.line, Column: l.col}
		switch {
		case unicode.IsSpace(ch):
			l.advance()
		case ch == '/' && l.peekAt(1) == '/':
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.advance()
			}
		case ch == '/' && l.peekAt(1) == '*':
			if err := l.skipBlockComment(start); err != nil {
				return nil, err
			}
		case ch == '"':
			s, err := l.readString(start)
			if err != nil {
				return nil, err
			}
			l.emit(Token{Kind: String, Text: s}, start)
		case isDigit(ch):
			l.emit(l.readNumber(), start)
		case isIdentStart(ch):
			l.emit(l.readIdent(), start)
		default:
			kind, width, ok := l.readOperator(ch)
			if !ok {
				return nil, diag.At(diag.KindLex, start, "Unexpected character '%c'", ch)
			}
			for i := 0; i < width; i++ {
				l.advance()
			}
			l.emit(Token{Kind: kind}, start)
		}
	}
	l.emit(Token{Kind: EOF}, eofPos(l.raw))
	return l.tokens, nil
}

func (l *Lexer) emit(tok Token, pos diag.Pos) {
	l.tokens = append(l.tokens, tok)
	l.positions = append(l.positions, pos)
}

func (l *Lexer) advance() {
	if l.pos >= len(l.src) {
		return
	}
	if l.src[l.pos] == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	l.pos++
}

func (l *Lexer) peekAt(offset int) rune {
	if l.pos+offset >= len(l.src) {
		return 0
	}
	return l.src[l.pos+offset]
}

func (l *Lexer) skipBlockComment(start diag.Pos) error {
	l.advance()
	l.advance()
	nesting := 1
	for nesting > 0 {
		if l.pos >= len(l.src) {
			return diag.At(diag.KindLex, start, "Unterminated block comment")
		}
		switch {
		case l.src[l.pos] == '*' && l.peekAt(1) == '/':
			l.advance()
			l.advance()
			nesting--
		case l.src[l.pos] == '/' && l.peekAt(1) == '*':
			l.advance()
			l.advance()
			nesting++
		default:
			l.advance()
		}
	}
	return nil
}

func (l *Lexer) readOperator(ch rune) (Kind, int, bool) {
	next := l.peekAt(1)
	switch ch {
	case '+':
		return Plus, 1, true
	case '-':
		return Minus, 1, true
	case '*':
		return Star, 1, true
	case '/':
		return Slash, 1, true
	case '%':
		return Percent, 1, true
	case '.':
		return Dot, 1, true
	case '(':
		return LParen, 1, true
	case ')':
		return RParen, 1, true
	case '{':
		return LBrace, 1, true
	case '}':
		return RBrace, 1, true
	case '[':
		return LBracket, 1, true
	case ']':
		return RBracket, 1, true
	case ',':
		return Comma, 1, true
	case ';':
		return Semicolon, 1, true
	case '=':
		if next == '=' {
			return Equal, 2, true
		}
		return Assign, 1, true
	case '!':
		if next == '=' {
			return NotEqual, 2, true
		}
		return Not, 1, true
	case '<':
		if next == '=' {
			return LessEqual, 2, true
		}
		return Less, 1, true
	case '>':
		if next == '=' {
			return GreaterEqual, 2, true
		}
		return Greater, 1, true
	case '&':
		if next == '&' {
			return And, 2, true
		}
	case '|':
		if next == '|' {
			return Or, 2, true
		}
	}
	return EOF, 0, false
}

// readNumber consumes a digit run with an optional fraction. The dot is only
// taken when a digit follows it. Unparsable text yields zero.
func (l *Lexer) readNumber() Token {
	start := l.pos
	isFloat := false
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if isDigit(c) {
			l.advance()
			continue
		}
		if c == '.' && !isFloat && isDigit(l.peekAt(1)) {
			isFloat = true
			l.advance()
			continue
		}
		break
	}
	text := string(l.src[start:l.pos])
	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			f = 0
		}
		return Token{Kind: Float, Float: f}
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		n = 0
	}
	return Token{Kind: Int, Int: n}
}

func (l *Lexer) readString(start diag.Pos) (string, error) {
	l.advance()
	var b strings.Builder
	escape := false
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		at := diag.Pos{Line: l.line, Column: l.col}
		l.advance()
		if escape {
			switch c {
			case 'n':
				b.WriteRune('\n')
			case 'r':
				b.WriteRune('\r')
			case 't':
				b.WriteRune('\t')
			case '\\', '"':
				b.WriteRune(c)
			default:
				return "", diag.At(diag.KindLex, at, "Invalid escape sequence '\\%c'", c)
			}
			escape = false
			continue
		}
		switch c {
		case '\\':
			escape = true
		case '"':
			return b.String(), nil
		default:
			b.WriteRune(c)
		}
	}
	return "", diag.At(diag.KindLex, start, "Unterminated string literal")
}

func (l *Lexer) readIdent() Token {
	start := l.pos
	for l.pos < len(l.src) && isIdentPart(l.src[l.pos]) {
		l.advance()
	}
	word := string(l.src[start:l.pos])
	switch word {
	case "true":
		return Token{Kind: Bool, Bool: true}
	case "false":
		return Token{Kind: Bool, Bool: false}
	}
	if kind, ok := keywords[word]; ok {
		return Token{Kind: kind}
	}
	return Token{Kind: Ident, Text: word}
}

// eofPos reports the last source line and one past its length, so that
// end-of-input diagnostics point at the final line rather than past it.
func eofPos(src string) diag.Pos {
	trimmed := strings.TrimSuffix(src, "\n")
	if trimmed == "" {
		return diag.Pos{Line: 1, Column: 1}
	}
	lines := strings.Split(trimmed, "\n")
	last := strings.TrimSuffix(lines[len(lines)-1], "\r")
	return diag.Pos{Line: len(lines), Column: len(last) + 1}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentStart(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
}

func isIdentPart(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
