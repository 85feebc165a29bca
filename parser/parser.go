// Package parser builds kode ASTs from token streams.
package parser

import (
	"github.com/gosuda/kode/ast"
	"github.com/gosuda/kode/diag"
	"github.com/gosuda/kode/lexer"
)

const (
	maxCallArgs     = 255
	maxExprNesting  = 512
	defaultFileStem = "main"
)

type Parser struct {
	tokens    []lexer.Token
	positions []diag.Pos
	current   int
	depth     int
	origin    string
}

// New creates a parser over tokens. file is only used to derive the origin
// tag attached to function definitions.
func New(file string, tokens []lexer.Token) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != lexer.EOF {
		tokens = append(tokens[:len(tokens):len(tokens)], lexer.Token{Kind: lexer.EOF})
	}
	return &Parser{
		tokens: tokens,
		origin: fileStem(file),
	}
}

// SetPositions attaches the lexer's position table so that errors can name
// a line and column.
func (p *Parser) SetPositions(positions []diag.Pos) {
	p.positions = positions
}

// Parse parses a complete program.
func (p *Parser) Parse() ([]ast.Statement, error) {
	var stmts []ast.Statement
	for !p.atEnd() {
		stmt, err := p.declaration()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

// ParseModule parses an import target. Only named function definitions and
// import statements are kept; any other token at the top level is skipped.
func (p *Parser) ParseModule() ([]ast.Statement, error) {
	var stmts []ast.Statement
	for !p.atEnd() {
		switch p.peek().Kind {
		case lexer.Import:
		case lexer.Fn:
			if p.peekAt(1).Kind == lexer.LParen {
				p.advance()
				continue
			}
		default:
			p.advance()
			continue
		}
		stmt, err := p.declaration()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

// ParseSource tokenizes src and parses it as a program.
func ParseSource(file, src string) ([]ast.Statement, error) {
	p, err := newFromSource(file, src)
	if err != nil {
		return nil, err
	}
	return p.Parse()
}

// ParseModuleSource tokenizes src and parses it as an import target.
func ParseModuleSource(file, src string) ([]ast.Statement, error) {
	p, err := newFromSource(file, src)
	if err != nil {
		return nil, err
	}
	return p.ParseModule()
}

func newFromSource(file, src string) (*Parser, error) {
	lx := lexer.New(src)
	tokens, err := lx.Tokenize()
	if err != nil {
		return nil, err
	}
	p := New(file, tokens)
	p.SetPositions(lx.Positions())
	return p, nil
}

func (p *Parser) peek() lexer.Token {
	return p.tokens[p.current]
}

func (p *Parser) peekAt(offset int) lexer.Token {
	i := p.current + offset
	if i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[i]
}

func (p *Parser) previous() lexer.Token {
	return p.tokens[p.current-1]
}

func (p *Parser) atEnd() bool {
	return p.peek().Kind == lexer.EOF
}

func (p *Parser) advance() lexer.Token {
	if !p.atEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(kind lexer.Kind) bool {
	return !p.atEnd() && p.peek().Kind == kind
}

func (p *Parser) match(kinds ...lexer.Kind) bool {
	for _, kind := range kinds {
		if p.check(kind) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(kind lexer.Kind, msg string) (lexer.Token, error) {
	if p.check(kind) {
		return p.advance(), nil
	}
	return lexer.Token{}, p.errorf("%s", msg)
}

func (p *Parser) consumeIdent(msg string) (string, error) {
	tok, err := p.consume(lexer.Ident, msg)
	if err != nil {
		return "", err
	}
	return tok.Text, nil
}

// errorf reports a parse error at the current token.
func (p *Parser) errorf(format string, args ...any) error {
	var pos diag.Pos
	if p.current < len(p.positions) {
		pos = p.positions[p.current]
	}
	return diag.At(diag.KindParse, pos, format, args...)
}

func (p *Parser) enter() error {
	p.depth++
	if p.depth > maxExprNesting {
		return p.errorf("Expression nesting too deep")
	}
	return nil
}

func (p *Parser) leave() {
	p.depth--
}
