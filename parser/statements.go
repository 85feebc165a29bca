package parser

import (
	"github.com/gosuda/kode/ast"
	"github.com/gosuda/kode/lexer"
)

func (p *Parser) declaration() (ast.Statement, error) {
	switch {
	case p.match(lexer.Let):
		return p.letDecl()
	case p.match(lexer.Fn):
		return p.funcDef()
	case p.match(lexer.Import):
		return p.importDecl()
	}
	return p.statement()
}

func (p *Parser) letDecl() (ast.Statement, error) {
	name, err := p.consumeIdent("Expected variable name after 'let'")
	if err != nil {
		return nil, err
	}
	if !p.match(lexer.Assign) {
		return nil, p.errorf("Expected '=' after variable name in let declaration")
	}
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.Semicolon, "Expected ';' after variable declaration"); err != nil {
		return nil, err
	}
	return ast.LetStmt{Name: name, Value: value}, nil
}

func (p *Parser) funcDef() (ast.Statement, error) {
	isEntry := p.match(lexer.Main)
	name := ""
	if !isEntry {
		var err error
		name, err = p.consumeIdent("Expected function name after 'fn'")
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(lexer.LParen, "Expected '(' after function name"); err != nil {
		return nil, err
	}
	params, err := p.params("Expected ')' after parameters")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.LBrace, "Expected '{' before function body"); err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return ast.FuncDef{
		Origin:  p.origin,
		IsEntry: isEntry,
		Name:    name,
		Params:  params,
		Body:    body,
	}, nil
}

// params parses a parameter list after the opening parenthesis, including
// the closing one.
func (p *Parser) params(closeMsg string) ([]string, error) {
	var params []string
	if !p.check(lexer.RParen) {
		for {
			name, err := p.consumeIdent("Expected parameter name")
			if err != nil {
				return nil, err
			}
			params = append(params, name)
			if !p.match(lexer.Comma) {
				break
			}
		}
	}
	if _, err := p.consume(lexer.RParen, closeMsg); err != nil {
		return nil, err
	}
	return params, nil
}

func (p *Parser) importDecl() (ast.Statement, error) {
	name, err := p.consumeIdent("Expected module name after 'import'")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.Semicolon, "Expected ';' after import statement"); err != nil {
		return nil, err
	}
	return ast.ImportStmt{Module: name}, nil
}

func (p *Parser) statement() (ast.Statement, error) {
	switch {
	case p.match(lexer.LBrace):
		body, err := p.block()
		if err != nil {
			return nil, err
		}
		return ast.BlockStmt{Body: body}, nil
	case p.match(lexer.If):
		return p.ifStmt()
	case p.match(lexer.While):
		return p.whileStmt()
	case p.match(lexer.For):
		return p.forStmt()
	case p.match(lexer.Print):
		return p.printStmt()
	case p.match(lexer.Return):
		return p.returnStmt()
	case p.match(lexer.Try):
		return p.tryStmt()
	}
	return p.exprStmt()
}

// block parses statements up to and including the closing brace.
func (p *Parser) block() ([]ast.Statement, error) {
	var stmts []ast.Statement
	for !p.check(lexer.RBrace) && !p.atEnd() {
		stmt, err := p.declaration()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	if _, err := p.consume(lexer.RBrace, "Expected '}' after block"); err != nil {
		return nil, err
	}
	return stmts, nil
}

func (p *Parser) printStmt() (ast.Statement, error) {
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.Semicolon, "Expected ';' after print statement"); err != nil {
		return nil, err
	}
	return ast.PrintStmt{Value: value}, nil
}

// returnStmt parses `return [expr];`. A bare return carries a false literal.
func (p *Parser) returnStmt() (ast.Statement, error) {
	var value ast.Expr = ast.BoolLit{Value: false}
	if !p.check(lexer.Semicolon) {
		var err error
		value, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(lexer.Semicolon, "Expected ';' after return value"); err != nil {
		return nil, err
	}
	return ast.ReturnStmt{Value: value}, nil
}

func (p *Parser) ifStmt() (ast.Statement, error) {
	if _, err := p.consume(lexer.LParen, "Expected '(' after 'if'"); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.RParen, "Expected ')' after if condition"); err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.LBrace, "Expected '{' before if body"); err != nil {
		return nil, err
	}
	then, err := p.block()
	if err != nil {
		return nil, err
	}
	stmt := ast.IfStmt{Cond: cond, Then: then}
	if !p.match(lexer.Else) {
		return stmt, nil
	}
	if p.match(lexer.If) {
		elseIf, err := p.ifStmt()
		if err != nil {
			return nil, err
		}
		stmt.Else = []ast.Statement{elseIf}
		return stmt, nil
	}
	if _, err := p.consume(lexer.LBrace, "Expected '{' before else body"); err != nil {
		return nil, err
	}
	stmt.Else, err = p.block()
	if err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) whileStmt() (ast.Statement, error) {
	if _, err := p.consume(lexer.LParen, "Expected '(' after 'while'"); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.RParen, "Expected ')' after while condition"); err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.LBrace, "Expected '{' before while body"); err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return ast.WhileStmt{Cond: cond, Body: body}, nil
}

func (p *Parser) forStmt() (ast.Statement, error) {
	if _, err := p.consume(lexer.LParen, "Expected '(' after 'for'"); err != nil {
		return nil, err
	}
	var stmt ast.ForStmt
	var err error
	switch {
	case p.match(lexer.Semicolon):
	case p.match(lexer.Let):
		stmt.Init, err = p.letDecl()
	default:
		stmt.Init, err = p.exprStmt()
	}
	if err != nil {
		return nil, err
	}
	if !p.check(lexer.Semicolon) {
		stmt.Cond, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(lexer.Semicolon, "Expected ';' after loop condition"); err != nil {
		return nil, err
	}
	if !p.check(lexer.RParen) {
		update, err := p.expression()
		if err != nil {
			return nil, err
		}
		stmt.Update = ast.ExprStmt{Expr: update}
	}
	if _, err := p.consume(lexer.RParen, "Expected ')' after for clauses"); err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.LBrace, "Expected '{' before for body"); err != nil {
		return nil, err
	}
	stmt.Body, err = p.block()
	if err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) tryStmt() (ast.Statement, error) {
	if _, err := p.consume(lexer.LBrace, "Expected '{' after 'try'"); err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.Catch, "Expected 'catch' after try block"); err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.LBrace, "Expected '{' after 'catch'"); err != nil {
		return nil, err
	}
	catch, err := p.block()
	if err != nil {
		return nil, err
	}
	return ast.TryStmt{Body: body, Catch: catch}, nil
}

// exprStmt parses an expression statement. A top-level identifier
// assignment becomes an AssignStmt.
func (p *Parser) exprStmt() (ast.Statement, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if assign, ok := expr.(ast.AssignExpr); ok {
		if _, err := p.consume(lexer.Semicolon, "Expected ';' after assignment"); err != nil {
			return nil, err
		}
		return ast.AssignStmt{Name: assign.Name, Value: assign.Value}, nil
	}
	if _, err := p.consume(lexer.Semicolon, "Expected ';' after expression"); err != nil {
		return nil, err
	}
	return ast.ExprStmt{Expr: expr}, nil
}
