package parser

import (
	"github.com/gosuda/kode/ast"
	"github.com/gosuda/kode/lexer"
)

var binaryOps = map[lexer.Kind]ast.BinaryOp{
	lexer.Or:           ast.OpOr,
	lexer.And:          ast.OpAnd,
	lexer.Equal:        ast.OpEqual,
	lexer.NotEqual:     ast.OpNotEqual,
	lexer.Less:         ast.OpLess,
	lexer.Greater:      ast.OpGreater,
	lexer.LessEqual:    ast.OpLessEqual,
	lexer.GreaterEqual: ast.OpGreaterEqual,
	lexer.Plus:         ast.OpAdd,
	lexer.Minus:        ast.OpSub,
	lexer.Star:         ast.OpMul,
	lexer.Slash:        ast.OpDiv,
	lexer.Percent:      ast.OpMod,
}

func opPrecedence(op ast.BinaryOp) int {
	switch op {
	case ast.OpOr:
		return 1
	case ast.OpAnd:
		return 2
	case ast.OpEqual, ast.OpNotEqual:
		return 3
	case ast.OpLess, ast.OpGreater, ast.OpLessEqual, ast.OpGreaterEqual:
		return 4
	case ast.OpAdd, ast.OpSub:
		return 5
	case ast.OpMul, ast.OpDiv, ast.OpMod:
		return 6
	default:
		return 0
	}
}

func (p *Parser) expression() (ast.Expr, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	return p.assignment()
}

// assignment is right-associative. Identifier targets become AssignExpr,
// index targets become a call to the array assignment intrinsic.
func (p *Parser) assignment() (ast.Expr, error) {
	expr, err := p.binary(1)
	if err != nil {
		return nil, err
	}
	if !p.match(lexer.Assign) {
		return expr, nil
	}
	switch target := expr.(type) {
	case ast.Ident:
		value, err := p.expression()
		if err != nil {
			return nil, err
		}
		return ast.AssignExpr{Name: target.Name, Value: value}, nil
	case ast.IndexExpr:
		value, err := p.expression()
		if err != nil {
			return nil, err
		}
		return ast.CallExpr{
			Callee: ast.Ident{Name: ast.ArrayAssignIntrinsic},
			Args:   []ast.Expr{target.Target, target.Index, value},
		}, nil
	}
	return nil, p.errorf("Invalid assignment target")
}

func (p *Parser) binary(minPrec int) (ast.Expr, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := binaryOps[p.peek().Kind]
		if !ok {
			break
		}
		prec := opPrecedence(op)
		if prec < minPrec {
			break
		}
		p.advance()
		right, err := p.binary(prec + 1)
		if err != nil {
			return nil, err
		}
		left = ast.BinaryExpr{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) unary() (ast.Expr, error) {
	var op ast.UnaryOp
	switch {
	case p.match(lexer.Minus):
		op = ast.OpNeg
	case p.match(lexer.Not):
		op = ast.OpNot
	default:
		return p.postfix()
	}
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	operand, err := p.unary()
	if err != nil {
		return nil, err
	}
	return ast.UnaryExpr{Op: op, Operand: operand}, nil
}

func (p *Parser) postfix() (ast.Expr, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.match(lexer.LParen):
			expr, err = p.finishCall(expr)
			if err != nil {
				return nil, err
			}
		case p.match(lexer.LBracket):
			index, err := p.expression()
			if err != nil {
				return nil, err
			}
			if _, err := p.consume(lexer.RBracket, "Expected ']' after array index"); err != nil {
				return nil, err
			}
			expr = ast.IndexExpr{Target: expr, Index: index}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) finishCall(callee ast.Expr) (ast.Expr, error) {
	var args []ast.Expr
	if !p.check(lexer.RParen) {
		for {
			if len(args) >= maxCallArgs {
				return nil, p.errorf("Cannot have more than %d arguments", maxCallArgs)
			}
			arg, err := p.expression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.match(lexer.Comma) {
				break
			}
		}
	}
	if _, err := p.consume(lexer.RParen, "Expected ')' after arguments"); err != nil {
		return nil, err
	}
	return ast.CallExpr{Callee: callee, Args: args}, nil
}

func (p *Parser) primary() (ast.Expr, error) {
	tok := p.peek()
	switch tok.Kind {
	case lexer.Int:
		p.advance()
		return ast.IntLit{Value: tok.Int}, nil
	case lexer.Float:
		p.advance()
		return ast.FloatLit{Value: tok.Float}, nil
	case lexer.Bool:
		p.advance()
		return ast.BoolLit{Value: tok.Bool}, nil
	case lexer.String:
		p.advance()
		return ast.StringLit{Value: tok.Text}, nil
	case lexer.Ident:
		p.advance()
		return ast.Ident{Name: tok.Text}, nil
	case lexer.LBracket:
		p.advance()
		return p.arrayLit()
	case lexer.LParen:
		p.advance()
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(lexer.RParen, "Expected ')' after expression"); err != nil {
			return nil, err
		}
		return expr, nil
	case lexer.Fn:
		p.advance()
		return p.closure()
	}
	return nil, p.errorf("Expected expression, got %s", tok)
}

func (p *Parser) arrayLit() (ast.Expr, error) {
	var elems []ast.Expr
	if !p.check(lexer.RBracket) {
		for {
			elem, err := p.expression()
			if err != nil {
				return nil, err
			}
			elems = append(elems, elem)
			if !p.match(lexer.Comma) {
				break
			}
		}
	}
	if _, err := p.consume(lexer.RBracket, "Expected ']' after array elements"); err != nil {
		return nil, err
	}
	return ast.ArrayLit{Elems: elems}, nil
}

func (p *Parser) closure() (ast.Expr, error) {
	if _, err := p.consume(lexer.LParen, "Expected '(' after 'fn' in closure"); err != nil {
		return nil, err
	}
	params, err := p.params("Expected ')' after closure parameters")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.LBrace, "Expected '{' before closure body"); err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return ast.ClosureExpr{Params: params, Body: body}, nil
}
