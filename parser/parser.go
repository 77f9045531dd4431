package parser

import (
	"fmt"
	"strconv"
)

// Binding powers for the operator-precedence climb.
const (
	precLowest  = 0
	precOr      = 10
	precAnd     = 20
	precCompare = 30
	precSum     = 40
	precProduct = 50
	precPrefix  = 60
)

var infixPrecedence = map[string]int{
	"||": precOr,
	"&&": precAnd,
	"==": precCompare, "!=": precCompare,
	"<": precCompare, "<=": precCompare, ">": precCompare, ">=": precCompare,
	"+": precSum, "-": precSum,
	"*": precProduct, "/": precProduct, "%": precProduct,
}

// Parse parses the input into an expression tree.
func Parse(input string) (Expression, error) {
	tokens, err := lex(input)
	if err != nil {
		return nil, fmt.Errorf("lex: %w", err)
	}
	p := &parser{tokens: tokens}
	expr, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	if p.peek().Type != tokenEOF {
		return nil, fmt.Errorf("unexpected token %q at %d", p.peek().Text, p.peek().Pos)
	}
	return expr, nil
}

type parser struct {
	tokens []Token
	pos    int
}

func (p *parser) peek() Token { return p.tokens[p.pos] }

func (p *parser) next() Token {
	t := p.tokens[p.pos]
	if t.Type != tokenEOF {
		p.pos++
	}
	return t
}

func (p *parser) expect(tt TokenType, what string) (Token, error) {
	t := p.next()
	if t.Type != tt {
		return t, fmt.Errorf("expected %s at %d, got %q", what, t.Pos, t.Text)
	}
	return t, nil
}

func (p *parser) parseExpression(minPrec int) (Expression, error) {
	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		if t.Type != TokenOperator {
			break
		}
		prec, ok := infixPrecedence[t.Text]
		if !ok || prec <= minPrec {
			break
		}
		p.next()
		right, err := p.parseExpression(prec)
		if err != nil {
			return nil, err
		}
		left = Binary{Operator: t.Text, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parsePrefix() (Expression, error) {
	t := p.next()
	switch t.Type {
	case TokenNumber:
		v, err := strconv.ParseFloat(t.Text, 64)
		if err != nil {
			return nil, fmt.Errorf("bad number %q at %d", t.Text, t.Pos)
		}
		return Literal{Value: v}, nil
	case TokenString:
		return Literal{Value: t.Text}, nil
	case TokenBool:
		return Literal{Value: t.Text == "true"}, nil
	case TokenIdent:
		if p.peek().Type == TokenLeftParen {
			return p.parseCall(t.Text)
		}
		return Variable{Name: t.Text}, nil
	case TokenLeftParen:
		expr, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRightParen, ")"); err != nil {
			return nil, err
		}
		return expr, nil
	case TokenOperator:
		if t.Text == "-" || t.Text == "!" {
			operand, err := p.parseUnaryOperand()
			if err != nil {
				return nil, err
			}
			return Prefix{Operator: t.Text, Operand: operand}, nil
		}
		return nil, fmt.Errorf("unexpected operator %q at %d", t.Text, t.Pos)
	default:
		return nil, fmt.Errorf("unexpected token %q at %d", t.Text, t.Pos)
	}
}

// parseUnaryOperand binds unary operators tighter than any infix operator.
func (p *parser) parseUnaryOperand() (Expression, error) {
	return p.parseExpression(precPrefix)
}

func (p *parser) parseCall(name string) (Expression, error) {
	if _, err := p.expect(TokenLeftParen, "("); err != nil {
		return nil, err
	}
	var args []Expression
	if p.peek().Type != TokenRightParen {
		for {
			arg, err := p.parseExpression(precLowest)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.peek().Type != TokenComma {
				break
			}
			p.next()
		}
	}
	if _, err := p.expect(TokenRightParen, ")"); err != nil {
		return nil, err
	}
	return Call{Name: name, Args: args}, nil
}
