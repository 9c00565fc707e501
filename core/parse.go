package core

import (
	"strconv"
	"strings"
)

type parser struct {
	tokens []Token
	index  int
}

func NewParser(tokens []Token) parser {
	return parser{
		tokens: tokens,
		index:  0,
	}
}

func (p *parser) isEOF() bool {
	return p.index >= len(p.tokens)
}

func (p *parser) peek() Token {
	if p.isEOF() {
		return p.eofToken()
	}
	return p.tokens[p.index]
}

func (p *parser) eofToken() Token {
	tok := Token{Kind: EOF}
	if len(p.tokens) > 0 {
		last := p.tokens[len(p.tokens)-1]
		tok.Pos = last.Pos
		tok.Pos.Col += int(last.Length)
		tok.Pos.Offset += int(last.Length)
	} else {
		tok.Pos = Position{Line: 1, Col: 1}
	}
	return tok
}

func (p *parser) next() Token {
	tok := p.peek()

	if p.index < len(p.tokens) {
		p.index++
	}

	return tok
}

func (p *parser) errorf(expected string, got Token) *SyntaxError {
	actual := got.Lexeme()
	if got.Kind == EOF {
		actual = got.Kind.String()
	}
	return &SyntaxError{
		Expected: expected,
		Actual:   actual,
		Pos:      got.Pos,
		Index:    p.index,
	}
}

func (p *parser) expect(kind TokenKind) (Token, error) {
	if next := p.peek(); next.Kind != kind {
		return Token{Kind: UNKNOWN}, p.errorf(strconv.Quote(kind.String()), next)
	}

	return p.next(), nil
}

func (p *parser) expectIdentifier() (Token, error) {
	if next := p.peek(); next.Kind != IDENTIFIER {
		return Token{Kind: UNKNOWN}, p.errorf("identifier", next)
	}

	return p.next(), nil
}

// parseTypeAnnotation reads an optional `<lead> TYPE`. Without the lead
// token the annotation is empty and unchecked.
func (p *parser) parseTypeAnnotation(lead TokenKind, isReturn bool) (*TypeNode, error) {
	tok := p.peek()
	if tok.Kind != lead {
		return &TypeNode{Return: isReturn, Tok: tok}, nil
	}
	p.next()

	tag, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}

	return &TypeNode{Tag: tag.Payload, Return: isReturn, Tok: tag}, nil
}

// parseExpression folds every comparison operator into one left-associative
// chain, then every arithmetic operator into a second chain over that
// result. Operands are primaries; there is no grouping.
func (p *parser) parseExpression() (Node, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for p.peek().Kind.isComparison() {
		op := p.next()
		right, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}

		left = &ComparisonNode{Op: op.Kind.String(), Left: left, Right: right, Tok: op}
	}

	for p.peek().Kind.isArithmetic() {
		op := p.next()
		right, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}

		left = &BinaryNode{Op: op.Kind.String(), Left: left, Right: right, Tok: op}
	}

	return left, nil
}

func (p *parser) parsePrimary() (Node, error) {
	tok := p.peek()
	switch tok.Kind {
	case LET_KEYWORD:
		return p.parseLet()
	case FN_KEYWORD:
		return p.parseFunction()
	case IF_KEYWORD:
		return p.parseIf()
	case MATCH_KEYWORD:
		return p.parseMatch()
	case NUMBER_LITERAL:
		return p.parseNumber(p.next())
	case TRUE_LITERAL, FALSE_LITERAL:
		p.next()
		return &LiteralNode{Value: BoolValue(tok.Kind == TRUE_LITERAL), Tok: tok}, nil
	case STRING_LITERAL:
		return p.parseString(p.next())
	case IDENTIFIER:
		return p.parseIdentifierOrCall()
	}

	return nil, p.errorf("expression", tok)
}

func (p *parser) parseLet() (Node, error) {
	tok := p.next()

	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}

	ty, err := p.parseTypeAnnotation(COLON, false)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(SET); err != nil {
		return nil, err
	}

	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	return &LetNode{Name: name.Payload, Type: ty, Value: value, Tok: tok}, nil
}

func (p *parser) parseFunction() (Node, error) {
	tok := p.next()

	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}

	open, err := p.expect(LEFT_PAREN)
	if err != nil {
		return nil, err
	}

	params := &ParamsNode{Params: []*ParamNode{}, Tok: open}
	for p.peek().Kind != RIGHT_PAREN {
		pname, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}

		ty, err := p.parseTypeAnnotation(COLON, false)
		if err != nil {
			return nil, err
		}

		params.Params = append(params.Params, &ParamNode{Name: pname.Payload, Type: ty, Tok: pname})

		if p.peek().Kind == COMMA {
			p.next()
		}
	}
	p.next() // eat the right paren

	ret, err := p.parseTypeAnnotation(SINGLE_ARROW, true)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(SET); err != nil {
		return nil, err
	}

	body, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	return &FunctionNode{
		Name:       name.Payload,
		Params:     params,
		ReturnType: ret,
		Body:       body,
		Tok:        tok,
	}, nil
}

func (p *parser) parseIf() (Node, error) {
	tok := p.next()

	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(THEN_KEYWORD); err != nil {
		return nil, err
	}

	then, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(ELSE_KEYWORD); err != nil {
		return nil, err
	}

	else_, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	return &IfNode{Cond: cond, Then: then, Else: else_, Tok: tok}, nil
}

func (p *parser) parseMatch() (Node, error) {
	tok := p.next()

	subject, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(LEFT_BRACE); err != nil {
		return nil, err
	}

	cases := []*CaseNode{}
	for p.peek().Kind != RIGHT_BRACE {
		pattern, err := p.parsePattern()
		if err != nil {
			return nil, err
		}

		arrow, err := p.expect(SINGLE_ARROW)
		if err != nil {
			return nil, err
		}

		result, err := p.parseExpression()
		if err != nil {
			return nil, err
		}

		cases = append(cases, &CaseNode{Pattern: pattern, Result: result, Tok: arrow})

		if p.peek().Kind == COMMA {
			p.next()
		}
	}
	p.next() // eat the right brace

	return &MatchNode{Subject: subject, Cases: cases, Tok: tok}, nil
}

func (p *parser) parsePattern() (Node, error) {
	tok := p.peek()
	switch tok.Kind {
	case NUMBER_LITERAL:
		return p.parseNumber(p.next())
	case TRUE_LITERAL, FALSE_LITERAL:
		p.next()
		return &LiteralNode{Value: BoolValue(tok.Kind == TRUE_LITERAL), Tok: tok}, nil
	case STRING_LITERAL:
		return p.parseString(p.next())
	case WILDCARD:
		p.next()
		return &WildcardNode{Tok: tok}, nil
	case IDENTIFIER:
		p.next()
		return &IdentifierNode{Name: tok.Payload, Tok: tok}, nil
	}

	return nil, p.errorf("pattern", tok)
}

func (p *parser) parseIdentifierOrCall() (Node, error) {
	tok := p.next()

	if p.peek().Kind != LEFT_PAREN {
		return &IdentifierNode{Name: tok.Payload, Tok: tok}, nil
	}
	p.next()

	args := []Node{}
	for p.peek().Kind != RIGHT_PAREN {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}

		args = append(args, arg)

		if p.peek().Kind == COMMA {
			p.next()
		}
	}
	p.next() // eat the right paren

	return &CallNode{Name: tok.Payload, Args: args, Tok: tok}, nil
}

func (p *parser) parseString(tok Token) (Node, error) {
	builder := strings.Builder{}
	runes := []rune(tok.Payload)

	for i := 0; i < len(runes); i++ {
		ch := runes[i]

		if ch != '\\' || i+1 >= len(runes) {
			builder.WriteRune(ch)
			continue
		}

		i += 1
		ch = runes[i]

		switch ch {
		case 't':
			builder.WriteByte('\t')
		case 'n':
			builder.WriteByte('\n')
		case 'r':
			builder.WriteByte('\r')
		case 'f':
			builder.WriteByte('\f')
		case 'x':
			if i+2 >= len(runes) {
				builder.WriteByte('x')
				continue
			}

			hexCode, err := strconv.ParseUint(string(runes[i+1:i+3]), 16, 8)
			if err == nil {
				i += 2
				builder.WriteByte(uint8(hexCode))
			} else {
				builder.WriteByte('x')
			}
		default:
			builder.WriteRune(ch)
		}
	}

	return &StringNode{Payload: builder.String(), Tok: tok}, nil
}

func (p *parser) parseNumber(tok Token) (Node, error) {
	n, err := strconv.ParseInt(tok.Payload, 10, 64)
	if err != nil {
		return nil, &SyntaxError{
			Expected: "64-bit integer",
			Actual:   tok.Payload,
			Pos:      tok.Pos,
			Index:    p.index - 1,
		}
	}

	return &LiteralNode{Value: IntValue(n), Tok: tok}, nil
}

func (p *parser) Parse() ([]Node, error) {
	nodes := []Node{}

	for !p.isEOF() {
		node, err := p.parseExpression()
		if err != nil {
			return nil, err
		}

		nodes = append(nodes, node)
	}

	return nodes, nil
}
