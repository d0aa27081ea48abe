package dice

// Parser is a recursive descent parser over one arithmetic token slice.
type Parser struct {
	tokens []Token
	pos    int
	end    Token // returned by current once all tokens are consumed
}

// Parse builds the expression tree for a token sequence.
//
// A comparison operator, if present, splits the sequence into two
// independently parsed sides. More than one comparison is an error.
func Parse(lexed LexedExpression) (Expression, error) {
	split := -1
	for i, tok := range lexed.Tokens {
		if !tok.Type.IsComparison() {
			continue
		}
		if split >= 0 {
			return nil, &ParseError{Kind: ExtraComparisonOperator, Pos: tok.Start}
		}
		split = i
	}

	if split < 0 {
		return parseValue(lexed.Tokens, eofAt(lexed.Length))
	}

	op := lexed.Tokens[split]
	lhs, err := parseValue(lexed.Tokens[:split], op)
	if err != nil {
		return nil, err
	}
	rhs, err := parseValue(lexed.Tokens[split+1:], eofAt(lexed.Length))
	if err != nil {
		return nil, err
	}
	return &ComparisonExpr{Op: op.Type, LHS: lhs, RHS: rhs}, nil
}

// parseValue parses a complete arithmetic expression from tokens. The end
// token stands in for whatever follows the slice: the comparison operator
// for a left side, end of input otherwise.
func parseValue(tokens []Token, end Token) (ValueExpr, error) {
	p := &Parser{tokens: tokens, end: end}
	node, err := p.parseArithmetic()
	if err != nil {
		return nil, err
	}

	if p.atEnd() {
		return node, nil
	}
	if tok := p.current(); tok.Type == TokenRParen {
		return nil, &ParseError{Kind: UnmatchedParenthesis, Pos: tok.Start}
	}
	return nil, newUnexpectedToken(p.current())
}

func eofAt(pos int) Token {
	return Token{Type: TokenEOF, Start: pos, End: pos}
}

// atEnd reports whether every token has been consumed.
func (p *Parser) atEnd() bool {
	return p.pos >= len(p.tokens)
}

// current returns the current token.
func (p *Parser) current() Token {
	if p.atEnd() {
		return p.end
	}
	return p.tokens[p.pos]
}

// advance consumes the current token and returns it.
func (p *Parser) advance() Token {
	tok := p.current()
	p.pos++
	return tok
}

// expect consumes a token of the expected type or returns an error.
func (p *Parser) expect(tt TokenType) (Token, error) {
	tok := p.current()
	if tok.Type != tt {
		return tok, newUnexpectedToken(tok)
	}
	p.advance()
	return tok, nil
}

// parseArithmetic handles the lowest precedence operators.
// Precedence (low to high):
//
//	+, -
//	*, /
//	number, dice, parenthesized group
func (p *Parser) parseArithmetic() (ValueExpr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	for p.current().Type.IsAdditive() {
		op := p.advance().Type
		if next := p.current(); next.Type.IsAdditive() {
			return nil, &ParseError{Kind: ConsecutiveAddOperators, Pos: next.Start}
		}
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &MathExpr{Op: op, LHS: left, RHS: right}
	}
	return left, nil
}

func (p *Parser) parseTerm() (ValueExpr, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for p.current().Type.IsMultiplicative() {
		op := p.advance().Type
		right, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		left = &MathExpr{Op: op, LHS: left, RHS: right}
	}
	return left, nil
}

func (p *Parser) parsePrimary() (ValueExpr, error) {
	tok := p.current()

	switch tok.Type {
	case TokenNumber:
		p.advance()
		if p.current().Type == TokenDice {
			return p.parseDice(tok.Value)
		}
		return &Literal{Value: tok.Value}, nil
	case TokenDice:
		return p.parseDice(1)
	case TokenLParen:
		p.advance()
		inner, err := p.parseArithmetic()
		if err != nil {
			return nil, err
		}
		if p.atEnd() {
			return nil, &ParseError{Kind: UnmatchedParenthesis, Pos: tok.Start}
		}
		if closing := p.current(); closing.Type != TokenRParen {
			return nil, newUnexpectedToken(closing)
		}
		p.advance()
		return &ParenExpr{Inner: inner}, nil
	default:
		return nil, newUnexpectedToken(tok)
	}
}

// parseDice parses 'd' Number (Filter Number)? with the count already read.
func (p *Parser) parseDice(count uint64) (ValueExpr, error) {
	p.advance() // consume d

	sides, err := p.expect(TokenNumber)
	if err != nil {
		return nil, err
	}
	node := &DiceExpr{Count: count, Sides: sides.Value}

	if p.current().Type.IsFilter() {
		kind := p.advance().Type
		n, err := p.expect(TokenNumber)
		if err != nil {
			return nil, err
		}
		node.Filter = &DiceFilter{Kind: kind, Count: n.Value}
	}
	return node, nil
}
