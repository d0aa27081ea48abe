package dice

import (
	"math"
	"unicode/utf8"
)

// Lexer tokenizes a dice notation string.
//
// Whitespace is not skipped: callers strip it before tokenizing.
type Lexer struct {
	input  string
	pos    int
	tokens []Token
}

// NewLexer creates a new lexer for the given input.
func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

// Tokenize scans source and returns its tokens.
func Tokenize(source string) (LexedExpression, error) {
	return NewLexer(source).Tokenize()
}

// Tokenize scans the entire input and returns all tokens.
//
// Every accepted character is ASCII, so byte offsets equal character
// offsets up to and including the first rejected character.
func (l *Lexer) Tokenize() (LexedExpression, error) {
	for l.pos < len(l.input) {
		tok, err := l.next()
		if err != nil {
			return LexedExpression{}, err
		}
		l.tokens = append(l.tokens, tok)
	}
	return LexedExpression{Tokens: l.tokens, Length: utf8.RuneCountInString(l.input)}, nil
}

// next returns the next token from the input.
func (l *Lexer) next() (Token, error) {
	ch := l.input[l.pos]

	if isDigit(ch) {
		return l.readNumber()
	}

	// Two-character operators
	var second byte
	if l.pos+1 < len(l.input) {
		second = l.input[l.pos+1]
	}
	switch ch {
	case '!':
		if second == '=' {
			return l.emit(TokenNeq, 2), nil
		}
		return Token{}, l.invalid()
	case '>':
		if second == '=' {
			return l.emit(TokenGte, 2), nil
		}
		return l.emit(TokenGt, 1), nil
	case '<':
		if second == '=' {
			return l.emit(TokenLte, 2), nil
		}
		return l.emit(TokenLt, 1), nil
	case 'k':
		switch second {
		case 'h':
			return l.emit(TokenKeepHigh, 2), nil
		case 'l':
			return l.emit(TokenKeepLow, 2), nil
		}
		return Token{}, l.invalid()
	case 'd':
		switch second {
		case 'h':
			return l.emit(TokenDropHigh, 2), nil
		case 'l':
			return l.emit(TokenDropLow, 2), nil
		}
		return l.emit(TokenDice, 1), nil
	}

	// Single-character operators
	switch ch {
	case '=':
		return l.emit(TokenEq, 1), nil
	case '+':
		return l.emit(TokenPlus, 1), nil
	case '-':
		return l.emit(TokenMinus, 1), nil
	case '*':
		return l.emit(TokenStar, 1), nil
	case '/':
		return l.emit(TokenSlash, 1), nil
	case '(':
		return l.emit(TokenLParen, 1), nil
	case ')':
		return l.emit(TokenRParen, 1), nil
	}

	return Token{}, l.invalid()
}

// emit consumes width characters as a token of type tt.
func (l *Lexer) emit(tt TokenType, width int) Token {
	tok := Token{Type: tt, Start: l.pos, End: l.pos + width - 1}
	l.pos += width
	return tok
}

func (l *Lexer) invalid() *LexError {
	r, _ := utf8.DecodeRuneInString(l.input[l.pos:])
	return &LexError{Kind: InvalidCharacter, Char: r, Pos: l.pos}
}

// readNumber reads a run of decimal digits.
func (l *Lexer) readNumber() (Token, error) {
	start := l.pos
	var value uint64

	for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
		digit := uint64(l.input[l.pos] - '0')
		if value > (math.MaxInt64-digit)/10 {
			return Token{}, &LexError{Kind: NumberTooLarge, Pos: start}
		}
		value = value*10 + digit
		l.pos++
	}

	return Token{Type: TokenNumber, Value: value, Start: start, End: l.pos - 1}, nil
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
