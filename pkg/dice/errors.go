package dice

import "fmt"

// LexErrorKind identifies the cause of a LexError.
type LexErrorKind int

const (
	InvalidCharacter LexErrorKind = iota
	NumberTooLarge
)

// LexError is returned by Tokenize.
type LexError struct {
	Kind LexErrorKind
	Char rune // offending character (InvalidCharacter only)
	Pos  int
}

// Error implements the error interface.
func (e *LexError) Error() string {
	switch e.Kind {
	case NumberTooLarge:
		return fmt.Sprintf("number at position %d is too large", e.Pos)
	default:
		return fmt.Sprintf("invalid character %q at position %d", e.Char, e.Pos)
	}
}

// ParseErrorKind identifies the cause of a ParseError.
type ParseErrorKind int

const (
	UnexpectedToken ParseErrorKind = iota
	ExtraComparisonOperator
	ConsecutiveAddOperators
	UnmatchedParenthesis
)

// ParseError is returned by Parse.
type ParseError struct {
	Kind  ParseErrorKind
	Pos   int
	Found TokenType // token at Pos (UnexpectedToken only)
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	switch e.Kind {
	case ExtraComparisonOperator:
		return fmt.Sprintf("extra comparison operator at position %d (only one comparison is allowed)", e.Pos)
	case ConsecutiveAddOperators:
		return fmt.Sprintf("consecutive +/- operators at position %d", e.Pos)
	case UnmatchedParenthesis:
		return fmt.Sprintf("unmatched parenthesis at position %d", e.Pos)
	default:
		if e.Found == TokenEOF {
			return fmt.Sprintf("unexpected end of expression at position %d", e.Pos)
		}
		return fmt.Sprintf("unexpected token %s at position %d", e.Found, e.Pos)
	}
}

// EvalErrorKind identifies the cause of an EvalError.
type EvalErrorKind int

const (
	DivisionByZero EvalErrorKind = iota
	InvalidDieSize
	TooManyDice
	IntegerOverflow
)

// EvalError is returned by Evaluate.
type EvalError struct {
	Kind  EvalErrorKind
	Sides uint64 // InvalidDieSize
	Count uint64 // TooManyDice
}

// Error implements the error interface.
func (e *EvalError) Error() string {
	switch e.Kind {
	case InvalidDieSize:
		return fmt.Sprintf("invalid die size %d", e.Sides)
	case TooManyDice:
		return fmt.Sprintf("too many dice: %d (max %d)", e.Count, MaxDice)
	case IntegerOverflow:
		return "integer overflow"
	default:
		return "division by zero"
	}
}

func newUnexpectedToken(tok Token) *ParseError {
	return &ParseError{Kind: UnexpectedToken, Pos: tok.Start, Found: tok.Type}
}
