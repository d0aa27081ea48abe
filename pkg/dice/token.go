// Package dice implements the dice notation tokenizer, parser and evaluator.
// It handles expressions such as 4d6kh3+2 or 1d20+5>=15 with arithmetic,
// keep/drop filters and a single top-level comparison.
package dice

// TokenType represents the type of a lexical token.
type TokenType int

const (
	// Literals
	TokenNumber TokenType = iota // unsigned integer literal

	// Dice
	TokenDice     // d
	TokenKeepHigh // kh
	TokenKeepLow  // kl
	TokenDropHigh // dh
	TokenDropLow  // dl

	// Arithmetic
	TokenPlus  // +
	TokenMinus // -
	TokenStar  // *
	TokenSlash // /

	// Brackets
	TokenLParen // (
	TokenRParen // )

	// Comparison
	TokenEq  // =
	TokenNeq // !=
	TokenGt  // >
	TokenGte // >=
	TokenLt  // <
	TokenLte // <=

	// Special
	TokenEOF // end of expression, never produced by the tokenizer
)

// Token represents a single lexical token.
type Token struct {
	Type  TokenType
	Value uint64 // parsed value (for TokenNumber)
	Start int    // offset of the first character
	End   int    // offset of the last character (inclusive)
}

// LexedExpression is the ordered token sequence of one source string.
type LexedExpression struct {
	Tokens []Token
	Length int // source length in characters
}

// IsFilter reports whether t is one of the keep/drop filters.
func (t TokenType) IsFilter() bool {
	return t == TokenKeepHigh || t == TokenKeepLow || t == TokenDropHigh || t == TokenDropLow
}

// IsComparison reports whether t is a relational operator.
func (t TokenType) IsComparison() bool {
	return t >= TokenEq && t <= TokenLte
}

// IsAdditive reports whether t is + or -.
func (t TokenType) IsAdditive() bool {
	return t == TokenPlus || t == TokenMinus
}

// IsMultiplicative reports whether t is * or /.
func (t TokenType) IsMultiplicative() bool {
	return t == TokenStar || t == TokenSlash
}

// Symbol returns the notation text for operator and filter tokens.
func (t TokenType) Symbol() string {
	switch t {
	case TokenDice:
		return "d"
	case TokenKeepHigh:
		return "kh"
	case TokenKeepLow:
		return "kl"
	case TokenDropHigh:
		return "dh"
	case TokenDropLow:
		return "dl"
	case TokenPlus:
		return "+"
	case TokenMinus:
		return "-"
	case TokenStar:
		return "*"
	case TokenSlash:
		return "/"
	case TokenLParen:
		return "("
	case TokenRParen:
		return ")"
	case TokenEq:
		return "="
	case TokenNeq:
		return "!="
	case TokenGt:
		return ">"
	case TokenGte:
		return ">="
	case TokenLt:
		return "<"
	case TokenLte:
		return "<="
	default:
		return ""
	}
}

// String returns a debug-friendly representation of the token type.
func (t TokenType) String() string {
	switch t {
	case TokenNumber:
		return "NUMBER"
	case TokenDice:
		return "DICE"
	case TokenKeepHigh:
		return "KEEP_HIGH"
	case TokenKeepLow:
		return "KEEP_LOW"
	case TokenDropHigh:
		return "DROP_HIGH"
	case TokenDropLow:
		return "DROP_LOW"
	case TokenPlus:
		return "PLUS"
	case TokenMinus:
		return "MINUS"
	case TokenStar:
		return "STAR"
	case TokenSlash:
		return "SLASH"
	case TokenLParen:
		return "LPAREN"
	case TokenRParen:
		return "RPAREN"
	case TokenEq:
		return "EQ"
	case TokenNeq:
		return "NEQ"
	case TokenGt:
		return "GT"
	case TokenGte:
		return "GTE"
	case TokenLt:
		return "LT"
	case TokenLte:
		return "LTE"
	case TokenEOF:
		return "EOF"
	default:
		return "UNKNOWN"
	}
}
