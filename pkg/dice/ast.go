package dice

import "strconv"

// Expression is a parse result: a ValueExpr or a *ComparisonExpr.
type Expression interface {
	String() string
	expression()
}

// ValueExpr is the interface for all arithmetic and dice AST nodes.
//
// String renders canonical notation. Parentheses come only from ParenExpr
// nodes, so a parsed tree renders to text that parses back to the same tree.
type ValueExpr interface {
	Expression
	valueExpr()
}

// Literal represents a number.
type Literal struct {
	Value uint64
}

// DiceFilter selects dice to keep or drop after rolling.
type DiceFilter struct {
	Kind  TokenType // TokenKeepHigh, TokenKeepLow, TokenDropHigh or TokenDropLow
	Count uint64
}

// DiceExpr represents a roll of Count dice with Sides sides each (e.g. 4d6kh3).
type DiceExpr struct {
	Count  uint64
	Sides  uint64
	Filter *DiceFilter // nil when no filter is applied
}

// MathExpr represents a binary arithmetic operation (e.g. a + b).
type MathExpr struct {
	Op  TokenType // TokenPlus, TokenMinus, TokenStar or TokenSlash
	LHS ValueExpr
	RHS ValueExpr
}

// ParenExpr represents a parenthesized group.
type ParenExpr struct {
	Inner ValueExpr
}

// ComparisonExpr is the top-level test of an expression (e.g. 1d20+5 >= 15).
type ComparisonExpr struct {
	Op  TokenType // one of the comparison token types
	LHS ValueExpr
	RHS ValueExpr
}

func (*Literal) expression()        {}
func (*DiceExpr) expression()       {}
func (*MathExpr) expression()       {}
func (*ParenExpr) expression()      {}
func (*ComparisonExpr) expression() {}

func (*Literal) valueExpr()   {}
func (*DiceExpr) valueExpr()  {}
func (*MathExpr) valueExpr()  {}
func (*ParenExpr) valueExpr() {}

func (n *Literal) String() string {
	return strconv.FormatUint(n.Value, 10)
}

func (f *DiceFilter) String() string {
	return f.Kind.Symbol() + strconv.FormatUint(f.Count, 10)
}

func (n *DiceExpr) String() string {
	s := strconv.FormatUint(n.Count, 10) + "d" + strconv.FormatUint(n.Sides, 10)
	if n.Filter != nil {
		s += n.Filter.String()
	}
	return s
}

func (n *MathExpr) String() string {
	return n.LHS.String() + n.Op.Symbol() + n.RHS.String()
}

func (n *ParenExpr) String() string {
	return "(" + n.Inner.String() + ")"
}

func (n *ComparisonExpr) String() string {
	return n.LHS.String() + n.Op.Symbol() + n.RHS.String()
}
