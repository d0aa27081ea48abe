package dice

import (
	"fmt"
	"math"
	"sort"
)

// MaxDice is the largest dice count a single dice term may roll.
const MaxDice = 10000

// ResultKind distinguishes plain totals from comparison tests.
type ResultKind int

const (
	ResultTotal ResultKind = iota // bare arithmetic
	ResultTest                    // comparison against a target
)

// Die is one rolled die.
type Die struct {
	Value uint64 `json:"value" yaml:"value"`
	Kept  bool   `json:"kept" yaml:"kept"`
}

// DiceRoll records the dice rolled for one dice term.
type DiceRoll struct {
	Notation string `json:"notation" yaml:"notation"`
	Dice     []Die  `json:"dice" yaml:"dice"`
	Total    int64  `json:"total" yaml:"total"`
}

// Result is the outcome of evaluating an expression.
type Result struct {
	Kind ResultKind
	// Total is the value of a bare expression, or the left side of a test.
	Total int64
	// Target is the right side of a test.
	Target int64
	Op     TokenType // comparison operator (ResultTest only)
	Passed bool
	// Rolls lists every dice term in evaluation order.
	Rolls []DiceRoll
}

// Summary renders the values of the result: "12" for a total, "20>10" for
// a test.
func (r Result) Summary() string {
	if r.Kind == ResultTotal {
		return fmt.Sprintf("%d", r.Total)
	}
	return fmt.Sprintf("%d%s%d", r.Total, r.Op.Symbol(), r.Target)
}

// Outcome returns "pass" or "fail" for a test and "" for a total.
func (r Result) Outcome() string {
	switch {
	case r.Kind == ResultTotal:
		return ""
	case r.Passed:
		return "pass"
	default:
		return "fail"
	}
}

// String renders the result as "12" or "20>10: pass".
func (r Result) String() string {
	if r.Kind == ResultTotal {
		return r.Summary()
	}
	return r.Summary() + ": " + r.Outcome()
}

// evaluator carries the random source and roll log through one evaluation.
type evaluator struct {
	src   Source
	rolls []DiceRoll
}

// Evaluate evaluates an expression, drawing dice from src. The left side of
// any binary node is evaluated before the right side.
func Evaluate(expr Expression, src Source) (Result, error) {
	e := &evaluator{src: src}

	if cmp, ok := expr.(*ComparisonExpr); ok {
		left, err := e.eval(cmp.LHS)
		if err != nil {
			return Result{}, err
		}
		right, err := e.eval(cmp.RHS)
		if err != nil {
			return Result{}, err
		}
		passed, err := compare(cmp.Op, left, right)
		if err != nil {
			return Result{}, err
		}
		return Result{Kind: ResultTest, Total: left, Target: right, Op: cmp.Op, Passed: passed, Rolls: e.rolls}, nil
	}

	value, ok := expr.(ValueExpr)
	if !ok {
		return Result{}, fmt.Errorf("unsupported expression type: %T", expr)
	}
	total, err := e.eval(value)
	if err != nil {
		return Result{}, err
	}
	return Result{Kind: ResultTotal, Total: total, Rolls: e.rolls}, nil
}

func (e *evaluator) eval(node ValueExpr) (int64, error) {
	switch n := node.(type) {
	case *Literal:
		if n.Value > math.MaxInt64 {
			return 0, &EvalError{Kind: IntegerOverflow}
		}
		return int64(n.Value), nil
	case *DiceExpr:
		return e.evalDice(n)
	case *MathExpr:
		return e.evalMath(n)
	case *ParenExpr:
		return e.eval(n.Inner)
	default:
		return 0, fmt.Errorf("unsupported expression node type: %T", node)
	}
}

func (e *evaluator) evalDice(n *DiceExpr) (int64, error) {
	if n.Sides == 0 {
		return 0, &EvalError{Kind: InvalidDieSize, Sides: n.Sides}
	}
	if n.Count > MaxDice {
		return 0, &EvalError{Kind: TooManyDice, Count: n.Count}
	}

	dice := make([]Die, n.Count)
	for i := range dice {
		dice[i] = Die{Value: e.src.Roll(n.Sides), Kept: true}
	}
	if n.Filter != nil {
		applyFilter(dice, n.Filter)
	}

	var total int64
	for _, d := range dice {
		if !d.Kept {
			continue
		}
		if d.Value > math.MaxInt64 {
			return 0, &EvalError{Kind: IntegerOverflow}
		}
		sum, ok := addInt64(total, int64(d.Value))
		if !ok {
			return 0, &EvalError{Kind: IntegerOverflow}
		}
		total = sum
	}

	e.rolls = append(e.rolls, DiceRoll{Notation: n.String(), Dice: dice, Total: total})
	return total, nil
}

// applyFilter marks dice removed by f. Dice are ranked by value with a
// stable sort, so among equal values the earlier die is selected first.
// A keep filter keeps the first f.Count ranked dice, a drop filter drops
// them. Counts larger than the roll select every die.
func applyFilter(dice []Die, f *DiceFilter) {
	order := make([]int, len(dice))
	for i := range order {
		order[i] = i
	}
	highFirst := f.Kind == TokenKeepHigh || f.Kind == TokenDropHigh
	sort.SliceStable(order, func(a, b int) bool {
		if highFirst {
			return dice[order[a]].Value > dice[order[b]].Value
		}
		return dice[order[a]].Value < dice[order[b]].Value
	})

	selected := uint64(len(dice))
	if f.Count < selected {
		selected = f.Count
	}
	keep := f.Kind == TokenKeepHigh || f.Kind == TokenKeepLow
	for rank, i := range order {
		inSelection := uint64(rank) < selected
		dice[i].Kept = inSelection == keep
	}
}

func (e *evaluator) evalMath(n *MathExpr) (int64, error) {
	left, err := e.eval(n.LHS)
	if err != nil {
		return 0, err
	}
	right, err := e.eval(n.RHS)
	if err != nil {
		return 0, err
	}

	var (
		result int64
		ok     bool
	)
	switch n.Op {
	case TokenPlus:
		result, ok = addInt64(left, right)
	case TokenMinus:
		result, ok = subInt64(left, right)
	case TokenStar:
		result, ok = mulInt64(left, right)
	case TokenSlash:
		if right == 0 {
			return 0, &EvalError{Kind: DivisionByZero}
		}
		result, ok = left/right, !(left == math.MinInt64 && right == -1)
	default:
		return 0, fmt.Errorf("unsupported arithmetic operator: %s", n.Op)
	}
	if !ok {
		return 0, &EvalError{Kind: IntegerOverflow}
	}
	return result, nil
}

func compare(op TokenType, left, right int64) (bool, error) {
	switch op {
	case TokenEq:
		return left == right, nil
	case TokenNeq:
		return left != right, nil
	case TokenGt:
		return left > right, nil
	case TokenGte:
		return left >= right, nil
	case TokenLt:
		return left < right, nil
	case TokenLte:
		return left <= right, nil
	default:
		return false, fmt.Errorf("unsupported comparison operator: %s", op)
	}
}

func addInt64(a, b int64) (int64, bool) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, false
	}
	return a + b, true
}

func subInt64(a, b int64) (int64, bool) {
	if (b < 0 && a > math.MaxInt64+b) || (b > 0 && a < math.MinInt64+b) {
		return 0, false
	}
	return a - b, true
}

func mulInt64(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	c := a * b
	if c/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}
	return c, true
}
