package dice

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// maxSource always rolls the highest face.
type maxSource struct{}

func (maxSource) Roll(sides uint64) uint64 { return sides }

// sequenceSource returns the given values in order and records each request.
type sequenceSource struct {
	values []uint64
	sides  []uint64
}

func (s *sequenceSource) Roll(sides uint64) uint64 {
	s.sides = append(s.sides, sides)
	v := s.values[0]
	s.values = s.values[1:]
	return v
}

func TestEvaluateDice(t *testing.T) {
	expr := mustParse(t, "2d6")
	got, err := Evaluate(expr, maxSource{})
	require.NoError(t, err)

	assert.Equal(t, ResultTotal, got.Kind)
	assert.Equal(t, int64(12), got.Total)
	require.Len(t, got.Rolls, 1)
	assert.Equal(t, DiceRoll{
		Notation: "2d6",
		Dice:     []Die{{Value: 6, Kept: true}, {Value: 6, Kept: true}},
		Total:    12,
	}, got.Rolls[0])
}

func TestEvaluateSingleDieKeepIsNoOp(t *testing.T) {
	src := &sequenceSource{values: []uint64{13}}
	got, err := Roll("1d20kh1", src)
	require.NoError(t, err)
	assert.Equal(t, int64(13), got.Total)
	assert.Equal(t, []uint64{20}, src.sides)
}

func TestEvaluateComparison(t *testing.T) {
	got, err := Roll("3d6+2>10", maxSource{})
	require.NoError(t, err)

	assert.Equal(t, ResultTest, got.Kind)
	assert.True(t, got.Passed)
	assert.Equal(t, int64(20), got.Total)
	assert.Equal(t, int64(10), got.Target)
	assert.Equal(t, TokenGt, got.Op)
	assert.Equal(t, "20>10: pass", got.String())

	tests := []struct {
		input string
		want  bool
	}{
		{"1=1", true},
		{"1=2", false},
		{"1!=2", true},
		{"2!=2", false},
		{"2>1", true},
		{"1>1", false},
		{"1>=1", true},
		{"0>=1", false},
		{"1<2", true},
		{"2<2", false},
		{"2<=2", true},
		{"3<=2", false},
		{"1-5<0", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Roll(tt.input, maxSource{})
			require.NoError(t, err)
			assert.Equal(t, ResultTest, got.Kind)
			assert.Equal(t, tt.want, got.Passed)
		})
	}
}

func TestEvaluateArithmetic(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"42", 42},
		{"1+2", 3},
		{"10-3", 7},
		{"3-10", -7},
		{"4*5", 20},
		{"10/3", 3},
		{"7/2", 3},
		{"(0-7)/2", -3},
		{"2+3*4", 14},
		{"(2+3)*4", 20},
		{"20-2-3", 15},
		{"100/10/5", 2},
		{"2d6*2+1d4", 28},
		{"0d6", 0},
		{"0d6+5", 5},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Roll(tt.input, maxSource{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Total)
		})
	}
}

func TestEvaluateBuiltTree(t *testing.T) {
	// ((3 + 4) * 5) + 6 built without parsing.
	tree := &MathExpr{
		Op: TokenPlus,
		LHS: &MathExpr{
			Op:  TokenStar,
			LHS: &MathExpr{Op: TokenPlus, LHS: &Literal{Value: 3}, RHS: &Literal{Value: 4}},
			RHS: &Literal{Value: 5},
		},
		RHS: &Literal{Value: 6},
	}
	got, err := Evaluate(tree, maxSource{})
	require.NoError(t, err)
	assert.Equal(t, int64((3+4)*5+6), got.Total)
	assert.Empty(t, got.Rolls)
}

func TestEvaluateBuiltTreeOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		expr Expression
	}{
		{"literal above int64", &Literal{Value: math.MaxUint64}},
		{"literal at 2^63", &Literal{Value: 1 << 63}},
		{"die above int64", &DiceExpr{Count: 1, Sides: math.MaxUint64}},
		{"comparison operand", &ComparisonExpr{Op: TokenGt, LHS: &Literal{Value: 1 << 63}, RHS: &Literal{Value: 0}}},
		{"nested in math", &MathExpr{Op: TokenPlus, LHS: &Literal{Value: 1}, RHS: &ParenExpr{Inner: &Literal{Value: math.MaxUint64}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(tt.expr, maxSource{})
			require.Error(t, err, "got result %v", got)

			var evalErr *EvalError
			require.True(t, errors.As(err, &evalErr), "expected *EvalError, got %T: %v", err, err)
			assert.Equal(t, IntegerOverflow, evalErr.Kind)
		})
	}

	got, err := Evaluate(&Literal{Value: math.MaxInt64}, maxSource{})
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), got.Total)
}

func TestEvaluateFilters(t *testing.T) {
	tests := []struct {
		input string
		rolls []uint64
		want  int64
		kept  []bool
	}{
		{"4d6kh3", []uint64{3, 6, 1, 4}, 13, []bool{true, true, false, true}},
		{"4d6kl1", []uint64{3, 6, 1, 4}, 1, []bool{false, false, true, false}},
		{"4d6dh1", []uint64{3, 6, 1, 4}, 8, []bool{true, false, true, true}},
		{"4d6dl1", []uint64{3, 6, 1, 4}, 13, []bool{true, true, false, true}},
		{"2d20kh1", []uint64{7, 15}, 15, []bool{false, true}},
		{"2d20kl1", []uint64{7, 15}, 7, []bool{true, false}},
		// Ties: the earlier die is selected first.
		{"3d6kh1", []uint64{5, 5, 2}, 5, []bool{true, false, false}},
		{"3d6kl2", []uint64{4, 2, 2}, 4, []bool{false, true, true}},
		{"3d6kl1", []uint64{4, 2, 2}, 2, []bool{false, true, false}},
		{"3d6dh1", []uint64{5, 5, 2}, 7, []bool{false, true, true}},
		{"3d6dl1", []uint64{3, 1, 1}, 4, []bool{true, false, true}},
		// Counts beyond the roll clamp to every die.
		{"2d6kh5", []uint64{2, 3}, 5, []bool{true, true}},
		{"2d6dl5", []uint64{2, 3}, 0, []bool{false, false}},
		{"2d6kh0", []uint64{2, 3}, 0, []bool{false, false}},
		{"2d6dh0", []uint64{2, 3}, 5, []bool{true, true}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			src := &sequenceSource{values: tt.rolls}
			got, err := Roll(tt.input, src)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Total)
			assert.Empty(t, src.values, "every die should be drawn")

			require.Len(t, got.Rolls, 1)
			dice := got.Rolls[0].Dice
			require.Len(t, dice, len(tt.rolls))
			for i, d := range dice {
				assert.Equal(t, tt.rolls[i], d.Value, "die %d", i)
				assert.Equal(t, tt.kept[i], d.Kept, "die %d", i)
			}
		})
	}
}

func TestEvaluateDrawOrder(t *testing.T) {
	src := &sequenceSource{values: []uint64{1, 2, 3, 4}}
	got, err := Roll("1d4+1d6*1d8>d10", src)
	require.NoError(t, err)

	assert.Equal(t, []uint64{4, 6, 8, 10}, src.sides)
	assert.Equal(t, int64(1+2*3), got.Total)
	assert.Equal(t, int64(4), got.Target)
	assert.True(t, got.Passed)

	notations := make([]string, len(got.Rolls))
	for i, r := range got.Rolls {
		notations[i] = r.Notation
	}
	assert.Equal(t, []string{"1d4", "1d6", "1d8", "1d10"}, notations)
}

func TestEvaluateErrors(t *testing.T) {
	tests := []struct {
		input string
		kind  EvalErrorKind
	}{
		{"1/0", DivisionByZero},
		{"1d6/(2-2)", DivisionByZero},
		{"5>1/0", DivisionByZero},
		{"2d0", InvalidDieSize},
		{"0d0", InvalidDieSize},
		{"10001d6", TooManyDice},
		{"9223372036854775807+1", IntegerOverflow},
		{"0-9223372036854775807-2", IntegerOverflow},
		{"9223372036854775807*2", IntegerOverflow},
		{"(0-9223372036854775807-1)/(0-1)", IntegerOverflow},
		{"2d9223372036854775807", IntegerOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Roll(tt.input, maxSource{})
			require.Error(t, err)

			var evalErr *EvalError
			require.True(t, errors.As(err, &evalErr), "expected *EvalError, got %T: %v", err, err)
			assert.Equal(t, tt.kind, evalErr.Kind)
		})
	}
}

func TestEvaluateInvalidDieSizeReportsSides(t *testing.T) {
	_, err := Roll("3d0", maxSource{})
	var evalErr *EvalError
	require.True(t, errors.As(err, &evalErr))
	assert.Equal(t, uint64(0), evalErr.Sides)
	assert.Equal(t, "invalid die size 0", evalErr.Error())
}

func TestEvaluateMaxDice(t *testing.T) {
	got, err := Roll("10000d1", maxSource{})
	require.NoError(t, err)
	assert.Equal(t, int64(MaxDice), got.Total)
}

func TestEvaluateMinInt(t *testing.T) {
	got, err := Roll("0-9223372036854775807-1", maxSource{})
	require.NoError(t, err)
	assert.Equal(t, int64(math.MinInt64), got.Total)
}

func TestSeededSourceIsReproducible(t *testing.T) {
	expr := mustParse(t, "20d6kl2+5>=10")

	first, err := Evaluate(expr, NewSource(42))
	require.NoError(t, err)
	second, err := Evaluate(expr, NewSource(42))
	require.NoError(t, err)
	assert.Equal(t, first, second)

	for _, d := range first.Rolls[0].Dice {
		assert.GreaterOrEqual(t, d.Value, uint64(1))
		assert.LessOrEqual(t, d.Value, uint64(6))
	}
}

func TestRandSourceRange(t *testing.T) {
	src := NewRandomSource()
	for _, sides := range []uint64{1, 2, 6, 20, 100} {
		for i := 0; i < 200; i++ {
			v := src.Roll(sides)
			require.GreaterOrEqual(t, v, uint64(1))
			require.LessOrEqual(t, v, sides)
		}
	}
}

func TestRollReturnsPhaseErrors(t *testing.T) {
	_, err := Roll("2d6 + 1", maxSource{})
	var lexErr *LexError
	assert.True(t, errors.As(err, &lexErr))

	_, err = Roll("2d6+", maxSource{})
	var parseErr *ParseError
	assert.True(t, errors.As(err, &parseErr))

	_, err = Roll("2d0", maxSource{})
	var evalErr *EvalError
	assert.True(t, errors.As(err, &evalErr))
}

func TestResultString(t *testing.T) {
	assert.Equal(t, "12", Result{Kind: ResultTotal, Total: 12}.String())
	assert.Equal(t, "3>=10: fail", Result{Kind: ResultTest, Total: 3, Target: 10, Op: TokenGte}.String())

	total := Result{Kind: ResultTotal, Total: -4}
	assert.Equal(t, "-4", total.Summary())
	assert.Equal(t, "", total.Outcome())

	test := Result{Kind: ResultTest, Total: 20, Target: 10, Op: TokenGt, Passed: true}
	assert.Equal(t, "20>10", test.Summary())
	assert.Equal(t, "pass", test.Outcome())
	assert.Equal(t, test.Summary()+": "+test.Outcome(), test.String())
}
