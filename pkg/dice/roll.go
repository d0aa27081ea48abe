package dice

// ParseExpression tokenizes and parses a complete dice notation string.
func ParseExpression(input string) (Expression, error) {
	lexed, err := Tokenize(input)
	if err != nil {
		return nil, err
	}
	return Parse(lexed)
}

// Roll parses input and evaluates it against src. Errors are returned
// unwrapped as *LexError, *ParseError or *EvalError.
func Roll(input string, src Source) (Result, error) {
	expr, err := ParseExpression(input)
	if err != nil {
		return Result{}, err
	}
	return Evaluate(expr, src)
}
