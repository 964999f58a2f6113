package regex

// Compile runs the full regex front end over pattern — Lex, ExpandClasses,
// InsertConcat, Shunt, in that order — and returns the postfix Symbol
// stream ready for Thompson construction.
func Compile(pattern string) ([]Symbol, error) {
	lexed, err := Lex(pattern)
	if err != nil {
		return nil, err
	}

	expanded, err := ExpandClasses(lexed)
	if err != nil {
		return nil, err
	}

	withConcat := InsertConcat(expanded)

	postfix, err := Shunt(withConcat)
	if err != nil {
		return nil, err
	}

	return postfix, nil
}
