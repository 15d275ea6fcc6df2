package value

// NameLambda is a lambda used as the value of a variable tag. Its result is
// parsed as a template with the default delimiters and rendered against
// the current context.
type NameLambda func() string

// SectionLambda is a lambda used as the value of a section. It receives the
// unprocessed section body and its result is rendered with the delimiters
// in effect at the section tag.
type SectionLambda func(text string) string

type nameLambda struct {
	fn func() (string, error)
}

type sectionLambda struct {
	fn func(string) (string, error)
}

// FromNameLambda creates a name lambda Value.
func FromNameLambda(fn func() string) Value {
	return Value{data: nameLambda{fn: func() (string, error) { return fn(), nil }}}
}

// FromNameLambdaErr creates a name lambda Value whose errors abort rendering.
func FromNameLambdaErr(fn func() (string, error)) Value {
	return Value{data: nameLambda{fn: fn}}
}

// FromSectionLambda creates a section lambda Value.
func FromSectionLambda(fn func(text string) string) Value {
	return Value{data: sectionLambda{fn: func(text string) (string, error) { return fn(text), nil }}}
}

// FromSectionLambdaErr creates a section lambda Value whose errors abort
// rendering.
func FromSectionLambdaErr(fn func(text string) (string, error)) Value {
	return Value{data: sectionLambda{fn: fn}}
}

// CallName invokes a name lambda. It reports false if the value is not one.
func (v Value) CallName() (string, bool, error) {
	l, ok := v.data.(nameLambda)
	if !ok {
		return "", false, nil
	}
	s, err := l.fn()
	return s, true, err
}

// CallSection invokes a section lambda with the raw section text. It
// reports false if the value is not one.
func (v Value) CallSection(text string) (string, bool, error) {
	l, ok := v.data.(sectionLambda)
	if !ok {
		return "", false, nil
	}
	s, err := l.fn(text)
	return s, true, err
}
