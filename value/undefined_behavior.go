package value

// UndefinedBehavior determines how names that cannot be resolved are
// handled at render time.
type UndefinedBehavior int

const (
	// UndefinedLenient renders unresolved names as empty strings. Sections
	// over them are skipped and inverted sections render.
	UndefinedLenient UndefinedBehavior = iota

	// UndefinedStrict fails the render whenever a variable, section or
	// inverted section names something that cannot be resolved.
	UndefinedStrict
)

func (b UndefinedBehavior) String() string {
	switch b {
	case UndefinedLenient:
		return "lenient"
	case UndefinedStrict:
		return "strict"
	default:
		return "unknown"
	}
}
