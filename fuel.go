package mustache

import "strconv"

// budget caps the tokens one render may visit. Loops and recursive
// partials all draw from the same budget. A nil budget never runs out.
type budget struct {
	limit uint64
	spent uint64
}

func newBudget(limit uint64) *budget {
	return &budget{limit: limit}
}

// spend charges one token.
func (b *budget) spend() error {
	if b == nil {
		return nil
	}
	if b.spent == b.limit {
		return NewError(ErrOutOfFuel, "render visited more than "+strconv.FormatUint(b.limit, 10)+" tokens")
	}
	b.spent++
	return nil
}

func (b *budget) used() uint64 {
	if b == nil {
		return 0
	}
	return b.spent
}
