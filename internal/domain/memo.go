package domain

// generation identifies the upstream inputs a derived value was computed from.
type generation struct {
	source   uint64
	coverage uint64
}

// memo caches one derived value together with the generation it was
// computed at. A value is stale once the owner's generation moves on.
type memo[T any] struct {
	at    generation
	value T
	set   bool
}

func (c *memo[T]) get(at generation, compute func() (T, error)) (T, error) {
	if c.set && c.at == at {
		return c.value, nil
	}

	value, err := compute()
	if err != nil {
		var zero T
		return zero, err
	}

	c.value, c.at, c.set = value, at, true

	return value, nil
}
