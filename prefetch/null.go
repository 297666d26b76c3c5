package prefetch

// Null never issues a prefetch and never reports a useful confirmation.
type Null struct{}

func (Null) Observe(_, _, _ uint64, _ bool) Event { return Event{} }
