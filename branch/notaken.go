package branch

// NotTaken always predicts the branch will not be taken and never trains.
type NotTaken struct{}

func (NotTaken) Predict(_ *Entry, _ uint64) bool { return false }

func (NotTaken) Update(_ *Entry, _ uint64, _ bool) {}
