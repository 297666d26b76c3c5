package trace

import "fmt"

// ErrOpenFile is returned when the trace file cannot be opened at all.
var ErrOpenFile = fmt.Errorf("could not open file")

// MalformedLineError reports a trace line with the wrong number of ';'
// separated fields.
type MalformedLineError struct {
	Line   string
	LineNo int
	Want   int
	Got    int
}

func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("malformed trace line %d: expected %d fields, got %d: %q",
		e.LineNo, e.Want, e.Got, e.Line)
}
