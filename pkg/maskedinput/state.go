package maskedinput

// State is the controller phase. An edit moves the input from Displayed to
// Pending while it is resolved and conformed, and back once the display value
// is committed or the edit is rejected.
type State uint8

const (
	StateDisplayed State = iota
	StatePending
)

func (s State) String() string {
	switch s {
	case StateDisplayed:
		return "displayed"
	case StatePending:
		return "pending"
	default:
		return "unknown"
	}
}

// Change describes the outcome of one Update.
type Change struct {
	// Value is what the field should display. For rejected edits it is the
	// previous value.
	Value string
	// Caret is the caret index to restore within Value.
	Caret int
	// Placeholder is the placeholder of the mask resolved for this edit.
	Placeholder string
	// PipedIndexes lists positions the pipe inserted.
	PipedIndexes []int
	// Rejected is set when the pipe refused the edit.
	Rejected bool
	// Unchanged is set when the raw input equals the committed value.
	Unchanged bool
	// Complete reports that every placeholder position is filled.
	Complete bool
}
