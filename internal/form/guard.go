package form

import "fmt"

// ValidationError reports which submission check failed.
type ValidationError struct {
	Field Field
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

type submissionGuard struct {
	state     SubmissionState
	idleLabel string
	busyLabel string
	disabled  bool
	busy      bool
	timer     uint64
}

// check runs the ordered, short-circuiting submission checks.
func (g *submissionGuard) check(file *SelectedFile, description string, minLen int) error {
	g.state = StateValidating

	if file == nil {
		g.state = StateIdle
		return &ValidationError{Field: FieldResume, Err: ErrNoFile}
	}

	if err := ValidateDescription(description, minLen); err != nil {
		g.state = StateIdle
		return &ValidationError{Field: FieldDescription, Err: err}
	}

	return nil
}

func (g *submissionGuard) begin() {
	g.state = StateBusy
	g.disabled = true
	g.busy = true
}

// expire restores the button if it is still locked and reports whether it did.
func (g *submissionGuard) expire() bool {
	g.timer = 0
	if !g.disabled {
		return false
	}
	g.disabled = false
	g.busy = false
	g.state = StateTimedOut
	return true
}

func (g *submissionGuard) view() ButtonView {
	if g.busy {
		return ButtonView{Label: g.busyLabel, Disabled: g.disabled, Busy: true}
	}
	return ButtonView{Label: g.idleLabel, Disabled: g.disabled}
}
