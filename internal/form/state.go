package form

import "maps"

// SubmissionState tracks the submit button lifecycle.
type SubmissionState int

const (
	StateIdle SubmissionState = iota
	StateValidating
	StateBusy
	StateTimedOut
)

func (s SubmissionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateBusy:
		return "busy"
	case StateTimedOut:
		return "timed_out"
	}
	return "unknown"
}

// SelectedFile is the accepted résumé. At most one exists at a time.
type SelectedFile struct {
	Name      string
	SizeBytes int64
	MimeType  string
}

// Field names the input an inline message belongs to.
type Field string

const (
	FieldResume      Field = "resume"
	FieldDescription Field = "job_description"
	FieldSample      Field = "sampleJD"
	FieldShare       Field = "shareResults"
)

// Level is the severity of an inline message.
type Level string

const (
	LevelError   Level = "error"
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
)

// Message is a non-blocking inline notice shown next to a field.
type Message struct {
	Field Field
	Level Level
	Text  string
}

type DropZoneView struct {
	Visible  bool
	DragOver bool
}

type FileInfoView struct {
	Visible bool
	Name    string
	SizeMB  string
}

// ButtonView is the submit control. Label is the original markup unless Busy.
type ButtonView struct {
	Label    string
	Disabled bool
	Busy     bool
}

type ProgressView struct {
	Visible bool
	Step    int
	Total   int
	Caption string
	Percent float64
}

// State is an immutable snapshot of everything the page shows.
type State struct {
	DropZone    DropZoneView
	FileInfo    FileInfoView
	File        *SelectedFile
	Description string
	Counter     CounterView
	Submit      ButtonView
	Submission  SubmissionState
	Progress    ProgressView
	Feedback    map[Field]Message
}

// Renderer receives a snapshot after every change.
type Renderer interface {
	Render(State)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(State)

// Render implements Renderer.
func (f RendererFunc) Render(s State) {
	f(s)
}

func (s State) clone() State {
	if s.File != nil {
		f := *s.File
		s.File = &f
	}
	s.Feedback = maps.Clone(s.Feedback)
	return s
}
