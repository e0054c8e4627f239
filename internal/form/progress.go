package form

import "time"

const (
	initialProgressCaption = "Initializing analysis..."
	progressStartDelay     = 500 * time.Millisecond
	progressStepBase       = 1000 * time.Millisecond
	progressStepJitter     = 1000 * time.Millisecond
)

// DefaultProgressSteps are the captions shown while the server works.
// They carry no information about real server progress.
var DefaultProgressSteps = []string{
	"Extracting text from PDF...",
	"Processing resume with NLP...",
	"Analyzing job description...",
	"Comparing skills and keywords...",
	"Calculating compatibility scores...",
	"Generating improvement suggestions...",
	"Preparing results...",
}

type progressSimulation struct {
	steps   []string
	shown   int
	visible bool
	caption string
}

func (p *progressSimulation) start() {
	p.visible = true
	p.shown = 0
	p.caption = initialProgressCaption
}

func (p *progressSimulation) hide() {
	p.visible = false
}

// advance moves to the next caption and reports whether more remain.
// A hidden overlay stops advancing.
func (p *progressSimulation) advance() bool {
	if !p.visible || p.shown >= len(p.steps) {
		return false
	}
	p.caption = p.steps[p.shown]
	p.shown++
	return p.shown < len(p.steps)
}

func (p *progressSimulation) view() ProgressView {
	v := ProgressView{
		Visible: p.visible,
		Step:    p.shown,
		Total:   len(p.steps),
		Caption: p.caption,
	}
	if len(p.steps) > 0 {
		v.Percent = float64(p.shown) / float64(len(p.steps)) * 100
	}
	return v
}
