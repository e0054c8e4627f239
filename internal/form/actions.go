package form

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

const (
	revealDelay     = 100 * time.Millisecond
	badgeFlashDelay = 200 * time.Millisecond

	DefaultShareTitle = "Resume Analysis Results"
	DefaultShareText  = "Check out my resume analysis results!"
)

var (
	ErrPrintUnavailable     = errors.New("print is not available")
	ErrClipboardUnavailable = errors.New("clipboard is not available")
)

// ShareData is handed to the platform share sheet.
type ShareData struct {
	Title string
	Text  string
	URL   string
}

// Printer opens the platform print dialog.
type Printer interface {
	Print()
}

// Sharer opens the platform share sheet. An error means it was cancelled or failed.
type Sharer interface {
	Share(ctx context.Context, data ShareData) error
}

type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}

// ShareOutcome is how a share request ended up being satisfied.
type ShareOutcome int

const (
	ShareNative ShareOutcome = iota
	ShareCopied
	ShareDisplayed
)

// ResultActions are the results page buttons. Any platform capability may be nil.
type ResultActions struct {
	printer   Printer
	sharer    Sharer
	clipboard Clipboard
	scheduler Scheduler
	notify    func(Message)
	timers    *timerSet
	logger    *zap.Logger
}

func NewResultActions(
	printer Printer,
	sharer Sharer,
	clipboard Clipboard,
	scheduler Scheduler,
	notify func(Message),
	logger *zap.Logger,
) *ResultActions {
	if scheduler == nil {
		scheduler = NewSystemScheduler()
	}
	if notify == nil {
		notify = func(Message) {}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &ResultActions{
		printer:   printer,
		sharer:    sharer,
		clipboard: clipboard,
		scheduler: scheduler,
		notify:    notify,
		timers:    newTimerSet(),
		logger:    logger,
	}
}

// Print stands in for PDF export: the browser prints the page.
func (a *ResultActions) Print() error {
	if a.printer == nil {
		return ErrPrintUnavailable
	}
	a.printer.Print()
	return nil
}

// Share tries the native share sheet, then the clipboard, then shows the raw URL.
func (a *ResultActions) Share(ctx context.Context, data ShareData) ShareOutcome {
	if data.Title == "" {
		data.Title = DefaultShareTitle
	}
	if data.Text == "" {
		data.Text = DefaultShareText
	}

	if a.sharer != nil {
		err := a.sharer.Share(ctx, data)
		if err == nil {
			return ShareNative
		}
		a.logger.Debug("share cancelled", zap.Error(err))
	}

	if a.clipboard != nil {
		err := a.clipboard.WriteText(ctx, data.URL)
		if err == nil {
			a.notify(Message{Field: FieldShare, Level: LevelSuccess, Text: "Link copied to clipboard!"})
			return ShareCopied
		}
		a.logger.Debug("clipboard write failed", zap.Error(err))
	}

	a.notify(Message{Field: FieldShare, Level: LevelInfo, Text: "Share link: " + data.URL})
	return ShareDisplayed
}

// CopyBadge copies a keyword badge's text and flashes it briefly.
// highlight is called with true right away and with false once the flash ends.
func (a *ResultActions) CopyBadge(ctx context.Context, text string, highlight func(on bool)) error {
	if a.clipboard == nil {
		return ErrClipboardUnavailable
	}

	if err := a.clipboard.WriteText(ctx, text); err != nil {
		a.logger.Debug("could not copy text", zap.Error(err))
		return err
	}

	if highlight != nil {
		highlight(true)
		a.timers.schedule(a.scheduler, badgeFlashDelay, func() { highlight(false) })
	}
	return nil
}

// RevealScores runs apply shortly after the results page loads.
func (a *ResultActions) RevealScores(apply func()) {
	a.timers.schedule(a.scheduler, revealDelay, apply)
}

// Close stops pending flashes and reveals.
func (a *ResultActions) Close() {
	a.timers.stopAll()
}
