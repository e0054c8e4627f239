package form

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultSubmitTimeout is how long the submit button stays locked
	// when the page does not navigate away.
	DefaultSubmitTimeout = 30 * time.Second

	DefaultBusyLabel = "Analyzing Resume..."

	sampleErrorText = "Error loading sample job description."
)

var (
	ErrNoSampleSource   = errors.New("no sample job description source configured")
	ErrControllerClosed = errors.New("controller is closed")
)

// Options configures one controller per page view.
type Options struct {
	EnableDragAndDrop    bool
	StrictMIME           bool
	MaxFileSize          int64
	MinDescriptionLength int
	SubmitLabel          string
	BusyLabel            string
	SubmitTimeout        time.Duration
	ShowProgress         bool
	ProgressSteps        []string
	Description          string

	// Jitter returns a random extra delay in [0, max) for progress steps.
	Jitter func(max time.Duration) time.Duration
}

// DefaultOptions mirrors the drag-and-drop upload page.
func DefaultOptions() Options {
	return Options{
		EnableDragAndDrop:    true,
		StrictMIME:           true,
		MaxFileSize:          MaxFileSize,
		MinDescriptionLength: MinDescriptionLength,
		SubmitLabel:          "Analyze Resume",
		BusyLabel:            DefaultBusyLabel,
		SubmitTimeout:        DefaultSubmitTimeout,
		ShowProgress:         true,
		ProgressSteps:        DefaultProgressSteps,
	}
}

// Controller is the upload and submission workflow for one page view.
// All mutations happen under one lock, and timer callbacks take the same lock,
// so the most recent event wins.
type Controller struct {
	mu        sync.Mutex
	opts      Options
	selector  fileSelector
	guard     submissionGuard
	progress  progressSimulation
	desc      string
	counter   CounterView
	feedback  map[Field]Message
	closed    bool
	timers    *timerSet
	scheduler Scheduler
	renderer  Renderer
	sample    SampleSource
	logger    *zap.Logger
}

func NewController(
	opts Options,
	renderer Renderer,
	sample SampleSource,
	scheduler Scheduler,
	logger *zap.Logger,
) *Controller {
	if opts.MaxFileSize <= 0 {
		opts.MaxFileSize = MaxFileSize
	}
	if opts.MinDescriptionLength <= 0 {
		opts.MinDescriptionLength = MinDescriptionLength
	}
	if opts.SubmitTimeout <= 0 {
		opts.SubmitTimeout = DefaultSubmitTimeout
	}
	if opts.BusyLabel == "" {
		opts.BusyLabel = DefaultBusyLabel
	}
	if opts.ProgressSteps == nil {
		opts.ProgressSteps = DefaultProgressSteps
	}
	if opts.Jitter == nil {
		opts.Jitter = func(max time.Duration) time.Duration {
			if max <= 0 {
				return 0
			}
			return rand.N(max)
		}
	}
	if scheduler == nil {
		scheduler = NewSystemScheduler()
	}
	if renderer == nil {
		renderer = RendererFunc(func(State) {})
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Controller{
		opts: opts,
		selector: fileSelector{
			strictMIME: opts.StrictMIME,
			maxSize:    opts.MaxFileSize,
		},
		guard: submissionGuard{
			state:     StateIdle,
			idleLabel: opts.SubmitLabel,
			busyLabel: opts.BusyLabel,
		},
		progress:  progressSimulation{steps: opts.ProgressSteps},
		desc:      opts.Description,
		counter:   Count(opts.Description),
		feedback:  make(map[Field]Message),
		timers:    newTimerSet(),
		scheduler: scheduler,
		renderer:  renderer,
		sample:    sample,
		logger:    logger,
	}
}

// State returns the current snapshot.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Render pushes the current snapshot to the renderer.
func (c *Controller) Render() {
	c.renderer.Render(c.State())
}

// Browse handles a file picked through the file input.
func (c *Controller) Browse(f FileHandle) error {
	return c.update(func() error {
		return c.chooseLocked(f)
	})
}

// Drop handles files dropped onto the drop zone. Only the first is used.
func (c *Controller) Drop(files []FileHandle) error {
	return c.update(func() error {
		c.selector.dragOver = false
		if !c.opts.EnableDragAndDrop {
			return ErrDragAndDropDisabled
		}
		if len(files) == 0 {
			return nil
		}
		return c.chooseLocked(files[0])
	})
}

func (c *Controller) DragOver() error {
	return c.update(func() error {
		if !c.opts.EnableDragAndDrop {
			return ErrDragAndDropDisabled
		}
		c.selector.dragOver = true
		return nil
	})
}

func (c *Controller) DragLeave() {
	_ = c.update(func() error {
		c.selector.dragOver = false
		return nil
	})
}

// Remove clears the selection and restores the drop zone.
func (c *Controller) Remove() {
	_ = c.update(func() error {
		c.selector.clear()
		delete(c.feedback, FieldResume)
		return nil
	})
}

// SetDescription recomputes the counter for new description text.
func (c *Controller) SetDescription(text string) {
	_ = c.update(func() error {
		c.setDescriptionLocked(text)
		return nil
	})
}

// LoadSample fetches a sample job description and runs it through the
// same update path as typed input. It must not be called while holding
// any controller lock, as the fetch blocks.
func (c *Controller) LoadSample(ctx context.Context) error {
	if c.sample == nil {
		return ErrNoSampleSource
	}

	text, err := c.sample.Fetch(ctx)
	if err != nil {
		c.logger.Error("error loading sample job description", zap.Error(err))
		_ = c.update(func() error {
			c.feedback[FieldSample] = Message{Field: FieldSample, Level: LevelError, Text: sampleErrorText}
			return nil
		})
		return fmt.Errorf("load sample job description: %w", err)
	}

	return c.update(func() error {
		delete(c.feedback, FieldSample)
		c.setDescriptionLocked(text)
		return nil
	})
}

// Submit runs the submission checks. A nil error means the host should let
// the native form post proceed; any error means it must cancel it.
func (c *Controller) Submit() error {
	return c.update(func() error {
		if c.guard.state == StateBusy {
			return ErrSubmitInProgress
		}

		if err := c.guard.check(c.selector.selected, c.desc, c.opts.MinDescriptionLength); err != nil {
			var verr *ValidationError
			if errors.As(err, &verr) {
				c.feedback[verr.Field] = Message{Field: verr.Field, Level: LevelError, Text: MessageFor(verr.Err)}
			}
			c.logger.Debug("submission blocked", zap.Error(err))
			return err
		}

		delete(c.feedback, FieldResume)
		delete(c.feedback, FieldDescription)
		c.guard.begin()

		if c.guard.timer != 0 {
			c.timers.stop(c.guard.timer)
		}
		c.guard.timer = c.afterLocked(c.opts.SubmitTimeout, c.onSubmitTimeoutLocked)

		if c.opts.ShowProgress {
			c.progress.start()
			c.afterLocked(progressStartDelay, c.advanceProgressLocked)
		}

		c.logger.Info("submission accepted",
			zap.String("file", c.selector.selected.Name),
			zap.Int("description_length", c.counter.Count),
		)
		return nil
	})
}

// Close stops every pending timer. The controller renders nothing afterwards
// and every later event, Submit included, returns ErrControllerClosed.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.timers.stopAll()
}

// PendingTimers reports how many scheduled callbacks are still live.
func (c *Controller) PendingTimers() int {
	return c.timers.pending()
}

func (c *Controller) chooseLocked(f FileHandle) error {
	if err := c.selector.choose(f); err != nil {
		c.feedback[FieldResume] = Message{Field: FieldResume, Level: LevelError, Text: MessageFor(err)}
		c.logger.Debug("file rejected",
			zap.String("name", f.Name),
			zap.Int64("size", f.Size),
			zap.String("type", f.MimeType),
			zap.Error(err),
		)
		return err
	}

	delete(c.feedback, FieldResume)
	return nil
}

func (c *Controller) setDescriptionLocked(text string) {
	c.desc = text
	c.counter = Count(text)
	delete(c.feedback, FieldDescription)
}

func (c *Controller) onSubmitTimeoutLocked() {
	if c.guard.expire() {
		c.progress.hide()
		c.logger.Warn("submission timed out without navigation, restoring submit button",
			zap.Duration("timeout", c.opts.SubmitTimeout),
		)
	}
}

func (c *Controller) advanceProgressLocked() {
	if c.progress.advance() {
		c.afterLocked(progressStepBase+c.opts.Jitter(progressStepJitter), c.advanceProgressLocked)
	}
}

// afterLocked schedules f to run under the controller lock, followed by a render.
func (c *Controller) afterLocked(d time.Duration, f func()) uint64 {
	return c.timers.schedule(c.scheduler, d, func() {
		c.mu.Lock()
		if c.closed {
			c.mu.Unlock()
			return
		}
		f()
		snap := c.snapshotLocked()
		c.mu.Unlock()
		c.renderer.Render(snap)
	})
}

// update applies fn under the lock and renders the result outside it.
func (c *Controller) update(fn func() error) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrControllerClosed
	}
	err := fn()
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.renderer.Render(snap)
	return err
}

func (c *Controller) snapshotLocked() State {
	dropZone, fileInfo := c.selector.view()
	s := State{
		DropZone:    dropZone,
		FileInfo:    fileInfo,
		File:        c.selector.selected,
		Description: c.desc,
		Counter:     c.counter,
		Submit:      c.guard.view(),
		Submission:  c.guard.state,
		Progress:    c.progress.view(),
		Feedback:    c.feedback,
	}
	return s.clone()
}

// MessageFor returns the user-facing text for a validation error.
func MessageFor(err error) string {
	switch {
	case errors.Is(err, ErrNotPDF):
		return "Only PDF files are allowed."
	case errors.Is(err, ErrFileTooLarge):
		limit := MaxFileSize
		var se *SizeLimitError
		if errors.As(err, &se) {
			limit = se.Limit
		}
		return fmt.Sprintf("File size too large. Maximum allowed size is %sMB.", formatLimitMB(limit))
	case errors.Is(err, ErrNoFile):
		return "Please select a resume file."
	case errors.Is(err, ErrDescriptionRequired):
		return "Please enter a job description."
	case errors.Is(err, ErrDescriptionTooShort):
		return "Job description seems too short. Please provide more details for accurate analysis."
	}
	return err.Error()
}
