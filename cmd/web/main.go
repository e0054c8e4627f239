//go:build js && wasm

// Command web is the browser side of the upload and results pages. It is
// built with GOOS=js GOARCH=wasm and served as /static/main.wasm.
package main

import (
	"context"
	"net/http"
	"strconv"
	"syscall/js"
	"time"

	"go.uber.org/zap"

	"alfredoptarigan/resume-analyzer/internal/form"
)

const sampleTimeout = 10 * time.Second

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		logger = zap.NewNop()
	}

	var closers []func()
	if page, ok := bindUploadPage(); ok {
		closers = append(closers, wireUploadPage(page, logger.Named("upload")))
	}
	if exists(byID("shareResults")) || len(queryAll(".score-reveal")) > 0 {
		closers = append(closers, wireResultsPage(logger.Named("results")))
	}

	// A page kept in the back/forward cache comes back with the same
	// controllers, so they are only closed when the page is really unloaded.
	on(js.Global(), "pagehide", func(e js.Value) {
		if e.Get("persisted").Truthy() {
			return
		}
		for _, c := range closers {
			c()
		}
	})

	select {}
}

func wireUploadPage(p *uploadPage, logger *zap.Logger) func() {
	opts := form.DefaultOptions()
	opts.SubmitLabel = p.submit.Get("innerHTML").String()
	opts.Description = p.description.Get("value").String()
	opts.EnableDragAndDrop = exists(p.dropzone)

	dataset := p.form.Get("dataset")
	if v, err := strconv.ParseInt(dataset.Get("maxFileSize").String(), 10, 64); err == nil {
		opts.MaxFileSize = v
	}
	if v, err := strconv.Atoi(dataset.Get("minLength").String()); err == nil {
		opts.MinDescriptionLength = v
	}

	origin := js.Global().Get("location").Get("origin").String()
	sample := form.NewHTTPSampleSource(http.DefaultClient, origin+form.SamplePath)

	ctrl := form.NewController(opts, p, sample, nil, logger)

	input := form.NewFileInput(ctrl,
		func(list js.Value) { p.input.Set("files", list) },
		func() { p.input.Set("value", "") },
	)

	if opts.EnableDragAndDrop {
		on(p.dropzone, "click", func(js.Value) {
			p.input.Call("click")
		})
		on(p.dropzone, "dragover", func(e js.Value) {
			e.Call("preventDefault")
			_ = ctrl.DragOver()
		})
		on(p.dropzone, "dragleave", func(e js.Value) {
			e.Call("preventDefault")
			ctrl.DragLeave()
		})
		on(p.dropzone, "drop", func(e js.Value) {
			e.Call("preventDefault")
			files := e.Get("dataTransfer").Get("files")
			_ = input.Drop(files, fileHandles(files))
		})
	}

	on(p.input, "change", func(js.Value) {
		files := p.input.Get("files")
		_ = input.Pick(files, fileHandles(files))
	})

	if exists(p.remove) {
		on(p.remove, "click", func(js.Value) {
			input.Remove()
		})
	}

	on(p.description, "input", func(js.Value) {
		ctrl.SetDescription(p.description.Get("value").String())
	})

	if exists(p.sample) {
		on(p.sample, "click", func(e js.Value) {
			e.Call("preventDefault")
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), sampleTimeout)
				defer cancel()
				_ = ctrl.LoadSample(ctx)
			}()
		})
	}

	on(p.form, "submit", func(e js.Value) {
		if err := ctrl.Submit(); err != nil {
			e.Call("preventDefault")
		}
	})

	ctrl.Render()
	return ctrl.Close
}

func wireResultsPage(logger *zap.Logger) func() {
	printer, sharer, clipboard := platformActions()
	notify := func(msg form.Message) {
		renderFeedback(map[form.Field]form.Message{msg.Field: msg})
	}

	actions := form.NewResultActions(printer, sharer, clipboard, nil, notify, logger)

	if btn := byID("downloadPDF"); exists(btn) {
		on(btn, "click", func(js.Value) {
			if err := actions.Print(); err != nil {
				logger.Warn("print unavailable", zap.Error(err))
			}
		})
	}

	if btn := byID("shareResults"); exists(btn) {
		on(btn, "click", func(js.Value) {
			url := js.Global().Get("location").Get("href").String()
			go func() {
				outcome := actions.Share(context.Background(), form.ShareData{URL: url})
				logger.Debug("share finished", zap.Int("outcome", int(outcome)))
			}()
		})
	}

	for _, badge := range queryAll(".badge") {
		on(badge, "mouseenter", func(js.Value) {
			badge.Get("style").Set("transform", "scale(1.1)")
		})
		on(badge, "mouseleave", func(js.Value) {
			badge.Get("style").Set("transform", "scale(1)")
		})
		on(badge, "click", func(js.Value) {
			text := badge.Get("textContent").String()
			go func() {
				err := actions.CopyBadge(context.Background(), text, func(on bool) {
					toggleClass(badge, "opacity-50", on)
				})
				if err != nil {
					logger.Debug("badge copy failed", zap.Error(err))
				}
			}()
		})
	}

	actions.RevealScores(func() {
		for _, el := range queryAll(".score-reveal") {
			el.Get("classList").Call("add", "animate__animated", "animate__fadeInUp")
		}
	})

	return actions.Close
}
