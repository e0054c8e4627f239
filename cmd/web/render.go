//go:build js && wasm

package main

import (
	"fmt"
	"html"
	"syscall/js"

	"alfredoptarigan/resume-analyzer/internal/form"
)

const spinner = `<span class="spinner-border spinner-border-sm me-2" role="status" aria-hidden="true"></span>`

var feedbackClass = map[form.Level]string{
	form.LevelError:   "invalid-feedback d-block",
	form.LevelInfo:    "form-text text-info",
	form.LevelSuccess: "form-text text-success",
}

type uploadPage struct {
	form        js.Value
	input       js.Value
	dropzone    js.Value
	fileInfo    js.Value
	fileName    js.Value
	fileSize    js.Value
	description js.Value
	counter     js.Value
	submit      js.Value
	sample      js.Value
	remove      js.Value
	modal       js.Value
	bar         js.Value
	caption     js.Value
}

func bindUploadPage() (*uploadPage, bool) {
	p := &uploadPage{
		form:        byID("analyzeForm"),
		input:       byID("resume"),
		dropzone:    byID("dropzone"),
		fileInfo:    byID("fileInfo"),
		fileName:    byID("fileName"),
		fileSize:    byID("fileSize"),
		description: byID("job_description"),
		counter:     byID("jdCounter"),
		submit:      byID("submitBtn"),
		sample:      byID("sampleJD"),
		remove:      byID("removeFile"),
		modal:       byID("progressModal"),
		bar:         byID("progressBar"),
		caption:     byID("progressCaption"),
	}

	for _, el := range []js.Value{p.form, p.input, p.description, p.counter, p.submit} {
		if !exists(el) {
			return nil, false
		}
	}
	return p, true
}

// Render applies a controller snapshot to the DOM.
func (p *uploadPage) Render(s form.State) {
	if exists(p.dropzone) {
		p.dropzone.Get("style").Set("display", display(s.DropZone.Visible))
		toggleClass(p.dropzone, "dragover", s.DropZone.DragOver)
	}

	if exists(p.fileInfo) {
		toggleClass(p.fileInfo, "d-none", !s.FileInfo.Visible)
		p.fileName.Set("textContent", s.FileInfo.Name)
		p.fileSize.Set("textContent", s.FileInfo.SizeMB)
	}
	if s.File == nil {
		p.input.Set("value", "")
	}

	if p.description.Get("value").String() != s.Description {
		p.description.Set("value", s.Description)
	}
	p.counter.Set("className", s.Counter.Class)
	p.counter.Set("innerHTML", `<i class="fas fa-keyboard me-1"></i>`+html.EscapeString(s.Counter.Message))

	p.submit.Set("disabled", s.Submit.Disabled)
	if s.Submit.Busy {
		p.submit.Set("innerHTML", spinner+html.EscapeString(s.Submit.Label))
	} else {
		p.submit.Set("innerHTML", s.Submit.Label)
	}

	if exists(p.modal) {
		p.modal.Get("style").Set("display", display(s.Progress.Visible))
		toggleClass(p.modal, "show", s.Progress.Visible)
		p.bar.Get("style").Set("width", fmt.Sprintf("%.0f%%", s.Progress.Percent))
		p.caption.Set("textContent", s.Progress.Caption)
	}

	toggleClass(p.input, "is-invalid", hasError(s, form.FieldResume))
	toggleClass(p.description, "is-invalid", hasError(s, form.FieldDescription))
	renderFeedback(s.Feedback)
}

func renderFeedback(feedback map[form.Field]form.Message) {
	for _, el := range queryAll("[data-feedback]") {
		field := form.Field(el.Get("dataset").Get("feedback").String())
		msg, ok := feedback[field]
		if !ok {
			el.Set("textContent", "")
			continue
		}
		el.Set("className", feedbackClass[msg.Level])
		el.Set("textContent", msg.Text)
	}
}

func hasError(s form.State, field form.Field) bool {
	msg, ok := s.Feedback[field]
	return ok && msg.Level == form.LevelError
}

func display(visible bool) string {
	if visible {
		return "block"
	}
	return "none"
}
