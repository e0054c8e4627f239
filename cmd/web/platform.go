//go:build js && wasm

package main

import (
	"context"
	"errors"
	"syscall/js"

	"alfredoptarigan/resume-analyzer/internal/form"
)

var errUnsupported = errors.New("not supported by this browser")

type windowPrinter struct{}

func (windowPrinter) Print() {
	js.Global().Call("print")
}

type navigatorSharer struct {
	navigator js.Value
}

func (s navigatorSharer) Share(ctx context.Context, data form.ShareData) error {
	if !exists(s.navigator.Get("share")) {
		return errUnsupported
	}

	payload := js.Global().Get("Object").New()
	payload.Set("title", data.Title)
	payload.Set("text", data.Text)
	payload.Set("url", data.URL)

	_, err := await(ctx, s.navigator.Call("share", payload))
	return err
}

type navigatorClipboard struct {
	clipboard js.Value
}

func (c navigatorClipboard) WriteText(ctx context.Context, text string) error {
	_, err := await(ctx, c.clipboard.Call("writeText", text))
	return err
}

// platformActions returns only the capabilities the browser has.
func platformActions() (form.Printer, form.Sharer, form.Clipboard) {
	var (
		printer   form.Printer
		sharer    form.Sharer
		clipboard form.Clipboard
	)

	if exists(js.Global().Get("print")) {
		printer = windowPrinter{}
	}

	navigator := js.Global().Get("navigator")
	if exists(navigator.Get("share")) {
		sharer = navigatorSharer{navigator: navigator}
	}
	if cb := navigator.Get("clipboard"); exists(cb) && exists(cb.Get("writeText")) {
		clipboard = navigatorClipboard{clipboard: cb}
	}

	return printer, sharer, clipboard
}
