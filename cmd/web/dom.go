//go:build js && wasm

package main

import (
	"context"
	"errors"
	"syscall/js"

	"alfredoptarigan/resume-analyzer/internal/form"
)

var document = js.Global().Get("document")

func byID(id string) js.Value {
	return document.Call("getElementById", id)
}

func exists(v js.Value) bool {
	return !v.IsNull() && !v.IsUndefined()
}

func queryAll(selector string) []js.Value {
	list := document.Call("querySelectorAll", selector)
	out := make([]js.Value, list.Length())
	for i := range out {
		out[i] = list.Index(i)
	}
	return out
}

// on registers a listener for the page lifetime.
func on(target js.Value, event string, fn func(e js.Value)) {
	target.Call("addEventListener", event, js.FuncOf(func(this js.Value, args []js.Value) any {
		fn(args[0])
		return nil
	}))
}

func toggleClass(el js.Value, class string, on bool) {
	el.Get("classList").Call("toggle", class, on)
}

// fileHandles reads a FileList.
func fileHandles(list js.Value) []form.FileHandle {
	if !exists(list) {
		return nil
	}

	out := make([]form.FileHandle, list.Length())
	for i := range out {
		f := list.Index(i)
		out[i] = form.FileHandle{
			Name:     f.Get("name").String(),
			Size:     int64(f.Get("size").Float()),
			MimeType: f.Get("type").String(),
		}
	}
	return out
}

// await blocks the calling goroutine until p settles. Never call it from a
// JS callback directly.
func await(ctx context.Context, p js.Value) (js.Value, error) {
	done := make(chan struct{})
	var (
		result js.Value
		err    error
	)

	then := js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) > 0 {
			result = args[0]
		}
		close(done)
		return nil
	})
	defer then.Release()

	catch := js.FuncOf(func(this js.Value, args []js.Value) any {
		err = errors.New("promise rejected")
		if len(args) > 0 && exists(args[0]) {
			err = errors.New(args[0].Call("toString").String())
		}
		close(done)
		return nil
	})
	defer catch.Release()

	p.Call("then", then, catch)

	select {
	case <-done:
		return result, err
	case <-ctx.Done():
		return js.Undefined(), ctx.Err()
	}
}
