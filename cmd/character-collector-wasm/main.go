//go:build js && wasm

// Package main is the WebAssembly host for character collection.
//
// It registers three global JavaScript functions and then blocks so the
// Go runtime stays alive to serve them:
//
//	collect(path)        → {value: "..."} or {error: "..."}
//	collectText(text)    → "..."
//	merge(prev, next)    → "..."
//
// collect reads from the file system the host exposes to Go (Node.js, for
// example). collectText serves browsers, where uploaded files arrive as
// strings.
package main

import (
	"syscall/js"

	"github.com/ZiYueCommentary/character-collector/pkg/charcollect"
)

func main() {
	js.Global().Set("collect", js.FuncOf(collect))
	js.Global().Set("collectText", js.FuncOf(collectText))
	js.Global().Set("merge", js.FuncOf(merge))

	select {}
}

func collect(_ js.Value, args []js.Value) any {
	if len(args) != 1 {
		return map[string]any{"error": "collect expects one argument: path"}
	}
	value, err := charcollect.Collect(args[0].String())
	if err != nil {
		return map[string]any{"error": err.Error()}
	}
	return map[string]any{"value": value}
}

func collectText(_ js.Value, args []js.Value) any {
	if len(args) != 1 {
		return ""
	}
	return charcollect.CollectText(args[0].String())
}

func merge(_ js.Value, args []js.Value) any {
	if len(args) != 2 {
		return ""
	}
	return charcollect.Merge(args[0].String(), args[1].String())
}
