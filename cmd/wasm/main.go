//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/chalkgo/chalk/internal/engine"
	"github.com/chalkgo/chalk/internal/gallery"
)

var eng *engine.Engine

func main() {
	eng = engine.NewEngine(gallery.Catalog{})

	// Create the engine API object
	chalkEngine := js.Global().Get("Object").New()

	// --- Commands (frontend → backend) ---
	chalkEngine.Set("load", js.FuncOf(load))
	chalkEngine.Set("setSelection", js.FuncOf(setSelection))

	// --- Queries (frontend ← backend) ---
	chalkEngine.Set("list", js.FuncOf(list))
	chalkEngine.Set("render", js.FuncOf(render))
	chalkEngine.Set("hitTest", js.FuncOf(hitTest))
	chalkEngine.Set("bounds", js.FuncOf(bounds))
	chalkEngine.Set("subBounds", js.FuncOf(subBounds))
	chalkEngine.Set("getSelectionBounds", js.FuncOf(getSelectionBounds))
	chalkEngine.Set("getSelection", js.FuncOf(getSelection))

	// Register on global scope
	js.Global().Set("chalkEngine", chalkEngine)

	// Signal that WASM is ready
	js.Global().Set("chalkWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

// --- Command Handlers ---

func load(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 || args[0].Type() != js.TypeString {
		return js.ValueOf(map[string]interface{}{"error": "missing diagram name"})
	}

	if err := eng.Load(args[0].String()); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}

	return js.ValueOf(map[string]interface{}{"ok": true})
}

func setSelection(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		eng.SetSelection(nil)
		return nil
	}

	arr := args[0]
	if arr.Type() != js.TypeObject {
		eng.SetSelection(nil)
		return nil
	}

	length := arr.Length()
	items := make([]string, length)
	for i := 0; i < length; i++ {
		items[i] = arr.Index(i).String()
	}
	eng.SetSelection(items)
	return nil
}

// --- Query Handlers ---

func list(this js.Value, args []js.Value) interface{} {
	data, _ := json.Marshal(eng.List())
	return js.ValueOf(string(data))
}

func render(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.Render())
}

func hitTest(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf("")
	}
	return js.ValueOf(eng.HitTest(args[0].Float(), args[1].Float()))
}

func bounds(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(engine.RectToJSON(eng.Bounds()))
}

func subBounds(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.Null()
	}
	rect, ok := eng.SubBounds(args[0].String())
	if !ok {
		return js.Null()
	}
	return js.ValueOf(engine.RectToJSON(rect))
}

func getSelectionBounds(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.GetSelectionBounds())
}

func getSelection(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.GetSelection())
}
