//go:build wasm

package main

import (
	"context"
	"encoding/json"
	"sync"
	"syscall/js"

	"github.com/praetorian-inc/balance/pkg/scanner"
)

var (
	checkers   = make(map[int]*scanner.Core)
	checkersMu sync.RWMutex
	nextID     int
)

// jsItem is one batch entry as sent from JavaScript.
type jsItem struct {
	Source  string `json:"source"`
	Content string `json:"content"`
}

// check checks a single string without keeping any state.
// JS: BalanceCheck(content) -> JSON result or error
func check(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return map[string]interface{}{"error": "content argument required"}
	}

	jsonBytes, err := json.Marshal(scanner.Scan(args[0].String()))
	if err != nil {
		return map[string]interface{}{"error": "failed to marshal result: " + err.Error()}
	}
	return string(jsonBytes)
}

// newChecker creates a checker that keeps the reports it produces.
// JS: BalanceNewChecker() -> {handle}
func newChecker(this js.Value, args []js.Value) interface{} {
	core := scanner.NewCore(nil, scanner.NoopLogger{})

	checkersMu.Lock()
	id := nextID
	nextID++
	checkers[id] = core
	checkersMu.Unlock()

	return map[string]interface{}{"handle": id}
}

// checkBatch checks several items.
// JS: BalanceCheckBatch(handle, itemsJSON) -> JSON batch result or error
func checkBatch(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return map[string]interface{}{"error": "handle and itemsJSON arguments required"}
	}

	handle := args[0].Int()
	itemsJSON := args[1].String()

	checkersMu.RLock()
	core, ok := checkers[handle]
	checkersMu.RUnlock()

	if !ok {
		return map[string]interface{}{"error": "invalid checker handle"}
	}

	var parsed []jsItem
	if err := json.Unmarshal([]byte(itemsJSON), &parsed); err != nil {
		return map[string]interface{}{"error": "failed to parse items JSON: " + err.Error()}
	}
	items := make([]scanner.ContentItem, len(parsed))
	for i, item := range parsed {
		items[i] = scanner.ContentItem{Source: item.Source, Content: []byte(item.Content)}
	}

	batch, err := core.ScanBatch(context.Background(), items)
	if err != nil {
		return map[string]interface{}{"error": "batch check failed: " + err.Error()}
	}

	jsonBytes, err := json.Marshal(batch)
	if err != nil {
		return map[string]interface{}{"error": "failed to marshal results: " + err.Error()}
	}
	return string(jsonBytes)
}

// closeChecker releases a checker.
// JS: BalanceCloseChecker(handle)
func closeChecker(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return map[string]interface{}{"error": "handle argument required"}
	}

	handle := args[0].Int()

	checkersMu.Lock()
	core, ok := checkers[handle]
	if ok {
		delete(checkers, handle)
	}
	checkersMu.Unlock()

	if !ok {
		return map[string]interface{}{"error": "invalid checker handle"}
	}

	core.Close()
	return nil
}
