//go:build wasm

package main

import (
	"syscall/js"
)

func main() {
	// Export functions to JavaScript
	js.Global().Set("BalanceCheck", js.FuncOf(check))
	js.Global().Set("BalanceNewChecker", js.FuncOf(newChecker))
	js.Global().Set("BalanceCheckBatch", js.FuncOf(checkBatch))
	js.Global().Set("BalanceCloseChecker", js.FuncOf(closeChecker))

	// Keep WASM running
	<-make(chan struct{})
}
