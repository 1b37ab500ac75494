package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/clif-consortium/clifdict/internal/cli"
	"github.com/clif-consortium/clifdict/pkg/clifdict"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(clifdict.ExitPanic)
		}
	}()

	if err := cli.Execute(); err != nil {
		os.Exit(clifdict.ExitCodeForError(err))
	}
}
