//go:build windows

package main

import (
	"os"

	"golang.org/x/sys/windows"
)

// enableVT enables virtual terminal input/output so that ANSI escape sequences
// (picker redraws, coloured log levels) are interpreted by the console.
func enableVT() {
	hIn := windows.Handle(os.Stdin.Fd())
	var inMode uint32
	if windows.GetConsoleMode(hIn, &inMode) == nil {
		_ = windows.SetConsoleMode(hIn, inMode|windows.ENABLE_VIRTUAL_TERMINAL_INPUT)
	}

	for _, f := range []*os.File{os.Stdout, os.Stderr} {
		h := windows.Handle(f.Fd())
		var outMode uint32
		if windows.GetConsoleMode(h, &outMode) == nil {
			_ = windows.SetConsoleMode(h, outMode|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING)
		}
	}
}
