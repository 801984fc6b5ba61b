//go:build !windows

package main

// enableVT is a no-op; ANSI sequences work natively outside Windows.
func enableVT() {}
