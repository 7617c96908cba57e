package main

import (
	"os"
	"sync"

	"github.com/mattn/go-isatty"
)

const (
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiDim    = "\x1b[2m"
	ansiReset  = "\x1b[0m"
)

var (
	colorOnce sync.Once
	colorOn   bool
)

func useColor() bool {
	colorOnce.Do(func() {
		if *noColor {
			return
		}
		// NO_COLOR convention: https://no-color.org/
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			return
		}
		if os.Getenv("TERM") == "dumb" {
			return
		}
		colorOn = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	})
	return colorOn
}

func colorize(code, s string) string {
	if !useColor() {
		return s
	}
	return code + s + ansiReset
}
