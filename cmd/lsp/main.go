// Command lsp is the reflint language server: it speaks LSP over stdio
// and publishes lint findings as diagnostics while a document is edited.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
)

var logPath = flag.String("log", "", "write a debug log to this file")

func main() {
	flag.Parse()

	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lsp: cannot open log file: %v\n", err)
			os.Exit(2)
		}
		defer f.Close()
		log.SetOutput(f)
	} else {
		// stdout carries the protocol; never log there
		log.SetOutput(io.Discard)
	}

	server := NewLanguageServer(os.Stdout)
	server.Start()
}
