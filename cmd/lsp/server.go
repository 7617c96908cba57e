package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
)

// LanguageServer publishes lint findings as LSP diagnostics over stdio.
type LanguageServer struct {
	documents map[string]string // URI -> current text
	mu        sync.RWMutex
	writer    io.Writer
	writeMu   sync.Mutex
}

func NewLanguageServer(writer io.Writer) *LanguageServer {
	if writer == nil {
		writer = os.Stdout
	}
	return &LanguageServer{
		documents: make(map[string]string),
		writer:    writer,
	}
}

func (s *LanguageServer) Start() {
	reader := bufio.NewReader(os.Stdin)

	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			if err != io.EOF {
				log.Printf("Error reading header: %v", err)
			}
			return
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "Content-Length: ") {
			continue
		}
		contentLength, err := strconv.Atoi(strings.TrimPrefix(line, "Content-Length: "))
		if err != nil {
			log.Printf("Error parsing Content-Length: %v", err)
			continue
		}

		// read headers until the empty separator line
		for {
			headerLine, err := reader.ReadString('\n')
			if err != nil {
				log.Printf("Error reading separator: %v", err)
				return
			}
			if strings.TrimRight(headerLine, "\r\n") == "" {
				break
			}
		}

		content := make([]byte, contentLength)
		if _, err := io.ReadFull(reader, content); err != nil {
			log.Printf("Error reading content: %v", err)
			return
		}

		if exit := s.handleMessage(content); exit {
			return
		}
	}
}

type baseMessage struct {
	Jsonrpc string          `json:"jsonrpc"`
	ID      interface{}     `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// handleMessage dispatches one request or notification; it returns true
// when the client asked the server to exit.
func (s *LanguageServer) handleMessage(content []byte) bool {
	var msg baseMessage
	if err := json.Unmarshal(content, &msg); err != nil {
		log.Printf("Failed to unmarshal message: %v", err)
		return false
	}

	switch msg.Method {
	case "initialize":
		s.sendResult(msg.ID, InitializeResult{
			Capabilities: ServerCapabilities{TextDocumentSync: 1},
		})
	case "initialized":
		// nothing to do
	case "shutdown":
		s.sendResult(msg.ID, nil)
	case "exit":
		return true
	case "textDocument/didOpen":
		var params DidOpenTextDocumentParams
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			log.Printf("didOpen: %v", err)
			return false
		}
		s.setDocument(params.TextDocument.URI, params.TextDocument.Text)
		s.lintAndPublish(params.TextDocument.URI)
	case "textDocument/didChange":
		var params DidChangeTextDocumentParams
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			log.Printf("didChange: %v", err)
			return false
		}
		// full sync: the last change event carries the whole document
		if n := len(params.ContentChanges); n > 0 {
			s.setDocument(params.TextDocument.URI, params.ContentChanges[n-1].Text)
			s.lintAndPublish(params.TextDocument.URI)
		}
	case "textDocument/didClose":
		var params DidCloseTextDocumentParams
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			log.Printf("didClose: %v", err)
			return false
		}
		s.closeDocument(params.TextDocument.URI)
	default:
		if msg.ID != nil {
			s.sendError(msg.ID, ErrMethodNotFound, fmt.Sprintf("method not supported: %s", msg.Method))
		}
	}
	return false
}

func (s *LanguageServer) setDocument(uri, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[uri] = text
}

func (s *LanguageServer) closeDocument(uri string) {
	s.mu.Lock()
	delete(s.documents, uri)
	s.mu.Unlock()
	// clear stale diagnostics for the closed document
	s.sendNotification(NotificationMessage{
		Jsonrpc: "2.0",
		Method:  "textDocument/publishDiagnostics",
		Params:  PublishDiagnosticsParams{URI: uri, Diagnostics: []Diagnostic{}},
	})
}

func (s *LanguageServer) sendResult(id, result interface{}) {
	s.send(ResponseMessage{Jsonrpc: "2.0", ID: id, Result: result})
}

func (s *LanguageServer) sendError(id interface{}, code int, message string) {
	s.send(ResponseMessage{Jsonrpc: "2.0", ID: id, Error: &Error{Code: code, Message: message}})
}

func (s *LanguageServer) sendNotification(n NotificationMessage) {
	s.send(n)
}

func (s *LanguageServer) send(v interface{}) {
	payload, err := json.Marshal(v)
	if err != nil {
		log.Printf("Failed to marshal response: %v", err)
		return
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	fmt.Fprintf(s.writer, "Content-Length: %d\r\n\r\n%s", len(payload), payload)
}
