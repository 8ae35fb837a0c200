package learnhub

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// LLMLogger keeps a transcript of every prompt sent to the text generator and
// every response it returned. A nil *LLMLogger is valid and logs nothing.
type LLMLogger struct {
	file *os.File
	mu   sync.Mutex
	name string
}

// NewLLMLogger opens <dir>/<name>.log for appending. An empty dir disables
// transcript logging and returns a nil logger.
func NewLLMLogger(dir, name string) (*LLMLogger, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	filename := filepath.Join(dir, fmt.Sprintf("%s.log", name))
	file, err := os.OpenFile(filename, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logger := &LLMLogger{
		file: file,
		name: name,
	}

	logger.Logf("=== LLM Transcript: %s ===\n", name)
	logger.Logf("Started: %s\n\n", time.Now().Format(time.RFC3339))

	return logger, nil
}

// Logf writes a formatted log entry with timestamp
func (ll *LLMLogger) Logf(format string, args ...interface{}) {
	if ll == nil {
		return
	}
	ll.mu.Lock()
	defer ll.mu.Unlock()

	if ll.file == nil {
		return
	}

	timestamp := time.Now().Format("15:04:05.000")
	message := fmt.Sprintf(format, args...)

	fmt.Fprintf(ll.file, "[%s] %s", timestamp, message)
	ll.file.Sync()
}

// LogLLMRequest logs a prompt sent on behalf of module
func (ll *LLMLogger) LogLLMRequest(module, prompt string) {
	ll.Logf("=== LLM REQUEST (%s) ===\n", module)
	ll.Logf("Prompt:\n%s\n", prompt)
	ll.Logf("=====================\n\n")
}

// LogLLMResponse logs the generator's reply for module
func (ll *LLMLogger) LogLLMResponse(module, response string) {
	ll.Logf("=== LLM RESPONSE (%s) ===\n", module)
	ll.Logf("Response:\n%s\n", response)
	ll.Logf("======================\n\n")
}

// LogLLMError logs a failed generation for module
func (ll *LLMLogger) LogLLMError(module string, err error) {
	ll.Logf("=== LLM ERROR (%s) ===\n%v\n\n", module, err)
}

// Close closes the transcript file
func (ll *LLMLogger) Close() error {
	if ll == nil {
		return nil
	}
	ll.mu.Lock()
	defer ll.mu.Unlock()

	if ll.file == nil {
		return nil
	}
	fmt.Fprintf(ll.file, "[%s] === Transcript closed ===\n", time.Now().Format("15:04:05.000"))
	err := ll.file.Close()
	ll.file = nil
	return err
}
