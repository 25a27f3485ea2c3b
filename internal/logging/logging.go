package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	mu      sync.Mutex
	logFile *os.File
)

// Init routes the standard logger to stdout and, when logPath is set, to an
// append-mode log file as well.
func Init(logPath string) error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}

	var writers []io.Writer
	writers = append(writers, os.Stdout)

	if logPath != "" {
		if dir := filepath.Dir(logPath); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
		file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		logFile = file
		writers = append(writers, logFile)
	}

	log.SetOutput(io.MultiWriter(writers...))
	return nil
}

// Close restores stderr output and closes the log file, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return nil
	}
	log.SetOutput(os.Stderr)
	err := logFile.Close()
	logFile = nil
	return err
}

func LogEvent(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Println(msg)
}

// LogFetch records the outcome of fetching one input document.
func LogFetch(kind, name, location string, err error) {
	log.Println(buildFetchMessage(kind, name, location, err))
}

func buildFetchMessage(kind, name, location string, err error) string {
	kindValue := strings.ToUpper(strings.TrimSpace(kind))
	if kindValue == "" {
		kindValue = "FETCH"
	}
	nameValue := strings.TrimSpace(name)
	if nameValue == "" {
		nameValue = "unknown"
	}
	parts := []string{fmt.Sprintf("[%s]", kindValue)}
	parts = append(parts, fmt.Sprintf("name=%s", nameValue))
	if location = strings.TrimSpace(location); location != "" {
		parts = append(parts, fmt.Sprintf("location=%s", location))
	}
	if err != nil {
		parts = append(parts, "status=failed", fmt.Sprintf("error=%q", err.Error()))
	} else {
		parts = append(parts, "status=ok")
	}
	return strings.Join(parts, " ")
}
