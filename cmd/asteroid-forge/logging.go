package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

const (
	logFileName = "asteroid-forge.log"
	maxLogSize  = 10 * 1024 * 1024
)

// setupLogging routes the standard logger to dir/logFileName when debug is set
// Output is discarded otherwise; the terminal belongs to tcell
// A file larger than maxLogSize is renamed with a timestamp before reopening
func setupLogging(debug bool, dir string) *os.File {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	logPath := filepath.Join(dir, logFileName)
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(dir, fmt.Sprintf("asteroid-forge-%s.log", time.Now().Format("20060102-150405")))
		if err := os.Rename(logPath, rotated); err != nil {
			log.SetOutput(io.Discard)
			return nil
		}
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	log.Printf("asteroid-forge starting (pid %d)", os.Getpid())
	return f
}
