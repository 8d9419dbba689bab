// Package logging provides the service log: a rotating file handler shared
// by every component, with an optional debug echo to stderr.
package logging

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

type Logger struct {
	logger *log.Logger
	file   *lumberjack.Logger
	debug  bool
}

// New creates a logger writing to <dataDir>/urbangpt.log with rotation.
// When debug is true every line is echoed to stderr as well.
func New(dataDir string, debug bool) *Logger {
	file := &lumberjack.Logger{
		Filename:   filepath.Join(dataDir, "urbangpt.log"),
		MaxSize:    15, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	return &Logger{
		logger: log.New(file, "", log.LstdFlags),
		file:   file,
		debug:  debug,
	}
}

// NewDiscard returns a logger that drops everything. Used in tests.
func NewDiscard() *Logger {
	return &Logger{logger: log.New(discardWriter{}, "", 0)}
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

func (l *Logger) Printf(format string, v ...any) {
	l.logger.Printf(format, v...)
	if l.debug {
		fmt.Fprintf(os.Stderr, format+"\n", v...)
	}
}

func (l *Logger) Println(v ...any) {
	l.logger.Println(v...)
	if l.debug {
		fmt.Fprintln(os.Stderr, v...)
	}
}

// Errorf logs a component failure. These lines mark turns that were degraded
// to a user-visible failure message.
func (l *Logger) Errorf(format string, v ...any) {
	l.Printf("ERROR: "+format, v...)
}
