package logger

import (
	"log"
	"sync"
)

// Logger provides leveled logging tagged with the pipeline component that emitted it.
// The zero value logs at LevelDebug to the standard logger.
type Logger struct {
	MinLevel LogLevel
	out      *log.Logger
	mu       sync.Mutex
}

// LogLevel represents the severity of a log message
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)
