package logger

import (
	"log"
	"strings"
	"sync/atomic"
)

const (
	levelDebug int32 = iota
	levelInfo
	levelWarn
	levelError
)

var minLevel atomic.Int32

// Init sets logging flags and the minimum level ("debug", "info", "warn", "error").
// Called once from main.
func Init(level string) {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	minLevel.Store(parseLevel(level))
}

func parseLevel(level string) int32 {
	switch strings.ToLower(level) {
	case "debug":
		return levelDebug
	case "warn", "warning":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

func logAt(level int32, prefix, format string, v ...any) {
	if level < minLevel.Load() {
		return
	}
	log.Printf(prefix+format, v...)
}

func Infof(format string, v ...any) {
	logAt(levelInfo, "[INFO] ", format, v...)
}

func Warnf(format string, v ...any) {
	logAt(levelWarn, "[WARN] ", format, v...)
}

func Errorf(format string, v ...any) {
	logAt(levelError, "[ERROR] ", format, v...)
}

func Debugf(format string, v ...any) {
	logAt(levelDebug, "[DEBUG] ", format, v...)
}

func Fatalf(format string, v ...any) {
	log.Fatalf("[FATAL] "+format, v...)
}
