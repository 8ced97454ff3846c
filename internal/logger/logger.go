package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Level represents the logging level
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of the log level
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger writes to the console and to a run log file.
// The file receives every level; the console only receives minLevel and above.
type Logger struct {
	consoleLogger *log.Logger
	fileLogger    *log.Logger
	logFile       *os.File
	verbose       bool
	minLevel      Level

	mu           sync.Mutex
	counts       map[Level]int
	cellWarnings int
}

var globalLogger *Logger

// Init initializes the global logger
// consoleOutput: where to write INFO logs (typically os.Stdout)
// logFilePath: path to the run log (every level, every cell warning)
// verbose: if true, show DEBUG logs on console as well
func Init(consoleOutput io.Writer, logFilePath string, verbose bool) error {
	if err := os.MkdirAll(filepath.Dir(logFilePath), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	logFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	minLevel := LevelInfo
	if verbose {
		minLevel = LevelDebug
	}

	globalLogger = &Logger{
		consoleLogger: log.New(consoleOutput, "", 0),
		fileLogger:    log.New(logFile, "", log.LstdFlags),
		logFile:       logFile,
		verbose:       verbose,
		minLevel:      minLevel,
		counts:        make(map[Level]int),
	}

	globalLogger.fileLogger.Printf("[INFO] ---- run started %s ----", time.Now().Format(time.RFC3339))
	return nil
}

// Close closes the log file
func Close() {
	if globalLogger != nil && globalLogger.logFile != nil {
		globalLogger.logFile.Close()
		globalLogger.logFile = nil
	}
}

// Debug logs a debug message (file only, unless verbose)
func Debug(format string, args ...interface{}) {
	if globalLogger == nil {
		return
	}
	globalLogger.log(LevelDebug, format, args...)
}

// Info logs an info message (console + file)
func Info(format string, args ...interface{}) {
	if globalLogger == nil {
		fmt.Printf(format+"\n", args...)
		return
	}
	globalLogger.log(LevelInfo, format, args...)
}

// Warn logs a warning message (console + file)
func Warn(format string, args ...interface{}) {
	if globalLogger == nil {
		fmt.Printf("WARN: "+format+"\n", args...)
		return
	}
	globalLogger.log(LevelWarn, format, args...)
}

// Error logs an error message (console + file)
func Error(format string, args ...interface{}) {
	if globalLogger == nil {
		fmt.Printf("ERROR: "+format+"\n", args...)
		return
	}
	globalLogger.log(LevelError, format, args...)
}

func (l *Logger) log(level Level, format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)

	l.mu.Lock()
	l.counts[level]++
	l.mu.Unlock()

	if l.logFile != nil {
		l.fileLogger.Printf("[%s] %s", level.String(), message)
	}

	if level < l.minLevel {
		return
	}

	switch level {
	case LevelDebug:
		l.consoleLogger.Printf("[DEBUG] %s", message)
	case LevelInfo:
		l.consoleLogger.Printf("%s", message)
	case LevelWarn:
		l.consoleLogger.Printf("⚠️  %s", message)
	case LevelError:
		l.consoleLogger.Printf("❌ %s", message)
	}
}

// InfoClean logs an info message without any prefix (console only)
// Used for printed summaries that would clutter the run log
func InfoClean(format string, args ...interface{}) {
	if globalLogger == nil {
		fmt.Printf(format+"\n", args...)
		return
	}
	globalLogger.consoleLogger.Printf(format, args...)
}

// LogCellWarning records a cell that could not be read (file only, not console)
// The console gets one summary line per run from CellWarnings
func LogCellWarning(table, sheet, cell, message string) {
	if globalLogger == nil {
		return
	}

	globalLogger.mu.Lock()
	globalLogger.cellWarnings++
	globalLogger.mu.Unlock()

	if globalLogger.logFile != nil {
		globalLogger.fileLogger.Printf("[CELL_WARNING] Table: %s, Sheet: %s, Cell: %s, Detail: %s", table, sheet, cell, message)
	}
	Debug("Cell warning in %s!%s: %s", sheet, cell, message)
}

// CellWarnings returns how many cell warnings were logged since Init
func CellWarnings() int {
	if globalLogger == nil {
		return 0
	}
	globalLogger.mu.Lock()
	defer globalLogger.mu.Unlock()
	return globalLogger.cellWarnings
}

// Count returns how many messages of a level were logged since Init
func Count(level Level) int {
	if globalLogger == nil {
		return 0
	}
	globalLogger.mu.Lock()
	defer globalLogger.mu.Unlock()
	return globalLogger.counts[level]
}

// GetLogFilePath returns the path to the current log file
func GetLogFilePath() string {
	if globalLogger != nil && globalLogger.logFile != nil {
		return globalLogger.logFile.Name()
	}
	return ""
}

// IsVerbose returns whether verbose logging is enabled
func IsVerbose() bool {
	if globalLogger == nil {
		return false
	}
	return globalLogger.verbose
}
