package log

import (
	"io"
	"os"

	"github.com/op/go-logging"
)

// Level selects how verbose the loggers are.
type Level logging.Level

const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

var textFormat = logging.MustStringFormatter(
	`%{color}%{time:15:04:05.000} %{level:.4s} %{module}%{color:reset} %{message}`,
)

var (
	leveledBackend logging.LeveledBackend
	currentLevel   = Notice
)

// Logger is the leveled logging surface handed out to packages that report
// progress. Notice is the default verbosity; a normal render only prints
// Notice lines, with Info and Debug reserved for -v and -vv.
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})

	Notice(v ...interface{})
	Noticef(format string, v ...interface{})

	Info(v ...interface{})
	Infof(format string, v ...interface{})

	Warning(v ...interface{})
	Warningf(format string, v ...interface{})

	Error(v ...interface{})
	Errorf(format string, v ...interface{})
}

// New creates a named logger.
func New(name string) Logger {
	return logging.MustGetLogger(name)
}

// SetSink redirects all loggers to the given writer, keeping the current
// verbosity.
func SetSink(sink io.Writer) {
	backend := logging.NewBackendFormatter(logging.NewLogBackend(sink, "", 0), textFormat)
	leveledBackend = logging.AddModuleLevel(backend)
	logging.SetBackend(leveledBackend)
	SetLevel(currentLevel)
}

// SetLevel sets logger verbosity for all loggers.
func SetLevel(level Level) {
	currentLevel = level
	leveledBackend.SetLevel(backendLevel(level), "")
}

func backendLevel(level Level) logging.Level {
	switch level {
	case Debug:
		return logging.DEBUG
	case Info:
		return logging.INFO
	case Warning:
		return logging.WARNING
	case Error:
		return logging.ERROR
	default:
		return logging.NOTICE
	}
}

func init() {
	SetSink(os.Stdout)
}
