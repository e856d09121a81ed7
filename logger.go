package sway

import (
	"fmt"
	"io"
	"log"
	"os"
)

// Verbosity is the minimum level a Logger writes. Messages below it are
// dropped.
type Verbosity uint8

const (
	VerbosityAll Verbosity = iota
	VerbosityInfo
	VerbosityWarn
	VerbosityError
	VerbosityException
	VerbosityNone
)

func (v Verbosity) String() string {
	switch v {
	case VerbosityAll:
		return "all"
	case VerbosityInfo:
		return "info"
	case VerbosityWarn:
		return "warn"
	case VerbosityError:
		return "error"
	case VerbosityException:
		return "exception"
	case VerbosityNone:
		return "none"
	default:
		return fmt.Sprintf("Verbosity(%d)", uint8(v))
	}
}

// Logger is the leveled sink a Loop exposes to the scheduler.
type Logger interface {
	Verbosity() Verbosity
	SetVerbosity(v Verbosity)
	Info(msg string)
	Warn(msg string)
	Error(msg string)
	// Exception logs err with a context message. It reports whether
	// anything was written.
	Exception(msg string, err error) bool
}

// enabled reports whether l writes messages of level v. Callers use it to
// skip building messages in hot paths.
func enabled(l Logger, v Verbosity) bool {
	return l != nil && l.Verbosity() <= v
}

// StdLogger writes prefixed lines through a standard library *log.Logger.
type StdLogger struct {
	out       *log.Logger
	verbosity Verbosity
}

// NewStdLogger creates a StdLogger writing to w with the "[sway] " prefix.
// A nil w writes to stderr.
func NewStdLogger(w io.Writer, v Verbosity) *StdLogger {
	if w == nil {
		w = os.Stderr
	}
	return &StdLogger{out: log.New(w, "[sway] ", 0), verbosity: v}
}

// Verbosity returns the current level.
func (l *StdLogger) Verbosity() Verbosity { return l.verbosity }

// SetVerbosity changes the level.
func (l *StdLogger) SetVerbosity(v Verbosity) { l.verbosity = v }

// Info writes msg at info level.
func (l *StdLogger) Info(msg string) {
	if l.verbosity > VerbosityInfo {
		return
	}
	l.out.Print("info: ", msg)
}

// Warn writes msg at warn level.
func (l *StdLogger) Warn(msg string) {
	if l.verbosity > VerbosityWarn {
		return
	}
	l.out.Print("warning: ", msg)
}

// Error writes msg at error level.
func (l *StdLogger) Error(msg string) {
	if l.verbosity > VerbosityError {
		return
	}
	l.out.Print("error: ", msg)
}

// Exception writes msg and err. A nil err is reported as an error line and
// returns false.
func (l *StdLogger) Exception(msg string, err error) bool {
	if l.verbosity > VerbosityException {
		return false
	}
	if err == nil {
		l.Error("Exception called with nil error: " + msg)
		return false
	}
	l.out.Printf("exception: %s: %v", msg, err)
	return true
}

// discardLogger drops everything.
type discardLogger struct{}

// Discard is a Logger that writes nothing.
var Discard Logger = discardLogger{}

func (discardLogger) Verbosity() Verbosity { return VerbosityNone }
func (discardLogger) SetVerbosity(Verbosity) {}
func (discardLogger) Info(string) {}
func (discardLogger) Warn(string) {}
func (discardLogger) Error(string) {}
func (discardLogger) Exception(string, error) bool { return false }

// RedirectBehavior selects what a ProxyLogger does when the handler for a
// level is missing.
type RedirectBehavior uint8

const (
	RedirectUseOther RedirectBehavior = iota // fall back to the next lower level's handler
	RedirectNone                             // drop the message
)

// ProxyLogger forwards messages to user functions, for hosts that already
// own a logging backend.
type ProxyLogger struct {
	OnInfo      func(msg string)
	OnWarn      func(msg string)
	OnError     func(msg string)
	OnException func(msg string, err error) bool
	Redirect    RedirectBehavior

	verbosity Verbosity
}

// NewProxyLogger creates a ProxyLogger with an info handler, which every
// other level falls back to. info must not be nil.
func NewProxyLogger(info func(msg string), v Verbosity) *ProxyLogger {
	if info == nil {
		panic("sway: NewProxyLogger with nil info handler")
	}
	return &ProxyLogger{OnInfo: info, verbosity: v}
}

// Verbosity returns the current level.
func (p *ProxyLogger) Verbosity() Verbosity { return p.verbosity }

// SetVerbosity changes the level.
func (p *ProxyLogger) SetVerbosity(v Verbosity) { p.verbosity = v }

// Info forwards msg to OnInfo.
func (p *ProxyLogger) Info(msg string) {
	if p.verbosity > VerbosityInfo {
		return
	}
	p.OnInfo(msg)
}

// Warn forwards msg to OnWarn, or OnInfo when redirecting.
func (p *ProxyLogger) Warn(msg string) {
	if p.verbosity > VerbosityWarn {
		return
	}
	p.forward(msg, p.OnWarn, p.OnInfo)
}

// Error forwards msg to OnError, then OnWarn, then OnInfo when redirecting.
func (p *ProxyLogger) Error(msg string) {
	if p.verbosity > VerbosityError {
		return
	}
	p.forward(msg, p.OnError, p.OnWarn, p.OnInfo)
}

// Exception forwards to OnException, or to the error chain as a single line
// when redirecting.
func (p *ProxyLogger) Exception(msg string, err error) bool {
	if p.verbosity > VerbosityException {
		return false
	}
	if p.OnException != nil {
		return p.OnException(msg, err)
	}
	if p.Redirect == RedirectNone {
		return false
	}
	p.forward(fmt.Sprintf("%s: %v", msg, err), p.OnError, p.OnWarn, p.OnInfo)
	return true
}

func (p *ProxyLogger) forward(msg string, handlers ...func(string)) {
	for i, h := range handlers {
		if h == nil {
			continue
		}
		if i > 0 && p.Redirect == RedirectNone {
			return
		}
		h(msg)
		return
	}
}
