package model

import (
	"errors"
	"fmt"
	"strings"
)

// Kind names one of the closed set of failure outcomes a run can end in.
type Kind string

const (
	// KindTransport means the tracker could not be reached at all.
	KindTransport Kind = "TransportError"

	// KindBadValue means the tracker answered with something unusable.
	KindBadValue Kind = "BadValue"

	// KindNoActiveSprint means the board has no active sprint.
	KindNoActiveSprint Kind = "NoActiveSprint"

	// KindBadAskValue means the user's selection is missing or unusable.
	KindBadAskValue Kind = "BadAskValue"

	// KindBadResponse means the prompt itself failed (abort, I/O error).
	KindBadResponse Kind = "BadResponse"

	// KindNotInGitDir means the working directory is not a git work tree.
	KindNotInGitDir Kind = "NotInGitDir"

	// KindConsole means a git command failed or a branch name was rejected.
	KindConsole Kind = "ConsoleError"
)

// Sentinels for use with errors.Is. Any *Error with the same Kind matches.
var (
	ErrTransport      = &Error{Kind: KindTransport}
	ErrBadValue       = &Error{Kind: KindBadValue}
	ErrNoActiveSprint = &Error{Kind: KindNoActiveSprint}
	ErrBadAskValue    = &Error{Kind: KindBadAskValue}
	ErrBadResponse    = &Error{Kind: KindBadResponse}
	ErrNotInGitDir    = &Error{Kind: KindNotInGitDir}
	ErrConsole        = &Error{Kind: KindConsole}
)

// Error is the tagged failure returned across every component boundary.
// Op, URL and Status are optional context; Cause is the underlying error.
type Error struct {
	Kind   Kind
	Op     string
	URL    string
	Status int
	Cause  error
}

// Errorf builds an *Error of the given kind whose cause is a formatted
// message. A %w verb in format keeps the wrapped error reachable.
func Errorf(kind Kind, op string, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Cause: fmt.Errorf(format, args...)}
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	if e.Op != "" {
		b.WriteString(" (")
		b.WriteString(e.Op)
		b.WriteString(")")
	}
	if e.URL != "" {
		b.WriteString(" ")
		b.WriteString(e.URL)
	}
	if e.Status != 0 {
		fmt.Fprintf(&b, " [status %d]", e.Status)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error of the same kind, so the package-level sentinels
// work with errors.Is regardless of the context carried.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf reports the kind of the outermost *Error in err's chain.
// Errors from outside the taxonomy are reported as KindConsole.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindConsole
}

// ExitCode maps a kind to the process exit status the CLI reports.
func (k Kind) ExitCode() int {
	switch k {
	case KindTransport:
		return 10
	case KindBadValue:
		return 11
	case KindNoActiveSprint:
		return 12
	case KindBadAskValue:
		return 13
	case KindBadResponse:
		return 14
	case KindNotInGitDir:
		return 15
	default:
		return 16
	}
}
