package model

import "fmt"

// ParseErrorKind enumerates why a parser rejected its input. Any non-nil
// ParseError means no partial Profile is returned.
type ParseErrorKind uint8

const (
	InvalidFormat ParseErrorKind = iota
	Truncated
	UnsupportedVersion
	InconsistentTimestamps
	TreeConstructionFailed
)

func (k ParseErrorKind) String() string {
	switch k {
	case InvalidFormat:
		return "InvalidFormat"
	case Truncated:
		return "Truncated"
	case UnsupportedVersion:
		return "UnsupportedVersion"
	case InconsistentTimestamps:
		return "InconsistentTimestamps"
	case TreeConstructionFailed:
		return "TreeConstructionFailed"
	default:
		return "Unknown"
	}
}

// ParseError is returned by every parser on failure.
type ParseError struct {
	Kind   ParseErrorKind
	Format string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s: %s", e.Format, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %s", e.Format, e.Kind, e.Reason)
}

// SessionErrorKind enumerates why a Session operation was rejected.
type SessionErrorKind uint8

const (
	UnknownProfileHandle SessionErrorKind = iota
	EmptySession
)

func (k SessionErrorKind) String() string {
	switch k {
	case UnknownProfileHandle:
		return "UnknownProfileHandle"
	case EmptySession:
		return "EmptySession"
	default:
		return "Unknown"
	}
}

// SessionError is returned by Session operations that require a profile to
// exist.
type SessionError struct {
	Kind SessionErrorKind
}

func (e *SessionError) Error() string {
	return e.Kind.String()
}

// ViewErrorKind enumerates why a view transform could not run.
type ViewErrorKind uint8

const (
	SandwichRequiresSelection ViewErrorKind = iota
)

func (k ViewErrorKind) String() string {
	switch k {
	case SandwichRequiresSelection:
		return "SandwichRequiresSelection"
	default:
		return "Unknown"
	}
}

// ViewError is returned by a view transform whose preconditions aren't met.
type ViewError struct {
	Kind ViewErrorKind
}

func (e *ViewError) Error() string {
	return e.Kind.String()
}

// ExportErrorKind enumerates why an export operation failed.
type ExportErrorKind uint8

const (
	NoProfileLoaded ExportErrorKind = iota
	SerializationFailed
)

func (k ExportErrorKind) String() string {
	switch k {
	case NoProfileLoaded:
		return "NoProfileLoaded"
	case SerializationFailed:
		return "SerializationFailed"
	default:
		return "Unknown"
	}
}

// ExportError is returned by the export package.
type ExportError struct {
	Kind   ExportErrorKind
	Reason string
}

func (e *ExportError) Error() string {
	if e.Reason == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}
