package facade

import (
	"errors"
	"fmt"

	"github.com/proftrace/proftrace/model"
)

// Sentinel errors mirroring the error-kind taxonomy of spec.md §7, for
// callers that want errors.Is comparisons instead of switching on a
// *model.ParseError/*model.SessionError/*model.ViewError/*model.ExportError's
// Kind field directly.
var (
	ErrInvalidFormat          = errors.New("parsers: invalid format")
	ErrTruncated              = errors.New("parsers: truncated input")
	ErrUnsupportedVersion     = errors.New("parsers: unsupported version")
	ErrInconsistentTimestamps = errors.New("parsers: inconsistent timestamps")
	ErrTreeConstructionFailed = errors.New("parsers: span tree construction failed")

	ErrUnknownProfileHandle = errors.New("session: unknown profile handle")
	ErrEmptySession         = errors.New("session: empty session")

	ErrSandwichRequiresSelection = errors.New("views: sandwich view requires a selected frame")

	ErrNoProfileLoaded     = errors.New("export: no profile loaded")
	ErrSerializationFailed = errors.New("export: serialization failed")
)

// Classify maps one of the model package's typed Kind errors onto the
// matching sentinel above, so a host can use errors.Is regardless of
// which concrete error type a command returned. Unrecognized errors pass
// through unchanged.
func Classify(err error) error {
	var parseErr *model.ParseError
	if errors.As(err, &parseErr) {
		switch parseErr.Kind {
		case model.Truncated:
			return errWrap(ErrTruncated, err)
		case model.UnsupportedVersion:
			return errWrap(ErrUnsupportedVersion, err)
		case model.InconsistentTimestamps:
			return errWrap(ErrInconsistentTimestamps, err)
		case model.TreeConstructionFailed:
			return errWrap(ErrTreeConstructionFailed, err)
		default:
			return errWrap(ErrInvalidFormat, err)
		}
	}

	var sessionErr *model.SessionError
	if errors.As(err, &sessionErr) {
		if sessionErr.Kind == model.EmptySession {
			return errWrap(ErrEmptySession, err)
		}
		return errWrap(ErrUnknownProfileHandle, err)
	}

	var viewErr *model.ViewError
	if errors.As(err, &viewErr) {
		return errWrap(ErrSandwichRequiresSelection, err)
	}

	var exportErr *model.ExportError
	if errors.As(err, &exportErr) {
		if exportErr.Kind == model.NoProfileLoaded {
			return errWrap(ErrNoProfileLoaded, err)
		}
		return errWrap(ErrSerializationFailed, err)
	}

	return err
}

// errWrap joins sentinel and cause so errors.Is(result, sentinel) holds
// while the original message (with its Reason detail) is preserved.
func errWrap(sentinel, cause error) error {
	return fmt.Errorf("%w: %s", sentinel, cause)
}
