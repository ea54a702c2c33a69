// Package ugoiraerr defines the tagged error value returned by the
// conversion core.
package ugoiraerr

import "fmt"

// Code enumerates the domain error kinds. Values are stable and are used
// verbatim as process exit codes by the command-line front end.
type Code int

const (
	OK Code = iota
	NullPointer
	Archive
	InvalidMaxFPS
	InvalidFrames
	InvalidCRF
	RemoveOutputFileFailed
	OOM
	NoVideoStream
	NoAvailableDecoder
	NoAvailableEncoder
	OpenFile
	UnableScale
	JSONError
)

func (c Code) String() string {
	switch c {
	case OK:
		return "ok"
	case NullPointer:
		return "null_pointer"
	case Archive:
		return "archive"
	case InvalidMaxFPS:
		return "invalid_max_fps"
	case InvalidFrames:
		return "invalid_frames"
	case InvalidCRF:
		return "invalid_crf"
	case RemoveOutputFileFailed:
		return "remove_output_file_failed"
	case OOM:
		return "oom"
	case NoVideoStream:
		return "no_video_stream"
	case NoAvailableDecoder:
		return "no_available_decoder"
	case NoAvailableEncoder:
		return "no_available_encoder"
	case OpenFile:
		return "open_file"
	case UnableScale:
		return "unable_scale"
	case JSONError:
		return "json_error"
	default:
		return "unknown"
	}
}

// Error is the tagged result the conversion core returns. Exactly one of
// two shapes holds: either Code == Archive and ArchiveDetail is populated,
// or Code is any other domain kind and ArchiveDetail is nil. The
// constructors below (New, Newf, FromArchive) enforce this; Code and
// ArchiveDetail are exported fields, so a struct literal is not checked.
type Error struct {
	Code          Code
	ArchiveDetail error
	msg           string
}

// New builds a domain error. Panics if called with Archive; use FromArchive
// instead so the "exactly one of" invariant can't be violated by a caller.
func New(code Code, msg string) *Error {
	if code == Archive {
		panic("ugoiraerr: use FromArchive for Archive-kind errors")
	}
	return &Error{Code: code, msg: msg}
}

// Newf builds a domain error with a formatted message.
func Newf(code Code, format string, args ...interface{}) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// FromArchive wraps an error surfaced by the archive reader as an
// Archive-kind error.
func FromArchive(detail error) *Error {
	if detail == nil {
		panic("ugoiraerr: FromArchive requires a non-nil detail")
	}
	return &Error{Code: Archive, ArchiveDetail: detail}
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Code == Archive {
		return fmt.Sprintf("archive: %v", e.ArchiveDetail)
	}
	if e.msg == "" {
		return e.Code.String()
	}
	return fmt.Sprintf("%s: %s", e.Code, e.msg)
}

// Unwrap exposes the wrapped archive error to errors.Is/errors.As.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.ArchiveDetail
}

// ExitCode returns the numeric code used as a process exit status.
func (e *Error) ExitCode() int {
	if e == nil {
		return int(OK)
	}
	return int(e.Code)
}
