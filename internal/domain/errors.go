package domain

import "errors"

var (
	ErrUnreadableFile    = errors.New("unreadable file")
	ErrUndecodableImage  = errors.New("undecodable image")
	ErrInvalidDimensions = errors.New("invalid dimensions")
	ErrInvalidReorder    = errors.New("invalid reorder")
	ErrEntryNotFound     = errors.New("binder entry not found")
	ErrNoticeNotFound    = errors.New("notice not found")
)

type ErrorKind string

const (
	KindUnreadableFile    ErrorKind = "UnreadableFile"
	KindUndecodableImage  ErrorKind = "UndecodableImage"
	KindInvalidDimensions ErrorKind = "InvalidDimensions"
	KindInvalidReorder    ErrorKind = "InvalidReorder"
	KindInternal          ErrorKind = "Internal"
)

// KindOf reports which recoverable failure err represents. Errors outside
// the four user-facing kinds map to KindInternal.
func KindOf(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrUnreadableFile):
		return KindUnreadableFile
	case errors.Is(err, ErrUndecodableImage):
		return KindUndecodableImage
	case errors.Is(err, ErrInvalidDimensions):
		return KindInvalidDimensions
	case errors.Is(err, ErrInvalidReorder):
		return KindInvalidReorder
	default:
		return KindInternal
	}
}

// IsRecoverable reports whether err is one of the kinds surfaced as a notice.
func IsRecoverable(err error) bool {
	return err != nil && KindOf(err) != KindInternal
}
