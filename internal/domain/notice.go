package domain

import "time"

type Notice struct {
	ID        string
	Kind      ErrorKind
	Operation string
	Message   string
	CreatedAt time.Time
}

const (
	DefaultMaxUploadSize = 32 << 20
	DefaultMaxPixels     = 40_000_000
	DefaultNoticeLimit   = 100
)
