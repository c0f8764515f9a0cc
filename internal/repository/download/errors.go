package download

import "errors"

var (
	ErrInvalidFilename = errors.New("invalid export filename")
	ErrStorageError    = errors.New("storage error")
)
