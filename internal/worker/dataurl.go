package worker

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"net/url"
	"strings"

	"card-binder/internal/domain"
)

// DataURLSource wraps a pasted data: URL as a loader source.
func DataURLSource(name, dataURL string) (Source, error) {
	data, err := decodeDataURL(dataURL)
	if err != nil {
		return Source{}, err
	}
	return BytesSource(name, data), nil
}

func BytesSource(name string, data []byte) Source {
	return Source{
		Name: name,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

func decodeDataURL(raw string) ([]byte, error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(raw), "data:")
	if !ok {
		return nil, fmt.Errorf("%w: not a data url", domain.ErrUnreadableFile)
	}

	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, fmt.Errorf("%w: data url has no payload", domain.ErrUnreadableFile)
	}

	if strings.HasSuffix(meta, ";base64") {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
		}
		if err != nil {
			return nil, fmt.Errorf("%w: bad base64 payload: %v", domain.ErrUnreadableFile, err)
		}
		return data, nil
	}

	data, err := url.PathUnescape(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: bad data url payload: %v", domain.ErrUnreadableFile, err)
	}
	return []byte(data), nil
}
