package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	DefaultName       = "defaultName"
	DefaultTag        = "defaultTag"
	CollageFilename   = "binder_collage.png"
	isoTimestampMilli = "2006-01-02T15:04:05.000Z"
)

var timestampReplacer = strings.NewReplacer(":", "_", ".", "_")

// CardFilename builds {name}_{tags}_{timestamp}.png for a single card export.
func CardFilename(name, tags string, capturedAt time.Time) string {
	if name == "" {
		name = DefaultName
	}
	if tags == "" {
		tags = DefaultTag
	}
	return fmt.Sprintf("%s_%s_%s.png", name, tags, FilenameTimestamp(capturedAt))
}

func FilenameTimestamp(t time.Time) string {
	return timestampReplacer.Replace(t.UTC().Format(isoTimestampMilli))
}
