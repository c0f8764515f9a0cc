package worker

import (
	"image"
	"io"
	"sync"

	"card-binder/internal/domain"
)

type JobState string

const (
	StateIdle     JobState = "idle"
	StateReading  JobState = "reading"
	StateDecoding JobState = "decoding"
	StateReady    JobState = "ready"
	StateFailed   JobState = "failed"
)

// Source is one file handed to the loader.
type Source struct {
	Name string
	Open func() (io.ReadCloser, error)
}

// Result is a finished job. Exactly one of Err and Raster is set.
type Result struct {
	Index  int
	Name   string
	Image  image.Image
	Raster *domain.RasterImage
	Err    error
}

type job struct {
	index  int
	source Source

	mu    sync.Mutex
	state JobState
}

func (j *job) setState(s JobState) {
	j.mu.Lock()
	j.state = s
	j.mu.Unlock()
}

func (j *job) State() JobState {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.state
}
