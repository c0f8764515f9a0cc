package worker

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"card-binder/internal/domain"

	"github.com/wb-go/wbf/zlog"
)

// Loader reads and decodes files with a fixed number of workers.
type Loader struct {
	decoder     decoder
	concurrency int
	maxSize     int64
	logger      *zlog.Zerolog
}

func NewLoader(decoder decoder, concurrency int, maxSize int64, logger *zlog.Zerolog) *Loader {
	if concurrency <= 0 {
		concurrency = 1
	}
	if maxSize <= 0 {
		maxSize = domain.DefaultMaxUploadSize
	}
	return &Loader{
		decoder:     decoder,
		concurrency: concurrency,
		maxSize:     maxSize,
		logger:      logger,
	}
}

// Batch tracks one call to Start.
type Batch struct {
	jobs    []*job
	results chan Result
}

// Results yields finished jobs in completion order and is closed once every
// job is done.
func (b *Batch) Results() <-chan Result {
	return b.results
}

func (b *Batch) States() []JobState {
	states := make([]JobState, len(b.jobs))
	for i, j := range b.jobs {
		states[i] = j.State()
	}
	return states
}

func (l *Loader) Start(ctx context.Context, sources []Source) *Batch {
	batch := &Batch{
		jobs:    make([]*job, len(sources)),
		results: make(chan Result, len(sources)),
	}

	queue := make(chan *job, len(sources))
	for i, src := range sources {
		j := &job{index: i, source: src, state: StateIdle}
		batch.jobs[i] = j
		queue <- j
	}
	close(queue)

	workers := l.concurrency
	if workers > len(sources) {
		workers = len(sources)
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			l.processWorker(ctx, id, queue, batch.results)
		}(i)
	}

	go func() {
		wg.Wait()
		close(batch.results)
	}()

	return batch
}

// Load runs sources to completion and calls apply once per job, from a
// single goroutine, in completion order.
func (l *Loader) Load(ctx context.Context, sources []Source, apply func(Result)) {
	batch := l.Start(ctx, sources)
	for res := range batch.Results() {
		apply(res)
	}
}

func (l *Loader) processWorker(ctx context.Context, id int, queue <-chan *job, results chan<- Result) {
	for j := range queue {
		if err := ctx.Err(); err != nil {
			j.setState(StateFailed)
			results <- Result{Index: j.index, Name: j.source.Name, Err: err}
			continue
		}

		startTime := time.Now()
		res := l.safeProcess(id, j)
		if res.Err != nil {
			j.setState(StateFailed)
			l.logger.Warn().
				Err(res.Err).
				Int("worker_id", id).
				Str("file", j.source.Name).
				Msg("Failed to load file")
		} else {
			j.setState(StateReady)
			l.logger.Debug().
				Int("worker_id", id).
				Str("file", j.source.Name).
				Dur("duration", time.Since(startTime)).
				Msg("File loaded")
		}
		results <- res
	}
}

func (l *Loader) safeProcess(workerID int, j *job) (res Result) {
	res = Result{Index: j.index, Name: j.source.Name}

	defer func() {
		if r := recover(); r != nil {
			l.logger.Error().
				Int("worker_id", workerID).
				Interface("panic", r).
				Str("file", j.source.Name).
				Msg("Panic recovered while loading file")
			res.Image, res.Raster = nil, nil
			res.Err = fmt.Errorf("%w: panic: %v", domain.ErrUndecodableImage, r)
		}
	}()

	j.setState(StateReading)
	data, err := l.read(j.source)
	if err != nil {
		res.Err = err
		return res
	}

	j.setState(StateDecoding)
	img, raster, err := l.decoder.Decode(data)
	if err != nil {
		res.Err = fmt.Errorf("%s: %w", j.source.Name, err)
		return res
	}

	res.Image, res.Raster = img, raster
	return res
}

func (l *Loader) read(src Source) ([]byte, error) {
	if src.Open == nil {
		return nil, fmt.Errorf("%w: %s: no reader", domain.ErrUnreadableFile, src.Name)
	}

	rc, err := src.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrUnreadableFile, src.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, l.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrUnreadableFile, src.Name, err)
	}
	if int64(len(data)) > l.maxSize {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", domain.ErrUnreadableFile, src.Name, l.maxSize)
	}

	return data, nil
}
