package broker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"card-binder/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"
)

type recordingProducer struct {
	keys   [][]byte
	values [][]byte
	err    error
}

func (p *recordingProducer) Send(_ context.Context, _ retry.Strategy, key, value []byte) error {
	p.keys = append(p.keys, key)
	p.values = append(p.values, value)
	return p.err
}

func (p *recordingProducer) Close() error {
	return nil
}

func TestExportNotifier_Handle(t *testing.T) {
	producer := &recordingProducer{}
	n := NewExportNotifier(producer, retry.Strategy{Attempts: 1}, &zlog.Logger)

	event := domain.ExportEvent{
		Filename:  "a_b_2024-01-01T00_00_00_000Z.png",
		Kind:      domain.ExportCard,
		Width:     750,
		Height:    1050,
		Size:      1234,
		EntryID:   "entry-1",
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	n.Handle(event)

	require.Len(t, producer.values, 1)
	assert.Equal(t, []byte(event.Filename), producer.keys[0])

	var decoded domain.ExportEvent
	require.NoError(t, json.Unmarshal(producer.values[0], &decoded))
	assert.Equal(t, event, decoded)
}

func TestExportNotifier_SendFailureIsSwallowed(t *testing.T) {
	producer := &recordingProducer{err: errors.New("broker down")}
	n := NewExportNotifier(producer, retry.Strategy{Attempts: 1}, &zlog.Logger)

	assert.NotPanics(t, func() {
		n.Handle(domain.ExportEvent{Filename: "binder_collage.png", Kind: domain.ExportCollage})
	})
	assert.Len(t, producer.values, 1)
}
