package broker

import (
	"context"
	"encoding/json"
	"time"

	"card-binder/internal/domain"

	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"
)

const sendTimeout = 10 * time.Second

// ExportNotifier forwards finished exports to the message broker.
type ExportNotifier struct {
	producer Producer
	strategy retry.Strategy
	logger   *zlog.Zerolog
}

func NewExportNotifier(producer Producer, strategy retry.Strategy, logger *zlog.Zerolog) *ExportNotifier {
	return &ExportNotifier{
		producer: producer,
		strategy: strategy,
		logger:   logger,
	}
}

// Handle is meant to be subscribed to export events. Failures are logged
// only; a broker outage never fails an export.
func (n *ExportNotifier) Handle(e domain.ExportEvent) {
	value, err := json.Marshal(e)
	if err != nil {
		n.logger.Error().Err(err).Str("filename", e.Filename).Msg("Failed to marshal export event")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	if err := n.producer.Send(ctx, n.strategy, []byte(e.Filename), value); err != nil {
		n.logger.Error().
			Err(err).
			Str("filename", e.Filename).
			Str("kind", string(e.Kind)).
			Msg("Failed to publish export event")
		return
	}

	n.logger.Debug().Str("filename", e.Filename).Msg("Export event published")
}
