package event

import (
	"fmt"

	"card-binder/internal/domain"

	messagebus "github.com/vardius/message-bus"
	"github.com/wb-go/wbf/zlog"
)

type Topic string

const (
	TopicNotice Topic = "notice"
	TopicExport Topic = "export"
)

// Bus carries in-process events between the workspace and its listeners.
// Handlers run asynchronously, one goroutine per subscription.
type Bus struct {
	bus    messagebus.MessageBus
	logger *zlog.Zerolog
}

func NewBus(queueSize int, logger *zlog.Zerolog) *Bus {
	if queueSize <= 0 {
		queueSize = 1
	}
	return &Bus{
		bus:    messagebus.New(queueSize),
		logger: logger,
	}
}

func (b *Bus) PublishNotice(n domain.Notice) {
	b.logger.Debug().
		Str("topic", string(TopicNotice)).
		Str("kind", string(n.Kind)).
		Str("operation", n.Operation).
		Msg("Publishing event")
	b.bus.Publish(string(TopicNotice), n)
}

func (b *Bus) PublishExport(e domain.ExportEvent) {
	b.logger.Debug().
		Str("topic", string(TopicExport)).
		Str("filename", e.Filename).
		Msg("Publishing event")
	b.bus.Publish(string(TopicExport), e)
}

func (b *Bus) SubscribeNotices(fn func(domain.Notice)) error {
	return b.subscribe(TopicNotice, fn)
}

func (b *Bus) SubscribeExports(fn func(domain.ExportEvent)) error {
	return b.subscribe(TopicExport, fn)
}

func (b *Bus) subscribe(topic Topic, fn interface{}) error {
	if err := b.bus.Subscribe(string(topic), fn); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", topic, err)
	}
	return nil
}

// Close stops the handlers of every topic. Queued events are dropped.
func (b *Bus) Close() {
	b.bus.Close(string(TopicNotice))
	b.bus.Close(string(TopicExport))
}
