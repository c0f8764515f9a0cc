package event

import (
	"sync"
	"testing"
	"time"

	"card-binder/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/zlog"
)

func TestBus_DeliversByTopic(t *testing.T) {
	bus := NewBus(4, &zlog.Logger)
	defer bus.Close()

	var (
		mu      sync.Mutex
		notices []domain.Notice
		exports []domain.ExportEvent
	)

	require.NoError(t, bus.SubscribeNotices(func(n domain.Notice) {
		mu.Lock()
		notices = append(notices, n)
		mu.Unlock()
	}))
	require.NoError(t, bus.SubscribeExports(func(e domain.ExportEvent) {
		mu.Lock()
		exports = append(exports, e)
		mu.Unlock()
	}))

	bus.PublishNotice(domain.Notice{ID: "n1", Kind: domain.KindUndecodableImage})
	bus.PublishExport(domain.ExportEvent{Filename: "card.png", Kind: domain.ExportCard})

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(notices) == 1 && len(exports) == 1
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "n1", notices[0].ID)
	assert.Equal(t, "card.png", exports[0].Filename)
}

func TestBus_PublishWithoutSubscribers(t *testing.T) {
	bus := NewBus(0, &zlog.Logger)
	defer bus.Close()

	assert.NotPanics(t, func() {
		bus.PublishNotice(domain.Notice{ID: "lost"})
	})
}
