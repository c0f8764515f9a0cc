package notice

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"card-binder/internal/domain"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/zlog"
)

// FromError builds a notice for a failed user action.
func FromError(err error, operation string) domain.Notice {
	return domain.Notice{
		ID:        uuid.New().String(),
		Kind:      domain.KindOf(err),
		Operation: operation,
		Message:   message(err),
		CreatedAt: time.Now(),
	}
}

func message(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnreadableFile):
		return "The file could not be read."
	case errors.Is(err, domain.ErrUndecodableImage):
		return "The file is not a supported image."
	case errors.Is(err, domain.ErrInvalidDimensions):
		return "The image has no usable size."
	case errors.Is(err, domain.ErrInvalidReorder):
		return "The binder order could not be applied."
	default:
		return "Something went wrong."
	}
}

// Board keeps notices until they are dismissed. The oldest notice is dropped
// once the limit is reached.
type Board struct {
	mu      sync.Mutex
	notices []domain.Notice
	limit   int
	logger  *zlog.Zerolog
}

func NewBoard(limit int, logger *zlog.Zerolog) *Board {
	if limit <= 0 {
		limit = domain.DefaultNoticeLimit
	}
	return &Board{
		limit:  limit,
		logger: logger,
	}
}

func (b *Board) Add(n domain.Notice) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.notices) >= b.limit {
		dropped := len(b.notices) - b.limit + 1
		b.notices = append(b.notices[:0:0], b.notices[dropped:]...)
	}
	b.notices = append(b.notices, n)

	b.logger.Info().
		Str("notice_id", n.ID).
		Str("kind", string(n.Kind)).
		Str("operation", n.Operation).
		Msg("Notice posted")
}

func (b *Board) List() []domain.Notice {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]domain.Notice, len(b.notices))
	copy(out, b.notices)
	return out
}

func (b *Board) Dismiss(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, n := range b.notices {
		if n.ID == id {
			b.notices = append(b.notices[:i:i], b.notices[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", domain.ErrNoticeNotFound, id)
}
