package download

import (
	"context"

	"card-binder/internal/domain"
)

// Discard is the sink used when exports only go back to the browser.
type Discard struct{}

func (Discard) Deliver(context.Context, *domain.Export) error {
	return nil
}

func (Discard) Name() string {
	return "none"
}
