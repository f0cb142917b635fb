package driving

import (
	"context"

	"github.com/custodia-labs/documind/internal/core/domain"
)

// DocumentRegistry holds the local view of the remote document index.
// The view is replaced wholesale on each successful refresh and is never
// edited locally.
type DocumentRegistry interface {
	// Refresh reloads the view from the service. Failures are logged and
	// swallowed; the previous view is kept.
	Refresh(ctx context.Context)

	// Documents returns a copy of the current view.
	Documents() []domain.Document

	// Loaded reports whether any refresh has succeeded.
	Loaded() bool

	// Delete removes a document and refreshes on success.
	// Failures are logged for operators and returned without a refresh.
	Delete(ctx context.Context, name string) error

	// Subscribe returns a channel receiving the view after every successful
	// refresh, and a function that ends the subscription.
	Subscribe() (<-chan []domain.Document, func())
}
