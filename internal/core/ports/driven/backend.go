package driven

import (
	"context"

	"github.com/custodia-labs/documind/internal/core/domain"
)

// Backend is the remote service that stores, indexes and answers over documents.
// Every method is a single round trip with no retry. Failures are reported as
// *domain.TransportError when no response arrived, or *domain.ServiceError
// when the response was not a usable success. UploadDocument may also fail
// before any request is made, when the local file cannot be read; that error
// is neither type and wraps the underlying os error.
type Backend interface {
	// ListDocuments returns every document in the index.
	ListDocuments(ctx context.Context) ([]domain.Document, error)

	// UploadDocument transfers the file's bytes for indexing.
	// Callers enforce the .pdf rule before calling.
	UploadDocument(ctx context.Context, file domain.File) error

	// DeleteDocument removes the named document from the index.
	DeleteDocument(ctx context.Context, name string) error

	// Ask sends a question and returns the grounded answer.
	Ask(ctx context.Context, question string) (domain.Answer, error)
}
