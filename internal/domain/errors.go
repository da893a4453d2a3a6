package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrInvalidQuery signals an empty or malformed user query.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrVectorSearch signals a failed vector candidate lookup.
	ErrVectorSearch = errors.New("vector search failed")
	// ErrCompletion signals a completion provider failure.
	ErrCompletion = errors.New("completion provider error")
	// ErrEmptyAnswer signals that the completion provider returned no content.
	ErrEmptyAnswer = errors.New("empty answer from completion provider")
	// ErrHistory signals a chat history storage failure.
	ErrHistory = errors.New("chat history error")
)

// EmbeddingServiceError carries the upstream status and detail of a failed embedding call.
// Status is 0 when the request never produced an HTTP response.
type EmbeddingServiceError struct {
	Status int
	Detail string
}

func (e *EmbeddingServiceError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s: %s", ErrEmbeddingProviderError.Error(), e.Detail)
	}
	return fmt.Sprintf("%s: status %d: %s", ErrEmbeddingProviderError.Error(), e.Status, e.Detail)
}

func (e *EmbeddingServiceError) Unwrap() error { return ErrEmbeddingProviderError }

// NewEmbeddingServiceError creates an embedding service error.
func NewEmbeddingServiceError(status int, detail string) error {
	return &EmbeddingServiceError{Status: status, Detail: detail}
}

// VectorSearchError wraps a failed candidate lookup for a single query variant.
type VectorSearchError struct {
	Query string
	Err   error
}

func (e *VectorSearchError) Error() string {
	return fmt.Sprintf("%s for %q: %v", ErrVectorSearch.Error(), e.Query, e.Err)
}

// Unwrap exposes both the sentinel and the underlying cause to errors.Is/As.
func (e *VectorSearchError) Unwrap() []error { return []error{ErrVectorSearch, e.Err} }
