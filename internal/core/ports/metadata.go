package ports

import (
	"context"

	"github.com/lorabridge/lorabridge/internal/core/domain"
)

// ListResult is a cached list response. Stale is set when the value was
// served from an expired cache entry under the explicit allow-stale
// policy, so callers can warn instead of silently trusting it.
type ListResult struct {
	Items []domain.ModelInfo
	Stale bool
}

// MetadataClient fetches descriptive metadata from the remote instance.
// Implementations must degrade, not block: a failed fetch surfaces an
// error the caller can turn into "no metadata available".
//
//go:generate mockgen -source=metadata.go -destination=mocks/mock_metadata.go -package=mocks
type MetadataClient interface {
	// ListLoras returns the full remote lora list, cached with a TTL.
	ListLoras(ctx context.Context) (ListResult, error)

	// ListCheckpoints returns the full remote checkpoint list, cached with a TTL.
	ListCheckpoints(ctx context.Context) (ListResult, error)

	// GetLoraInfo resolves a lora name to a local-relative path and its
	// trigger words, falling back to the per-name endpoint when the
	// cached list has no match.
	GetLoraInfo(ctx context.Context, name string) (domain.LoraInfo, error)

	// TriggerWords returns the trigger words for a single lora name.
	TriggerWords(ctx context.Context, name string) ([]string, error)

	// LoraHash returns the SHA-256 for a lora by name.
	LoraHash(ctx context.Context, name string) (string, error)

	// CheckpointHash returns the SHA-256 for a checkpoint by name.
	CheckpointHash(ctx context.Context, name string) (string, error)

	// RandomSample asks the remote to draw a random, pool-filtered selection.
	RandomSample(ctx context.Context, req domain.SampleRequest) (domain.EntryList, error)

	// CyclerList asks the remote for an ordered, pool-filtered list.
	CyclerList(ctx context.Context, req domain.CyclerRequest) ([]domain.ModelInfo, error)
}
