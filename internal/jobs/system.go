package jobs

import (
	"context"

	"github.com/google/uuid"

	"github.com/mcggEz/gradalyze/pkg/pagination"
)

// System defines the public contract for job domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Job], error)

	Find(ctx context.Context, id uuid.UUID) (*Job, error)
	Create(ctx context.Context, cmd CreateCommand) (*Job, error)

	// RequestScrape queues a corpus refresh for the given source and asks
	// the engine to run it. A source already pending is not queued twice.
	RequestScrape(ctx context.Context, source string) (*ScrapeReceipt, error)
}
