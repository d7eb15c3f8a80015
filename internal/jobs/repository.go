package jobs

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/mcggEz/gradalyze/internal/engine"
	"github.com/mcggEz/gradalyze/pkg/pagination"
	"github.com/mcggEz/gradalyze/pkg/query"
	"github.com/mcggEz/gradalyze/pkg/repository"
)

const (
	scrapeQueueKey   = "jobs:scrape:queue"
	scrapePendingKey = "jobs:scrape:pending"
)

type repo struct {
	db         *sql.DB
	queue      *redis.Client
	engine     engine.System
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a job repository implementing the System interface.
func New(
	db *sql.DB,
	queue *redis.Client,
	eng engine.System,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		queue:      queue,
		engine:     eng,
		logger:     logger.With("system", "jobs"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Job], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Title", "Company", "Location")

	filters.Apply(qb)

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count jobs: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	found, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanJob)
	if err != nil {
		return nil, fmt.Errorf("query jobs: %w", err)
	}

	result := pagination.NewPageResult(found, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Job, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	j, err := repository.QueryOne(ctx, r.db, q, args, scanJob)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &j, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Job, error) {
	if cmd.Title == "" || cmd.Company == "" {
		return nil, fmt.Errorf("%w: title and company are required", ErrInvalidInput)
	}

	q := `
		INSERT INTO jobs(id, title, company, location, description, url, source, posted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, title, company, location, description, url, source, posted_at, created_at`

	insertArgs := []any{
		uuid.New(),
		cmd.Title,
		cmd.Company,
		cmd.Location,
		cmd.Description,
		cmd.URL,
		cmd.Source,
		cmd.PostedAt,
	}

	j, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Job, error) {
		return repository.QueryOne(ctx, tx, q, insertArgs, scanJob)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("job ingested", "id", j.ID, "title", j.Title, "source", j.Source)
	return &j, nil
}

func (r *repo) RequestScrape(ctx context.Context, source string) (*ScrapeReceipt, error) {
	if source == "" {
		return nil, fmt.Errorf("%w: source is required", ErrInvalidInput)
	}

	added, err := r.queue.SAdd(ctx, scrapePendingKey, source).Result()
	if err != nil {
		return nil, fmt.Errorf("mark scrape pending: %w", err)
	}
	if added == 0 {
		r.logger.Info("scrape already pending", "source", source)
		return &ScrapeReceipt{Source: source, Queued: false}, nil
	}

	payload, err := json.Marshal(map[string]any{
		"source":       source,
		"requested_at": time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal scrape request: %w", err)
	}

	if err := r.queue.LPush(ctx, scrapeQueueKey, payload).Err(); err != nil {
		r.unmarkPending(ctx, source)
		return nil, fmt.Errorf("queue scrape request: %w", err)
	}

	if err := r.engine.ScrapeJobs(ctx, source); err != nil {
		// The engine refused the run; clear the pending mark so the user
		// can reissue the request.
		r.unmarkPending(ctx, source)
		return nil, err
	}

	r.logger.Info("scrape queued", "source", source)
	return &ScrapeReceipt{Source: source, Queued: true}, nil
}

func (r *repo) unmarkPending(ctx context.Context, source string) {
	if err := r.queue.SRem(ctx, scrapePendingKey, source).Err(); err != nil {
		r.logger.Warn("failed to clear pending scrape mark", "source", source, "error", err)
	}
}
