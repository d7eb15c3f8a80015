// Package jobs implements the job listing domain: the scraped posting corpus
// served to students and the Redis-backed scrape request queue.
package jobs

import (
	"time"

	"github.com/google/uuid"
)

// Job is one scraped job posting.
type Job struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location"`
	Description string     `json:"description"`
	URL         string     `json:"url"`
	Source      string     `json:"source"`
	PostedAt    *time.Time `json:"posted_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

// CreateCommand carries a posting to ingest.
type CreateCommand struct {
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location"`
	Description string     `json:"description"`
	URL         string     `json:"url"`
	Source      string     `json:"source"`
	PostedAt    *time.Time `json:"posted_at"`
}

// ScrapeReceipt reports the outcome of a scrape request.
type ScrapeReceipt struct {
	Source string `json:"source"`
	Queued bool   `json:"queued"`
}
