package domain

import "time"

// Website is a scraped source of leads. Rows are written by the scraper; this service only reads them.
type Website struct {
	ID            int64      `json:"id"`
	URL           string     `json:"url"`
	Description   *string    `json:"description"`
	LastScrapedAt *time.Time `json:"lastScrapedAt"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}
