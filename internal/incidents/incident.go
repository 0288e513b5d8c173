// Package incidents processes uploaded incident reports through the
// extraction and classification pipeline and persists the resulting fields.
package incidents

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/vigil/internal/catalog"
	"github.com/JaimeStill/vigil/internal/populator"
)

// Incident is the persisted incident record.
type Incident struct {
	ID                    uuid.UUID `json:"id"`
	Tenant                string    `json:"tenant"`
	StorageKey            string    `json:"storage_key"`
	Status                string    `json:"status"`
	Category              *string   `json:"category"`
	Location              *string   `json:"location"`
	Date                  *string   `json:"date"`
	Time                  *string   `json:"time"`
	CaseNumber            *string   `json:"case_number"`
	Summary               *string   `json:"summary"`
	Explanation           *string   `json:"explanation"`
	IsClery               bool      `json:"is_clery"`
	NeedsMoreInfo         bool      `json:"needs_more_info"`
	RequiresTimelyWarning bool      `json:"requires_timely_warning"`
	Confidence            *float64  `json:"confidence"`
	Strategy              *string   `json:"strategy"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// ProcessCommand is the request to run the pipeline for one incident.
type ProcessCommand struct {
	StorageKey string             `json:"storage_key"`
	Tenant     string             `json:"tenant"`
	Categories []catalog.Category `json:"categories"`
}

// Validate checks the command for required values.
func (c ProcessCommand) Validate() error {
	if strings.TrimSpace(c.StorageKey) == "" {
		return fmt.Errorf("%w: storage_key required", ErrInvalidCommand)
	}
	for i, cat := range c.Categories {
		if strings.TrimSpace(cat.Name) == "" {
			return fmt.Errorf("%w: category %d has no name", ErrInvalidCommand, i)
		}
	}
	return nil
}

// Result is the outcome of a successful pipeline run.
type Result struct {
	Incident *Incident        `json:"incident"`
	Fields   populator.Fields `json:"fields"`
	Strategy string           `json:"strategy"`
}
