package incidents

import (
	"github.com/JaimeStill/vigil/pkg/repository"
)

const columns = `id, tenant, storage_key, status, category, location, incident_date,
	incident_time, case_number, summary, explanation, is_clery, needs_more_info,
	requires_timely_warning, confidence, strategy, created_at, updated_at`

func scanIncident(s repository.Scanner) (Incident, error) {
	var i Incident
	err := s.Scan(
		&i.ID,
		&i.Tenant,
		&i.StorageKey,
		&i.Status,
		&i.Category,
		&i.Location,
		&i.Date,
		&i.Time,
		&i.CaseNumber,
		&i.Summary,
		&i.Explanation,
		&i.IsClery,
		&i.NeedsMoreInfo,
		&i.RequiresTimelyWarning,
		&i.Confidence,
		&i.Strategy,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}
