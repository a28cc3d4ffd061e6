package domain

import "time"

type Project struct {
	ID        string
	Name      string
	StartDate time.Time
	EndDate   time.Time
	Status    ProjectStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DisplayID returns a short identifier for listings.
func (p *Project) DisplayID() string {
	if len(p.ID) >= 8 {
		return p.ID[:8]
	}
	return p.ID
}
