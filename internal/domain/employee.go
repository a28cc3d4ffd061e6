package domain

import "time"

// Employee is an assignee that can be set as a task's responsible.
type Employee struct {
	ID        string
	Name      string
	Team      string
	Color     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Member is an entry in the local member list. Session mechanics live
// outside this core; only the records are kept here.
type Member struct {
	ID        string
	Name      string
	Role      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
