package domain

import "time"

// Department groups careers under an academic area.
type Department struct {
	ID        int64
	Name      string
	Code      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Career is a degree program offered by a department.
type Career struct {
	ID           int64
	Name         string
	Code         string
	DepartmentID int64
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Cycle is an academic term within a career plan.
type Cycle struct {
	ID       int64
	Number   int
	Name     string
	CareerID int64
}

// Section is a cohort within a career and cycle.
type Section struct {
	ID       int64
	Name     string
	Code     string
	Cycle    int
	CareerID int64
}
