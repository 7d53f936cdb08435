package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// EmploymentType classifies how a job post is contracted.
type EmploymentType string

const (
	EmploymentFullTime EmploymentType = "full_time"
	EmploymentPartTime EmploymentType = "part_time"
	EmploymentContract EmploymentType = "contract"
)

func (e EmploymentType) Valid() bool {
	switch e {
	case EmploymentFullTime, EmploymentPartTime, EmploymentContract:
		return true
	}
	return false
}

type JobPost struct {
	ID                      int64          `db:"id" json:"id"`
	Title                   string         `db:"title" json:"title"`
	CompanyIntro            string         `db:"company_intro" json:"company_intro"`
	Position                string         `db:"position" json:"position"`
	Location                string         `db:"location" json:"location"`
	EmploymentType          EmploymentType `db:"employment_type" json:"employment_type"`
	Department              string         `db:"department" json:"department"`
	PositionSummary         string         `db:"position_summary" json:"position_summary"`
	KeyResponsibilities     types.JSONText `db:"key_responsibilities" json:"key_responsibilities"`
	RequiredQualifications  types.JSONText `db:"required_qualifications" json:"required_qualifications"`
	PreferredQualifications types.JSONText `db:"preferred_qualifications" json:"preferred_qualifications"`
	Addons                  types.JSONText `db:"addons" json:"addons,omitempty"`
	WhyJoinUs               string         `db:"why_join_us" json:"why_join_us"`
	CreatedAt               time.Time      `db:"created_at" json:"created_at"`
}
