package models

import "time"

// VisaType is the candidate's work-authorization category.
type VisaType string

const (
	VisaH1B   VisaType = "h1b"
	VisaL1    VisaType = "l1"
	VisaF1    VisaType = "f1"
	VisaOther VisaType = "other"
)

func (v VisaType) Valid() bool {
	switch v {
	case VisaH1B, VisaL1, VisaF1, VisaOther:
		return true
	}
	return false
}

type Candidate struct {
	ID                int64     `db:"id" json:"id"`
	JobPostID         int64     `db:"job_post_id" json:"job_post_id"`
	Name              string    `db:"name" json:"name"`
	CurrentLocation   string    `db:"current_location" json:"current_location"`
	Email             string    `db:"email" json:"email"`
	ContactNumber     string    `db:"contact_number" json:"contact_number"`
	SlotAvailability  time.Time `db:"slot_availability" json:"slot_availability"`
	RateCardHourly    float64   `db:"rate_card_hourly" json:"rate_card_hourly"`
	ExperienceYears   float64   `db:"experience_years" json:"experience_years"`
	VisaType          VisaType  `db:"visa_type" json:"visa_type"`
	WillingToRelocate bool      `db:"willing_to_relocate" json:"willing_to_relocate"`
	OverallGPTScore   float64   `db:"overall_gpt_score" json:"overall_gpt_score"`
	NoticePeriodDays  int       `db:"notice_period_days" json:"notice_period_days"`
	CVFileURL         string    `db:"cv_file_url" json:"cv_file_url"`
	Remarks           string    `db:"remarks" json:"remarks"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
}
