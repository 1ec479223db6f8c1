package models

import "time"

// University is one catalog entry students apply to. Deadlines is a
// JSON-serialized map of plan name to date, kept opaque at this layer.
type University struct {
	ID                int64    `json:"id" db:"id"`
	Name              string   `json:"name" db:"name"`
	Country           string   `json:"country" db:"country"`
	State             *string  `json:"state,omitempty" db:"state"`
	City              *string  `json:"city,omitempty" db:"city"`
	USNewsRanking     *int     `json:"usNewsRanking,omitempty" db:"us_news_ranking"`
	AcceptanceRate    *float64 `json:"acceptanceRate,omitempty" db:"acceptance_rate"`
	ApplicationSystem *string  `json:"applicationSystem,omitempty" db:"application_system"`
	TuitionInState    *int     `json:"tuitionInState,omitempty" db:"tuition_in_state"`
	TuitionOutState   *int     `json:"tuitionOutState,omitempty" db:"tuition_out_state"`
	ApplicationFee    *int     `json:"applicationFee,omitempty" db:"application_fee"`
	Deadlines         *string  `json:"deadlines,omitempty" db:"deadlines"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
