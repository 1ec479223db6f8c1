package models

// Student defines the student role profile based on the 'students' table.
// TargetCountries and IntendedMajors are JSON-serialized text blobs whose
// internal shape is a client concern.
type Student struct {
	ID              int64    `json:"id" db:"id"`
	UserID          int64    `json:"userId" db:"user_id"`
	Name            string   `json:"name" db:"name"`
	GraduationYear  *int     `json:"graduationYear,omitempty" db:"graduation_year"`
	GPA             *float64 `json:"gpa,omitempty" db:"gpa"`
	SATScore        *int     `json:"satScore,omitempty" db:"sat_score"`
	ACTScore        *int     `json:"actScore,omitempty" db:"act_score"`
	TargetCountries *string  `json:"targetCountries,omitempty" db:"target_countries"`
	IntendedMajors  *string  `json:"intendedMajors,omitempty" db:"intended_majors"`

	// Relations (populated when needed)
	User         *User          `json:"user,omitempty"`
	Applications []*Application `json:"applications,omitempty"`
}
