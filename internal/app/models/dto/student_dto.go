package dto

// UpdateProfileRequest represents the student profile update payload.
// TargetCountries and IntendedMajors are stored as opaque JSON blobs.
type UpdateProfileRequest struct {
	Name            *string  `json:"name,omitempty"`
	GraduationYear  *int     `json:"graduationYear,omitempty"`
	GPA             *float64 `json:"gpa,omitempty"`
	SATScore        *int     `json:"satScore,omitempty"`
	ACTScore        *int     `json:"actScore,omitempty"`
	TargetCountries *string  `json:"targetCountries,omitempty"`
	IntendedMajors  *string  `json:"intendedMajors,omitempty"`
}
