package dto

import "github.com/kzhao/applytrack/internal/app/models"

// UniversityFilterRequest represents university catalog filter parameters.
type UniversityFilterRequest struct {
	Search            *string  `form:"search"`
	Country           *string  `form:"country"`
	State             *string  `form:"state"`
	MinRanking        *int     `form:"minRanking"`
	MaxRanking        *int     `form:"maxRanking"`
	MaxAcceptanceRate *float64 `form:"maxAcceptanceRate"`
	ApplicationSystem *string  `form:"applicationSystem"`
}

// UniversityListResponse is a page of catalog entries.
type UniversityListResponse struct {
	Universities []*models.University `json:"universities"`
	Pagination   PaginationInfo       `json:"pagination"`
}
