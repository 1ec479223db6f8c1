package seed

import (
	"context"

	"github.com/kzhao/applytrack/internal/app/models"
	"github.com/kzhao/applytrack/internal/app/repositories"
	"github.com/kzhao/applytrack/internal/pkg/logger"
)

// SeedUniversities loads the starter university catalog. Upserts by name, so
// re-running is safe and manual catalog edits to other fields survive only
// until the next seed.
func SeedUniversities(ctx context.Context, uniRepo repositories.IUniversityRepository) error {
	for _, uni := range starterCatalog() {
		if err := uniRepo.Upsert(ctx, uni); err != nil {
			return err
		}
	}

	logger.Info().Int("count", len(starterCatalog())).Msg("University catalog seeded")
	return nil
}

func starterCatalog() []*models.University {
	return []*models.University{
		newUniversity("Harvard University", "Massachusetts", "Cambridge", 2, 3.4, "Common App", 54269, 54269, 75,
			`{"early_action":"2024-11-01","regular_decision":"2025-01-01"}`),
		newUniversity("Stanford University", "California", "Stanford", 3, 3.9, "Common App", 56169, 56169, 90,
			`{"early_action":"2024-11-01","regular_decision":"2025-01-02"}`),
		newUniversity("Massachusetts Institute of Technology", "Massachusetts", "Cambridge", 2, 4.1, "Direct", 53790, 53790, 75,
			`{"early_action":"2024-11-01","regular_decision":"2025-01-01"}`),
		newUniversity("University of California, Berkeley", "California", "Berkeley", 20, 14.5, "UC Application", 14226, 44008, 70,
			`{"regular_decision":"2024-11-30"}`),
		newUniversity("University of California, Los Angeles", "California", "Los Angeles", 20, 10.8, "UC Application", 13804, 43473, 70,
			`{"regular_decision":"2024-11-30"}`),
		newUniversity("Princeton University", "New Jersey", "Princeton", 1, 5.8, "Common App", 56010, 56010, 65,
			`{"early_decision":"2024-11-01","regular_decision":"2025-01-01"}`),
		newUniversity("Yale University", "Connecticut", "New Haven", 5, 4.6, "Common App", 62250, 62250, 80,
			`{"early_action":"2024-11-01","regular_decision":"2025-01-02"}`),
		newUniversity("Columbia University", "New York", "New York", 12, 3.9, "Common App", 65524, 65524, 85,
			`{"early_decision":"2024-11-01","regular_decision":"2025-01-01"}`),
		newUniversity("University of Chicago", "Illinois", "Chicago", 6, 7.4, "Common App", 62940, 62940, 75,
			`{"early_decision":"2024-11-01","early_action":"2024-11-01","regular_decision":"2025-01-02"}`),
		newUniversity("University of Pennsylvania", "Pennsylvania", "Philadelphia", 6, 5.9, "Common App", 63452, 63452, 75,
			`{"early_decision":"2024-11-01","regular_decision":"2025-01-05"}`),
	}
}

func newUniversity(name, state, city string, ranking int, acceptanceRate float64, system string, tuitionIn, tuitionOut, fee int, deadlines string) *models.University {
	return &models.University{
		Name:              name,
		Country:           "United States",
		State:             &state,
		City:              &city,
		USNewsRanking:     &ranking,
		AcceptanceRate:    &acceptanceRate,
		ApplicationSystem: &system,
		TuitionInState:    &tuitionIn,
		TuitionOutState:   &tuitionOut,
		ApplicationFee:    &fee,
		Deadlines:         &deadlines,
	}
}
