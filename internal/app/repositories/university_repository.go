package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kzhao/applytrack/internal/app/models"
	"github.com/kzhao/applytrack/internal/app/models/dto"
	"github.com/kzhao/applytrack/internal/pkg/apperrors"
)

// IUniversityRepository defines the university catalog operations.
type IUniversityRepository interface {
	GetByID(ctx context.Context, id int64) (*models.University, error)
	List(ctx context.Context, filter dto.UniversityFilterRequest, offset, limit int) ([]*models.University, int64, error)
	Upsert(ctx context.Context, uni *models.University) error
}

// UniversityRepository manages the university catalog.
type UniversityRepository struct {
	db *pgxpool.Pool
}

// NewUniversityRepository creates a new UniversityRepository
func NewUniversityRepository(db *pgxpool.Pool) *UniversityRepository {
	return &UniversityRepository{
		db: db,
	}
}

// GetByID retrieves a catalog entry by ID
func (r *UniversityRepository) GetByID(ctx context.Context, id int64) (*models.University, error) {
	uni := &models.University{}
	err := r.db.QueryRow(ctx, `
		SELECT id, name, country, state, city, us_news_ranking, acceptance_rate,
		       application_system, tuition_in_state, tuition_out_state,
		       application_fee, deadlines, created_at
		FROM universities
		WHERE id = $1`,
		id).Scan(
		&uni.ID, &uni.Name, &uni.Country, &uni.State, &uni.City, &uni.USNewsRanking,
		&uni.AcceptanceRate, &uni.ApplicationSystem, &uni.TuitionInState,
		&uni.TuitionOutState, &uni.ApplicationFee, &uni.Deadlines, &uni.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUniversityNotFound
		}
		return nil, fmt.Errorf("error retrieving university: %w", err)
	}

	return uni, nil
}

// List retrieves a filtered page of the catalog ordered by ranking, together
// with the total match count.
func (r *UniversityRepository) List(ctx context.Context, filter dto.UniversityFilterRequest, offset, limit int) ([]*models.University, int64, error) {
	conditions := universityConditions(filter)

	countQuery, countArgs, err := psql.Select("COUNT(*)").
		From("universities").
		Where(conditions).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building university count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting universities: %w", err)
	}

	query, args, err := psql.Select(
		"id", "name", "country", "state", "city", "us_news_ranking", "acceptance_rate",
		"application_system", "tuition_in_state", "tuition_out_state",
		"application_fee", "deadlines", "created_at").
		From("universities").
		Where(conditions).
		OrderBy("us_news_ranking ASC NULLS LAST", "name ASC").
		Offset(uint64(offset)).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building university query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing universities: %w", err)
	}
	defer rows.Close()

	var unis []*models.University
	for rows.Next() {
		uni := &models.University{}
		err := rows.Scan(
			&uni.ID, &uni.Name, &uni.Country, &uni.State, &uni.City, &uni.USNewsRanking,
			&uni.AcceptanceRate, &uni.ApplicationSystem, &uni.TuitionInState,
			&uni.TuitionOutState, &uni.ApplicationFee, &uni.Deadlines, &uni.CreatedAt)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning university: %w", err)
		}
		unis = append(unis, uni)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating universities: %w", err)
	}

	return unis, total, nil
}

// Upsert inserts a catalog entry, updating it when the name already exists.
// Used by seeding.
func (r *UniversityRepository) Upsert(ctx context.Context, uni *models.University) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO universities (name, country, state, city, us_news_ranking, acceptance_rate,
			application_system, tuition_in_state, tuition_out_state, application_fee, deadlines)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (name) DO UPDATE
		SET country = EXCLUDED.country, state = EXCLUDED.state, city = EXCLUDED.city,
		    us_news_ranking = EXCLUDED.us_news_ranking,
		    acceptance_rate = EXCLUDED.acceptance_rate,
		    application_system = EXCLUDED.application_system,
		    tuition_in_state = EXCLUDED.tuition_in_state,
		    tuition_out_state = EXCLUDED.tuition_out_state,
		    application_fee = EXCLUDED.application_fee,
		    deadlines = EXCLUDED.deadlines`,
		uni.Name, uni.Country, uni.State, uni.City, uni.USNewsRanking,
		uni.AcceptanceRate, uni.ApplicationSystem, uni.TuitionInState,
		uni.TuitionOutState, uni.ApplicationFee, uni.Deadlines)

	if err != nil {
		return fmt.Errorf("error upserting university: %w", err)
	}

	return nil
}

func universityConditions(filter dto.UniversityFilterRequest) squirrel.And {
	conditions := squirrel.And{}

	if filter.Search != nil && *filter.Search != "" {
		conditions = append(conditions, squirrel.ILike{"name": "%" + *filter.Search + "%"})
	}
	if filter.Country != nil && *filter.Country != "" {
		conditions = append(conditions, squirrel.Eq{"country": *filter.Country})
	}
	if filter.State != nil && *filter.State != "" {
		conditions = append(conditions, squirrel.Eq{"state": *filter.State})
	}
	if filter.MinRanking != nil {
		conditions = append(conditions, squirrel.GtOrEq{"us_news_ranking": *filter.MinRanking})
	}
	if filter.MaxRanking != nil {
		conditions = append(conditions, squirrel.LtOrEq{"us_news_ranking": *filter.MaxRanking})
	}
	if filter.MaxAcceptanceRate != nil {
		conditions = append(conditions, squirrel.LtOrEq{"acceptance_rate": *filter.MaxAcceptanceRate})
	}
	if filter.ApplicationSystem != nil && *filter.ApplicationSystem != "" {
		conditions = append(conditions, squirrel.Eq{"application_system": *filter.ApplicationSystem})
	}

	return conditions
}
