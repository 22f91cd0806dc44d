package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/MKhiriev/go-api-template/internal/logger"
	"github.com/MKhiriev/go-api-template/models"
)

// heroRepository is the SQL-backed implementation of [HeroRepository].
// List filtering is composed with squirrel so the data and count queries
// are always generated from the same predicate set.
type heroRepository struct {
	*DB
	logger *logger.Logger
}

// NewHeroRepository constructs a [HeroRepository] backed by the provided
// database connection and logger.
func NewHeroRepository(db *DB, logger *logger.Logger) HeroRepository {
	logger.Debug().Msg("creating hero repository")
	return &heroRepository{
		DB:     db,
		logger: logger,
	}
}

func scanHero(row interface{ Scan(...any) error }, hero *models.Hero) error {
	return row.Scan(
		&hero.ID,
		&hero.Name,
		&hero.SecretName,
		&hero.Age,
		&hero.Description,
		&hero.PowerLevel,
		&hero.IsActive,
		&hero.AvatarURL,
		&hero.Team,
		&hero.Abilities,
		&hero.Weakness,
		&hero.CreatedAt,
		&hero.UpdatedAt,
	)
}

func heroUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.UniqueViolation
	}
	return sqliteUniqueViolation(err)
}

// CreateHero persists a new hero row and returns it with server-assigned
// fields. A unique violation on the name index maps to
// [ErrHeroNameAlreadyExists].
func (r *heroRepository) CreateHero(ctx context.Context, hero models.Hero) (models.Hero, error) {
	log := logger.FromContext(ctx)

	row := r.DB.QueryRowContext(ctx, createHero,
		hero.Name, hero.SecretName, hero.Age, hero.Description, hero.PowerLevel,
		hero.IsActive, hero.AvatarURL, hero.Team, hero.Abilities, hero.Weakness, time.Now().UTC())

	var created models.Hero
	if err := scanHero(row, &created); err != nil {
		if heroUniqueViolation(err) {
			log.Err(err).Str("func", "*heroRepository.CreateHero").Str("name", hero.Name).Msg("unique constraint violated")
			return models.Hero{}, ErrHeroNameAlreadyExists
		}
		log.Err(err).Str("func", "*heroRepository.CreateHero").Msg("error: scanning error")
		return models.Hero{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return created, nil
}

// GetHeroByID retrieves one hero row by primary key.
// Returns [ErrHeroNotFound] when no row matches.
func (r *heroRepository) GetHeroByID(ctx context.Context, heroID int64) (models.Hero, error) {
	log := logger.FromContext(ctx)

	var hero models.Hero
	row := r.DB.QueryRowContext(ctx, getHeroByID, heroID)
	if err := scanHero(row, &hero); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Hero{}, ErrHeroNotFound
		}
		log.Err(err).Str("func", "*heroRepository.GetHeroByID").Int64("hero_id", heroID).Msg("error: scanning error")
		return models.Hero{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return hero, nil
}

// GetHeroByName retrieves the first hero whose name contains the given
// fragment, case-insensitively.
func (r *heroRepository) GetHeroByName(ctx context.Context, name string) (models.Hero, error) {
	log := logger.FromContext(ctx)

	var hero models.Hero
	row := r.DB.QueryRowContext(ctx, getHeroByFuzzyName, "%"+name+"%")
	if err := scanHero(row, &hero); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Hero{}, ErrHeroNotFound
		}
		log.Err(err).Str("func", "*heroRepository.GetHeroByName").Str("name", name).Msg("error: scanning error")
		return models.Hero{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return hero, nil
}

// ListHeroes returns one page of heroes matching filter plus the total
// count of matching rows. Both queries are built from the same predicates
// (see heroFilterConditions), so total and items cannot disagree.
func (r *heroRepository) ListHeroes(ctx context.Context, filter models.HeroFilter, params models.PaginationParams) ([]models.Hero, int64, error) {
	log := logger.FromContext(ctx)

	countQuery, countArgs, err := buildCountHeroesQuery(filter)
	if err != nil {
		log.Err(err).Str("func", "*heroRepository.ListHeroes").Msg("failed to build count query")
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var total int64
	if err = r.DB.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		log.Err(err).Str("func", "*heroRepository.ListHeroes").Msg("failed to count heroes")
		return nil, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	listQuery, listArgs, err := buildListHeroesQuery(filter, params)
	if err != nil {
		log.Err(err).Str("func", "*heroRepository.ListHeroes").Msg("failed to build list query")
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, listQuery, listArgs...)
	if err != nil {
		log.Err(err).Str("func", "*heroRepository.ListHeroes").Msg("failed to execute query for listing heroes")
		return nil, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	heroes := make([]models.Hero, 0, params.Limit())
	for rows.Next() {
		var hero models.Hero
		if scanErr := scanHero(rows, &hero); scanErr != nil {
			log.Err(scanErr).Str("func", "*heroRepository.ListHeroes").Msg("failed to scan hero row")
			return nil, 0, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		heroes = append(heroes, hero)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "*heroRepository.ListHeroes").Msg("error occurred during rows iteration")
		return nil, 0, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return heroes, total, nil
}

// UpdateHero applies a partial update: only fields present in update are
// written. Returns the updated row, [ErrHeroNotFound] when the id does not
// exist, or [ErrHeroNameAlreadyExists] when a renamed hero collides.
func (r *heroRepository) UpdateHero(ctx context.Context, heroID int64, update models.HeroUpdate) (models.Hero, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateHeroQuery(heroID, update, time.Now().UTC())
	if err != nil {
		log.Err(err).Str("func", "*heroRepository.UpdateHero").Int64("hero_id", heroID).Msg("failed to build update query")
		return models.Hero{}, err
	}

	var hero models.Hero
	row := r.DB.QueryRowContext(ctx, query, args...)
	if err = scanHero(row, &hero); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Hero{}, ErrHeroNotFound
		}
		if heroUniqueViolation(err) {
			log.Err(err).Str("func", "*heroRepository.UpdateHero").Int64("hero_id", heroID).Msg("unique constraint violated")
			return models.Hero{}, ErrHeroNameAlreadyExists
		}
		log.Err(err).Str("func", "*heroRepository.UpdateHero").Int64("hero_id", heroID).Msg("failed to execute update")
		return models.Hero{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return hero, nil
}

// DeleteHero removes the row permanently (hard delete, unlike users).
func (r *heroRepository) DeleteHero(ctx context.Context, heroID int64) error {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, deleteHero, heroID)
	if err != nil {
		log.Err(err).Str("func", "*heroRepository.DeleteHero").Int64("hero_id", heroID).Msg("failed to execute delete")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrHeroNotFound
	}

	return nil
}

// SetHeroActive toggles is_active only, leaving every other column
// untouched, and returns the updated row.
func (r *heroRepository) SetHeroActive(ctx context.Context, heroID int64, active bool) (models.Hero, error) {
	log := logger.FromContext(ctx)

	var hero models.Hero
	row := r.DB.QueryRowContext(ctx, setHeroActive, heroID, active, time.Now().UTC())
	if err := scanHero(row, &hero); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Hero{}, ErrHeroNotFound
		}
		log.Err(err).Str("func", "*heroRepository.SetHeroActive").Int64("hero_id", heroID).Msg("failed to toggle active flag")
		return models.Hero{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return hero, nil
}

// HeroNameExists reports whether a hero named name exists, optionally
// excluding one row by id (pass 0 to check all rows). The comparison is
// exact and case-sensitive.
func (r *heroRepository) HeroNameExists(ctx context.Context, name string, excludeID int64) (bool, error) {
	var exists bool
	var err error

	if excludeID > 0 {
		err = r.DB.QueryRowContext(ctx, heroNameExistsExcludingID, name, excludeID).Scan(&exists)
	} else {
		err = r.DB.QueryRowContext(ctx, heroNameExists, name).Scan(&exists)
	}
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return exists, nil
}

// ListTeams returns the distinct non-null team names among active heroes.
func (r *heroRepository) ListTeams(ctx context.Context) ([]string, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, listActiveTeams)
	if err != nil {
		log.Err(err).Str("func", "*heroRepository.ListTeams").Msg("failed to execute query for listing teams")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	teams := make([]string, 0, 8)
	for rows.Next() {
		var team string
		if scanErr := rows.Scan(&team); scanErr != nil {
			log.Err(scanErr).Str("func", "*heroRepository.ListTeams").Msg("failed to scan team row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		if team != "" {
			teams = append(teams, team)
		}
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "*heroRepository.ListTeams").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return teams, nil
}

// GetPowerStats aggregates min/max/avg power level and the count over
// active heroes. With no active heroes MinPower/MaxPower are nil and
// AvgPower is 0.
func (r *heroRepository) GetPowerStats(ctx context.Context) (models.PowerStats, error) {
	log := logger.FromContext(ctx)

	var (
		minPower sql.NullInt64
		maxPower sql.NullInt64
		avgPower sql.NullFloat64
		total    int64
	)

	row := r.DB.QueryRowContext(ctx, activeHeroPowerStats)
	if err := row.Scan(&minPower, &maxPower, &avgPower, &total); err != nil {
		log.Err(err).Str("func", "*heroRepository.GetPowerStats").Msg("failed to scan power stats")
		return models.PowerStats{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	stats := models.PowerStats{TotalHeroes: total}
	if minPower.Valid {
		v := int(minPower.Int64)
		stats.MinPower = &v
	}
	if maxPower.Valid {
		v := int(maxPower.Int64)
		stats.MaxPower = &v
	}
	if avgPower.Valid {
		stats.AvgPower = avgPower.Float64
	}

	return stats, nil
}

// CountHeroesInPowerRange counts active heroes whose power level falls in
// the inclusive [minPower, maxPower] range.
func (r *heroRepository) CountHeroesInPowerRange(ctx context.Context, minPower, maxPower int) (int64, error) {
	var count int64
	if err := r.DB.QueryRowContext(ctx, countActiveHeroesInPowerRange, minPower, maxPower).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return count, nil
}
