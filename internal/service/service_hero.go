package service

import (
	"context"
	"fmt"
	"math"

	"github.com/MKhiriev/go-api-template/internal/logger"
	"github.com/MKhiriev/go-api-template/internal/store"
	"github.com/MKhiriev/go-api-template/models"
)

// powerBucketBounds fixes the histogram ranges of the power-distribution
// report. Buckets are inclusive on both ends and cover 1-100 without gaps.
var powerBucketBounds = []struct {
	min, max int
	label    string
}{
	{1, 20, "Low"},
	{21, 50, "Medium"},
	{51, 80, "High"},
	{81, 100, "Legendary"},
}

// heroService is the concrete implementation of HeroService.
type heroService struct {
	heroRepository store.HeroRepository
	logger         *logger.Logger
}

// NewHeroService constructs a HeroService on top of the given repository.
func NewHeroService(heroRepository store.HeroRepository, logger *logger.Logger) HeroService {
	return &heroService{
		heroRepository: heroRepository,
		logger:         logger,
	}
}

// CreateHero registers a new hero.
//
// Name and secret identity are title-cased before validation so the
// uniqueness check and the stored row agree on casing. A hero whose
// title-cased name is already taken is rejected with
// store.ErrHeroNameAlreadyExists.
func (s *heroService) CreateHero(ctx context.Context, create models.HeroCreate) (models.Hero, error) {
	log := logger.FromContext(ctx)

	create.Normalize()
	if errs := create.Validate(); len(errs) > 0 {
		log.Error().Str("name", create.Name).Any("errors", errs).Msg("hero payload failed validation")
		return models.Hero{}, &ValidationFailedError{Errors: errs}
	}

	taken, err := s.heroRepository.HeroNameExists(ctx, create.Name, 0)
	if err != nil {
		log.Err(err).Str("name", create.Name).Msg("hero name uniqueness check ended with error")
		return models.Hero{}, fmt.Errorf("hero name uniqueness check ended with error: %w", err)
	}
	if taken {
		return models.Hero{}, store.ErrHeroNameAlreadyExists
	}

	abilities, err := models.EncodeAbilities(create.Abilities)
	if err != nil {
		log.Err(err).Str("name", create.Name).Msg("abilities encoding ended with error")
		return models.Hero{}, fmt.Errorf("abilities encoding ended with error: %w", err)
	}

	hero := models.Hero{
		Name:        create.Name,
		SecretName:  create.SecretName,
		Age:         create.Age,
		Description: create.Description,
		PowerLevel:  1,
		IsActive:    true,
		AvatarURL:   create.AvatarURL,
		Team:        create.Team,
		Abilities:   abilities,
		Weakness:    create.Weakness,
	}
	if create.PowerLevel != nil {
		hero.PowerLevel = *create.PowerLevel
	}
	if create.IsActive != nil {
		hero.IsActive = *create.IsActive
	}

	createdHero, err := s.heroRepository.CreateHero(ctx, hero)
	if err != nil {
		log.Err(err).Str("name", create.Name).Msg("hero creation ended with error")
		return models.Hero{}, fmt.Errorf("hero creation ended with error: %w", err)
	}

	log.Debug().Int64("hero_id", createdHero.ID).Msg("hero created")
	return createdHero, nil
}

// GetHero returns one hero by id, active or not.
func (s *heroService) GetHero(ctx context.Context, heroID int64) (models.Hero, error) {
	log := logger.FromContext(ctx)

	hero, err := s.heroRepository.GetHeroByID(ctx, heroID)
	if err != nil {
		log.Err(err).Int64("hero_id", heroID).Msg("hero lookup ended with error")
		return models.Hero{}, fmt.Errorf("hero lookup ended with error: %w", err)
	}

	return hero, nil
}

// GetHeroByName returns the first hero whose name matches the query,
// case-insensitively and as a substring.
func (s *heroService) GetHeroByName(ctx context.Context, name string) (models.Hero, error) {
	log := logger.FromContext(ctx)

	hero, err := s.heroRepository.GetHeroByName(ctx, name)
	if err != nil {
		log.Err(err).Str("name", name).Msg("hero name lookup ended with error")
		return models.Hero{}, fmt.Errorf("hero name lookup ended with error: %w", err)
	}

	return hero, nil
}

// ListHeroes returns one page of heroes matching the filter, together
// with the total count of the same filtered set.
func (s *heroService) ListHeroes(ctx context.Context, filter models.HeroFilter, params models.PaginationParams) ([]models.Hero, int64, error) {
	log := logger.FromContext(ctx)

	heroes, total, err := s.heroRepository.ListHeroes(ctx, filter, params)
	if err != nil {
		log.Err(err).Msg("hero listing ended with error")
		return nil, 0, fmt.Errorf("hero listing ended with error: %w", err)
	}

	return heroes, total, nil
}

// UpdateHero applies a partial update to one hero.
//
// A present name is title-cased and re-checked for uniqueness against
// every other hero. An update with no fields set returns the current row
// untouched.
func (s *heroService) UpdateHero(ctx context.Context, heroID int64, update models.HeroUpdate) (models.Hero, error) {
	log := logger.FromContext(ctx)

	if update.IsEmpty() {
		return s.GetHero(ctx, heroID)
	}

	update.Normalize()
	if errs := update.Validate(); len(errs) > 0 {
		log.Error().Int64("hero_id", heroID).Any("errors", errs).Msg("hero update failed validation")
		return models.Hero{}, &ValidationFailedError{Errors: errs}
	}

	if update.Name != nil {
		taken, err := s.heroRepository.HeroNameExists(ctx, *update.Name, heroID)
		if err != nil {
			log.Err(err).Str("name", *update.Name).Msg("hero name uniqueness check ended with error")
			return models.Hero{}, fmt.Errorf("hero name uniqueness check ended with error: %w", err)
		}
		if taken {
			return models.Hero{}, store.ErrHeroNameAlreadyExists
		}
	}

	updatedHero, err := s.heroRepository.UpdateHero(ctx, heroID, update)
	if err != nil {
		log.Err(err).Int64("hero_id", heroID).Msg("hero update ended with error")
		return models.Hero{}, fmt.Errorf("hero update ended with error: %w", err)
	}

	return updatedHero, nil
}

// DeleteHero removes a hero row permanently.
func (s *heroService) DeleteHero(ctx context.Context, heroID int64) error {
	log := logger.FromContext(ctx)

	if err := s.heroRepository.DeleteHero(ctx, heroID); err != nil {
		log.Err(err).Int64("hero_id", heroID).Msg("hero deletion ended with error")
		return fmt.Errorf("hero deletion ended with error: %w", err)
	}

	log.Debug().Int64("hero_id", heroID).Msg("hero deleted")
	return nil
}

// SetHeroActive flips the active flag of one hero and returns the
// updated row.
func (s *heroService) SetHeroActive(ctx context.Context, heroID int64, active bool) (models.Hero, error) {
	log := logger.FromContext(ctx)

	hero, err := s.heroRepository.SetHeroActive(ctx, heroID, active)
	if err != nil {
		log.Err(err).Int64("hero_id", heroID).Bool("active", active).Msg("hero activation update ended with error")
		return models.Hero{}, fmt.Errorf("hero activation update ended with error: %w", err)
	}

	return hero, nil
}

// ListTeams returns the distinct team names of active heroes.
func (s *heroService) ListTeams(ctx context.Context) ([]string, error) {
	log := logger.FromContext(ctx)

	teams, err := s.heroRepository.ListTeams(ctx)
	if err != nil {
		log.Err(err).Msg("team listing ended with error")
		return nil, fmt.Errorf("team listing ended with error: %w", err)
	}

	return teams, nil
}

// GetPowerDistribution aggregates power-level statistics over active
// heroes and buckets them into the fixed Low/Medium/High/Legendary
// histogram. The average is rounded to two decimal places.
func (s *heroService) GetPowerDistribution(ctx context.Context) (models.PowerDistribution, error) {
	log := logger.FromContext(ctx)

	stats, err := s.heroRepository.GetPowerStats(ctx)
	if err != nil {
		log.Err(err).Msg("power statistics query ended with error")
		return models.PowerDistribution{}, fmt.Errorf("power statistics query ended with error: %w", err)
	}
	stats.AvgPower = math.Round(stats.AvgPower*100) / 100

	buckets := make([]models.PowerBucket, 0, len(powerBucketBounds))
	for _, bounds := range powerBucketBounds {
		count, err := s.heroRepository.CountHeroesInPowerRange(ctx, bounds.min, bounds.max)
		if err != nil {
			log.Err(err).Str("range", bounds.label).Msg("power bucket count ended with error")
			return models.PowerDistribution{}, fmt.Errorf("power bucket count ended with error: %w", err)
		}
		buckets = append(buckets, models.PowerBucket{
			Range: fmt.Sprintf("%d-%d", bounds.min, bounds.max),
			Label: bounds.label,
			Count: count,
		})
	}

	return models.PowerDistribution{Statistics: stats, Distribution: buckets}, nil
}
