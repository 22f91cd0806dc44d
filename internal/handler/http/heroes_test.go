package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/go-api-template/internal/store"
	"github.com/MKhiriev/go-api-template/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateHeroEndpoint_Created(t *testing.T) {
	router, mocks := newTestRouter(t)

	abilities := `["flight","strength"]`
	mocks.heroes.createHeroFn = func(ctx context.Context, create models.HeroCreate) (models.Hero, error) {
		return models.Hero{
			ID:         4,
			Name:       create.Name,
			SecretName: create.SecretName,
			PowerLevel: 95,
			IsActive:   true,
			Abilities:  &abilities,
		}, nil
	}

	body := `{"name": "Superman", "secret_name": "Clark Kent", "power_level": 95, "abilities": ["flight", "strength"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/heroes/", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	response := decodeEnvelope(t, rec)
	assert.True(t, response.Success)
	assert.Equal(t, "Hero created successfully", response.Message)

	data, ok := response.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(4), data["id"])
	assert.Equal(t, []any{"flight", "strength"}, data["abilities"])
}

func TestCreateHeroEndpoint_DuplicateName(t *testing.T) {
	router, mocks := newTestRouter(t)
	mocks.heroes.createHeroFn = func(ctx context.Context, create models.HeroCreate) (models.Hero, error) {
		return models.Hero{}, store.ErrHeroNameAlreadyExists
	}

	body := `{"name": "Superman", "secret_name": "Clark Kent"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/heroes/", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
	response := decodeEnvelope(t, rec)
	assert.Equal(t, "Hero name already exists", response.Message)
	assert.Equal(t, models.ErrCodeIntegrityError, response.ErrorCode)
}

func TestListHeroesEndpoint_ParsesFilters(t *testing.T) {
	router, mocks := newTestRouter(t)

	var gotFilter models.HeroFilter
	mocks.heroes.listHeroesFn = func(ctx context.Context, filter models.HeroFilter, params models.PaginationParams) ([]models.Hero, int64, error) {
		gotFilter = filter
		return []models.Hero{{ID: 1, Name: "Superman"}}, 1, nil
	}

	target := "/api/v1/heroes/?active_only=false&team=Avengers&min_power_level=10&max_power_level=90&search=spider"
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, gotFilter.ActiveOnly)
	require.NotNil(t, gotFilter.Team)
	assert.Equal(t, "Avengers", *gotFilter.Team)
	require.NotNil(t, gotFilter.MinPowerLevel)
	assert.Equal(t, 10, *gotFilter.MinPowerLevel)
	require.NotNil(t, gotFilter.MaxPowerLevel)
	assert.Equal(t, 90, *gotFilter.MaxPowerLevel)
	require.NotNil(t, gotFilter.Search)
	assert.Equal(t, "spider", *gotFilter.Search)
}

func TestListHeroesEndpoint_DefaultsAndIgnoresMalformed(t *testing.T) {
	router, mocks := newTestRouter(t)

	var gotFilter models.HeroFilter
	mocks.heroes.listHeroesFn = func(ctx context.Context, filter models.HeroFilter, params models.PaginationParams) ([]models.Hero, int64, error) {
		gotFilter = filter
		return nil, 0, nil
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/heroes/?min_power_level=abc", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, gotFilter.ActiveOnly)
	assert.Nil(t, gotFilter.MinPowerLevel)
	assert.Nil(t, gotFilter.Team)
}

func TestListHeroesEndpoint_PageMathInPayload(t *testing.T) {
	router, mocks := newTestRouter(t)
	mocks.heroes.listHeroesFn = func(ctx context.Context, filter models.HeroFilter, params models.PaginationParams) ([]models.Hero, int64, error) {
		return []models.Hero{{ID: 1, Name: "Superman"}}, 45, nil
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/heroes/?page=2&size=20", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	response := decodeEnvelope(t, rec)
	data, ok := response.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(45), data["total"])
	assert.Equal(t, float64(2), data["page"])
	assert.Equal(t, float64(20), data["size"])
	assert.Equal(t, float64(3), data["pages"])
}

func TestGetHeroByNameEndpoint(t *testing.T) {
	router, mocks := newTestRouter(t)

	var gotName string
	mocks.heroes.getHeroByNameFn = func(ctx context.Context, name string) (models.Hero, error) {
		gotName = name
		return models.Hero{ID: 2, Name: "Superman"}, nil
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/heroes/name/super", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "super", gotName)
}

func TestGetHeroEndpoint_NotFound(t *testing.T) {
	router, mocks := newTestRouter(t)
	mocks.heroes.getHeroFn = func(ctx context.Context, heroID int64) (models.Hero, error) {
		return models.Hero{}, store.ErrHeroNotFound
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/heroes/42", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	response := decodeEnvelope(t, rec)
	assert.Equal(t, "Hero not found", response.Message)
	assert.Equal(t, models.ErrCodeNotFound, response.ErrorCode)
}

func TestActivateAndDeactivateHeroEndpoints(t *testing.T) {
	router, mocks := newTestRouter(t)

	var gotActive bool
	mocks.heroes.setHeroActiveFn = func(ctx context.Context, heroID int64, active bool) (models.Hero, error) {
		gotActive = active
		return models.Hero{ID: heroID, IsActive: active}, nil
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/heroes/3/activate", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, gotActive)
	assert.Equal(t, "Hero activated", decodeEnvelope(t, rec).Message)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/heroes/3/deactivate", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, gotActive)
	assert.Equal(t, "Hero deactivated", decodeEnvelope(t, rec).Message)
}

func TestDeleteHeroEndpoint(t *testing.T) {
	router, mocks := newTestRouter(t)

	var gotID int64
	mocks.heroes.deleteHeroFn = func(ctx context.Context, heroID int64) error {
		gotID = heroID
		return nil
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/heroes/9", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(9), gotID)
	response := decodeEnvelope(t, rec)
	assert.Nil(t, response.Data)
	assert.Equal(t, "Hero deleted successfully", response.Message)
}

func TestListTeamsEndpoint(t *testing.T) {
	router, mocks := newTestRouter(t)
	mocks.heroes.listTeamsFn = func(ctx context.Context) ([]string, error) {
		return []string{"Avengers", "Justice League"}, nil
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/heroes/teams/list", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	response := decodeEnvelope(t, rec)
	assert.Equal(t, []any{"Avengers", "Justice League"}, response.Data)
}

func TestPowerDistributionEndpoint(t *testing.T) {
	router, mocks := newTestRouter(t)

	minPower, maxPower := 10, 95
	mocks.heroes.getPowerDistributionFn = func(ctx context.Context) (models.PowerDistribution, error) {
		return models.PowerDistribution{
			Statistics: models.PowerStats{MinPower: &minPower, MaxPower: &maxPower, AvgPower: 47.33, TotalHeroes: 6},
			Distribution: []models.PowerBucket{
				{Range: "1-20", Label: "Low", Count: 1},
				{Range: "21-50", Label: "Medium", Count: 2},
				{Range: "51-80", Label: "High", Count: 1},
				{Range: "81-100", Label: "Legendary", Count: 2},
			},
		}, nil
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/heroes/stats/power-distribution", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	response := decodeEnvelope(t, rec)
	data, ok := response.Data.(map[string]any)
	require.True(t, ok)

	stats, ok := data["statistics"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(47.33), stats["avg_power"])

	buckets, ok := data["distribution"].([]any)
	require.True(t, ok)
	require.Len(t, buckets, 4)
}

func TestUpdateHeroEndpoint_NonNumericID(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/heroes/nope", strings.NewReader(`{"name": "X"}`))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	response := decodeEnvelope(t, rec)
	require.Len(t, response.Errors, 1)
	assert.Equal(t, "hero_id", response.Errors[0].Field)
}
