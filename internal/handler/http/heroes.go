package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-api-template/internal/logger"
	"github.com/MKhiriev/go-api-template/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) createHero(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var create models.HeroCreate
	if err := json.NewDecoder(r.Body).Decode(&create); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeError(w, http.StatusBadRequest, "Invalid JSON was passed", "")
		return
	}

	hero, err := h.services.HeroService.CreateHero(ctx, create)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusCreated, models.NewHeroResponse(hero), "Hero created successfully")
}

func (h *Handler) listHeroes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter := heroFilterFromQuery(r)
	params := paginationFromQuery(r)

	heroes, total, err := h.services.HeroService.ListHeroes(ctx, filter, params)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	pagination := models.NewPagination(total, params)
	data := models.HeroListResponse{
		Heroes: models.NewHeroResponses(heroes),
		Total:  total,
		Page:   pagination.Page,
		Size:   pagination.Size,
		Pages:  pagination.Pages,
	}
	writeSuccess(w, http.StatusOK, data, "Heroes retrieved successfully")
}

func (h *Handler) getHero(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	heroID, ok := h.heroIDFromURL(w, r)
	if !ok {
		return
	}

	hero, err := h.services.HeroService.GetHero(ctx, heroID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, models.NewHeroResponse(hero), "Hero retrieved successfully")
}

func (h *Handler) getHeroByName(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	hero, err := h.services.HeroService.GetHeroByName(ctx, chi.URLParam(r, "heroName"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, models.NewHeroResponse(hero), "Hero retrieved successfully")
}

func (h *Handler) updateHero(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	heroID, ok := h.heroIDFromURL(w, r)
	if !ok {
		return
	}

	var update models.HeroUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeError(w, http.StatusBadRequest, "Invalid JSON was passed", "")
		return
	}

	hero, err := h.services.HeroService.UpdateHero(ctx, heroID, update)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, models.NewHeroResponse(hero), "Hero updated successfully")
}

func (h *Handler) deleteHero(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	heroID, ok := h.heroIDFromURL(w, r)
	if !ok {
		return
	}

	if err := h.services.HeroService.DeleteHero(ctx, heroID); err != nil {
		h.respondError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, nil, "Hero deleted successfully")
}

func (h *Handler) activateHero(w http.ResponseWriter, r *http.Request) {
	h.setHeroActive(w, r, true, "Hero activated")
}

func (h *Handler) deactivateHero(w http.ResponseWriter, r *http.Request) {
	h.setHeroActive(w, r, false, "Hero deactivated")
}

func (h *Handler) setHeroActive(w http.ResponseWriter, r *http.Request, active bool, message string) {
	ctx := r.Context()

	heroID, ok := h.heroIDFromURL(w, r)
	if !ok {
		return
	}

	hero, err := h.services.HeroService.SetHeroActive(ctx, heroID, active)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, models.NewHeroResponse(hero), message)
}

func (h *Handler) listTeams(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	teams, err := h.services.HeroService.ListTeams(ctx)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, teams, "Teams retrieved successfully")
}

func (h *Handler) powerDistribution(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	distribution, err := h.services.HeroService.GetPowerDistribution(ctx)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, distribution, "Power distribution retrieved successfully")
}

func (h *Handler) heroIDFromURL(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "heroID")
	heroID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeValidationErrors(w, "Validation failed", []models.ValidationError{
			{Field: "hero_id", Message: "hero id must be an integer", Value: raw},
		})
		return 0, false
	}
	return heroID, true
}

// heroFilterFromQuery assembles the AND-combined list filters. active_only
// defaults to true; malformed numeric values are ignored rather than
// rejected.
func heroFilterFromQuery(r *http.Request) models.HeroFilter {
	query := r.URL.Query()

	filter := models.HeroFilter{ActiveOnly: true}
	if raw := query.Get("active_only"); raw != "" {
		if parsed, err := strconv.ParseBool(raw); err == nil {
			filter.ActiveOnly = parsed
		}
	}
	if team := query.Get("team"); team != "" {
		filter.Team = &team
	}
	if raw := query.Get("min_power_level"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			filter.MinPowerLevel = &parsed
		}
	}
	if raw := query.Get("max_power_level"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			filter.MaxPowerLevel = &parsed
		}
	}
	if search := query.Get("search"); search != "" {
		filter.Search = &search
	}

	return filter
}
