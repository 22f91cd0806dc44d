package models

import (
	"encoding/json"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.Und)

// Hero is a row of the "heroes" table. Abilities is stored as a
// JSON-encoded string column, mirroring how the list arrives on the wire.
type Hero struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	SecretName  string     `json:"secret_name"`
	Age         *int       `json:"age,omitempty"`
	Description *string    `json:"description,omitempty"`
	PowerLevel  int        `json:"power_level"`
	IsActive    bool       `json:"is_active"`
	AvatarURL   *string    `json:"avatar_url,omitempty"`
	Team        *string    `json:"team,omitempty"`
	Abilities   *string    `json:"-"`
	Weakness    *string    `json:"weakness,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// HeroResponse is the wire representation of a hero. Abilities is decoded
// back into the ordered list that was supplied on create/update.
type HeroResponse struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	SecretName  string     `json:"secret_name"`
	Age         *int       `json:"age"`
	Description *string    `json:"description"`
	PowerLevel  int        `json:"power_level"`
	IsActive    bool       `json:"is_active"`
	AvatarURL   *string    `json:"avatar_url"`
	Team        *string    `json:"team"`
	Abilities   []string   `json:"abilities"`
	Weakness    *string    `json:"weakness"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

// NewHeroResponse maps a database row to its wire representation.
// An unparseable abilities column is reported as an empty list rather than
// failing the whole response.
func NewHeroResponse(h Hero) HeroResponse {
	var abilities []string
	if h.Abilities != nil && *h.Abilities != "" {
		_ = json.Unmarshal([]byte(*h.Abilities), &abilities)
	}

	return HeroResponse{
		ID:          h.ID,
		Name:        h.Name,
		SecretName:  h.SecretName,
		Age:         h.Age,
		Description: h.Description,
		PowerLevel:  h.PowerLevel,
		IsActive:    h.IsActive,
		AvatarURL:   h.AvatarURL,
		Team:        h.Team,
		Abilities:   abilities,
		Weakness:    h.Weakness,
		CreatedAt:   h.CreatedAt,
		UpdatedAt:   h.UpdatedAt,
	}
}

// NewHeroResponses maps a slice of rows, always returning a non-nil slice.
func NewHeroResponses(heroes []Hero) []HeroResponse {
	responses := make([]HeroResponse, 0, len(heroes))
	for _, h := range heroes {
		responses = append(responses, NewHeroResponse(h))
	}
	return responses
}

// HeroListResponse is the payload of GET /api/v1/heroes/.
type HeroListResponse struct {
	Heroes []HeroResponse `json:"heroes"`
	Total  int64          `json:"total"`
	Page   int            `json:"page"`
	Size   int            `json:"size"`
	Pages  int            `json:"pages"`
}

// HeroCreate is the request body of POST /api/v1/heroes/.
type HeroCreate struct {
	Name        string   `json:"name"`
	SecretName  string   `json:"secret_name"`
	Age         *int     `json:"age"`
	Description *string  `json:"description"`
	PowerLevel  *int     `json:"power_level"`
	IsActive    *bool    `json:"is_active"`
	AvatarURL   *string  `json:"avatar_url"`
	Team        *string  `json:"team"`
	Abilities   []string `json:"abilities"`
	Weakness    *string  `json:"weakness"`
}

// Normalize trims and title-cases the hero name and secret identity, the
// same transformation applied on every write path.
func (c *HeroCreate) Normalize() {
	c.Name = TitleCase(c.Name)
	c.SecretName = TitleCase(c.SecretName)
}

// Validate checks field-level constraints and returns one entry per
// violated rule.
func (c *HeroCreate) Validate() []ValidationError {
	var errs []ValidationError

	if c.Name == "" || len(c.Name) > 100 {
		errs = append(errs, ValidationError{Field: "name", Message: "hero name must be 1-100 characters long"})
	}
	if c.SecretName == "" || len(c.SecretName) > 100 {
		errs = append(errs, ValidationError{Field: "secret_name", Message: "secret name must be 1-100 characters long"})
	}
	if c.Age != nil && (*c.Age < 0 || *c.Age > 1000) {
		errs = append(errs, ValidationError{Field: "age", Message: "age must be between 0 and 1000"})
	}
	if c.Description != nil && len(*c.Description) > 1000 {
		errs = append(errs, ValidationError{Field: "description", Message: "description must be no more than 1000 characters long"})
	}
	if c.PowerLevel != nil && (*c.PowerLevel < 1 || *c.PowerLevel > 100) {
		errs = append(errs, ValidationError{Field: "power_level", Message: "power level must be between 1 and 100"})
	}
	if c.Team != nil && len(*c.Team) > 100 {
		errs = append(errs, ValidationError{Field: "team", Message: "team must be no more than 100 characters long"})
	}
	if c.Weakness != nil && len(*c.Weakness) > 500 {
		errs = append(errs, ValidationError{Field: "weakness", Message: "weakness must be no more than 500 characters long"})
	}

	return errs
}

// HeroUpdate is the request body of PUT /api/v1/heroes/{id}.
// Nil fields were absent from the request and must not be touched.
type HeroUpdate struct {
	Name        *string  `json:"name"`
	SecretName  *string  `json:"secret_name"`
	Age         *int     `json:"age"`
	Description *string  `json:"description"`
	PowerLevel  *int     `json:"power_level"`
	IsActive    *bool    `json:"is_active"`
	AvatarURL   *string  `json:"avatar_url"`
	Team        *string  `json:"team"`
	Abilities   []string `json:"abilities"`
	Weakness    *string  `json:"weakness"`
}

// IsEmpty reports whether no field is present in the update.
func (u *HeroUpdate) IsEmpty() bool {
	return u.Name == nil && u.SecretName == nil && u.Age == nil &&
		u.Description == nil && u.PowerLevel == nil && u.IsActive == nil &&
		u.AvatarURL == nil && u.Team == nil && u.Abilities == nil && u.Weakness == nil
}

// Normalize title-cases name and secret_name when they are present.
func (u *HeroUpdate) Normalize() {
	if u.Name != nil {
		titled := TitleCase(*u.Name)
		u.Name = &titled
	}
	if u.SecretName != nil {
		titled := TitleCase(*u.SecretName)
		u.SecretName = &titled
	}
}

// Validate checks field-level constraints on the fields that are present.
func (u *HeroUpdate) Validate() []ValidationError {
	var errs []ValidationError

	if u.Name != nil && (*u.Name == "" || len(*u.Name) > 100) {
		errs = append(errs, ValidationError{Field: "name", Message: "hero name must be 1-100 characters long"})
	}
	if u.SecretName != nil && (*u.SecretName == "" || len(*u.SecretName) > 100) {
		errs = append(errs, ValidationError{Field: "secret_name", Message: "secret name must be 1-100 characters long"})
	}
	if u.Age != nil && (*u.Age < 0 || *u.Age > 1000) {
		errs = append(errs, ValidationError{Field: "age", Message: "age must be between 0 and 1000"})
	}
	if u.Description != nil && len(*u.Description) > 1000 {
		errs = append(errs, ValidationError{Field: "description", Message: "description must be no more than 1000 characters long"})
	}
	if u.PowerLevel != nil && (*u.PowerLevel < 1 || *u.PowerLevel > 100) {
		errs = append(errs, ValidationError{Field: "power_level", Message: "power level must be between 1 and 100"})
	}
	if u.Team != nil && len(*u.Team) > 100 {
		errs = append(errs, ValidationError{Field: "team", Message: "team must be no more than 100 characters long"})
	}
	if u.Weakness != nil && len(*u.Weakness) > 500 {
		errs = append(errs, ValidationError{Field: "weakness", Message: "weakness must be no more than 500 characters long"})
	}

	return errs
}

// HeroFilter carries the composable list filters of GET /api/v1/heroes/.
// All set filters are AND-combined.
type HeroFilter struct {
	ActiveOnly    bool
	Team          *string
	MinPowerLevel *int
	MaxPowerLevel *int
	Search        *string
}

// PowerStats is the aggregate half of the power-distribution payload.
type PowerStats struct {
	MinPower    *int    `json:"min_power"`
	MaxPower    *int    `json:"max_power"`
	AvgPower    float64 `json:"avg_power"`
	TotalHeroes int64   `json:"total_heroes"`
}

// PowerBucket is one histogram bar of the power-distribution payload.
type PowerBucket struct {
	Range string `json:"range"`
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// PowerDistribution is the payload of GET /api/v1/heroes/stats/power-distribution.
type PowerDistribution struct {
	Statistics   PowerStats    `json:"statistics"`
	Distribution []PowerBucket `json:"distribution"`
}

// TitleCase trims v and capitalizes the first letter of every word,
// lowercasing the rest ("test hero" -> "Test Hero").
func TitleCase(v string) string {
	return titleCaser.String(strings.TrimSpace(v))
}

// EncodeAbilities serializes an abilities list into the string form stored
// in the abilities column. A nil list encodes to nil (column stays NULL).
func EncodeAbilities(abilities []string) (*string, error) {
	if abilities == nil {
		return nil, nil
	}
	raw, err := json.Marshal(abilities)
	if err != nil {
		return nil, err
	}
	encoded := string(raw)
	return &encoded, nil
}
