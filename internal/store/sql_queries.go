package store

import (
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-api-template/models"
)

// psql builds queries with $N placeholders. Both supported backends
// (PostgreSQL and SQLite) accept this placeholder format.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const (
	userColumns = `id, username, email, full_name, password, password_hash, is_active, last_login, avatar_url, created_at, updated_at`

	createUser = `INSERT INTO users (username, email, full_name, password, avatar_url, is_active, created_at)
	VALUES ($1, $2, $3, $4, $5, TRUE, $6)
	RETURNING ` + userColumns + `;`

	getUserByID = `SELECT ` + userColumns + `
	FROM users
	WHERE id = $1;`

	// Login lookup intentionally spans inactive rows; the service rejects
	// inactive accounts after the password check.
	getUserByUsernameOrEmail = `SELECT ` + userColumns + `
	FROM users
	WHERE username = $1 OR email = $1
	LIMIT 1;`

	listActiveUsers = `SELECT ` + userColumns + `
	FROM users
	WHERE is_active
	ORDER BY id
	LIMIT $1 OFFSET $2;`

	countActiveUsers = `SELECT COUNT(id) FROM users WHERE is_active;`

	activeUsernameExists = `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1 AND is_active);`

	activeEmailExists = `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 AND is_active);`

	softDeleteUser = `UPDATE users
	SET is_active = FALSE, updated_at = $2
	WHERE id = $1;`

	setUserLastLogin = `UPDATE users
	SET last_login = $2
	WHERE id = $1;`
)

const (
	heroColumns = `id, name, secret_name, age, description, power_level, is_active, avatar_url, team, abilities, weakness, created_at, updated_at`

	createHero = `INSERT INTO heroes (name, secret_name, age, description, power_level, is_active, avatar_url, team, abilities, weakness, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	RETURNING ` + heroColumns + `;`

	getHeroByID = `SELECT ` + heroColumns + `
	FROM heroes
	WHERE id = $1;`

	getHeroByFuzzyName = `SELECT ` + heroColumns + `
	FROM heroes
	WHERE LOWER(name) LIKE LOWER($1)
	ORDER BY id
	LIMIT 1;`

	heroNameExists = `SELECT EXISTS(SELECT 1 FROM heroes WHERE name = $1);`

	heroNameExistsExcludingID = `SELECT EXISTS(SELECT 1 FROM heroes WHERE name = $1 AND id <> $2);`

	deleteHero = `DELETE FROM heroes WHERE id = $1;`

	setHeroActive = `UPDATE heroes
	SET is_active = $2, updated_at = $3
	WHERE id = $1
	RETURNING ` + heroColumns + `;`

	listActiveTeams = `SELECT DISTINCT team
	FROM heroes
	WHERE team IS NOT NULL AND is_active
	ORDER BY team;`

	activeHeroPowerStats = `SELECT MIN(power_level), MAX(power_level), AVG(power_level), COUNT(id)
	FROM heroes
	WHERE is_active;`

	countActiveHeroesInPowerRange = `SELECT COUNT(id)
	FROM heroes
	WHERE power_level >= $1 AND power_level <= $2 AND is_active;`
)

// heroFilterConditions converts a [models.HeroFilter] into squirrel
// predicates. Both the data query and the count query are built from this
// one function, so the reported total can never drift from the returned
// rows.
func heroFilterConditions(filter models.HeroFilter) sq.And {
	conds := sq.And{}

	if filter.ActiveOnly {
		conds = append(conds, sq.Eq{"is_active": true})
	}
	if filter.Team != nil && *filter.Team != "" {
		conds = append(conds, sq.Eq{"team": *filter.Team})
	}
	if filter.MinPowerLevel != nil {
		conds = append(conds, sq.GtOrEq{"power_level": *filter.MinPowerLevel})
	}
	if filter.MaxPowerLevel != nil {
		conds = append(conds, sq.LtOrEq{"power_level": *filter.MaxPowerLevel})
	}
	if filter.Search != nil && *filter.Search != "" {
		pattern := "%" + *filter.Search + "%"
		conds = append(conds, sq.Or{
			sq.Expr("LOWER(name) LIKE LOWER(?)", pattern),
			sq.Expr("LOWER(description) LIKE LOWER(?)", pattern),
		})
	}

	return conds
}

// buildListHeroesQuery builds the windowed data query for GET /heroes/.
func buildListHeroesQuery(filter models.HeroFilter, params models.PaginationParams) (string, []any, error) {
	builder := psql.
		Select(strings.Split(heroColumns, ", ")...).
		From("heroes").
		OrderBy("id").
		Limit(uint64(params.Limit())).
		Offset(uint64(params.Offset()))

	if conds := heroFilterConditions(filter); len(conds) > 0 {
		builder = builder.Where(conds)
	}

	return builder.ToSql()
}

// buildCountHeroesQuery builds the total query mirroring every filter of
// the data query.
func buildCountHeroesQuery(filter models.HeroFilter) (string, []any, error) {
	builder := psql.
		Select("COUNT(id)").
		From("heroes")

	if conds := heroFilterConditions(filter); len(conds) > 0 {
		builder = builder.Where(conds)
	}

	return builder.ToSql()
}

// buildUpdateUserQuery dynamically builds the partial UPDATE for
// PUT /users/{id}: only fields present in the request become SET clauses.
// updated_at is always stamped.
func buildUpdateUserQuery(userID int64, update models.UserUpdate, now time.Time) (string, []any) {
	queryBuilder := new(strings.Builder)
	queryBuilder.WriteString(`UPDATE users`)

	args := make([]any, 0, 8)
	setClauses := make([]string, 0, 7)
	argIndex := 1

	appendClause := func(column string, value any) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argIndex))
		args = append(args, value)
		argIndex++
	}

	if update.Username != nil {
		appendClause("username", *update.Username)
	}
	if update.Email != nil {
		appendClause("email", *update.Email)
	}
	if update.FullName != nil {
		appendClause("full_name", *update.FullName)
	}
	if update.Password != nil {
		appendClause("password", *update.Password)
	}
	if update.IsActive != nil {
		appendClause("is_active", *update.IsActive)
	}
	if update.AvatarURL != nil {
		appendClause("avatar_url", *update.AvatarURL)
	}
	appendClause("updated_at", now)

	queryBuilder.WriteString(" SET ")
	queryBuilder.WriteString(strings.Join(setClauses, ", "))

	queryBuilder.WriteString(fmt.Sprintf(" WHERE id = $%d", argIndex))
	args = append(args, userID)

	queryBuilder.WriteString(" RETURNING " + userColumns + ";")

	return queryBuilder.String(), args
}

// buildUpdateHeroQuery dynamically builds the partial UPDATE for
// PUT /heroes/{id}. An abilities list present in the request is serialized
// to its JSON string column form here, keeping the column encoding in one
// place.
func buildUpdateHeroQuery(heroID int64, update models.HeroUpdate, now time.Time) (string, []any, error) {
	queryBuilder := new(strings.Builder)
	queryBuilder.WriteString(`UPDATE heroes`)

	args := make([]any, 0, 12)
	setClauses := make([]string, 0, 11)
	argIndex := 1

	appendClause := func(column string, value any) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argIndex))
		args = append(args, value)
		argIndex++
	}

	if update.Name != nil {
		appendClause("name", *update.Name)
	}
	if update.SecretName != nil {
		appendClause("secret_name", *update.SecretName)
	}
	if update.Age != nil {
		appendClause("age", *update.Age)
	}
	if update.Description != nil {
		appendClause("description", *update.Description)
	}
	if update.PowerLevel != nil {
		appendClause("power_level", *update.PowerLevel)
	}
	if update.IsActive != nil {
		appendClause("is_active", *update.IsActive)
	}
	if update.AvatarURL != nil {
		appendClause("avatar_url", *update.AvatarURL)
	}
	if update.Team != nil {
		appendClause("team", *update.Team)
	}
	if update.Abilities != nil {
		encoded, err := models.EncodeAbilities(update.Abilities)
		if err != nil {
			return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		appendClause("abilities", *encoded)
	}
	if update.Weakness != nil {
		appendClause("weakness", *update.Weakness)
	}
	appendClause("updated_at", now)

	queryBuilder.WriteString(" SET ")
	queryBuilder.WriteString(strings.Join(setClauses, ", "))

	queryBuilder.WriteString(fmt.Sprintf(" WHERE id = $%d", argIndex))
	args = append(args, heroID)

	queryBuilder.WriteString(" RETURNING " + heroColumns + ";")

	return queryBuilder.String(), args, nil
}
