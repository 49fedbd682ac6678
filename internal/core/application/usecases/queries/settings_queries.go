package queries

import (
	"context"
	"errors"

	"ftl/internal/core/domain/model/kernel"
	"ftl/internal/pkg/errs"
	"ftl/internal/pkg/guard"

	"gorm.io/gorm"
)

var (
	ErrListSettingsQueryIsNotConstructed = errors.New(
		"ListSettingsQuery must be created via NewListSettingsQuery constructor",
	)
	ErrGetSettingQueryIsNotConstructed = errors.New(
		"GetSettingQuery must be created via NewGetSettingQuery constructor",
	)
)

type ListSettingsQuery struct {
	guard guard.ConstructorGuard
}

func NewListSettingsQuery() ListSettingsQuery {
	return ListSettingsQuery{guard: guard.NewConstructorGuard()}
}

func (q ListSettingsQuery) Validate() error {
	return q.guard.Validate(ErrListSettingsQueryIsNotConstructed)
}

type GetSettingQuery struct {
	name string

	guard guard.ConstructorGuard
}

func NewGetSettingQuery(name string) (GetSettingQuery, error) {
	if err := kernel.ValidateIdentifier("setting", name); err != nil {
		return GetSettingQuery{}, err
	}
	return GetSettingQuery{name: name, guard: guard.NewConstructorGuard()}, nil
}

func (q GetSettingQuery) Name() string { return q.name }

func (q GetSettingQuery) Validate() error {
	return q.guard.Validate(ErrGetSettingQueryIsNotConstructed)
}

type SettingResponse struct {
	Name  string `json:"setting"`
	Value string `json:"value"`
}

// SettingsQueryHandler reads global settings straight from the settings table.
type SettingsQueryHandler struct {
	db *gorm.DB
}

func NewSettingsQueryHandler(db *gorm.DB) SettingsQueryHandler {
	return SettingsQueryHandler{db: db}
}

// List returns every setting sorted by name.
func (h SettingsQueryHandler) List(ctx context.Context, query ListSettingsQuery) ([]SettingResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	settings := make([]SettingResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT name, value
		FROM settings
		ORDER BY name
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var s SettingResponse
		if err = rows.Scan(&s.Name, &s.Value); err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return settings, nil
}

// Get returns one setting or errs.ErrObjectNotFound.
func (h SettingsQueryHandler) Get(ctx context.Context, query GetSettingQuery) (SettingResponse, error) {
	if err := query.Validate(); err != nil {
		return SettingResponse{}, err
	}

	var s SettingResponse
	result := h.db.WithContext(ctx).Raw(`
		SELECT name, value
		FROM settings
		WHERE name = ?
	`, query.Name()).Scan(&s)
	if result.Error != nil {
		return SettingResponse{}, result.Error
	}
	if result.RowsAffected == 0 {
		return SettingResponse{}, errs.NewObjectNotFoundError("setting", query.Name())
	}

	return s, nil
}
