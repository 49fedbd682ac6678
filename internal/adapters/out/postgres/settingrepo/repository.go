// Package settingrepo persists global key/value settings.
package settingrepo

import (
	"context"
	"errors"

	"ftl/internal/core/domain/model/setting"
	"ftl/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingDTO struct {
	Name  string `gorm:"primaryKey"`
	Value string `gorm:"not null"`
}

func (SettingDTO) TableName() string {
	return "settings"
}

// GormSettingRepository implements ports.SettingRepository using GORM.
type GormSettingRepository struct {
	db *gorm.DB
}

func NewGormSettingRepository(db *gorm.DB) *GormSettingRepository {
	return &GormSettingRepository{db: db}
}

// Put inserts the setting or overwrites the value of an existing one.
func (r *GormSettingRepository) Put(ctx context.Context, s setting.Setting) error {
	if err := s.Validate(); err != nil {
		return err
	}

	dto := SettingDTO{Name: s.Name(), Value: s.Value()}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&dto).Error
}

func (r *GormSettingRepository) Get(ctx context.Context, name string) (setting.Setting, error) {
	var dto SettingDTO
	if err := r.db.WithContext(ctx).First(&dto, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return setting.Setting{}, errs.NewObjectNotFoundError("setting", name)
		}
		return setting.Setting{}, err
	}
	return setting.NewSetting(dto.Name, dto.Value)
}

func (r *GormSettingRepository) Remove(ctx context.Context, name string) error {
	result := r.db.WithContext(ctx).Where("name = ?", name).Delete(&SettingDTO{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("setting", name)
	}
	return nil
}
