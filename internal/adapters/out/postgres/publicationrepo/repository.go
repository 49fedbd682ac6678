// Package publicationrepo keeps the local log of writes this service made to the ledger.
package publicationrepo

import (
	"context"
	"errors"
	"time"

	"ftl/internal/core/domain/model/kernel"
	"ftl/internal/core/domain/model/ledger"
	"ftl/internal/core/domain/model/publication"
	"ftl/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type PublicationDTO struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey"`
	IdentityID    uuid.UUID      `gorm:"type:uuid;index;not null"`
	AssetID       string         `gorm:"size:64;index;not null"`
	TransactionID string         `gorm:"size:64;uniqueIndex;not null"`
	Operation     string         `gorm:"size:16;not null"`
	Description   string
	Recipients    pq.StringArray `gorm:"type:text[]"`
	CreatedAt     time.Time      `gorm:"not null"`
}

func (PublicationDTO) TableName() string {
	return "publications"
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormPublicationRepository implements ports.PublicationRepository using GORM.
type GormPublicationRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormPublicationRepository(db *gorm.DB, tracker aggregateTracker) *GormPublicationRepository {
	return &GormPublicationRepository{db: db, tracker: tracker}
}

func (r *GormPublicationRepository) Add(ctx context.Context, record *publication.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(record.ID(), record)
	return nil
}

// Get returns the record of a ledger transaction.
func (r *GormPublicationRepository) Get(ctx context.Context, transactionID kernel.AssetID) (*publication.Record, error) {
	var dto PublicationDTO
	if err := r.db.WithContext(ctx).First(&dto, "transaction_id = ?", transactionID.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("publication", transactionID.String())
		}
		return nil, err
	}
	return toDomain(dto)
}

func fromDomain(r *publication.Record) PublicationDTO {
	return PublicationDTO{
		ID:            r.ID().Bytes(),
		IdentityID:    r.IdentityID().Bytes(),
		AssetID:       r.AssetID().String(),
		TransactionID: r.TransactionID().String(),
		Operation:     string(r.Operation()),
		Description:   r.Description(),
		Recipients:    pq.StringArray(r.Recipients()),
		CreatedAt:     r.CreatedAt(),
	}
}

func toDomain(dto PublicationDTO) (*publication.Record, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	identityID, err := kernel.UUIDFromBytes(dto.IdentityID[:])
	if err != nil {
		return nil, err
	}
	assetID, err := kernel.NewAssetID(dto.AssetID)
	if err != nil {
		return nil, err
	}
	transactionID, err := kernel.NewAssetID(dto.TransactionID)
	if err != nil {
		return nil, err
	}
	return publication.RestoreRecord(
		id, identityID, assetID, transactionID,
		ledger.Operation(dto.Operation), dto.Description,
		[]string(dto.Recipients), dto.CreatedAt,
	)
}
