package commands

import (
	"context"
	"time"

	"ftl/internal/core/domain/model/kernel"
	"ftl/internal/core/domain/model/ledger"
	"ftl/internal/core/domain/model/publication"
	"ftl/internal/core/domain/model/setting"
	"ftl/internal/core/ports"
)

// CreateOrderCommandHandler publishes an order as a new ledger asset owned by
// the service provider. The asset starts in the initial order status.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, ledgerClient, documents)
//	assetID, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
type CreateOrderCommandHandler struct {
	uowFactory LedgerUoWFactory
	ledger     ports.LedgerWriter
	documents  ports.DocumentBuilder
}

func NewCreateOrderCommandHandler(
	uowFactory LedgerUoWFactory,
	ledger ports.LedgerWriter,
	documents ports.DocumentBuilder,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		ledger:     ledger,
		documents:  documents,
	}
}

// Handle resolves the signing identity, the recipient and the order shape, then
// publishes. Missing lookups yield errs.ErrObjectNotFound and nothing is published.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (kernel.AssetID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.AssetID{}, err
	}

	doc, err := h.documents.OrderDocument(cmd.Order())
	if err != nil {
		return kernel.AssetID{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return kernel.AssetID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	identity, err := uow.IdentityRepository().GetActive(ctx, cmd.UserID(), cmd.Identity())
	if err != nil {
		return kernel.AssetID{}, err
	}

	recipient, err := uow.AddressBookRepository().GetByAlias(ctx, cmd.UserID(), cmd.ServiceProvider())
	if err != nil {
		return kernel.AssetID{}, err
	}

	shapeSetting, err := uow.SettingRepository().Get(ctx, setting.OrderShape)
	if err != nil {
		return kernel.AssetID{}, err
	}
	shape, err := shapeSetting.ShapeID()
	if err != nil {
		return kernel.AssetID{}, err
	}

	assetID, err := h.ledger.Publish(ctx, identity.Credentials(), ledger.Publication{
		Document:  doc,
		Shape:     shape,
		Recipient: recipient.PublicKey(),
	})
	if err != nil {
		return kernel.AssetID{}, err
	}

	record, err := publication.NewRecord(
		identity.ID(),
		assetID, assetID,
		ledger.Create,
		"order "+cmd.Order().ReferenceID(),
		[]string{recipient.PublicKey()},
		time.Now().UTC(),
	)
	if err != nil {
		return kernel.AssetID{}, err
	}

	if err = uow.PublicationRepository().Add(ctx, record); err != nil {
		return kernel.AssetID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.AssetID{}, err
	}

	return assetID, nil
}
