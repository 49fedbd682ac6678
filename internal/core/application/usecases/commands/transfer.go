package commands

import (
	"context"
	"log/slog"
	"time"

	"ftl/internal/core/domain/model/account"
	"ftl/internal/core/domain/model/kernel"
	"ftl/internal/core/domain/model/ledger"
	"ftl/internal/core/domain/model/order"
	"ftl/internal/core/domain/model/publication"
	"ftl/internal/core/ports"
)

// transferAndRecord sends req to the ledger signed by identity and adds the
// resulting transaction to the publication log of uow.
func transferAndRecord(
	ctx context.Context,
	uow PublicationRepoFactory,
	writer ports.LedgerWriter,
	identity *account.Identity,
	req ledger.TransferRequest,
	description string,
) (kernel.AssetID, error) {
	txID, err := writer.Transfer(ctx, identity.Credentials(), req)
	if err != nil {
		return kernel.AssetID{}, err
	}

	record, err := publication.NewRecord(
		identity.ID(),
		req.AssetID, txID,
		ledger.Transfer,
		description,
		[]string{req.Recipient},
		time.Now().UTC(),
	)
	if err != nil {
		return kernel.AssetID{}, err
	}

	if err = uow.PublicationRepository().Add(ctx, record); err != nil {
		return kernel.AssetID{}, err
	}
	return txID, nil
}

// announce publishes a status change. The ledger already holds the change, so
// failures are logged and swallowed.
func announce(
	ctx context.Context,
	publisher ports.StatusChangePublisher,
	logger *slog.Logger,
	assetID, txID kernel.AssetID,
	status order.Status,
) {
	change := order.StatusChanged{
		AssetID:       assetID,
		TransactionID: txID,
		Status:        status,
		OccurredAt:    time.Now().UTC(),
	}
	if err := publisher.Publish(ctx, change); err != nil {
		logger.WarnContext(ctx, "failed to publish status change",
			"asset_id", assetID.String(),
			"status", status.String(),
			"error", err,
		)
	}
}
