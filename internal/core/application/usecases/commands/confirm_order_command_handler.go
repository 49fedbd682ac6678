package commands

import (
	"context"
	"log/slog"

	"ftl/internal/core/application/checks"
	"ftl/internal/core/domain/model/kernel"
	"ftl/internal/core/domain/model/ledger"
	"ftl/internal/core/domain/model/order"
	"ftl/internal/core/domain/model/semantic"
	"ftl/internal/core/ports"
)

// ConfirmOrderCommandHandler accepts an order on behalf of the service provider
// holding it. The asset is transferred to the caller's own identity with the
// CONFIRMED status attached, which is how the ledger records the decision.
type ConfirmOrderCommandHandler struct {
	uowFactory LedgerUoWFactory
	checker    *checks.Checker
	statuses   checks.StatusResolver[order.Status]
	vocab      semantic.Vocabulary
	ledger     ports.LedgerWriter
	publisher  ports.StatusChangePublisher
	logger     *slog.Logger
}

func NewConfirmOrderCommandHandler(
	uowFactory LedgerUoWFactory,
	checker *checks.Checker,
	statuses checks.StatusResolver[order.Status],
	vocab semantic.Vocabulary,
	ledger ports.LedgerWriter,
	publisher ports.StatusChangePublisher,
	logger *slog.Logger,
) ConfirmOrderCommandHandler {
	return ConfirmOrderCommandHandler{
		uowFactory: uowFactory,
		checker:    checker,
		statuses:   statuses,
		vocab:      vocab,
		ledger:     ledger,
		publisher:  publisher,
		logger:     logger.With("component", "ConfirmOrderCommandHandler"),
	}
}

// Handle returns the id of the confirming transaction.
func (h *ConfirmOrderCommandHandler) Handle(ctx context.Context, cmd ConfirmOrderCommand) (kernel.AssetID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.AssetID{}, err
	}

	if err := checks.Run(ctx,
		h.checker.AssetExists(cmd.AssetID()),
		h.checker.AssetHasType(cmd.AssetID(), h.vocab.OrderType()),
		h.checker.AssetOwnedBy(cmd.AssetID(), cmd.UserID()),
		h.checker.AssetNotCreatedBy(cmd.AssetID(), cmd.UserID()),
		checks.AssetStatusEquals(h.statuses, cmd.AssetID(), order.ToBeConfirmed),
	); err != nil {
		return kernel.AssetID{}, err
	}

	next, err := order.ToBeConfirmed.Confirm()
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

	identity, err := uow.IdentityRepository().GetActive(ctx, cmd.UserID(), "")
	if err != nil {
		return kernel.AssetID{}, err
	}

	txID, err := transferAndRecord(ctx, uow, h.ledger, identity, ledger.TransferRequest{
		AssetID:   cmd.AssetID(),
		Recipient: identity.PublicKey(),
		Status:    ledger.StatusCode(int(next)),
	}, "confirm order")
	if err != nil {
		return kernel.AssetID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.AssetID{}, err
	}

	announce(ctx, h.publisher, h.logger, cmd.AssetID(), txID, next)
	return txID, nil
}
