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
	"ftl/internal/pkg/errs"
)

// RejectOrderCommandHandler declines an order and transfers it back to its
// previous owner with the REJECTED status attached.
//
// The previous owner is read from the inputs of the transaction whose id equals
// the asset id, i.e. the CREATE transaction. That is only the right answer
// while the order has not moved since it was created, which the
// TO_BE_CONFIRMED precondition guarantees today. Assets with several inputs or
// a multi-signature input are refused.
type RejectOrderCommandHandler struct {
	uowFactory LedgerUoWFactory
	checker    *checks.Checker
	statuses   checks.StatusResolver[order.Status]
	vocab      semantic.Vocabulary
	assets     ports.AssetReader
	ledger     ports.LedgerWriter
	publisher  ports.StatusChangePublisher
	logger     *slog.Logger
}

func NewRejectOrderCommandHandler(
	uowFactory LedgerUoWFactory,
	checker *checks.Checker,
	statuses checks.StatusResolver[order.Status],
	vocab semantic.Vocabulary,
	assets ports.AssetReader,
	ledger ports.LedgerWriter,
	publisher ports.StatusChangePublisher,
	logger *slog.Logger,
) RejectOrderCommandHandler {
	return RejectOrderCommandHandler{
		uowFactory: uowFactory,
		checker:    checker,
		statuses:   statuses,
		vocab:      vocab,
		assets:     assets,
		ledger:     ledger,
		publisher:  publisher,
		logger:     logger.With("component", "RejectOrderCommandHandler"),
	}
}

// Handle returns the id of the rejecting transaction.
func (h *RejectOrderCommandHandler) Handle(ctx context.Context, cmd RejectOrderCommand) (kernel.AssetID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.AssetID{}, err
	}

	if err := checks.Run(ctx,
		h.checker.AssetExists(cmd.AssetID()),
		h.checker.AssetHasType(cmd.AssetID(), h.vocab.OrderType()),
		h.checker.AssetOwnedBy(cmd.AssetID(), cmd.UserID()),
		checks.AssetStatusEquals(h.statuses, cmd.AssetID(), order.ToBeConfirmed),
	); err != nil {
		return kernel.AssetID{}, err
	}

	next, err := order.ToBeConfirmed.Reject()
	if err != nil {
		return kernel.AssetID{}, err
	}

	previousOwner, err := h.previousOwner(ctx, cmd.AssetID())
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
		Recipient: previousOwner,
		Status:    ledger.StatusCode(int(next)),
	}, "reject order")
	if err != nil {
		return kernel.AssetID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.AssetID{}, err
	}

	announce(ctx, h.publisher, h.logger, cmd.AssetID(), txID, next)
	return txID, nil
}

func (h *RejectOrderCommandHandler) previousOwner(ctx context.Context, assetID kernel.AssetID) (string, error) {
	inputs, err := h.assets.TransactionInputs(ctx, assetID)
	if err != nil {
		return "", err
	}

	switch {
	case len(inputs) == 0:
		return "", errs.NewInadmissibleError("asset has no inputs")
	case len(inputs) > 1:
		return "", errs.NewInadmissibleErrorWithValues("asset has multiple inputs", 1, len(inputs))
	case len(inputs[0].OwnersBefore) != 1:
		return "", errs.NewInadmissibleErrorWithValues("asset input is multi-signature", 1, len(inputs[0].OwnersBefore))
	}
	return inputs[0].OwnersBefore[0], nil
}
