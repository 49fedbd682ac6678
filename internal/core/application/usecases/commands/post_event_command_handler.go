package commands

import (
	"context"
	"encoding/json"
	"log/slog"

	"ftl/internal/core/application/checks"
	"ftl/internal/core/domain/model/kernel"
	"ftl/internal/core/domain/model/ledger"
	"ftl/internal/core/domain/model/order"
	"ftl/internal/core/domain/model/semantic"
	"ftl/internal/core/domain/model/setting"
	"ftl/internal/core/domain/services"
	"ftl/internal/core/ports"
	"ftl/internal/pkg/errs"
)

// PostEventCommandHandler admits a milestone event for an order and records it
// on the ledger. Events are refused while the order awaits confirmation and
// after it completed. The event place must satisfy the milestone's place rule
// before anything is sent; LOAD and DISCHARGE additionally move the order to
// STARTED and COMPLETED.
type PostEventCommandHandler struct {
	uowFactory LedgerUoWFactory
	checker    *checks.Checker
	statuses   checks.StatusResolver[order.Status]
	vocab      semantic.Vocabulary
	assets     ports.AssetReader
	validator  *services.MilestoneValidator
	documents  ports.DocumentBuilder
	ledger     ports.LedgerWriter
	publisher  ports.StatusChangePublisher
	logger     *slog.Logger
}

func NewPostEventCommandHandler(
	uowFactory LedgerUoWFactory,
	checker *checks.Checker,
	statuses checks.StatusResolver[order.Status],
	vocab semantic.Vocabulary,
	assets ports.AssetReader,
	validator *services.MilestoneValidator,
	documents ports.DocumentBuilder,
	ledger ports.LedgerWriter,
	publisher ports.StatusChangePublisher,
	logger *slog.Logger,
) PostEventCommandHandler {
	return PostEventCommandHandler{
		uowFactory: uowFactory,
		checker:    checker,
		statuses:   statuses,
		vocab:      vocab,
		assets:     assets,
		validator:  validator,
		documents:  documents,
		ledger:     ledger,
		publisher:  publisher,
		logger:     logger.With("component", "PostEventCommandHandler"),
	}
}

// Handle returns the id of the transaction carrying the event.
func (h *PostEventCommandHandler) Handle(ctx context.Context, cmd PostEventCommand) (kernel.AssetID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.AssetID{}, err
	}

	e := cmd.Event()
	orderID := e.OrderAssetID()

	if err := checks.Run(ctx,
		h.checker.AssetExists(orderID),
		h.checker.AssetHasType(orderID, h.vocab.OrderType()),
		checks.AssetStatusNotIn(h.statuses, orderID, order.ToBeConfirmed, order.Completed),
	); err != nil {
		return kernel.AssetID{}, err
	}

	orderAsset, err := h.assets.Asset(ctx, orderID)
	if err != nil {
		return kernel.AssetID{}, errs.NewCollaboratorErrorWithCause("ledger", "could not retrieve order details", err)
	}

	if err = h.validator.Validate(e.Milestone(), e.Place(), orderAsset.Document); err != nil {
		return kernel.AssetID{}, err
	}

	doc, err := h.documents.EventDocument(e)
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

	shapeSetting, err := uow.SettingRepository().Get(ctx, setting.EventShape)
	if err != nil {
		return kernel.AssetID{}, err
	}
	constraints, err := json.Marshal(shapeSetting.Value())
	if err != nil {
		return kernel.AssetID{}, err
	}

	req := ledger.TransferRequest{
		AssetID:     orderID,
		Data:        doc,
		Constraints: constraints,
	}
	forced, hasForced := e.Milestone().ForcedStatus()
	if hasForced {
		req.Status = ledger.StatusCode(int(forced))
	}

	identity, err := uow.IdentityRepository().GetActive(ctx, cmd.UserID(), cmd.Identity())
	if err != nil {
		return kernel.AssetID{}, err
	}
	req.Recipient = identity.PublicKey()

	txID, err := transferAndRecord(ctx, uow, h.ledger, identity, req, "event "+e.Milestone().String())
	if err != nil {
		return kernel.AssetID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.AssetID{}, err
	}

	if hasForced {
		announce(ctx, h.publisher, h.logger, orderID, txID, forced)
	}
	return txID, nil
}
