package checks

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"ftl/internal/core/domain/model/kernel"
	"ftl/internal/core/domain/model/ledger"
	"ftl/internal/core/domain/model/semantic"
	"ftl/internal/core/ports"
	"ftl/internal/pkg/errs"
)

// Checker builds the predicates that consult the ledger and the semantic graph.
type Checker struct {
	assets     ports.AssetReader
	history    ports.TransactionFetcher
	graph      ports.SemanticGraph
	identities ports.IdentityRepository
}

func NewChecker(
	assets ports.AssetReader,
	history ports.TransactionFetcher,
	graph ports.SemanticGraph,
	identities ports.IdentityRepository,
) *Checker {
	return &Checker{
		assets:     assets,
		history:    history,
		graph:      graph,
		identities: identities,
	}
}

// AssetExists fails with errs.ErrObjectNotFound when the ledger has no such asset.
func (c *Checker) AssetExists(assetID kernel.AssetID) Check {
	return func(ctx context.Context) error {
		_, err := c.assets.Asset(ctx, assetID)
		if err == nil {
			return nil
		}
		if errors.Is(err, errs.ErrObjectNotFound) {
			return errs.NewObjectNotFoundErrorWithCause("asset", assetID.String(), err)
		}
		return err
	}
}

// AssetHasType fails unless the asset's document declares a subject of typeIRI.
func (c *Checker) AssetHasType(assetID kernel.AssetID, typeIRI string) Check {
	return func(ctx context.Context) error {
		asset, err := c.assets.Asset(ctx, assetID)
		if err != nil {
			return err
		}
		ok, err := c.graph.TripleExists(asset.Document, semantic.TypePattern(typeIRI))
		if err != nil || !ok {
			return errs.NewInadmissibleError(fmt.Sprintf("asset is not of type %s", typeIRI))
		}
		return nil
	}
}

// AssetOwnedBy fails unless one of the user's active identities currently holds the asset.
// Identities whose holdings cannot be read are skipped; if none can be read the
// ledger failure is returned.
func (c *Checker) AssetOwnedBy(assetID kernel.AssetID, userID kernel.UUID) Check {
	return func(ctx context.Context) error {
		identities, err := c.identities.ListActive(ctx, userID)
		if err != nil {
			return err
		}

		var failures []error
		for _, identity := range identities {
			held, err := c.assets.AssetsOf(ctx, identity.Name())
			if err != nil {
				failures = append(failures, err)
				continue
			}
			if slices.Contains(held, assetID.String()) {
				return nil
			}
		}

		if len(identities) > 0 && len(failures) == len(identities) {
			return errs.NewCollaboratorErrorWithCause("ledger", "cannot check asset ownership", errors.Join(failures...))
		}
		return errs.NewNotPermittedError("user does not own asset")
	}
}

// AssetNotCreatedBy fails when one of the user's identities signed the asset's
// CREATE transaction. It stops users from confirming their own orders.
func (c *Checker) AssetNotCreatedBy(assetID kernel.AssetID, userID kernel.UUID) Check {
	return func(ctx context.Context) error {
		identities, err := c.identities.ListActive(ctx, userID)
		if err != nil {
			return err
		}
		txs, err := c.history.Transactions(ctx, assetID)
		if err != nil {
			return err
		}

		creators := creatorsOf(txs)
		for _, identity := range identities {
			if slices.Contains(creators, identity.PublicKey()) {
				return errs.NewNotPermittedError("user cannot act on an asset they created")
			}
		}
		return nil
	}
}

func creatorsOf(txs []ledger.Transaction) []string {
	for _, tx := range txs {
		if tx.Operation == ledger.Create {
			return tx.Signers
		}
	}
	return nil
}

// Status is the constraint satisfied by lifecycle status types such as order.Status.
type Status interface {
	~int
	String() string
}

// StatusResolver derives the current status of an asset.
type StatusResolver[T Status] interface {
	Resolve(ctx context.Context, assetID kernel.AssetID) (T, error)
}

// AssetStatusEquals fails unless the asset's current status is want.
func AssetStatusEquals[T Status](resolver StatusResolver[T], assetID kernel.AssetID, want T) Check {
	return func(ctx context.Context) error {
		actual, err := resolver.Resolve(ctx, assetID)
		if err != nil {
			return errs.NewCollaboratorErrorWithCause("ledger", "cannot ascertain asset status", err)
		}
		if actual != want {
			return errs.NewInadmissibleErrorWithValues(
				fmt.Sprintf("incorrect asset status: %s should have been %s", actual, want),
				want.String(), actual.String(),
			)
		}
		return nil
	}
}

// AssetStatusNotIn fails when the asset's current status is one of avoid.
func AssetStatusNotIn[T Status](resolver StatusResolver[T], assetID kernel.AssetID, avoid ...T) Check {
	return func(ctx context.Context) error {
		actual, err := resolver.Resolve(ctx, assetID)
		if err != nil {
			return errs.NewCollaboratorErrorWithCause("ledger", "cannot ascertain asset status", err)
		}
		if slices.Contains(avoid, actual) {
			labels := make([]string, len(avoid))
			for i, a := range avoid {
				labels[i] = a.String()
			}
			return errs.NewInadmissibleErrorWithValues(
				fmt.Sprintf("unacceptable asset status (%s)", actual),
				"none of "+strings.Join(labels, ", "), actual.String(),
			)
		}
		return nil
	}
}
