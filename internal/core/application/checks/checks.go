// Package checks runs the preconditions every mutating use case evaluates
// before it touches the ledger.
//
// A Check is a closure over its arguments. Run evaluates checks in order and
// stops at the first failure; later checks are never invoked, so a request
// yields exactly one error.
//
//	err := checks.Run(ctx,
//	    checker.AssetExists(assetID),
//	    checker.AssetHasType(assetID, vocab.OrderType()),
//	    checker.AssetOwnedBy(assetID, userID),
//	    checks.AssetStatusEquals(engine, assetID, order.ToBeConfirmed),
//	)
package checks

import "context"

// Check is a single precondition. It returns nil when satisfied.
type Check func(ctx context.Context) error

// Run evaluates checks in order and returns the first error.
func Run(ctx context.Context, checks ...Check) error {
	for _, check := range checks {
		if err := check(ctx); err != nil {
			return err
		}
	}
	return nil
}
