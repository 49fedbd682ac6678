package queries

import (
	"encoding/json"
	"errors"

	"ftl/internal/core/domain/model/kernel"
	"ftl/internal/pkg/errs"
	"ftl/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// Role restricts an order listing to the orders where the caller played it.
type Role string

const (
	AnyRole      Role = ""
	CustomerRole Role = "customer"
	ProviderRole Role = "provider"
)

// ListOrdersQuery lists every order any of the caller's active identities took part in.
//
// Example:
//
//	completed := false
//	query, err := NewListOrdersQuery(userID, CustomerRole, &completed)
//	if err != nil {
//	    return err
//	}
//	orders, err := handler.Handle(ctx, query)
type ListOrdersQuery struct {
	userID    kernel.UUID
	role      Role
	completed *bool

	guard guard.ConstructorGuard
}

// NewListOrdersQuery builds the query. A nil completed leaves completion unfiltered.
func NewListOrdersQuery(userID kernel.UUID, role Role, completed *bool) (ListOrdersQuery, error) {
	var problems []error
	if err := userID.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("user", err))
	}
	switch role {
	case AnyRole, CustomerRole, ProviderRole:
	default:
		problems = append(problems, errs.NewValueIsInvalidError("role"))
	}
	if err := errors.Join(problems...); err != nil {
		return ListOrdersQuery{}, err
	}

	var c *bool
	if completed != nil {
		v := *completed
		c = &v
	}

	return ListOrdersQuery{
		userID:    userID,
		role:      role,
		completed: c,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q ListOrdersQuery) UserID() kernel.UUID { return q.userID }
func (q ListOrdersQuery) Role() Role          { return q.role }

// Completed returns the completion filter and whether it is set.
func (q ListOrdersQuery) Completed() (bool, bool) {
	if q.completed == nil {
		return false, false
	}
	return *q.completed, true
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// OrderSummary is one entry of an order listing.
type OrderSummary struct {
	Asset    json.RawMessage `json:"asset"`
	Metadata OrderMetadata   `json:"metadata"`
}

// ListOrdersQueryResponse maps asset ids to their summaries.
type ListOrdersQueryResponse map[string]OrderSummary
