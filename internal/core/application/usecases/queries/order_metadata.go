// Package queries contains the read side of the application: order views assembled
// from the ledger, and account and settings views read directly from the database.
package queries

import (
	"ftl/internal/core/domain/model/ledger"
	"ftl/internal/core/domain/model/order"
)

// UndefinedRole is reported for a role the order history does not reveal.
const UndefinedRole = "Undefined"

// Roles names the public keys that played each part in an order.
type Roles struct {
	Customer        string `json:"customer"`
	ServiceProvider string `json:"service-provider"`
}

// OrderMetadata is the derived state attached to every order view.
type OrderMetadata struct {
	Status     int    `json:"status"`
	StatusName string `json:"status_name"`
	Roles      Roles  `json:"roles"`
}

func newOrderMetadata(status order.Status, txs []ledger.Transaction) OrderMetadata {
	return OrderMetadata{
		Status:     int(status),
		StatusName: status.String(),
		Roles:      rolesOf(txs),
	}
}

// rolesOf reads the parties from the CREATE transaction: the customer signs
// it and the service provider receives it.
func rolesOf(txs []ledger.Transaction) Roles {
	roles := Roles{Customer: UndefinedRole, ServiceProvider: UndefinedRole}
	for _, tx := range txs {
		if tx.Operation != ledger.Create {
			continue
		}
		if len(tx.Signers) > 0 {
			roles.Customer = tx.Signers[0]
		}
		if len(tx.Recipients) > 0 {
			roles.ServiceProvider = tx.Recipients[0]
		}
		break
	}
	return roles
}
