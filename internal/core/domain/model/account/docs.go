// Package account models the people and ledger identities that act through the service.
//
// A User authenticates with an API token. Each user owns one or more ledger
// Identities (named key pairs issued by the ledger) and an address book of
// counterpart public keys, stored under aliases such as "service_provider".
package account
