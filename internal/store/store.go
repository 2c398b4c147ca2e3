// Package store provides the in-memory stores behind the library: the
// catalog, the membership roll, the loan ledger and login accounts.
//
// Each store guards its own state with a sync.RWMutex. Reads run concurrently
// with each other; writes are exclusive. Every stored entity is cloned on the
// way in and out so callers never share memory with the store.
package store

// Store groups the sibling stores. None of them owns another's data; loans
// refer to books and users by ID only.
type Store struct {
	Catalog    *Catalog
	Membership *Membership
	Ledger     *Ledger
	Accounts   *Accounts
}

// New creates an empty set of stores.
func New() *Store {
	return &Store{
		Catalog:    NewCatalog(),
		Membership: NewMembership(),
		Ledger:     NewLedger(),
		Accounts:   NewAccounts(),
	}
}
