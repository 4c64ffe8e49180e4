package storage

// Storage defines the root interface for the entire data layer: account
// records plus the append-only transaction log. Components should depend on
// the more granular interfaces (AccountStore, TransactionLog, LedgerWriter)
// where they can.
type Storage interface {
	AccountStore
	TransactionLog
	LedgerWriter
}
