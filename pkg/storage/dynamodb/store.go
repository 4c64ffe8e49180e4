package dynamodb

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/dlaird/pocketbank/pkg/storage"
)

// DynamoDBAPI captures the subset of the DynamoDB client used by the store.
// It exists so tests can substitute a mock client.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

// Store implements the storage.Storage interface using AWS DynamoDB.
// Accounts live in one table keyed by username; the transaction log lives in
// another, keyed by transaction id with GSIs for per-account listing and
// idempotency-key lookup.
type Store struct {
	Client                DynamoDBAPI
	AccountsTableName     string
	TransactionsTableName string
}

// New creates a new Store.
func New(client DynamoDBAPI, accountsTable, transactionsTable string) *Store {
	return &Store{
		Client:                client,
		AccountsTableName:     accountsTable,
		TransactionsTableName: transactionsTable,
	}
}

// Make sure we conform to the interface
var _ storage.Storage = (*Store)(nil)

const (
	// accountTransactionsGSI indexes transactions by account_username with
	// timestamp as the sort key.
	accountTransactionsGSI = "account_username-timestamp-index"

	// idempotencyKeyGSI indexes transactions by idempotency_key with
	// account_username as the sort key, so a lookup is scoped to one account
	// entirely by key condition. Filtering after the fact would interact badly
	// with Limit: DynamoDB applies Limit before FilterExpression, so another
	// account's use of the same key string could mask a match.
	idempotencyKeyGSI = "idempotency_key-account_username-index"
)
