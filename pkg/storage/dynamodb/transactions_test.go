package dynamodb

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/dlaird/pocketbank/pkg/models"
	"github.com/dlaird/pocketbank/pkg/storage/dynamodb/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func transactionItems(t *testing.T, transactions ...models.Transaction) []map[string]types.AttributeValue {
	t.Helper()
	items := make([]map[string]types.AttributeValue, 0, len(transactions))
	for _, tx := range transactions {
		av, err := attributevalue.MarshalMap(tx)
		require.NoError(t, err)
		items = append(items, av)
	}
	return items
}

func TestListTransactionsByUsername(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		items := transactionItems(t,
			models.Transaction{Id: "tx-1", AccountUsername: "alice", Type: models.DEPOSIT, Amount: 100, Timestamp: time.Now().Add(-time.Hour)},
			models.Transaction{Id: "tx-2", AccountUsername: "alice", Type: models.WITHDRAWAL, Amount: 50, Timestamp: time.Now()},
		)
		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(input *dynamodb.QueryInput) bool {
			return input.IndexName != nil && *input.IndexName == accountTransactionsGSI
		})).Return(&dynamodb.QueryOutput{Items: items}, nil)

		store := New(mockClient, "accounts", "transactions")
		transactions, err := store.ListTransactionsByUsername(context.Background(), "alice")

		require.NoError(t, err)
		require.Len(t, transactions, 2)
		assert.Equal(t, "tx-1", transactions[0].Id)
		mockClient.AssertExpectations(t)
	})

	t.Run("Empty", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("Query", mock.Anything, mock.Anything).Return(&dynamodb.QueryOutput{}, nil)

		store := New(mockClient, "accounts", "transactions")
		transactions, err := store.ListTransactionsByUsername(context.Background(), "alice")

		require.NoError(t, err)
		assert.NotNil(t, transactions)
		assert.Empty(t, transactions)
		mockClient.AssertExpectations(t)
	})

	t.Run("Storage Error", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("Query", mock.Anything, mock.Anything).Return(nil, errors.New("some other storage error"))

		store := New(mockClient, "accounts", "transactions")
		_, err := store.ListTransactionsByUsername(context.Background(), "alice")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to query transactions")
		mockClient.AssertExpectations(t)
	})
}

func TestGetTransactionByIdempotencyKey(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		items := transactionItems(t, models.Transaction{Id: "tx-1", AccountUsername: "alice", IdempotencyKey: "key-1"})
		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(input *dynamodb.QueryInput) bool {
			return input.IndexName != nil && *input.IndexName == idempotencyKeyGSI
		})).Return(&dynamodb.QueryOutput{Items: items}, nil)

		store := New(mockClient, "accounts", "transactions")
		tx, err := store.GetTransactionByIdempotencyKey(context.Background(), "alice", "key-1")

		require.NoError(t, err)
		require.NotNil(t, tx)
		assert.Equal(t, "tx-1", tx.Id)
		mockClient.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("Query", mock.Anything, mock.Anything).Return(&dynamodb.QueryOutput{}, nil)

		store := New(mockClient, "accounts", "transactions")
		tx, err := store.GetTransactionByIdempotencyKey(context.Background(), "alice", "missing")

		require.NoError(t, err)
		assert.Nil(t, tx)
		mockClient.AssertExpectations(t)
	})

	// The account must be part of the key condition. A FilterExpression would
	// be applied after Limit, so another account's use of the same key string
	// could leave the page empty and mask a genuine match.
	t.Run("Account Scoped By Key Condition", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(input *dynamodb.QueryInput) bool {
			return input.FilterExpression == nil &&
				strings.Contains(*input.KeyConditionExpression, "account_username") &&
				input.ExpressionAttributeValues[":username"] != nil
		})).Return(&dynamodb.QueryOutput{}, nil)

		store := New(mockClient, "accounts", "transactions")
		_, err := store.GetTransactionByIdempotencyKey(context.Background(), "alice", "retry-1")

		require.NoError(t, err)
		mockClient.AssertExpectations(t)
	})
}
