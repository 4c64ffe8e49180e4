package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/dlaird/pocketbank/pkg/models"
)

// ListTransactionsByUsername retrieves every transaction recorded for the
// account, oldest first, using the account/timestamp GSI.
func (s *Store) ListTransactionsByUsername(ctx context.Context, username string) ([]models.Transaction, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.TransactionsTableName),
		IndexName:              aws.String(accountTransactionsGSI),
		KeyConditionExpression: aws.String("account_username = :username"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":username": &types.AttributeValueMemberS{Value: username},
		},
		ScanIndexForward: aws.Bool(true),
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for %s: %w", username, err)
	}

	transactions := make([]models.Transaction, 0, len(result.Items))
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &transactions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal transactions: %w", err)
	}

	return transactions, nil
}

// GetTransactionByIdempotencyKey looks up a previously recorded transaction by
// its client-supplied key. It returns (nil, nil) when the key is unused.
func (s *Store) GetTransactionByIdempotencyKey(ctx context.Context, username, key string) (*models.Transaction, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.TransactionsTableName),
		IndexName:              aws.String(idempotencyKeyGSI),
		KeyConditionExpression: aws.String("idempotency_key = :key AND account_username = :username"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":key":      &types.AttributeValueMemberS{Value: key},
			":username": &types.AttributeValueMemberS{Value: username},
		},
		Limit: aws.Int32(1),
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query idempotency key: %w", err)
	}

	if len(result.Items) == 0 {
		return nil, nil
	}

	var tx models.Transaction
	if err := attributevalue.UnmarshalMap(result.Items[0], &tx); err != nil {
		return nil, fmt.Errorf("failed to unmarshal transaction: %w", err)
	}

	return &tx, nil
}
