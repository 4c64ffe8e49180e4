package dynamodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/dlaird/pocketbank/pkg/models"
	"github.com/dlaird/pocketbank/pkg/storage"
)

// Credit atomically adds tx.Amount to the account balance and appends the
// transaction record.
func (s *Store) Credit(ctx context.Context, tx *models.Transaction) (*models.Account, error) {
	account, err := s.GetAccount(ctx, tx.AccountUsername)
	if err != nil {
		return nil, err
	}

	txAV, err := attributevalue.MarshalMap(tx)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal transaction: %w", err)
	}

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				// Operation 1: Add the amount to the account balance.
				Update: &types.Update{
					TableName: aws.String(s.AccountsTableName),
					Key: map[string]types.AttributeValue{
						"username": &types.AttributeValueMemberS{Value: tx.AccountUsername},
					},
					UpdateExpression:    aws.String("SET balance = balance + :amount, version = version + :inc"),
					ConditionExpression: aws.String("version = :version"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":amount":  &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", tx.Amount)},
						":version": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", account.Version)},
						":inc":     &types.AttributeValueMemberN{Value: "1"},
					},
				},
			},
			{
				// Operation 2: Append the transaction record.
				Put: &types.Put{
					TableName:           aws.String(s.TransactionsTableName),
					Item:                txAV,
					ConditionExpression: aws.String("attribute_not_exists(id)"),
				},
			},
		},
	}

	if _, err := s.Client.TransactWriteItems(ctx, input); err != nil {
		if conditionFailed(err) {
			return nil, storage.ErrStaleAccount
		}
		return nil, fmt.Errorf("failed to execute credit transaction: %w", err)
	}

	account.Balance += tx.Amount
	account.Version++
	return account, nil
}

// Debit atomically subtracts tx.Amount from the account balance and appends
// the transaction record. The balance condition is enforced server-side.
func (s *Store) Debit(ctx context.Context, tx *models.Transaction) (*models.Account, error) {
	account, err := s.GetAccount(ctx, tx.AccountUsername)
	if err != nil {
		return nil, err
	}
	if account.Balance < tx.Amount {
		return nil, storage.ErrInsufficientFunds
	}

	txAV, err := attributevalue.MarshalMap(tx)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal transaction: %w", err)
	}

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				// Operation 1: Subtract the amount from the account balance.
				Update: &types.Update{
					TableName: aws.String(s.AccountsTableName),
					Key: map[string]types.AttributeValue{
						"username": &types.AttributeValueMemberS{Value: tx.AccountUsername},
					},
					UpdateExpression:    aws.String("SET balance = balance - :amount, version = version + :inc"),
					ConditionExpression: aws.String("balance >= :amount AND version = :version"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":amount":  &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", tx.Amount)},
						":version": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", account.Version)},
						":inc":     &types.AttributeValueMemberN{Value: "1"},
					},
				},
			},
			{
				// Operation 2: Append the transaction record.
				Put: &types.Put{
					TableName:           aws.String(s.TransactionsTableName),
					Item:                txAV,
					ConditionExpression: aws.String("attribute_not_exists(id)"),
				},
			},
		},
	}

	if _, err := s.Client.TransactWriteItems(ctx, input); err != nil {
		if conditionFailed(err) {
			// The condition covers both the balance floor and the version
			// check; a failure after the pre-read means a concurrent writer
			// got in between, so surface it as a retryable conflict.
			return nil, storage.ErrStaleAccount
		}
		return nil, fmt.Errorf("failed to execute debit transaction: %w", err)
	}

	account.Balance -= tx.Amount
	account.Version++
	return account, nil
}

// Transfer atomically moves funds between two accounts, appending both legs.
// All five effects commit together or not at all.
func (s *Store) Transfer(ctx context.Context, outTx, inTx *models.Transaction) (*models.Account, *models.Account, error) {
	sender, err := s.GetAccount(ctx, outTx.AccountUsername)
	if err != nil {
		return nil, nil, err
	}
	recipient, err := s.GetAccount(ctx, inTx.AccountUsername)
	if err != nil {
		return nil, nil, err
	}
	if sender.Balance < outTx.Amount {
		return nil, nil, storage.ErrInsufficientFunds
	}

	outAV, err := attributevalue.MarshalMap(outTx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal outgoing leg: %w", err)
	}
	inAV, err := attributevalue.MarshalMap(inTx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal incoming leg: %w", err)
	}

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				// Operation 1: Debit the sender.
				Update: &types.Update{
					TableName: aws.String(s.AccountsTableName),
					Key: map[string]types.AttributeValue{
						"username": &types.AttributeValueMemberS{Value: outTx.AccountUsername},
					},
					UpdateExpression:    aws.String("SET balance = balance - :amount, version = version + :inc"),
					ConditionExpression: aws.String("balance >= :amount AND version = :version"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":amount":  &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", outTx.Amount)},
						":version": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", sender.Version)},
						":inc":     &types.AttributeValueMemberN{Value: "1"},
					},
				},
			},
			{
				// Operation 2: Credit the recipient.
				Update: &types.Update{
					TableName: aws.String(s.AccountsTableName),
					Key: map[string]types.AttributeValue{
						"username": &types.AttributeValueMemberS{Value: inTx.AccountUsername},
					},
					UpdateExpression:    aws.String("SET balance = balance + :amount, version = version + :inc"),
					ConditionExpression: aws.String("version = :version"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":amount":  &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", inTx.Amount)},
						":version": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", recipient.Version)},
						":inc":     &types.AttributeValueMemberN{Value: "1"},
					},
				},
			},
			{
				// Operation 3: Append the transfer_out leg.
				Put: &types.Put{
					TableName:           aws.String(s.TransactionsTableName),
					Item:                outAV,
					ConditionExpression: aws.String("attribute_not_exists(id)"),
				},
			},
			{
				// Operation 4: Append the transfer_in leg.
				Put: &types.Put{
					TableName:           aws.String(s.TransactionsTableName),
					Item:                inAV,
					ConditionExpression: aws.String("attribute_not_exists(id)"),
				},
			},
		},
	}

	if _, err := s.Client.TransactWriteItems(ctx, input); err != nil {
		if conditionFailed(err) {
			return nil, nil, storage.ErrStaleAccount
		}
		return nil, nil, fmt.Errorf("failed to execute transfer transaction: %w", err)
	}

	sender.Balance -= outTx.Amount
	sender.Version++
	recipient.Balance += inTx.Amount
	recipient.Version++
	return sender, recipient, nil
}

// conditionFailed reports whether a TransactWriteItems error was caused by a
// conditional check failure rather than an infrastructure problem.
func conditionFailed(err error) bool {
	var txc *types.TransactionCanceledException
	if !errors.As(err, &txc) {
		return false
	}
	for _, reason := range txc.CancellationReasons {
		if reason.Code != nil && *reason.Code == "ConditionalCheckFailed" {
			return true
		}
	}
	return false
}
