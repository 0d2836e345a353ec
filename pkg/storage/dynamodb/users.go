package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BURAK1289/confession-tip/pkg/models"
	"github.com/BURAK1289/confession-tip/pkg/storage"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// EnsureUser returns the stats row for an address, creating it on first
// touch. The conditional put means two concurrent first touches race safely:
// the loser reads the winner's row.
func (s *Store) EnsureUser(ctx context.Context, address string) (*models.UserStats, error) {
	user := &models.UserStats{
		Address:      models.NormalizeAddress(address),
		ReferralCode: models.NewReferralCode(),
		CreatedAt:    time.Now(),
	}

	userAV, err := attributevalue.MarshalMap(user)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal user stats: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName:           aws.String(s.UsersTableName),
		Item:                userAV,
		ConditionExpression: aws.String("attribute_not_exists(#address)"),
		ExpressionAttributeNames: map[string]string{
			"#address": "address",
		},
	}

	_, err = s.Client.PutItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return s.GetUser(ctx, address)
		}
		return nil, fmt.Errorf("failed to create user stats in DynamoDB: %w", err)
	}

	return user, nil
}

// GetUser retrieves a user's stats from DynamoDB by their address.
func (s *Store) GetUser(ctx context.Context, address string) (*models.UserStats, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"address": models.NormalizeAddress(address)})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal user address: %w", err)
	}

	input := &dynamodb.GetItemInput{
		TableName: aws.String(s.UsersTableName),
		Key:       key,
	}

	result, err := s.Client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get user stats from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, fmt.Errorf("user %s: %w", address, storage.ErrUserNotFound)
	}

	var user models.UserStats
	if err := attributevalue.UnmarshalMap(result.Item, &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user stats: %w", err)
	}

	return &user, nil
}

// AddUserTipsGiven atomically adds amountMicro to the address's given total.
func (s *Store) AddUserTipsGiven(ctx context.Context, address string, amountMicro int64) error {
	return s.addUserTotal(ctx, address, "total_tips_given_micro", amountMicro)
}

// AddUserTipsReceived atomically adds amountMicro to the address's received total.
func (s *Store) AddUserTipsReceived(ctx context.Context, address string, amountMicro int64) error {
	return s.addUserTotal(ctx, address, "total_tips_received_micro", amountMicro)
}

func (s *Store) addUserTotal(ctx context.Context, address, attribute string, amountMicro int64) error {
	amountAV, err := attributevalue.Marshal(amountMicro)
	if err != nil {
		return fmt.Errorf("failed to marshal amount: %w", err)
	}

	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.UsersTableName),
		Key: map[string]types.AttributeValue{
			"address": &types.AttributeValueMemberS{Value: models.NormalizeAddress(address)},
		},
		UpdateExpression:    aws.String("ADD #total :amount"),
		ConditionExpression: aws.String("attribute_exists(#address)"),
		ExpressionAttributeNames: map[string]string{
			"#total":   attribute,
			"#address": "address",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":amount": amountAV,
		},
	}

	_, err = s.Client.UpdateItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return fmt.Errorf("user %s: %w", address, storage.ErrUserNotFound)
		}
		return fmt.Errorf("failed to update %s: %w", attribute, err)
	}

	return nil
}
