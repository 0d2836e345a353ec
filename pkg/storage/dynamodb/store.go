package dynamodb

import (
	"context"

	"github.com/BURAK1289/confession-tip/pkg/storage"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// DynamoDBAPI is the subset of the DynamoDB client the store uses.
// *dynamodb.Client satisfies it; tests substitute a generated mock.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// Store implements the Storage interface using AWS DynamoDB.
type Store struct {
	Client               DynamoDBAPI
	TipsTableName        string
	ConfessionsTableName string
	UsersTableName       string
}

// New creates a new Store.
func New(client DynamoDBAPI, tipsTable, confessionsTable, usersTable string) *Store {
	return &Store{
		Client:               client,
		TipsTableName:        tipsTable,
		ConfessionsTableName: confessionsTable,
		UsersTableName:       usersTable,
	}
}

// Make sure we conform to the interface
var _ storage.Storage = (*Store)(nil)
