package main

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"github.com/BURAK1289/confession-tip/pkg/repairq"
	"github.com/BURAK1289/confession-tip/pkg/storage"
	dydbstore "github.com/BURAK1289/confession-tip/pkg/storage/dynamodb"
	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/joho/godotenv"
)

var store storage.Reconciler

func init() {
	// Load environment variables from .env file (useful for local testing).
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize dependencies once.
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := dynamodb.NewFromConfig(cfg)
	tipsTable := os.Getenv("DYNAMODB_TIPS_TABLE_NAME")
	confessionsTable := os.Getenv("DYNAMODB_CONFESSIONS_TABLE_NAME")
	usersTable := os.Getenv("DYNAMODB_USERS_TABLE_NAME")

	if tipsTable == "" || confessionsTable == "" || usersTable == "" {
		log.Fatal("One or more DynamoDB table name environment variables are not set")
	}

	store = dydbstore.New(dbClient, tipsTable, confessionsTable, usersTable)
}

// HandleRequest processes repair tasks enqueued when a recorded tip could not
// update its aggregates. Recomputing from the ledger is idempotent, so SQS
// redeliveries and already-repaired rows are both harmless.
func HandleRequest(ctx context.Context, sqsEvent events.SQSEvent) error {
	for _, message := range sqsEvent.Records {
		log.Printf("Processing message %s", message.MessageId)

		var task repairq.Task
		if err := json.Unmarshal([]byte(message.Body), &task); err != nil {
			log.Printf("ERROR: failed to unmarshal repair task from SQS message %s: %v", message.MessageId, err)
			// Returning an error will cause SQS to retry the message, which is appropriate here.
			return err
		}

		log.Printf("Repairing aggregates for confession %s (reference %s)", task.SubjectID, task.Reference)

		if _, err := store.RecomputeSubjectAggregates(ctx, task.SubjectID); err != nil {
			log.Printf("ERROR: failed to repair confession %s: %v", task.SubjectID, err)
			return err
		}
		if _, err := store.RecomputeUserAggregates(ctx, task.PayerAddress); err != nil {
			log.Printf("ERROR: failed to repair payer %s: %v", task.PayerAddress, err)
			return err
		}
		if _, err := store.RecomputeUserAggregates(ctx, task.OwnerAddress); err != nil {
			log.Printf("ERROR: failed to repair owner %s: %v", task.OwnerAddress, err)
			return err
		}

		log.Printf("Successfully repaired aggregates for confession %s", task.SubjectID)
	}

	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
