package main

import (
	"context"
	"log"
	"os"

	"github.com/BURAK1289/confession-tip/pkg/storage"
	dydbstore "github.com/BURAK1289/confession-tip/pkg/storage/dynamodb"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/joho/godotenv"
)

var store storage.Reconciler

func init() {
	// Load environment variables for local testing.
	godotenv.Load()

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

// HandleRequest is triggered by an EventBridge Schedule. It sweeps every
// confession, re-derives its counters from the tip ledger, and corrects any
// that drifted. Drift is expected to be rare (a crash between recording a tip
// and bumping its counters), so the sweep mostly verifies and moves on.
func HandleRequest(ctx context.Context) error {
	log.Println("Starting reconciliation sweep of confession aggregates...")

	var scanned, corrected, failed int

	pageToken := ""
	for {
		confessions, nextToken, err := store.ScanConfessions(ctx, pageToken)
		if err != nil {
			log.Printf("ERROR: failed to scan confessions: %v", err)
			return err
		}

		for _, confession := range confessions {
			scanned++

			changed, err := store.RecomputeSubjectAggregates(ctx, confession.ID)
			if err != nil {
				log.Printf("ERROR: failed to reconcile confession %s: %v", confession.ID, err)
				// Continue to the next confession, don't let one failure stop the whole sweep.
				failed++
				continue
			}
			if !changed {
				continue
			}

			corrected++
			log.Printf("Corrected drifted aggregates for confession %s", confession.ID)

			// The owner's received totals are derived from the same tips, so a
			// drifted confession means the owner's stats row may have drifted
			// with it. Payer-side drift is handled by targeted repair tasks.
			if _, err := store.RecomputeUserAggregates(ctx, confession.OwnerAddress); err != nil {
				log.Printf("ERROR: failed to reconcile owner %s of confession %s: %v", confession.OwnerAddress, confession.ID, err)
				failed++
			}
		}

		if nextToken == "" {
			break
		}
		pageToken = nextToken
	}

	log.Printf("Reconciliation sweep finished: %d scanned, %d corrected, %d failures", scanned, corrected, failed)
	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
