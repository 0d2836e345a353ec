package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/BURAK1289/confession-tip/pkg/chain"
	"github.com/BURAK1289/confession-tip/pkg/feed"
	"github.com/BURAK1289/confession-tip/pkg/handlers"
	"github.com/BURAK1289/confession-tip/pkg/moderation"
	"github.com/BURAK1289/confession-tip/pkg/ratelimit"
	"github.com/BURAK1289/confession-tip/pkg/repairq"
	dydbstore "github.com/BURAK1289/confession-tip/pkg/storage/dynamodb"
	"github.com/BURAK1289/confession-tip/pkg/tipping"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// AWS Session
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

	store := dydbstore.New(dbClient, tipsTable, confessionsTable, usersTable)

	// Chain verifier, bound to the payment asset contract.
	rpcURL := os.Getenv("ETH_RPC_URL")
	assetAddress := os.Getenv("PAYMENT_ASSET_ADDRESS")
	if rpcURL == "" || assetAddress == "" {
		log.Fatal("ETH_RPC_URL and PAYMENT_ASSET_ADDRESS environment variables must be set")
	}
	verifier, err := chain.NewEthVerifier(rpcURL, assetAddress)
	if err != nil {
		log.Fatalf("failed to create chain verifier: %v", err)
	}

	// Repair queue for aggregate corrections. Without a queue the scheduled
	// reconciliation sweep still corrects drift, just later.
	var repairs repairq.Queue
	if queueURL := os.Getenv("REPAIR_QUEUE_URL"); queueURL != "" {
		repairs = repairq.NewSQSQueue(sqs.NewFromConfig(cfg), queueURL)
	} else {
		log.Println("REPAIR_QUEUE_URL not set, async aggregate repair disabled")
	}

	// Rate limiter: shared window in Redis when configured, otherwise
	// per-instance memory.
	var limiter ratelimit.Limiter
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		limiter = ratelimit.NewRedisLimiter(redisAddr, os.Getenv("REDIS_PASSWORD"), 0)
		log.Printf("Rate limiting via Redis at %s", redisAddr)
	} else {
		limiter = ratelimit.NewMemory()
		log.Println("REDIS_ADDR not set, rate limiting per instance in memory")
	}

	tips := tipping.NewService(store, verifier, limiter, repairs)
	tips.Policy = tipPolicy()

	// Moderation classifier for new confessions.
	var classifier moderation.Classifier
	if moderationURL := os.Getenv("MODERATION_API_URL"); moderationURL != "" {
		classifier = moderation.NewHTTPClassifier(moderationURL)
	} else {
		log.Println("MODERATION_API_URL not set, confessions will not be reviewed")
		classifier = moderation.Static{}
	}

	router := handlers.NewRouter(handlers.Deps{
		Store:      store,
		Tips:       tips,
		Classifier: classifier,
		Hub:        feed.NewHub(),
	})

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080" // Default port if not specified
	}

	log.Printf("Starting server on port %s", port)

	// Start the server
	err = http.ListenAndServe(":"+port, router)
	if err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// tipPolicy returns the per-payer tip cap, with optional env overrides.
func tipPolicy() ratelimit.Policy {
	policy := ratelimit.DefaultTipPolicy

	if raw := os.Getenv("TIP_RATE_MAX"); raw != "" {
		max, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || max <= 0 {
			log.Fatalf("invalid TIP_RATE_MAX: %q", raw)
		}
		policy.Max = max
	}
	if raw := os.Getenv("TIP_RATE_WINDOW"); raw != "" {
		window, err := time.ParseDuration(raw)
		if err != nil || window <= 0 {
			log.Fatalf("invalid TIP_RATE_WINDOW: %q", raw)
		}
		policy.Window = window
	}

	return policy
}
