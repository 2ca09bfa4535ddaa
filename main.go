package main

import (
	"context"
	"database/sql"
	"log"
	"os"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/streadway/amqp"
	"google.golang.org/adk/runner"
	"google.golang.org/adk/session"

	"resumecheck/internal/database"
	"resumecheck/internal/match"
)

func main() {
	_ = godotenv.Load()
	dbUrl := os.Getenv("DB_URL")
	if dbUrl == "" {
		log.Fatal("empty DB_URL in environment")
	}

	db, err := sql.Open("postgres", dbUrl)
	if err != nil {
		log.Fatal("error opening db. err: ", err)
	}

	app := &AppConfig{
		DB:   database.New(db),
		Port: os.Getenv("PORT"),
	}
	if app.Port == "" {
		app.Port = "5000"
	}

	googleApiKey := os.Getenv("GOOGLE_API_KEY")
	if googleApiKey != "" {
		embedder, err := match.NewEmbedder(context.Background(), googleApiKey)
		if err != nil {
			log.Fatalf("failed to create embedder: %v", err)
		}
		app.Embedder = embedder
	} else {
		log.Println("GOOGLE_API_KEY not set, semantic scoring falls back to tf-idf")
	}

	// batch processing is on only when a broker is configured; the R2 vars
	// become mandatory with it
	rabbitmqUrl := os.Getenv("RABBITMQ_URL")
	if rabbitmqUrl != "" {
		r2AccountId := os.Getenv("R2_ACCCOUNT_ID")
		if r2AccountId == "" {
			log.Fatal("empty R2_ACCCOUNT_ID in environment")
		}
		r2Bucket := os.Getenv("R2_BUCKET")
		if r2Bucket == "" {
			log.Fatal("empty R2_BUCKET in environment")
		}
		r2SecretKey := os.Getenv("R2_SECRET_KEY")
		if r2SecretKey == "" {
			log.Fatal("empty R2_SECRET_KEY in environment")
		}
		r2AccessKey := os.Getenv("R2_ACCESS_KEY")
		if r2AccessKey == "" {
			log.Fatal("empty R2_ACCESS_KEY in environment")
		}
		r2Config := R2Config{
			AccountID: r2AccountId,
			AccessKey: r2AccessKey,
			SecretKey: r2SecretKey,
			Bucket:    r2Bucket,
		}
		awsConfig, err := config.LoadDefaultConfig(context.TODO(),
			config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(r2Config.AccessKey, r2Config.SecretKey, "")),
			config.WithRegion("auto"),
		)
		if err != nil {
			log.Fatal("error creating aws config", err)
		}

		conn, err := amqp.Dial(rabbitmqUrl)
		if err != nil {
			log.Fatalf("error connecting to RabbitMQ. err:  %v", err)
		}

		app.R2 = &r2Config
		app.AwsConfig = &awsConfig
		app.RABBITMQUrl = rabbitmqUrl
		app.RabbitConn = conn

		if googleApiKey != "" {
			agentName := "resume reviewer"
			reviewer, err := GetReviewerAgent(googleApiKey, agentName)
			if err != nil {
				log.Fatalf("failed to create agent: %v", err)
			}

			inMemoryService := session.InMemoryService()
			r, err := runner.New(runner.Config{
				AppName:        reviewer.Name(),
				Agent:          reviewer,
				SessionService: inMemoryService,
			})
			if err != nil {
				log.Fatalf("failed to create runner: %v", err)
			}
			app.AgentName = agentName
			app.AgentRunner = r
			app.AgentSessionService = inMemoryService
		}

		log.Println("Starting 3 workers consumer pool")
		go app.StartConsumerWorkerPool(3)
	}

	router := app.newRouter()
	log.Printf("listening on :%s", app.Port)
	if err := router.Run(":" + app.Port); err != nil {
		log.Fatal("server error: ", err)
	}
}
