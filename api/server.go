package api

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/tydonelson/ranked-choice/api/controllers"
	"github.com/tydonelson/ranked-choice/api/transport"
	"github.com/tydonelson/ranked-choice/cache"
	"github.com/tydonelson/ranked-choice/logging"
	"github.com/tydonelson/ranked-choice/storage"
)

type Server struct {
	config *Config
}

func NewServer(config *Config) *Server {
	return &Server{
		config: config,
	}
}

func (s *Server) Start() {
	mode := s.config.Mode
	if mode == "" {
		mode = gin.DebugMode
	}
	r := transport.NewRouter(mode)

	// Create storage
	pollStorage, ballotStorage, err := s.buildStorage(context.Background())
	if err != nil {
		logging.Log.Errorf("failed to set up storage: %v", err)
		panic("failed to set up storage")
	}

	resultsCache := s.buildCache()
	limiter := transport.NewClientLimiter(s.config.VotesPerSecond, s.config.VoteBurst)

	//Register controllers
	pollsController := controllers.NewPollsController(pollStorage)
	pollsController.RegisterRoutes(r)
	votingController := controllers.NewVotingController(pollStorage, ballotStorage, limiter)
	votingController.RegisterRoutes(r)
	resultsController := controllers.NewResultsController(pollStorage, ballotStorage, resultsCache)
	resultsController.RegisterRoutes(r)
	adminController := controllers.NewAdminController(pollStorage, ballotStorage)
	adminController.RegisterRoutes(r)

	//Do not run lambda helper locally
	if os.Getenv("APP_ENV") == "local" {
		startLocal(r, s.config.Port)
	} else {
		startLambda(r)
	}
}

func (s *Server) buildStorage(ctx context.Context) (storage.PollStorage, storage.BallotStorage, error) {
	switch s.config.Driver {
	case "dynamodb", "":
		cfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load AWS config: %w", err)
		}

		dynamoClient := dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
			if s.config.Endpoint != "" {
				o.BaseEndpoint = aws.String(s.config.Endpoint)
			}
		})
		logging.Log.Infof("Using DynamoDB tables %s and %s", s.config.TableNamePolls, s.config.TableNameBallots)

		return &storage.DynamoPollStorage{Client: dynamoClient, TableName: s.config.TableNamePolls},
			&storage.DynamoBallotStorage{Client: dynamoClient, TableName: s.config.TableNameBallots},
			nil
	default:
		db, err := storage.OpenSQL(s.config.Driver, s.config.DSN)
		if err != nil {
			return nil, nil, err
		}
		logging.Log.Infof("Using %s storage", s.config.Driver)

		return &storage.GormPollStorage{DB: db}, &storage.GormBallotStorage{DB: db}, nil
	}
}

func (s *Server) buildCache() cache.ResultsCache {
	if s.config.RedisAddr == "" {
		logging.Log.Info("No redis address configured, results are recomputed on every request")
		return cache.NoopResultsCache{}
	}

	logging.Log.Infof("Caching results in redis at %s", s.config.RedisAddr)
	return &cache.RedisResultsCache{
		Client: redis.NewClient(&redis.Options{Addr: s.config.RedisAddr}),
		TTL:    s.config.TTL,
	}
}

// StartLambda sets up for AWS Lambda
func startLambda(engine *gin.Engine) {
	ginLambda := ginadapter.NewV2(engine)

	handler := func(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
		logging.Log.Infof("Lambda handler triggered on path: %s", req.RawPath)
		return ginLambda.ProxyWithContext(ctx, req)
	}

	logging.Log.Info("Starting lambda")
	lambda.Start(handler)
}

// StartLocal starts a normal HTTP server on the configured port
func startLocal(engine *gin.Engine, port int) {
	logging.Log.Info(fmt.Sprintf("Starting server on http://localhost:%d", port))

	if err := engine.Run(fmt.Sprintf(":%d", port)); err != nil {
		logging.Log.Fatalf("Failed to run server: %v", err)
	}
}
