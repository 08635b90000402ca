package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Davlis/Invoice-SVC/internal/app"
	"github.com/Davlis/Invoice-SVC/internal/aws"
	"github.com/Davlis/Invoice-SVC/internal/config"
	"github.com/Davlis/Invoice-SVC/internal/handlers"
	"github.com/Davlis/Invoice-SVC/internal/logger"
)

func loadConfig() (*config.Config, error) {
	if path := config.Getenv("CONFIG_FILE", ""); path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer zl.Sync() //nolint:errcheck

	hc, err := app.Build(context.Background(), cfg, zl, aws.NewAWSClients)
	if err != nil {
		zl.Fatal("failed to build components", zap.Error(err))
	}

	gin.SetMode(gin.ReleaseMode)
	r := handlers.NewRouter(hc)

	// RUN_LOCAL=true serves plain HTTP for development.
	if cfg.Server.RunLocal {
		zl.Info("running local server", zap.String("addr", cfg.Server.Addr()))
		if err := r.Run(cfg.Server.Addr()); err != nil {
			zl.Fatal("failed to run local server", zap.Error(err))
		}
		return
	}

	// lambda adapter
	adapter := ginadapter.New(r)

	lambda.Start(func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		return adapter.ProxyWithContext(ctx, req)
	})
}
