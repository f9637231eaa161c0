package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/edvin/ri-utilization/internal/awsclient"
	"github.com/edvin/ri-utilization/internal/config"
	"github.com/edvin/ri-utilization/internal/logging"
	"github.com/edvin/ri-utilization/internal/reservation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate("lambda"); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg)

	awsCfg, err := awsclient.Load(context.Background())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load aws config")
	}

	bridge := reservation.NewBridge(
		reservation.NewQueryBuilder(reservation.SystemClock),
		awsclient.NewCostExplorer(awsCfg, cfg),
		reservation.NewMetricPublisher(awsclient.NewCloudWatch(awsCfg, cfg), logger),
		nil,
		logger,
	)

	logger.Info().Str("cost_explorer_region", cfg.CostExplorerRegion).Msg("starting lambda handler")
	lambda.Start(newInvocationHandler(bridge, logger).Handle)
}
