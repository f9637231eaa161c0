// Package awsclient builds the Cost Explorer and CloudWatch clients used by
// the bridge.
package awsclient

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"

	"github.com/edvin/ri-utilization/internal/config"
)

// Load resolves the shared AWS configuration (region, credentials) from the
// default chain: environment, shared config files, then the execution role.
func Load(ctx context.Context) (aws.Config, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return aws.Config{}, fmt.Errorf("load aws config: %w", err)
	}
	return awsCfg, nil
}

// NewCostExplorer returns a Cost Explorer client signed for the configured
// Cost Explorer region rather than the process region.
func NewCostExplorer(awsCfg aws.Config, cfg *config.Config) *costexplorer.Client {
	return costexplorer.NewFromConfig(awsCfg, costExplorerOptions(cfg))
}

// NewCloudWatch returns a CloudWatch client in the process region, so metrics
// land next to the function that publishes them.
func NewCloudWatch(awsCfg aws.Config, cfg *config.Config) *cloudwatch.Client {
	return cloudwatch.NewFromConfig(awsCfg, cloudWatchOptions(cfg))
}

func costExplorerOptions(cfg *config.Config) func(*costexplorer.Options) {
	return func(o *costexplorer.Options) {
		if cfg.CostExplorerRegion != "" {
			o.Region = cfg.CostExplorerRegion
		}
		if cfg.CostExplorerEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.CostExplorerEndpoint)
		}
	}
}

func cloudWatchOptions(cfg *config.Config) func(*cloudwatch.Options) {
	return func(o *cloudwatch.Options) {
		if cfg.CloudWatchEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.CloudWatchEndpoint)
		}
	}
}
