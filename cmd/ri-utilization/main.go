package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/edvin/ri-utilization/internal/api/handler"
	"github.com/edvin/ri-utilization/internal/api/request"
	"github.com/edvin/ri-utilization/internal/awsclient"
	"github.com/edvin/ri-utilization/internal/config"
	"github.com/edvin/ri-utilization/internal/logging"
	"github.com/edvin/ri-utilization/internal/model"
	"github.com/edvin/ri-utilization/internal/platform"
	"github.com/edvin/ri-utilization/internal/reservation"
)

func main() {
	fs := flag.NewFlagSet("ri-utilization", flag.ExitOnError)
	payload := fs.String("payload", "-", "Path to the invocation payload JSON, or - for stdin")
	timeout := fs.Duration("timeout", 2*time.Minute, "Maximum time for the whole invocation")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: ri-utilization [-payload FILE] [-timeout DURATION]")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Publishes the trailing-week reserved instance utilization as a CloudWatch metric.")
		fmt.Fprintln(os.Stderr)
		fs.PrintDefaults()
	}
	fs.Parse(os.Args[1:])

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate("cli"); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	req, err := readPayload(*payload, os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	logger := logging.NewLogger(cfg)
	ctx = logger.With().Str("invocation_id", platform.NewID()).Logger().WithContext(ctx)

	awsCfg, err := awsclient.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	bridge := reservation.NewBridge(
		reservation.NewQueryBuilder(reservation.SystemClock),
		awsclient.NewCostExplorer(awsCfg, cfg),
		reservation.NewMetricPublisher(awsclient.NewCloudWatch(awsCfg, cfg), logger),
		nil,
		logger,
	)

	if err := run(ctx, bridge, req, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// readPayload decodes and validates the invocation payload at path, reading
// stdin when path is "-".
func readPayload(path string, stdin io.Reader) (*model.InvocationRequest, error) {
	rd := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open payload: %w", err)
		}
		defer f.Close()
		rd = f
	}

	var req model.InvocationRequest
	if err := request.DecodeReader(rd, &req); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	return &req, nil
}

func run(ctx context.Context, bridge handler.Runner, req *model.InvocationRequest, out io.Writer) error {
	ack, err := bridge.Run(ctx, req)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, ack.String())
	return err
}
