package cmd

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/viant/clientcredentials"
	"github.com/viant/clientcredentials/client/orchestrator"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// RunClient executes the client credentials flow options.Runs times concurrently
func RunClient(ctx context.Context, options *ClientOptions, logger *zap.SugaredLogger) error {
	logger.Info("Starting client application")
	cfg, err := options.Config(ctx)
	if err != nil {
		return err
	}
	service, err := clientcredentials.NewClient(cfg, logger)
	if err != nil {
		return err
	}
	runs := options.Runs
	if runs < 1 {
		runs = 1
	}
	var aborted int32
	group := errgroup.Group{}
	for i := 0; i < runs; i++ {
		group.Go(func() error {
			outcome, err := service.Execute(ctx)
			if err != nil {
				logger.Errorw("An error occurred.", "error", err)
			}
			if err != nil || outcome.State == orchestrator.Aborted {
				atomic.AddInt32(&aborted, 1)
			}
			return nil
		})
	}
	_ = group.Wait()
	if options.Strict && aborted > 0 {
		return fmt.Errorf("%d of %d runs aborted", aborted, runs)
	}
	return nil
}
