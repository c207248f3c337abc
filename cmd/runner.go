package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/jessevdk/go-flags"
)

// Run parses args and executes the selected command
func Run(args []string) error {
	options := &Options{}
	parser := flags.NewParser(options, flags.Default)
	if _, err := parser.ParseArgs(args); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return nil
		}
		return err
	}
	if parser.Active == nil {
		return errors.New("command was empty")
	}
	logger, err := NewLogger(options.LogLevel, options.LogFormat)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	ctx := context.Background()
	switch parser.Active.Name {
	case "client":
		return RunClient(ctx, &options.Client, logger)
	case "authority":
		return RunAuthority(ctx, &options.Authority, logger)
	case "api":
		return RunAPI(ctx, &options.API, logger)
	}
	return fmt.Errorf("unsupported command: %v", parser.Active.Name)
}
