package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/metalagman/chatprobe"
	"github.com/metalagman/chatprobe/scenario"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type scenarioOptions struct {
	only      int
	from      int
	file      string
	noCleanup bool
	list      bool
	timeout   time.Duration
}

var errScenariosFailed = errors.New("one or more scenarios failed")

// newCleaner is replaced in tests.
var newCleaner = func(cfg chatprobe.RedisConfig) (scenario.Cleaner, io.Closer) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	return scenario.NewRedisCleaner(client), client
}

func newScenarioCmd(root *rootOptions) *cobra.Command {
	opts := &scenarioOptions{}
	cmd := &cobra.Command{
		Use:   "scenario",
		Short: "Run scripted multi-turn conversations and grade the replies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runScenarios(cmd, root, opts)
		},
	}

	cmd.Flags().IntVar(&opts.only, "scenario", 0, "run only this scenario number")
	cmd.Flags().IntVar(&opts.from, "from", 0, "run from this scenario number onward")
	cmd.Flags().StringVar(&opts.file, "file", "", "YAML suite to run instead of the built-in broker suite")
	cmd.Flags().BoolVar(&opts.noCleanup, "no-cleanup", false, "keep Redis conversation state between runs")
	cmd.Flags().BoolVar(&opts.list, "list", false, "list scenarios and exit")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "timeout per chat request (default CHATPROBE_SCENARIO_TIMEOUT or 2m)")

	return cmd
}

func loadSuite(path string) ([]scenario.Scenario, error) {
	if path == "" {
		return scenario.Default()
	}

	return scenario.LoadFile(path)
}

func runScenarios(cmd *cobra.Command, root *rootOptions, opts *scenarioOptions) error {
	all, err := loadSuite(opts.file)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if opts.list {
		for i, sc := range all {
			_, _ = fmt.Fprintf(out, "%2d. %s (%s, %d turns)\n", i+1, sc.Name, sc.UserID, len(sc.Turns))
		}

		return nil
	}

	selected, err := scenario.Select(all, opts.only, opts.from)
	if err != nil {
		return err
	}

	d, err := chatprobe.NewHTTPDispatcher(
		endpoint,
		chatprobe.WithTimeout(resolveTimeout(cmd, opts.timeout, root.cfg.ScenarioTimeout)),
	)
	if err != nil {
		return err
	}

	p, err := chatprobe.NewProbe(d)
	if err != nil {
		return err
	}

	var cleaner scenario.Cleaner = scenario.NopCleaner{}

	if !opts.noCleanup {
		c, closer := newCleaner(root.cfg.Redis)
		defer func() {
			if err := closer.Close(); err != nil {
				zerolog.Ctx(cmd.Context()).Warn().Err(err).Msg("close redis client")
			}
		}()

		cleaner = c
	}

	runner, err := scenario.NewRunner(p, out, scenario.WithCleaner(cleaner))
	if err != nil {
		return err
	}

	summary := runner.Run(cmd.Context(), selected, len(all))
	if summary.Failed() {
		return errScenariosFailed
	}

	return nil
}
