package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/mattias-p/Signal-Queue/internal/config"
	"github.com/mattias-p/Signal-Queue/pkg/observability"
	"github.com/mattias-p/Signal-Queue/pkg/sigqueue"
)

type waitOptions struct {
	configPath string
	signals    []string
	count      int
	reload     bool
}

func newWaitCmd() *cobra.Command {
	opts := waitOptions{}
	cmd := &cobra.Command{
		Use:   "wait",
		Short: "Wait for managed signals and print each one as it is consumed",
		Long: `Wait installs handlers for the configured signals and prints each
signal's name to stdout as it is consumed, one per line, in delivery
order. Repeat deliveries of an unconsumed signal coalesce into a single
line. The loop ends when the quit signal is consumed or --count signals
have been printed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWait(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", getenvDefault("SIGWAIT_CONFIG", ""), "config file (YAML)")
	cmd.Flags().StringSliceVar(&opts.signals, "signal", nil, "signal to manage (repeatable; overrides the config file)")
	cmd.Flags().IntVar(&opts.count, "count", 0, "exit after this many signals (0 = run until the quit signal)")
	cmd.Flags().BoolVar(&opts.reload, "reload", false, "re-initialize the session when the config file changes")
	return cmd
}

func loadWaitConfig(opts waitOptions) (*config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if len(opts.signals) > 0 {
		cfg.Signals = opts.signals
	}
	if len(cfg.Signals) == 0 {
		return nil, fmt.Errorf("no signals configured; use --signal or a config file")
	}
	return cfg, nil
}

// managedSet returns the signal list with the quit signal appended when
// missing, so the loop can always be terminated.
func managedSet(cfg *config.Config) []string {
	if slices.Contains(cfg.Signals, cfg.QuitSignal) {
		return cfg.Signals
	}
	return append(slices.Clone(cfg.Signals), cfg.QuitSignal)
}

type waitResult struct {
	name string
	err  error
}

func runWait(ctx context.Context, cmd *cobra.Command, opts waitOptions) error {
	cfg, err := loadWaitConfig(opts)
	if err != nil {
		return err
	}

	logger := observability.NewLogger(observability.LoggingOptions{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	reloadCh := make(chan *config.Config, 1)
	if opts.reload {
		if opts.configPath == "" {
			return fmt.Errorf("--reload requires --config")
		}
		w, err := config.NewWatcher(config.WatcherConfig{
			Path: opts.configPath,
			OnChange: func(newCfg *config.Config, err error) {
				if err != nil {
					logger.Error("config reload failed", "error", err)
					return
				}
				select {
				case reloadCh <- newCfg:
				default:
				}
			},
		})
		if err != nil {
			return err
		}
		if err := w.Start(ctx); err != nil {
			return err
		}
		defer w.Stop()
	}

	consumed := 0
	for {
		session, err := sigqueue.Init(managedSet(cfg), sigqueue.Options{ExtraFlags: cfg.ExtraFlags})
		if err != nil {
			return err
		}
		session.SetLogger(logger)
		logger.Info("waiting for signals",
			"session_id", session.ID(),
			"signals", session.Managed(),
			"quit_signal", cfg.QuitSignal)

		done, newCfg, err := waitLoop(ctx, cmd, session, cfg, logger, reloadCh, &consumed, opts.count)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		cfg = newCfg
	}
}

// waitLoop consumes signals until the quit signal, the count limit, a
// context cancellation, or a config reload. It deinitializes the session
// before returning; a reload returns done=false with the new config so the
// caller re-initializes.
func waitLoop(ctx context.Context, cmd *cobra.Command, session *sigqueue.Session, cfg *config.Config,
	logger *slog.Logger, reloadCh <-chan *config.Config, consumed *int, count int) (bool, *config.Config, error) {

	results := make(chan waitResult, 1)
	go func() {
		for {
			name, err := session.Wait()
			results <- waitResult{name: name, err: err}
			if err != nil {
				return
			}
		}
	}()
	// A signal consumed between the last select iteration and Deinit still
	// gets printed.
	defer flushResults(cmd, results)

	for {
		select {
		case res := <-results:
			if res.err != nil {
				// The session went away under the waiter.
				if errors.Is(res.err, sigqueue.ErrNotInitialized) {
					return true, nil, nil
				}
				return false, nil, res.err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.name)
			*consumed++
			if res.name == cfg.QuitSignal {
				logger.Info("quit signal consumed", "signal", res.name)
				return true, nil, deinit(session, logger)
			}
			if count > 0 && *consumed >= count {
				logger.Info("signal count reached", "count", *consumed)
				return true, nil, deinit(session, logger)
			}

		case newCfg := <-reloadCh:
			logger.Info("config changed, re-initializing session",
				"signals", newCfg.Signals)
			if len(newCfg.Signals) == 0 {
				logger.Error("reloaded config has no signals, keeping current session")
				continue
			}
			if err := deinit(session, logger); err != nil {
				return false, nil, err
			}
			return false, newCfg, nil

		case <-ctx.Done():
			return true, nil, deinit(session, logger)
		}
	}
}

func flushResults(cmd *cobra.Command, results <-chan waitResult) {
	select {
	case res := <-results:
		if res.err == nil {
			fmt.Fprintln(cmd.OutOrStdout(), res.name)
		}
	default:
	}
}

func deinit(session *sigqueue.Session, logger *slog.Logger) error {
	pending, err := session.Deinit()
	if err != nil {
		if errors.Is(err, sigqueue.ErrNotInitialized) {
			return nil
		}
		return err
	}
	if len(pending) > 0 {
		logger.Info("signals left unconsumed", "pending", pending)
	}
	return nil
}
