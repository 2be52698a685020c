package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"taskmaster/internal/config"
	"taskmaster/internal/logging"
	"taskmaster/internal/session"
	"taskmaster/internal/storage"
	"taskmaster/internal/task"
	"taskmaster/internal/ui"
)

var (
	configFlag   string
	logFileFlag  string
	logLevelFlag string
)

var rootCmd = &cobra.Command{
	Use:   "taskmaster",
	Short: "Terminal task manager",
	Long: `TaskMaster keeps a list of tasks for the current session: a dashboard,
a filterable task list, statistics and a settings panel with JSON
export and import. Nothing is written to disk except exports and logs.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "config file (default is "+config.DefaultConfigFileName+")")
	rootCmd.PersistentFlags().StringVar(&logFileFlag, "log-file", "", "log file, overrides log_file")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "DEBUG, INFO, WARN or ERROR")
}

// loadConfig resolves the config file and layers env and flag overrides on top.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	e, err := config.ParseEnv()
	if err != nil {
		return config.Config{}, err
	}
	cfg, err := config.LoadOrCreate(config.ResolveConfigPath(configFlag, e))
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	cfg = e.Apply(cfg)
	if cmd.Flags().Changed("log-file") {
		cfg.LogFile = logFileFlag
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = logLevelFlag
	}
	return cfg, nil
}

// openSession opens the in-memory store, seeding it when asked.
func openSession(ctx context.Context, seed bool, opts ...session.Option) (*session.Session, *storage.Store, error) {
	store, err := storage.Open(storage.MemoryDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open store: %w", err)
	}
	if seed {
		if err := store.Seed(ctx, task.Fixtures()); err != nil {
			store.Close()
			return nil, nil, fmt.Errorf("failed to seed store: %w", err)
		}
	}
	return session.New(store, opts...), store, nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to open log: %w", err)
	}
	defer log.Close()

	sess, store, err := openSession(cmd.Context(), cfg.Seed, session.WithLogger(log))
	if err != nil {
		return err
	}
	defer store.Close()

	log.Info("starting", "export_dir", cfg.ExportDir, "seeded", cfg.Seed)
	if err := ui.Run(sess, cfg, log); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
