package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/maskvault/maskvault/internal/cipher"
	"github.com/maskvault/maskvault/internal/config"
	"github.com/maskvault/maskvault/internal/fake"
	"github.com/maskvault/maskvault/internal/keystore"
	"github.com/maskvault/maskvault/internal/migrate"
	"github.com/maskvault/maskvault/internal/repository/sqlite"
	"github.com/maskvault/maskvault/internal/service"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

var (
	flagDataDir string
	flagDBPath  string
	flagKeyPath string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "maskvault",
	Short: "Manage a privacy-safe local test dataset",
	Long: `maskvault seeds, anonymizes, encrypts, decrypts and lists a local test
user dataset. Records live in a SQLite file and the encryption key in a key
file, both under one storage directory. Every invocation runs exactly one
operation and exits.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (built %s)", version, buildDate)

	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "storage directory (env MASKVAULT_DATA_DIR)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "database file path (env MASKVAULT_DB_PATH)")
	rootCmd.PersistentFlags().StringVar(&flagKeyPath, "key-file", "", "key file path (env MASKVAULT_KEY_PATH)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(anonymizeCmd)
	rootCmd.AddCommand(encryptCmd)
	rootCmd.AddCommand(decryptCmd)
	rootCmd.AddCommand(listCmd)
}

// app bundles everything a subcommand needs to run one operation.
type app struct {
	cfg config.Config
	log *zap.Logger
	svc service.DatasetService
}

// newApp resolves configuration, opens storage, applies schema migrations and
// wires the service. The cleanup closes the database and flushes logs.
func newApp(ctx context.Context) (*app, func(), error) {
	cfg := config.Load(flagDataDir, flagDBPath, flagKeyPath)

	logger, err := newLogger(flagVerbose)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("resolved configuration",
		zap.String("db", cfg.DBPath),
		zap.String("key_file", cfg.KeyPath),
	)

	db, err := sqlite.Open(ctx, cfg.DBPath)
	if err != nil {
		_ = logger.Sync()
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	if err := migrate.Up(ctx, db.SQL); err != nil {
		_ = db.Close()
		_ = logger.Sync()
		return nil, nil, fmt.Errorf("apply schema: %w", err)
	}

	repo := sqlite.NewUserRepo(db)
	sealer := func() (service.Sealer, error) {
		key, err := keystore.GetOrCreate(cfg.KeyPath)
		if err != nil {
			return nil, err
		}
		return cipher.New(key)
	}
	svc := service.NewDatasetService(repo, fake.NewFaker(0), sealer, nil)

	cleanup := func() {
		_ = db.Close()
		_ = logger.Sync()
	}
	return &app{cfg: cfg, log: logger, svc: svc}, cleanup, nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	return cfg.Build()
}
