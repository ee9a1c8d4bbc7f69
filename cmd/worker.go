package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/hanifm/school-management/internal/auth"
	authPostgres "github.com/hanifm/school-management/internal/auth/postgres"
	"github.com/hanifm/school-management/pkg/logger"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Start background workers",
	Long:  `Start and manage background workers like session cleanup.`,
}

var sessionWorkerCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Start the session cleanup worker",
	Long:  `Periodically deactivate expired user sessions. Use --once for a single sweep.`,
	Run: func(cmd *cobra.Command, args []string) {
		startSessionWorker()
	},
}

var (
	cleanupInterval time.Duration
	cleanupOnce     bool
)

func startSessionWorker() {
	config, err := loadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open gorm: %v\n", err)
		os.Exit(1)
	}

	tracker := auth.NewSessionTracker(authPostgres.NewSessionRepository(gormDB), nil, log)

	sweep := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		n, err := tracker.CleanupExpired(ctx)
		if err != nil {
			log.Error("session cleanup failed", "error", err)
			return
		}
		log.Info("session cleanup complete", "deactivated", n)
	}

	sweep()
	if cleanupOnce {
		return
	}

	log.Info("session cleanup worker running", "interval", cleanupInterval)

	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-ticker.C:
			sweep()
		case sig := <-sigChan:
			log.Info("received signal, shutting down session worker", "signal", sig)
			return
		}
	}
}

func init() {
	sessionWorkerCmd.Flags().DurationVar(&cleanupInterval, "interval", time.Hour, "Time between cleanup sweeps")
	sessionWorkerCmd.Flags().BoolVar(&cleanupOnce, "once", false, "Run a single sweep and exit")

	workerCmd.AddCommand(sessionWorkerCmd)

	rootCmd.AddCommand(workerCmd)
}
