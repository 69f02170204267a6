package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"agentcli-bridge/config"
	"agentcli-bridge/driver"
	"agentcli-bridge/httpapi"
	"agentcli-bridge/logger"
	"agentcli-bridge/session"

	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start [port]",
	Short: "Start the adapter's HTTP server",
	Args:  cobra.MaximumNArgs(1),
	Run:   runStart,
}

func runStart(cmd *cobra.Command, args []string) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if len(args) == 1 {
		if _, err := strconv.Atoi(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "invalid port %q\n", args[0])
			os.Exit(1)
		}
		cfg.Port = args[0]
	}

	if available, _ := driver.CheckCLIAvailable(cfg.CLIPath); !available {
		fmt.Fprintf(os.Stderr, "upstream CLI %q not found on PATH\n", cfg.CLIPath)
		os.Exit(1)
	}

	if err := session.VerifyAuth(); err != nil {
		fmt.Fprintf(os.Stderr, "auth check failed: %v\n", err)
		os.Exit(1)
	}

	if watcher, err := config.WatchModelAliasOverrides(cfg); err == nil {
		defer watcher.Close()
	}

	ctx, log := logger.ContextLoggerFromConfig(context.Background(), cfg)

	obs, err := logger.NewObservabilityLogger(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize observability logger: %v\n", err)
		os.Exit(1)
	}
	defer obs.Close()

	store := session.NewStore(cfg.SessionFile, cfg.SessionTTL)
	scheduler, err := session.StartCleanupScheduler(store, func(count int) {
		logger.LogSessionExpired(ctx, log, count)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start session cleanup scheduler: %v\n", err)
		os.Exit(1)
	}
	defer scheduler.Stop()

	handlers := httpapi.NewHandlers(cfg, store, log, obs)
	router := httpapi.NewRouter(handlers)

	if err := httpapi.StartServer(httpapi.StartOptions{Host: cfg.Host, Port: cfg.Port}, router); err != nil {
		fmt.Fprintf(os.Stderr, "failed to start server: %v\n", err)
		os.Exit(1)
	}

	if err := writePIDFile(os.Getpid()); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to write pid file: %v\n", err)
	}
	defer removePIDFile()

	fmt.Printf("agentcli-bridge listening on %s\n", cfg.Addr())
	log.Info("%s agentcli-bridge listening on %s", logger.EmojiLaunch, cfg.Addr())

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpapi.StopServer(shutdownCtx); err != nil {
		fmt.Fprintf(os.Stderr, "error during shutdown: %v\n", err)
		os.Exit(1)
	}
}
