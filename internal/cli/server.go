package cli

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/bankd/bankd/internal/config"
	"github.com/bankd/bankd/internal/di"
	"github.com/bankd/bankd/internal/rpc/rpc_types"
)

var (
	// Server flags
	port     int
	bindAddr string
)

// serverCmd represents the server command (default action)
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the banking daemon server",
	Long: `Start the bankd server which provides:
- HTTP JSON-RPC API endpoints
- WebSocket command endpoint
- Health check endpoint

This is the default command when no subcommand is specified.`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serverCmd)

	// Set server as the default command
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return serverCmd.RunE(cmd, args)
	}

	// Server-specific flags; these override the configuration file.
	serverCmd.Flags().IntVarP(&port, "port", "p", 0, "port to listen on (overrides config)")
	serverCmd.Flags().StringVar(&bindAddr, "bind", "", "address to bind to (overrides config)")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := loadServerConfig()
	if err != nil {
		return err
	}

	if cfg.DebugLogfile != "" {
		logFile, err := os.OpenFile(cfg.DebugLogfile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open debug logfile: %w", err)
		}
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	container := di.New()
	provider := di.NewProvider(container, cfg)
	if err := provider.RegisterAll(); err != nil {
		return fmt.Errorf("failed to register services: %w", err)
	}

	bankSvc, err := provider.GetBank()
	if err != nil {
		return fmt.Errorf("failed to build bank: %w", err)
	}
	journal, err := provider.GetJournal()
	if err != nil {
		return fmt.Errorf("failed to build journal: %w", err)
	}
	httpServer, err := provider.GetRPCServer()
	if err != nil {
		return fmt.Errorf("failed to build rpc server: %w", err)
	}
	wsServer, err := provider.GetWSServer()
	if err != nil {
		return fmt.Errorf("failed to build websocket server: %w", err)
	}

	// Handlers resolve the bank through the process-wide registry.
	rpc_types.Services = &rpc_types.ServiceRegistry{
		Bank:    bankSvc,
		Journal: journal,
		Version: rootCmd.Version,
		Started: time.Now(),
	}

	mux := http.NewServeMux()
	mux.Handle("/", httpServer)
	mux.Handle("/rpc", httpServer)
	mux.Handle("/ws", wsServer)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"bankd"}`))
	})

	listenAddr := cfg.Server.GetBindAddress()
	if !quiet {
		fmt.Println("Starting bankd - In-memory Banking Daemon")
		fmt.Printf("  - HTTP JSON-RPC: http://%s/\n", listenAddr)
		fmt.Printf("  - HTTP JSON-RPC: http://%s/rpc\n", listenAddr)
		fmt.Printf("  - WebSocket:     ws://%s/ws\n", listenAddr)
		fmt.Printf("  - Health Check:  http://%s/health\n", listenAddr)
		fmt.Printf("  - Max in-flight operations per user: %d\n", bankSvc.InflightLimit())
	}
	log.Printf("Listening on %s", listenAddr)

	if err := http.ListenAndServe(listenAddr, mux); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// loadServerConfig loads the configuration and applies flag overrides.
func loadServerConfig() (*config.Config, error) {
	path := configFile
	if path == "" {
		path = config.DefaultConfigPath()
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}

	if port != 0 {
		cfg.Server.Port = port
	}
	if bindAddr != "" {
		cfg.Server.IP = bindAddr
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
