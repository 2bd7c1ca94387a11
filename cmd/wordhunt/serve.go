package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/wordhunt/internal/platform/httpapi"
	"github.com/vovakirdan/wordhunt/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHTTPAddr    string
	flagHostKey     string
	flagIdleTimeout int
	flagNoSSH       bool
	flagNoHTTP      bool
	flagServeStyle  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the wordhunt SSH server and HTTP API",
	Long: `Start an SSH server where every connection gets its own game, and a
JSON API over HTTP for other clients. Both share one database, so all
players share the same leaderboard.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.wordhunt/host_key

Examples:
  wordhunt serve                        # Both servers on the configured addresses
  wordhunt serve --ssh :2222            # SSH on port 2222
  wordhunt serve --no-http              # SSH only
  wordhunt serve --no-ssh --http :9000  # HTTP API only

Users can connect with:
  ssh localhost -p 23235`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default from config)")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "HTTP API address (default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes (default from config)")
	serveCmd.Flags().BoolVar(&flagNoSSH, "no-ssh", false, "Do not start the SSH server")
	serveCmd.Flags().BoolVar(&flagNoHTTP, "no-http", false, "Do not start the HTTP API")
	serveCmd.Flags().StringVar(&flagServeStyle, "style", "default", "Color style for SSH sessions: default, mono")
}

func runServe(_ *cobra.Command, _ []string) {
	if flagNoSSH && flagNoHTTP {
		fmt.Fprintln(os.Stderr, "Error: nothing to serve")
		os.Exit(1)
	}
	styles, ok := tui.StylesByName(flagServeStyle)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown style %q\n", flagServeStyle)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eng, store, logger, cfg := mustEngine(ctx, os.Stderr, "wordhunt")
	defer store.Close()

	sshCfg := tui.DefaultSSHServerConfig()
	sshCfg.Styles = styles
	sshCfg.Address = firstNonEmpty(flagSSHAddr, cfg.Server.SSHAddr, sshCfg.Address)
	sshCfg.HostKeyPath = firstNonEmpty(flagHostKey, cfg.Server.HostKeyPath)
	if cfg.Server.IdleTimeout > 0 {
		sshCfg.IdleTimeout = cfg.Server.IdleTimeout
	}
	if flagIdleTimeout > 0 {
		sshCfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	}
	httpAddr := firstNonEmpty(flagHTTPAddr, cfg.Server.HTTPAddr)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	serve := func(name string, fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
				mu.Unlock()
				stop()
			}
		}()
	}

	if !flagNoSSH {
		server, err := tui.NewSSHServer(sshCfg, eng, logger.WithPrefix("wordhunt-ssh"))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Starting wordhunt SSH server on %s\n", server.Addr())
		serve("ssh", func() error { return server.ListenAndServe(ctx) })
	}

	if !flagNoHTTP {
		api := httpapi.New(eng, logger.WithPrefix("wordhunt-http"))
		fmt.Printf("Starting wordhunt HTTP API on %s\n", httpAddr)
		serve("http", func() error { return api.ListenAndServe(ctx, httpAddr) })
	}

	fmt.Println("Press Ctrl+C to stop")
	wg.Wait()

	if len(errs) > 0 {
		for _, err := range errs {
			fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		}
		os.Exit(1)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
