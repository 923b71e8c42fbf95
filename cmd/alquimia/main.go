// alquimia is the single-user reflection and goal-planning service.
// The serve command boots the HTTP API; all state lives for the session.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"alquimia/internal/config"
	"alquimia/internal/logging"
	"alquimia/internal/webui"
)

var (
	cyan   = color.New(color.FgCyan).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	gray   = color.New(color.FgHiBlack).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	banner = `
    _    _             _           _
   / \  | | __ _ _   _(_)_ __ ___ (_) __ _
  / _ \ | |/ _` + "`" + ` | | | | | '_ ` + "`" + ` _ \| |/ _` + "`" + ` |
 / ___ \| | (_| | |_| | | | | | | | | (_| |
/_/   \_\_|\__, |\__,_|_|_| |_| |_|_|\__,_|
              |_|
`
)

var (
	flagHost string
	flagPort int
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "alquimia",
		Short: "Reflection and goal-planning service",
		Long:  "Alquimia hosts a single-user reflection journal: life wheel, archetype check-in, vision board and SMART goals.",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	root.AddCommand(newServeCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
	cmd.Flags().StringVar(&flagHost, "host", "", "bind address (overrides config)")
	cmd.Flags().IntVar(&flagPort, "port", 0, "listen port (overrides config)")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("alquimia %s\n", webui.Version)
		},
	}
}

func runServe() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if flagHost != "" {
		cfg.Server.Host = flagHost
	}
	if flagPort != 0 {
		cfg.Server.Port = flagPort
	}

	logging.SetDefaultLevel(logging.ParseLevel(cfg.LogLevel))
	logger := logging.NewComponentLogger("Server")

	server, err := webui.NewServer(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	fmt.Print(cyan(banner))
	fmt.Printf("%s http://%s:%d\n", bold("Serving on"), cfg.Server.Host, cfg.Server.Port)
	if cfg.Pinterest.Enabled() {
		fmt.Println(green("Pinterest import enabled"))
	} else {
		fmt.Println(gray("Pinterest import disabled (no credentials)"))
	}

	done := make(chan struct{})
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println(gray("\nShutting down..."))
		if err := server.Stop(); err != nil {
			fmt.Println(red(fmt.Sprintf("Shutdown error: %v", err)))
		}
		close(done)
	}()

	if err := server.Start(); err != nil {
		return err
	}
	<-done
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, red(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
