package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"chat-dashboard/config"
	"chat-dashboard/handlers"
	"chat-dashboard/logging"
	"chat-dashboard/models"
	"chat-dashboard/services"
	"chat-dashboard/termview"
	"chat-dashboard/views"
	"chat-dashboard/workflows"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:           "chat-dashboard",
		Short:         "Single-page chat dashboard",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the environment")

	serve := newServeCmd(&envFile)
	root.AddCommand(serve, newTranscriptCmd())
	root.RunE = serve.RunE
	return root
}

func newServeCmd(envFile *string) *cobra.Command {
	var port, step int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the chat page over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadServeConfig(*envFile, port, step)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().IntVar(&port, "port", 0, "listen port (overrides PORT)")
	cmd.Flags().IntVar(&step, "step", 0, "default tutorial step 1-3 (overrides TUTORIAL_STEP)")
	return cmd
}

// loadServeConfig applies non-zero flag values over the environment and
// validates the result
func loadServeConfig(envFile string, port, step int) (config.Config, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return config.Config{}, err
	}
	if port != 0 {
		cfg.Port = port
	}
	if step != 0 {
		cfg.TutorialStep = step
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func serve(parent context.Context, cfg config.Config) error {
	log, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	tmpl, err := views.Templates()
	if err != nil {
		return err
	}

	registry := services.NewSessionRegistry(log, cfg.SessionIdleTimeout)
	go registry.Run(ctx, cfg.SessionSweepInterval)

	chatWorkflows := workflows.NewChatWorkflows(log)
	chatHandler := handlers.NewChatHandler(log, registry, chatWorkflows, cfg.SessionCookie, views.Step(cfg.TutorialStep))

	gin.SetMode(cfg.GinMode)
	server := &http.Server{
		Addr:    cfg.Address(),
		Handler: handlers.NewRouter(log, chatHandler, tmpl),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", "address", cfg.Address(), "step", cfg.TutorialStep)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}

func newTranscriptCmd() *cobra.Command {
	var width int

	cmd := &cobra.Command{
		Use:   "transcript [file]",
		Short: "Replay \"role: text\" lines and print the chat bubbles",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("failed to open transcript: %w", err)
				}
				defer f.Close()
				in = f
			}
			return transcript(in, cmd.OutOrStdout(), cmd.ErrOrStderr(), width)
		},
	}
	cmd.Flags().IntVar(&width, "width", termview.DefaultWidth, "terminal width bubbles are aligned within")
	return cmd
}

// maxTranscriptLine bounds a single "role: text" line in bytes
const maxTranscriptLine = 1 << 20

func transcript(in io.Reader, out, errOut io.Writer, width int) error {
	log := slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: slog.LevelWarn}))
	registry := services.NewSessionRegistry(log, 0)
	sess, _ := registry.InitializeIfAbsent(uuid.New())
	wf := workflows.NewChatWorkflows(log)

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxTranscriptLine)
	line := 0
	for scanner.Scan() {
		line++
		input := parseTranscriptLine(scanner.Text())
		if _, err := wf.Send(sess, input); errors.Is(err, workflows.ErrEmptyMessage) {
			fmt.Fprintf(errOut, "line %d: %s\n", line, views.EmptyWarning)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read transcript: %w", err)
	}

	_, err := io.WriteString(out, termview.Transcript(sess.Snapshot().Messages, width))
	return err
}

// parseTranscriptLine splits "role: text". Lines without a known role
// prefix are sent as the user.
func parseTranscriptLine(line string) workflows.SendMessageInput {
	prefix, text, found := strings.Cut(line, ":")
	if found {
		switch models.ParseRole(prefix) {
		case models.RoleUser, models.RoleAssistant:
			return workflows.SendMessageInput{Role: prefix, Content: text}
		}
	}
	return workflows.SendMessageInput{Role: string(models.RoleUser), Content: line}
}
