package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/hpn/hpn-llm-router/internal/config"
	"github.com/hpn/hpn-llm-router/internal/domain"
	"github.com/hpn/hpn-llm-router/internal/metrics"
	"github.com/hpn/hpn-llm-router/internal/router"
	"github.com/hpn/hpn-llm-router/internal/security"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "dev"

func main() {
	Execute()
}

func Execute() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "hpn-llm",
		Short:         "Send one request to OpenAI, Gemini or OpenRouter",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("config", "", "Config file path (optional).")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Log provider calls to stderr.")

	cmd.AddCommand(newAskCmd())
	cmd.AddCommand(newProvidersCmd())

	return cmd
}

// loadConfig reads the file named by --config or HPN_LLM_CONFIG, or searches
// the default locations when neither is set.
func loadConfig(cmd *cobra.Command) (*config.Configuration, error) {
	v := viper.New()
	v.SetEnvPrefix(config.EnvPrefix)
	v.AutomaticEnv()
	if f := cmd.Flag("config"); f != nil {
		_ = v.BindPFlag("config", f)
	}
	return config.Load(strings.TrimSpace(v.GetString("config")))
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if f := cmd.Flag("verbose"); f != nil && f.Value.String() == "true" {
		level = slog.LevelDebug
	}
	inner := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	return slog.New(security.NewRedactedHandler(inner))
}

func newRouter(cfg *config.Configuration, logger *slog.Logger) *router.Router {
	opts := []router.Option{
		router.WithTimeout(cfg.HTTPTimeout()),
		router.WithLogger(logger),
		router.WithRecorder(metrics.NoopRecorder{}),
	}
	for _, provider := range domain.KnownProviders() {
		opts = append(opts, router.WithBaseURL(provider, cfg.Endpoints.Get(provider)))
	}
	return router.New(opts...)
}
