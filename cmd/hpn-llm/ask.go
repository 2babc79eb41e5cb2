package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/hpn/hpn-llm-router/internal/domain"
	"github.com/hpn/hpn-llm-router/internal/security"
	"github.com/hpn/hpn-llm-router/internal/ui"
	"github.com/spf13/cobra"
)

type askOutput struct {
	Provider  domain.ProviderType `json:"provider"`
	Model     string              `json:"model"`
	Text      string              `json:"text"`
	ToolCall  bool                `json:"tool_call,omitempty"`
	Value     any                 `json:"value,omitempty"`
	LatencyMS int64               `json:"latency_ms"`
}

func newAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask [prompt...]",
		Short: "Dispatch a single prompt and print the result",
		Example: `  hpn-llm ask -p openai -m gpt-4o-mini "What is the capital of France?"
  hpn-llm ask --file request.yaml --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			req, err := buildAskRequest(cmd, args)
			if err != nil {
				return err
			}
			if req.Credential == "" {
				req.Credential = cfg.Credentials.Get(req.Provider)
			}

			r := newRouter(cfg, newLogger(cmd))

			start := time.Now()
			result, err := r.Dispatch(cmd.Context(), req)
			latency := time.Since(start)

			asJSON, _ := cmd.Flags().GetBool("json")
			if err != nil {
				if asJSON {
					fmt.Fprintln(cmd.ErrOrStderr(), security.Redact(err.Error()))
				} else {
					ui.PrintError(err)
				}
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(askOutput{
					Provider:  req.Provider,
					Model:     req.Model,
					Text:      result.Text,
					ToolCall:  result.ToolCall,
					Value:     result.Value,
					LatencyMS: latency.Milliseconds(),
				})
			}

			ui.PrintResult(req.Provider, req.Model, result, latency)
			return nil
		},
	}

	cmd.Flags().StringP("provider", "p", "", "Provider tag: openai, gemini or openrouter.")
	cmd.Flags().StringP("model", "m", "", "Provider-native model identifier.")
	cmd.Flags().String("credential", "", "API key. Falls back to credentials.<provider> in config.")
	cmd.Flags().Float64("temperature", 0, "Sampling temperature. Omitted unless set.")
	cmd.Flags().String("user", "", "Caller tag forwarded to chat-completion providers.")
	cmd.Flags().String("system", "", "System message prepended to the prompt.")
	cmd.Flags().StringP("file", "f", "", "YAML or JSON request file. Flags override its fields.")
	cmd.Flags().Bool("json", false, "Print the result as JSON.")

	return cmd
}

// buildAskRequest merges the request file, flags and positional prompt.
func buildAskRequest(cmd *cobra.Command, args []string) (domain.Request, error) {
	var req domain.Request

	if path, _ := cmd.Flags().GetString("file"); path != "" {
		loaded, err := domain.LoadRequestFile(path)
		if err != nil {
			return domain.Request{}, err
		}
		req = loaded
	}

	if cmd.Flags().Changed("provider") {
		p, _ := cmd.Flags().GetString("provider")
		req.Provider = domain.ParseProviderType(p)
	}
	if cmd.Flags().Changed("model") {
		req.Model, _ = cmd.Flags().GetString("model")
	}
	if cmd.Flags().Changed("credential") {
		req.Credential, _ = cmd.Flags().GetString("credential")
	}
	if cmd.Flags().Changed("temperature") {
		t, _ := cmd.Flags().GetFloat64("temperature")
		req.Temperature = &t
	}
	if cmd.Flags().Changed("user") {
		req.User, _ = cmd.Flags().GetString("user")
	}

	if system, _ := cmd.Flags().GetString("system"); system != "" {
		req.Messages = append([]domain.Message{{Role: "system", Content: system}}, req.Messages...)
	}
	if prompt := strings.TrimSpace(strings.Join(args, " ")); prompt != "" {
		req.Messages = append(req.Messages, domain.Message{Role: "user", Content: prompt})
	}

	switch {
	case req.Provider == "":
		return domain.Request{}, fmt.Errorf("provider is required (--provider or file)")
	case !req.Provider.IsKnown():
		return domain.Request{}, fmt.Errorf("unknown provider %q, expected one of %v", req.Provider, domain.KnownProviders())
	case req.Model == "":
		return domain.Request{}, fmt.Errorf("model is required (--model or file)")
	case len(req.Messages) == 0:
		return domain.Request{}, fmt.Errorf("no messages: pass a prompt or a request file")
	}

	return req, nil
}
