package main

import (
	"github.com/hpn/hpn-llm-router/internal/adapter"
	"github.com/hpn/hpn-llm-router/internal/config"
	"github.com/hpn/hpn-llm-router/internal/ui"
	"github.com/spf13/cobra"
)

func newProvidersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List supported providers, their endpoints and configured credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			ui.PrintProviders(providerInfos(cfg))
			return nil
		},
	}
}

func providerInfos(cfg *config.Configuration) []ui.ProviderInfo {
	providers := newRouter(cfg, nil).Providers()
	infos := make([]ui.ProviderInfo, 0, len(providers))
	for _, p := range providers {
		endpoint := cfg.Endpoints.Get(p)
		if endpoint == "" {
			endpoint = adapter.DefaultBaseURL(p)
		}
		infos = append(infos, ui.ProviderInfo{
			Provider:   p,
			Endpoint:   endpoint,
			Credential: cfg.Credentials.Get(p),
		})
	}
	return infos
}
