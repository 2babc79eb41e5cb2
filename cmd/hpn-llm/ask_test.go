package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/hpn/hpn-llm-router/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestAsk_JSONOutput(t *testing.T) {
	var got map[string]any
	mock := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer cfg-key", r.Header.Get("Authorization"))
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Paris"}}]}`))
	}))
	defer mock.Close()

	cfgPath := writeFile(t, "config.yaml", "endpoints:\n  openrouter: "+mock.URL+"\ncredentials:\n  openrouter: cfg-key\n")

	out, err := runCLI(t, "ask", "--config", cfgPath, "-p", "openrouter", "-m", "some/model",
		"--system", "Be brief.", "--temperature", "0.2", "--json", "What is the capital of France?")
	require.NoError(t, err)

	var resp askOutput
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "Paris", resp.Text)
	assert.Equal(t, domain.ProviderOpenRouter, resp.Provider)

	msgs, ok := got["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
	assert.Equal(t, 0.2, got["temperature"])
}

func TestAsk_RequestFile(t *testing.T) {
	mock := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-pro:generateContent", r.URL.Path)
		assert.Equal(t, "flag-key", r.URL.Query().Get("key"))
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Paris"}]}}]}`))
	}))
	defer mock.Close()

	cfgPath := writeFile(t, "config.yaml", "endpoints:\n  gemini: "+mock.URL+"\n")
	reqPath := writeFile(t, "request.yaml", `provider: Gemini
model: gemini-pro
credential: file-key
messages:
  - role: user
    content: What is the capital of France?
`)

	out, err := runCLI(t, "ask", "--config", cfgPath, "--file", reqPath, "--credential", "flag-key", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"text": "Paris"`)
}

func TestAsk_ProviderErrorIsReturned(t *testing.T) {
	mock := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer mock.Close()

	cfgPath := writeFile(t, "config.yaml", "endpoints:\n  openai: "+mock.URL+"\n")

	_, err := runCLI(t, "ask", "--config", cfgPath, "-p", "openai", "-m", "gpt-4o-mini", "--credential", "bad", "--json", "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestBuildAskRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"missing provider", []string{"-m", "x", "hi"}, "provider is required"},
		{"missing model", []string{"-p", "openai", "hi"}, "model is required"},
		{"unknown provider", []string{"-p", "anthropic", "-m", "x", "hi"}, `unknown provider "anthropic"`},
		{"missing prompt", []string{"-p", "openai", "-m", "x"}, "no messages"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newAskCmd()
			require.NoError(t, cmd.Flags().Parse(tt.args))

			_, err := buildAskRequest(cmd, cmd.Flags().Args())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestProviderInfos_DefaultsAndOverrides(t *testing.T) {
	cfgPath := writeFile(t, "config.yaml", "endpoints:\n  openai: http://localhost:9999\ncredentials:\n  gemini: AIza-test\n")

	root := newRootCmd()
	require.NoError(t, root.PersistentFlags().Set("config", cfgPath))
	cfg, err := loadConfig(root)
	require.NoError(t, err)

	infos := providerInfos(cfg)
	require.Len(t, infos, 3)
	assert.Equal(t, domain.ProviderGemini, infos[0].Provider)
	assert.Equal(t, "https://generativelanguage.googleapis.com/v1beta", infos[0].Endpoint)
	assert.Equal(t, "AIza-test", infos[0].Credential)
	assert.Equal(t, "http://localhost:9999", infos[1].Endpoint)
	assert.Equal(t, "https://openrouter.ai/api", infos[2].Endpoint)
}

func TestLoadConfig_EnvAndFlag(t *testing.T) {
	envPath := writeFile(t, "env.yaml", "endpoints:\n  openai: http://from-env:1\n")
	flagPath := writeFile(t, "flag.yaml", "endpoints:\n  openai: http://from-flag:1\n")
	t.Setenv("HPN_LLM_CONFIG", envPath)

	cfg, err := loadConfig(newRootCmd())
	require.NoError(t, err)
	assert.Equal(t, "http://from-env:1", cfg.Endpoints.OpenAI)

	root := newRootCmd()
	require.NoError(t, root.PersistentFlags().Set("config", flagPath))
	cfg, err = loadConfig(root)
	require.NoError(t, err)
	assert.Equal(t, "http://from-flag:1", cfg.Endpoints.OpenAI)
}

func TestLoadConfig_IndependentRoots(t *testing.T) {
	first := newRootCmd()
	require.NoError(t, first.PersistentFlags().Set("config", writeFile(t, "a.yaml", "endpoints:\n  gemini: http://first:1\n")))
	second := newRootCmd()
	require.NoError(t, second.PersistentFlags().Set("config", writeFile(t, "b.yaml", "endpoints:\n  gemini: http://second:1\n")))

	cfg, err := loadConfig(first)
	require.NoError(t, err)
	assert.Equal(t, "http://first:1", cfg.Endpoints.Gemini)
}
