package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/clientcredentials/config"
	"github.com/viant/clientcredentials/internal/testkit"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestClientOptions_Config(t *testing.T) {
	location := filepath.Join(t.TempDir(), "client.yaml")
	require.NoError(t, os.WriteFile(location, []byte("authority: https://file.example.com\nclientId: file-client\nscope: api2\ntimeout: 5s\n"), 0o644))
	t.Setenv("CC_CLIENT_ID", "env-client")
	t.Setenv("CC_AUTHORITY", "")

	options := &Options{}
	_, err := flags.ParseArgs(options, []string{"client", "-c", location, "--scope", "api1 api3"})
	require.NoError(t, err)
	cfg, err := options.Client.Config(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "https://file.example.com", cfg.Authority)
	assert.Equal(t, "env-client", cfg.ClientID)
	assert.Equal(t, "api1 api3", cfg.Scope)
	assert.Equal(t, config.DefaultClientSecret, cfg.ClientSecret)
	assert.Equal(t, config.DefaultResourceBase, cfg.ResourceBase)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, 1, options.Client.Runs)
	assert.Equal(t, "info", options.LogLevel)
}

func TestClientOptions_ConfigInvalid(t *testing.T) {
	location := filepath.Join(t.TempDir(), "client.yaml")
	require.NoError(t, os.WriteFile(location, []byte("clientId: \"\"\n"), 0o644))
	options := &ClientOptions{ConfigURL: location}
	_, err := options.Config(context.Background())
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	var testCases = []struct {
		level       string
		format      string
		expectError bool
		enabled     zapcore.Level
	}{
		{level: "debug", format: "console", enabled: zapcore.DebugLevel},
		{level: "warn", format: "json", enabled: zapcore.WarnLevel},
		{level: "verbose", format: "console", expectError: true},
	}
	for _, testCase := range testCases {
		logger, err := NewLogger(testCase.level, testCase.format)
		if testCase.expectError {
			assert.Error(t, err, testCase.level)
			continue
		}
		require.NoError(t, err, testCase.level)
		assert.True(t, logger.Desugar().Core().Enabled(testCase.enabled), testCase.level)
		assert.False(t, logger.Desugar().Core().Enabled(testCase.enabled-1), testCase.level)
	}
}

func TestRunClient(t *testing.T) {
	env := testkit.Start(t)
	core, logs := observer.New(zapcore.InfoLevel)
	options := &ClientOptions{Authority: env.Authority.URL, Resource: env.API.URL, Runs: 3, Strict: true}

	require.NoError(t, RunClient(context.Background(), options, zap.New(core).Sugar()))
	assert.Equal(t, 1, logs.FilterMessage("Starting client application").Len())
	assert.Equal(t, 0, logs.FilterMessage("An error occurred.").Len())
	assert.Equal(t, 3, logs.FilterMessage("\n\n").Len())
}

func TestRunClient_Aborted(t *testing.T) {
	env := testkit.Start(t)
	require.NoError(t, env.API.Stop())

	var testCases = []struct {
		description string
		strict      bool
		expectError bool
	}{
		{description: "lenient"},
		{description: "strict", strict: true, expectError: true},
	}
	for _, testCase := range testCases {
		core, logs := observer.New(zapcore.InfoLevel)
		options := &ClientOptions{Authority: env.Authority.URL, Resource: env.API.URL, Runs: 2, Strict: testCase.strict}
		err := RunClient(context.Background(), options, zap.New(core).Sugar())
		assert.Equal(t, testCase.expectError, err != nil, testCase.description)
		assert.Equal(t, 2, logs.FilterMessage("An error occurred.").Len(), testCase.description)
	}
}

func TestRun(t *testing.T) {
	assert.NoError(t, Run([]string{"--help"}))
	assert.Error(t, Run([]string{"unknown"}))
}

func TestListenURL(t *testing.T) {
	assert.Equal(t, "https://localhost:5001", listenURL(":5001", true))
	assert.Equal(t, "http://127.0.0.1:6001", listenURL("127.0.0.1:6001", false))
}

func TestSchemeMismatch(t *testing.T) {
	var testCases = []struct {
		description string
		issuer      string
		expect      bool
	}{
		{description: "plain authority", issuer: listenURL(":5001", false), expect: true},
		{description: "tls authority", issuer: listenURL(":5001", true), expect: false},
		{description: "upper case scheme", issuer: "HTTPS://localhost:5001", expect: false},
		{description: "invalid issuer", issuer: "://bad", expect: false},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, schemeMismatch(testCase.issuer, config.DefaultAuthority), testCase.description)
	}
}
