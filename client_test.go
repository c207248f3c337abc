package clientcredentials

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/clientcredentials/client/orchestrator"
	"github.com/viant/clientcredentials/config"
	"github.com/viant/clientcredentials/internal/testkit"
)

func TestNewClient(t *testing.T) {
	env := testkit.Start(t)
	service, err := NewClient(env.Config(), nil)
	require.NoError(t, err)

	outcome, err := service.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, orchestrator.Finished, outcome.State)
	assert.True(t, outcome.Succeeded())
}

func TestNewClient_InvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Authority = ""
	_, err := NewClient(cfg, nil)
	assert.Error(t, err)

	cfg = config.Default()
	cfg.CABundle = "/nonexistent/ca.pem"
	_, err = NewClient(cfg, nil)
	assert.Error(t, err)
}
