package rede

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvironmentOAuthTokenURL(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		want    string
	}{
		{"production", ProductionURL, OAuthTokenProduction},
		{"sandbox", SandboxURL, OAuthTokenSandbox},
		{"custom", "https://mock.local/erede", "https://mock.local/erede/oauth2/token"},
		{"custom with trailing slash", "https://mock.local/erede/", "https://mock.local/erede/oauth2/token"},
		{"custom with many slashes", "http://127.0.0.1:8080//", "http://127.0.0.1:8080/oauth2/token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := NewEnvironment(tt.baseURL, VersionV1)
			assert.Equal(t, tt.want, env.OAuthTokenURL())
		})
	}
}

func TestEnvironmentFactories(t *testing.T) {
	assert.Equal(t, OAuthTokenProduction, Production().OAuthTokenURL())
	assert.Equal(t, OAuthTokenSandbox, Sandbox().OAuthTokenURL())

	assert.Equal(t, "https://api.userede.com.br/erede/v1/transactions", Production().Endpoint("transactions"))
	assert.Equal(t, "https://api.userede.com.br/desenvolvedores/v1/transactions/123", Sandbox().Endpoint("transactions/123"))
}

func TestNewEnvironmentVersion(t *testing.T) {
	env := NewEnvironment("https://mock.local", VersionV2)
	assert.Equal(t, "https://mock.local/v2/transactions", env.Endpoint("transactions"))
	assert.Equal(t, VersionV2, env.Version())

	env = NewEnvironment("https://mock.local", "")
	assert.Equal(t, VersionV1, env.Version())
}

func TestEnvironmentSetOAuthTokenURL(t *testing.T) {
	env := Sandbox().SetOAuthTokenURL("https://auth.local/token")
	assert.Equal(t, "https://auth.local/token", env.OAuthTokenURL())
	assert.Equal(t, SandboxURL, env.BaseURL())
}

func TestEnvironmentConsumer(t *testing.T) {
	env := Sandbox()
	assert.Nil(t, env.Consumer())

	env.SetIP("10.0.0.1").SetSessionID("abc")
	require.NotNil(t, env.Consumer())
	assert.Equal(t, "10.0.0.1", env.Consumer().IP)

	data, err := json.Marshal(env)
	require.NoError(t, err)
	assert.JSONEq(t, `{"consumer":{"ip":"10.0.0.1","sessionId":"abc"}}`, string(data))
}

func TestNewSessionID(t *testing.T) {
	a, b := NewSessionID(), NewSessionID()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}
