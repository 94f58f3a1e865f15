package client

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthLogin_StoresCredentials(t *testing.T) {
	withTempConfig(t)
	out := new(bytes.Buffer)

	require.NoError(t, runAuthLogin(strings.NewReader(""), out, testAPIKey, "http://palette.test"))
	assert.Contains(t, out.String(), "Successfully logged in")

	config, err := LoadGlobalConfig()
	require.NoError(t, err)
	assert.Equal(t, testAPIKey, config.APIKey)
	assert.Equal(t, "http://palette.test", config.APIURL)
}

func TestAuthLogin_PromptsForKey(t *testing.T) {
	withTempConfig(t)
	out := new(bytes.Buffer)

	require.NoError(t, runAuthLogin(strings.NewReader(testAPIKey+"\n"), out, "", defaultAPIURL))
	assert.Contains(t, out.String(), "Enter API key:")

	config, err := LoadGlobalConfig()
	require.NoError(t, err)
	assert.Equal(t, testAPIKey, config.APIKey)
}

func TestAuthLogin_ValidatesKeyFormat(t *testing.T) {
	withTempConfig(t)

	err := runAuthLogin(strings.NewReader(""), new(bytes.Buffer), "ntx_not-ours", defaultAPIURL)
	assert.ErrorContains(t, err, "invalid API key format")

	config, err := LoadGlobalConfig()
	require.NoError(t, err)
	assert.Nil(t, config)
}

func TestAuthLogout(t *testing.T) {
	withTempConfig(t)
	require.NoError(t, SaveGlobalConfig(&GlobalConfig{APIKey: testAPIKey, APIURL: defaultAPIURL}))

	cmd := AuthLogoutCmd()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	require.NoError(t, cmd.RunE(cmd, nil))

	assert.Contains(t, out.String(), "Successfully logged out")
	config, err := LoadGlobalConfig()
	require.NoError(t, err)
	assert.Nil(t, config)
}

func TestAuthStatus(t *testing.T) {
	t.Run("not authenticated", func(t *testing.T) {
		withTempConfig(t)
		cmd, out := newTestCmd(false)

		require.NoError(t, runAuthStatus(cmd))
		assert.Contains(t, out.String(), "Not authenticated")
	})

	t.Run("json from global config", func(t *testing.T) {
		withTempConfig(t)
		require.NoError(t, SaveGlobalConfig(&GlobalConfig{APIKey: testAPIKey, APIURL: defaultAPIURL}))
		cmd, out := newTestCmd(true)

		require.NoError(t, runAuthStatus(cmd))
		assert.Equal(t, mustJSON(t, `{
			"authenticated": true,
			"source": "global_config",
			"api_key": "chs_012...cdef",
			"api_url": "http://localhost:8080"
		}`), mustJSON(t, out.String()))
	})
}

func TestMaskAPIKey(t *testing.T) {
	assert.Equal(t, "***", maskAPIKey("short"))
	assert.Equal(t, "chs_012...cdef", maskAPIKey(testAPIKey))
}
