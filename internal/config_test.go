package internal

import (
	"testing"
	"time"

	"github.com/Netflix/go-env"
	"github.com/stretchr/testify/require"
)

func TestConfig_FromEnviron(t *testing.T) {
	req := require.New(t)
	t.Setenv("BADGER_FILEPATH", t.TempDir())
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("JWT_SECRET", "a_secret_that_is_long_enough_for_hs256")
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:5173, https://example.com,")

	var config Config
	_, err := env.UnmarshalFromEnviron(&config)
	req.NoError(err)
	req.NoError(config.Validate())

	req.Equal(60*time.Minute, config.AuthTokenDuration)
	req.Equal("localhost:3000", config.Address())
	req.Equal("localhost:3001", config.HealthAddress())
	req.Equal("/api", config.APIPrefix)
	req.Equal([]string{"http://localhost:5173", "https://example.com"}, config.Origins())
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{
		JWTSecret:         "a_secret_that_is_long_enough_for_hs256",
		AuthTokenDuration: time.Hour,
		APIPrefix:         "/api",
	}
	require.NoError(t, valid.Validate())

	short := valid
	short.JWTSecret = "short"
	require.Error(t, short.Validate())

	noDuration := valid
	noDuration.AuthTokenDuration = 0
	require.Error(t, noDuration.Validate())

	badPrefix := valid
	badPrefix.APIPrefix = "api"
	require.Error(t, badPrefix.Validate())
}
