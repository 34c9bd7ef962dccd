package redis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigOptions_FromHost(t *testing.T) {
	opts, err := (&Config{Host: "cache", Password: "secret", DB: 2}).options()
	require.NoError(t, err)

	assert.Equal(t, "cache:6379", opts.Addr)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 2, opts.DB)
}

func TestConfigOptions_URLWins(t *testing.T) {
	opts, err := (&Config{URL: "redis://:pw@redis.internal:6380/1", Host: "ignored"}).options()
	require.NoError(t, err)

	assert.Equal(t, "redis.internal:6380", opts.Addr)
	assert.Equal(t, "pw", opts.Password)
	assert.Equal(t, 1, opts.DB)
}

func TestConfigOptions_Errors(t *testing.T) {
	_, err := (&Config{}).options()
	assert.Error(t, err)

	_, err = (&Config{URL: "http://not-redis"}).options()
	assert.Error(t, err)
}

func TestConnect_NilConfig(t *testing.T) {
	_, err := Connect(nil)
	assert.Error(t, err)
}
