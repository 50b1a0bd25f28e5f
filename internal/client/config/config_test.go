package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://apis.imooc.com/api/", c.BaseURL)
	assert.Equal(t, "data/zheye.db", c.DBPath)
	assert.Equal(t, 15*time.Second, c.RequestTimeout)
	assert.Equal(t, time.Second, c.LoadingDelay)
	assert.Equal(t, 5, c.PageSize)
	assert.Equal(t, "info", c.LogLevel)
	assert.Empty(t, c.ICode)
}
