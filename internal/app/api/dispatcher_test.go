package api

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-order-bridge/internal/domains/relay/adapters/external/kafkabus"
	"github.com/Apurer/go-gin-order-bridge/internal/domains/relay/adapters/external/logging"
	"github.com/Apurer/go-gin-order-bridge/internal/domains/relay/adapters/external/posapi"
	"github.com/Apurer/go-gin-order-bridge/test/fixtures"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestBuildDispatcher(t *testing.T) {
	d, release, err := BuildDispatcher(Config{POSBaseURL: "http://pos.local", KafkaBrokers: "k:9092"}, discard)
	require.NoError(t, err)
	defer release()
	assert.IsType(t, &posapi.Dispatcher{}, d)

	d, release, err = BuildDispatcher(Config{KafkaBrokers: "k1:9092, k2:9092"}, discard)
	require.NoError(t, err)
	defer release()
	assert.IsType(t, &kafkabus.Dispatcher{}, d)

	d, release, err = BuildDispatcher(Config{}, discard)
	require.NoError(t, err)
	defer release()
	assert.IsType(t, &logging.Dispatcher{}, d)

	_, _, err = BuildDispatcher(Config{POSBaseURL: "not a url"}, discard)
	require.Error(t, err)
}

func TestLoadTemplate(t *testing.T) {
	template, err := LoadTemplate("")
	require.NoError(t, err)
	assert.Nil(t, template)

	path := filepath.Join(t.TempDir(), "template.json")
	require.NoError(t, os.WriteFile(path, fixtures.POSTemplate(), 0o600))
	template, err = LoadTemplate(path)
	require.NoError(t, err)
	require.NotNil(t, template)

	require.NoError(t, os.WriteFile(path, []byte(`{"id":"x"}`), 0o600))
	_, err = LoadTemplate(path)
	require.Error(t, err)

	_, err = LoadTemplate(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}
