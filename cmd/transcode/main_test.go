package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pos "github.com/Apurer/go-gin-order-bridge/internal/domains/pos/domain"
	"github.com/Apurer/go-gin-order-bridge/test/fixtures"
)

func writeFile(t *testing.T, dir, name string, body []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, body, 0o600))
	return path
}

func runCLI(t *testing.T, stdin []byte, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, bytes.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_WritesArtifactFromWebhook(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "hook.json", fixtures.Webhook())
	template := writeFile(t, dir, "template.json", fixtures.POSTemplate())
	out := filepath.Join(dir, "out")

	code, stdout, _ := runCLI(t, nil, "-in", in, "-template", template, "-out", out)
	require.Equal(t, exitOK, code)

	path := filepath.Join(out, "64783425355.bok")
	assert.Equal(t, path, strings.TrimSpace(stdout))
	body, err := os.ReadFile(path)
	require.NoError(t, err)
	order, err := pos.ParseOrder(body)
	require.NoError(t, err)
	assert.Equal(t, "10.00", order.Price)
}

func TestRun_ReadsBareEventFromStdin(t *testing.T) {
	out := t.TempDir()
	template := writeFile(t, t.TempDir(), "template.json", fixtures.POSTemplate())

	code, stdout, stderr := runCLI(t, fixtures.OrderEvent(), "-out", out, "-template", template)
	require.Equal(t, exitOK, code)
	assert.FileExists(t, strings.TrimSpace(stdout))
	assert.Contains(t, stderr, "mapping skipped")
}

func TestRun_RejectsInvalidEvent(t *testing.T) {
	event := fixtures.OrderEventWith(func(order map[string]any) {
		delete(order["customer"].(map[string]any), "phone")
	})
	out := t.TempDir()

	code, _, stderr := runCLI(t, event, "-out", out, "-template", "")
	require.Equal(t, exitRejected, code)
	assert.Contains(t, stderr, "customer.phone")

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRun_PrintsSourceOrder(t *testing.T) {
	code, stdout, _ := runCLI(t, fixtures.Webhook(), "-print")
	require.Equal(t, exitOK, code)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
	assert.Contains(t, doc, "actionEvent")
}

func TestRun_POSMode(t *testing.T) {
	out := t.TempDir()

	code, stdout, _ := runCLI(t, fixtures.POSTemplate(), "-pos", "-out", out)
	require.Equal(t, exitOK, code)
	assert.FileExists(t, strings.TrimSpace(stdout))

	code, _, _ = runCLI(t, []byte(`{"id":"x"}`), "-pos", "-out", out)
	assert.Equal(t, exitRejected, code)
}

func TestRun_ConflictingFlags(t *testing.T) {
	code, _, stderr := runCLI(t, nil, "-print", "-pos")
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, stderr, "mutually exclusive")
}
