//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	// ProviderName is this service when other teams consume its API.
	ProviderName = "order-bridge"
	// ConsumerName is the operations console reading artifacts.
	ConsumerName = "ops-console"

	// POSProviderName is the point-of-sale ingestion API this service calls.
	POSProviderName = "pos-api"

	StateArtifactExists  = "artifact for order 64783425355 exists"
	StateArtifactMissing = "no artifact for order 404"
	StateTranscodeReady  = "pos template loaded"
	StatePOSAccepts      = "pos accepts new orders"
	StatePOSRejects      = "pos rejects orders for unknown items"
)

const (
	ExistingOrderID int64 = 64783425355
	MissingOrderID  int64 = 404

	ReceiptID = "7d1f3a52-6a4e-4c1f-9d6b-0b3c1c2f4e11"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the pact file the ops console writes against this service.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
