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
	ProviderName = "order-intake-api"
	ConsumerName = "storefront-checkout"

	StateOrdersBaseline  = "no orders stored"
	StateSubmissionSeen  = "order for submission pact-submission-1 exists"
	ExistingSubmissionID = "pact-submission-1"
	NewSubmissionID      = "pact-submission-2"
)

const (
	exampleName    = "Amel Ben Ali"
	examplePhone   = "22333444"
	exampleAddress = "Rue 5, Tunis"
	exampleProduct = "Chemise Choufli"
)

// ExampleCustomer is the shopper used by every interaction.
func ExampleCustomer() (name, phone, address string) {
	return exampleName, examplePhone, exampleAddress
}

// ExampleLine is the single cart line used by every interaction.
func ExampleLine() (name string, price int64, size string) {
	return exampleProduct, 125, "M"
}

// ExampleTotal is the line price plus the default shipping fee.
const ExampleTotal int64 = 133

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the checkout consumer.
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

func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
