package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// ConfigDir creates a config directory whose deployments file resolves
// TestHandle.
func ConfigDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	h := TestHandle()
	data := fmt.Sprintf("deployments:\n  - contractId: %s\n    networkId: %s\n    address: %s\n", h.ID, h.Network, h.Address)
	WriteFile(t, filepath.Join(dir, "deployments.yaml"), data)
	return dir
}

// WriteSession stores a wallet session in dir.
func WriteSession(t *testing.T, dir, account, signer string) {
	t.Helper()

	WriteFile(t, filepath.Join(dir, "session.json"), fmt.Sprintf(`{"account":%q,"signer":%q}`, account, signer))
}

// WriteFile writes content to path, failing the test on error.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}
