package testhelpers

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// AssertCLIOutput compares the actual output with the expected lines.
// If they don't match, it fails the test with a detailed message.
func AssertCLIOutput(t testing.TB, actual string, expectedLines []string) {
	t.Helper()
	expectedOutput := strings.Join(expectedLines, "\n") + "\n"
	if actual != expectedOutput {
		actualLines := strings.Split(strings.TrimSpace(actual), "\n")
		expectedStr := strings.Join(expectedLines, "\n")
		actualStr := strings.Join(actualLines, "\n")
		t.Fatalf(
			"CLI output mismatch.\n"+
				"===== Start EXPECTED output =====\n%s\n===== End EXPECTED output =====\n"+
				"===== Start ACTUAL output =====\n%s\n===== End ACTUAL output =====\n",
			expectedStr,
			actualStr,
		)
	}
}

// AssertHasLinePrefix fails unless some line of output starts with prefix
func AssertHasLinePrefix(t testing.TB, output, prefix string) {
	t.Helper()
	for _, line := range strings.Split(output, "\n") {
		if strings.HasPrefix(line, prefix) {
			return
		}
	}
	t.Fatalf("Expected a line starting with %q, got:\n%s", prefix, output)
}

// WriteManifest writes content to name inside dir and returns the path
func WriteManifest(t testing.TB, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write manifest: %v", err)
	}
	return path
}
