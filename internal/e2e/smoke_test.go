package e2e

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)
	promptsDir := writePromptsFixture(t)

	stdout, stderr, err := runPM(t, binaryPath, home, "version")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.NotEmpty(t, stdout)

	stdout, stderr, err = runPM(t, binaryPath, home,
		"migrate",
		"--content", filepath.Join(home, "summary.txt"),
		"--prompts", promptsDir,
		"--dry-run",
	)
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Prompts to process (2)")
	assert.Contains(t, stdout, "1. team")
	assert.Contains(t, stdout, "2. welcome")

	_, _, err = runPM(t, binaryPath, home, "health")
	require.Error(t, err)
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "pm-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/pm")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build pm binary: %s", string(output))
	return binaryPath
}

func runPM(t *testing.T, binaryPath, home string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = home
	cmd.Env = []string{
		"HOME=" + home,
		"XDG_CONFIG_HOME=" + filepath.Join(home, ".config"),
		"PASSWORD_STORE_DIR=" + filepath.Join(home, ".password-store"),
		"PATH=" + os.Getenv("PATH"),
	}

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}

func writePromptsFixture(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	prompts := map[string]string{
		"file_analysis.prompt.md": "Extract the writing guidelines.",
		"welcome.prompt.md":       "Write a welcome page.",
		"about/team.prompt.md":    "Describe the team.",
	}
	for name, content := range prompts {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}
