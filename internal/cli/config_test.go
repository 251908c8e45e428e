package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigInitAndValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "textlens.yaml")

	out, err := executeCommand(t, "", "--no-emoji", "config", "init", "--path", path)
	if err != nil {
		t.Fatalf("config init failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "[OK] Configuration file created at: "+path) {
		t.Errorf("unexpected init output:\n%s", out)
	}

	if _, err := executeCommand(t, "", "config", "init", "--path", path); err == nil {
		t.Error("init should refuse to overwrite without --force")
	}
	if _, err := executeCommand(t, "", "config", "init", "--path", path, "--force", "--minimal"); err != nil {
		t.Errorf("init --force failed: %v", err)
	}

	out, err = executeCommand(t, "", "--no-emoji", "--config", path, "config", "validate")
	if err != nil {
		t.Fatalf("validate failed: %v\n%s", err, out)
	}
	for _, want := range []string{"Configuration is valid", "Server: http://localhost:8000", "Table Locale: ru"} {
		if !strings.Contains(out, want) {
			t.Errorf("validate output missing %q:\n%s", want, out)
		}
	}
}

func TestConfigValidateRejectsBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("output:\n  default_format: xml\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := executeCommand(t, "", "--no-emoji", "--config", path, "config", "validate")
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(out, "[ERR] Configuration validation failed") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestConfigShowAppliesFlags(t *testing.T) {
	out, err := executeCommand(t, "", "--server", "https://stats.example.com", "config", "show", "--format", "json")
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	if !strings.Contains(out, `"base_url": "https://stats.example.com"`) {
		t.Errorf("show should include the --server override:\n%s", out)
	}

	out, err = executeCommand(t, "", "config", "show")
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	if !strings.Contains(out, "locale: ru") {
		t.Errorf("yaml output missing locale:\n%s", out)
	}
}

func TestConfigPath(t *testing.T) {
	out, err := executeCommand(t, "", "--no-emoji", "config", "path")
	if err != nil {
		t.Fatalf("config path failed: %v", err)
	}
	for _, want := range []string{".textlens.yaml", "Priority: Highest", "TEXTLENS_"} {
		if !strings.Contains(out, want) {
			t.Errorf("path output missing %q:\n%s", want, out)
		}
	}
}
