package platform

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCreateDirectoryIfNotExists(t *testing.T) {
	tempDir := t.TempDir()
	testDir := filepath.Join(tempDir, "test_dir")

	if _, err := os.Stat(testDir); !os.IsNotExist(err) {
		t.Fatalf("Test directory already exists: %s", testDir)
	}

	if err := CreateDirectoryIfNotExists(testDir); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	if _, err := os.Stat(testDir); os.IsNotExist(err) {
		t.Fatalf("Directory was not created: %s", testDir)
	}

	// Second call should not fail
	if err := CreateDirectoryIfNotExists(testDir); err != nil {
		t.Fatalf("Failed to handle existing directory: %v", err)
	}
}

func TestConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("Failed to get config directory: %v", err)
	}
	if filepath.Base(dir) != AppDirName {
		t.Errorf("Expected directory to end with %q, got: %s", AppDirName, dir)
	}
}

func TestOSInfo(t *testing.T) {
	if !osInfo(OSDarwin).IsMac {
		t.Error("darwin should be detected as macOS")
	}
	if osInfo(OSLinux).IsMac {
		t.Error("linux should not be detected as macOS")
	}
	if DetectOS().Name == "" {
		t.Error("DetectOS returned an empty name")
	}
}

func TestOpenCommand(t *testing.T) {
	tests := []struct {
		goos string
		want string
	}{
		{OSDarwin, "open https://example.com"},
		{OSWindows, "cmd /c start  https://example.com"},
		{OSLinux, "xdg-open https://example.com"},
	}

	for _, tt := range tests {
		cmd := openCommand(tt.goos, "https://example.com")
		got := strings.Join(append([]string{filepath.Base(cmd.Path)}, cmd.Args[1:]...), " ")
		if cmd.Args[0] != strings.Fields(tt.want)[0] {
			t.Errorf("%s: expected program %q, got %q", tt.goos, strings.Fields(tt.want)[0], cmd.Args[0])
		}
		if !strings.HasSuffix(got, "https://example.com") {
			t.Errorf("%s: expected target at the end, got %q", tt.goos, got)
		}
	}
}

func TestBrowserRejectsUnsupportedScheme(t *testing.T) {
	u, _ := url.Parse("file:///etc/passwd")
	if err := (Browser{}).OpenURL(u); err == nil {
		t.Error("Expected error for file scheme")
	}
	if err := (Browser{}).OpenURL(nil); err == nil {
		t.Error("Expected error for nil url")
	}
}

func TestRevealPathMissing(t *testing.T) {
	if err := RevealPath(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("Expected error for missing path")
	}
}
