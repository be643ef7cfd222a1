package platform

import (
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// Command constants
const (
	OpenCommand     = "open"
	ExplorerCommand = "explorer"
	XDGOpenCommand  = "xdg-open"
	CmdCommand      = "cmd"
	StartCommand    = "start"
)

// Command parameters
const (
	MacOSSelectFlag    = "-R"
	WindowsSelectParam = "/select,"
	WindowsCmdFlag     = "/c"
)

// File manager names
var (
	LinuxFileManagers = []string{"nautilus", "dolphin", "thunar", "nemo", "pcmanfm"}
)

// AppDirName is the directory name used under the user config directory
const AppDirName = "dewey"

// OSInfo describes the host operating system
type OSInfo struct {
	Name  string `json:"name"`
	IsMac bool   `json:"is_mac"`
}

// DetectOS returns the host operating system
func DetectOS() OSInfo {
	return osInfo(runtime.GOOS)
}

func osInfo(goos string) OSInfo {
	return OSInfo{Name: goos, IsMac: goos == OSDarwin}
}

// ConfigDir returns the per-user configuration directory of the application
func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(base, AppDirName), nil
}

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// Browser opens URLs with the system handler
type Browser struct{}

// OpenURL opens u in the default browser
func (Browser) OpenURL(u *url.URL) error {
	if u == nil {
		return fmt.Errorf("url is nil")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("refusing to open %q: unsupported scheme", u.Scheme)
	}
	return openCommand(runtime.GOOS, u.String()).Run()
}

// RevealPath opens the system file manager at path, selecting it where supported
func RevealPath(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}
	if _, err := os.Stat(absPath); err != nil {
		return fmt.Errorf("path does not exist: %w", err)
	}

	switch runtime.GOOS {
	case OSDarwin:
		return exec.Command(OpenCommand, MacOSSelectFlag, absPath).Run()
	case OSWindows:
		return exec.Command(ExplorerCommand, WindowsSelectParam, absPath).Run()
	case OSLinux:
		return revealLinux(absPath)
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

// revealLinux opens the directory of path; selection is not standardized on Linux
func revealLinux(path string) error {
	dir := path
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		dir = filepath.Dir(path)
	}

	if err := exec.Command(XDGOpenCommand, dir).Run(); err == nil {
		return nil
	}

	for _, fm := range LinuxFileManagers {
		if _, err := exec.LookPath(fm); err == nil {
			return exec.Command(fm, dir).Run()
		}
	}

	return fmt.Errorf("no suitable file manager found")
}

// openCommand builds the command that opens target with the default application
func openCommand(goos, target string) *exec.Cmd {
	switch goos {
	case OSDarwin:
		return exec.Command(OpenCommand, target)
	case OSWindows:
		return exec.Command(CmdCommand, WindowsCmdFlag, StartCommand, "", target)
	default:
		return exec.Command(XDGOpenCommand, target)
	}
}
