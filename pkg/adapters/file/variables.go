package file

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Variables resolves editor-style variables for a file.
// Names that are not file variables fall back to the process environment.
type Variables struct {
	Path string
}

// NewVariables creates variables for path. An empty path only exposes
// platform and the environment.
func NewVariables(path string) Variables {
	if path != "" {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}
	return Variables{Path: path}
}

// Lookup implements ports.Variables.
func (v Variables) Lookup(name string) (string, bool) {
	if name == "platform" {
		return platform(), true
	}

	if v.Path != "" {
		base := filepath.Base(v.Path)
		ext := filepath.Ext(base)
		switch name {
		case "file":
			return v.Path, true
		case "file_path", "folder":
			return filepath.Dir(v.Path), true
		case "file_name":
			return base, true
		case "file_base_name":
			return strings.TrimSuffix(base, ext), true
		case "file_extension":
			return strings.TrimPrefix(ext, "."), true
		}
	}

	return os.LookupEnv(name)
}

func platform() string {
	switch runtime.GOOS {
	case "darwin":
		return "osx"
	case "windows":
		return "windows"
	default:
		return "linux"
	}
}
