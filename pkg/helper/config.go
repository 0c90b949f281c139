package helper

import (
	"os"
	"path/filepath"
)

// SystemConfigDir is the last place a relative configuration name is looked up
const SystemConfigDir = "/etc/booking"

// GetCfgPath resolves a configuration file name. Absolute names are returned
// unchanged. Relative names are looked up in the working directory, then in
// ./configs, and the first existing file wins. The SystemConfigDir candidate is
// returned when neither exists, so a read error names the final location.
func GetCfgPath(filename string) string {
	if filepath.IsAbs(filename) {
		return filename
	}
	for _, candidate := range []string{filename, filepath.Join("configs", filename)} {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			if abs, err := filepath.Abs(candidate); err == nil {
				return abs
			}
			return candidate
		}
	}
	return filepath.Join(SystemConfigDir, filename)
}
