package exc

import (
	"os"
	"os/exec"
	"path/filepath"
	"sync"

	"github.com/srlehn/sixelcat/internal/errors"
)

var systemDirs = []string{
	`/usr/local/bin/`,
	`/usr/bin/`,
	`/bin/`,
	`/opt/homebrew/bin/`,
}

var (
	// key: rel. path, value: abs. path
	exePathsMu sync.Mutex
	exePaths   = make(map[string]string)
)

// LookExe searches PATH and then a few system directories for an executable.
// Successful lookups are cached.
func LookExe(exe string) (string, error) {
	if len(exe) == 0 {
		return ``, errors.New(`empty executable name`)
	}
	exePathsMu.Lock()
	defer exePathsMu.Unlock()
	if exeAbs, ok := exePaths[exe]; ok && len(exeAbs) > 0 {
		return exeAbs, nil
	}
	if exeAbs, err := exec.LookPath(exe); err == nil {
		if abs, err := filepath.Abs(exeAbs); err == nil {
			exeAbs = abs
		}
		exePaths[exe] = exeAbs
		return exeAbs, nil
	}
	for _, systemDir := range systemDirs {
		exeAbs := systemDir + exe
		fi, err := os.Stat(exeAbs)
		if err != nil || fi == nil || fi.IsDir() {
			continue
		}
		// check if executable for others
		if fi.Mode()&0b001 == 0b001 {
			exePaths[exe] = exeAbs
			return exeAbs, nil
		}
	}
	return ``, errors.Errorf(`executable %q not found in PATH or system directories`, exe)
}
