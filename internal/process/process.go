// Package process tells whether an executable is currently running.
package process

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/mitchellh/go-ps"
)

// Linux reports the command name of a process truncated to this length.
const commLength = 15

var processes = ps.Processes

// IsRunning reports whether another process runs the executable at path.
// Only the base name is compared: the process table does not carry full paths everywhere.
func IsRunning(path string) (bool, error) {
	name := filepath.Base(path)
	processList, err := processes()
	if err != nil {
		return false, err
	}

	self := os.Getpid()
	for _, process := range processList {
		if process.Pid() == self {
			continue
		}
		if matchName(process.Executable(), name) {
			return true, nil
		}
	}
	return false, nil
}

func matchName(running, wanted string) bool {
	if running == "" || wanted == "" {
		return false
	}
	if runtime.GOOS == "windows" {
		running = strings.TrimSuffix(strings.ToLower(running), ".exe")
		wanted = strings.TrimSuffix(strings.ToLower(wanted), ".exe")
	}
	if running == wanted {
		return true
	}
	return len(running) == commLength && strings.HasPrefix(wanted, running)
}
