// Package formatter runs the ruff formatter over generated sources.
package formatter

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/apex/log"
	"github.com/ch-iv/litestar-manage/cli/util"
)

const ruffName = "ruff"

// userBinDir returns bin directory of the python user installation scheme.
func userBinDir() string {
	if userBase := os.Getenv("PYTHONUSERBASE"); userBase != "" {
		return filepath.Join(userBase, "bin")
	}
	homeDir, err := util.GetHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".local", "bin")
}

// searchDirs returns directories to look for ruff in, in priority order.
func searchDirs() []string {
	dirs := []string{}
	if venv := os.Getenv("VIRTUAL_ENV"); venv != "" {
		dirs = append(dirs, filepath.Join(venv, "bin"))
	}
	if userBin := userBinDir(); userBin != "" {
		dirs = append(dirs, userBin)
	}
	if executable, err := os.Executable(); err == nil {
		dirs = append(dirs, filepath.Dir(executable))
	}
	return dirs
}

// FindRuff returns the ruff executable path. The active virtual environment,
// the user scheme bin directory and the directory of the running executable are
// checked before PATH.
func FindRuff() (string, error) {
	for _, dir := range searchDirs() {
		candidate := filepath.Join(dir, ruffName)
		if util.IsExecutable(candidate) {
			return candidate, nil
		}
	}
	if path, err := exec.LookPath(ruffName); err == nil {
		return path, nil
	}
	return "", fmt.Errorf("%s executable: %w", ruffName, util.ErrNotFound)
}

// Formatter fixes imports and formats python sources.
type Formatter struct {
	// Executable is the ruff path.
	Executable string
}

// New creates a formatter. The executable is searched with FindRuff if path is empty.
func New(path string) (*Formatter, error) {
	if path == "" {
		var err error
		if path, err = FindRuff(); err != nil {
			return nil, err
		}
	} else if !util.IsExecutable(path) {
		return nil, fmt.Errorf("%s: %w", path, util.ErrNotFound)
	}
	return &Formatter{Executable: path}, nil
}

// Args returns argument lists of the formatter invocations for dir.
func Args(dir string) [][]string {
	return [][]string{
		{"check", "--select", "I", "--fix", "--unsafe-fixes", dir},
		{"format", dir},
	}
}

// Run sorts imports and formats the files in dir. Formatter exit status is
// reported to the log only.
func (f *Formatter) Run(dir string) error {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return err
	}

	for _, args := range Args(absDir) {
		cmd := exec.Command(f.Executable, args...)
		log.Debugf("Run: %s", cmd)
		out, err := cmd.CombinedOutput()
		if len(out) > 0 {
			log.Debugf("%s", out)
		}
		if err != nil {
			var exitErr *exec.ExitError
			if !errors.As(err, &exitErr) {
				return fmt.Errorf("failed to run %s: %w", f.Executable, err)
			}
			log.Warnf("%s %s exited with code %d", ruffName, args[0], exitErr.ExitCode())
		}
	}
	return nil
}

// Run formats dir with ruff found by FindRuff.
func Run(dir string) error {
	formatter, err := New("")
	if err != nil {
		return err
	}
	return formatter.Run(dir)
}
