package venv

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/apex/log"
	"github.com/ch-iv/litestar-manage/cli/applog"
	"github.com/ch-iv/litestar-manage/cli/config"
	"github.com/ch-iv/litestar-manage/cli/util"
	"github.com/ch-iv/litestar-manage/cli/version"
)

const (
	// DefaultPipURL is the pip bootstrap script location.
	DefaultPipURL = "https://bootstrap.pypa.io/get-pip.py"
	// DefaultSetuptoolsURL is the setuptools bootstrap script location.
	DefaultSetuptoolsURL = "https://bootstrap.pypa.io/ez_setup.py"
	// DefaultMinPythonVersion is the minimal supported host interpreter version.
	DefaultMinPythonVersion = "3.8"
)

type builderState int

const (
	stateUninitialized builderState = iota
	stateInitializing
	stateReady
	stateFailed
)

// PipBuilder creates a virtual environment with the venv module of the host
// interpreter and installs packages with pip.
type PipBuilder struct {
	// Python is the host interpreter. First of python3 and python found in PATH
	// is used if empty.
	Python string
	// NoDist disables setuptools installation.
	NoDist bool
	// NoPip disables pip installation.
	NoPip bool
	// Progress receives subprocess output. Default indicator is used if nil.
	Progress ProgressFunc
	// Verbose makes the default indicator print subprocess output.
	Verbose bool
	// PipURL is the get-pip script location.
	PipURL string
	// SetuptoolsURL is the setuptools bootstrap script location.
	SetuptoolsURL string
	// CheckInstall makes a failed package installation an error.
	CheckInstall bool
	// MinPythonVersion is the minimal host interpreter version. Not checked if empty.
	MinPythonVersion string
	// Log receives subprocess output if set.
	Log *applog.Logger

	state     builderState
	envDir    string
	binDir    string
	envPython string
}

// NewPipBuilder creates a builder with default options.
func NewPipBuilder() *PipBuilder {
	return &PipBuilder{
		NoDist:           true,
		PipURL:           DefaultPipURL,
		SetuptoolsURL:    DefaultSetuptoolsURL,
		MinPythonVersion: DefaultMinPythonVersion,
	}
}

// NewPipBuilderFromConfig creates a builder from the venv configuration.
func NewPipBuilderFromConfig(opts *config.VenvOpts, verbose bool) *PipBuilder {
	builder := NewPipBuilder()
	builder.Verbose = verbose
	if opts == nil {
		return builder
	}
	builder.Python = opts.Python
	builder.NoDist = opts.NoDist
	builder.NoPip = opts.NoPip
	builder.CheckInstall = opts.CheckInstall
	builder.MinPythonVersion = opts.MinPython
	if opts.PipURL != "" {
		builder.PipURL = opts.PipURL
	}
	if opts.SetuptoolsURL != "" {
		builder.SetuptoolsURL = opts.SetuptoolsURL
	}
	return builder
}

// EnvPython returns the virtual environment interpreter path. It is empty until
// the environment is initialized.
func (b *PipBuilder) EnvPython() string {
	if b.state != stateReady {
		return ""
	}
	return b.envPython
}

func (b *PipBuilder) progress() ProgressFunc {
	if b.Progress == nil {
		b.Progress = NewDefaultProgress(os.Stderr, b.Verbose)
	}
	return b.Progress
}

// lineHandler passes subprocess output to the progress indicator and the log file.
func (b *PipBuilder) lineHandler() util.LineHandler {
	progress := b.progress()
	return func(line, stream string) {
		if b.Log != nil {
			b.Log.LogLine(line, stream)
		}
		progress(line, stream)
	}
}

// hostPython returns the interpreter used to create an environment.
func (b *PipBuilder) hostPython() (string, error) {
	if b.Python != "" {
		return b.Python, nil
	}
	for _, name := range []string{"python3", "python"} {
		if python, err := exec.LookPath(name); err == nil {
			return python, nil
		}
	}
	return "", fmt.Errorf("python interpreter: %w", util.ErrNotFound)
}

func (b *PipBuilder) checkPythonVersion(python string) error {
	if b.MinPythonVersion == "" {
		return nil
	}
	out, err := util.RunCommandAndGetOutput(python, "--version")
	if err != nil {
		return fmt.Errorf("failed to get %s version: %w", python, err)
	}
	ver, err := version.ParseToolVersion(out)
	if err != nil {
		return err
	}
	if err = version.CheckMinimal(ver, b.MinPythonVersion); err != nil {
		return fmt.Errorf("%s: %w", python, err)
	}
	log.Debugf("Using %s %s", python, ver)
	return nil
}

// fail moves the builder to the terminal state.
func (b *PipBuilder) fail(err error) error {
	b.state = stateFailed
	b.envPython = ""
	return err
}

// InitVenv creates a virtual environment at path and provisions setuptools and pip
// according to the builder options. VIRTUAL_ENV is set to the environment path.
func (b *PipBuilder) InitVenv(path string) error {
	switch b.state {
	case stateFailed:
		return fmt.Errorf("virtual environment initialization has failed before: %w",
			util.ErrInvalidState)
	case stateInitializing:
		return fmt.Errorf("virtual environment is being initialized: %w", util.ErrInvalidState)
	}
	b.state = stateInitializing

	envDir, err := filepath.Abs(path)
	if err != nil {
		return b.fail(err)
	}

	python, err := b.hostPython()
	if err != nil {
		return b.fail(err)
	}
	if err = b.checkPythonVersion(python); err != nil {
		return b.fail(fmt.Errorf("%w: %s", util.ErrEnvironment, err))
	}

	cmd := exec.Command(python, "-m", "venv", "--without-pip", envDir)
	if err = util.StreamCommand(cmd, b.lineHandler()); err != nil {
		log.Debugf("%s failed: %s", cmd, err)
	}
	os.Setenv("VIRTUAL_ENV", envDir)

	b.envDir = envDir
	b.binDir = filepath.Join(envDir, "bin")
	for _, name := range []string{"python", "python3"} {
		if candidate := filepath.Join(b.binDir, name); util.IsRegularFile(candidate) {
			b.envPython = candidate
			break
		}
	}
	if b.envPython == "" {
		return b.fail(fmt.Errorf("could not initialize a virtual environment: %w",
			util.ErrEnvironment))
	}
	b.state = stateReady

	return b.postSetup()
}

// postSetup installs setuptools and pip into the new environment.
func (b *PipBuilder) postSetup() error {
	if !b.NoDist {
		if err := b.installSetuptools(); err != nil {
			return err
		}
	}
	if !b.NoPip {
		if err := b.installPip(); err != nil {
			return err
		}
	}
	return nil
}

func (b *PipBuilder) installSetuptools() error {
	if err := b.InstallScript("setuptools", b.SetuptoolsURL); err != nil {
		return err
	}
	// The script leaves the downloaded archive next to itself.
	archives, _ := filepath.Glob(filepath.Join(b.binDir, "setuptools-*.tar.gz"))
	for _, archive := range archives {
		if err := os.Remove(archive); err != nil {
			log.Warnf("Failed to remove %s: %s", archive, err)
		}
	}
	return nil
}

// installPip tries the bundled ensurepip module first and falls back to get-pip.
func (b *PipBuilder) installPip() error {
	cmd := exec.Command(b.envPython, "-m", "ensurepip", "--default-pip")
	err := util.StreamCommand(cmd, b.lineHandler())
	if err == nil {
		return nil
	}
	log.Debugf("ensurepip failed: %s. Falling back to %s", err, b.PipURL)
	return b.InstallScript("pip", b.PipURL)
}

// InstallScript downloads the script from url into the environment bin directory
// and runs it there with the environment interpreter. The script is removed afterwards.
func (b *PipBuilder) InstallScript(name, url string) error {
	fileName, err := scriptName(url)
	if err != nil {
		return err
	}
	if b.state != stateReady {
		return fmt.Errorf("the virtual environment must be initialized before installing %s: %w",
			name, util.ErrInvalidState)
	}

	scriptPath := filepath.Join(b.binDir, fileName)
	defer os.Remove(scriptPath)
	if err = downloadFile(url, scriptPath); err != nil {
		return err
	}

	progress := b.progress()
	term := ""
	if b.Verbose {
		term = "\n"
	}
	progress(fmt.Sprintf("Installing %s ...%s", name, term), StreamMain)

	cmd := exec.Command(b.envPython, fileName)
	cmd.Dir = b.binDir
	err = util.StreamCommand(cmd, b.lineHandler())
	progress("done.\n", StreamMain)
	if err != nil {
		return fmt.Errorf("failed to install %s: %w", name, err)
	}
	return nil
}

// InstallPackages installs packages with pip of the environment. Installation
// failure is reported as an error only if CheckInstall is set.
func (b *PipBuilder) InstallPackages(names []string) error {
	if b.state != stateReady {
		return fmt.Errorf("the virtual environment must be initialized before "+
			"installing packages: %w", util.ErrInvalidState)
	}
	if len(names) == 0 {
		return nil
	}

	args := append([]string{"-m", "pip", "install"}, names...)
	cmd := exec.Command(b.envPython, args...)
	if err := util.StreamCommand(cmd, b.lineHandler()); err != nil {
		if b.CheckInstall {
			return fmt.Errorf("pip install failed: %w", err)
		}
		log.Warnf("pip install failed: %s", err)
	}
	return nil
}
