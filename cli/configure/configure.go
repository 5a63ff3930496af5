package configure

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/apex/log"
	"github.com/ch-iv/litestar-manage/cli/cmdcontext"
	"github.com/ch-iv/litestar-manage/cli/config"
	"github.com/ch-iv/litestar-manage/cli/util"
	"github.com/mitchellh/mapstructure"
)

const (
	// ConfigName is the CLI configuration file name.
	ConfigName = "litestar-manage.yaml"
	// configPathEnvName is an environment variable that contains a path to
	// the configuration file.
	configPathEnvName = "LITESTAR_MANAGE_CFG"
)

const (
	// DefaultVenvDir is a default virtual environment directory name.
	DefaultVenvDir = "venv"
	// DefaultVenvKind is the only supported venv kind.
	DefaultVenvKind = "pip"
	// DefaultTemplateEngine is a default engine for custom templates.
	DefaultTemplateEngine = "jinja"
	// DefaultMinPython is a minimal host interpreter version.
	DefaultMinPython = "3.8"
	// DefaultPipURL is the pip bootstrap script location.
	DefaultPipURL = "https://bootstrap.pypa.io/get-pip.py"
	// DefaultSetuptoolsURL is the setuptools bootstrap script location.
	DefaultSetuptoolsURL = "https://bootstrap.pypa.io/ez_setup.py"

	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
)

// GetDefaultCliOpts returns `CliOpts` filled with default values.
func GetDefaultCliOpts() *config.CliOpts {
	return &config.CliOpts{
		Templates:      []config.TemplateOpts{},
		TemplateEngine: DefaultTemplateEngine,
		Formatter: &config.FormatterOpts{
			Enabled: true,
		},
		Venv: &config.VenvOpts{
			Dir:           DefaultVenvDir,
			Packages:      []string{"litestar"},
			MinPython:     DefaultMinPython,
			NoDist:        true,
			PipURL:        DefaultPipURL,
			SetuptoolsURL: DefaultSetuptoolsURL,
		},
		Log: &config.LogOpts{
			MaxSize:    defaultLogMaxSize,
			MaxBackups: defaultLogMaxBackups,
		},
	}
}

// adjustPathWithConfigLocation adjust provided filePath with configDir.
// Absolute filePath is returned as is. Relative filePath is calculated relative to configDir.
// If filePath is empty, defaultDirName is appended to configDir.
func adjustPathWithConfigLocation(filePath, configDir string,
	defaultDirName string,
) (string, error) {
	if filePath == "" {
		if defaultDirName == "" {
			return "", nil
		}
		return filepath.Abs(filepath.Join(configDir, defaultDirName))
	}
	if filepath.IsAbs(filePath) {
		return filePath, nil
	}
	return filepath.Abs(filepath.Join(configDir, filePath))
}

// updateCliOpts resolves all paths in config relative to specified location, and
// sets uninitialized values to defaults.
func updateCliOpts(cliOpts *config.CliOpts, configDir string) error {
	var err error
	defaults := GetDefaultCliOpts()

	if cliOpts.TemplateEngine == "" {
		cliOpts.TemplateEngine = defaults.TemplateEngine
	}
	if cliOpts.Formatter == nil {
		cliOpts.Formatter = defaults.Formatter
	}
	if cliOpts.Venv == nil {
		cliOpts.Venv = defaults.Venv
	}
	if cliOpts.Log == nil {
		cliOpts.Log = defaults.Log
	}

	venv := cliOpts.Venv
	if venv.Dir == "" {
		venv.Dir = defaults.Venv.Dir
	}
	if venv.MinPython == "" {
		venv.MinPython = defaults.Venv.MinPython
	}
	if venv.PipURL == "" {
		venv.PipURL = defaults.Venv.PipURL
	}
	if venv.SetuptoolsURL == "" {
		venv.SetuptoolsURL = defaults.Venv.SetuptoolsURL
	}
	if venv.Kind != "" && venv.Kind != DefaultVenvKind {
		return fmt.Errorf("unsupported venv kind %q: %w", venv.Kind, util.ErrInvalidArgument)
	}

	for i := range cliOpts.Templates {
		if cliOpts.Templates[i].Path, err = adjustPathWithConfigLocation(
			cliOpts.Templates[i].Path, configDir, "."); err != nil {
			return err
		}
	}

	if cliOpts.Formatter.Executable, err = adjustPathWithConfigLocation(
		cliOpts.Formatter.Executable, configDir, ""); err != nil {
		return err
	}
	if cliOpts.Log.File, err = adjustPathWithConfigLocation(
		cliOpts.Log.File, configDir, ""); err != nil {
		return err
	}

	return nil
}

func decodeConfig(input map[string]any, cfg *config.CliOpts) error {
	decoderConfig := mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	}
	decoder, err := mapstructure.NewDecoder(&decoderConfig)
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}

// GetCliOpts returns the CLI options from the config file located at path
// configurePath. Defaults are returned if configurePath is empty.
func GetCliOpts(configurePath string) (*config.CliOpts, error) {
	cfg := GetDefaultCliOpts()

	configDir := ""
	if configurePath == "" {
		var err error
		if configDir, err = os.Getwd(); err != nil {
			return nil, err
		}
	} else {
		configPath, err := filepath.Abs(configurePath)
		if err != nil {
			return nil, fmt.Errorf("cannot determine config file path: %s", err)
		}
		rawConfigOpts, err := util.ParseYAML(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to parse litestar-manage configuration: %s", err)
		}
		if err := decodeConfig(rawConfigOpts, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse litestar-manage configuration: %s", err)
		}
		configDir = filepath.Dir(configPath)
	}

	if err := updateCliOpts(cfg, configDir); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Cli performs initial CLI configuration.
func Cli(cmdCtx *cmdcontext.CmdCtx) error {
	if cmdCtx.Cli.Verbose {
		log.SetLevel(log.DebugLevel)
	}

	var err error
	if cmdCtx.Cli.WorkDir, err = os.Getwd(); err != nil {
		return fmt.Errorf("failed to detect current directory: %s", err)
	}

	if cmdCtx.Cli.ConfigPath == "" {
		cmdCtx.Cli.ConfigPath = os.Getenv(configPathEnvName)
	}

	if cmdCtx.Cli.ConfigPath != "" {
		if _, err := os.Stat(cmdCtx.Cli.ConfigPath); err != nil {
			return fmt.Errorf("specified path to the configuration file is invalid: %s", err)
		}
		if cmdCtx.Cli.ConfigPath, err = filepath.Abs(cmdCtx.Cli.ConfigPath); err != nil {
			return err
		}
	} else if cmdCtx.Cli.ConfigPath, err = getConfigPath(cmdCtx.Cli.WorkDir); err != nil {
		return fmt.Errorf("failed to get litestar-manage config: %s", err)
	}

	if cmdCtx.Cli.ConfigPath != "" {
		cmdCtx.Cli.ConfigDir = filepath.Dir(cmdCtx.Cli.ConfigPath)
		log.Debugf("Using configuration file %q", cmdCtx.Cli.ConfigPath)
	} else {
		cmdCtx.Cli.ConfigDir = cmdCtx.Cli.WorkDir
	}

	return nil
}

// getConfigPath looks for the path to the configuration file,
// looking through all directories from the current one to the root.
func getConfigPath(curDir string) (string, error) {
	for {
		configPath, err := util.GetYamlFileName(filepath.Join(curDir, ConfigName), true)
		if err == nil {
			return configPath, nil
		} else if !os.IsNotExist(err) {
			return "", err
		}

		parent := filepath.Dir(curDir)
		if parent == curDir {
			break
		}
		curDir = parent
	}

	return "", nil
}
