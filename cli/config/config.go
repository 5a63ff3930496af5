package config

// CliOpts stores information about litestar-manage configuration.
// Filled in when parsing the litestar-manage.yaml configuration file.
//
// litestar-manage.yaml file format:
//
//	templates:
//	  - path: path/to/templates
//	template_engine: jinja|gotext
//	formatter:
//	  enabled: bool
//	  executable: path
//	venv:
//	  kind: pip
//	  dir: venv
//	  python: path
//	  packages: [litestar]
//	  min_python: "3.8"
//	  no_pip: bool
//	  no_dist: bool
//	  check_install: bool
//	  pip_url: url
//	  setuptools_url: url
//	log:
//	  file: path
//	  maxsize: num (MB)
//	  maxage: num (Days)
//	  maxbackups: num
type CliOpts struct {
	// Templates is a list of directories to search for project templates.
	Templates []TemplateOpts `mapstructure:"templates" yaml:"templates"`
	// TemplateEngine is the name of the engine used for custom templates.
	TemplateEngine string `mapstructure:"template_engine" yaml:"template_engine"`
	// Formatter contains formatter options.
	Formatter *FormatterOpts `mapstructure:"formatter" yaml:"formatter"`
	// Venv contains virtual environment options.
	Venv *VenvOpts `mapstructure:"venv" yaml:"venv"`
	// Log contains subprocess output log options.
	Log *LogOpts `mapstructure:"log" yaml:"log"`
}

// TemplateOpts contains templates search path.
type TemplateOpts struct {
	// Path is a directory containing template directories.
	Path string `mapstructure:"path" yaml:"path"`
}

// FormatterOpts contains options of the formatter run after rendering.
type FormatterOpts struct {
	// Enabled turns the formatting step on.
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	// Executable is an explicit path to the formatter executable.
	Executable string `mapstructure:"executable" yaml:"executable"`
}

// VenvOpts contains virtual environment options.
type VenvOpts struct {
	// Kind is a default venv kind used when --venv is not specified. Empty means
	// no venv is created.
	Kind string `mapstructure:"kind" yaml:"kind"`
	// Dir is the venv directory name inside the project.
	Dir string `mapstructure:"dir" yaml:"dir"`
	// Python is the host interpreter used to create the venv.
	Python string `mapstructure:"python" yaml:"python"`
	// Packages are installed into a new venv.
	Packages []string `mapstructure:"packages" yaml:"packages"`
	// MinPython is the minimal supported host interpreter version.
	MinPython string `mapstructure:"min_python" yaml:"min_python"`
	// NoPip disables pip provisioning.
	NoPip bool `mapstructure:"no_pip" yaml:"no_pip"`
	// NoDist disables setuptools provisioning.
	NoDist bool `mapstructure:"no_dist" yaml:"no_dist"`
	// CheckInstall makes a failed package installation an error.
	CheckInstall bool `mapstructure:"check_install" yaml:"check_install"`
	// PipURL is the pip bootstrap script location.
	PipURL string `mapstructure:"pip_url" yaml:"pip_url"`
	// SetuptoolsURL is the setuptools bootstrap script location.
	SetuptoolsURL string `mapstructure:"setuptools_url" yaml:"setuptools_url"`
}

// LogOpts describes the subprocess output log.
type LogOpts struct {
	// File is a log file path. Logging is disabled if empty.
	File string `mapstructure:"file" yaml:"file"`
	// MaxSize is a maximum size in MB of the log file before
	// it gets rotated.
	MaxSize int `mapstructure:"maxsize" yaml:"maxsize"`
	// MaxAge is the maximum number of days to retain old log files.
	MaxAge int `mapstructure:"maxage" yaml:"maxage"`
	// MaxBackups is the maximum number of old log files to retain.
	MaxBackups int `mapstructure:"maxbackups" yaml:"maxbackups"`
}
