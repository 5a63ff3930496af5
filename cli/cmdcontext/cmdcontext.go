package cmdcontext

// CmdCtx is the main structure of the program context.
// Contains within itself other structures of CLI modules.
type CmdCtx struct {
	// Cli - CLI context. Contains flags passed when starting
	// the CLI and some other parameters.
	Cli CliCtx
	// CommandName contains name of the command.
	CommandName string
}

// CliCtx - CLI context. Contains flags passed when starting
// the CLI and some other parameters.
type CliCtx struct {
	// Path to litestar-manage.yaml config. Empty if no config is used.
	ConfigPath string
	// ConfigDir is configuration file directory.
	// And current working directory, if there is no config.
	ConfigDir string
	// WorkDir is the CLI launch working directory.
	WorkDir string
	// Verbose logging flag. Enables debug log output.
	Verbose bool
}
