package cmd

import (
	"github.com/ch-iv/litestar-manage/cli/config"
	"github.com/ch-iv/litestar-manage/cli/configure"
)

// getCliOpts returns loaded configuration or defaults if the configuration is
// not loaded yet.
func getCliOpts() *config.CliOpts {
	if cliOpts == nil {
		return configure.GetDefaultCliOpts()
	}
	return cliOpts
}
