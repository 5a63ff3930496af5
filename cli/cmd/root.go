package cmd

import (
	"os"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/ch-iv/litestar-manage/cli/cmdcontext"
	"github.com/ch-iv/litestar-manage/cli/config"
	"github.com/ch-iv/litestar-manage/cli/configure"
	"github.com/spf13/cobra"
)

var (
	cmdCtx  cmdcontext.CmdCtx
	cliOpts *config.CliOpts
	rootCmd *cobra.Command
)

// NewCmdRoot creates a new root command.
func NewCmdRoot() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "litestar-manage",
		Short: "Litestar project manager",
		Long:  "Utility for scaffolding Litestar applications and resources",
		Example: `$ litestar-manage new --app-name MyApp --venv pip
  $ litestar-manage resource -n user_profile
  $ litestar-manage templates`,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&cmdCtx.Cli.Verbose, "verbose", "V",
		false, "Verbose output")
	rootCmd.PersistentFlags().StringVarP(&cmdCtx.Cli.ConfigPath, "cfg", "c",
		"", "Path to configuration file")

	rootCmd.AddCommand(
		NewVersionCmd(),
		NewNewCmd(),
		NewResourceCmd(),
		NewRenderCmd(),
		NewTemplatesCmd(),
	)

	rootCmd.InitDefaultHelpCmd()

	log.SetHandler(cli.Default)

	return rootCmd
}

// Execute root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("%s", err)
	}
}

// InitRoot initializes global flags and configures CLI.
func InitRoot() {
	rootCmd = NewCmdRoot()
	rootCmd.ParseFlags(os.Args)

	if err := configure.Cli(&cmdCtx); err != nil {
		log.Fatalf("Failed to configure litestar-manage: %s", err)
	}

	var err error
	cliOpts, err = configure.GetCliOpts(cmdCtx.Cli.ConfigPath)
	if err != nil {
		log.Fatalf("Failed to get litestar-manage configuration: %s", err)
	}
}
