package cmd

import (
	"fmt"

	"github.com/ch-iv/litestar-manage/cli/create"
	create_ctx "github.com/ch-iv/litestar-manage/cli/create/context"
	"github.com/ch-iv/litestar-manage/cli/util"
	"github.com/spf13/cobra"
)

// venvKinds contains supported --venv values.
var venvKinds = []string{"pip"}

var (
	appName        string
	newVenvKind    string
	newDstPath     string
	newTemplate    string
	includeDocker  bool
	newNoFormat    bool
	newVarsFromCli *[]string
	newVarsFile    string
	newPackages    []string

	// errNoAppName is returned if --app-name option was not provided.
	errNoAppName = util.NewArgError(`application name is required: ` +
		`specify it with the --app-name option.`)
)

// NewNewCmd creates a new project command.
func NewNewCmd() *cobra.Command {
	var newCmd = &cobra.Command{
		Use:     "new [flags]",
		Aliases: []string{"init"},
		Short:   "Create a new Litestar project",
		Run: func(cmd *cobra.Command, args []string) {
			cmdCtx.CommandName = cmd.Name()
			err := internalNewModule(cmd, args)
			util.HandleCmdErr(cmd, err)
		},
		Args: cobra.NoArgs,
		Example: `
# Create a project in the current directory.

    $ litestar-manage new --app-name MyApp

# Create a project with a Dockerfile and a pip virtual environment in /opt/apps/my_app.

    $ litestar-manage init --app-name MyApp --docker --venv pip --dst /opt/apps/my_app

# Create a project from a custom template passing additional variables.

    $ litestar-manage new --app-name MyApp --template api --var db_name=main`,
	}

	newCmd.Flags().StringVar(&appName, "app-name", "", "Application name")
	newCmd.Flags().StringVar(&newVenvKind, "venv", "",
		fmt.Sprintf("Create a virtual environment of the kind: %v", venvKinds))
	newCmd.Flags().StringVarP(&newDstPath, "dst", "d", "",
		"Path to the directory where the project will be created")
	newCmd.Flags().StringVarP(&newTemplate, "template", "t", "",
		"Template name. Built-in app template is used by default")
	newCmd.Flags().BoolVar(&includeDocker, "docker", false, "Add a Dockerfile")
	newCmd.Flags().BoolVar(&newNoFormat, "no-format", false,
		"Do not run the formatter on the created project")
	newVarsFromCli = newCmd.Flags().StringArray("var", []string{},
		"Variable definition. Usage: --var var_name=value")
	newCmd.Flags().StringVar(&newVarsFile, "vars-file", "", "Variables definition file path")
	newCmd.Flags().StringSliceVar(&newPackages, "packages", nil,
		"Packages to install into the virtual environment")

	newCmd.RegisterFlagCompletionFunc("venv", func(*cobra.Command, []string,
		string,
	) ([]string, cobra.ShellCompDirective) {
		return venvKinds, cobra.ShellCompDirectiveNoFileComp
	})
	newCmd.RegisterFlagCompletionFunc("template", templateNamesCompletion)

	return newCmd
}

// checkVenvKind validates --venv option value.
func checkVenvKind(kind string) error {
	if kind == "" {
		return nil
	}
	for _, supported := range venvKinds {
		if kind == supported {
			return nil
		}
	}
	return util.NewArgError(fmt.Sprintf("unsupported virtual environment kind %q, "+
		"supported: %v", kind, venvKinds))
}

// internalNewModule is a default new project module.
func internalNewModule(cmd *cobra.Command, args []string) error {
	if len(appName) == 0 {
		return errNoAppName
	}
	if err := checkVenvKind(newVenvKind); err != nil {
		return err
	}

	createCtx := create_ctx.CreateCtx{
		Kind: create_ctx.KindApp,
		App: create_ctx.AppCtx{
			AppName:       appName,
			IncludeDocker: includeDocker,
		},
		DestinationDir: newDstPath,
		TemplateName:   newTemplate,
		VarsFromCli:    *newVarsFromCli,
		VarsFile:       newVarsFile,
		NoFormat:       newNoFormat,
		VenvKind:       newVenvKind,
		Verbose:        cmdCtx.Cli.Verbose,
	}
	if cmd.Flags().Changed("packages") {
		createCtx.Packages = newPackages
	}

	if err := create.FillCtx(getCliOpts(), &createCtx, cmd.OutOrStdout()); err != nil {
		return err
	}

	return create.Run(&createCtx)
}
