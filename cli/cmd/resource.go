package cmd

import (
	"github.com/ch-iv/litestar-manage/cli/create"
	create_ctx "github.com/ch-iv/litestar-manage/cli/create/context"
	"github.com/ch-iv/litestar-manage/cli/util"
	"github.com/spf13/cobra"
)

var (
	resourceName        string
	resourceDstPath     string
	resourceTemplate    string
	resourceNoFormat    bool
	resourceVarsFromCli *[]string
	resourceVarsFile    string

	// errNoResourceName is returned if -n option was not provided.
	errNoResourceName = util.NewArgError(`resource name is required: ` +
		`specify it with the --resource-name option.`)
)

// NewResourceCmd creates a new resource command.
func NewResourceCmd() *cobra.Command {
	var resourceCmd = &cobra.Command{
		Use:   "resource [flags]",
		Short: "Add a resource package to an initialized project",
		Run: func(cmd *cobra.Command, args []string) {
			cmdCtx.CommandName = cmd.Name()
			err := internalResourceModule(cmd, args)
			util.HandleCmdErr(cmd, err)
		},
		Args: cobra.NoArgs,
		Example: `
# Add src/user_profile package with a controller, a service and a repository.

    $ litestar-manage resource -n UserProfile`,
	}

	resourceCmd.Flags().StringVarP(&resourceName, "resource-name", "n", "", "Resource name")
	resourceCmd.Flags().StringVarP(&resourceDstPath, "dst", "d", "",
		"Path to the project directory")
	resourceCmd.Flags().StringVarP(&resourceTemplate, "template", "t", "",
		"Template name. Built-in resource template is used by default")
	resourceCmd.Flags().BoolVar(&resourceNoFormat, "no-format", false,
		"Do not run the formatter on the created resource")
	resourceVarsFromCli = resourceCmd.Flags().StringArray("var", []string{},
		"Variable definition. Usage: --var var_name=value")
	resourceCmd.Flags().StringVar(&resourceVarsFile, "vars-file", "",
		"Variables definition file path")

	resourceCmd.RegisterFlagCompletionFunc("template", templateNamesCompletion)

	return resourceCmd
}

// internalResourceModule is a default resource module.
func internalResourceModule(cmd *cobra.Command, args []string) error {
	if len(resourceName) == 0 {
		return errNoResourceName
	}

	createCtx := create_ctx.CreateCtx{
		Kind:           create_ctx.KindResource,
		Resource:       create_ctx.ResourceCtx{ResourceName: resourceName},
		DestinationDir: resourceDstPath,
		TemplateName:   resourceTemplate,
		VarsFromCli:    *resourceVarsFromCli,
		VarsFile:       resourceVarsFile,
		NoFormat:       resourceNoFormat,
		Verbose:        cmdCtx.Cli.Verbose,
	}

	if err := create.FillCtx(getCliOpts(), &createCtx, cmd.OutOrStdout()); err != nil {
		return err
	}

	return create.Run(&createCtx)
}
