package cmd

import (
	"fmt"
	"os"

	"github.com/ch-iv/litestar-manage/cli/create"
	create_ctx "github.com/ch-iv/litestar-manage/cli/create/context"
	"github.com/ch-iv/litestar-manage/cli/renderer"
	"github.com/ch-iv/litestar-manage/cli/templates"
	"github.com/ch-iv/litestar-manage/cli/util"
	"github.com/spf13/cobra"
)

var (
	renderDstPath     string
	renderEngine      string
	renderVarsFromCli *[]string
	renderVarsFile    string
)

// NewRenderCmd creates a template directory render command.
func NewRenderCmd() *cobra.Command {
	var renderCmd = &cobra.Command{
		Use:   "render <TEMPLATE_DIR> [flags]",
		Short: "Render a template directory",
		Long: `Render a template directory tree.

Names of files and directories are rendered. Files with .jinja or .jinja2 suffix are
rendered with the suffix removed, other files are copied as is. An entry whose name
renders to an empty string is skipped with its content.`,
		Run: func(cmd *cobra.Command, args []string) {
			cmdCtx.CommandName = cmd.Name()
			err := internalRenderModule(cmd, args)
			util.HandleCmdErr(cmd, err)
		},
		Args: cobra.ExactArgs(1),
		Example: `
# Render ./skeleton into ./out.

    $ litestar-manage render ./skeleton --dst ./out --var app_name=MyApp`,
	}

	renderCmd.Flags().StringVarP(&renderDstPath, "dst", "d", "",
		"Output directory. Current directory is used by default")
	renderCmd.Flags().StringVarP(&renderEngine, "engine", "e", "",
		fmt.Sprintf("Template engine: %v", templates.Names()))
	renderVarsFromCli = renderCmd.Flags().StringArray("var", []string{},
		"Variable definition. Usage: --var var_name=value")
	renderCmd.Flags().StringVar(&renderVarsFile, "vars-file", "",
		"Variables definition file path")

	renderCmd.RegisterFlagCompletionFunc("engine", func(*cobra.Command, []string,
		string,
	) ([]string, cobra.ShellCompDirective) {
		return templates.Names(), cobra.ShellCompDirectiveNoFileComp
	})

	return renderCmd
}

// internalRenderModule is a default render module.
func internalRenderModule(cmd *cobra.Command, args []string) error {
	workDir, err := os.Getwd()
	if err != nil {
		return err
	}
	vars, err := create.CollectVars(&create_ctx.CreateCtx{
		WorkDir:     workDir,
		VarsFromCli: *renderVarsFromCli,
		VarsFile:    renderVarsFile,
	})
	if err != nil {
		return err
	}

	engineName := renderEngine
	if engineName == "" {
		engineName = getCliOpts().TemplateEngine
	}
	engine, err := templates.NewEngine(engineName)
	if err != nil {
		return err
	}

	dstDir := renderDstPath
	if dstDir == "" {
		dstDir = workDir
	}
	written, err := renderer.RenderTree(args[0], dstDir, vars, renderer.WithEngine(engine))
	if err != nil {
		return err
	}
	for _, path := range written {
		fmt.Fprintln(cmd.OutOrStdout(), util.RelativeToCurrentWorkingDir(path))
	}
	return nil
}
