package cmd

import (
	"github.com/ch-iv/litestar-manage/cli/create"
	"github.com/ch-iv/litestar-manage/cli/util"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

var templatesPretty bool

// NewTemplatesCmd creates a command listing available templates.
func NewTemplatesCmd() *cobra.Command {
	var templatesCmd = &cobra.Command{
		Use:   "templates",
		Short: "List available project and resource templates",
		Run: func(cmd *cobra.Command, args []string) {
			cmdCtx.CommandName = cmd.Name()
			err := internalTemplatesModule(cmd, args)
			util.HandleCmdErr(cmd, err)
		},
		Args: cobra.NoArgs,
	}

	templatesCmd.Flags().BoolVarP(&templatesPretty, "pretty", "p", false,
		"Print a table with borders")

	return templatesCmd
}

// templateNamesCompletion returns available template names.
func templateNamesCompletion(*cobra.Command, []string,
	string,
) ([]string, cobra.ShellCompDirective) {
	infos, err := create.ListTemplates(getCliOpts())
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name)
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

// internalTemplatesModule is a default templates module.
func internalTemplatesModule(cmd *cobra.Command, args []string) error {
	infos, err := create.ListTemplates(getCliOpts())
	if err != nil {
		return err
	}

	ts := table.NewWriter()
	ts.SetOutputMirror(cmd.OutOrStdout())
	ts.AppendHeader(table.Row{"NAME", "LOCATION", "DESCRIPTION"})
	for _, info := range infos {
		ts.AppendRow(table.Row{info.Name, info.Location, info.Description})
	}

	if templatesPretty {
		ts.SetStyle(table.StyleRounded)
	} else {
		ts.Style().Options.DrawBorder = false
		ts.Style().Options.SeparateColumns = false
		ts.Style().Options.SeparateHeader = false
	}
	ts.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
	})
	ts.Render()

	return nil
}
