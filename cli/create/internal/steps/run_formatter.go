package steps

import (
	"fmt"

	"github.com/apex/log"
	create_ctx "github.com/ch-iv/litestar-manage/cli/create/context"
	"github.com/ch-iv/litestar-manage/cli/create/internal/app_template"
	"github.com/ch-iv/litestar-manage/cli/formatter"
)

// RunFormatter represents generated sources formatting step.
type RunFormatter struct{}

// Run formats the generated files with ruff. Missing ruff is an error.
func (RunFormatter) Run(ctx *create_ctx.CreateCtx, templateCtx *app_template.TemplateCtx) error {
	executable := ""
	if ctx.CliOpts != nil && ctx.CliOpts.Formatter != nil {
		if !ctx.CliOpts.Formatter.Enabled {
			ctx.NoFormat = true
		}
		executable = ctx.CliOpts.Formatter.Executable
	}
	if ctx.NoFormat {
		log.Debug("Formatting is disabled.")
		return nil
	}

	ruff, err := formatter.New(executable)
	if err != nil {
		return fmt.Errorf("%w (use --no-format to skip formatting)", err)
	}
	return ruff.Run(templateCtx.TargetPath)
}
