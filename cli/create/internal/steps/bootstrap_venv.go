package steps

import (
	"fmt"
	"path/filepath"

	"github.com/ch-iv/litestar-manage/cli/applog"
	create_ctx "github.com/ch-iv/litestar-manage/cli/create/context"
	"github.com/ch-iv/litestar-manage/cli/create/internal/app_template"
	"github.com/ch-iv/litestar-manage/cli/util"
	"github.com/ch-iv/litestar-manage/cli/venv"
)

// VenvKindPip selects the pip virtual environment builder.
const VenvKindPip = "pip"

// BootstrapVenv represents virtual environment creation step.
type BootstrapVenv struct {
	// Builder overrides the builder selected by the venv kind.
	Builder venv.Builder
}

// Run creates a virtual environment in the project directory and installs packages.
func (step BootstrapVenv) Run(ctx *create_ctx.CreateCtx,
	templateCtx *app_template.TemplateCtx,
) error {
	if ctx.Kind != create_ctx.KindApp || ctx.VenvKind == "" {
		return nil
	}

	builder := step.Builder
	if builder == nil {
		if ctx.VenvKind != VenvKindPip {
			return fmt.Errorf("unsupported venv kind %q: %w", ctx.VenvKind,
				util.ErrInvalidArgument)
		}
		pipBuilder := venv.NewPipBuilder()
		if ctx.CliOpts != nil {
			pipBuilder = venv.NewPipBuilderFromConfig(ctx.CliOpts.Venv, ctx.Verbose)
			if logger := applog.NewFromConfig(ctx.CliOpts.Log); logger != nil {
				defer logger.Close()
				pipBuilder.Log = logger
			}
		}
		builder = pipBuilder
	}

	return venv.Bootstrap(filepath.Join(templateCtx.TargetPath, VenvDirName(ctx)), builder,
		ctx.Packages)
}
