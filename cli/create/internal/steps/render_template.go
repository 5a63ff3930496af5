package steps

import (
	"fmt"

	create_ctx "github.com/ch-iv/litestar-manage/cli/create/context"
	"github.com/ch-iv/litestar-manage/cli/create/internal/app_template"
	"github.com/ch-iv/litestar-manage/cli/renderer"
)

// RenderTemplate represents template render step.
type RenderTemplate struct{}

// Run renders template tree into the target directory.
func (RenderTemplate) Run(ctx *create_ctx.CreateCtx, templateCtx *app_template.TemplateCtx) error {
	files, err := renderer.RenderTree(templateCtx.TemplatePath, templateCtx.TargetPath,
		templateCtx.Vars, renderer.WithEngine(templateCtx.Engine))
	templateCtx.Files = files
	if err != nil {
		return fmt.Errorf("template instantiation error: %w", err)
	}
	return nil
}
