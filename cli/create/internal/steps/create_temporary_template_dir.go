package steps

import (
	"fmt"
	"os"
	"path/filepath"

	create_ctx "github.com/ch-iv/litestar-manage/cli/create/context"
	"github.com/ch-iv/litestar-manage/cli/create/internal/app_template"
)

// CreateTemporaryTemplateDirectory represents create temporary template directory step.
type CreateTemporaryTemplateDirectory struct {
}

// Run creates temporary directory the template is copied to.
func (CreateTemporaryTemplateDirectory) Run(ctx *create_ctx.CreateCtx,
	templateCtx *app_template.TemplateCtx,
) error {
	tempDir, err := os.MkdirTemp("", "litestar-manage-"+ctx.Kind.String()+"*")
	if err != nil {
		return fmt.Errorf("failed to create temporary directory: %w", err)
	}
	templateCtx.TempDir = tempDir
	templateCtx.TemplatePath = filepath.Join(tempDir, "template")
	return nil
}
