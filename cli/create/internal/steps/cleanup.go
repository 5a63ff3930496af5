package steps

import (
	"os"

	"github.com/apex/log"
	create_ctx "github.com/ch-iv/litestar-manage/cli/create/context"
	"github.com/ch-iv/litestar-manage/cli/create/internal/app_template"
)

// Cleanup represents temporary directory cleanup step.
type Cleanup struct{}

// Run removes the temporary directory.
func (Cleanup) Run(createCtx *create_ctx.CreateCtx,
	templateCtx *app_template.TemplateCtx,
) error {
	if templateCtx.TempDir == "" {
		return nil
	}
	log.Debugf("Removing %s", templateCtx.TempDir)
	if err := os.RemoveAll(templateCtx.TempDir); err != nil {
		log.Warnf("Failed to remove temporary directory: %s", err)
	}
	templateCtx.TempDir = ""
	return nil
}
