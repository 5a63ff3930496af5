package steps

import (
	"fmt"
	"path/filepath"

	"github.com/apex/log"
	"github.com/ch-iv/litestar-manage/cli/create/builtin_templates"
	create_ctx "github.com/ch-iv/litestar-manage/cli/create/context"
	"github.com/ch-iv/litestar-manage/cli/create/internal/app_template"
	"github.com/ch-iv/litestar-manage/cli/templates"
	"github.com/ch-iv/litestar-manage/cli/util"
	"github.com/otiai10/copy"
)

// Embedded files are read-only, copies must be removable.
var copyOpts = copy.Options{PermissionControl: copy.AddPermission(0o200)}

// CopyTemplate represents template copy step.
type CopyTemplate struct {
}

// Run copies the template from the search paths or the built-in set to the
// temporary template directory and selects the template engine.
func (CopyTemplate) Run(ctx *create_ctx.CreateCtx, templateCtx *app_template.TemplateCtx) error {
	templateName := ctx.TemplateName

	for _, templatesLocation := range ctx.TemplateSearchPaths {
		templatePath := filepath.Join(templatesLocation, templateName)
		if !util.IsDir(templatePath) {
			continue
		}
		log.Infof("Using template from %s", templatePath)
		if err := copy.Copy(templatePath, templateCtx.TemplatePath, copyOpts); err != nil {
			return fmt.Errorf("template copying failed: %w", err)
		}
		engine, err := templates.NewEngine(ctx.Engine)
		if err != nil {
			return err
		}
		templateCtx.Engine = engine
		return nil
	}

	if builtin_templates.Exists(templateName) {
		log.Debugf("Using built-in template %s", templateName)
		opts := copyOpts
		opts.FS = builtin_templates.TemplatesFs
		if err := copy.Copy(builtin_templates.Path(templateName), templateCtx.TemplatePath,
			opts); err != nil {
			return fmt.Errorf("template copying failed: %w", err)
		}
		templateCtx.Engine = templates.NewDefaultEngine()
		return nil
	}

	return fmt.Errorf("template %q: %w", templateName, util.ErrNotFound)
}
