package steps

import (
	"github.com/apex/log"
	create_ctx "github.com/ch-iv/litestar-manage/cli/create/context"
	"github.com/ch-iv/litestar-manage/cli/create/internal/app_template"
)

// FillTemplateVars represents a step for setting variables of the generated kind.
type FillTemplateVars struct{}

// Run validates app or resource description and sets its variables.
func (FillTemplateVars) Run(ctx *create_ctx.CreateCtx,
	templateCtx *app_template.TemplateCtx,
) error {
	if err := ctx.Validate(); err != nil {
		return err
	}
	for name, value := range ctx.Vars() {
		log.Debugf("Setting var: %s = %s", name, value)
		templateCtx.Vars[name] = value
	}
	return nil
}
