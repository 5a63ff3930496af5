package steps

import (
	"fmt"
	"os/exec"

	"github.com/apex/log"
	create_ctx "github.com/ch-iv/litestar-manage/cli/create/context"
	"github.com/ch-iv/litestar-manage/cli/create/internal/app_template"
	"github.com/ch-iv/litestar-manage/cli/util"
)

// RunHook represents post-generation hook run step.
type RunHook struct {
}

// Run executes the template hook with the target path as the first argument.
func (RunHook) Run(ctx *create_ctx.CreateCtx, templateCtx *app_template.TemplateCtx) error {
	if templateCtx.HookPath == "" {
		log.Debug("No hook. Skipping hook step.")
		return nil
	}

	log.Infof("Executing post-hook %s", templateCtx.Manifest.PostHook)
	cmd := exec.Command(templateCtx.HookPath, templateCtx.TargetPath)
	if err := util.RunCommand(cmd, templateCtx.TargetPath, ctx.Verbose); err != nil {
		return fmt.Errorf("error executing %s: %w", templateCtx.Manifest.PostHook, err)
	}
	return nil
}
