package steps

import (
	"fmt"
	"path/filepath"
	"strings"

	create_ctx "github.com/ch-iv/litestar-manage/cli/create/context"
	"github.com/ch-iv/litestar-manage/cli/create/internal/app_template"
	"github.com/fatih/color"
)

// PrintFollowUpMessage represents follow-up message print step.
type PrintFollowUpMessage struct{}

func relativePath(base, target string) string {
	if absBase, err := filepath.Abs(base); err == nil {
		base = absBase
	}
	if rel, err := filepath.Rel(base, target); err == nil {
		return rel
	}
	return target
}

// Run prints template follow-up message or a summary of generated code.
func (PrintFollowUpMessage) Run(createCtx *create_ctx.CreateCtx,
	templateCtx *app_template.TemplateCtx,
) error {
	writer := createCtx.Writer
	if templateCtx.IsManifestPresent && templateCtx.Manifest.FollowUpMessage != "" {
		followUpText, err := templateCtx.Engine.RenderText(templateCtx.Manifest.FollowUpMessage,
			templateCtx.Vars)
		if err != nil {
			return err
		}
		fmt.Fprintln(writer, strings.TrimRight(followUpText, "\n"))
		return nil
	}

	success := color.New(color.FgGreen)
	switch createCtx.Kind {
	case create_ctx.KindApp:
		success.Fprintf(writer, "Project %s created in %s\n", createCtx.App.AppName,
			templateCtx.TargetPath)
	case create_ctx.KindResource:
		success.Fprintf(writer, "Resource %s created in %s\n", createCtx.Resource.ResourceName,
			relativePath(createCtx.ProjectDir(), templateCtx.TargetPath))
	}
	return nil
}
