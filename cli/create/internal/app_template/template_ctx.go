package app_template

import "github.com/ch-iv/litestar-manage/cli/templates"

// TemplateCtx contains an information required for template rendering.
type TemplateCtx struct {
	// TempDir is a temporary working directory removed after generation.
	TempDir string
	// TemplatePath is a temporary directory the template is copied to.
	TemplatePath string
	// HookPath is a post-generation hook moved out of the template.
	HookPath string
	// TargetPath is a directory the template is rendered to.
	TargetPath string
	// Manifest is a loaded template manifest.
	Manifest TemplateManifest
	// IsManifestPresent is true is a template manifest is loaded. False - otherwise.
	IsManifestPresent bool
	// Vars is a map if variables to be used for template rendering.
	Vars map[string]string
	// Engine is a template engine to use for template rendering.
	Engine templates.TemplateEngine
	// Files is a list of rendered files.
	Files []string
	// Skip is set when the project state does not allow to continue.
	// Remaining steps are not executed.
	Skip bool
}

// NewTemplateContext creates new template context.
func NewTemplateContext() TemplateCtx {
	var ctx TemplateCtx
	ctx.Vars = make(map[string]string)
	ctx.Engine = templates.NewDefaultEngine()
	return ctx
}
