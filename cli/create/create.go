package create

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/ch-iv/litestar-manage/cli/config"
	"github.com/ch-iv/litestar-manage/cli/create/builtin_templates"
	create_ctx "github.com/ch-iv/litestar-manage/cli/create/context"
	"github.com/ch-iv/litestar-manage/cli/create/internal/app_template"
	"github.com/ch-iv/litestar-manage/cli/create/internal/steps"
	"github.com/ch-iv/litestar-manage/cli/util"
	"github.com/ch-iv/litestar-manage/cli/version"
)

const (
	// MsgAlreadyInitialized is printed by new command in an existing project.
	MsgAlreadyInitialized = steps.MsgAlreadyInitialized
	// MsgNotInitialized is printed by resource command outside a project.
	MsgNotInitialized = steps.MsgNotInitialized
)

// FillCtx fills create context with configuration values not set by command line.
func FillCtx(cliOpts *config.CliOpts, createCtx *create_ctx.CreateCtx, writer io.Writer) error {
	createCtx.CliOpts = cliOpts
	createCtx.Writer = writer
	for _, p := range cliOpts.Templates {
		createCtx.TemplateSearchPaths = append(createCtx.TemplateSearchPaths, p.Path)
	}

	if createCtx.TemplateName == "" {
		if createCtx.Kind == create_ctx.KindResource {
			createCtx.TemplateName = builtin_templates.Resource
		} else {
			createCtx.TemplateName = builtin_templates.App
		}
	}
	if createCtx.Engine == "" {
		createCtx.Engine = cliOpts.TemplateEngine
	}
	if createCtx.Packages == nil && cliOpts.Venv != nil {
		createCtx.Packages = cliOpts.Venv.Packages
	}
	if createCtx.VenvKind == "" && cliOpts.Venv != nil {
		createCtx.VenvKind = cliOpts.Venv.Kind
	}

	workingDir, err := os.Getwd()
	if err != nil {
		return err
	}
	createCtx.WorkDir = workingDir

	return nil
}

// rollbackOnErr removes temporary template directory.
func rollbackOnErr(templateCtx *app_template.TemplateCtx) {
	if templateCtx.TempDir != "" {
		os.RemoveAll(templateCtx.TempDir)
	}
	templateCtx.TempDir = ""
}

// Run generates a project or a resource from a template.
func Run(createCtx *create_ctx.CreateCtx) error {
	if err := checkCtx(createCtx); err != nil {
		return util.InternalError("Create context check failed: %s", version.GetVersion, err)
	}

	stepsChain := []steps.Step{
		steps.CheckProjectState{},
		steps.FillTemplateVars{},
		steps.LoadVarsFile{},
		steps.FillTemplateVarsFromCli{},
		steps.CreateTemporaryTemplateDirectory{},
		steps.CopyTemplate{},
		steps.LoadManifest{},
		steps.RenderTemplate{},
		steps.RunHook{},
		steps.RunFormatter{},
		steps.BootstrapVenv{},
		steps.PrintFollowUpMessage{},
		steps.Cleanup{},
	}

	templateCtx := app_template.NewTemplateContext()
	for _, step := range stepsChain {
		if err := step.Run(createCtx, &templateCtx); err != nil {
			rollbackOnErr(&templateCtx)
			return err
		}
		if templateCtx.Skip {
			break
		}
	}

	return nil
}

// CollectVars returns variables defined by the vars file and the command line
// of the create context.
func CollectVars(createCtx *create_ctx.CreateCtx) (map[string]string, error) {
	templateCtx := app_template.NewTemplateContext()
	for _, step := range []steps.Step{steps.LoadVarsFile{}, steps.FillTemplateVarsFromCli{}} {
		if err := step.Run(createCtx, &templateCtx); err != nil {
			return nil, err
		}
	}
	return templateCtx.Vars, nil
}

// checkCtx checks create context for validity.
func checkCtx(ctx *create_ctx.CreateCtx) error {
	if ctx.TemplateName == "" {
		return fmt.Errorf("template name is missing")
	}
	if ctx.Writer == nil {
		return fmt.Errorf("output writer is not set")
	}
	return nil
}

// TemplateInfo describes an available template.
type TemplateInfo struct {
	// Name is the template name.
	Name string
	// Location is a template directory or "built-in".
	Location string
	// Description is taken from the template manifest.
	Description string
}

// ListTemplates returns built-in templates and templates found in configured paths.
func ListTemplates(cliOpts *config.CliOpts) ([]TemplateInfo, error) {
	infos := []TemplateInfo{}
	for _, name := range builtin_templates.Names {
		info := TemplateInfo{Name: name, Location: "built-in"}
		manifest, err := app_template.LoadManifestFS(builtin_templates.TemplatesFs,
			builtin_templates.Path(name)+"/"+app_template.DefaultManifestName)
		if err == nil {
			info.Description = manifest.Description
		}
		infos = append(infos, info)
	}

	for _, templatesPath := range cliOpts.Templates {
		entries, err := os.ReadDir(templatesPath.Path)
		if os.IsNotExist(err) {
			continue
		} else if err != nil {
			return nil, err
		}
		custom := []TemplateInfo{}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			templateDir := filepath.Join(templatesPath.Path, entry.Name())
			info := TemplateInfo{Name: entry.Name(), Location: templateDir}
			manifest, err := app_template.LoadManifest(
				filepath.Join(templateDir, app_template.DefaultManifestName))
			if err == nil {
				info.Description = manifest.Description
			}
			custom = append(custom, info)
		}
		sort.Slice(custom, func(i, j int) bool { return custom[i].Name < custom[j].Name })
		infos = append(infos, custom...)
	}
	return infos, nil
}
