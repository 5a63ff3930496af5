package steps

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/apex/log"
	create_ctx "github.com/ch-iv/litestar-manage/cli/create/context"
	"github.com/ch-iv/litestar-manage/cli/create/internal/app_template"
	"github.com/ch-iv/litestar-manage/cli/util"
)

// LoadManifest represents manifest load step.
type LoadManifest struct {
}

// applyVarDefinitions sets defaults of unset variables and validates values.
func applyVarDefinitions(templateCtx *app_template.TemplateCtx) error {
	for _, varDef := range templateCtx.Manifest.Vars {
		value, found := templateCtx.Vars[varDef.Name]
		if !found && varDef.Default != "" {
			log.Debugf("Setting var default: %s = %s", varDef.Name, varDef.Default)
			value = varDef.Default
			templateCtx.Vars[varDef.Name] = value
		}
		if varDef.Re == "" {
			continue
		}
		if !regexp.MustCompile(varDef.Re).MatchString(value) {
			return fmt.Errorf("value %q of %q does not match %q: %w",
				value, varDef.Name, varDef.Re, util.ErrInvalidArgument)
		}
	}
	return nil
}

// Run loads template manifest. Missing manifest is not an error. The manifest and
// the hook are removed from the template tree.
func (LoadManifest) Run(ctx *create_ctx.CreateCtx, templateCtx *app_template.TemplateCtx) error {
	manifestPath := filepath.Join(templateCtx.TemplatePath, app_template.DefaultManifestName)

	if _, err := os.Stat(manifestPath); os.IsNotExist(err) {
		log.Debug("There is no manifest in template.")
		templateCtx.IsManifestPresent = false
		return nil
	}

	manifest, err := app_template.LoadManifest(manifestPath)
	if err != nil {
		return fmt.Errorf("failed to load manifest file: %w", err)
	}
	templateCtx.Manifest = manifest
	templateCtx.IsManifestPresent = true

	if err = os.Remove(manifestPath); err != nil {
		return fmt.Errorf("failed to remove manifest %s: %w", manifestPath, err)
	}

	if manifest.PostHook != "" {
		hookPath := filepath.Join(templateCtx.TemplatePath, manifest.PostHook)
		templateCtx.HookPath = filepath.Join(templateCtx.TempDir, filepath.Base(hookPath))
		if err = os.Rename(hookPath, templateCtx.HookPath); err != nil {
			return fmt.Errorf("failed to access hook %s: %w", manifest.PostHook, err)
		}
	}

	return applyVarDefinitions(templateCtx)
}
