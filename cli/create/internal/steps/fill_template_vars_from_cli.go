package steps

import (
	"fmt"
	"strings"

	"github.com/apex/log"
	create_ctx "github.com/ch-iv/litestar-manage/cli/create/context"
	"github.com/ch-iv/litestar-manage/cli/create/internal/app_template"
	"github.com/ch-iv/litestar-manage/cli/util"
)

const formatError = `wrong variable definition format: %s
Format: var-name=value`

// parseVarDefinition parses "name=value" definition.
func parseVarDefinition(definition string) (string, string, error) {
	definition = strings.TrimSpace(definition)
	name, value, found := strings.Cut(definition, "=")
	name = strings.TrimSpace(name)
	if !found || name == "" || value == "" {
		return "", "", fmt.Errorf(formatError, definition)
	}
	if !util.IsIdentifier(name) {
		return "", "", fmt.Errorf("invalid variable name %q: %w", name, util.ErrInvalidArgument)
	}
	return name, value, nil
}

// FillTemplateVarsFromCli represents command line variables collect step.
type FillTemplateVarsFromCli struct {
}

// Run collects variables passed using command line args.
func (FillTemplateVarsFromCli) Run(ctx *create_ctx.CreateCtx,
	templateCtx *app_template.TemplateCtx,
) error {
	for _, varDefinition := range ctx.VarsFromCli {
		name, value, err := parseVarDefinition(varDefinition)
		if err != nil {
			return err
		}
		log.Debugf("Setting var from CLI: %s = %s", name, value)
		templateCtx.Vars[name] = value
	}
	return nil
}
