package steps

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	create_ctx "github.com/ch-iv/litestar-manage/cli/create/context"
	"github.com/ch-iv/litestar-manage/cli/create/internal/app_template"
	"github.com/ch-iv/litestar-manage/cli/util"
	"gopkg.in/yaml.v3"
)

// LoadVarsFile represents variables file load step.
type LoadVarsFile struct {
}

// loadYamlVars reads variables from a YAML mapping.
func loadYamlVars(varsFilePath string) (map[string]string, error) {
	data, err := os.ReadFile(varsFilePath)
	if err != nil {
		return nil, err
	}
	raw := map[string]interface{}{}
	if err = yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	vars := make(map[string]string, len(raw))
	for name, value := range raw {
		switch value.(type) {
		case map[string]interface{}, []interface{}, nil:
			return nil, fmt.Errorf("variable %q must be a scalar value", name)
		}
		vars[name] = fmt.Sprint(value)
	}
	return vars, nil
}

// loadVarDefinitions reads "name=value" lines. Empty lines and comments are skipped.
func loadVarDefinitions(varsFilePath string) (map[string]string, error) {
	varsFile, err := os.Open(varsFilePath)
	if err != nil {
		return nil, err
	}
	defer varsFile.Close()

	vars := map[string]string{}
	scanner := util.FileLinesScanner(varsFile)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		name, value, err := parseVarDefinition(line)
		if err != nil {
			return nil, err
		}
		vars[name] = value
	}
	return vars, scanner.Err()
}

// Run loads variables from the vars file.
func (LoadVarsFile) Run(ctx *create_ctx.CreateCtx,
	templateCtx *app_template.TemplateCtx,
) error {
	if ctx.VarsFile == "" { // Skip if no file specified.
		return nil
	}

	varsFilePath := ctx.VarsFile
	if !filepath.IsAbs(varsFilePath) {
		varsFilePath = filepath.Join(ctx.WorkDir, varsFilePath)
	}
	if _, err := os.Stat(varsFilePath); err != nil {
		return fmt.Errorf("vars file loading error: %w", err)
	}

	var vars map[string]string
	var err error
	switch filepath.Ext(varsFilePath) {
	case ".yml", ".yaml":
		vars, err = loadYamlVars(varsFilePath)
	default:
		vars, err = loadVarDefinitions(varsFilePath)
	}
	if err != nil {
		return fmt.Errorf("failed to load vars from %s: %w", ctx.VarsFile, err)
	}

	for name, value := range vars {
		log.Debugf("Setting var from vars file: %s = %s", name, value)
		templateCtx.Vars[name] = value
	}
	return nil
}
