package engines

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/ch-iv/litestar-manage/cli/util"
)

// GoTextEngine renders templates with go text/template. Every variable is
// available both as a map key ({{.app_name}}) and as a bare name ({{app_name}}).
type GoTextEngine struct {
}

// newTextTemplate creates a strict template with helper funcs and variable funcs.
func newTextTemplate(name string, vars map[string]interface{}) *template.Template {
	funcs := make(template.FuncMap, len(commonTemplateFuncs)+len(vars))
	for funcName, fn := range commonTemplateFuncs {
		funcs[funcName] = fn
	}
	for varName, value := range vars {
		if !util.IsIdentifier(varName) {
			continue
		}
		value := value
		funcs[varName] = func() interface{} { return value }
	}
	// Treat missing variable as error.
	return template.New(name).Funcs(funcs).Option("missingkey=error")
}

func (GoTextEngine) execute(name, text string, data interface{}) ([]byte, error) {
	vars, err := toStringMap(data)
	if err != nil {
		return nil, err
	}

	parsedTemplate, err := newTextTemplate(name, vars).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %s", name, err)
	}

	var buffer bytes.Buffer
	if err = parsedTemplate.Execute(&buffer, vars); err != nil {
		return nil, fmt.Errorf("template execution failed: %s", err)
	}
	return buffer.Bytes(), nil
}

// RenderFile renders srcPath template to dstPath using go text/template engine.
func (engine GoTextEngine) RenderFile(srcPath string, dstPath string, data interface{}) error {
	text, err := os.ReadFile(srcPath)
	if err != nil {
		return fmt.Errorf("error reading %s: %w", srcPath, err)
	}

	rendered, err := engine.execute(filepath.Base(srcPath), string(text), data)
	if err != nil {
		return err
	}

	if err = os.WriteFile(dstPath, rendered, 0644); err != nil {
		return fmt.Errorf("error creating %s: %w", dstPath, err)
	}
	return nil
}

// RenderText renders in text using go text/template engine.
func (engine GoTextEngine) RenderText(in string, data interface{}) (string, error) {
	rendered, err := engine.execute("text", in, data)
	if err != nil {
		return "", err
	}
	return string(rendered), nil
}
