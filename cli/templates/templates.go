package templates

import (
	"fmt"

	"github.com/ch-iv/litestar-manage/cli/templates/internal/engines"
	"github.com/ch-iv/litestar-manage/cli/util"
)

const (
	// EngineJinja is a name of the Jinja-compatible engine.
	EngineJinja = "jinja"
	// EngineGoText is a name of the go text/template engine.
	EngineGoText = "gotext"
)

// TemplateEngine is an interface to support to use for application template instantiation.
type TemplateEngine interface {
	// RenderFile applies data to the template from srcPath.
	// Instantiated template is saved as dstPath.
	RenderFile(srcPath, dstPath string, data interface{}) error

	// RenderText applies data to the template text. Returns instantiated text.
	RenderText(in string, data interface{}) (string, error)
}

// NewDefaultEngine creates and returns default template engine.
func NewDefaultEngine() TemplateEngine {
	return engines.JinjaEngine{}
}

// NewGoTextEngine creates go text/template engine.
func NewGoTextEngine() TemplateEngine {
	return engines.GoTextEngine{}
}

// NewEngine returns the engine registered with the name.
func NewEngine(name string) (TemplateEngine, error) {
	switch name {
	case "", EngineJinja:
		return engines.JinjaEngine{}, nil
	case EngineGoText:
		return engines.GoTextEngine{}, nil
	}
	return nil, fmt.Errorf("unknown template engine %q: %w", name, util.ErrInvalidArgument)
}

// Names returns supported engine names.
func Names() []string {
	return []string{EngineJinja, EngineGoText}
}
