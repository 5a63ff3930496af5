package builtin_templates

import (
	"embed"
	"path"
)

//go:embed all:templates
var TemplatesFs embed.FS

const (
	// App is a new project template.
	App = "app"
	// Resource is a resource package template.
	Resource = "resource"
)

// Names contains built-in template names.
var Names = [...]string{App, Resource}

// Exists checks the built-in template exists.
func Exists(name string) bool {
	for _, builtinName := range Names {
		if name == builtinName {
			return true
		}
	}
	return false
}

// Path returns the template directory in TemplatesFs.
func Path(name string) string {
	return path.Join("templates", name)
}
