package create_ctx

import (
	"fmt"
	"io"
	"strings"

	"github.com/ch-iv/litestar-manage/cli/config"
	"github.com/ch-iv/litestar-manage/cli/util"
)

// Kind is a kind of the generated code.
type Kind int

const (
	// KindApp is a new project.
	KindApp Kind = iota
	// KindResource is a resource package inside an existing project.
	KindResource
)

// String returns the kind name.
func (k Kind) String() string {
	if k == KindResource {
		return "resource"
	}
	return "app"
}

// AppCtx describes a new application.
type AppCtx struct {
	// AppName is the application name. Required.
	AppName string
	// IncludeDocker adds a Dockerfile to the project.
	IncludeDocker bool
}

// Validate checks application parameters.
func (c AppCtx) Validate() error {
	if strings.TrimSpace(c.AppName) == "" {
		return fmt.Errorf("application name cannot be empty: %w", util.ErrInvalidArgument)
	}
	if util.SnakeCase(c.AppName) == "" {
		return fmt.Errorf("application name %q has no letters or digits: %w", c.AppName,
			util.ErrInvalidArgument)
	}
	return nil
}

// Vars returns template variables of the application.
func (c AppCtx) Vars() map[string]string {
	dockerfile := ""
	if c.IncludeDocker {
		dockerfile = "Dockerfile"
	}
	return map[string]string{
		"app_name":   c.AppName,
		"app_module": util.SnakeCase(c.AppName),
		"dockerfile": dockerfile,
	}
}

// ResourceCtx describes a resource package.
type ResourceCtx struct {
	// ResourceName is the resource name. Required, must be an identifier.
	ResourceName string
}

// Validate checks resource parameters.
func (c ResourceCtx) Validate() error {
	if c.ResourceName == "" {
		return fmt.Errorf("resource name cannot be empty: %w", util.ErrInvalidArgument)
	}
	if !util.IsIdentifier(c.ResourceName) {
		return fmt.Errorf("resource name %q is not a valid identifier: %w", c.ResourceName,
			util.ErrInvalidArgument)
	}
	return nil
}

// Module returns the resource package name.
func (c ResourceCtx) Module() string {
	return util.SnakeCase(c.ResourceName)
}

// Vars returns template variables of the resource.
func (c ResourceCtx) Vars() map[string]string {
	return map[string]string{
		"resource_name":   c.ResourceName,
		"resource_module": c.Module(),
		"app_name":        c.ResourceName,
	}
}

// CreateCtx contains information for creating a project or a resource from templates.
type CreateCtx struct {
	// Kind is a kind of the generated code.
	Kind Kind
	// App is the application description for KindApp.
	App AppCtx
	// Resource is the resource description for KindResource.
	Resource ResourceCtx
	// WorkDir is the launch working directory.
	WorkDir string
	// DestinationDir is the project directory. WorkDir is used if empty.
	DestinationDir string
	// TemplateSearchPaths is a set of paths to search for a template.
	TemplateSearchPaths []string
	// TemplateName is a template to use.
	TemplateName string
	// Engine is a template engine name.
	Engine string
	// VarsFromCli template variables definitions provided in command line.
	VarsFromCli []string
	// VarsFile is a file with variables definitions.
	VarsFile string
	// NoFormat disables the formatter run.
	NoFormat bool
	// VenvKind is a kind of virtual environment to create. Empty - no environment.
	VenvKind string
	// Packages are installed into the created environment.
	Packages []string
	// Verbose enables subprocess output.
	Verbose bool
	// Writer receives user-facing messages.
	Writer io.Writer
	// CliOpts is loaded environment config.
	CliOpts *config.CliOpts
}

// ProjectDir returns the project root directory.
func (ctx *CreateCtx) ProjectDir() string {
	if ctx.DestinationDir != "" {
		return ctx.DestinationDir
	}
	return ctx.WorkDir
}

// Vars returns template variables for the kind of generated code.
func (ctx *CreateCtx) Vars() map[string]string {
	if ctx.Kind == KindResource {
		return ctx.Resource.Vars()
	}
	return ctx.App.Vars()
}

// Validate checks the description for the kind of generated code.
func (ctx *CreateCtx) Validate() error {
	if ctx.Kind == KindResource {
		return ctx.Resource.Validate()
	}
	return ctx.App.Validate()
}
