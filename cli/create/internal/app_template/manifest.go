package app_template

import (
	"fmt"
	"io/fs"
	"os"
	"regexp"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v2"
)

const (
	DefaultManifestName = "MANIFEST.yaml"
)

// VarDefinition describes a template variable.
type VarDefinition struct {
	// Name is a variable name.
	Name string
	// Default is a value used if the variable is not set in command line or vars file.
	Default string
	// Re is a regular expression for the value validation.
	Re string
}

// TemplateManifest is a manifest for project template.
type TemplateManifest struct {
	// Description is a template description.
	Description string
	// FollowUpMessage is printed after the project is created. It may contain
	// template variables.
	FollowUpMessage string `mapstructure:"follow-up-message"`
	// Vars is a set of variables the template uses.
	Vars []VarDefinition
	// PostHook is a path to the executable to run after template instantiation.
	// Generated project path is passed as a first parameter.
	PostHook string `mapstructure:"post-hook"`
}

func validateManifest(manifest *TemplateManifest) error {
	for _, varInfo := range manifest.Vars {
		if varInfo.Name == "" {
			return fmt.Errorf("missing variable name")
		}
		if varInfo.Re != "" {
			if _, err := regexp.Compile(varInfo.Re); err != nil {
				return fmt.Errorf("invalid regular expression for %q: %s", varInfo.Name, err)
			}
		}
	}
	return nil
}

// ParseManifest decodes manifest data.
func ParseManifest(data []byte) (TemplateManifest, error) {
	var templateManifest TemplateManifest
	raw := make(map[string]interface{})
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return templateManifest, fmt.Errorf("failed to parse template manifest: %s", err)
	}

	if err := mapstructure.Decode(raw, &templateManifest); err != nil {
		return templateManifest, fmt.Errorf("failed to decode template manifest: %s", err)
	}

	if err := validateManifest(&templateManifest); err != nil {
		return templateManifest, fmt.Errorf("invalid manifest format: %s", err)
	}

	return templateManifest, nil
}

// LoadManifest loads template manifest from manifestPath.
func LoadManifest(manifestPath string) (TemplateManifest, error) {
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return TemplateManifest{}, fmt.Errorf("failed to get access to manifest file: %w", err)
	}
	return ParseManifest(data)
}

// LoadManifestFS loads template manifest from the file system.
func LoadManifestFS(fsys fs.FS, manifestPath string) (TemplateManifest, error) {
	data, err := fs.ReadFile(fsys, manifestPath)
	if err != nil {
		return TemplateManifest{}, fmt.Errorf("failed to get access to manifest file: %w", err)
	}
	return ParseManifest(data)
}
