package steps

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/apex/log"
	create_ctx "github.com/ch-iv/litestar-manage/cli/create/context"
	"github.com/ch-iv/litestar-manage/cli/create/internal/app_template"
	"github.com/ch-iv/litestar-manage/cli/util"
)

const (
	// MsgAlreadyInitialized is printed when a project exists in the target directory.
	MsgAlreadyInitialized = "Project already initialized."
	// MsgNotInitialized is printed when a resource is generated outside a project.
	MsgNotInitialized = "Project not initialized. Please initialize the project first."
)

const defaultVenvDir = "venv"

// VenvDirName returns configured virtual environment directory name.
func VenvDirName(ctx *create_ctx.CreateCtx) string {
	if ctx.CliOpts != nil && ctx.CliOpts.Venv != nil && ctx.CliOpts.Venv.Dir != "" {
		return ctx.CliOpts.Venv.Dir
	}
	return defaultVenvDir
}

// IsProjectInitialized checks if projectDir contains sources or a virtual environment.
func IsProjectInitialized(projectDir, venvDir string) bool {
	for _, name := range []string{"src", venvDir} {
		if _, err := os.Stat(filepath.Join(projectDir, name)); err == nil {
			return true
		}
	}
	return false
}

// CheckProjectState represents project state check step.
type CheckProjectState struct{}

// Run checks the project directory and sets generation target path. Generation is
// skipped if the project state does not fit the generated kind.
func (CheckProjectState) Run(ctx *create_ctx.CreateCtx,
	templateCtx *app_template.TemplateCtx,
) error {
	projectDir, err := filepath.Abs(ctx.ProjectDir())
	if err != nil {
		return err
	}
	initialized := IsProjectInitialized(projectDir, VenvDirName(ctx))

	switch ctx.Kind {
	case create_ctx.KindApp:
		if initialized {
			fmt.Fprintln(ctx.Writer, MsgAlreadyInitialized)
			templateCtx.Skip = true
			return nil
		}
		if util.IsDir(projectDir) {
			if err = util.IsWritableDir(projectDir); err != nil {
				return err
			}
		}
		templateCtx.TargetPath = projectDir
	case create_ctx.KindResource:
		if !initialized {
			fmt.Fprintln(ctx.Writer, MsgNotInitialized)
			templateCtx.Skip = true
			return nil
		}
		templateCtx.TargetPath = filepath.Join(projectDir, "src", ctx.Resource.Module())
	}

	log.Debugf("Generating %s in %s", ctx.Kind, templateCtx.TargetPath)
	return nil
}
