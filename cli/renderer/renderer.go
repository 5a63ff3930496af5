// Package renderer instantiates template directory trees.
package renderer

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"github.com/ch-iv/litestar-manage/cli/templates"
	"github.com/ch-iv/litestar-manage/cli/util"
)

// templateExtensions are suffixes of files whose content is rendered.
var templateExtensions = map[string]bool{
	".jinja":  true,
	".jinja2": true,
}

// TemplateError is returned when a name or a body of the template entry
// references an unknown variable or is malformed.
type TemplateError struct {
	// Path is the source path of the failed entry.
	Path string
	// Err is the engine error.
	Err error
}

// Error implements error interface.
func (e *TemplateError) Error() string {
	return fmt.Sprintf("failed to render %s: %s", e.Path, e.Err)
}

// Unwrap returns the engine error.
func (e *TemplateError) Unwrap() error {
	return e.Err
}

// Is reports TemplateError to be util.ErrTemplate.
func (e *TemplateError) Is(target error) bool {
	return target == util.ErrTemplate
}

type renderOpts struct {
	engine templates.TemplateEngine
}

// Option configures RenderTree.
type Option func(*renderOpts)

// WithEngine sets the template engine. Jinja-compatible engine is used by default.
func WithEngine(engine templates.TemplateEngine) Option {
	return func(opts *renderOpts) {
		opts.engine = engine
	}
}

// RenderTree renders every entry of srcDir into dstDir using vars and returns the paths
// of produced files in production order.
//
// Entry names are templates too. Files ending with .jinja or .jinja2 have their
// content rendered and the extension removed, other files are copied as is.
// An entry whose rendered name is empty is skipped along with its content.
func RenderTree(srcDir, dstDir string, vars map[string]string,
	options ...Option,
) ([]string, error) {
	opts := renderOpts{engine: templates.NewDefaultEngine()}
	for _, option := range options {
		option(&opts)
	}

	if !util.IsDir(srcDir) {
		return nil, fmt.Errorf("template directory %q: %w", srcDir, util.ErrNotFound)
	}
	if vars == nil {
		vars = map[string]string{}
	}

	return renderDir(opts.engine, srcDir, dstDir, vars)
}

func renderDir(engine templates.TemplateEngine, srcDir, dstDir string,
	vars map[string]string,
) ([]string, error) {
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", srcDir, err)
	}

	written := []string{}
	for _, entry := range entries {
		srcPath := filepath.Join(srcDir, entry.Name())

		name, err := engine.RenderText(entry.Name(), vars)
		if err != nil {
			return written, &TemplateError{Path: srcPath, Err: err}
		}

		// A dotfile named like an extension (".jinja") is a plain file.
		ext := filepath.Ext(entry.Name())
		isTemplate := templateExtensions[ext] && len(entry.Name()) > len(ext)
		if isTemplate {
			name = strings.TrimSuffix(name, ext)
		}
		if name == "" {
			log.Debugf("Skipping %s: empty name", srcPath)
			continue
		}
		dstPath := filepath.Join(dstDir, name)

		isDir := entry.IsDir()
		if entry.Type()&fs.ModeSymlink != 0 {
			info, err := os.Stat(srcPath)
			if err != nil {
				return written, fmt.Errorf("failed to resolve %q: %w", srcPath, err)
			}
			isDir = info.IsDir()
		}

		if isDir {
			files, err := renderDir(engine, srcPath, dstPath, vars)
			written = append(written, files...)
			if err != nil {
				return written, err
			}
			continue
		}

		if err = os.MkdirAll(dstDir, 0755); err != nil {
			return written, fmt.Errorf("failed to create %q: %w", dstDir, err)
		}
		if isTemplate {
			err = renderFile(engine, srcPath, dstPath, vars)
		} else {
			err = copyContent(srcPath, dstPath)
		}
		if err != nil {
			return written, err
		}
		log.Debugf("Created %s", dstPath)
		written = append(written, dstPath)
	}
	return written, nil
}

// renderFile renders template body. Engine errors not caused by I/O are template errors.
func renderFile(engine templates.TemplateEngine, srcPath, dstPath string,
	vars map[string]string,
) error {
	err := engine.RenderFile(srcPath, dstPath, vars)
	if err == nil {
		return nil
	}
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return err
	}
	return &TemplateError{Path: srcPath, Err: err}
}

// copyContent copies file content only. Mode, owner and times are not preserved.
func copyContent(srcPath, dstPath string) error {
	src, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.OpenFile(dstPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	if _, err = io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("failed to copy %q: %w", srcPath, err)
	}
	return dst.Close()
}
