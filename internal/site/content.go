package site

import (
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

var (
	ErrTemplateNotFound = errors.New("template not found")
	ErrFileNotFound     = errors.New("file not found")
)

// Content reads templates and static files from disk on every call,
// so edits and deletions show up without a restart.
type Content struct {
	templateDir string
	staticDir   string
}

func NewContent(templateDir, staticDir string) *Content {
	return &Content{
		templateDir: templateDir,
		staticDir:   staticDir,
	}
}

// StaticDir is the directory static files are served from
func (c *Content) StaticDir() string {
	return c.staticDir
}

// Render executes the named template into w without any data.
func (c *Content) Render(w io.Writer, name string) error {
	if !filepath.IsLocal(name) {
		return fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}

	tmpl, err := template.ParseFiles(filepath.Join(c.templateDir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
		}
		return fmt.Errorf("parse template %s: %w", name, err)
	}

	if err := tmpl.Execute(w, nil); err != nil {
		return fmt.Errorf("execute template %s: %w", name, err)
	}
	return nil
}

// Open returns the named static file and its info. The caller closes the file.
// Names that leave the static directory or point at a directory are not found.
func (c *Content) Open(name string) (*os.File, fs.FileInfo, error) {
	if !filepath.IsLocal(name) {
		return nil, nil, fmt.Errorf("%w: %s", ErrFileNotFound, name)
	}

	f, err := os.Open(filepath.Join(c.staticDir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, fmt.Errorf("%w: %s", ErrFileNotFound, name)
		}
		return nil, nil, fmt.Errorf("open %s: %w", name, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("stat %s: %w", name, err)
	}
	if info.IsDir() {
		f.Close()
		return nil, nil, fmt.Errorf("%w: %s", ErrFileNotFound, name)
	}

	return f, info, nil
}
