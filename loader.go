package mustache

import (
	"errors"
	"io/fs"
	"path"
)

// PartialLoader supplies partial sources that were not passed to a render
// call. A missing partial is reported with ok == false and renders as
// empty text; an error aborts the render.
type PartialLoader interface {
	LoadPartial(name string) (source string, ok bool, err error)
}

// LoaderFunc adapts a function to PartialLoader.
type LoaderFunc func(name string) (string, bool, error)

// LoadPartial calls f.
func (f LoaderFunc) LoadPartial(name string) (string, bool, error) {
	return f(name)
}

// MapLoader serves partials from a map.
type MapLoader map[string]string

// LoadPartial implements PartialLoader.
func (m MapLoader) LoadPartial(name string) (string, bool, error) {
	source, ok := m[name]
	return source, ok, nil
}

// FSLoader serves partials from files. Partial "a.b" is read from
// "a.b"+ext under fsys; names are validated by the parser, so they never
// contain path separators.
type FSLoader struct {
	fsys fs.FS
	ext  string
}

// NewFSLoader creates a loader reading name+ext from fsys.
func NewFSLoader(fsys fs.FS, ext string) *FSLoader {
	return &FSLoader{fsys: fsys, ext: ext}
}

// LoadPartial implements PartialLoader.
func (l *FSLoader) LoadPartial(name string) (string, bool, error) {
	file := path.Clean(name + l.ext)
	if !fs.ValidPath(file) {
		return "", false, nil
	}
	data, err := fs.ReadFile(l.fsys, file)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(data), true, nil
}
