package codebase

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/option"
	"github.com/viant/afs/url"
)

const sourceExt = ".java"

// LoadDir reads every .java file below location. The location is a local
// directory or any URL understood by afs.
func LoadDir(ctx context.Context, location string) (Files, error) {
	return LoadDirWith(ctx, afs.New(), location)
}

func LoadDirWith(ctx context.Context, fs afs.Service, location string) (Files, error) {
	objects, err := fs.List(ctx, location, option.NewRecursive(true))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", location, err)
	}
	root := url.Path(location)
	files := make(Files)
	for _, object := range objects {
		if object.IsDir() || !IsSourceFile(object.Name()) {
			continue
		}
		if hidden(strings.TrimPrefix(url.Path(object.URL()), root)) {
			continue
		}
		data, err := fs.Download(ctx, object)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", object.URL(), err)
		}
		files[FileKey(object.URL())] = data
	}
	log.Debugf("loaded %d files from %s", len(files), location)
	return files, nil
}

// LoadFile reads a single source file.
func LoadFile(ctx context.Context, fs afs.Service, location string) ([]byte, error) {
	data, err := fs.DownloadWithURL(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", location, err)
	}
	return data, nil
}

// FileKey names a loaded file: local files by their path, everything else
// by the full URL.
func FileKey(location string) string {
	if url.Scheme(location, file.Scheme) == file.Scheme {
		return url.Path(location)
	}
	return location
}

func IsSourceFile(name string) bool {
	return path.Ext(name) == sourceExt
}

// hidden reports whether a path relative to the listed location passes
// through a dot directory such as .git.
func hidden(p string) bool {
	for _, segment := range strings.Split(p, "/") {
		if len(segment) > 1 && strings.HasPrefix(segment, ".") {
			return true
		}
	}
	return false
}
