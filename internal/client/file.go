package client

import (
	"io"
	"os"
	"path/filepath"
)

// FileFromPath returns an upload source for path. The file is opened on
// the first read and closed once it is drained or a read fails, so open
// errors surface as file_unreadable from AnalyzeFile.
func FileFromPath(path string) *File {
	return &File{
		Name:   filepath.Base(path),
		Reader: &pathReader{path: path},
	}
}

type pathReader struct {
	path string
	f    *os.File
	done bool
}

func (r *pathReader) Read(p []byte) (int, error) {
	if r.done {
		return 0, io.EOF
	}
	if r.f == nil {
		f, err := os.Open(r.path)
		if err != nil {
			r.done = true
			return 0, err
		}
		r.f = f
	}

	n, err := r.f.Read(p)
	if err != nil {
		r.done = true
		if cerr := r.f.Close(); cerr != nil && err == io.EOF {
			err = cerr
		}
	}
	return n, err
}
