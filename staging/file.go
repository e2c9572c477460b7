package staging

import (
	"bytes"
	"io"
	"io/ioutil"
	"mime"
	"net/http"
	"os"
	"path/filepath"
)

type (
	// File is a locally selected file not yet uploaded to the backend.
	File interface {
		Name() string
		ContentType() string
		Size() int64
		Open() (io.ReadCloser, error)
	}

	localFile struct {
		path        string
		contentType string
		size        int64
	}

	memFile struct {
		name        string
		contentType string
		data        []byte
	}
)

// NewLocalFile wraps a file on disk. The content type is taken from the
// extension, falling back to sniffing the first 512 bytes.
func NewLocalFile(path string) (File, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	ctype := mime.TypeByExtension(filepath.Ext(path))
	if ctype == "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		//goland:noinspection GoUnhandledErrorResult
		defer f.Close()
		head := make([]byte, 512)
		n, _ := f.Read(head)
		ctype = http.DetectContentType(head[:n])
	}

	return &localFile{path: path, contentType: ctype, size: fi.Size()}, nil
}

func (f *localFile) Name() string               { return filepath.Base(f.path) }
func (f *localFile) ContentType() string        { return f.contentType }
func (f *localFile) Size() int64                { return f.size }
func (f *localFile) Open() (io.ReadCloser, error) { return os.Open(f.path) }

// NewMemFile wraps an in-memory buffer as a File.
func NewMemFile(name, contentType string, data []byte) File {
	return &memFile{name: name, contentType: contentType, data: data}
}

func (f *memFile) Name() string        { return f.name }
func (f *memFile) ContentType() string { return f.contentType }
func (f *memFile) Size() int64         { return int64(len(f.data)) }
func (f *memFile) Open() (io.ReadCloser, error) {
	return ioutil.NopCloser(bytes.NewReader(f.data)), nil
}
