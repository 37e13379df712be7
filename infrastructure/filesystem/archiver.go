package filesystem

import (
	"path/filepath"
	"time"

	"github.com/spf13/afero"
)

//go:generate mockgen -source=archiver.go -destination=mocks/archiver_mock.go -package=mocks

// Archiver tira da pasta de dados os arquivos já ingeridos
type Archiver interface {
	Archive(path string) (string, error)
}

type archiver struct {
	fs  afero.Fs
	dir string
	now func() time.Time
}

// NewArchiver arquiva em <dataDir>/processed
func NewArchiver(fs afero.Fs, dataDir string, now func() time.Time) Archiver {
	if now == nil {
		now = time.Now
	}

	return &archiver{
		fs:  fs,
		dir: filepath.Join(dataDir, "processed"),
		now: now,
	}
}

func (a *archiver) Archive(path string) (string, error) {
	return moveWithTimestamp(a.fs, path, a.dir, a.now())
}
