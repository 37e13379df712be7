package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

var (
	tempSuffixes = []string{".crdownload", ".part", ".tmp"}

	exportNamePatterns = []string{
		"linkedin", "page", "analytics", "export", "content", "updates", "posts", "followers", "demographics",
	}

	ErrUnstableFile = errors.New("arquivo ainda em escrita")

	errFileGone = errors.New("arquivo removido antes da coleta")
)

// Collector move exports finalizados da pasta de downloads para a pasta de dados
type Collector struct {
	fs        afero.Fs
	sourceDir string
	targetDir string
	stableFor time.Duration
	now       func() time.Time
	sleep     func(ctx context.Context, d time.Duration) error
}

func NewCollector(fs afero.Fs, sourceDir, targetDir string, stableFor time.Duration) *Collector {
	return &Collector{
		fs:        fs,
		sourceDir: sourceDir,
		targetDir: targetDir,
		stableFor: stableFor,
		now:       time.Now,
		sleep:     sleepContext,
	}
}

// SourceDir pasta monitorada
func (c *Collector) SourceDir() string {
	return c.sourceDir
}

// IsCandidate aceita apenas nomes com extensão suportada, sem sufixo temporário
// e que pareçam um export do LinkedIn
func IsCandidate(name string) bool {
	n := strings.ToLower(filepath.Base(name))

	for _, suffix := range tempSuffixes {
		if strings.HasSuffix(n, suffix) {
			return false
		}
	}

	if !HasSupportedExtension(n) {
		return false
	}

	for _, pattern := range exportNamePatterns {
		if strings.Contains(n, pattern) {
			return true
		}
	}

	return false
}

// Collect espera o tamanho estabilizar e move o arquivo. Devolve ErrUnstableFile se
// o arquivo ainda estiver crescendo. Arquivo que sumiu não é erro: devolve "".
func (c *Collector) Collect(ctx context.Context, path string) (string, error) {
	if !IsCandidate(path) {
		return "", nil
	}

	stable, err := c.isStable(ctx, path)
	if errors.Is(err, errFileGone) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if !stable {
		return "", ErrUnstableFile
	}

	dest, err := moveWithTimestamp(c.fs, path, c.targetDir, c.now())
	if err != nil {
		return "", err
	}

	logrus.WithFields(logrus.Fields{
		"file": filepath.Base(path),
		"dest": dest,
	}).Info("Export movido para a pasta de dados")

	return dest, nil
}

// Sweep coleta todos os candidatos já presentes na pasta de downloads
func (c *Collector) Sweep(ctx context.Context) ([]string, error) {
	entries, err := afero.ReadDir(c.fs, c.sourceDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "erro ao listar %s", c.sourceDir)
	}

	var moved []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		dest, err := c.Collect(ctx, filepath.Join(c.sourceDir, entry.Name()))
		if err != nil {
			if ctx.Err() != nil {
				return moved, ctx.Err()
			}
			logrus.WithError(err).WithField("file", entry.Name()).Warn("Export ignorado pelo coletor")
			continue
		}
		if dest != "" {
			moved = append(moved, dest)
		}
	}

	return moved, nil
}

func (c *Collector) isStable(ctx context.Context, path string) (bool, error) {
	before, err := c.fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, errFileGone
		}
		return false, errors.Wrapf(err, "erro ao ler %s", path)
	}

	if err := c.sleep(ctx, c.stableFor); err != nil {
		return false, err
	}

	after, err := c.fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, errFileGone
		}
		return false, errors.Wrapf(err, "erro ao ler %s", path)
	}

	return before.Size() == after.Size(), nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
