package filesystem

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

const timestampLayout = "20060102_150405"

// SupportedExtensions extensões aceitas na pasta de dados
var SupportedExtensions = []string{".csv", ".xls", ".xlsx", ".zip"}

// HasSupportedExtension verifica a extensão sem diferenciar maiúsculas
func HasSupportedExtension(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, supported := range SupportedExtensions {
		if ext == supported {
			return true
		}
	}
	return false
}

// ListExports devolve, em ordem alfabética, os arquivos suportados no primeiro nível de dir
func ListExports(fs afero.Fs, dir string) ([]string, error) {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao listar %s", dir)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !HasSupportedExtension(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}

	sort.Strings(files)
	return files, nil
}

// moveWithTimestamp move src para dstDir/<timestamp>_<nome>, copiando quando o rename falha
func moveWithTimestamp(fs afero.Fs, src, dstDir string, now time.Time) (string, error) {
	if err := fs.MkdirAll(dstDir, 0o755); err != nil {
		return "", errors.Wrapf(err, "erro ao criar %s", dstDir)
	}

	dest := filepath.Join(dstDir, fmt.Sprintf("%s_%s", now.UTC().Format(timestampLayout), filepath.Base(src)))
	dest = uniquePath(fs, dest)

	if err := fs.Rename(src, dest); err == nil {
		return dest, nil
	}

	data, err := afero.ReadFile(fs, src)
	if err != nil {
		return "", errors.Wrapf(err, "erro ao ler %s", src)
	}
	if err := afero.WriteFile(fs, dest, data, 0o644); err != nil {
		return "", errors.Wrapf(err, "erro ao copiar para %s", dest)
	}
	if err := fs.Remove(src); err != nil {
		return "", errors.Wrapf(err, "erro ao remover %s", src)
	}

	return dest, nil
}

func uniquePath(fs afero.Fs, path string) string {
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)

	candidate := path
	for i := 2; ; i++ {
		if exists, _ := afero.Exists(fs, candidate); !exists {
			return candidate
		}
		candidate = fmt.Sprintf("%s_%d%s", stem, i, ext)
	}
}
