package extractor

import (
	"archive/zip"
	"bytes"
	"io"
	"path"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/social-analytics-ingestor/internal/domain"
)

func (e *extractor) extractArchive(export *domain.ExportFile, name string, data []byte, depth int) (err error) {
	defer recoverCorrupt(&err)

	if depth >= e.maxDepth {
		return errors.Wrapf(domain.ErrUnsupportedFormat, "%s excede a profundidade máxima de arquivos compactados", name)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return errors.Wrapf(domain.ErrCorruptFile, "erro ao abrir zip %s: %v", name, err)
	}

	before := len(export.Tables)

	for _, member := range zr.File {
		if skipMember(member) {
			continue
		}

		memberName := member.Name
		if depth > 0 {
			memberName = name + "/" + member.Name
		}

		if err := e.extractMember(export, member, memberName, depth); err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"file":   export.Path,
				"member": memberName,
				"reason": domain.ReasonFor(err),
			}).Warn("Arquivo dentro do zip ignorado")

			export.Skipped = append(export.Skipped, domain.SkippedSource{
				Source: memberName,
				Reason: domain.ReasonFor(err),
			})
		}
	}

	if len(export.Tables) == before {
		return errors.Wrapf(domain.ErrEmptyExport, "zip %s sem arquivos com dados", name)
	}

	return nil
}

func (e *extractor) extractMember(export *domain.ExportFile, member *zip.File, memberName string, depth int) error {
	rc, err := member.Open()
	if err != nil {
		return errors.Wrapf(domain.ErrCorruptFile, "erro ao abrir %s: %v", memberName, err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return errors.Wrapf(domain.ErrCorruptFile, "erro ao descompactar %s: %v", memberName, err)
	}

	kind, err := DetectKind(member.Name, content)
	if err != nil {
		return err
	}

	return e.extractInto(export, memberName, content, kind, depth+1)
}

// skipMember ignora diretórios, metadados do macOS e arquivos ocultos ou temporários do Office
func skipMember(member *zip.File) bool {
	if member.FileInfo().IsDir() {
		return true
	}

	if strings.HasPrefix(member.Name, "__MACOSX/") {
		return true
	}

	base := path.Base(member.Name)
	return strings.HasPrefix(base, ".") || strings.HasPrefix(base, "~$")
}
