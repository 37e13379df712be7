package ingesting

import (
	"context"
	"path/filepath"

	"github.com/vfg2006/social-analytics-ingestor/infrastructure/filesystem"
	"github.com/vfg2006/social-analytics-ingestor/internal/domain"
	"github.com/vfg2006/social-analytics-ingestor/internal/usecases/normalizing"
	"github.com/vfg2006/social-analytics-ingestor/pkg/log"
)

// ScanFolder processa um arquivo por vez. Arquivos com falha ficam na pasta para nova tentativa.
func (s *Service) ScanFolder(ctx context.Context) (*domain.ScanSummary, error) {
	ctx, runID := log.EnsureCorrelationID(ctx)
	logger := log.ForContext(ctx)

	started := s.now()
	summary := &domain.ScanSummary{
		RunID:     runID,
		StartedAt: started,
		Processed: []string{},
		Archived:  []string{},
		Failed:    []domain.FileFail{},
	}

	files, err := filesystem.ListExports(s.fs, s.opts.DataDir)
	if err != nil {
		return nil, err
	}

	logger.Infof("Varredura iniciada com %d arquivo(s)", len(files))

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			logger.Warn("Varredura interrompida antes do próximo arquivo")
			break
		}

		name := filepath.Base(file)
		summary.Processed = append(summary.Processed, name)

		if _, err := s.IngestFile(ctx, file); err != nil {
			summary.Failed = append(summary.Failed, domain.FileFail{
				File:   name,
				Reason: domain.ReasonFor(err),
				Error:  err.Error(),
			})
			continue
		}

		dest, err := s.archiver.Archive(file)
		if err != nil {
			logger.WithError(err).WithField("file", name).Warn("Erro ao arquivar export processado")
			continue
		}
		summary.Archived = append(summary.Archived, dest)
	}

	summary.Duration = s.now().Sub(started).String()

	logger.WithFields(log.Fields{
		"processed": len(summary.Processed),
		"archived":  len(summary.Archived),
		"failed":    len(summary.Failed),
	}).Info("Varredura finalizada")

	return summary, nil
}

// Reclassify corrige post_type de registros gravados antes da classificação por formato
func (s *Service) Reclassify(ctx context.Context) (int, error) {
	posts, err := s.postRepo.ListByCompany(ctx, s.opts.CompanyID)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, post := range posts {
		newType, changed := normalizing.Reclassify(post)
		if !changed {
			continue
		}

		if err := s.postRepo.UpdatePostType(ctx, post.CompanyID, post.PostID, newType); err != nil {
			return updated, err
		}

		log.ForContext(ctx).WithFields(log.Fields{
			"post_id": post.PostID,
			"from":    post.PostType,
			"to":      newType,
		}).Info("Tipo do post reclassificado")
		updated++
	}

	return updated, nil
}
