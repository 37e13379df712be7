package scheduler

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/social-analytics-ingestor/infrastructure/filesystem"
)

// ScanTrigger é quem recebe o aviso de que novos exports chegaram à pasta de dados
type ScanTrigger interface {
	QueueScan(ctx context.Context)
}

// DownloadWatcher observa a pasta de downloads e move exports finalizados para a pasta de dados
type DownloadWatcher struct {
	collector *filesystem.Collector
	trigger   ScanTrigger
	enabled   bool

	inFlight sync.Map
	wg       sync.WaitGroup
}

func NewDownloadWatcher(collector *filesystem.Collector, trigger ScanTrigger, enabled bool) *DownloadWatcher {
	return &DownloadWatcher{
		collector: collector,
		trigger:   trigger,
		enabled:   enabled,
	}
}

// Start recolhe o que já está na pasta e passa a observar novos arquivos até ctx ser cancelado
func (w *DownloadWatcher) Start(ctx context.Context) error {
	sourceDir := w.collector.SourceDir()
	if !w.enabled || sourceDir == "" {
		logrus.Info("Coletor de downloads desabilitado por configuração")
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("erro ao criar observador de arquivos: %w", err)
	}

	if err := watcher.Add(sourceDir); err != nil {
		watcher.Close()
		return fmt.Errorf("erro ao observar %s: %w", sourceDir, err)
	}

	logrus.WithField("dir", sourceDir).Info("Observando pasta de downloads")

	moved, err := w.collector.Sweep(ctx)
	if err != nil {
		logrus.WithError(err).Warn("Erro ao recolher exports existentes")
	}
	if len(moved) > 0 {
		w.trigger.QueueScan(ctx)
	}

	go w.loop(ctx, watcher)

	return nil
}

// Wait bloqueia até as coletas em andamento terminarem
func (w *DownloadWatcher) Wait() {
	w.wg.Wait()
}

func (w *DownloadWatcher) loop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer watcher.Close()

	for {
		select {
		case <-ctx.Done():
			logrus.Info("Parando observador da pasta de downloads")
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
				continue
			}
			if !filesystem.IsCandidate(event.Name) {
				continue
			}
			w.handle(ctx, event.Name)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logrus.WithError(err).Warn("Erro no observador da pasta de downloads")
		}
	}
}

// handle ignora eventos de um arquivo que já está sendo coletado
func (w *DownloadWatcher) handle(ctx context.Context, path string) {
	if _, loaded := w.inFlight.LoadOrStore(path, struct{}{}); loaded {
		return
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer w.inFlight.Delete(path)

		for {
			dest, err := w.collector.Collect(ctx, path)
			if errors.Is(err, filesystem.ErrUnstableFile) {
				continue
			}
			if err != nil {
				if ctx.Err() == nil {
					logrus.WithError(err).WithField("file", filepath.Base(path)).Warn("Erro ao coletar export")
				}
				return
			}
			if dest != "" {
				w.trigger.QueueScan(ctx)
			}
			return
		}
	}()
}
