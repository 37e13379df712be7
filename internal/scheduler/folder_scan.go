package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"

	"github.com/vfg2006/social-analytics-ingestor/internal/config"
	"github.com/vfg2006/social-analytics-ingestor/internal/domain"
	"github.com/vfg2006/social-analytics-ingestor/internal/usecases/ingesting"
	"github.com/vfg2006/social-analytics-ingestor/pkg/metrics"
)

// ErrScanRunning indica que já existe uma varredura em andamento neste processo
var ErrScanRunning = errors.New("varredura já em andamento")

// FolderScanConfig representa a configuração do agendador de varredura da pasta de exports
type FolderScanConfig struct {
	CronSchedule string
	Enabled      bool
	DataDir      string
}

// FolderScanService agenda a varredura da pasta de exports e expõe o disparo manual
type FolderScanService struct {
	scheduler *gocron.Scheduler
	config    FolderScanConfig
	ingester  ingesting.Ingester
	running   *semaphore.Weighted

	// pendingCtx não nulo indica uma varredura pedida enquanto outra rodava
	pendingMutex sync.Mutex
	pendingCtx   context.Context

	statusMutex         sync.RWMutex
	lastScanStartedAt   time.Time
	lastScanCompletedAt time.Time
	lastSummary         *domain.ScanSummary
	lastError           string
}

func NewFolderScanService(ingester ingesting.Ingester, appConfig *config.Config) *FolderScanService {
	scanConfig := FolderScanConfig{
		CronSchedule: appConfig.FolderScan.CronSchedule,
		Enabled:      appConfig.FolderScan.Enabled,
		DataDir:      appConfig.Paths.DataDir,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": scanConfig.CronSchedule,
		"scan_enabled":  scanConfig.Enabled,
		"data_dir":      scanConfig.DataDir,
	}).Info("Configuração do agendador de varredura carregada")

	return &FolderScanService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    scanConfig,
		ingester:  ingester,
		running:   semaphore.NewWeighted(1),
	}
}

// Start agenda a varredura periódica; o agendador para quando ctx é cancelado
func (s *FolderScanService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Varredura agendada desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de varredura da pasta de exports")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if _, err := s.RunScan(ctx); err != nil && !errors.Is(err, ErrScanRunning) {
			logrus.WithError(err).Error("Erro na varredura agendada")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar varredura da pasta de exports: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de varredura")
		s.scheduler.Stop()
	}()

	return nil
}

// RunScan executa uma varredura completa. Retorna ErrScanRunning sem esperar se outra
// varredura estiver em andamento.
func (s *FolderScanService) RunScan(ctx context.Context) (*domain.ScanSummary, error) {
	if !s.running.TryAcquire(1) {
		logrus.Info("Varredura já em andamento, ignorando")
		return nil, ErrScanRunning
	}
	defer s.startPending()
	defer s.running.Release(1)

	return s.scan(ctx)
}

// TriggerManualSync inicia uma varredura em segundo plano. Retorna false se já houver uma em andamento.
// O run id presente em ctx é reaproveitado pela varredura.
func (s *FolderScanService) TriggerManualSync(ctx context.Context) bool {
	if !s.running.TryAcquire(1) {
		logrus.Info("Varredura já em andamento, ignorando solicitação manual")
		return false
	}

	logrus.Info("Iniciando varredura manual da pasta de exports")
	go s.scanAndRelease(ctx)

	return true
}

// QueueScan inicia uma varredura ou, se houver uma em andamento, deixa uma única varredura
// pendente que começa assim que a atual terminar. Pedidos repetidos se acumulam em um só.
func (s *FolderScanService) QueueScan(ctx context.Context) {
	s.pendingMutex.Lock()
	s.pendingCtx = ctx
	s.pendingMutex.Unlock()

	s.startPending()
}

// startPending inicia a varredura pendente quando o semáforo está livre. Quem segura o
// semáforo chama startPending depois de liberá-lo, então nenhum pedido se perde.
func (s *FolderScanService) startPending() {
	for {
		if !s.running.TryAcquire(1) {
			return
		}

		s.pendingMutex.Lock()
		ctx := s.pendingCtx
		s.pendingCtx = nil
		s.pendingMutex.Unlock()

		if ctx != nil {
			logrus.Info("Iniciando varredura pendente da pasta de exports")
			go s.scanAndRelease(ctx)
			return
		}

		s.running.Release(1)
		if !s.hasPending() {
			return
		}
	}
}

func (s *FolderScanService) hasPending() bool {
	s.pendingMutex.Lock()
	defer s.pendingMutex.Unlock()
	return s.pendingCtx != nil
}

// scanAndRelease roda a varredura com o semáforo já adquirido
func (s *FolderScanService) scanAndRelease(ctx context.Context) {
	defer s.startPending()
	defer s.running.Release(1)

	if _, err := s.scan(ctx); err != nil {
		logrus.WithError(err).Error("Erro na varredura em segundo plano")
	}
}

func (s *FolderScanService) scan(ctx context.Context) (*domain.ScanSummary, error) {
	metrics.ScanRunning.Set(1)
	defer metrics.ScanRunning.Set(0)

	s.statusMutex.Lock()
	s.lastScanStartedAt = time.Now()
	s.statusMutex.Unlock()

	summary, err := s.ingester.ScanFolder(ctx)

	s.statusMutex.Lock()
	defer s.statusMutex.Unlock()

	s.lastScanCompletedAt = time.Now()
	if err != nil {
		s.lastError = err.Error()
		return nil, err
	}

	s.lastError = ""
	s.lastSummary = summary
	return summary, nil
}

// GetStatus retorna o status atual do agendador
func (s *FolderScanService) GetStatus() map[string]any {
	s.statusMutex.RLock()
	defer s.statusMutex.RUnlock()

	running := !s.running.TryAcquire(1)
	if !running {
		s.running.Release(1)
	}

	return map[string]any{
		"scan_enabled":           s.config.Enabled,
		"scan_cron":              s.config.CronSchedule,
		"data_dir":               s.config.DataDir,
		"scan_running":           running,
		"scan_pending":           s.hasPending(),
		"last_scan_started_at":   s.lastScanStartedAt,
		"last_scan_completed_at": s.lastScanCompletedAt,
		"last_scan_error":        s.lastError,
		"last_scan":              s.lastSummary,
	}
}
