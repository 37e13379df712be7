package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ingestor"

// Métricas do pipeline de ingestão
var (
	// FilesProcessed arquivos processados por status: "success", "failed"
	FilesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_processed_total",
			Help:      "Total de arquivos de export processados",
		},
		[]string{"status"},
	)

	// Records linhas persistidas por tipo de tabela e resultado
	Records = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_total",
			Help:      "Total de registros gravados por tipo e resultado",
		},
		[]string{"kind", "outcome"},
	)

	// RowsSkipped linhas, tabelas ou membros de arquivo descartados por motivo
	RowsSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_skipped_total",
			Help:      "Total de unidades descartadas por motivo",
		},
		[]string{"reason"},
	)

	FileDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "file_duration_seconds",
			Help:      "Duração do processamento de um arquivo",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12),
		},
	)

	// ScanRunning 1 enquanto uma varredura da pasta está em andamento
	ScanRunning = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "scan_running",
			Help:      "Indica se há uma varredura de pasta em andamento",
		},
	)
)
