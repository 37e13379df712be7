package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/vfg2006/social-analytics-ingestor/internal/domain"
)

type Config struct {
	App        App        `mapstructure:",squash"`
	Server     Server     `mapstructure:",squash"`
	Database   Database   `mapstructure:",squash"`
	Company    Company    `mapstructure:",squash"`
	Paths      Paths      `mapstructure:",squash"`
	Ingestion  Ingestion  `mapstructure:",squash"`
	FolderScan FolderScan `mapstructure:",squash"`
	Watcher    Watcher    `mapstructure:",squash"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Company struct {
	ID   string `mapstructure:"company_id"`
	Name string `mapstructure:"company_name"`
}

type Paths struct {
	DataDir        string `mapstructure:"linkedin_data_path"`
	ReportsDir     string `mapstructure:"validation_reports_path"`
	DownloadSource string `mapstructure:"download_source_dir"`
}

// Ingestion agrupa as opções que mudam a semântica da ingestão
type Ingestion struct {
	DayFirst       bool               `mapstructure:"linkedin_date_dmy"`
	OffsetHours    int                `mapstructure:"timezone_offset_hours"`
	PolicyName     string             `mapstructure:"post_update_policy"`
	HistoryEnabled bool               `mapstructure:"post_history_enabled"`
	Policy         domain.MergePolicy `mapstructure:"-"`
}

type FolderScan struct {
	CronSchedule string `mapstructure:"folder_scan_cron"`
	Enabled      bool   `mapstructure:"folder_scan_enabled"`
}

type Watcher struct {
	Enabled       bool `mapstructure:"download_watcher_enabled"`
	StableSeconds int  `mapstructure:"download_stable_seconds"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/social_analytics?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("COMPANY_ID", "wentors")
	viper.SetDefault("COMPANY_NAME", "Wentors")

	viper.SetDefault("LINKEDIN_DATA_PATH", "./linkedin_exports/")
	viper.SetDefault("VALIDATION_REPORTS_PATH", "./validation_reports/")
	viper.SetDefault("DOWNLOAD_SOURCE_DIR", "") // vazio desabilita o coletor

	viper.SetDefault("LINKEDIN_DATE_DMY", false)
	viper.SetDefault("TIMEZONE_OFFSET_HOURS", 0)
	viper.SetDefault("POST_UPDATE_POLICY", string(domain.MergePolicyMax))
	viper.SetDefault("POST_HISTORY_ENABLED", true)

	// Varredura da pasta de exports
	viper.SetDefault("FOLDER_SCAN_CRON", "*/30 * * * *") // A cada 30 minutos
	viper.SetDefault("FOLDER_SCAN_ENABLED", true)

	viper.SetDefault("DOWNLOAD_WATCHER_ENABLED", false)
	viper.SetDefault("DOWNLOAD_STABLE_SECONDS", 2)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile()

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if err := config.finish(); err != nil {
		return nil, err
	}

	return config, nil
}

// finish completa os campos derivados; política inválida impede a inicialização
func (c *Config) finish() error {
	policy, err := domain.ParseMergePolicy(c.Ingestion.PolicyName)
	if err != nil {
		return fmt.Errorf("POST_UPDATE_POLICY inválida: %w", err)
	}
	c.Ingestion.Policy = policy

	if err := c.Paths.resolve(); err != nil {
		return err
	}

	if c.Watcher.StableSeconds <= 0 {
		c.Watcher.StableSeconds = 2
	}

	c.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		c.Database.Driver,
		c.Database.User,
		c.Database.Password,
		c.Database.URL,
	)

	return nil
}

// resolve fixa os caminhos relativos no diretório de trabalho do processo; vazio continua vazio
func (p *Paths) resolve() error {
	for _, dir := range []*string{&p.DataDir, &p.ReportsDir, &p.DownloadSource} {
		if *dir == "" {
			continue
		}

		abs, err := filepath.Abs(*dir)
		if err != nil {
			return fmt.Errorf("caminho inválido %q: %w", *dir, err)
		}
		*dir = abs
	}

	return nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
