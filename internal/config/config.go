package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App                App                `mapstructure:",squash"`
	Server             Server             `mapstructure:",squash"`
	Storage            Storage            `mapstructure:",squash"`
	Database           Database           `mapstructure:",squash"`
	Redis              Redis              `mapstructure:",squash"`
	Cloudinary         Cloudinary         `mapstructure:",squash"`
	Sync               Sync               `mapstructure:",squash"`
	CatalogRefreshSync CatalogRefreshSync `mapstructure:",squash"`
}

type App struct {
	LogLevel      string `mapstructure:"log_level"`
	LogFile       string `mapstructure:"log_file"`
	LogMaxSizeMB  int    `mapstructure:"log_max_size_mb"`
	LogMaxBackups int    `mapstructure:"log_max_backups"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
	RateLimitRPS   float64  `mapstructure:"rate_limit_rps"` // 0 desativa
	RateLimitBurst int      `mapstructure:"rate_limit_burst"`
}

// Storage seleciona onde fica o slot local com a lista serializada de produtos
type Storage struct {
	Driver   string `mapstructure:"storage_driver"` // bolt, postgres, redis ou memory
	SlotKey  string `mapstructure:"storage_slot_key"`
	BoltPath string `mapstructure:"storage_bolt_path"`
}

type Database struct {
	DSN             string        `mapstructure:"-"`
	Driver          string        `mapstructure:"database_driver"`
	Password        string        `mapstructure:"database_password"`
	URL             string        `mapstructure:"database_url"`
	User            string        `mapstructure:"database_user"`
	MaxOpenConns    int           `mapstructure:"database_max_open_conns"`
	MaxIdleConns    int           `mapstructure:"database_max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"database_conn_max_lifetime"`
}

type Redis struct {
	Addr     string `mapstructure:"redis_addr"`
	Password string `mapstructure:"redis_password"`
	DB       int    `mapstructure:"redis_db"`
}

type Cloudinary struct {
	CloudName       string        `mapstructure:"cloudinary_cloud_name"`
	UploadPreset    string        `mapstructure:"cloudinary_upload_preset"`
	APIURL          string        `mapstructure:"cloudinary_api_url"`
	DeliveryURL     string        `mapstructure:"cloudinary_delivery_url"`
	CatalogPublicID string        `mapstructure:"cloudinary_catalog_public_id"`
	Timeout         time.Duration `mapstructure:"cloudinary_timeout"`
}

// Sync controla a propagação assíncrona do catálogo para o backend remoto
type Sync struct {
	Workers       int           `mapstructure:"sync_workers"`
	UploadTimeout time.Duration `mapstructure:"sync_upload_timeout"`
	FetchTimeout  time.Duration `mapstructure:"sync_fetch_timeout"`
}

type CatalogRefreshSync struct {
	CronSchedule string `mapstructure:"catalog_refresh_cron"`
	Enabled      bool   `mapstructure:"catalog_refresh_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("RATE_LIMIT_RPS", 5)
	viper.SetDefault("RATE_LIMIT_BURST", 10)

	viper.SetDefault("LOG_LEVEL", "debug")
	viper.SetDefault("LOG_FILE", "")
	viper.SetDefault("LOG_MAX_SIZE_MB", 10)
	viper.SetDefault("LOG_MAX_BACKUPS", 3)

	viper.SetDefault("STORAGE_DRIVER", "bolt")
	viper.SetDefault("STORAGE_SLOT_KEY", "products")
	viper.SetDefault("STORAGE_BOLT_PATH", "catalog.db")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/catalog?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 4)
	viper.SetDefault("DATABASE_MAX_IDLE_CONNS", 2)
	viper.SetDefault("DATABASE_CONN_MAX_LIFETIME", "30m")

	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)

	// Sem cloud name/preset o catálogo funciona só com o slot local
	viper.SetDefault("CLOUDINARY_CLOUD_NAME", "")
	viper.SetDefault("CLOUDINARY_UPLOAD_PRESET", "")
	viper.SetDefault("CLOUDINARY_API_URL", "https://api.cloudinary.com/v1_1")
	viper.SetDefault("CLOUDINARY_DELIVERY_URL", "https://res.cloudinary.com")
	viper.SetDefault("CLOUDINARY_CATALOG_PUBLIC_ID", "catalog-products.json")
	viper.SetDefault("CLOUDINARY_TIMEOUT", "30s")

	viper.SetDefault("SYNC_WORKERS", 1)
	viper.SetDefault("SYNC_UPLOAD_TIMEOUT", "30s")
	viper.SetDefault("SYNC_FETCH_TIMEOUT", "10s")

	viper.SetDefault("CATALOG_REFRESH_CRON", "*/15 * * * *") // A cada 15 minutos
	viper.SetDefault("CATALOG_REFRESH_ENABLED", false)
}

func NewConfig() (*Config, error) {
	loadEnvFile()

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis de ambiente (viper não conseguiu ler .env): ", err)
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

	config.Database.DSN = BuildDSN(config.Database)

	return config, nil
}

// BuildDSN monta a string de conexão do Postgres a partir das partes configuradas
func BuildDSN(db Database) string {
	return db.Driver + "://" + db.User + ":" + db.Password + "@" + db.URL
}

// IsConfigured indica se há credenciais suficientes para falar com o Cloudinary
func (c Cloudinary) IsConfigured() bool {
	if c.CloudName == "" || c.UploadPreset == "" {
		return false
	}
	return c.CloudName != "SEU_CLOUD_NAME" && c.UploadPreset != "SEU_UPLOAD_PRESET"
}

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
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado de: ", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, seguindo apenas com variáveis de ambiente")
}
