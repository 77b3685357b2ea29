package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Valores de exemplo; a aplicação não sobe enquanto continuarem configurados
const (
	DefaultSecretKey  = "your_secret_key"
	DefaultAuthSecret = "your_jwt_secret"
)

type Config struct {
	App              App              `mapstructure:",squash"`
	Server           Server           `mapstructure:",squash"`
	Database         Database         `mapstructure:",squash"`
	Meta             Meta             `mapstructure:",squash"`
	Auth             Auth             `mapstructure:",squash"`
	Cors             Cors             `mapstructure:",squash"`
	AccountCacheSync AccountCacheSync `mapstructure:",squash"`
	SecretKey        string           `mapstructure:"secret_key"`
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

	MaxOpenConns    int           `mapstructure:"database_max_open_conns"`
	ConnMaxIdleTime time.Duration `mapstructure:"database_conn_max_idle_time"`
}

type Meta struct {
	BaseURL                string        `mapstructure:"meta_base_url"`
	DialogURL              string        `mapstructure:"meta_dialog_url"`
	URL                    string        `mapstructure:"meta_url"`
	Version                string        `mapstructure:"meta_version"`
	AppID                  string        `mapstructure:"meta_app_id"`
	AppSecret              string        `mapstructure:"meta_app_secret"`
	RedirectURI            string        `mapstructure:"meta_redirect_uri"`
	Scopes                 []string      `mapstructure:"meta_scopes"`
	ExchangeLongLivedToken bool          `mapstructure:"meta_exchange_long_lived_token"`
	InsightsPageLimit      int           `mapstructure:"meta_insights_page_limit"`
	MaxPages               int           `mapstructure:"meta_insights_max_pages"`
	InsightsTimeout        time.Duration `mapstructure:"meta_insights_timeout"`
	RequestTimeout         time.Duration `mapstructure:"meta_request_timeout"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

type Cors struct {
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type AccountCacheSync struct {
	CronSchedule        string `mapstructure:"account_cache_sync_cron"`
	RequestDelaySeconds int    `mapstructure:"account_cache_sync_request_delay_seconds"`
	Enabled             bool   `mapstructure:"account_cache_sync_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/ads_insights?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 10)
	viper.SetDefault("DATABASE_CONN_MAX_IDLE_TIME", "5m")

	viper.SetDefault("META_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("META_DIALOG_URL", "https://www.facebook.com")
	viper.SetDefault("META_VERSION", "v18.0")
	viper.SetDefault("META_APP_ID", "your_app_id")
	viper.SetDefault("META_APP_SECRET", "your_app_secret")
	viper.SetDefault("META_REDIRECT_URI", "http://localhost:3000/meta/callback")
	viper.SetDefault("META_SCOPES", "ads_read,ads_management")
	viper.SetDefault("META_EXCHANGE_LONG_LIVED_TOKEN", true)
	viper.SetDefault("META_INSIGHTS_PAGE_LIMIT", 1000)
	viper.SetDefault("META_INSIGHTS_MAX_PAGES", 500) // Limite de segurança contra cursores infinitos
	viper.SetDefault("META_INSIGHTS_TIMEOUT", "60s") // Tempo máximo para buscar todas as páginas
	viper.SetDefault("META_REQUEST_TIMEOUT", "30s")  // Timeout de cada requisição individual

	viper.SetDefault("SECRET_KEY", DefaultSecretKey)
	viper.SetDefault("AUTH_SECRET", DefaultAuthSecret)

	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")

	viper.SetDefault("ACCOUNT_CACHE_SYNC_CRON", "0 */6 * * *")      // A cada 6 horas
	viper.SetDefault("ACCOUNT_CACHE_SYNC_REQUEST_DELAY_SECONDS", 1) // 1 segundo entre conexões
	viper.SetDefault("ACCOUNT_CACHE_SYNC_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

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

	config.Meta.URL = fmt.Sprintf("%s/%s", config.Meta.BaseURL, config.Meta.Version)

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Validate rejeita segredos vazios ou ainda com o valor de exemplo
func (c *Config) Validate() error {
	secrets := []struct {
		env         string
		value       string
		placeholder string
	}{
		{env: "SECRET_KEY", value: c.SecretKey, placeholder: DefaultSecretKey},
		{env: "AUTH_SECRET", value: c.Auth.Secret, placeholder: DefaultAuthSecret},
	}

	for _, secret := range secrets {
		if secret.value == "" || secret.value == secret.placeholder {
			return fmt.Errorf("%s não configurado: defina um valor próprio no ambiente", secret.env)
		}
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
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
