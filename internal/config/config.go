package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/at-ishikawa/spivocab/internal/validation"
)

const (
	StorageBackendFile   = "file"
	StorageBackendSQLite = "sqlite"
	StorageBackendMySQL  = "mysql"
)

type Config struct {
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Server    ServerConfig    `mapstructure:"server"`
	Templates TemplatesConfig `mapstructure:"templates"`
	Outputs   OutputsConfig   `mapstructure:"outputs"`
	PDF       PDFConfig       `mapstructure:"pdf"`
}

// CatalogConfig points at the word catalog. URL takes precedence over Path when both are set.
type CatalogConfig struct {
	Path           string `mapstructure:"path" validate:"required_without=URL"`
	URL            string `mapstructure:"url" validate:"omitempty,url"`
	CacheDirectory string `mapstructure:"cache_directory"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"gte=0"`
	RetryAttempts  uint   `mapstructure:"retry_attempts"`
}

type StorageConfig struct {
	Backend  string `mapstructure:"backend" validate:"oneof=file sqlite mysql"`
	FilePath string `mapstructure:"file_path" validate:"required_if=Backend file"`
	SlotKey  string `mapstructure:"slot_key" validate:"required"`
}

type DatabaseConfig struct {
	Driver          string            `mapstructure:"driver" validate:"omitempty,oneof=mysql sqlite3"`
	Path            string            `mapstructure:"path"`
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
}

// ForBackend returns a copy of the config with the driver matching a storage backend.
func (cfg DatabaseConfig) ForBackend(backend string) DatabaseConfig {
	switch backend {
	case StorageBackendSQLite:
		cfg.Driver = "sqlite3"
	case StorageBackendMySQL:
		cfg.Driver = "mysql"
	}
	return cfg
}

type ServerConfig struct {
	Port int        `mapstructure:"port" validate:"gte=0,lte=65535"`
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type TemplatesConfig struct {
	WordSheetTemplate string `mapstructure:"word_sheet_template" validate:"omitempty,file"`
}

// PDFConfig sets the TrueType font the PDF export draws with. It must carry
// Japanese glyphs, for example IPAexGothic.
type PDFConfig struct {
	FontPath string `mapstructure:"font_path" validate:"omitempty,file"`
}

type OutputsConfig struct {
	WordSheetDirectory string `mapstructure:"word_sheet_directory"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

type LoaderOption func(*loaderOptions)

type loaderOptions struct {
	fs afero.Fs
}

// WithFs reads the config file and checks file paths on fs instead of the OS filesystem.
func WithFs(fs afero.Fs) LoaderOption {
	return func(o *loaderOptions) {
		o.fs = fs
	}
}

func NewConfigLoader(configFile string, opts ...LoaderOption) (*ConfigLoader, error) {
	o := loaderOptions{fs: afero.NewOsFs()}
	for _, opt := range opts {
		opt(&o)
	}

	validate, trans, err := validation.New("mapstructure", validation.WithFileRule(o.fs))
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetFs(o.fs)
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/spivocab")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("catalog.path", "words.json")
	v.SetDefault("catalog.cache_directory", filepath.Join(xdg.CacheHome, "spivocab"))
	v.SetDefault("catalog.timeout_seconds", 10)
	v.SetDefault("catalog.retry_attempts", 3)
	v.SetDefault("storage.backend", StorageBackendFile)
	v.SetDefault("storage.file_path", filepath.Join(xdg.DataHome, "spivocab", "attempts.json"))
	v.SetDefault("storage.slot_key", "spi_vocab_attempts")
	v.SetDefault("database.path", filepath.Join(xdg.DataHome, "spivocab", "spivocab.db"))
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "spivocab")
	v.SetDefault("database.username", "user")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors.allowed_origins", []string{"http://localhost:3000"})
	// Template is optional - if not specified, the embedded template is used
	v.SetDefault("templates.word_sheet_template", "")
	v.SetDefault("outputs.word_sheet_directory", filepath.Join("outputs", "words"))
	v.SetDefault("pdf.font_path", "")

	// Bind database password to environment variable
	if err := v.BindEnv("database.password", "SPIVOCAB_DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind SPIVOCAB_DB_PASSWORD environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
