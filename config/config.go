package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

var (
	config *Config
	path   string
	mu     sync.RWMutex
)

// Config represents the configuration implementation.
type Config struct {
	AppName  string
	RunMode  string
	Server   *Server
	Data     *Data
	Auth     *Auth
	Logger   *Logger
	Observes *Observes
	CORS     *CORS
	Viper    *viper.Viper
}

// Init loads the configuration from configPath (or the default search paths
// when empty) and makes it the current configuration.
func Init(configPath string) (*Config, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	mu.Lock()
	config, path = cfg, configPath
	mu.Unlock()
	return cfg, nil
}

// GetConfig returns the current configuration.
func GetConfig() (*Config, error) {
	mu.RLock()
	defer mu.RUnlock()
	if config == nil {
		return nil, errors.New("config not initialized")
	}
	return config, nil
}

// LoadConfig loads the configuration from the file.
// A missing default config file is not an error; environment variables and
// defaults still apply.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindLegacyEnv(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.taskapi")
		v.AddConfigPath("/etc/taskapi")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		AppName:  getStringOrDefault(v, "app_name", "taskapi"),
		RunMode:  getStringOrDefault(v, "run_mode", "release"),
		Server:   getServerConfig(v),
		Data:     getDataConfig(v),
		Auth:     getAuth(v),
		Logger:   getLoggerConfig(v),
		Observes: getObservesConfig(v),
		CORS:     getCORSConfig(v),
		Viper:    v,
	}

	return cfg, nil
}

// bindLegacyEnv maps the plain environment variables used by older
// deployments onto their config keys.
func bindLegacyEnv(v *viper.Viper) {
	legacy := map[string]string{
		"server.port":                   "PORT",
		"data.database.master.host":     "DB_HOST",
		"data.database.master.port":     "DB_PORT",
		"data.database.master.user":     "DB_USER",
		"data.database.master.password": "DB_PASSWORD",
		"data.database.master.name":     "DB_NAME",
	}
	for key, env := range legacy {
		if _, ok := os.LookupEnv(env); ok {
			// structured name first so it wins over the legacy one
			_ = v.BindEnv(key, strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env)
		}
	}
}

// IsDebug reports whether the service runs in debug mode.
func (c *Config) IsDebug() bool {
	return c.RunMode == "debug"
}

// Reload reloads the configuration from the file.
func Reload() error {
	newConfig, err := LoadConfig(path)
	if err != nil {
		return fmt.Errorf("failed to reload config: %w", err)
	}

	mu.Lock()
	config = newConfig
	mu.Unlock()
	return nil
}

// Watch watches the configuration file and reloads it when it changes.
func Watch(cfg *Config, callback func(*Config)) {
	if cfg.Viper.ConfigFileUsed() == "" {
		return
	}
	cfg.Viper.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		if err := Reload(); err != nil {
			fmt.Fprintf(os.Stderr, "Error reloading config: %v\n", err)
			return
		}
		c, _ := GetConfig()
		callback(c)
	})
	cfg.Viper.WatchConfig()
}
