// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App       AppConfig               `mapstructure:"app"`
	Server    ServerConfig            `mapstructure:"server"`
	Camunda   CamundaConfig           `mapstructure:"camunda"`
	Database  DatabaseConfig          `mapstructure:"database"`
	Providers ProvidersConfig         `mapstructure:"providers"`
	Session   SessionConfig           `mapstructure:"session"`
	Lexicon   LexiconConfig           `mapstructure:"lexicon"`
	Pipeline  PipelineConfig          `mapstructure:"pipeline"`
	Workers   map[string]WorkerConfig `mapstructure:"workers"`
	Logging   LoggingConfig           `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Port            int `mapstructure:"port"`
	ReadTimeout     int `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int `mapstructure:"write_timeout"`    // milliseconds
	ShutdownTimeout int `mapstructure:"shutdown_timeout"` // milliseconds
}

type CamundaConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	BrokerAddress  string `mapstructure:"broker_address"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
	// ConnMaxLifetime is in milliseconds.
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
	ApplicationName string `mapstructure:"application_name"`
}

// Enabled reports whether a Postgres host is configured.
func (p PostgresConfig) Enabled() bool {
	return p.Host != ""
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
	if p.ApplicationName != "" {
		dsn += " application_name=" + p.ApplicationName
	}
	return dsn
}

type ElasticsearchConfig struct {
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
	URL       string   `mapstructure:"url"`
	Index     string   `mapstructure:"index"`
}

// GetURL returns the first address or the URL field
func (e ElasticsearchConfig) GetURL() string {
	if e.URL != "" {
		return e.URL
	}
	if len(e.Addresses) > 0 {
		return e.Addresses[0]
	}
	return ""
}

func (e ElasticsearchConfig) Enabled() bool {
	return e.GetURL() != ""
}

type RedisConfig struct {
	Address      string `mapstructure:"address"`
	Password     string `mapstructure:"password"`
	DB           int    `mapstructure:"db"`
	PoolSize     int    `mapstructure:"pool_size"`
	MinIdleConns int    `mapstructure:"min_idle_conns"`
	ClientName   string `mapstructure:"client_name"`
}

func (r RedisConfig) Enabled() bool {
	return r.Address != ""
}

// ProviderConfig is the access policy for one external data provider.
type ProviderConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	BaseURL     string `mapstructure:"base_url"`
	APIKey      string `mapstructure:"api_key"`
	ResourceID  string `mapstructure:"resource_id"`
	UserAgent   string `mapstructure:"user_agent"`
	MinInterval int    `mapstructure:"min_interval"` // milliseconds between dispatches
	MaxWait     int    `mapstructure:"max_wait"`     // milliseconds a caller may queue
	Timeout     int    `mapstructure:"timeout"`      // milliseconds per call
	CacheTTL    int    `mapstructure:"cache_ttl"`    // milliseconds
	MaxRetries  int    `mapstructure:"max_retries"`
}

type ProvidersConfig struct {
	MarketPrice ProviderConfig `mapstructure:"market_price"`
	Weather     ProviderConfig `mapstructure:"weather"`
	Geocoding   ProviderConfig `mapstructure:"geocoding"`
	Schemes     ProviderConfig `mapstructure:"schemes"`
	Crops       ProviderConfig `mapstructure:"crops"`
}

// All returns the provider policies keyed by provider name.
func (p ProvidersConfig) All() map[string]ProviderConfig {
	return map[string]ProviderConfig{
		"market_price": p.MarketPrice,
		"weather":      p.Weather,
		"geocoding":    p.Geocoding,
		"schemes":      p.Schemes,
		"crops":        p.Crops,
	}
}

type SessionConfig struct {
	InactivityWindow int    `mapstructure:"inactivity_window"` // milliseconds
	KeyPrefix        string `mapstructure:"key_prefix"`
}

type LexiconConfig struct {
	RegistryPath string `mapstructure:"registry_path"`
	// SnapRadiusKm bounds how far caller coordinates may be from a gazetteer city.
	SnapRadiusKm float64 `mapstructure:"snap_radius_km"`
}

type PipelineConfig struct {
	MaxParallelFetches int `mapstructure:"max_parallel_fetches"`
	TurnTimeout        int `mapstructure:"turn_timeout"` // milliseconds
}

// WorkerConfig holds the core settings applicable to every worker.
type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"`     // milliseconds
	MaxRetries    int  `mapstructure:"max_retries"` // For error handling
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
