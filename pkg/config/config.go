package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración del BFF (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	JWT     JWTConfig
	Backend BackendConfig
	Cache   CacheConfig
	Stock   StockConfig
	DB      DBConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string // trace, debug, info, warn, error
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// JWTConfig configuración de verificación local de tokens.
// Si Secret está vacío el BFF solo valida el formato Bearer y delega la verificación al backend.
type JWTConfig struct {
	Secret    string
	AdminRole string
}

// BackendConfig configuración del cliente REST hacia el backend de la farmacia.
type BackendConfig struct {
	BaseURL          string
	TimeoutSeconds   int
	PageSize         int     // tamaño de página para la carga completa de lotes
	FetchConcurrency int     // páginas en vuelo durante la carga completa
	RatePerSecond    float64 // 0 = sin límite
}

// Timeout devuelve el timeout de red del cliente.
func (c BackendConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Drivers de caché soportados.
const (
	CacheDriverMemory = "memory"
	CacheDriverRedis  = "redis"
	CacheDriverNone   = "none"
)

// CacheConfig configuración de la caché de lotes.
type CacheConfig struct {
	Driver        string // memory, redis, none
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	TTLSeconds    int
}

// TTL devuelve la vigencia de las entradas de caché.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// StockConfig parámetros del agregador de lotes.
type StockConfig struct {
	RiskWindowDays int
	Locale         string // BCP 47, ej. "es-PE"
	Timezone       string // IANA, ej. "America/Lima"
}

// Location carga la zona horaria configurada; si no es válida usa UTC.
func (c StockConfig) Location() *time.Location {
	if c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DBConfig configuración de PostgreSQL para el historial de snapshots (opcional).
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// Enabled indica si hay una base de datos configurada.
func (c DBConfig) Enabled() bool {
	return c.DatabaseURL != "" || c.Host != ""
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, BACKEND_BASE_URL, CACHE_DRIVER, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "botica-stock"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8081),
		},
		JWT: JWTConfig{
			Secret:    getString(v, "JWT_SECRET", ""),
			AdminRole: getString(v, "JWT_ADMIN_ROLE", "ADMIN"),
		},
		Backend: BackendConfig{
			BaseURL:          strings.TrimRight(getString(v, "BACKEND_BASE_URL", "http://localhost:8080"), "/"),
			TimeoutSeconds:   getInt(v, "BACKEND_TIMEOUT_SECONDS", 20),
			PageSize:         getInt(v, "BACKEND_PAGE_SIZE", 500),
			FetchConcurrency: getInt(v, "BACKEND_FETCH_CONCURRENCY", 4),
			RatePerSecond:    getFloat(v, "BACKEND_RATE_PER_SECOND", 20),
		},
		Cache: CacheConfig{
			Driver:        strings.ToLower(getString(v, "CACHE_DRIVER", "memory")),
			RedisAddr:     getString(v, "REDIS_ADDR", "localhost:6379"),
			RedisPassword: getString(v, "REDIS_PASSWORD", ""),
			RedisDB:       getInt(v, "REDIS_DB", 0),
			TTLSeconds:    getInt(v, "CACHE_TTL_SECONDS", 120),
		},
		Stock: StockConfig{
			RiskWindowDays: getInt(v, "STOCK_RISK_WINDOW_DAYS", 30),
			Locale:         getString(v, "STOCK_LOCALE", "es-PE"),
			Timezone:       getString(v, "STOCK_TIMEZONE", "America/Lima"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", ""),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "botica_stock"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if _, err := url.ParseRequestURI(c.Backend.BaseURL); err != nil {
		return fmt.Errorf("config: BACKEND_BASE_URL inválido: %w", err)
	}
	if c.Backend.PageSize <= 0 {
		return fmt.Errorf("config: BACKEND_PAGE_SIZE debe ser mayor que 0")
	}
	if c.Backend.FetchConcurrency <= 0 {
		c.Backend.FetchConcurrency = 1
	}
	if c.Stock.RiskWindowDays <= 0 {
		return fmt.Errorf("config: STOCK_RISK_WINDOW_DAYS debe ser mayor que 0")
	}
	switch c.Cache.Driver {
	case CacheDriverMemory, CacheDriverRedis, CacheDriverNone:
	default:
		return fmt.Errorf("config: CACHE_DRIVER desconocido %q", c.Cache.Driver)
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getFloat(v *viper.Viper, key string, def float64) float64 {
	if v.IsSet(key) {
		if s, ok := v.Get(key).(string); ok {
			f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return def
			}
			return f
		}
		return v.GetFloat64(key)
	}
	return def
}
