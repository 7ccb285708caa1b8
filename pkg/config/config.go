package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Blood         BloodConfig
	Chatbot       ChatbotConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"MEDLEDGER_APP_ENV" default:"development"`
	Port         string `envconfig:"MEDLEDGER_APP_PORT" default:"5000"`
	LogLevel     string `envconfig:"MEDLEDGER_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"MEDLEDGER_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"MEDLEDGER_DB_DSN"`
	Driver string `envconfig:"MEDLEDGER_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"MEDLEDGER_DB_HOST"`
	LegacyPort     int    `envconfig:"MEDLEDGER_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"MEDLEDGER_DB_USER"`
	LegacyPassword string `envconfig:"MEDLEDGER_DB_PASSWORD"`
	LegacyName     string `envconfig:"MEDLEDGER_DB_NAME"`
	LegacySSLMode  string `envconfig:"MEDLEDGER_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"MEDLEDGER_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"MEDLEDGER_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"MEDLEDGER_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"MEDLEDGER_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"MEDLEDGER_REDIS_URL"`
	Address      string        `envconfig:"MEDLEDGER_REDIS_ADDR"`
	Password     string        `envconfig:"MEDLEDGER_REDIS_PASSWORD"`
	DB           int           `envconfig:"MEDLEDGER_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"MEDLEDGER_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MEDLEDGER_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"MEDLEDGER_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"MEDLEDGER_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"MEDLEDGER_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"MEDLEDGER_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"MEDLEDGER_JWT_ISSUER" default:"medledger"`
	ExpirationMinutes int    `envconfig:"MEDLEDGER_JWT_EXPIRATION_MINUTES" default:"1440"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"MEDLEDGER_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"MEDLEDGER_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"MEDLEDGER_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"MEDLEDGER_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"MEDLEDGER_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"MEDLEDGER_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"MEDLEDGER_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"MEDLEDGER_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"MEDLEDGER_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"MEDLEDGER_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"MEDLEDGER_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"MEDLEDGER_AUTO_MIGRATE" default:"false"`
}

// BloodConfig carries the single stock threshold applied to every
// (hospital, blood type) pair.
type BloodConfig struct {
	Threshold int `envconfig:"MEDLEDGER_BLOOD_THRESHOLD" default:"10"`
}

type ChatbotConfig struct {
	GoogleAIAPIKey string        `envconfig:"MEDLEDGER_GOOGLE_AI_API_KEY"`
	Model          string        `envconfig:"MEDLEDGER_CHATBOT_MODEL" default:"gemini-2.0-flash-exp"`
	RequestTimeout time.Duration `envconfig:"MEDLEDGER_CHATBOT_TIMEOUT" default:"20s"`
	CacheCapacity  int           `envconfig:"MEDLEDGER_CHATBOT_CACHE_CAPACITY" default:"100"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
