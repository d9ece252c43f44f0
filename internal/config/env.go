package config

type Database struct {
	Host     string `mapstructure:"DATABASE_HOST" default:"localhost"`
	Port     int    `mapstructure:"DATABASE_PORT" default:"5432"`
	Name     string `mapstructure:"DATABASE_NAME" default:"silosys"`
	User     string `mapstructure:"DATABASE_USER" default:"postgres"`
	Password string `mapstructure:"DATABASE_PASSWORD" default:"silosys"`
}

type Redis struct {
	Host     string `mapstructure:"REDIS_HOST" default:"127.0.0.1"`
	Port     int    `mapstructure:"REDIS_PORT" default:"6379"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB" default:"0"`
}

type Server struct {
	Platform string `mapstructure:"PLATFORM" default:"silosys"`
	Service  string `mapstructure:"SERVICE" default:"api"`
	Port     int    `mapstructure:"WEB_PORT" default:"8080"`
	Env      string `mapstructure:"ENV" default:"dev"`
}

// Auth carries the token-signing material that the original deployment kept
// in ambient process state. Construction-time injection only.
type Auth struct {
	SecretKey          string `mapstructure:"SECRET_KEY" default:"change-me-in-production"`
	AccessTokenMinutes int    `mapstructure:"ACCESS_TOKEN_EXPIRE_MINUTES" default:"30"`
	RefreshTokenDays   int    `mapstructure:"REFRESH_TOKEN_EXPIRE_DAYS" default:"7"`
}

type Log struct {
	LogPath  string `mapstructure:"LOG_PATH" default:"./info.log"`
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
}

type Trace struct {
	Version        string `mapstructure:"TRACE_VERSION" default:"0.0.1"`
	TraceEndpoint  string `mapstructure:"TRACE_TRACEENDPOINT" default:""`
	MetricEndpoint string `mapstructure:"TRACE_METRICENDPOINT" default:""`
}
