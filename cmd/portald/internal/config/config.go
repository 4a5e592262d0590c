package config

import (
	"fmt"
	"strconv"
	"time"

	"git.tdpain.net/codemicro/newsPortal/portalapi"
	"go.akpain.net/cfger"
)

type Config struct {
	APIURL           string
	HTTPAddress      string
	DatabaseFilename string
	MongoDSN         string
	MongoDatabase    string
	UpstreamTimeout  time.Duration
	UpstreamRPS      float64
	SecureCookies    bool
	LogLevel         string
	LogFormat        string
}

func Get() (*Config, error) {
	cl := cfger.New()
	var conf = &Config{
		APIURL:           cl.GetEnv("PORTALD_API_URL").WithDefault(portalapi.DefaultBaseURL).AsString(),
		HTTPAddress:      cl.GetEnv("PORTALD_HTTP_ADDR").WithDefault(":9231").AsString(),
		DatabaseFilename: cl.GetEnv("PORTALD_DATABASE_FILENAME").WithDefault("newsportal.sqlite3.db").AsString(),
		MongoDSN:         cl.GetEnv("PORTALD_MONGO_DSN").WithDefault("").AsString(),
		MongoDatabase:    cl.GetEnv("PORTALD_MONGO_DATABASE").WithDefault("newsportal").AsString(),
		LogLevel:         cl.GetEnv("PORTALD_LOG_LEVEL").WithDefault("info").AsString(),
		LogFormat:        cl.GetEnv("PORTALD_LOG_FORMAT").WithDefault("text").AsString(),
	}

	var err error

	rawTimeout := cl.GetEnv("PORTALD_UPSTREAM_TIMEOUT").WithDefault("10s").AsString()
	if conf.UpstreamTimeout, err = time.ParseDuration(rawTimeout); err != nil {
		return nil, fmt.Errorf("PORTALD_UPSTREAM_TIMEOUT: %w", err)
	}

	rawRPS := cl.GetEnv("PORTALD_UPSTREAM_RPS").WithDefault("0").AsString()
	if conf.UpstreamRPS, err = strconv.ParseFloat(rawRPS, 64); err != nil {
		return nil, fmt.Errorf("PORTALD_UPSTREAM_RPS: %w", err)
	}

	rawSecure := cl.GetEnv("PORTALD_SECURE_COOKIES").WithDefault("false").AsString()
	if conf.SecureCookies, err = strconv.ParseBool(rawSecure); err != nil {
		return nil, fmt.Errorf("PORTALD_SECURE_COOKIES: %w", err)
	}

	return conf, nil
}

// UseMongo reports whether sessions should be kept in MongoDB rather than
// SQLite.
func (c *Config) UseMongo() bool {
	return c.MongoDSN != ""
}
