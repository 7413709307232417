package db

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
)

type DBConfig struct {
	URI              string
	DBNamePrefix     string
	Timeout          int
	NoCursorTimeout  bool
	MaxPoolSize      uint64
	IdleConnTimeout  int
	InstanceIDs      []string
	RunIndexCreation bool
}

type DBConfigYaml struct {
	ConnectionStr      string `yaml:"connection_str"`
	Username           string `yaml:"username"`
	Password           string `yaml:"password"`
	ConnectionPrefix   string `yaml:"connection_prefix"`
	Timeout            int    `yaml:"timeout"`
	IdleConnTimeout    int    `yaml:"idle_conn_timeout"`
	MaxPoolSize        int    `yaml:"max_pool_size"`
	UseNoCursorTimeout bool   `yaml:"use_no_cursor_timeout"`
	DBNamePrefix       string `yaml:"db_name_prefix"`
	RunIndexCreation   bool   `yaml:"run_index_creation"`
}

// DBConfigFromYaml builds the runtime config, pulling credentials from the
// environment when the yaml leaves them empty (secrets are not committed to
// config files).
func DBConfigFromYaml(dbLabel string, yamlConf DBConfigYaml, usernameEnv string, passwordEnv string, instanceIDs []string) DBConfig {
	username := yamlConf.Username
	if v := os.Getenv(usernameEnv); v != "" {
		username = v
	}
	password := yamlConf.Password
	if v := os.Getenv(passwordEnv); v != "" {
		password = v
	}
	if yamlConf.ConnectionStr == "" || username == "" || password == "" {
		slog.Error("couldn't read DB credentials", slog.String("db", dbLabel))
		panic("couldn't read DB credentials")
	}
	uri := fmt.Sprintf(`mongodb%s://%s:%s@%s`, yamlConf.ConnectionPrefix, username, password, yamlConf.ConnectionStr)

	return DBConfig{
		URI:              uri,
		Timeout:          yamlConf.Timeout,
		IdleConnTimeout:  yamlConf.IdleConnTimeout,
		MaxPoolSize:      uint64(yamlConf.MaxPoolSize),
		NoCursorTimeout:  yamlConf.UseNoCursorTimeout,
		DBNamePrefix:     yamlConf.DBNamePrefix,
		InstanceIDs:      instanceIDs,
		RunIndexCreation: yamlConf.RunIndexCreation,
	}
}

// ReadDBConfigFromEnv reads a full DB config from environment variables with
// a common prefix, e.g. SURVEY_DB_CONNECTION_STR. Used by the job binaries
// when the config file carries no DB block.
func ReadDBConfigFromEnv(dbLabel string, envPrefix string, instanceIDs []string) DBConfig {
	get := func(suffix string) string { return os.Getenv(envPrefix + suffix) }

	connStr := get("_DB_CONNECTION_STR")
	username := get("_DB_USERNAME")
	password := get("_DB_PASSWORD")
	prefix := get("_DB_CONNECTION_PREFIX")
	if connStr == "" || username == "" || password == "" {
		slog.Error("couldn't read DB credentials", slog.String("db", dbLabel))
		panic("couldn't read DB credentials")
	}
	uri := fmt.Sprintf(`mongodb%s://%s:%s@%s`, prefix, username, password, connStr)

	timeout, err := strconv.Atoi(get("_DB_TIMEOUT"))
	if err != nil {
		slog.Error("DB config could not parse timeout", slog.String("error", err.Error()), slog.String("db", dbLabel))
		panic(err)
	}
	idleConnTimeout, err := strconv.Atoi(get("_DB_IDLE_CONN_TIMEOUT"))
	if err != nil {
		slog.Error("DB config could not parse idle connection timeout", slog.String("error", err.Error()), slog.String("db", dbLabel))
		panic(err)
	}
	mps, err := strconv.Atoi(get("_DB_MAX_POOL_SIZE"))
	if err != nil {
		slog.Error("DB config could not parse max pool size", slog.String("error", err.Error()), slog.String("db", dbLabel))
		panic(err)
	}

	return DBConfig{
		URI:             uri,
		Timeout:         timeout,
		IdleConnTimeout: idleConnTimeout,
		MaxPoolSize:     uint64(mps),
		NoCursorTimeout: get("_DB_USE_NO_CURSOR_TIMEOUT") == "true",
		DBNamePrefix:    get("_DB_NAME_PREFIX"),
		InstanceIDs:     instanceIDs,
	}
}
