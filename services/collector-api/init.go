package main

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/gin-gonic/gin"

	"github.com/sebasbeleno/nexus-backend/pkg/apihelpers"
	"github.com/sebasbeleno/nexus-backend/pkg/db"
	surveyDB "github.com/sebasbeleno/nexus-backend/pkg/db/survey"
	"github.com/sebasbeleno/nexus-backend/pkg/survey/wizard"
	"github.com/sebasbeleno/nexus-backend/pkg/utils"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"

	ENV_GIN_DEBUG_MODE            = "GIN_DEBUG_MODE"
	ENV_COLLECTOR_API_LISTEN_PORT = "COLLECTOR_API_LISTEN_PORT"
	ENV_CORS_ALLOW_ORIGINS        = "CORS_ALLOW_ORIGINS"

	ENV_COLLECTOR_API_KEYS = "COLLECTOR_API_KEYS"

	ENV_INSTANCE_IDS = "INSTANCE_IDS"

	ENV_SURVEY_DB_USERNAME = "SURVEY_DB_USERNAME"
	ENV_SURVEY_DB_PASSWORD = "SURVEY_DB_PASSWORD"
)

var (
	surveyDBService *surveyDB.SurveyDBService
	sessionRegistry *wizard.SessionRegistry
)

type Config struct {
	Logging utils.LoggerConfig `yaml:"logging"`

	GinConfig struct {
		DebugMode    bool     `yaml:"debug_mode"`
		AllowOrigins []string `yaml:"allow_origins"`
		Port         string   `yaml:"port"`

		MTLS struct {
			Use              bool                        `yaml:"use"`
			CertificatePaths apihelpers.CertificatePaths `yaml:"certificate_paths"`
		} `yaml:"mtls"`
	} `yaml:"gin_config"`

	AllowedInstanceIDs []string `yaml:"allowed_instance_ids"`

	APIKeys []string `yaml:"api_keys"`

	// Session TTL as a duration string, e.g. "2h". Zero means the default.
	SessionTTL string `yaml:"session_ttl"`

	SurveyDBConfig db.DBConfigYaml `yaml:"survey_db_config"`
}

func init() {
	conf = initConfig()

	utils.InitLogger(
		conf.Logging.LogLevel,
		conf.Logging.IncludeSrc,
		conf.Logging.LogToFile,
		conf.Logging.Filename,
		conf.Logging.MaxSize,
		conf.Logging.MaxAge,
		conf.Logging.MaxBackups,
		conf.Logging.CompressOldLogs,
		conf.Logging.IncludeBuildInfo,
	)

	if !conf.GinConfig.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	initDBs()
	initSessionRegistry()
}

func initConfig() Config {
	conf := Config{}

	yamlFile, err := os.ReadFile(os.Getenv(ENV_CONFIG_FILE_PATH))
	if err != nil {
		panic(err)
	}

	err = yaml.UnmarshalStrict(yamlFile, &conf)
	if err != nil {
		panic(err)
	}

	if v := os.Getenv(ENV_GIN_DEBUG_MODE); v != "" {
		conf.GinConfig.DebugMode = v == "true"
	}
	if v := os.Getenv(ENV_COLLECTOR_API_LISTEN_PORT); v != "" {
		conf.GinConfig.Port = v
	}
	if v := os.Getenv(ENV_CORS_ALLOW_ORIGINS); v != "" {
		conf.GinConfig.AllowOrigins = strings.Split(v, ",")
	}
	if v := os.Getenv(ENV_INSTANCE_IDS); v != "" {
		conf.AllowedInstanceIDs = strings.Split(v, ",")
	}
	if v := os.Getenv(ENV_COLLECTOR_API_KEYS); v != "" {
		conf.APIKeys = strings.Split(v, ",")
	}

	// Keys can also be injected per instance, e.g. COLLECTOR_API_KEY_FOR_BOGOTA.
	for _, instanceID := range conf.AllowedInstanceIDs {
		if v := os.Getenv(utils.GenerateInstanceAPIKeyEnvVarName(instanceID)); v != "" {
			conf.APIKeys = append(conf.APIKeys, v)
		}
	}

	if len(conf.APIKeys) < 1 {
		panic("no API keys configured")
	}
	if len(conf.AllowedInstanceIDs) < 1 {
		panic("no allowed instance IDs configured")
	}

	return conf
}

func initDBs() {
	var err error
	surveyDBService, err = surveyDB.NewSurveyDBService(db.DBConfigFromYaml(
		"surveyDB",
		conf.SurveyDBConfig,
		ENV_SURVEY_DB_USERNAME,
		ENV_SURVEY_DB_PASSWORD,
		conf.AllowedInstanceIDs,
	))
	if err != nil {
		slog.Error("Error connecting to Survey DB", slog.String("error", err.Error()))
		panic(err)
	}
}

func initSessionRegistry() {
	ttl := time.Duration(0)
	if conf.SessionTTL != "" {
		var err error
		ttl, err = utils.ParseDurationString(conf.SessionTTL)
		if err != nil {
			slog.Error("could not parse session_ttl", slog.String("error", err.Error()))
			panic(err)
		}
	}
	sessionRegistry = wizard.NewSessionRegistry(ttl)
}
