package main

import (
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/gin-gonic/gin"

	"github.com/sebasbeleno/nexus-backend/pkg/apihelpers"
	"github.com/sebasbeleno/nexus-backend/pkg/db"
	orgDB "github.com/sebasbeleno/nexus-backend/pkg/db/org"
	surveyDB "github.com/sebasbeleno/nexus-backend/pkg/db/survey"
	"github.com/sebasbeleno/nexus-backend/pkg/notifier"
	"github.com/sebasbeleno/nexus-backend/pkg/utils"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"

	ENV_GIN_DEBUG_MODE        = "GIN_DEBUG_MODE"
	ENV_ADMIN_API_LISTEN_PORT = "ADMIN_API_LISTEN_PORT"
	ENV_CORS_ALLOW_ORIGINS    = "CORS_ALLOW_ORIGINS"

	ENV_ADMIN_API_KEYS = "ADMIN_API_KEYS"

	ENV_INSTANCE_IDS = "INSTANCE_IDS"

	ENV_SURVEY_DB_USERNAME = "SURVEY_DB_USERNAME"
	ENV_SURVEY_DB_PASSWORD = "SURVEY_DB_PASSWORD"
	ENV_ORG_DB_USERNAME    = "ORG_DB_USERNAME"
	ENV_ORG_DB_PASSWORD    = "ORG_DB_PASSWORD"

	ENV_SMTP_USERNAME = "SMTP_USERNAME"
	ENV_SMTP_PASSWORD = "SMTP_PASSWORD"
)

var (
	surveyDBService *surveyDB.SurveyDBService
	orgDBService    *orgDB.OrgDBService
	notifierService notifier.Notifier
)

type GinConfig struct {
	DebugMode    bool     `yaml:"debug_mode"`
	AllowOrigins []string `yaml:"allow_origins"`
	Port         string   `yaml:"port"`

	MTLS struct {
		Use              bool                        `yaml:"use"`
		CertificatePaths apihelpers.CertificatePaths `yaml:"certificate_paths"`
	} `yaml:"mtls"`
}

type Config struct {
	Logging utils.LoggerConfig `yaml:"logging"`

	GinConfig GinConfig `yaml:"gin_config"`

	AllowedInstanceIDs []string `yaml:"allowed_instance_ids"`

	APIKeys []string `yaml:"api_keys"`

	SurveyDBConfig db.DBConfigYaml `yaml:"survey_db_config"`
	OrgDBConfig    db.DBConfigYaml `yaml:"org_db_config"`

	Notifications struct {
		EmailEnabled bool                         `yaml:"email_enabled"`
		Email        notifier.EmailNotifierConfig `yaml:"email"`
	} `yaml:"notifications"`
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
	initNotifier()
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

	// Override secrets and listen config from environment variables
	if v := os.Getenv(ENV_GIN_DEBUG_MODE); v != "" {
		conf.GinConfig.DebugMode = v == "true"
	}
	if v := os.Getenv(ENV_ADMIN_API_LISTEN_PORT); v != "" {
		conf.GinConfig.Port = v
	}
	if v := os.Getenv(ENV_CORS_ALLOW_ORIGINS); v != "" {
		conf.GinConfig.AllowOrigins = strings.Split(v, ",")
	}
	if v := os.Getenv(ENV_INSTANCE_IDS); v != "" {
		conf.AllowedInstanceIDs = strings.Split(v, ",")
	}
	if v := os.Getenv(ENV_ADMIN_API_KEYS); v != "" {
		conf.APIKeys = strings.Split(v, ",")
	}
	if v := os.Getenv(ENV_SMTP_USERNAME); v != "" {
		conf.Notifications.Email.Server.Username = v
	}
	if v := os.Getenv(ENV_SMTP_PASSWORD); v != "" {
		conf.Notifications.Email.Server.Password = v
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

	orgDBService, err = orgDB.NewOrgDBService(db.DBConfigFromYaml(
		"orgDB",
		conf.OrgDBConfig,
		ENV_ORG_DB_USERNAME,
		ENV_ORG_DB_PASSWORD,
		conf.AllowedInstanceIDs,
	))
	if err != nil {
		slog.Error("Error connecting to Org DB", slog.String("error", err.Error()))
		panic(err)
	}
}

func initNotifier() {
	sinks := []notifier.Notifier{notifier.SlogNotifier{}}

	if conf.Notifications.EmailEnabled {
		emailSink, err := notifier.NewEmailNotifier(conf.Notifications.Email)
		if err != nil {
			slog.Error("Error setting up email notifier", slog.String("error", err.Error()))
		} else {
			sinks = append(sinks, emailSink)
		}
	}

	notifierService = notifier.MultiNotifier{Sinks: sinks}
}
