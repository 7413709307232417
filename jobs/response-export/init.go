package main

import (
	"log/slog"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/sebasbeleno/nexus-backend/pkg/db"
	surveyDB "github.com/sebasbeleno/nexus-backend/pkg/db/survey"
	"github.com/sebasbeleno/nexus-backend/pkg/utils"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"

	// Variables to override "secrets" in the config file
	ENV_SURVEY_DB_USERNAME = "SURVEY_DB_USERNAME"
	ENV_SURVEY_DB_PASSWORD = "SURVEY_DB_PASSWORD"
)

type ExportTask struct {
	InstanceID string `json:"instance_id" yaml:"instance_id"`
	SurveyID   string `json:"survey_id" yaml:"survey_id"`
}

type config struct {
	// Logging configs
	Logging utils.LoggerConfig `json:"logging" yaml:"logging"`

	// DB configs
	DBConfigs struct {
		SurveyDB db.DBConfigYaml `json:"survey_db" yaml:"survey_db"`
	} `json:"db_configs" yaml:"db_configs"`

	ExportPath string `json:"export_path" yaml:"export_path"`

	// Responses are fetched in pages of this size. Zero means the default.
	BatchSize int64 `json:"batch_size" yaml:"batch_size"`

	ExportTasks []ExportTask `json:"export_tasks" yaml:"export_tasks"`
}

var conf config

var (
	surveyDBService *surveyDB.SurveyDBService
)

func init() {
	// Read config from file
	yamlFile, err := os.ReadFile(os.Getenv(ENV_CONFIG_FILE_PATH))
	if err != nil {
		panic(err)
	}

	err = yaml.UnmarshalStrict(yamlFile, &conf)
	if err != nil {
		panic(err)
	}

	// Init logger:
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

	// Override secrets from environment variables
	secretsOverride()

	// init db
	initDBs()

	if conf.ExportPath == "" {
		slog.Error("Error reading config: export path must be set")
		panic("export path must be set")
	}

	if _, err := os.Stat(conf.ExportPath); os.IsNotExist(err) {
		// create folder
		err = os.MkdirAll(conf.ExportPath, os.ModePerm)
		if err != nil {
			slog.Error("Error creating export path", slog.String("error", err.Error()))
			panic(err)
		}
		slog.Info("Created export path", slog.String("path", conf.ExportPath))
	}
}

func secretsOverride() {
	if dbUsername := os.Getenv(ENV_SURVEY_DB_USERNAME); dbUsername != "" {
		conf.DBConfigs.SurveyDB.Username = dbUsername
	}

	if dbPassword := os.Getenv(ENV_SURVEY_DB_PASSWORD); dbPassword != "" {
		conf.DBConfigs.SurveyDB.Password = dbPassword
	}
}

func initDBs() {
	instanceIDs := make([]string, len(conf.ExportTasks))
	for i, task := range conf.ExportTasks {
		instanceIDs[i] = task.InstanceID
	}

	// Deployments that keep the DB setup out of the config file leave the
	// survey_db block empty and provide SURVEY_DB_* environment variables
	// instead.
	var dbConf db.DBConfig
	if conf.DBConfigs.SurveyDB.ConnectionStr == "" {
		dbConf = db.ReadDBConfigFromEnv("surveyDB", "SURVEY", instanceIDs)
	} else {
		dbConf = db.DBConfigFromYaml(
			"surveyDB",
			conf.DBConfigs.SurveyDB,
			ENV_SURVEY_DB_USERNAME,
			ENV_SURVEY_DB_PASSWORD,
			instanceIDs,
		)
	}

	var err error
	surveyDBService, err = surveyDB.NewSurveyDBService(dbConf)
	if err != nil {
		slog.Error("Error connecting to Survey DB", slog.String("error", err.Error()))
		panic(err)
	}
}
