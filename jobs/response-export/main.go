package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/sebasbeleno/nexus-backend/pkg/exporter"
)

const DEFAULT_BATCH_SIZE = 500

func main() {
	slog.Info("Starting response export job")
	start := time.Now()

	for _, task := range conf.ExportTasks {
		if err := runExportTask(task); err != nil {
			slog.Error("Export task failed", slog.String("instanceID", task.InstanceID), slog.String("surveyID", task.SurveyID), slog.String("error", err.Error()))
			continue
		}
		slog.Info("Export task finished", slog.String("instanceID", task.InstanceID), slog.String("surveyID", task.SurveyID))
	}

	if err := surveyDBService.DBClient.Disconnect(context.Background()); err != nil {
		slog.Error("Error closing DB connection", slog.String("error", err.Error()))
	}
	slog.Info("Response export job completed", slog.String("duration", time.Since(start).String()))
}

func runExportTask(task ExportTask) error {
	loaded, err := surveyDBService.GetSurveyByID(task.InstanceID, task.SurveyID)
	if err != nil {
		return fmt.Errorf("loading survey: %w", err)
	}

	filename := fmt.Sprintf("%s_%s_%s.csv", task.InstanceID, task.SurveyID, time.Now().Format("2006-01-02"))
	file, err := os.Create(filepath.Join(conf.ExportPath, filename))
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	defer file.Close()

	csvExporter, err := exporter.NewResponseCSVExporter(loaded.Structure, file)
	if err != nil {
		return fmt.Errorf("initializing exporter: %w", err)
	}

	batchSize := conf.BatchSize
	if batchSize < 1 {
		batchSize = DEFAULT_BATCH_SIZE
	}

	exported := 0
	for skip := int64(0); ; skip += batchSize {
		responses, err := surveyDBService.GetResponsesBySurvey(task.InstanceID, task.SurveyID, batchSize, skip)
		if err != nil {
			return fmt.Errorf("fetching responses: %w", err)
		}
		if len(responses) == 0 {
			break
		}
		for _, response := range responses {
			if err := csvExporter.WriteResponse(response); err != nil {
				return fmt.Errorf("writing response row: %w", err)
			}
			exported++
		}
	}

	if err := csvExporter.Finish(); err != nil {
		return fmt.Errorf("flushing export file: %w", err)
	}

	slog.Info("Responses exported", slog.String("file", filename), slog.Int("count", exported))
	return nil
}
