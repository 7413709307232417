package survey

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sebasbeleno/nexus-backend/pkg/db"
)

// collection names
const (
	COLLECTION_NAME_SURVEYS     = "surveys"
	COLLECTION_NAME_RESPONSES   = "surveyResponses"
	COLLECTION_NAME_ASSIGNMENTS = "assignments"
)

type SurveyDBService struct {
	DBClient     *mongo.Client
	timeout      int
	DBNamePrefix string
	InstanceIDs  []string
}

func NewSurveyDBService(configs db.DBConfig) (*SurveyDBService, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(configs.Timeout)*time.Second)
	defer cancel()

	dbClient, err := mongo.Connect(ctx,
		options.Client().ApplyURI(configs.URI),
		options.Client().SetMaxConnIdleTime(time.Duration(configs.IdleConnTimeout)*time.Second),
		options.Client().SetMaxPoolSize(configs.MaxPoolSize),
	)
	if err != nil {
		return nil, err
	}

	ctx, conCancel := context.WithTimeout(context.Background(), time.Duration(configs.Timeout)*time.Second)
	defer conCancel()
	if err := dbClient.Ping(ctx, nil); err != nil {
		return nil, err
	}

	surveyDBSc := &SurveyDBService{
		DBClient:     dbClient,
		timeout:      configs.Timeout,
		DBNamePrefix: configs.DBNamePrefix,
		InstanceIDs:  configs.InstanceIDs,
	}

	if configs.RunIndexCreation {
		if err := surveyDBSc.ensureIndexes(); err != nil {
			slog.Error("Error ensuring indexes for survey DB", slog.String("error", err.Error()))
		}
	}

	return surveyDBSc, nil
}

func (dbService *SurveyDBService) getDBName(instanceID string) string {
	return dbService.DBNamePrefix + instanceID + "_surveyDB"
}

func (dbService *SurveyDBService) collectionSurveys(instanceID string) *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName(instanceID)).Collection(COLLECTION_NAME_SURVEYS)
}

func (dbService *SurveyDBService) collectionResponses(instanceID string) *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName(instanceID)).Collection(COLLECTION_NAME_RESPONSES)
}

func (dbService *SurveyDBService) collectionAssignments(instanceID string) *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName(instanceID)).Collection(COLLECTION_NAME_ASSIGNMENTS)
}

func (dbService *SurveyDBService) getContext() (ctx context.Context, cancel context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(dbService.timeout)*time.Second)
}

func (dbService *SurveyDBService) ensureIndexes() error {
	slog.Debug("Ensuring indexes for survey DB")

	for _, instanceID := range dbService.InstanceIDs {
		if err := dbService.createIndexForSurveysCollection(instanceID); err != nil {
			slog.Error("Error creating indexes for surveys", slog.String("error", err.Error()), slog.String("instanceID", instanceID))
		}
		if err := dbService.createIndexForResponsesCollection(instanceID); err != nil {
			slog.Error("Error creating indexes for responses", slog.String("error", err.Error()), slog.String("instanceID", instanceID))
		}
		if err := dbService.createIndexForAssignmentsCollection(instanceID); err != nil {
			slog.Error("Error creating indexes for assignments", slog.String("error", err.Error()), slog.String("instanceID", instanceID))
		}
	}
	return nil
}
