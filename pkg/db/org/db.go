package org

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sebasbeleno/nexus-backend/pkg/db"
)

const (
	COLLECTION_NAME_ORGANIZATIONS = "organizations"
	COLLECTION_NAME_USERS         = "users"
)

type OrgDBService struct {
	DBClient     *mongo.Client
	timeout      int
	DBNamePrefix string
	InstanceIDs  []string
}

func NewOrgDBService(configs db.DBConfig) (*OrgDBService, error) {
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

	orgDBSc := &OrgDBService{
		DBClient:     dbClient,
		timeout:      configs.Timeout,
		DBNamePrefix: configs.DBNamePrefix,
		InstanceIDs:  configs.InstanceIDs,
	}

	if configs.RunIndexCreation {
		if err := orgDBSc.ensureIndexes(); err != nil {
			slog.Error("Error ensuring indexes for org DB", slog.String("error", err.Error()))
		}
	}

	return orgDBSc, nil
}

func (dbService *OrgDBService) getDBName(instanceID string) string {
	return dbService.DBNamePrefix + instanceID + "_orgDB"
}

func (dbService *OrgDBService) collectionOrganizations(instanceID string) *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName(instanceID)).Collection(COLLECTION_NAME_ORGANIZATIONS)
}

func (dbService *OrgDBService) collectionUsers(instanceID string) *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName(instanceID)).Collection(COLLECTION_NAME_USERS)
}

func (dbService *OrgDBService) getContext() (ctx context.Context, cancel context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(dbService.timeout)*time.Second)
}

func (dbService *OrgDBService) ensureIndexes() error {
	slog.Debug("Ensuring indexes for org DB")

	for _, instanceID := range dbService.InstanceIDs {
		if err := dbService.createIndexForUsers(instanceID); err != nil {
			slog.Error("Error creating indexes for users", slog.String("error", err.Error()), slog.String("instanceID", instanceID))
		}
	}
	return nil
}
