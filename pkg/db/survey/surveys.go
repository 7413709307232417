package survey

import (
	"errors"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	surveyTypes "github.com/sebasbeleno/nexus-backend/pkg/survey/types"
)

var ErrSurveyNotFound = errors.New("survey not found")

var indexesForSurveysCollection = []mongo.IndexModel{
	{
		Keys: bson.D{
			{Key: "surveyId", Value: 1},
		},
		Options: options.Index().SetName("surveyId_1").SetUnique(true),
	},
	{
		Keys: bson.D{
			{Key: "organizationId", Value: 1},
			{Key: "active", Value: 1},
		},
		Options: options.Index().SetName("organizationId_active_1"),
	},
}

func (dbService *SurveyDBService) createIndexForSurveysCollection(instanceID string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_, err := dbService.collectionSurveys(instanceID).Indexes().CreateMany(ctx, indexesForSurveysCollection)
	return err
}

// CreateSurvey inserts a new record with an empty structure skeleton.
func (dbService *SurveyDBService) CreateSurvey(instanceID string, surveyID string, organizationID string, name string, description string) (record SurveyRecord, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	now := time.Now().Unix()
	record = SurveyRecord{
		SurveyID:       surveyID,
		OrganizationID: organizationID,
		Name:           name,
		Description:    description,
		Structure:      surveyTypes.NewSurveyStructure(surveyID, name),
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	ret, err := dbService.collectionSurveys(instanceID).InsertOne(ctx, record)
	if err != nil {
		return record, err
	}
	record.ID = ret.InsertedID.(primitive.ObjectID)
	return record, nil
}

// GetSurveyByID loads one survey and repairs its structure at the boundary,
// so callers always receive a well-formed SurveyStructure.
func (dbService *SurveyDBService) GetSurveyByID(instanceID string, surveyID string) (loaded LoadedSurvey, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	var record SurveyRecord
	err = dbService.collectionSurveys(instanceID).FindOne(ctx, bson.M{"surveyId": surveyID}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return loaded, ErrSurveyNotFound
		}
		return loaded, err
	}

	return LoadedSurvey{
		Record:    record,
		Structure: RepairStructure(record.SurveyID, record.Name, record.Structure),
	}, nil
}

// GetSurveysForOrganization lists survey records without their structure
// payloads (projection keeps the listing light).
func (dbService *SurveyDBService) GetSurveysForOrganization(instanceID string, organizationID string, includeInactive bool) (records []SurveyRecord, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"organizationId": organizationID}
	if !includeInactive {
		filter["active"] = true
	}

	opts := options.Find().
		SetProjection(bson.D{primitive.E{Key: "structure.sections", Value: 0}}).
		SetSort(bson.D{primitive.E{Key: "updatedAt", Value: -1}})

	cursor, err := dbService.collectionSurveys(instanceID).Find(ctx, filter, opts)
	if err != nil {
		return records, err
	}
	defer cursor.Close(ctx)

	err = cursor.All(ctx, &records)
	return records, err
}

// SaveSurveyStructure persists the structure for an existing survey,
// replacing it wholesale. The version counter is owned here: each accepted
// save bumps it by one, regardless of the version the caller sent
// (last-write-wins; the editor core never touches version itself).
func (dbService *SurveyDBService) SaveSurveyStructure(instanceID string, surveyID string, structure surveyTypes.SurveyStructure) (newVersion int, err error) {
	current, err := dbService.GetSurveyByID(instanceID, surveyID)
	if err != nil {
		return 0, err
	}

	structure.SurveyID = surveyID
	structure.Version = current.Structure.Version + 1

	ctx, cancel := dbService.getContext()
	defer cancel()

	update := bson.M{"$set": bson.M{
		"structure": structure,
		"name":      structure.Title,
		"updatedAt": time.Now().Unix(),
	}}
	res, err := dbService.collectionSurveys(instanceID).UpdateOne(ctx, bson.M{"surveyId": surveyID}, update)
	if err != nil {
		return 0, err
	}
	if res.MatchedCount == 0 {
		return 0, ErrSurveyNotFound
	}
	return structure.Version, nil
}

func (dbService *SurveyDBService) UpdateSurveyInfos(instanceID string, surveyID string, name string, description string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	update := bson.M{"$set": bson.M{
		"name":        name,
		"description": description,
		"updatedAt":   time.Now().Unix(),
	}}
	res, err := dbService.collectionSurveys(instanceID).UpdateOne(ctx, bson.M{"surveyId": surveyID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrSurveyNotFound
	}
	return nil
}

// DeleteSurvey removes the record. Responses collected for it are kept; they
// reference the survey id and version they were collected against.
func (dbService *SurveyDBService) DeleteSurvey(instanceID string, surveyID string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	res, err := dbService.collectionSurveys(instanceID).DeleteOne(ctx, bson.M{"surveyId": surveyID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrSurveyNotFound
	}
	slog.Info("survey deleted", slog.String("instanceID", instanceID), slog.String("surveyID", surveyID))
	return nil
}
