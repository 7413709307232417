package survey

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrResponseNotFound = errors.New("response not found")

func (dbService *SurveyDBService) createIndexForResponsesCollection(instanceID string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "surveyId", Value: 1}, {Key: "submittedAt", Value: -1}}},
		{Keys: bson.D{{Key: "surveyorId", Value: 1}}},
		{Keys: bson.D{{Key: "submittedAt", Value: 1}}},
	}
	_, err := dbService.collectionResponses(instanceID).Indexes().CreateMany(ctx, indexes)
	return err
}

// SaveResponse stores a completed wizard run. ArrivedAt is set here;
// SubmittedAt is the completion time reported by the collector.
func (dbService *SurveyDBService) SaveResponse(instanceID string, response ResponseRecord) (ResponseRecord, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	response.ArrivedAt = time.Now().Unix()
	if response.SubmittedAt == 0 {
		response.SubmittedAt = response.ArrivedAt
	}

	ret, err := dbService.collectionResponses(instanceID).InsertOne(ctx, response)
	if err != nil {
		return response, err
	}
	response.ID = ret.InsertedID.(primitive.ObjectID)
	return response, nil
}

func (dbService *SurveyDBService) GetResponseByID(instanceID string, responseID string) (response ResponseRecord, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(responseID)
	if err != nil {
		return response, err
	}

	err = dbService.collectionResponses(instanceID).FindOne(ctx, bson.M{"_id": _id}).Decode(&response)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return response, ErrResponseNotFound
	}
	return response, err
}

// GetResponsesBySurvey returns the responses for one survey, newest first.
func (dbService *SurveyDBService) GetResponsesBySurvey(instanceID string, surveyID string, limit int64, skip int64) (responses []ResponseRecord, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	opts := options.Find().SetSort(bson.D{primitive.E{Key: "submittedAt", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}
	if skip > 0 {
		opts = opts.SetSkip(skip)
	}

	cursor, err := dbService.collectionResponses(instanceID).Find(ctx, bson.M{"surveyId": surveyID}, opts)
	if err != nil {
		return responses, err
	}
	defer cursor.Close(ctx)

	err = cursor.All(ctx, &responses)
	return responses, err
}

// CountResponsesBySurvey counts responses filtering only on fields of the
// responses collection itself; no join-level filters are applied here.
func (dbService *SurveyDBService) CountResponsesBySurvey(instanceID string, surveyID string) (int64, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	return dbService.collectionResponses(instanceID).CountDocuments(ctx, bson.M{"surveyId": surveyID})
}
