package survey

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrAssignmentNotFound = errors.New("assignment not found")

func (dbService *SurveyDBService) createIndexForAssignmentsCollection(instanceID string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "surveyId", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "surveyorId", Value: 1}, {Key: "status", Value: 1}}},
	}
	_, err := dbService.collectionAssignments(instanceID).Indexes().CreateMany(ctx, indexes)
	return err
}

func (dbService *SurveyDBService) CreateAssignment(instanceID string, assignment Assignment) (Assignment, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	now := time.Now().Unix()
	assignment.CreatedAt = now
	assignment.UpdatedAt = now
	if assignment.Status == "" {
		assignment.Status = ASSIGNMENT_STATUS_PENDING
	}

	ret, err := dbService.collectionAssignments(instanceID).InsertOne(ctx, assignment)
	if err != nil {
		return assignment, err
	}
	assignment.ID = ret.InsertedID.(primitive.ObjectID)
	return assignment, nil
}

func (dbService *SurveyDBService) GetAssignmentsBySurvey(instanceID string, surveyID string) (assignments []Assignment, err error) {
	return dbService.findAssignments(instanceID, bson.M{"surveyId": surveyID})
}

func (dbService *SurveyDBService) GetAssignmentsBySurveyor(instanceID string, surveyorID string) (assignments []Assignment, err error) {
	return dbService.findAssignments(instanceID, bson.M{"surveyorId": surveyorID})
}

func (dbService *SurveyDBService) findAssignments(instanceID string, filter bson.M) (assignments []Assignment, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	opts := options.Find().SetSort(bson.D{primitive.E{Key: "createdAt", Value: -1}})
	cursor, err := dbService.collectionAssignments(instanceID).Find(ctx, filter, opts)
	if err != nil {
		return assignments, err
	}
	defer cursor.Close(ctx)

	err = cursor.All(ctx, &assignments)
	return assignments, err
}

func (dbService *SurveyDBService) UpdateAssignmentStatus(instanceID string, assignmentID string, status string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(assignmentID)
	if err != nil {
		return err
	}

	update := bson.M{"$set": bson.M{
		"status":    status,
		"updatedAt": time.Now().Unix(),
	}}
	res, err := dbService.collectionAssignments(instanceID).UpdateOne(ctx, bson.M{"_id": _id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrAssignmentNotFound
	}
	return nil
}

func (dbService *SurveyDBService) DeleteAssignment(instanceID string, assignmentID string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(assignmentID)
	if err != nil {
		return err
	}

	res, err := dbService.collectionAssignments(instanceID).DeleteOne(ctx, bson.M{"_id": _id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrAssignmentNotFound
	}
	return nil
}
