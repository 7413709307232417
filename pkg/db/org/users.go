package org

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrUserNotFound = errors.New("user not found")

func (dbService *OrgDBService) createIndexForUsers(instanceID string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_, err := dbService.collectionUsers(instanceID).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "organizationId", Value: 1}, {Key: "active", Value: 1}},
		},
	})
	return err
}

func (dbService *OrgDBService) CreateUser(instanceID string, user User) (User, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	now := time.Now().Unix()
	user.Active = true
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Role == "" {
		user.Role = USER_ROLE_SURVEYOR
	}

	res, err := dbService.collectionUsers(instanceID).InsertOne(ctx, user)
	if err != nil {
		return user, err
	}
	user.ID = res.InsertedID.(primitive.ObjectID)
	return user, nil
}

func (dbService *OrgDBService) GetUserByID(instanceID string, userID string) (user User, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return user, err
	}

	err = dbService.collectionUsers(instanceID).FindOne(ctx, bson.M{"_id": _id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return user, ErrUserNotFound
	}
	return user, err
}

func (dbService *OrgDBService) GetUsersForOrganization(instanceID string, organizationID string, includeInactive bool) (users []User, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"organizationId": organizationID}
	if !includeInactive {
		filter["active"] = true
	}

	opts := options.Find().SetSort(bson.D{primitive.E{Key: "name", Value: 1}})
	cursor, err := dbService.collectionUsers(instanceID).Find(ctx, filter, opts)
	if err != nil {
		return users, err
	}
	defer cursor.Close(ctx)

	err = cursor.All(ctx, &users)
	return users, err
}

func (dbService *OrgDBService) UpdateUser(instanceID string, userID string, name string, role string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return err
	}

	update := bson.M{"$set": bson.M{
		"name":      name,
		"role":      role,
		"updatedAt": time.Now().Unix(),
	}}
	res, err := dbService.collectionUsers(instanceID).UpdateOne(ctx, bson.M{"_id": _id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (dbService *OrgDBService) DeactivateUser(instanceID string, userID string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return err
	}

	update := bson.M{"$set": bson.M{
		"active":    false,
		"updatedAt": time.Now().Unix(),
	}}
	res, err := dbService.collectionUsers(instanceID).UpdateOne(ctx, bson.M{"_id": _id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}
