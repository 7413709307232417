package org

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrOrganizationNotFound = errors.New("organization not found")

func (dbService *OrgDBService) CreateOrganization(instanceID string, organization Organization) (Organization, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	now := time.Now().Unix()
	organization.Active = true
	organization.CreatedAt = now
	organization.UpdatedAt = now

	res, err := dbService.collectionOrganizations(instanceID).InsertOne(ctx, organization)
	if err != nil {
		return organization, err
	}
	organization.ID = res.InsertedID.(primitive.ObjectID)
	return organization, nil
}

func (dbService *OrgDBService) GetOrganizationByID(instanceID string, organizationID string) (organization Organization, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(organizationID)
	if err != nil {
		return organization, err
	}

	err = dbService.collectionOrganizations(instanceID).FindOne(ctx, bson.M{"_id": _id}).Decode(&organization)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return organization, ErrOrganizationNotFound
	}
	return organization, err
}

func (dbService *OrgDBService) GetOrganizations(instanceID string, includeInactive bool) (organizations []Organization, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{}
	if !includeInactive {
		filter["active"] = true
	}

	opts := options.Find().SetSort(bson.D{primitive.E{Key: "name", Value: 1}})
	cursor, err := dbService.collectionOrganizations(instanceID).Find(ctx, filter, opts)
	if err != nil {
		return organizations, err
	}
	defer cursor.Close(ctx)

	err = cursor.All(ctx, &organizations)
	return organizations, err
}

func (dbService *OrgDBService) UpdateOrganization(instanceID string, organizationID string, name string, contactEmail string, address string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(organizationID)
	if err != nil {
		return err
	}

	update := bson.M{"$set": bson.M{
		"name":         name,
		"contactEmail": contactEmail,
		"address":      address,
		"updatedAt":    time.Now().Unix(),
	}}
	res, err := dbService.collectionOrganizations(instanceID).UpdateOne(ctx, bson.M{"_id": _id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrOrganizationNotFound
	}
	return nil
}

// DeactivateOrganization soft-deletes: the record stays for referential
// integrity of surveys and users.
func (dbService *OrgDBService) DeactivateOrganization(instanceID string, organizationID string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(organizationID)
	if err != nil {
		return err
	}

	update := bson.M{"$set": bson.M{
		"active":    false,
		"updatedAt": time.Now().Unix(),
	}}
	res, err := dbService.collectionOrganizations(instanceID).UpdateOne(ctx, bson.M{"_id": _id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrOrganizationNotFound
	}
	return nil
}
