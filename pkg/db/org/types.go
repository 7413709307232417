package org

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	USER_ROLE_ADMIN    = "admin"
	USER_ROLE_SURVEYOR = "surveyor"
)

type Organization struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	ContactEmail string             `json:"contactEmail,omitempty" bson:"contactEmail,omitempty"`
	Address      string             `json:"address,omitempty" bson:"address,omitempty"`
	Active       bool               `json:"active" bson:"active"`
	CreatedAt    int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt    int64              `json:"updatedAt" bson:"updatedAt"`
}

type User struct {
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	OrganizationID string             `json:"organizationId" bson:"organizationId"`
	Email          string             `json:"email" bson:"email"`
	Name           string             `json:"name,omitempty" bson:"name,omitempty"`
	Role           string             `json:"role" bson:"role"`
	Active         bool               `json:"active" bson:"active"`
	CreatedAt      int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt      int64              `json:"updatedAt" bson:"updatedAt"`
}
