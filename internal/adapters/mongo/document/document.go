package document

import "go.mongodb.org/mongo-driver/bson/primitive"

// Document is a stored record keyed by a Mongo ObjectID.
type Document interface {
	GetID() primitive.ObjectID
}
