package document

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rafaelleal24/inventory/internal/core/domain"
)

type UserDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	PasswordHash string             `bson:"password_hash"`
	Role         string             `bson:"role"`
	CreatedAt    time.Time          `bson:"created_at"`
}

func (doc UserDocument) GetID() primitive.ObjectID {
	return doc.ID
}

func (doc *UserDocument) ToDomain() *domain.User {
	return &domain.User{
		ID:           domain.ID(doc.ID.Hex()),
		Username:     doc.Username,
		PasswordHash: doc.PasswordHash,
		Role:         domain.Role(doc.Role),
		CreatedAt:    doc.CreatedAt,
	}
}
