package port

import "github.com/rafaelleal24/inventory/internal/core/domain"

//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type TokenIssuer interface {
	Issue(user *domain.User) (string, error)
	Parse(token string) (*domain.Principal, error)
}
