package repositories

import (
	"ClassFeed/models"
	"context"
)

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (models.User, error)
}
