package services

import (
	"github.com/AlexBrence/TODO-list-app/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// AuthorizeTaskAccess is the ownership policy applied before every
// single-task read or mutation. A task owned by someone else fails with the
// same error as a missing row, so probing another user's ids reveals nothing.
func AuthorizeTaskAccess(userID uuid.UUID, task models.Task) error {
	if task.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	return nil
}
