package repositories

import (
	"errors"

	"blog-platform/models"

	"gorm.io/gorm"
)

// storeError converts a gorm error into the model error kinds. Anything that
// is neither a missing row nor a duplicate key is reported as Internal.
func storeError(op, resource string, id uint, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return models.NotFound(resource, id)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &models.ErrorConflict{Resource: resource, Message: resource + " already exists"}
	default:
		return models.Internal(op, err)
	}
}
