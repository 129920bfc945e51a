package services

import (
	"github.com/kolade-dev/filingdesk/internal/domain"
	"github.com/kolade-dev/filingdesk/internal/models"
)

// Authorize allows an operation only when the permission is explicitly in the
// principal's set. Role grants nothing by itself; an Admin without the token
// is denied like anyone else.
func Authorize(user models.User, permission string) error {
	if user.HasPermission(permission) {
		return nil
	}
	return domain.ErrForbidden
}
