package mapping

import (
	"fmt"

	"github.com/SscSPs/ops_tracker/internal/apperrors"
	"github.com/SscSPs/ops_tracker/internal/core/domain"
	"github.com/SscSPs/ops_tracker/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:        d.UserID,
		Name:          d.Name,
		Role:          string(d.Role),
		AvatarURL:     d.AvatarURL,
		ContactHandle: d.ContactHandle,
		CreatedAt:     d.CreatedAt.UTC(),
	}
}

// ToDomainUser coerces a model User into a domain User
func ToDomainUser(m models.User) (domain.User, error) {
	if err := requireID("user", m.UserID); err != nil {
		return domain.User{}, err
	}
	role := domain.UserRole(m.Role)
	if !role.IsValid() {
		return domain.User{}, fmt.Errorf("%w: user %s has unknown role %q", apperrors.ErrValidation, m.UserID, m.Role)
	}
	return domain.User{
		UserID:        m.UserID,
		Name:          m.Name,
		Role:          role,
		AvatarURL:     m.AvatarURL,
		ContactHandle: m.ContactHandle,
		CreatedAt:     m.CreatedAt.UTC(),
	}, nil
}
