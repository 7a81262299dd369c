package service

import (
	"context"
	"errors"

	"github.com/corrida-app/identity/internal/identity/domain"
	"github.com/corrida-app/identity/internal/identity/store"
	"github.com/corrida-app/identity/pkg/slogx"
)

// UserService covers profile reads and self-service mutations. Role and
// status transitions that require administrative privilege live here too;
// the privilege check itself is enforced at the HTTP boundary.
type UserService struct {
	Store     store.Store
	Principal *Principal
}

// Profile is the caller-facing view of their own record.
type Profile struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

// Me returns the authenticated caller's profile.
func (s *UserService) Me(ctx context.Context) (Profile, error) {
	user, err := s.Principal.CurrentUser(ctx)
	if err != nil {
		return Profile{}, err
	}
	return Profile{
		Name:        user.Name,
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
	}, nil
}

// Update replaces the caller's display name and, when phone is non-empty,
// their phone number. An empty phone leaves the stored number untouched.
func (s *UserService) Update(ctx context.Context, name, phone string) (UserSummary, error) {
	user, err := s.Principal.CurrentUser(ctx)
	if err != nil {
		return UserSummary{}, err
	}

	if err := s.Store.Users().UpdateProfile(ctx, user.ID, name, phone); err != nil {
		return UserSummary{}, err
	}

	slogx.FromContext(ctx).Info("profile updated", "user_id", user.ID)
	return UserSummary{ID: user.ID, Name: name, Email: user.Email}, nil
}

// AddPhoneNumber sets the phone number of the user with the given id.
func (s *UserService) AddPhoneNumber(ctx context.Context, userID, phone string) error {
	if _, err := s.Store.Users().GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.Store.Users().SetPhoneNumber(ctx, userID, phone)
}

// SetStatus moves the caller's own account between ACTIVE and BLOCKED. The
// HTTP layer only exposes those two transitions; PENDING_APPROVAL is never
// re-entered once left.
func (s *UserService) SetStatus(ctx context.Context, status domain.Status) error {
	user, err := s.Principal.CurrentUser(ctx)
	if err != nil {
		return err
	}

	if err := s.Store.Users().SetStatus(ctx, user.ID, status); err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("status changed", "user_id", user.ID, "status", string(status))
	return nil
}

// ListAll returns every user record. Admin-only at the HTTP boundary.
func (s *UserService) ListAll(ctx context.Context) ([]domain.User, error) {
	return s.Store.Users().ListUsers(ctx)
}
