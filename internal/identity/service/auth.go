package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/corrida-app/identity/internal/identity/domain"
	"github.com/corrida-app/identity/internal/identity/storage"
	"github.com/corrida-app/identity/internal/identity/store"
	"github.com/corrida-app/identity/pkg/cryptox"
	"github.com/corrida-app/identity/pkg/idx"
	"github.com/corrida-app/identity/pkg/jwtx"
	"github.com/corrida-app/identity/pkg/slogx"
)

// AuthService is the sole writer of identity and role state: registration,
// login and role grants all go through here. Every multi-step mutation runs
// inside a store transaction so a user record and its wallet commit together.
type AuthService struct {
	Store    store.Store
	Codec    *jwtx.Codec
	Uploader storage.Uploader
}

// RegisterRequest is the common registration input shared by all four
// role-specific registration operations.
type RegisterRequest struct {
	Name     string
	Email    string
	CPF      string
	Password string
	ImageURL string
}

// UserSummary is the minimal public projection returned after registration.
// The password hash and document URLs are deliberately absent.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// LoginResult is what a successful login returns to the caller.
type LoginResult struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Token       string `json:"token"`
	PhoneNumber string `json:"phoneNumber"`
}

// Upload is a document handed to the external storage collaborator.
type Upload struct {
	Filename string
	Data     []byte
}

// Login verifies credentials for the given CPF and mints a session token.
// The token's role claim carries the user's full role set.
func (s *AuthService) Login(ctx context.Context, cpf, password string) (LoginResult, error) {
	log := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByCPF(ctx, cpf)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Info("login failed, unknown cpf")
			return LoginResult{}, ErrNotFound
		}
		return LoginResult{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			log.Info("login failed, password mismatch", "user_id", user.ID)
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, fmt.Errorf("verify password: %w", err)
	}

	if user.Status != domain.StatusActive {
		log.Info("login blocked, account not active", "user_id", user.ID, "status", string(user.Status))
		return LoginResult{}, ErrAccountNotActive
	}

	token, err := s.Codec.Mint(user.CPF, user.Roles.Strings())
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{
		Name:        user.Name,
		Email:       user.Email,
		Token:       token,
		PhoneNumber: user.PhoneNumber,
	}, nil
}

// RegisterPassenger creates an ACTIVE user holding PASSENGER and its wallet.
func (s *AuthService) RegisterPassenger(ctx context.Context, req RegisterRequest) (UserSummary, error) {
	return s.register(ctx, req, domain.RolePassenger, domain.StatusActive)
}

// RegisterAdmin creates an ACTIVE user holding ADMIN and a COMPANY wallet.
// Admin gating happens at the HTTP boundary.
func (s *AuthService) RegisterAdmin(ctx context.Context, req RegisterRequest) (UserSummary, error) {
	return s.register(ctx, req, domain.RoleAdmin, domain.StatusActive)
}

// RegisterDriver creates a PENDING_APPROVAL user holding DRIVER and its
// wallet. Drivers cannot log in until their status is set ACTIVE.
func (s *AuthService) RegisterDriver(ctx context.Context, req RegisterRequest) (UserSummary, error) {
	return s.register(ctx, req, domain.RoleDriver, domain.StatusPendingApproval)
}

// RegisterInfluencer creates an ACTIVE user holding INFLUENCER and its wallet.
func (s *AuthService) RegisterInfluencer(ctx context.Context, req RegisterRequest) (UserSummary, error) {
	return s.register(ctx, req, domain.RoleInfluencer, domain.StatusActive)
}

func (s *AuthService) register(
	ctx context.Context,
	req RegisterRequest,
	role domain.Role,
	status domain.Status,
) (UserSummary, error) {
	if err := s.checkCPF(ctx, req.CPF); err != nil {
		return UserSummary{}, err
	}
	if req.Email != "" {
		if err := s.checkEmail(ctx, req.Email); err != nil {
			return UserSummary{}, err
		}
	}

	hash, err := cryptox.HashPassword(req.Password)
	if err != nil {
		return UserSummary{}, fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		ID:           idx.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		CPF:          req.CPF,
		PasswordHash: hash,
		ImageURL:     req.ImageURL,
		Roles:        domain.RoleSet{role},
		Status:       status,
		Balance:      0,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, user); err != nil {
			// The application-level checks above race against concurrent
			// registrations; the store's unique indexes are the backstop.
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrUserExists
			}
			return err
		}
		return createWallet(ctx, tx, user.ID, domain.WalletTypeForRole(role))
	})
	if err != nil {
		return UserSummary{}, err
	}

	slogx.FromContext(ctx).Info("user registered",
		"user_id", user.ID, "role", string(role), "status", string(status))

	return UserSummary{ID: user.ID, Name: user.Name, Email: user.Email}, nil
}

// AddRoleDriver grants DRIVER to the calling user after uploading both
// required documents. Unlike driver registration this path leaves the user's
// status untouched: the grant takes effect immediately with no approval gate.
// Keep the two paths distinct until product decides which is intended.
func (s *AuthService) AddRoleDriver(ctx context.Context, caller domain.User, cnh, carDocument Upload) error {
	if caller.Roles.Has(domain.RoleDriver) {
		return ErrRoleAlreadyHeld
	}

	// TODO: validate the documents before accepting them
	cnhURL, err := s.Uploader.Upload(ctx, cnh.Filename, cnh.Data)
	if err != nil {
		return fmt.Errorf("upload cnh document: %w", err)
	}
	carURL, err := s.Uploader.Upload(ctx, carDocument.Filename, carDocument.Data)
	if err != nil {
		return fmt.Errorf("upload car document: %w", err)
	}

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().SetDriverDocuments(ctx, caller.ID, cnhURL, carURL); err != nil {
			return err
		}
		if err := tx.Users().AddRole(ctx, caller.ID, domain.RoleDriver); err != nil {
			return err
		}
		return createWallet(ctx, tx, caller.ID, domain.WalletDriver)
	})
}

// AddRoleInfluencer grants INFLUENCER to the user with the given id.
func (s *AuthService) AddRoleInfluencer(ctx context.Context, userID string) error {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.addRole(ctx, user, domain.RoleInfluencer)
}

// AddRoleAdmin grants ADMIN to the user with the given CPF.
func (s *AuthService) AddRoleAdmin(ctx context.Context, cpf string) error {
	user, err := s.Store.Users().GetUserByCPF(ctx, cpf)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.addRole(ctx, user, domain.RoleAdmin)
}

func (s *AuthService) addRole(ctx context.Context, user domain.User, role domain.Role) error {
	if user.Roles.Has(role) {
		return ErrRoleAlreadyHeld
	}

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().AddRole(ctx, user.ID, role); err != nil {
			return err
		}
		return createWallet(ctx, tx, user.ID, domain.WalletTypeForRole(role))
	})
}

// createWallet creates the wallet for a (user, type) pair if it does not
// exist yet. The lookup avoids burning ULIDs on the common repeat case; the
// keyed upsert in the store makes the insert itself race-safe.
func createWallet(ctx context.Context, tx store.Tx, userID string, t domain.WalletType) error {
	_, err := tx.Wallets().GetWallet(ctx, userID, t)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	return tx.Wallets().CreateWallet(ctx, domain.Wallet{
		ID:      idx.New().String(),
		UserID:  userID,
		Type:    t,
		Balance: 0,
	})
}

func (s *AuthService) checkCPF(ctx context.Context, cpf string) error {
	_, err := s.Store.Users().GetUserByCPF(ctx, cpf)
	if err == nil {
		return ErrUserExists
	}
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	return err
}

func (s *AuthService) checkEmail(ctx context.Context, email string) error {
	_, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err == nil {
		return ErrUserExists
	}
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	return err
}
