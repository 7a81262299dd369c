package service

import (
	"context"
	"errors"

	"github.com/corrida-app/identity/internal/identity/domain"
	"github.com/corrida-app/identity/internal/identity/store"
	"github.com/corrida-app/identity/pkg/httpx"
	"github.com/corrida-app/identity/pkg/slogx"
)

// Principal resolves the authenticated caller from request context. The
// authentication middleware only proves the token is valid; resolving the
// subject back to a live user record happens here, on demand.
type Principal struct {
	Store store.Store
}

// CurrentCPF returns the verified subject attached to the context.
func (p *Principal) CurrentCPF(ctx context.Context) (string, error) {
	cpf := httpx.SubjectFromCtx(ctx)
	if cpf == "" {
		return "", ErrUnauthenticated
	}
	return cpf, nil
}

// CurrentUser loads the full user record for the verified subject. A subject
// that passed token verification but no longer exists in the store is a
// dangling credential, reported as ErrInvalidState rather than ErrNotFound so
// it surfaces as a server fault instead of a routine miss.
func (p *Principal) CurrentUser(ctx context.Context) (domain.User, error) {
	cpf, err := p.CurrentCPF(ctx)
	if err != nil {
		return domain.User{}, err
	}

	user, err := p.Store.Users().GetUserByCPF(ctx, cpf)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			slogx.FromContext(ctx).Error("verified subject has no user record")
			return domain.User{}, ErrInvalidState
		}
		return domain.User{}, err
	}
	return user, nil
}
