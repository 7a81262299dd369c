package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/corrida-app/identity/internal/identity/domain"
	"github.com/corrida-app/identity/pkg/httpx"
)

func withSubject(ctx context.Context, cpf string) context.Context {
	return context.WithValue(ctx, httpx.CtxKeySubject, cpf)
}

func newTestUsers(t *testing.T) (*AuthService, *UserService) {
	t.Helper()

	auth, st := newTestAuth(t)
	users := &UserService{
		Store:     st,
		Principal: &Principal{Store: st},
	}
	return auth, users
}

func TestMe(t *testing.T) {
	ctx := context.Background()
	auth, users := newTestUsers(t)

	_, err := auth.RegisterPassenger(ctx, passengerRequest("222.222.222-22"))
	require.NoError(t, err)

	profile, err := users.Me(withSubject(ctx, "222.222.222-22"))
	require.NoError(t, err)
	require.Equal(t, "Ana Passenger", profile.Name)
	require.Equal(t, "ana@example.com", profile.Email)
	require.Empty(t, profile.PhoneNumber)
}

func TestMeUnauthenticated(t *testing.T) {
	_, users := newTestUsers(t)

	_, err := users.Me(context.Background())
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestMeDanglingSubject(t *testing.T) {
	_, users := newTestUsers(t)

	_, err := users.Me(withSubject(context.Background(), "000.000.000-00"))
	require.ErrorIs(t, err, ErrInvalidState)
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	auth, users := newTestUsers(t)

	_, err := auth.RegisterPassenger(ctx, passengerRequest("222.222.222-22"))
	require.NoError(t, err)

	authed := withSubject(ctx, "222.222.222-22")

	summary, err := users.Update(authed, "Ana Renamed", "+55 11 91234-5678")
	require.NoError(t, err)
	require.Equal(t, "Ana Renamed", summary.Name)

	profile, err := users.Me(authed)
	require.NoError(t, err)
	require.Equal(t, "Ana Renamed", profile.Name)
	require.Equal(t, "+55 11 91234-5678", profile.PhoneNumber)

	// An empty phone updates the name only.
	_, err = users.Update(authed, "Ana Again", "")
	require.NoError(t, err)

	profile, err = users.Me(authed)
	require.NoError(t, err)
	require.Equal(t, "Ana Again", profile.Name)
	require.Equal(t, "+55 11 91234-5678", profile.PhoneNumber)
}

func TestAddPhoneNumber(t *testing.T) {
	ctx := context.Background()
	auth, users := newTestUsers(t)

	summary, err := auth.RegisterPassenger(ctx, passengerRequest("222.222.222-22"))
	require.NoError(t, err)

	require.NoError(t, users.AddPhoneNumber(ctx, summary.ID, "+55 21 99999-0000"))

	profile, err := users.Me(withSubject(ctx, "222.222.222-22"))
	require.NoError(t, err)
	require.Equal(t, "+55 21 99999-0000", profile.PhoneNumber)

	require.ErrorIs(t, users.AddPhoneNumber(ctx, "missing-id", "+55 0"), ErrNotFound)
}

func TestSetStatus(t *testing.T) {
	ctx := context.Background()
	auth, users := newTestUsers(t)

	_, err := auth.RegisterPassenger(ctx, passengerRequest("222.222.222-22"))
	require.NoError(t, err)

	authed := withSubject(ctx, "222.222.222-22")

	require.NoError(t, users.SetStatus(authed, domain.StatusBlocked))
	_, err = auth.Login(ctx, "222.222.222-22", "s3cret-pass")
	require.ErrorIs(t, err, ErrAccountNotActive)

	require.NoError(t, users.SetStatus(authed, domain.StatusActive))
	_, err = auth.Login(ctx, "222.222.222-22", "s3cret-pass")
	require.NoError(t, err)
}

func TestListAll(t *testing.T) {
	ctx := context.Background()
	auth, users := newTestUsers(t)

	_, err := auth.RegisterPassenger(ctx, passengerRequest("222.222.222-22"))
	require.NoError(t, err)

	second := passengerRequest("333.333.333-33")
	second.Email = "other@example.com"
	_, err = auth.RegisterDriver(ctx, second)
	require.NoError(t, err)

	all, err := users.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
}
