package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/corrida-app/identity/internal/identity/domain"
	"github.com/corrida-app/identity/internal/identity/storage"
	"github.com/corrida-app/identity/internal/identity/store"
	"github.com/corrida-app/identity/internal/identity/store/drivers/sqlite"
	"github.com/corrida-app/identity/pkg/jwtx"
)

func newTestAuth(t *testing.T) (*AuthService, store.Store) {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	auth := &AuthService{
		Store:    st,
		Codec:    jwtx.NewCodec("test-secret-test-secret-12345678", "identity-test", time.Hour),
		Uploader: storage.NewMemory(),
	}
	return auth, st
}

func passengerRequest(cpf string) RegisterRequest {
	return RegisterRequest{
		Name:     "Ana Passenger",
		Email:    "ana@example.com",
		CPF:      cpf,
		Password: "s3cret-pass",
	}
}

func TestRegisterPassengerAndLogin(t *testing.T) {
	ctx := context.Background()
	auth, st := newTestAuth(t)

	summary, err := auth.RegisterPassenger(ctx, passengerRequest("222.222.222-22"))
	require.NoError(t, err)
	require.NotEmpty(t, summary.ID)
	require.Equal(t, "Ana Passenger", summary.Name)
	require.Equal(t, "ana@example.com", summary.Email)

	stored, err := st.Users().GetUserByCPF(ctx, "222.222.222-22")
	require.NoError(t, err)
	require.Equal(t, domain.StatusActive, stored.Status)
	require.True(t, stored.Roles.Has(domain.RolePassenger))
	require.NotEqual(t, "s3cret-pass", stored.PasswordHash)

	wallet, err := st.Wallets().GetWallet(ctx, summary.ID, domain.WalletPassenger)
	require.NoError(t, err)
	require.EqualValues(t, 0, wallet.Balance)

	result, err := auth.Login(ctx, "222.222.222-22", "s3cret-pass")
	require.NoError(t, err)
	require.Equal(t, "Ana Passenger", result.Name)
	require.NotEmpty(t, result.Token)

	require.True(t, auth.Codec.Verify(result.Token).Valid)
	subject, err := auth.Codec.Subject(result.Token)
	require.NoError(t, err)
	require.Equal(t, "222.222.222-22", subject)
	roles, err := auth.Codec.Roles(result.Token)
	require.NoError(t, err)
	require.Equal(t, []string{"PASSENGER"}, roles)
}

func TestRegisterDriverStartsPendingApproval(t *testing.T) {
	ctx := context.Background()
	auth, st := newTestAuth(t)

	req := RegisterRequest{
		Name:     "Bruno Driver",
		CPF:      "111.111.111-11",
		Password: "hash123",
	}
	summary, err := auth.RegisterDriver(ctx, req)
	require.NoError(t, err)

	stored, err := st.Users().GetUserByID(ctx, summary.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusPendingApproval, stored.Status)
	require.True(t, stored.Roles.Has(domain.RoleDriver))

	wallet, err := st.Wallets().GetWallet(ctx, summary.ID, domain.WalletDriver)
	require.NoError(t, err)
	require.EqualValues(t, 0, wallet.Balance)

	// Drivers cannot log in until an admin activates the account.
	_, err = auth.Login(ctx, "111.111.111-11", "hash123")
	require.ErrorIs(t, err, ErrAccountNotActive)
}

func TestRegisterAdminGetsCompanyWallet(t *testing.T) {
	ctx := context.Background()
	auth, st := newTestAuth(t)

	summary, err := auth.RegisterAdmin(ctx, RegisterRequest{
		Name:     "Root Admin",
		CPF:      "999.999.999-99",
		Password: "admin-pass",
	})
	require.NoError(t, err)

	_, err = st.Wallets().GetWallet(ctx, summary.ID, domain.WalletCompany)
	require.NoError(t, err)
}

func TestRegisterDuplicateCPF(t *testing.T) {
	ctx := context.Background()
	auth, _ := newTestAuth(t)

	_, err := auth.RegisterPassenger(ctx, passengerRequest("333.333.333-33"))
	require.NoError(t, err)

	dup := passengerRequest("333.333.333-33")
	dup.Email = "other@example.com"
	_, err = auth.RegisterPassenger(ctx, dup)
	require.ErrorIs(t, err, ErrUserExists)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	auth, _ := newTestAuth(t)

	_, err := auth.RegisterPassenger(ctx, passengerRequest("444.444.444-44"))
	require.NoError(t, err)

	dup := passengerRequest("555.555.555-55")
	_, err = auth.RegisterInfluencer(ctx, dup)
	require.ErrorIs(t, err, ErrUserExists)
}

func TestRegisterWithoutEmail(t *testing.T) {
	ctx := context.Background()
	auth, _ := newTestAuth(t)

	first := passengerRequest("666.666.666-66")
	first.Email = ""
	_, err := auth.RegisterPassenger(ctx, first)
	require.NoError(t, err)

	second := passengerRequest("777.777.777-77")
	second.Email = ""
	_, err = auth.RegisterPassenger(ctx, second)
	require.NoError(t, err)
}

func TestLoginFailures(t *testing.T) {
	ctx := context.Background()
	auth, st := newTestAuth(t)

	summary, err := auth.RegisterPassenger(ctx, passengerRequest("222.222.222-22"))
	require.NoError(t, err)

	_, err = auth.Login(ctx, "000.000.000-00", "whatever")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = auth.Login(ctx, "222.222.222-22", "wrong-pass")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	require.NoError(t, st.Users().SetStatus(ctx, summary.ID, domain.StatusBlocked))
	_, err = auth.Login(ctx, "222.222.222-22", "s3cret-pass")
	require.ErrorIs(t, err, ErrAccountNotActive)
}

func TestAddRoleDriver(t *testing.T) {
	ctx := context.Background()
	auth, st := newTestAuth(t)

	summary, err := auth.RegisterPassenger(ctx, passengerRequest("222.222.222-22"))
	require.NoError(t, err)
	caller, err := st.Users().GetUserByID(ctx, summary.ID)
	require.NoError(t, err)

	err = auth.AddRoleDriver(ctx, caller,
		Upload{Filename: "cnh.jpg", Data: []byte("cnh bytes")},
		Upload{Filename: "car.pdf", Data: []byte("car bytes")},
	)
	require.NoError(t, err)

	updated, err := st.Users().GetUserByID(ctx, summary.ID)
	require.NoError(t, err)
	require.True(t, updated.Roles.Has(domain.RoleDriver))
	require.True(t, updated.Roles.Has(domain.RolePassenger))
	require.NotEmpty(t, updated.CNHImageURL)
	require.NotEmpty(t, updated.CarDocumentImageURL)

	// This grant path does not gate on approval.
	require.Equal(t, domain.StatusActive, updated.Status)

	_, err = st.Wallets().GetWallet(ctx, summary.ID, domain.WalletDriver)
	require.NoError(t, err)

	err = auth.AddRoleDriver(ctx, updated,
		Upload{Filename: "cnh.jpg", Data: nil},
		Upload{Filename: "car.pdf", Data: nil},
	)
	require.ErrorIs(t, err, ErrRoleAlreadyHeld)
}

func TestAddRoleInfluencer(t *testing.T) {
	ctx := context.Background()
	auth, st := newTestAuth(t)

	summary, err := auth.RegisterPassenger(ctx, passengerRequest("222.222.222-22"))
	require.NoError(t, err)

	require.NoError(t, auth.AddRoleInfluencer(ctx, summary.ID))

	updated, err := st.Users().GetUserByID(ctx, summary.ID)
	require.NoError(t, err)
	require.True(t, updated.Roles.Has(domain.RoleInfluencer))

	_, err = st.Wallets().GetWallet(ctx, summary.ID, domain.WalletInfluencer)
	require.NoError(t, err)

	require.ErrorIs(t, auth.AddRoleInfluencer(ctx, summary.ID), ErrRoleAlreadyHeld)
	require.ErrorIs(t, auth.AddRoleInfluencer(ctx, "missing-id"), ErrNotFound)
}

func TestAddRoleAdmin(t *testing.T) {
	ctx := context.Background()
	auth, st := newTestAuth(t)

	summary, err := auth.RegisterPassenger(ctx, passengerRequest("222.222.222-22"))
	require.NoError(t, err)

	require.NoError(t, auth.AddRoleAdmin(ctx, "222.222.222-22"))

	updated, err := st.Users().GetUserByID(ctx, summary.ID)
	require.NoError(t, err)
	require.True(t, updated.Roles.Has(domain.RoleAdmin))

	_, err = st.Wallets().GetWallet(ctx, summary.ID, domain.WalletCompany)
	require.NoError(t, err)

	require.ErrorIs(t, auth.AddRoleAdmin(ctx, "222.222.222-22"), ErrRoleAlreadyHeld)
	require.ErrorIs(t, auth.AddRoleAdmin(ctx, "000.000.000-00"), ErrNotFound)
}

func TestLoginTokenCarriesFullRoleSet(t *testing.T) {
	ctx := context.Background()
	auth, _ := newTestAuth(t)

	_, err := auth.RegisterPassenger(ctx, passengerRequest("222.222.222-22"))
	require.NoError(t, err)
	require.NoError(t, auth.AddRoleAdmin(ctx, "222.222.222-22"))

	result, err := auth.Login(ctx, "222.222.222-22", "s3cret-pass")
	require.NoError(t, err)

	roles, err := auth.Codec.Roles(result.Token)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"PASSENGER", "ADMIN"}, roles)
}
