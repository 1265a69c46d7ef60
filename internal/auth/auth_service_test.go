package auth

import (
	"context"
	"database/sql"
	"testing"

	autherrors "go-orgkit/internal/auth/errors"
	"go-orgkit/internal/tenant"
	"go-orgkit/internal/user"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	user.Repository

	created     []*user.User
	rootSet     []string
	byEmail     map[string]*user.User
	byID        map[string]*user.User
	createErr   error
	setRootErr  error
	findByIDErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: make(map[string]*user.User),
		byID:    make(map[string]*user.User),
	}
}

func (f *fakeUserRepo) WithTx(tx *sql.Tx) user.Repository { return f }

func (f *fakeUserRepo) Create(ctx context.Context, u *user.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, u)
	return nil
}

func (f *fakeUserRepo) SetTenantRoot(ctx context.Context, userID string) error {
	if f.setRootErr != nil {
		return f.setRootErr
	}
	f.rootSet = append(f.rootSet, userID)
	return nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (*user.User, error) {
	if f.findByIDErr != nil {
		return nil, f.findByIDErr
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func newTestService(t *testing.T, repo user.Repository) (Service, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewService(db, repo), mock
}

func TestRegister_CreatesTenantRootCeo(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	repo := newFakeUserRepo()
	svc, mock := newTestService(t, repo)

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, pair, err := svc.Register(context.Background(), RegisterRequest{
		Name:        "Alice",
		CompanyName: "Acme",
		PhoneNumber: "0812345678",
		Email:       "alice@acme.test",
		Password:    "supersecret",
	})
	require.NoError(t, err)

	require.Len(t, repo.created, 1)
	created := repo.created[0]
	assert.Equal(t, tenant.RoleCeo, created.Role)
	assert.NotEqual(t, "supersecret", created.Password, "password must be hashed")

	require.Len(t, repo.rootSet, 1)
	assert.Equal(t, created.ID.String(), repo.rootSet[0])

	assert.Equal(t, created.ID.String(), resp.CeoID, "ceo is their own tenant root")
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegister_RollsBackWhenRootUpdateFails(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	repo := newFakeUserRepo()
	repo.setRootErr = assert.AnError
	svc, mock := newTestService(t, repo)

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, _, err := svc.Register(context.Background(), RegisterRequest{
		Name:        "Alice",
		CompanyName: "Acme",
		PhoneNumber: "0812345678",
		Email:       "alice@acme.test",
		Password:    "supersecret",
	})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogin_Success(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	hashed, err := bcrypt.GenerateFromPassword([]byte("supersecret"), bcrypt.MinCost)
	require.NoError(t, err)

	id := uuid.New()
	ceoID := uuid.New()
	repo := newFakeUserRepo()
	repo.byEmail["bob@acme.test"] = &user.User{
		ID:       id,
		CeoID:    &ceoID,
		Name:     "Bob",
		Email:    "bob@acme.test",
		Password: string(hashed),
		Role:     tenant.RoleManajer,
	}
	svc, _ := newTestService(t, repo)

	resp, pair, err := svc.Login(context.Background(), LoginRequest{
		Email:    "bob@acme.test",
		Password: "supersecret",
	})
	require.NoError(t, err)
	assert.Equal(t, tenant.RoleManajer, resp.Role)

	token, err := jwt.Parse(pair.AccessToken, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, id.String(), claims["user_id"])
	assert.Equal(t, ceoID.String(), claims["ceo_id"])
	assert.Equal(t, tenant.RoleManajer, claims["role"])
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	hashed, err := bcrypt.GenerateFromPassword([]byte("supersecret"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := newFakeUserRepo()
	repo.byEmail["bob@acme.test"] = &user.User{
		ID:       uuid.New(),
		Email:    "bob@acme.test",
		Password: string(hashed),
		Role:     tenant.RoleStaff,
	}
	svc, _ := newTestService(t, repo)

	_, _, err = svc.Login(context.Background(), LoginRequest{
		Email:    "bob@acme.test",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	svc, _ := newTestService(t, newFakeUserRepo())

	_, _, err := svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@acme.test",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
}

func TestLogin_UnscopedMemberCannotGetToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	hashed, err := bcrypt.GenerateFromPassword([]byte("supersecret"), bcrypt.MinCost)
	require.NoError(t, err)

	// Staff tanpa ceo_id: data korup, token tidak boleh terbit.
	repo := newFakeUserRepo()
	repo.byEmail["orphan@acme.test"] = &user.User{
		ID:       uuid.New(),
		Email:    "orphan@acme.test",
		Password: string(hashed),
		Role:     tenant.RoleStaff,
	}
	svc, _ := newTestService(t, repo)

	_, _, err = svc.Login(context.Background(), LoginRequest{
		Email:    "orphan@acme.test",
		Password: "supersecret",
	})
	assert.ErrorIs(t, err, tenant.ErrUnscopedPrincipal)
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	id := uuid.New()
	ceoID := uuid.New()
	repo := newFakeUserRepo()
	repo.byID[id.String()] = &user.User{ID: id, CeoID: &ceoID, Role: tenant.RoleCeo}
	svc, _ := newTestService(t, repo)

	pair, err := svc.(*service).issueTokens(repo.byID[id.String()])
	require.NoError(t, err)

	// Access token tidak punya typ=refresh, harus ditolak.
	_, err = svc.Refresh(context.Background(), pair.AccessToken)
	assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)

	_, err = svc.Refresh(context.Background(), pair.RefreshToken)
	assert.NoError(t, err)
}
