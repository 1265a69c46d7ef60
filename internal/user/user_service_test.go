package user

import (
	"context"
	"database/sql"
	"testing"

	"go-orgkit/internal/tenant"
	usererrors "go-orgkit/internal/user/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeUserStore struct {
	Repository

	byID map[string]*User

	tenantDeleted []string
	refsCleared   []string
	softDeleted   []string
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byID: make(map[string]*User)}
}

func (f *fakeUserStore) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeUserStore) FindByIDAndTenant(ctx context.Context, ceoID, id string) (*User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeUserStore) DeleteTenantData(ctx context.Context, ceoID string) error {
	f.tenantDeleted = append(f.tenantDeleted, ceoID)
	return nil
}

func (f *fakeUserStore) ClearUserRefs(ctx context.Context, userID string) error {
	f.refsCleared = append(f.refsCleared, userID)
	return nil
}

func (f *fakeUserStore) Delete(ctx context.Context, ceoID, id string) error {
	f.softDeleted = append(f.softDeleted, id)
	return nil
}

func ceoUser() *User {
	id := uuid.New()
	self := id
	return &User{ID: id, CeoID: &self, Role: tenant.RoleCeo}
}

func memberUser(ceoID uuid.UUID) *User {
	return &User{ID: uuid.New(), CeoID: &ceoID, Role: tenant.RoleStaff}
}

func TestDelete_TenantRootCascadesWholeOrganization(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	root := ceoUser()
	store := newFakeUserStore()
	store.byID[root.ID.String()] = root

	rdb, rmock := redismock.NewClientMock()
	rmock.ExpectDel(GetUserOptionsKey(root.ID.String())).SetVal(1)

	svc := NewService(db, store, rdb)

	mock.ExpectBegin()
	mock.ExpectCommit()

	p := tenant.Principal{ID: root.ID.String(), Role: tenant.RoleCeo, CEOID: root.ID.String()}
	err = svc.Delete(context.Background(), p, root.ID.String(), root.ID.String())
	require.NoError(t, err)

	assert.Equal(t, []string{root.ID.String()}, store.tenantDeleted)
	assert.Empty(t, store.refsCleared, "root delete must not take the member path")
	assert.Empty(t, store.softDeleted)
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.NoError(t, rmock.ExpectationsWereMet())
}

func TestDelete_MemberSetNullsRefsAndSoftDeletes(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	ceoID := uuid.New()
	member := memberUser(ceoID)
	store := newFakeUserStore()
	store.byID[member.ID.String()] = member

	svc := NewService(db, store, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()

	p := tenant.Principal{ID: ceoID.String(), Role: tenant.RoleCeo, CEOID: ceoID.String()}
	err = svc.Delete(context.Background(), p, ceoID.String(), member.ID.String())
	require.NoError(t, err)

	assert.Equal(t, []string{member.ID.String()}, store.refsCleared)
	assert.Equal(t, []string{member.ID.String()}, store.softDeleted)
	assert.Empty(t, store.tenantDeleted, "member delete must not cascade the tenant")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_OnlyTheCeoThemselvesDeletesTheRoot(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	root := ceoUser()
	store := newFakeUserStore()
	store.byID[root.ID.String()] = root

	svc := NewService(db, store, nil)

	mock.ExpectBegin()
	mock.ExpectRollback()

	director := tenant.Principal{ID: uuid.New().String(), Role: tenant.RoleDirector, CEOID: root.ID.String()}
	err = svc.Delete(context.Background(), director, root.ID.String(), root.ID.String())
	assert.ErrorIs(t, err, usererrors.ErrOnlyCeoDeletesOrg)

	assert.Empty(t, store.tenantDeleted)
	assert.Empty(t, store.softDeleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_UnknownUserIsNotFound(t *testing.T) {
	svc := NewService(nil, newFakeUserStore(), nil)

	p := tenant.Principal{ID: uuid.New().String(), Role: tenant.RoleCeo}
	err := svc.Delete(context.Background(), p, uuid.New().String(), uuid.New().String())
	assert.ErrorIs(t, err, usererrors.ErrUserNotFound)
}

func TestDeleteTenantData_RunsLeafToRootInOneTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	ceoID := uuid.New().String()

	mock.ExpectBegin()
	// Daun dulu, akar (users) paling akhir.
	for _, fragment := range []string{
		"DELETE FROM action_plans",
		"DELETE FROM key_results",
		"DELETE FROM objectives",
		"DELETE FROM company_goals",
		"DELETE FROM bmc_items",
		"DELETE FROM company_visions",
		"DELETE FROM company_missions",
		"DELETE FROM company_core_values",
		"DELETE FROM tasks",
		"DELETE FROM project_members",
		"DELETE FROM projects",
		"DELETE FROM departments",
		"DELETE FROM outbox_events",
		"DELETE FROM users",
	} {
		mock.ExpectExec(fragment).
			WithArgs(ceoID).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)

	repo := NewRepository(nil).WithTx(tx)
	require.NoError(t, repo.DeleteTenantData(context.Background(), ceoID))
	require.NoError(t, tx.Commit())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClearUserRefs_SetNullsThenDropsMemberships(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	userID := uuid.New().String()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE users SET superior_id = NULL").
		WithArgs(userID).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("UPDATE tasks SET assigned_to = NULL").
		WithArgs(userID).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("DELETE FROM project_members").
		WithArgs(userID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)

	repo := NewRepository(nil).WithTx(tx)
	require.NoError(t, repo.ClearUserRefs(context.Background(), userID))
	require.NoError(t, tx.Commit())

	assert.NoError(t, mock.ExpectationsWereMet())
}
