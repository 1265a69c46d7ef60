package taskboard

import (
	"context"
	"database/sql"
	"testing"

	"go-orgkit/internal/events"
	taskboarderrors "go-orgkit/internal/taskboard/errors"
	"go-orgkit/internal/tenant"
	"go-orgkit/internal/user"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeBoardRepo struct {
	Repository

	projects      map[string]*Project
	memberships   map[string]map[string]bool // projectID -> userID -> true
	labelsUpdated map[string]Labels
	created       []*Project
	membersAdded  []*ProjectMember
	tenantList    []Project
	memberList    []Project
	report        []PerformanceRow
}

func newFakeBoardRepo() *fakeBoardRepo {
	return &fakeBoardRepo{
		projects:      make(map[string]*Project),
		memberships:   make(map[string]map[string]bool),
		labelsUpdated: make(map[string]Labels),
	}
}

func (f *fakeBoardRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeBoardRepo) CreateProject(ctx context.Context, p *Project) error {
	f.created = append(f.created, p)
	f.projects[p.ID.String()] = p
	return nil
}

func (f *fakeBoardRepo) AddMember(ctx context.Context, m *ProjectMember) error {
	f.membersAdded = append(f.membersAdded, m)
	return nil
}

func (f *fakeBoardRepo) FindProjectsByTenant(ctx context.Context, ceoID string) ([]Project, error) {
	return f.tenantList, nil
}

func (f *fakeBoardRepo) FindProjectsByMember(ctx context.Context, ceoID, userID string) ([]Project, error) {
	return f.memberList, nil
}

func (f *fakeBoardRepo) FindProjectByIDAndTenant(ctx context.Context, ceoID, id string) (*Project, error) {
	p, ok := f.projects[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (f *fakeBoardRepo) IsMember(ctx context.Context, projectID, userID string) (bool, error) {
	return f.memberships[projectID][userID], nil
}

func (f *fakeBoardRepo) UpdateLabels(ctx context.Context, projectID string, labels Labels) error {
	f.labelsUpdated[projectID] = labels
	f.projects[projectID].Labels = labels
	return nil
}

func (f *fakeBoardRepo) FindTasksByProject(ctx context.Context, projectID string) ([]Task, error) {
	return nil, nil
}

func (f *fakeBoardRepo) PerformanceReport(ctx context.Context, ceoID string, month, year int) ([]PerformanceRow, error) {
	return f.report, nil
}

type fakeTenantUsers struct {
	user.Repository

	known map[string]bool
}

func (f *fakeTenantUsers) FindByIDAndTenant(ctx context.Context, ceoID, id string) (*user.User, error) {
	if !f.known[id] {
		return nil, gorm.ErrRecordNotFound
	}
	uid := uuid.MustParse(id)
	return &user.User{ID: uid}, nil
}

type fakeEventQueue struct {
	events.Repository

	queued []string
}

func (f *fakeEventQueue) WithTx(tx *sql.Tx) events.Repository { return f }

func (f *fakeEventQueue) Queue(ctx context.Context, ceoID uuid.UUID, topic, eventType string, payload any) error {
	f.queued = append(f.queued, eventType)
	return nil
}

func admin(ceoID string) tenant.Principal {
	return tenant.Principal{ID: uuid.New().String(), Role: tenant.RoleManajer, CEOID: ceoID}
}

func TestCreateProject_AtomicWithMembersAndEvent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	ceoID := uuid.New().String()
	memberA := uuid.New().String()
	memberB := uuid.New().String()

	repo := newFakeBoardRepo()
	users := &fakeTenantUsers{known: map[string]bool{memberA: true, memberB: true}}
	queue := &fakeEventQueue{}
	svc := NewService(db, repo, users, queue)

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.CreateProject(context.Background(), ceoID, CreateProjectRequest{
		Name:    "Website Revamp",
		Members: []string{memberA, memberB},
	})
	require.NoError(t, err)

	assert.Equal(t, ProjectStatusActive, resp.Status)
	assert.Equal(t, DefaultLabels, resp.Labels)
	require.Len(t, repo.membersAdded, 2)
	assert.Equal(t, []string{events.TypeProjectCreated}, queue.queued)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateProject_RejectsCrossTenantMember(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := newFakeBoardRepo()
	users := &fakeTenantUsers{known: map[string]bool{}}
	svc := NewService(db, repo, users, nil)

	_, err = svc.CreateProject(context.Background(), uuid.New().String(), CreateProjectRequest{
		Name:    "X",
		Members: []string{uuid.New().String()},
	})
	assert.ErrorIs(t, err, taskboarderrors.ErrMemberNotInTenant)
	assert.Empty(t, repo.created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddLabel_IsIdempotent(t *testing.T) {
	ceoID := uuid.New().String()
	project := &Project{
		ID:     uuid.New(),
		Labels: Labels{"Backend", "Frontend"},
	}

	repo := newFakeBoardRepo()
	repo.projects[project.ID.String()] = project

	svc := NewService(nil, repo, nil, nil)
	p := admin(ceoID)

	// Label yang sudah ada: tidak ada update yang terjadi.
	labels, err := svc.AddLabel(context.Background(), p, ceoID, project.ID.String(), LabelRequest{Label: "Backend"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Backend", "Frontend"}, labels)
	assert.Empty(t, repo.labelsUpdated)

	// Label baru ditambah sekali.
	labels, err = svc.AddLabel(context.Background(), p, ceoID, project.ID.String(), LabelRequest{Label: "QA"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Backend", "Frontend", "QA"}, labels)
}

func TestRemoveLabel_FiltersAllMatches(t *testing.T) {
	ceoID := uuid.New().String()
	project := &Project{
		ID:     uuid.New(),
		Labels: Labels{"Backend", "QA", "Frontend"},
	}

	repo := newFakeBoardRepo()
	repo.projects[project.ID.String()] = project

	svc := NewService(nil, repo, nil, nil)

	labels, err := svc.RemoveLabel(context.Background(), admin(ceoID), ceoID, project.ID.String(), LabelRequest{Label: "QA"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Backend", "Frontend"}, labels)
}

func TestGetProject_NonMemberStaffDenied(t *testing.T) {
	ceoID := uuid.New().String()
	project := &Project{ID: uuid.New()}

	repo := newFakeBoardRepo()
	repo.projects[project.ID.String()] = project

	svc := NewService(nil, repo, nil, nil)

	staff := tenant.Principal{ID: uuid.New().String(), Role: tenant.RoleStaff, CEOID: ceoID}
	_, err := svc.GetProject(context.Background(), staff, ceoID, project.ID.String())
	assert.ErrorIs(t, err, taskboarderrors.ErrNotProjectMember)
}

func TestGetProject_MemberStaffAllowed(t *testing.T) {
	ceoID := uuid.New().String()
	project := &Project{ID: uuid.New()}
	staffID := uuid.New().String()

	repo := newFakeBoardRepo()
	repo.projects[project.ID.String()] = project
	repo.memberships[project.ID.String()] = map[string]bool{staffID: true}

	svc := NewService(nil, repo, nil, nil)

	staff := tenant.Principal{ID: staffID, Role: tenant.RoleStaff, CEOID: ceoID}
	_, err := svc.GetProject(context.Background(), staff, ceoID, project.ID.String())
	assert.NoError(t, err)
}

func TestListProjects_RoleDecidesScope(t *testing.T) {
	ceoID := uuid.New().String()

	repo := newFakeBoardRepo()
	repo.tenantList = []Project{{ID: uuid.New()}, {ID: uuid.New()}}
	repo.memberList = []Project{{ID: uuid.New()}}

	svc := NewService(nil, repo, nil, nil)

	all, err := svc.ListProjects(context.Background(), admin(ceoID), ceoID)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	staff := tenant.Principal{ID: uuid.New().String(), Role: tenant.RoleStaff, CEOID: ceoID}
	mine, err := svc.ListProjects(context.Background(), staff, ceoID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestGetPerformanceReport_ReturnsBuckets(t *testing.T) {
	ceoID := uuid.New().String()

	repo := newFakeBoardRepo()
	repo.report = []PerformanceRow{
		{Name: "Alice", Points: 21},
		{Name: "Unassigned", Points: 8},
	}

	svc := NewService(nil, repo, nil, nil)

	resp, err := svc.GetPerformanceReport(context.Background(), ceoID, 3, 2026)
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Month)
	assert.Equal(t, 2026, resp.Year)
	require.Len(t, resp.Performances, 2)
	assert.Equal(t, "Unassigned", resp.Performances[1].Name)
}

func TestGetPerformanceReport_DefaultsToCurrentPeriod(t *testing.T) {
	repo := newFakeBoardRepo()
	svc := NewService(nil, repo, nil, nil)

	resp, err := svc.GetPerformanceReport(context.Background(), uuid.New().String(), 0, 0)
	require.NoError(t, err)
	assert.NotZero(t, resp.Month)
	assert.NotZero(t, resp.Year)
	assert.NotNil(t, resp.Performances)
}
