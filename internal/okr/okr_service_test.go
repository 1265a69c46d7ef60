package okr

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	okrerrors "go-orgkit/internal/okr/errors"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeOkrRepo struct {
	Repository

	tree       []CompanyGoal
	goals      map[string]*CompanyGoal
	objectives map[string]*Objective
	keyResults map[string]*KeyResult
	created    []any
}

func newFakeOkrRepo() *fakeOkrRepo {
	return &fakeOkrRepo{
		goals:      make(map[string]*CompanyGoal),
		objectives: make(map[string]*Objective),
		keyResults: make(map[string]*KeyResult),
	}
}

func (f *fakeOkrRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeOkrRepo) FindTree(ctx context.Context, ceoID string) ([]CompanyGoal, error) {
	return f.tree, nil
}

func (f *fakeOkrRepo) FindGoalByIDAndTenant(ctx context.Context, ceoID, id string) (*CompanyGoal, error) {
	g, ok := f.goals[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return g, nil
}

func (f *fakeOkrRepo) FindObjectiveByIDAndTenant(ctx context.Context, ceoID, id string) (*Objective, error) {
	o, ok := f.objectives[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return o, nil
}

func (f *fakeOkrRepo) FindKeyResultByIDAndTenant(ctx context.Context, ceoID, id string) (*KeyResult, error) {
	kr, ok := f.keyResults[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return kr, nil
}

func (f *fakeOkrRepo) CreateGoal(ctx context.Context, g *CompanyGoal) error {
	f.created = append(f.created, g)
	f.goals[g.ID.String()] = g
	return nil
}

func (f *fakeOkrRepo) CreateKeyResult(ctx context.Context, kr *KeyResult) error {
	f.created = append(f.created, kr)
	f.keyResults[kr.ID.String()] = kr
	return nil
}

func TestGetTree_ComputesProgressPerLevel(t *testing.T) {
	ceoID := uuid.New()

	repo := newFakeOkrRepo()
	repo.tree = []CompanyGoal{
		{
			ID:    uuid.New(),
			CeoID: ceoID,
			Goal:  "Tumbuh 2x",
			Year:  2026,
			Objectives: []Objective{
				{
					ID:        uuid.New(),
					Division:  "Sales",
					Objective: "Naikkan revenue",
					KeyResults: []KeyResult{
						{ID: uuid.New(), KeyResult: "Deal baru", Target: 50, Actual: 70, Weight: 100},
						{ID: uuid.New(), KeyResult: "Retensi", Target: 100, Actual: 70, Weight: 100,
							ActionPlans: []ActionPlan{{ID: uuid.New(), Activity: "Program loyalitas"}}},
					},
				},
				{
					ID:        uuid.New(),
					Division:  "Ops",
					Objective: "Efisiensi",
				},
			},
		},
	}

	svc := NewService(nil, repo, nil, nil)

	resp, err := svc.GetTree(context.Background(), ceoID.String())
	require.NoError(t, err)

	require.Len(t, resp.Goals, 1)
	require.Len(t, resp.Goals[0].Objectives, 2)

	sales := resp.Goals[0].Objectives[0]
	// KR pertama 140% (tampil penuh di level KR) tapi kontribusi dipotong 100.
	assert.Equal(t, 140.0, sales.KeyResults[0].Progress)
	assert.Equal(t, 70.0, sales.KeyResults[1].Progress)
	assert.Equal(t, 85.0, sales.Progress)
	require.Len(t, sales.KeyResults[1].ActionPlans, 1)

	ops := resp.Goals[0].Objectives[1]
	assert.Equal(t, 0.0, ops.Progress, "objective without key results")
	assert.NotNil(t, ops.KeyResults)
}

func TestGetTree_ServesFromCache(t *testing.T) {
	ceoID := uuid.New().String()

	cached := TreeResponse{Goals: []GoalNode{{ID: uuid.New().String(), Goal: "Dari cache", Year: 2026}}}
	body, err := json.Marshal(cached)
	require.NoError(t, err)

	rdb, mock := redismock.NewClientMock()
	mock.ExpectGet(GetTreeKey(ceoID)).SetVal(string(body))

	// Repo nil: cache hit tidak boleh menyentuh database.
	svc := NewService(nil, nil, nil, rdb)

	resp, err := svc.GetTree(context.Background(), ceoID)
	require.NoError(t, err)
	assert.Equal(t, "Dari cache", resp.Goals[0].Goal)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTree_CacheMissLoadsAndStores(t *testing.T) {
	ceoID := uuid.New().String()

	repo := newFakeOkrRepo()
	repo.tree = []CompanyGoal{{ID: uuid.New(), Goal: "Segar", Year: 2026}}

	rdb, mock := redismock.NewClientMock()
	mock.ExpectGet(GetTreeKey(ceoID)).RedisNil()
	expected, err := json.Marshal(buildTreeResponse(repo.tree))
	require.NoError(t, err)
	mock.ExpectSet(GetTreeKey(ceoID), expected, 30*time.Minute).SetVal("OK")

	svc := NewService(nil, repo, nil, rdb)

	resp, err := svc.GetTree(context.Background(), ceoID)
	require.NoError(t, err)
	assert.Equal(t, "Segar", resp.Goals[0].Goal)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateKeyResult_AppliesDefaults(t *testing.T) {
	ceoID := uuid.New().String()

	repo := newFakeOkrRepo()
	obj := &Objective{ID: uuid.New()}
	repo.objectives[obj.ID.String()] = obj

	svc := NewService(nil, repo, nil, nil)

	resp, err := svc.CreateKeyResult(context.Background(), ceoID, CreateKeyResultRequest{
		ObjectiveID: obj.ID.String(),
		KeyResult:   "NPS",
		Target:      80,
		Actual:      20,
	})
	require.NoError(t, err)
	assert.Equal(t, DefaultUnit, resp.Unit)
	assert.Equal(t, float64(DefaultWeight), resp.Weight)
	assert.Equal(t, 25.0, resp.Progress)
}

func TestCreateObjective_ParentGoalMustBeSameTenant(t *testing.T) {
	repo := newFakeOkrRepo()
	svc := NewService(nil, repo, nil, nil)

	_, err := svc.CreateObjective(context.Background(), uuid.New().String(), CreateObjectiveRequest{
		CompanyGoalID: uuid.New().String(),
		Division:      "Sales",
		Objective:     "x",
	})
	assert.ErrorIs(t, err, okrerrors.ErrGoalNotFound)
}

func TestUpdateKeyResult_CrossTenantIsNotFound(t *testing.T) {
	repo := newFakeOkrRepo()
	svc := NewService(nil, repo, nil, nil)

	_, err := svc.UpdateKeyResult(context.Background(), uuid.New().String(), uuid.New().String(), UpdateKeyResultRequest{
		KeyResult: "x",
	})
	assert.ErrorIs(t, err, okrerrors.ErrKeyResultNotFound)
}

func TestMutation_InvalidatesTreeCache(t *testing.T) {
	ceoID := uuid.New()

	repo := newFakeOkrRepo()

	rdb, mock := redismock.NewClientMock()
	mock.ExpectDel(GetTreeKey(ceoID.String())).SetVal(1)

	svc := NewService(nil, repo, nil, rdb)

	_, err := svc.CreateGoal(context.Background(), ceoID.String(), CreateGoalRequest{
		Goal: "Baru",
		Year: 2026,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
