package companyprofile

import (
	"context"
	"testing"

	profileerrors "go-orgkit/internal/companyprofile/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeProfileRepo struct {
	Repository

	vision     *CompanyVision
	missions   []CompanyMission
	coreValues []CompanyCoreValue
}

func (f *fakeProfileRepo) FindVision(ctx context.Context, ceoID string) (*CompanyVision, error) {
	if f.vision == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.vision, nil
}

func (f *fakeProfileRepo) UpsertVision(ctx context.Context, v *CompanyVision) error {
	if f.vision != nil {
		f.vision.Content = v.Content
		return nil
	}
	f.vision = v
	return nil
}

func (f *fakeProfileRepo) FindMissions(ctx context.Context, ceoID string) ([]CompanyMission, error) {
	return f.missions, nil
}

func (f *fakeProfileRepo) CountMissions(ctx context.Context, ceoID string) (int64, error) {
	return int64(len(f.missions)), nil
}

func (f *fakeProfileRepo) CreateMission(ctx context.Context, m *CompanyMission) error {
	f.missions = append(f.missions, *m)
	return nil
}

func (f *fakeProfileRepo) FindMissionByIDAndTenant(ctx context.Context, ceoID, id string) (*CompanyMission, error) {
	for i := range f.missions {
		if f.missions[i].ID.String() == id {
			return &f.missions[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeProfileRepo) FindCoreValues(ctx context.Context, ceoID string) ([]CompanyCoreValue, error) {
	return f.coreValues, nil
}

func (f *fakeProfileRepo) CountCoreValues(ctx context.Context, ceoID string) (int64, error) {
	return int64(len(f.coreValues)), nil
}

func (f *fakeProfileRepo) CreateCoreValue(ctx context.Context, cv *CompanyCoreValue) error {
	f.coreValues = append(f.coreValues, *cv)
	return nil
}

func TestCreateMission_AssignsNextOrder(t *testing.T) {
	ceoID := uuid.New().String()
	repo := &fakeProfileRepo{}
	svc := NewService(repo)

	first, err := svc.CreateMission(context.Background(), ceoID, CreateEntryRequest{Content: "Misi pertama"})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Order)

	second, err := svc.CreateMission(context.Background(), ceoID, CreateEntryRequest{Content: "Misi kedua"})
	require.NoError(t, err)
	assert.Equal(t, 2, second.Order)
}

func TestCreateCoreValue_AssignsNextOrder(t *testing.T) {
	ceoID := uuid.New().String()
	repo := &fakeProfileRepo{
		coreValues: []CompanyCoreValue{
			{ID: uuid.New(), Content: "Integritas", Order: 1},
			{ID: uuid.New(), Content: "Kolaborasi", Order: 2},
		},
	}
	svc := NewService(repo)

	resp, err := svc.CreateCoreValue(context.Background(), ceoID, CreateEntryRequest{Content: "Inovasi"})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Order)
}

func TestUpsertVision_ReplacesExisting(t *testing.T) {
	ceoID := uuid.New()
	repo := &fakeProfileRepo{
		vision: &CompanyVision{ID: uuid.New(), CeoID: ceoID, Content: "Visi lama"},
	}
	svc := NewService(repo)

	originalID := repo.vision.ID.String()

	resp, err := svc.UpsertVision(context.Background(), ceoID.String(), UpsertVisionRequest{Content: "Visi baru"})
	require.NoError(t, err)
	assert.Equal(t, "Visi baru", resp.Content)
	assert.Equal(t, originalID, resp.ID, "upsert keeps the original row")
}

func TestGetProfile_EmptyTenant(t *testing.T) {
	svc := NewService(&fakeProfileRepo{})

	resp, err := svc.GetProfile(context.Background(), uuid.New().String())
	require.NoError(t, err)
	assert.Nil(t, resp.Vision)
	assert.Empty(t, resp.Missions)
	assert.Empty(t, resp.CoreValues)
}

func TestUpdateMission_NotFound(t *testing.T) {
	svc := NewService(&fakeProfileRepo{})

	_, err := svc.UpdateMission(context.Background(), uuid.New().String(), uuid.New().String(), UpdateEntryRequest{Content: "x"})
	assert.ErrorIs(t, err, profileerrors.ErrMissionNotFound)
}
