package companyprofile

import (
	"context"

	"go-orgkit/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=companyprofile_repo.go -destination=mock/companyprofile_repo_mock.go -package=mock
type Repository interface {
	FindVision(ctx context.Context, ceoID string) (*CompanyVision, error)
	UpsertVision(ctx context.Context, v *CompanyVision) error

	FindMissions(ctx context.Context, ceoID string) ([]CompanyMission, error)
	CountMissions(ctx context.Context, ceoID string) (int64, error)
	CreateMission(ctx context.Context, m *CompanyMission) error
	FindMissionByIDAndTenant(ctx context.Context, ceoID, id string) (*CompanyMission, error)
	UpdateMission(ctx context.Context, m *CompanyMission) error
	DeleteMission(ctx context.Context, ceoID, id string) error

	FindCoreValues(ctx context.Context, ceoID string) ([]CompanyCoreValue, error)
	CountCoreValues(ctx context.Context, ceoID string) (int64, error)
	CreateCoreValue(ctx context.Context, cv *CompanyCoreValue) error
	FindCoreValueByIDAndTenant(ctx context.Context, ceoID, id string) (*CompanyCoreValue, error)
	UpdateCoreValue(ctx context.Context, cv *CompanyCoreValue) error
	DeleteCoreValue(ctx context.Context, ceoID, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindVision(ctx context.Context, ceoID string) (*CompanyVision, error) {
	var v CompanyVision
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(ceoID)).
		First(&v).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// UpsertVision: satu organisasi satu visi, konflik di ceo_id menimpa konten.
func (r *repository) UpsertVision(ctx context.Context, v *CompanyVision) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "ceo_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"content", "updated_at"}),
		}).
		Create(v).Error
}

func (r *repository) FindMissions(ctx context.Context, ceoID string) ([]CompanyMission, error) {
	var missions []CompanyMission
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(ceoID)).
		Order(`"order" ASC`).
		Find(&missions).Error
	return missions, err
}

func (r *repository) CountMissions(ctx context.Context, ceoID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&CompanyMission{}).
		Scopes(tenant.Scope(ceoID)).
		Count(&count).Error
	return count, err
}

func (r *repository) CreateMission(ctx context.Context, m *CompanyMission) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *repository) FindMissionByIDAndTenant(ctx context.Context, ceoID, id string) (*CompanyMission, error) {
	var m CompanyMission
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(ceoID)).
		Where("id = ?", id).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *repository) UpdateMission(ctx context.Context, m *CompanyMission) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *repository) DeleteMission(ctx context.Context, ceoID, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(ceoID)).
		Where("id = ?", id).
		Delete(&CompanyMission{}).Error
}

func (r *repository) FindCoreValues(ctx context.Context, ceoID string) ([]CompanyCoreValue, error) {
	var values []CompanyCoreValue
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(ceoID)).
		Order(`"order" ASC`).
		Find(&values).Error
	return values, err
}

func (r *repository) CountCoreValues(ctx context.Context, ceoID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&CompanyCoreValue{}).
		Scopes(tenant.Scope(ceoID)).
		Count(&count).Error
	return count, err
}

func (r *repository) CreateCoreValue(ctx context.Context, cv *CompanyCoreValue) error {
	return r.db.WithContext(ctx).Create(cv).Error
}

func (r *repository) FindCoreValueByIDAndTenant(ctx context.Context, ceoID, id string) (*CompanyCoreValue, error) {
	var cv CompanyCoreValue
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(ceoID)).
		Where("id = ?", id).
		First(&cv).Error
	if err != nil {
		return nil, err
	}
	return &cv, nil
}

func (r *repository) UpdateCoreValue(ctx context.Context, cv *CompanyCoreValue) error {
	return r.db.WithContext(ctx).Save(cv).Error
}

func (r *repository) DeleteCoreValue(ctx context.Context, ceoID, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(ceoID)).
		Where("id = ?", id).
		Delete(&CompanyCoreValue{}).Error
}
