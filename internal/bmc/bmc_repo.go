package bmc

import (
	"context"

	"go-orgkit/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=bmc_repo.go -destination=mock/bmc_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, item *Item) error
	FindAllByTenant(ctx context.Context, ceoID string) ([]Item, error)
	FindByIDAndTenant(ctx context.Context, ceoID, id string) (*Item, error)
	Update(ctx context.Context, item *Item) error
	Delete(ctx context.Context, ceoID, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, item *Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *repository) FindAllByTenant(ctx context.Context, ceoID string) ([]Item, error) {
	var items []Item
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(ceoID)).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

func (r *repository) FindByIDAndTenant(ctx context.Context, ceoID, id string) (*Item, error) {
	var item Item
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(ceoID)).
		Where("id = ?", id).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) Update(ctx context.Context, item *Item) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *repository) Delete(ctx context.Context, ceoID, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(ceoID)).
		Where("id = ?", id).
		Delete(&Item{}).Error
}
