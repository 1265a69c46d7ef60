package orgstructure

import (
	"context"
	"database/sql"

	"go-orgkit/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=department_repo.go -destination=mock/department_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, d *Department) error
	FindAllByTenant(ctx context.Context, ceoID string) ([]Department, error)
	FindByIDAndTenant(ctx context.Context, ceoID, id string) (*Department, error)
	Update(ctx context.Context, d *Department) error
	DetachChildren(ctx context.Context, departmentID string) error
	DetachMembers(ctx context.Context, departmentID string) error
	Delete(ctx context.Context, ceoID, id string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) Create(ctx context.Context, d *Department) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *repository) FindAllByTenant(ctx context.Context, ceoID string) ([]Department, error) {
	var departments []Department
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(ceoID)).
		Order("created_at ASC").
		Find(&departments).Error
	return departments, err
}

func (r *repository) FindByIDAndTenant(ctx context.Context, ceoID, id string) (*Department, error) {
	var d Department
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(ceoID)).
		Where("id = ?", id).
		First(&d).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *repository) Update(ctx context.Context, d *Department) error {
	return r.db.WithContext(ctx).Save(d).Error
}

// DetachChildren melepas sub-departemen ke level akar sebelum induknya
// dihapus (set-null, bukan cascade).
func (r *repository) DetachChildren(ctx context.Context, departmentID string) error {
	query := `UPDATE departments SET parent_id = NULL, updated_at = NOW() WHERE parent_id = $1`
	return r.exec(ctx, query, departmentID)
}

func (r *repository) DetachMembers(ctx context.Context, departmentID string) error {
	query := `UPDATE users SET department_id = NULL, updated_at = NOW() WHERE department_id = $1`
	return r.exec(ctx, query, departmentID)
}

func (r *repository) Delete(ctx context.Context, ceoID, id string) error {
	if r.tx != nil {
		query := `UPDATE departments SET deleted_at = NOW() WHERE ceo_id = $1 AND id = $2 AND deleted_at IS NULL`
		_, err := r.tx.ExecContext(ctx, query, ceoID, id)
		return err
	}
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(ceoID)).
		Where("id = ?", id).
		Delete(&Department{}).Error
}

func (r *repository) exec(ctx context.Context, query string, args ...any) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, query, args...)
		return err
	}
	return r.db.WithContext(ctx).Exec(query, args...).Error
}
