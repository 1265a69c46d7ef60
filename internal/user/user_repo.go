package user

import (
	"context"
	"database/sql"

	"go-orgkit/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=user_repo.go -destination=mock/user_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, u *User) error
	SetTenantRoot(ctx context.Context, userID string) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	FindByIDAndTenant(ctx context.Context, ceoID, id string) (*User, error)
	FindAllByTenant(ctx context.Context, ceoID string) ([]User, error)
	FindUnassignedByTenant(ctx context.Context, ceoID string) ([]User, error)
	FindByDepartment(ctx context.Context, ceoID, departmentID string) ([]User, error)
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, ceoID, id string) error
	ClearUserRefs(ctx context.Context, userID string) error
	DeleteTenantData(ctx context.Context, ceoID string) error
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

func (r *repository) Create(ctx context.Context, u *User) error {
	if r.tx != nil {
		query := `
        INSERT INTO users (id, ceo_id, department_id, superior_id, name, email, password, role, company_name, phone_number, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
    `
		_, err := r.tx.ExecContext(
			ctx, query,
			u.ID, u.CeoID, u.DepartmentID, u.SuperiorID,
			u.Name, u.Email, u.Password, u.Role, u.CompanyName, u.PhoneNumber,
		)
		return err
	}
	return r.db.WithContext(ctx).Create(u).Error
}

// SetTenantRoot menjadikan user sebagai akar organisasinya sendiri
// (ceo_id = id). Dipanggil dalam transaksi registrasi CEO.
func (r *repository) SetTenantRoot(ctx context.Context, userID string) error {
	query := `UPDATE users SET ceo_id = id, updated_at = NOW() WHERE id = $1`
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, query, userID)
		return err
	}
	return r.db.WithContext(ctx).Exec(`UPDATE users SET ceo_id = id, updated_at = NOW() WHERE id = ?`, userID).Error
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) FindByID(ctx context.Context, id string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) FindByIDAndTenant(ctx context.Context, ceoID, id string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(ceoID)).
		Where("id = ?", id).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) FindAllByTenant(ctx context.Context, ceoID string) ([]User, error) {
	var users []User
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(ceoID)).
		Preload("Superior").
		Order("created_at ASC").
		Find(&users).Error
	return users, err
}

func (r *repository) FindUnassignedByTenant(ctx context.Context, ceoID string) ([]User, error) {
	var users []User
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(ceoID)).
		Where("department_id IS NULL").
		Order("created_at ASC").
		Find(&users).Error
	return users, err
}

func (r *repository) FindByDepartment(ctx context.Context, ceoID, departmentID string) ([]User, error) {
	var users []User
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(ceoID)).
		Where("department_id = ?", departmentID).
		Preload("Superior").
		Order("created_at ASC").
		Find(&users).Error
	return users, err
}

func (r *repository) Update(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *repository) Delete(ctx context.Context, ceoID, id string) error {
	if r.tx != nil {
		query := `UPDATE users SET deleted_at = NOW() WHERE ceo_id = $1 AND id = $2 AND deleted_at IS NULL`
		_, err := r.tx.ExecContext(ctx, query, ceoID, id)
		return err
	}
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(ceoID)).
		Where("id = ?", id).
		Delete(&User{}).Error
}

// ClearUserRefs melepas referensi ke user yang dihapus: reporting line
// bawahan, penugasan task, dan keanggotaan project (set-null / delete,
// bukan cascade).
func (r *repository) ClearUserRefs(ctx context.Context, userID string) error {
	statements := []string{
		`UPDATE users SET superior_id = NULL, updated_at = NOW() WHERE superior_id = $1`,
		`UPDATE tasks SET assigned_to = NULL, updated_at = NOW() WHERE assigned_to = $1`,
		`DELETE FROM project_members WHERE user_id = $1`,
	}

	for _, query := range statements {
		if err := r.exec(ctx, query, userID); err != nil {
			return err
		}
	}
	return nil
}

// DeleteTenantData menghapus seluruh baris milik satu organisasi. Urutan
// mengikuti arah foreign key: daun dulu, akar terakhir.
func (r *repository) DeleteTenantData(ctx context.Context, ceoID string) error {
	statements := []string{
		`DELETE FROM action_plans WHERE key_result_id IN (
			SELECT kr.id FROM key_results kr
			JOIN objectives o ON kr.objective_id = o.id
			WHERE o.ceo_id = $1)`,
		`DELETE FROM key_results WHERE objective_id IN (
			SELECT id FROM objectives WHERE ceo_id = $1)`,
		`DELETE FROM objectives WHERE ceo_id = $1`,
		`DELETE FROM company_goals WHERE ceo_id = $1`,
		`DELETE FROM bmc_items WHERE ceo_id = $1`,
		`DELETE FROM company_visions WHERE ceo_id = $1`,
		`DELETE FROM company_missions WHERE ceo_id = $1`,
		`DELETE FROM company_core_values WHERE ceo_id = $1`,
		`DELETE FROM tasks WHERE project_id IN (
			SELECT id FROM projects WHERE ceo_id = $1)`,
		`DELETE FROM project_members WHERE project_id IN (
			SELECT id FROM projects WHERE ceo_id = $1)`,
		`DELETE FROM projects WHERE ceo_id = $1`,
		`DELETE FROM departments WHERE ceo_id = $1`,
		`DELETE FROM outbox_events WHERE ceo_id = $1`,
		`DELETE FROM users WHERE ceo_id = $1`,
	}

	for _, query := range statements {
		if err := r.exec(ctx, query, ceoID); err != nil {
			return err
		}
	}
	return nil
}

func (r *repository) exec(ctx context.Context, query string, args ...any) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, query, args...)
		return err
	}
	return r.db.WithContext(ctx).Exec(query, args...).Error
}
