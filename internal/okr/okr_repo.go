package okr

import (
	"context"
	"database/sql"

	"go-orgkit/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=okr_repo.go -destination=mock/okr_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	FindTree(ctx context.Context, ceoID string) ([]CompanyGoal, error)

	CreateGoal(ctx context.Context, g *CompanyGoal) error
	FindGoalByIDAndTenant(ctx context.Context, ceoID, id string) (*CompanyGoal, error)
	UpdateGoal(ctx context.Context, g *CompanyGoal) error
	DeleteGoalCascade(ctx context.Context, ceoID, id string) error

	CreateObjective(ctx context.Context, o *Objective) error
	FindObjectiveByIDAndTenant(ctx context.Context, ceoID, id string) (*Objective, error)
	UpdateObjective(ctx context.Context, o *Objective) error
	DeleteObjectiveCascade(ctx context.Context, ceoID, id string) error

	CreateKeyResult(ctx context.Context, kr *KeyResult) error
	FindKeyResultByIDAndTenant(ctx context.Context, ceoID, id string) (*KeyResult, error)
	FindKeyResultsByObjective(ctx context.Context, objectiveID string) ([]KeyResult, error)
	UpdateKeyResult(ctx context.Context, kr *KeyResult) error
	DeleteKeyResultCascade(ctx context.Context, id string) error

	CreateActionPlan(ctx context.Context, ap *ActionPlan) error
	FindActionPlanByIDAndTenant(ctx context.Context, ceoID, id string) (*ActionPlan, error)
	UpdateActionPlan(ctx context.Context, ap *ActionPlan) error
	DeleteActionPlan(ctx context.Context, id string) error
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

// FindTree memuat seluruh pohon OKR satu organisasi: goals -> objectives ->
// key results -> action plans, semuanya urut created_at.
func (r *repository) FindTree(ctx context.Context, ceoID string) ([]CompanyGoal, error) {
	var goals []CompanyGoal
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(ceoID)).
		Preload("Objectives", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Objectives.KeyResults", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Objectives.KeyResults.ActionPlans", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Order("year DESC, created_at ASC").
		Find(&goals).Error
	return goals, err
}

func (r *repository) CreateGoal(ctx context.Context, g *CompanyGoal) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *repository) FindGoalByIDAndTenant(ctx context.Context, ceoID, id string) (*CompanyGoal, error) {
	var g CompanyGoal
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(ceoID)).
		Where("id = ?", id).
		First(&g).Error
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *repository) UpdateGoal(ctx context.Context, g *CompanyGoal) error {
	return r.db.WithContext(ctx).Save(g).Error
}

// DeleteGoalCascade menghapus goal beserta seluruh subtree-nya. Urutan:
// daun dulu supaya tidak melanggar foreign key.
func (r *repository) DeleteGoalCascade(ctx context.Context, ceoID, id string) error {
	statements := []string{
		`DELETE FROM action_plans WHERE key_result_id IN (
			SELECT kr.id FROM key_results kr
			JOIN objectives o ON kr.objective_id = o.id
			WHERE o.company_goal_id = $1 AND o.ceo_id = $2)`,
		`DELETE FROM key_results WHERE objective_id IN (
			SELECT id FROM objectives WHERE company_goal_id = $1 AND ceo_id = $2)`,
		`DELETE FROM objectives WHERE company_goal_id = $1 AND ceo_id = $2`,
		`DELETE FROM company_goals WHERE id = $1 AND ceo_id = $2`,
	}

	for _, query := range statements {
		if err := r.exec(ctx, query, id, ceoID); err != nil {
			return err
		}
	}
	return nil
}

func (r *repository) CreateObjective(ctx context.Context, o *Objective) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *repository) FindObjectiveByIDAndTenant(ctx context.Context, ceoID, id string) (*Objective, error) {
	var o Objective
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(ceoID)).
		Where("id = ?", id).
		First(&o).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repository) UpdateObjective(ctx context.Context, o *Objective) error {
	return r.db.WithContext(ctx).Save(o).Error
}

func (r *repository) DeleteObjectiveCascade(ctx context.Context, ceoID, id string) error {
	statements := []string{
		`DELETE FROM action_plans WHERE key_result_id IN (
			SELECT kr.id FROM key_results kr
			JOIN objectives o ON kr.objective_id = o.id
			WHERE o.id = $1 AND o.ceo_id = $2)`,
		`DELETE FROM key_results WHERE objective_id IN (
			SELECT id FROM objectives WHERE id = $1 AND ceo_id = $2)`,
		`DELETE FROM objectives WHERE id = $1 AND ceo_id = $2`,
	}

	for _, query := range statements {
		if err := r.exec(ctx, query, id, ceoID); err != nil {
			return err
		}
	}
	return nil
}

func (r *repository) CreateKeyResult(ctx context.Context, kr *KeyResult) error {
	return r.db.WithContext(ctx).Create(kr).Error
}

// FindKeyResultByIDAndTenant me-resolve kepemilikan lewat objective induk;
// key_results sendiri tidak menyimpan ceo_id.
func (r *repository) FindKeyResultByIDAndTenant(ctx context.Context, ceoID, id string) (*KeyResult, error) {
	var kr KeyResult
	err := r.db.WithContext(ctx).
		Joins("JOIN objectives ON objectives.id = key_results.objective_id").
		Where("key_results.id = ? AND objectives.ceo_id = ?", id, ceoID).
		First(&kr).Error
	if err != nil {
		return nil, err
	}
	return &kr, nil
}

func (r *repository) FindKeyResultsByObjective(ctx context.Context, objectiveID string) ([]KeyResult, error) {
	var krs []KeyResult
	err := r.db.WithContext(ctx).
		Where("objective_id = ?", objectiveID).
		Order("created_at ASC").
		Find(&krs).Error
	return krs, err
}

func (r *repository) UpdateKeyResult(ctx context.Context, kr *KeyResult) error {
	return r.db.WithContext(ctx).Save(kr).Error
}

func (r *repository) DeleteKeyResultCascade(ctx context.Context, id string) error {
	statements := []string{
		`DELETE FROM action_plans WHERE key_result_id = $1`,
		`DELETE FROM key_results WHERE id = $1`,
	}

	for _, query := range statements {
		if err := r.exec(ctx, query, id); err != nil {
			return err
		}
	}
	return nil
}

func (r *repository) CreateActionPlan(ctx context.Context, ap *ActionPlan) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *repository) FindActionPlanByIDAndTenant(ctx context.Context, ceoID, id string) (*ActionPlan, error) {
	var ap ActionPlan
	err := r.db.WithContext(ctx).
		Joins("JOIN key_results ON key_results.id = action_plans.key_result_id").
		Joins("JOIN objectives ON objectives.id = key_results.objective_id").
		Where("action_plans.id = ? AND objectives.ceo_id = ?", id, ceoID).
		First(&ap).Error
	if err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *repository) UpdateActionPlan(ctx context.Context, ap *ActionPlan) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *repository) DeleteActionPlan(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&ActionPlan{}).Error
}

func (r *repository) exec(ctx context.Context, query string, args ...any) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, query, args...)
		return err
	}
	return r.db.WithContext(ctx).Exec(query, args...).Error
}
