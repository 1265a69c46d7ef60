package taskboard

import (
	"context"
	"database/sql"
	"encoding/json"

	"go-orgkit/internal/tenant"

	"gorm.io/gorm"
)

// PerformanceRow adalah satu baris laporan story point per assignee.
type PerformanceRow struct {
	Name   string `json:"name"`
	Points int    `json:"points"`
}

//go:generate mockgen -source=taskboard_repo.go -destination=mock/taskboard_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	CreateProject(ctx context.Context, p *Project) error
	AddMember(ctx context.Context, m *ProjectMember) error
	FindProjectsByTenant(ctx context.Context, ceoID string) ([]Project, error)
	FindProjectsByMember(ctx context.Context, ceoID, userID string) ([]Project, error)
	FindProjectByIDAndTenant(ctx context.Context, ceoID, id string) (*Project, error)
	IsMember(ctx context.Context, projectID, userID string) (bool, error)
	UpdateProject(ctx context.Context, p *Project) error
	UpdateLabels(ctx context.Context, projectID string, labels Labels) error
	DeleteProjectCascade(ctx context.Context, ceoID, id string) error

	CreateTask(ctx context.Context, t *Task) error
	FindTasksByProject(ctx context.Context, projectID string) ([]Task, error)
	FindTaskByIDAndTenant(ctx context.Context, ceoID, id string) (*Task, error)
	UpdateTask(ctx context.Context, t *Task) error
	DeleteTask(ctx context.Context, id string) error

	PerformanceReport(ctx context.Context, ceoID string, month, year int) ([]PerformanceRow, error)
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

func (r *repository) CreateProject(ctx context.Context, p *Project) error {
	if r.tx != nil {
		labels, err := json.Marshal(p.Labels)
		if err != nil {
			return err
		}
		query := `
        INSERT INTO projects (id, ceo_id, name, description, status, labels, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
    `
		_, err = r.tx.ExecContext(
			ctx, query,
			p.ID, p.CeoID, p.Name, p.Description, p.Status, labels,
		)
		return err
	}
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) AddMember(ctx context.Context, m *ProjectMember) error {
	if r.tx != nil {
		query := `
        INSERT INTO project_members (id, project_id, user_id, role, created_at)
        VALUES ($1, $2, $3, $4, NOW())
    `
		_, err := r.tx.ExecContext(ctx, query, m.ID, m.ProjectID, m.UserID, m.Role)
		return err
	}
	return r.db.WithContext(ctx).Create(m).Error
}

const taskCountSelect = `projects.*, (SELECT COUNT(*) FROM tasks WHERE tasks.project_id = projects.id) AS task_count`

func (r *repository) FindProjectsByTenant(ctx context.Context, ceoID string) ([]Project, error) {
	var projects []Project
	err := r.db.WithContext(ctx).
		Select(taskCountSelect).
		Scopes(tenant.Scope(ceoID)).
		Order("created_at ASC").
		Find(&projects).Error
	return projects, err
}

func (r *repository) FindProjectsByMember(ctx context.Context, ceoID, userID string) ([]Project, error) {
	var projects []Project
	err := r.db.WithContext(ctx).
		Select(taskCountSelect).
		Scopes(tenant.Scope(ceoID)).
		Where("projects.id IN (SELECT project_id FROM project_members WHERE user_id = ?)", userID).
		Order("created_at ASC").
		Find(&projects).Error
	return projects, err
}

func (r *repository) FindProjectByIDAndTenant(ctx context.Context, ceoID, id string) (*Project, error) {
	var p Project
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(ceoID)).
		Preload("Members.User").
		Where("id = ?", id).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) IsMember(ctx context.Context, projectID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&ProjectMember{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) UpdateProject(ctx context.Context, p *Project) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *repository) UpdateLabels(ctx context.Context, projectID string, labels Labels) error {
	body, err := json.Marshal(labels)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Model(&Project{}).
		Where("id = ?", projectID).
		Update("labels", body).Error
}

func (r *repository) DeleteProjectCascade(ctx context.Context, ceoID, id string) error {
	statements := []string{
		`DELETE FROM tasks WHERE project_id = $1`,
		`DELETE FROM project_members WHERE project_id = $1`,
	}
	for _, query := range statements {
		if err := r.exec(ctx, query, id); err != nil {
			return err
		}
	}
	return r.exec(ctx, `UPDATE projects SET deleted_at = NOW() WHERE id = $1 AND ceo_id = $2 AND deleted_at IS NULL`, id, ceoID)
}

func (r *repository) CreateTask(ctx context.Context, t *Task) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *repository) FindTasksByProject(ctx context.Context, projectID string) ([]Task, error) {
	var tasks []Task
	err := r.db.WithContext(ctx).
		Preload("Assignee").
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&tasks).Error
	return tasks, err
}

// FindTaskByIDAndTenant me-resolve kepemilikan lewat project induk.
func (r *repository) FindTaskByIDAndTenant(ctx context.Context, ceoID, id string) (*Task, error) {
	var t Task
	err := r.db.WithContext(ctx).
		Joins("JOIN projects ON projects.id = tasks.project_id").
		Where("tasks.id = ? AND projects.ceo_id = ?", id, ceoID).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repository) UpdateTask(ctx context.Context, t *Task) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *repository) DeleteTask(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&Task{}).Error
}

// PerformanceReport menjumlahkan story point task berstatus done yang
// selesai (updated_at) pada bulan/tahun terpilih, dikelompokkan per
// assignee. Task tanpa assignee masuk bucket "Unassigned".
func (r *repository) PerformanceReport(ctx context.Context, ceoID string, month, year int) ([]PerformanceRow, error) {
	var rows []PerformanceRow
	query := `
        SELECT COALESCE(u.name, 'Unassigned') AS name,
               COALESCE(SUM(t.story_point), 0) AS points
        FROM tasks t
        JOIN projects p ON p.id = t.project_id
        LEFT JOIN users u ON u.id = t.assigned_to
        WHERE p.ceo_id = ?
          AND t.status = ?
          AND EXTRACT(MONTH FROM t.updated_at) = ?
          AND EXTRACT(YEAR FROM t.updated_at) = ?
        GROUP BY COALESCE(u.name, 'Unassigned')
        ORDER BY points DESC
    `
	err := r.db.WithContext(ctx).
		Raw(query, ceoID, TaskStatusDone, month, year).
		Scan(&rows).Error
	return rows, err
}

func (r *repository) exec(ctx context.Context, query string, args ...any) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, query, args...)
		return err
	}
	return r.db.WithContext(ctx).Exec(query, args...).Error
}
