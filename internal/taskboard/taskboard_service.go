package taskboard

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-orgkit/internal/events"
	"go-orgkit/internal/shared/contextutil"
	taskboarderrors "go-orgkit/internal/taskboard/errors"
	"go-orgkit/internal/tenant"
	"go-orgkit/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=taskboard_service.go -destination=mock/taskboard_service_mock.go -package=mock
type Service interface {
	ListProjects(ctx context.Context, p tenant.Principal, ceoID string) ([]ProjectResponse, error)
	GetProject(ctx context.Context, p tenant.Principal, ceoID, id string) (ProjectDetailResponse, error)
	CreateProject(ctx context.Context, ceoID string, req CreateProjectRequest) (ProjectResponse, error)
	UpdateProject(ctx context.Context, ceoID, id string, req UpdateProjectRequest) (ProjectResponse, error)
	DeleteProject(ctx context.Context, ceoID, id string) error

	AddLabel(ctx context.Context, p tenant.Principal, ceoID, projectID string, req LabelRequest) ([]string, error)
	RemoveLabel(ctx context.Context, p tenant.Principal, ceoID, projectID string, req LabelRequest) ([]string, error)

	CreateTask(ctx context.Context, p tenant.Principal, ceoID, projectID string, req CreateTaskRequest) (TaskResponse, error)
	UpdateTask(ctx context.Context, ceoID, id string, req UpdateTaskRequest) (TaskResponse, error)
	DeleteTask(ctx context.Context, ceoID, id string) error

	GetPerformanceReport(ctx context.Context, ceoID string, month, year int) (PerformanceReportResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	users  user.Repository
	outbox events.Repository
	logger *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	users user.Repository,
	outbox events.Repository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("taskboard.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("taskboard.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		users:  users,
		outbox: outbox,
		logger: l,
	}
}

// ListProjects: role admin melihat seluruh project organisasi, role lain
// hanya project yang mereka ikuti.
func (s *service) ListProjects(ctx context.Context, p tenant.Principal, ceoID string) ([]ProjectResponse, error) {
	var (
		projects []Project
		err      error
	)

	if tenant.IsAdminRole(p.Role) {
		projects, err = s.repo.FindProjectsByTenant(ctx, ceoID)
	} else {
		projects, err = s.repo.FindProjectsByMember(ctx, ceoID, p.ID)
	}
	if err != nil {
		s.logger.Error("list projects failed", zap.Error(err))
		return nil, err
	}

	resp := make([]ProjectResponse, len(projects))
	for i, project := range projects {
		resp[i] = toProjectResponse(project)
	}
	return resp, nil
}

func (s *service) GetProject(ctx context.Context, p tenant.Principal, ceoID, id string) (ProjectDetailResponse, error) {
	project, err := s.repo.FindProjectByIDAndTenant(ctx, ceoID, id)
	if err != nil {
		return ProjectDetailResponse{}, mapTaskboardError(err, taskboarderrors.ErrProjectNotFound)
	}

	if err := s.checkProjectAccess(ctx, p, project); err != nil {
		return ProjectDetailResponse{}, err
	}

	tasks, err := s.repo.FindTasksByProject(ctx, id)
	if err != nil {
		s.logger.Error("load project tasks failed", zap.Error(err))
		return ProjectDetailResponse{}, err
	}

	detail := ProjectDetailResponse{
		ProjectResponse: toProjectResponse(*project),
		Members:         make([]MemberResponse, len(project.Members)),
		Tasks:           make([]TaskResponse, len(tasks)),
	}
	for i, m := range project.Members {
		detail.Members[i] = toMemberResponse(m)
	}
	for i, t := range tasks {
		detail.Tasks[i] = toTaskResponse(t)
	}
	return detail, nil
}

// CreateProject menulis project, member awal, dan event outbox dalam satu
// transaksi: tidak pernah ada project tanpa member.
func (s *service) CreateProject(ctx context.Context, ceoID string, req CreateProjectRequest) (ProjectResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create project requested",
		zap.String("request_id", rid),
		zap.String("ceo_id", ceoID),
		zap.String("name", req.Name),
		zap.Int("members", len(req.Members)),
	)

	// Semua calon member harus berada di tenant yang sama.
	for _, memberID := range req.Members {
		if _, err := s.users.FindByIDAndTenant(ctx, ceoID, memberID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ProjectResponse{}, taskboarderrors.ErrMemberNotInTenant
			}
			return ProjectResponse{}, err
		}
	}

	project := &Project{
		ID:          uuid.New(),
		CeoID:       uuid.MustParse(ceoID),
		Name:        req.Name,
		Description: req.Description,
		Status:      ProjectStatusActive,
		Labels:      append(Labels{}, DefaultLabels...),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create project begin tx failed", zap.Error(err))
		return ProjectResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.CreateProject(ctx, project); err != nil {
		s.logger.Error("create project insert failed", zap.String("request_id", rid), zap.Error(err))
		return ProjectResponse{}, err
	}

	for _, memberID := range req.Members {
		member := &ProjectMember{
			ID:        uuid.New(),
			ProjectID: project.ID,
			UserID:    uuid.MustParse(memberID),
			Role:      MemberRoleMember,
		}
		if err := qtx.AddMember(ctx, member); err != nil {
			s.logger.Error("add project member failed", zap.String("request_id", rid), zap.Error(err))
			return ProjectResponse{}, err
		}
	}

	if s.outbox != nil {
		err := s.outbox.WithTx(tx).Queue(ctx, project.CeoID, events.TopicProjectLifecycle, events.TypeProjectCreated, map[string]any{
			"project_id":   project.ID.String(),
			"name":         project.Name,
			"member_count": len(req.Members),
		})
		if err != nil {
			s.logger.Error("queue project created event failed", zap.Error(err))
			return ProjectResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create project commit failed", zap.Error(err))
		return ProjectResponse{}, err
	}

	s.logger.Info("create project success",
		zap.String("request_id", rid),
		zap.String("project_id", project.ID.String()),
	)
	return toProjectResponse(*project), nil
}

func (s *service) UpdateProject(ctx context.Context, ceoID, id string, req UpdateProjectRequest) (ProjectResponse, error) {
	if !ValidProjectStatus(req.Status) {
		return ProjectResponse{}, taskboarderrors.ErrInvalidProjectStatus
	}

	project, err := s.repo.FindProjectByIDAndTenant(ctx, ceoID, id)
	if err != nil {
		return ProjectResponse{}, mapTaskboardError(err, taskboarderrors.ErrProjectNotFound)
	}

	project.Name = req.Name
	project.Description = req.Description
	project.Status = req.Status

	if err := s.repo.UpdateProject(ctx, project); err != nil {
		s.logger.Error("update project failed", zap.Error(err))
		return ProjectResponse{}, err
	}

	return toProjectResponse(*project), nil
}

func (s *service) DeleteProject(ctx context.Context, ceoID, id string) error {
	rid := contextutil.GetRequestID(ctx)

	if _, err := s.repo.FindProjectByIDAndTenant(ctx, ceoID, id); err != nil {
		return mapTaskboardError(err, taskboarderrors.ErrProjectNotFound)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete project begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).DeleteProjectCascade(ctx, ceoID, id); err != nil {
		s.logger.Error("delete project cascade failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete project commit failed", zap.Error(err))
		return err
	}

	s.logger.Info("delete project success",
		zap.String("request_id", rid),
		zap.String("project_id", id),
	)
	return nil
}

// AddLabel idempoten: label yang sudah ada tidak digandakan.
func (s *service) AddLabel(ctx context.Context, p tenant.Principal, ceoID, projectID string, req LabelRequest) ([]string, error) {
	project, err := s.repo.FindProjectByIDAndTenant(ctx, ceoID, projectID)
	if err != nil {
		return nil, mapTaskboardError(err, taskboarderrors.ErrProjectNotFound)
	}
	if err := s.checkProjectAccess(ctx, p, project); err != nil {
		return nil, err
	}

	labels := project.Labels
	for _, l := range labels {
		if l == req.Label {
			return labels, nil
		}
	}

	labels = append(labels, req.Label)
	if err := s.repo.UpdateLabels(ctx, projectID, labels); err != nil {
		s.logger.Error("add label failed", zap.Error(err))
		return nil, err
	}
	return labels, nil
}

func (s *service) RemoveLabel(ctx context.Context, p tenant.Principal, ceoID, projectID string, req LabelRequest) ([]string, error) {
	project, err := s.repo.FindProjectByIDAndTenant(ctx, ceoID, projectID)
	if err != nil {
		return nil, mapTaskboardError(err, taskboarderrors.ErrProjectNotFound)
	}
	if err := s.checkProjectAccess(ctx, p, project); err != nil {
		return nil, err
	}

	labels := make(Labels, 0, len(project.Labels))
	for _, l := range project.Labels {
		if l != req.Label {
			labels = append(labels, l)
		}
	}

	if err := s.repo.UpdateLabels(ctx, projectID, labels); err != nil {
		s.logger.Error("remove label failed", zap.Error(err))
		return nil, err
	}
	return labels, nil
}

func (s *service) CreateTask(ctx context.Context, p tenant.Principal, ceoID, projectID string, req CreateTaskRequest) (TaskResponse, error) {
	if !ValidTaskStatus(req.Status) {
		return TaskResponse{}, taskboarderrors.ErrInvalidTaskStatus
	}

	project, err := s.repo.FindProjectByIDAndTenant(ctx, ceoID, projectID)
	if err != nil {
		return TaskResponse{}, mapTaskboardError(err, taskboarderrors.ErrProjectNotFound)
	}
	if err := s.checkProjectAccess(ctx, p, project); err != nil {
		return TaskResponse{}, err
	}

	t := &Task{
		ID:          uuid.New(),
		ProjectID:   project.ID,
		Description: req.Description,
		Category:    req.Category,
		StoryPoint:  req.StoryPoint,
		Status:      req.Status,
		SprintGroup: req.SprintGroup,
		MonthGroup:  req.MonthGroup,
		DueDate:     req.DueDate,
	}
	if req.AssignedTo != "" {
		if _, err := s.users.FindByIDAndTenant(ctx, ceoID, req.AssignedTo); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return TaskResponse{}, taskboarderrors.ErrMemberNotInTenant
			}
			return TaskResponse{}, err
		}
		assignee := uuid.MustParse(req.AssignedTo)
		t.AssignedTo = &assignee
	}

	if err := s.repo.CreateTask(ctx, t); err != nil {
		s.logger.Error("create task failed", zap.Error(err))
		return TaskResponse{}, err
	}

	return toTaskResponse(*t), nil
}

func (s *service) UpdateTask(ctx context.Context, ceoID, id string, req UpdateTaskRequest) (TaskResponse, error) {
	if !ValidTaskStatus(req.Status) {
		return TaskResponse{}, taskboarderrors.ErrInvalidTaskStatus
	}

	t, err := s.repo.FindTaskByIDAndTenant(ctx, ceoID, id)
	if err != nil {
		return TaskResponse{}, mapTaskboardError(err, taskboarderrors.ErrTaskNotFound)
	}

	t.Description = req.Description
	t.Category = req.Category
	t.StoryPoint = req.StoryPoint
	t.Status = req.Status
	t.SprintGroup = req.SprintGroup
	t.MonthGroup = req.MonthGroup
	t.DueDate = req.DueDate
	t.AssignedTo = nil
	if req.AssignedTo != "" {
		if _, err := s.users.FindByIDAndTenant(ctx, ceoID, req.AssignedTo); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return TaskResponse{}, taskboarderrors.ErrMemberNotInTenant
			}
			return TaskResponse{}, err
		}
		assignee := uuid.MustParse(req.AssignedTo)
		t.AssignedTo = &assignee
	}

	if err := s.repo.UpdateTask(ctx, t); err != nil {
		s.logger.Error("update task failed", zap.Error(err))
		return TaskResponse{}, err
	}

	return toTaskResponse(*t), nil
}

func (s *service) DeleteTask(ctx context.Context, ceoID, id string) error {
	if _, err := s.repo.FindTaskByIDAndTenant(ctx, ceoID, id); err != nil {
		return mapTaskboardError(err, taskboarderrors.ErrTaskNotFound)
	}
	if err := s.repo.DeleteTask(ctx, id); err != nil {
		s.logger.Error("delete task failed", zap.Error(err))
		return err
	}
	return nil
}

func (s *service) GetPerformanceReport(ctx context.Context, ceoID string, month, year int) (PerformanceReportResponse, error) {
	now := time.Now()
	if month < 1 || month > 12 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}

	rows, err := s.repo.PerformanceReport(ctx, ceoID, month, year)
	if err != nil {
		s.logger.Error("performance report failed", zap.Error(err))
		return PerformanceReportResponse{}, err
	}
	if rows == nil {
		rows = []PerformanceRow{}
	}

	return PerformanceReportResponse{
		Month:        month,
		Year:         year,
		Performances: rows,
	}, nil
}

// checkProjectAccess: member project selalu boleh; role admin boleh untuk
// project di tenant-nya.
func (s *service) checkProjectAccess(ctx context.Context, p tenant.Principal, project *Project) error {
	isMember, err := s.repo.IsMember(ctx, project.ID.String(), p.ID)
	if err != nil {
		return err
	}
	if isMember || tenant.IsAdminRole(p.Role) {
		return nil
	}
	return taskboarderrors.ErrNotProjectMember
}

func mapTaskboardError(err, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return err
}

func toProjectResponse(p Project) ProjectResponse {
	labels := p.Labels
	if labels == nil {
		labels = Labels{}
	}
	return ProjectResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		Status:      p.Status,
		Labels:      labels,
		TaskCount:   p.TaskCount,
	}
}

func toMemberResponse(m ProjectMember) MemberResponse {
	resp := MemberResponse{
		ID:     m.ID.String(),
		UserID: m.UserID.String(),
		Role:   m.Role,
	}
	if m.User != nil {
		resp.Name = m.User.Name
	}
	return resp
}

func toTaskResponse(t Task) TaskResponse {
	resp := TaskResponse{
		ID:          t.ID.String(),
		ProjectID:   t.ProjectID.String(),
		Description: t.Description,
		Category:    t.Category,
		StoryPoint:  t.StoryPoint,
		Status:      t.Status,
		SprintGroup: t.SprintGroup,
		MonthGroup:  t.MonthGroup,
		DueDate:     t.DueDate,
	}
	if t.AssignedTo != nil {
		resp.AssignedTo = t.AssignedTo.String()
	}
	if t.Assignee != nil {
		resp.AssigneeName = t.Assignee.Name
	}
	return resp
}
