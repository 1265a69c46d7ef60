package orgstructure

import (
	"context"
	"database/sql"
	"errors"

	orgerrors "go-orgkit/internal/orgstructure/errors"
	"go-orgkit/internal/shared/contextutil"
	"go-orgkit/internal/user"
	usererrors "go-orgkit/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=orgstructure_service.go -destination=mock/orgstructure_service_mock.go -package=mock
type Service interface {
	GetOrgTree(ctx context.Context, ceoID string) (OrgTreeResponse, error)
	CreateDepartment(ctx context.Context, ceoID string, req CreateDepartmentRequest) (DepartmentResponse, error)
	UpdateDepartment(ctx context.Context, ceoID, id string, req UpdateDepartmentRequest) (DepartmentResponse, error)
	DeleteDepartment(ctx context.Context, ceoID, id string) error
	ReassignUserHierarchy(ctx context.Context, ceoID, userID string, req ReassignUserRequest) (user.UserResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	users  user.Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, users user.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("orgstructure.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("orgstructure.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		users:  users,
		logger: l,
	}
}

func (s *service) GetOrgTree(ctx context.Context, ceoID string) (OrgTreeResponse, error) {
	departments, err := s.repo.FindAllByTenant(ctx, ceoID)
	if err != nil {
		s.logger.Error("get org tree departments failed", zap.Error(err))
		return OrgTreeResponse{}, err
	}

	allUsers, err := s.users.FindAllByTenant(ctx, ceoID)
	if err != nil {
		s.logger.Error("get org tree users failed", zap.Error(err))
		return OrgTreeResponse{}, err
	}

	membersByDept := make(map[string][]user.UserResponse)
	var unassigned []user.UserResponse
	for _, u := range allUsers {
		resp := user.ToResponse(u)
		if u.DepartmentID == nil {
			unassigned = append(unassigned, resp)
			continue
		}
		key := u.DepartmentID.String()
		membersByDept[key] = append(membersByDept[key], resp)
	}
	if unassigned == nil {
		unassigned = []user.UserResponse{}
	}

	tree := BuildTree(departments, membersByDept)

	return OrgTreeResponse{
		Tree:            tree,
		FlatList:        Flatten(tree),
		UnassignedUsers: unassigned,
		AllUsers:        user.ToListResponse(allUsers),
	}, nil
}

func (s *service) CreateDepartment(
	ctx context.Context,
	ceoID string,
	req CreateDepartmentRequest,
) (DepartmentResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create department requested",
		zap.String("request_id", rid),
		zap.String("ceo_id", ceoID),
		zap.String("name", req.Name),
	)

	d := &Department{
		ID:    uuid.New(),
		CeoID: uuid.MustParse(ceoID),
		Name:  req.Name,
	}

	if req.ParentID != "" {
		parent, err := s.repo.FindByIDAndTenant(ctx, ceoID, req.ParentID)
		if err != nil {
			return DepartmentResponse{}, mapDepartmentError(err, orgerrors.ErrParentNotFound)
		}
		d.ParentID = &parent.ID
	}

	if err := s.repo.Create(ctx, d); err != nil {
		s.logger.Error("create department failed", zap.String("request_id", rid), zap.Error(err))
		return DepartmentResponse{}, err
	}

	s.logger.Info("create department success",
		zap.String("request_id", rid),
		zap.String("department_id", d.ID.String()),
	)
	return toDepartmentResponse(d), nil
}

func (s *service) UpdateDepartment(
	ctx context.Context,
	ceoID, id string,
	req UpdateDepartmentRequest,
) (DepartmentResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	d, err := s.repo.FindByIDAndTenant(ctx, ceoID, id)
	if err != nil {
		return DepartmentResponse{}, mapDepartmentError(err, orgerrors.ErrDepartmentNotFound)
	}

	if req.Name != nil {
		d.Name = *req.Name
	}

	if req.ParentID != nil {
		if *req.ParentID == "" {
			d.ParentID = nil
		} else {
			if *req.ParentID == id {
				return DepartmentResponse{}, orgerrors.ErrSelfParent
			}
			parent, err := s.repo.FindByIDAndTenant(ctx, ceoID, *req.ParentID)
			if err != nil {
				return DepartmentResponse{}, mapDepartmentError(err, orgerrors.ErrParentNotFound)
			}
			if err := s.guardDepartmentCycle(ctx, ceoID, id, parent.ID.String()); err != nil {
				return DepartmentResponse{}, err
			}
			d.ParentID = &parent.ID
		}
	}

	if err := s.repo.Update(ctx, d); err != nil {
		s.logger.Error("update department failed", zap.String("request_id", rid), zap.Error(err))
		return DepartmentResponse{}, err
	}

	s.logger.Info("update department success",
		zap.String("request_id", rid),
		zap.String("department_id", id),
	)
	return toDepartmentResponse(d), nil
}

func (s *service) DeleteDepartment(ctx context.Context, ceoID, id string) error {
	rid := contextutil.GetRequestID(ctx)

	if _, err := s.repo.FindByIDAndTenant(ctx, ceoID, id); err != nil {
		return mapDepartmentError(err, orgerrors.ErrDepartmentNotFound)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete department begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.DetachChildren(ctx, id); err != nil {
		s.logger.Error("detach children failed", zap.Error(err))
		return err
	}
	if err := qtx.DetachMembers(ctx, id); err != nil {
		s.logger.Error("detach members failed", zap.Error(err))
		return err
	}
	if err := qtx.Delete(ctx, ceoID, id); err != nil {
		s.logger.Error("delete department failed", zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete department commit failed", zap.Error(err))
		return err
	}

	s.logger.Info("delete department success",
		zap.String("request_id", rid),
		zap.String("department_id", id),
	)
	return nil
}

func (s *service) ReassignUserHierarchy(
	ctx context.Context,
	ceoID, userID string,
	req ReassignUserRequest,
) (user.UserResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	target, err := s.users.FindByIDAndTenant(ctx, ceoID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user.UserResponse{}, usererrors.ErrUserNotFound
		}
		return user.UserResponse{}, err
	}

	if req.DepartmentID != nil {
		if *req.DepartmentID == "" {
			target.DepartmentID = nil
		} else {
			dept, err := s.repo.FindByIDAndTenant(ctx, ceoID, *req.DepartmentID)
			if err != nil {
				return user.UserResponse{}, mapDepartmentError(err, orgerrors.ErrDepartmentNotFound)
			}
			target.DepartmentID = &dept.ID
		}
	}

	if req.SuperiorID != nil {
		if *req.SuperiorID == "" {
			target.SuperiorID = nil
		} else {
			if *req.SuperiorID == userID {
				return user.UserResponse{}, orgerrors.ErrSelfSuperior
			}
			superior, err := s.users.FindByIDAndTenant(ctx, ceoID, *req.SuperiorID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return user.UserResponse{}, usererrors.ErrUserNotFound
				}
				return user.UserResponse{}, err
			}
			if err := s.guardSuperiorCycle(ctx, ceoID, userID, superior.ID.String()); err != nil {
				return user.UserResponse{}, err
			}
			target.SuperiorID = &superior.ID
		}
	}

	if err := s.users.Update(ctx, target); err != nil {
		s.logger.Error("reassign user failed", zap.String("request_id", rid), zap.Error(err))
		return user.UserResponse{}, err
	}

	s.logger.Info("reassign user success",
		zap.String("request_id", rid),
		zap.String("user_id", userID),
	)
	return user.ToResponse(*target), nil
}

// guardDepartmentCycle menolak reparenting departemen ke bawah salah satu
// keturunannya sendiri: rantai ancestor parent baru tidak boleh memuat
// departemen yang dipindah.
func (s *service) guardDepartmentCycle(ctx context.Context, ceoID, departmentID, newParentID string) error {
	departments, err := s.repo.FindAllByTenant(ctx, ceoID)
	if err != nil {
		return err
	}

	parents := make(map[string]string, len(departments))
	for _, d := range departments {
		if d.ParentID != nil {
			parents[d.ID.String()] = d.ParentID.String()
		}
	}

	if ancestorChainContains(parents, newParentID, departmentID) {
		return orgerrors.ErrHierarchyCycle
	}
	return nil
}

// guardSuperiorCycle: aturan yang sama untuk reporting line antar user.
func (s *service) guardSuperiorCycle(ctx context.Context, ceoID, userID, newSuperiorID string) error {
	members, err := s.users.FindAllByTenant(ctx, ceoID)
	if err != nil {
		return err
	}

	parents := make(map[string]string, len(members))
	for _, m := range members {
		if m.SuperiorID != nil {
			parents[m.ID.String()] = m.SuperiorID.String()
		}
	}

	if ancestorChainContains(parents, newSuperiorID, userID) {
		return orgerrors.ErrHierarchyCycle
	}
	return nil
}

func mapDepartmentError(err, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return err
}

func toDepartmentResponse(d *Department) DepartmentResponse {
	resp := DepartmentResponse{
		ID:   d.ID.String(),
		Name: d.Name,
	}
	if d.ParentID != nil {
		resp.ParentID = d.ParentID.String()
	}
	return resp
}
