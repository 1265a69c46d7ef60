package user

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"go-orgkit/internal/shared/contextutil"
	"go-orgkit/internal/tenant"
	usererrors "go-orgkit/internal/user/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/singleflight"
)

const UserOptionsKeyPrefix = "users:options:"

func GetUserOptionsKey(ceoID string) string {
	return UserOptionsKeyPrefix + ceoID
}

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context, ceoID string) ([]UserResponse, error)
	GetOptions(ctx context.Context, ceoID string) ([]UserOptionResponse, error)
	GetByID(ctx context.Context, ceoID, id string) (UserResponse, error)
	CreateMember(ctx context.Context, ceoID string, req CreateMemberRequest) (UserResponse, error)
	Delete(ctx context.Context, p tenant.Principal, ceoID, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) GetAll(ctx context.Context, ceoID string) ([]UserResponse, error) {
	s.logger.Debug("get all users requested", zap.String("ceo_id", ceoID))
	users, err := s.repo.FindAllByTenant(ctx, ceoID)
	if err != nil {
		s.logger.Error("get all users failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return ToListResponse(users), nil
}

func (s *service) GetOptions(ctx context.Context, ceoID string) ([]UserOptionResponse, error) {
	cacheKey := GetUserOptionsKey(ceoID)

	// 1. Cek Redis
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []UserOptionResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// 2. Singleflight untuk meredam burst saat form member dibuka bersamaan
	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		users, err := s.repo.FindAllByTenant(ctx, ceoID)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := make([]UserOptionResponse, len(users))
		for i, u := range users {
			resp[i] = UserOptionResponse{
				ID:   u.ID.String(),
				Name: u.Name,
				Role: u.Role,
			}
		}

		// 3. Simpan ke Redis (data master, TTL 1 jam cukup)
		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, 1*time.Hour)
			}
		}

		return resp, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]UserOptionResponse), nil
}

func (s *service) GetByID(ctx context.Context, ceoID, id string) (UserResponse, error) {
	u, err := s.repo.FindByIDAndTenant(ctx, ceoID, id)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}

	return ToResponse(*u), nil
}

func (s *service) CreateMember(
	ctx context.Context,
	ceoID string,
	req CreateMemberRequest,
) (UserResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create member requested",
		zap.String("request_id", rid),
		zap.String("ceo_id", ceoID),
		zap.String("email", req.Email),
		zap.String("role", req.Role),
	)

	if !tenant.ValidRole(req.Role) {
		return UserResponse{}, usererrors.ErrInvalidRole
	}
	// Satu tenant punya tepat satu CEO: role ceo hanya lahir dari registrasi.
	if req.Role == tenant.RoleCeo {
		return UserResponse{}, usererrors.ErrCeoRoleReserved
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return UserResponse{}, err
	}

	tenantID := uuid.MustParse(ceoID)
	u := &User{
		ID:       uuid.New(),
		CeoID:    &tenantID,
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		Role:     req.Role,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		s.logger.Error("create member persist failed", zap.String("request_id", rid), zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}

	s.invalidateOptions(ctx, ceoID)

	s.logger.Info("create member success",
		zap.String("request_id", rid),
		zap.String("user_id", u.ID.String()),
	)

	return ToResponse(*u), nil
}

func (s *service) Delete(ctx context.Context, p tenant.Principal, ceoID, id string) error {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("delete user requested",
		zap.String("request_id", rid),
		zap.String("ceo_id", ceoID),
		zap.String("user_id", id),
	)

	target, err := s.repo.FindByIDAndTenant(ctx, ceoID, id)
	if err != nil {
		return mapRepositoryError(err)
	}

	isTenantRoot := target.CeoID != nil && *target.CeoID == target.ID

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete user begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if isTenantRoot {
		// Menghapus akar organisasi menghapus seluruh data tenant.
		if p.Role != tenant.RoleCeo || p.ID != target.ID.String() {
			return usererrors.ErrOnlyCeoDeletesOrg
		}
		if err := qtx.DeleteTenantData(ctx, ceoID); err != nil {
			s.logger.Error("delete tenant data failed", zap.String("request_id", rid), zap.Error(err))
			return err
		}
	} else {
		if err := qtx.ClearUserRefs(ctx, id); err != nil {
			s.logger.Error("clear user refs failed", zap.Error(err))
			return err
		}
		if err := qtx.Delete(ctx, ceoID, id); err != nil {
			s.logger.Error("delete user failed", zap.Error(err))
			return mapRepositoryError(err)
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete user commit failed", zap.Error(err))
		return err
	}

	s.invalidateOptions(ctx, ceoID)

	s.logger.Info("delete user success",
		zap.String("request_id", rid),
		zap.String("user_id", id),
		zap.Bool("tenant_root", isTenantRoot),
	)
	return nil
}

func (s *service) invalidateOptions(ctx context.Context, ceoID string) {
	if s.rdb == nil {
		return
	}
	cacheKey := GetUserOptionsKey(ceoID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate user options cache",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
	}
}

func ToResponse(u User) UserResponse {
	resp := UserResponse{
		ID:           u.ID.String(),
		Name:         u.Name,
		Email:        u.Email,
		Role:         u.Role,
		CeoID:        uuidToString(u.CeoID),
		DepartmentID: uuidToString(u.DepartmentID),
		SuperiorID:   uuidToString(u.SuperiorID),
	}
	if u.Superior != nil {
		resp.SuperiorName = u.Superior.Name
	}
	return resp
}

func ToListResponse(users []User) []UserResponse {
	res := make([]UserResponse, len(users))
	for i, u := range users {
		res[i] = ToResponse(u)
	}
	return res
}

func uuidToString(v *uuid.UUID) string {
	if v == nil {
		return ""
	}
	return v.String()
}
