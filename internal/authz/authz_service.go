package authz

import (
	"net/http"

	"go-orgkit/internal/shared/apperror"
	"go-orgkit/internal/tenant"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

//go:generate mockgen -source=authz_service.go -destination=mock/authz_service_mock.go -package=mock
type Service interface {
	Enforce(role, resource, action string) (bool, error)
	Authorize(p tenant.Principal, resource, action string) error
}

type service struct {
	enforcer *casbin.Enforcer
	logger   *zap.Logger
}

func NewService(enforcer *casbin.Enforcer, logger ...*zap.Logger) Service {
	l := zap.L().Named("authz.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("authz.service")
	}
	return &service{enforcer: enforcer, logger: l}
}

func (s *service) Enforce(role, resource, action string) (bool, error) {
	return s.enforcer.Enforce(role, resource, action)
}

// Authorize mengembalikan Forbidden dengan alasan yang seragam. Pesan tidak
// membedakan "resource tidak ada" dan "aksi tidak diizinkan".
func (s *service) Authorize(p tenant.Principal, resource, action string) error {
	if !tenant.ValidRole(p.Role) {
		s.logger.Warn("authorize unknown role",
			zap.String("role", p.Role),
			zap.String("resource", resource),
			zap.String("action", action),
		)
		return apperror.ErrForbidden
	}

	allowed, err := s.enforcer.Enforce(p.Role, resource, action)
	if err != nil {
		return apperror.Wrap(err, apperror.CodeInternalError, "Authorization check failed", http.StatusInternalServerError)
	}

	if !allowed {
		s.logger.Debug("authorize denied",
			zap.String("role", p.Role),
			zap.String("resource", resource),
			zap.String("action", action),
		)
		return apperror.Forbidden("You do not have permission to perform this action")
	}

	return nil
}
