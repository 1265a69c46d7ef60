package app

import (
	"database/sql"
	"fmt"

	"go-orgkit/internal/auth"
	"go-orgkit/internal/authz"
	"go-orgkit/internal/bmc"
	"go-orgkit/internal/companyprofile"
	"go-orgkit/internal/events"
	"go-orgkit/internal/okr"
	"go-orgkit/internal/orgstructure"
	"go-orgkit/internal/taskboard"
	"go-orgkit/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// registerModules merakit semua repo, service, handler, dan route.
func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {

	// ===== AUTHORIZATION =====
	enforcer, err := authz.NewEnforcer()
	if err != nil {
		return fmt.Errorf("init enforcer: %w", err)
	}
	policyService := authz.NewService(enforcer)

	// ===== REPOSITORIES =====
	userRepo := user.NewRepository(gormDB)
	orgRepo := orgstructure.NewRepository(gormDB)
	profileRepo := companyprofile.NewRepository(gormDB)
	bmcRepo := bmc.NewRepository(gormDB)
	okrRepo := okr.NewRepository(gormDB)
	boardRepo := taskboard.NewRepository(gormDB)
	outboxRepo := events.NewRepository(gormDB)

	// ===== SERVICES =====
	authService := auth.NewService(db, userRepo)
	userService := user.NewService(db, userRepo, rdb)
	orgService := orgstructure.NewService(db, orgRepo, userRepo)
	profileService := companyprofile.NewService(profileRepo)
	bmcService := bmc.NewService(bmcRepo)
	okrService := okr.NewService(db, okrRepo, outboxRepo, rdb)
	boardService := taskboard.NewService(db, boardRepo, userRepo, outboxRepo)

	// ===== HANDLERS =====
	authHandler := auth.NewHandler(authService)
	userHandler := user.NewHandler(userService)
	orgHandler := orgstructure.NewHandler(orgService)
	profileHandler := companyprofile.NewHandler(profileService)
	bmcHandler := bmc.NewHandler(bmcService)
	okrHandler := okr.NewHandler(okrService)
	boardHandler := taskboard.NewHandlerWithRedis(boardService, rdb)

	// ===== ROUTES =====
	api := router.Group("/api/v1")

	auth.RegisterRoutes(api, authHandler)
	user.RegisterRoutes(api, userHandler, policyService)
	orgstructure.RegisterRoutes(api, orgHandler, policyService)
	companyprofile.RegisterRoutes(api, profileHandler, policyService)
	bmc.RegisterRoutes(api, bmcHandler, policyService)
	okr.RegisterRoutes(api, okrHandler, policyService)
	taskboard.RegisterRoutes(api, boardHandler, policyService, rdb)

	return nil
}
