package auth

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"strings"
	"time"

	autherrors "go-orgkit/internal/auth/errors"
	"go-orgkit/internal/shared/contextutil"
	"go-orgkit/internal/tenant"
	"go-orgkit/internal/user"
	usererrors "go-orgkit/internal/user/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
)

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (AuthResponse, TokenPair, error)
	Login(ctx context.Context, req LoginRequest) (AuthResponse, TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (TokenPair, error)
	GetMe(ctx context.Context, userID string) (AuthResponse, error)
}

type service struct {
	db     *sql.DB
	users  user.Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, users user.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{db: db, users: users, logger: l}
}

// Register membuat akun CEO sekaligus organisasi barunya. Insert user dan
// penetapan ceo_id = id berjalan dalam satu transaksi supaya tidak pernah
// ada user tanpa scope organisasi.
func (s *service) Register(ctx context.Context, req RegisterRequest) (AuthResponse, TokenPair, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("register requested",
		zap.String("request_id", rid),
		zap.String("email", req.Email),
	)

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResponse{}, TokenPair{}, err
	}

	u := &user.User{
		ID:          uuid.New(),
		Name:        req.Name,
		Email:       req.Email,
		Password:    string(hashed),
		Role:        tenant.RoleCeo,
		CompanyName: req.CompanyName,
		PhoneNumber: req.PhoneNumber,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("register begin tx failed", zap.Error(err))
		return AuthResponse{}, TokenPair{}, err
	}
	defer tx.Rollback()

	qtx := s.users.WithTx(tx)

	if err := qtx.Create(ctx, u); err != nil {
		s.logger.Warn("register insert failed", zap.String("request_id", rid), zap.Error(err))
		return AuthResponse{}, TokenPair{}, mapAuthRepoError(err)
	}
	if err := qtx.SetTenantRoot(ctx, u.ID.String()); err != nil {
		s.logger.Error("register set tenant root failed", zap.Error(err))
		return AuthResponse{}, TokenPair{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("register commit failed", zap.Error(err))
		return AuthResponse{}, TokenPair{}, err
	}

	// Setelah commit, user adalah akar organisasinya sendiri.
	selfID := u.ID
	u.CeoID = &selfID

	pair, err := s.issueTokens(u)
	if err != nil {
		return AuthResponse{}, TokenPair{}, err
	}

	s.logger.Info("register success",
		zap.String("request_id", rid),
		zap.String("user_id", u.ID.String()),
	)

	return mapToAuthResponse(u), pair, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (AuthResponse, TokenPair, error) {
	rid := contextutil.GetRequestID(ctx)

	u, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		// Email tidak dikenal dan password salah memberi respons yang sama.
		s.logger.Warn("login unknown email", zap.String("request_id", rid))
		return AuthResponse{}, TokenPair{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)); err != nil {
		s.logger.Warn("login password mismatch",
			zap.String("request_id", rid),
			zap.String("user_id", u.ID.String()),
		)
		return AuthResponse{}, TokenPair{}, autherrors.ErrInvalidCredentials
	}

	pair, err := s.issueTokens(u)
	if err != nil {
		return AuthResponse{}, TokenPair{}, err
	}

	s.logger.Info("login success",
		zap.String("request_id", rid),
		zap.String("user_id", u.ID.String()),
		zap.String("role", u.Role),
	)

	return mapToAuthResponse(u), pair, nil
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidRefreshToken
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return TokenPair{}, autherrors.ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["typ"] != "refresh" {
		return TokenPair{}, autherrors.ErrInvalidRefreshToken
	}
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return TokenPair{}, autherrors.ErrInvalidRefreshToken
	}

	// Refresh selalu membaca ulang user: role atau scope bisa saja berubah.
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return TokenPair{}, autherrors.ErrInvalidRefreshToken
	}

	pair, err := s.issueTokens(u)
	if err != nil {
		return TokenPair{}, err
	}
	return pair, nil
}

func (s *service) GetMe(ctx context.Context, userID string) (AuthResponse, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AuthResponse{}, usererrors.ErrUserNotFound
		}
		return AuthResponse{}, err
	}
	return mapToAuthResponse(u), nil
}

func (s *service) issueTokens(u *user.User) (TokenPair, error) {
	stored := ""
	if u.CeoID != nil {
		stored = u.CeoID.String()
	}

	// Scope organisasi di-resolve di sini, bukan di middleware: user tanpa
	// scope tidak boleh pernah memegang access token.
	ceoID, err := tenant.Resolve(tenant.Principal{
		ID:    u.ID.String(),
		Role:  u.Role,
		CEOID: stored,
	})
	if err != nil {
		return TokenPair{}, err
	}

	access, err := signToken(jwt.MapClaims{
		"user_id": u.ID.String(),
		"ceo_id":  ceoID,
		"role":    u.Role,
		"exp":     time.Now().Add(AccessTokenTTL).Unix(),
	})
	if err != nil {
		return TokenPair{}, autherrors.ErrTokenGenerationFailed
	}

	refresh, err := signToken(jwt.MapClaims{
		"user_id": u.ID.String(),
		"typ":     "refresh",
		"exp":     time.Now().Add(RefreshTokenTTL).Unix(),
	})
	if err != nil {
		return TokenPair{}, autherrors.ErrTokenGenerationFailed
	}

	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func signToken(claims jwt.MapClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func mapAuthRepoError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_user_email" {
			return autherrors.ErrEmailAlreadyRegistered
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_user_email") {
		return autherrors.ErrEmailAlreadyRegistered
	}

	return err
}

func mapToAuthResponse(u *user.User) AuthResponse {
	ceoID := ""
	if u.CeoID != nil {
		ceoID = u.CeoID.String()
	}
	return AuthResponse{
		ID:          u.ID.String(),
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role,
		CeoID:       ceoID,
		CompanyName: u.CompanyName,
	}
}
