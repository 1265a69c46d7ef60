package companyprofile

import (
	"context"
	"errors"

	profileerrors "go-orgkit/internal/companyprofile/errors"
	"go-orgkit/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=companyprofile_service.go -destination=mock/companyprofile_service_mock.go -package=mock
type Service interface {
	GetProfile(ctx context.Context, ceoID string) (ProfileResponse, error)
	UpsertVision(ctx context.Context, ceoID string, req UpsertVisionRequest) (VisionResponse, error)

	CreateMission(ctx context.Context, ceoID string, req CreateEntryRequest) (EntryResponse, error)
	UpdateMission(ctx context.Context, ceoID, id string, req UpdateEntryRequest) (EntryResponse, error)
	DeleteMission(ctx context.Context, ceoID, id string) error

	CreateCoreValue(ctx context.Context, ceoID string, req CreateEntryRequest) (EntryResponse, error)
	UpdateCoreValue(ctx context.Context, ceoID, id string, req UpdateEntryRequest) (EntryResponse, error)
	DeleteCoreValue(ctx context.Context, ceoID, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("companyprofile.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("companyprofile.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) GetProfile(ctx context.Context, ceoID string) (ProfileResponse, error) {
	resp := ProfileResponse{
		Missions:   []EntryResponse{},
		CoreValues: []EntryResponse{},
	}

	vision, err := s.repo.FindVision(ctx, ceoID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("get profile vision failed", zap.Error(err))
		return ProfileResponse{}, err
	}
	if vision != nil {
		resp.Vision = &VisionResponse{ID: vision.ID.String(), Content: vision.Content}
	}

	missions, err := s.repo.FindMissions(ctx, ceoID)
	if err != nil {
		s.logger.Error("get profile missions failed", zap.Error(err))
		return ProfileResponse{}, err
	}
	for _, m := range missions {
		resp.Missions = append(resp.Missions, toEntryResponse(m.ID, m.Content, m.Order))
	}

	values, err := s.repo.FindCoreValues(ctx, ceoID)
	if err != nil {
		s.logger.Error("get profile core values failed", zap.Error(err))
		return ProfileResponse{}, err
	}
	for _, cv := range values {
		resp.CoreValues = append(resp.CoreValues, toEntryResponse(cv.ID, cv.Content, cv.Order))
	}

	return resp, nil
}

func (s *service) UpsertVision(
	ctx context.Context,
	ceoID string,
	req UpsertVisionRequest,
) (VisionResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	v := &CompanyVision{
		ID:      uuid.New(),
		CeoID:   uuid.MustParse(ceoID),
		Content: req.Content,
	}

	if err := s.repo.UpsertVision(ctx, v); err != nil {
		s.logger.Error("upsert vision failed", zap.String("request_id", rid), zap.Error(err))
		return VisionResponse{}, err
	}

	// Ambil ulang: kalau konflik, id yang berlaku adalah baris lama.
	stored, err := s.repo.FindVision(ctx, ceoID)
	if err != nil {
		return VisionResponse{}, err
	}

	s.logger.Info("upsert vision success", zap.String("request_id", rid), zap.String("ceo_id", ceoID))
	return VisionResponse{ID: stored.ID.String(), Content: stored.Content}, nil
}

func (s *service) CreateMission(
	ctx context.Context,
	ceoID string,
	req CreateEntryRequest,
) (EntryResponse, error) {
	count, err := s.repo.CountMissions(ctx, ceoID)
	if err != nil {
		return EntryResponse{}, err
	}

	m := &CompanyMission{
		ID:      uuid.New(),
		CeoID:   uuid.MustParse(ceoID),
		Content: req.Content,
		Order:   int(count) + 1,
	}

	if err := s.repo.CreateMission(ctx, m); err != nil {
		s.logger.Error("create mission failed", zap.Error(err))
		return EntryResponse{}, err
	}

	return toEntryResponse(m.ID, m.Content, m.Order), nil
}

func (s *service) UpdateMission(
	ctx context.Context,
	ceoID, id string,
	req UpdateEntryRequest,
) (EntryResponse, error) {
	m, err := s.repo.FindMissionByIDAndTenant(ctx, ceoID, id)
	if err != nil {
		return EntryResponse{}, mapProfileError(err, profileerrors.ErrMissionNotFound)
	}

	m.Content = req.Content
	if err := s.repo.UpdateMission(ctx, m); err != nil {
		s.logger.Error("update mission failed", zap.Error(err))
		return EntryResponse{}, err
	}

	return toEntryResponse(m.ID, m.Content, m.Order), nil
}

func (s *service) DeleteMission(ctx context.Context, ceoID, id string) error {
	if _, err := s.repo.FindMissionByIDAndTenant(ctx, ceoID, id); err != nil {
		return mapProfileError(err, profileerrors.ErrMissionNotFound)
	}
	if err := s.repo.DeleteMission(ctx, ceoID, id); err != nil {
		s.logger.Error("delete mission failed", zap.Error(err))
		return err
	}
	return nil
}

func (s *service) CreateCoreValue(
	ctx context.Context,
	ceoID string,
	req CreateEntryRequest,
) (EntryResponse, error) {
	count, err := s.repo.CountCoreValues(ctx, ceoID)
	if err != nil {
		return EntryResponse{}, err
	}

	cv := &CompanyCoreValue{
		ID:      uuid.New(),
		CeoID:   uuid.MustParse(ceoID),
		Content: req.Content,
		Order:   int(count) + 1,
	}

	if err := s.repo.CreateCoreValue(ctx, cv); err != nil {
		s.logger.Error("create core value failed", zap.Error(err))
		return EntryResponse{}, err
	}

	return toEntryResponse(cv.ID, cv.Content, cv.Order), nil
}

func (s *service) UpdateCoreValue(
	ctx context.Context,
	ceoID, id string,
	req UpdateEntryRequest,
) (EntryResponse, error) {
	cv, err := s.repo.FindCoreValueByIDAndTenant(ctx, ceoID, id)
	if err != nil {
		return EntryResponse{}, mapProfileError(err, profileerrors.ErrCoreValueNotFound)
	}

	cv.Content = req.Content
	if err := s.repo.UpdateCoreValue(ctx, cv); err != nil {
		s.logger.Error("update core value failed", zap.Error(err))
		return EntryResponse{}, err
	}

	return toEntryResponse(cv.ID, cv.Content, cv.Order), nil
}

func (s *service) DeleteCoreValue(ctx context.Context, ceoID, id string) error {
	if _, err := s.repo.FindCoreValueByIDAndTenant(ctx, ceoID, id); err != nil {
		return mapProfileError(err, profileerrors.ErrCoreValueNotFound)
	}
	if err := s.repo.DeleteCoreValue(ctx, ceoID, id); err != nil {
		s.logger.Error("delete core value failed", zap.Error(err))
		return err
	}
	return nil
}

func mapProfileError(err, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return err
}

func toEntryResponse(id uuid.UUID, content string, order int) EntryResponse {
	return EntryResponse{
		ID:      id.String(),
		Content: content,
		Order:   order,
	}
}
