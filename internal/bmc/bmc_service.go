package bmc

import (
	"context"
	"errors"

	bmcerrors "go-orgkit/internal/bmc/errors"
	"go-orgkit/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=bmc_service.go -destination=mock/bmc_service_mock.go -package=mock
type Service interface {
	GetCanvas(ctx context.Context, ceoID string) (CanvasResponse, error)
	CreateItem(ctx context.Context, ceoID string, req CreateItemRequest) (ItemResponse, error)
	UpdateItem(ctx context.Context, ceoID, id string, req UpdateItemRequest) (ItemResponse, error)
	DeleteItem(ctx context.Context, ceoID, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("bmc.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("bmc.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) GetCanvas(ctx context.Context, ceoID string) (CanvasResponse, error) {
	items, err := s.repo.FindAllByTenant(ctx, ceoID)
	if err != nil {
		s.logger.Error("get canvas failed", zap.Error(err))
		return nil, err
	}

	canvas := make(CanvasResponse, len(CanonicalBlocks))
	for _, block := range CanonicalBlocks {
		canvas[block] = []ItemResponse{}
	}
	for _, item := range items {
		canvas[item.Block] = append(canvas[item.Block], toItemResponse(item))
	}

	return canvas, nil
}

func (s *service) CreateItem(
	ctx context.Context,
	ceoID string,
	req CreateItemRequest,
) (ItemResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	if !ValidBlock(req.Block) {
		return ItemResponse{}, bmcerrors.ErrInvalidBlock
	}

	color := req.Color
	if color == "" {
		color = DefaultColor
	}

	item := &Item{
		ID:      uuid.New(),
		CeoID:   uuid.MustParse(ceoID),
		Block:   req.Block,
		Content: req.Content,
		Color:   color,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		s.logger.Error("create bmc item failed", zap.String("request_id", rid), zap.Error(err))
		return ItemResponse{}, err
	}

	s.logger.Info("create bmc item success",
		zap.String("request_id", rid),
		zap.String("block", item.Block),
	)
	return toItemResponse(*item), nil
}

func (s *service) UpdateItem(
	ctx context.Context,
	ceoID, id string,
	req UpdateItemRequest,
) (ItemResponse, error) {
	item, err := s.repo.FindByIDAndTenant(ctx, ceoID, id)
	if err != nil {
		return ItemResponse{}, mapItemError(err)
	}

	item.Content = req.Content
	if req.Color != "" {
		item.Color = req.Color
	}

	if err := s.repo.Update(ctx, item); err != nil {
		s.logger.Error("update bmc item failed", zap.Error(err))
		return ItemResponse{}, err
	}

	return toItemResponse(*item), nil
}

func (s *service) DeleteItem(ctx context.Context, ceoID, id string) error {
	if _, err := s.repo.FindByIDAndTenant(ctx, ceoID, id); err != nil {
		return mapItemError(err)
	}
	if err := s.repo.Delete(ctx, ceoID, id); err != nil {
		s.logger.Error("delete bmc item failed", zap.Error(err))
		return err
	}
	return nil
}

func mapItemError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return bmcerrors.ErrItemNotFound
	}
	return err
}

func toItemResponse(item Item) ItemResponse {
	return ItemResponse{
		ID:      item.ID.String(),
		Block:   item.Block,
		Content: item.Content,
		Color:   item.Color,
	}
}
