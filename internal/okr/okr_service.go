package okr

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"go-orgkit/internal/events"
	okrerrors "go-orgkit/internal/okr/errors"
	"go-orgkit/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	TreeKeyPrefix = "okr:tree:"
	treeCacheTTL  = 30 * time.Minute
)

func GetTreeKey(ceoID string) string {
	return TreeKeyPrefix + ceoID
}

//go:generate mockgen -source=okr_service.go -destination=mock/okr_service_mock.go -package=mock
type Service interface {
	GetTree(ctx context.Context, ceoID string) (TreeResponse, error)

	CreateGoal(ctx context.Context, ceoID string, req CreateGoalRequest) (GoalNode, error)
	UpdateGoal(ctx context.Context, ceoID, id string, req UpdateGoalRequest) (GoalNode, error)
	DeleteGoal(ctx context.Context, ceoID, id string) error

	CreateObjective(ctx context.Context, ceoID string, req CreateObjectiveRequest) (ObjectiveNode, error)
	UpdateObjective(ctx context.Context, ceoID, id string, req UpdateObjectiveRequest) (ObjectiveNode, error)
	DeleteObjective(ctx context.Context, ceoID, id string) error

	CreateKeyResult(ctx context.Context, ceoID string, req CreateKeyResultRequest) (KeyResultNode, error)
	UpdateKeyResult(ctx context.Context, ceoID, id string, req UpdateKeyResultRequest) (KeyResultNode, error)
	DeleteKeyResult(ctx context.Context, ceoID, id string) error

	CreateActionPlan(ctx context.Context, ceoID string, req CreateActionPlanRequest) (ActionPlanResponse, error)
	UpdateActionPlan(ctx context.Context, ceoID, id string, req UpdateActionPlanRequest) (ActionPlanResponse, error)
	DeleteActionPlan(ctx context.Context, ceoID, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox events.Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	outbox events.Repository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("okr.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("okr.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outbox,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

// GetTree mengembalikan pohon OKR lengkap dengan progress terhitung.
// Progress tidak pernah disimpan; setiap read menghitung ulang dari
// target/actual terkini. Hasil dicache per tenant.
func (s *service) GetTree(ctx context.Context, ceoID string) (TreeResponse, error) {
	cacheKey := GetTreeKey(ceoID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp TreeResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		goals, err := s.repo.FindTree(ctx, ceoID)
		if err != nil {
			s.logger.Error("load okr tree failed", zap.Error(err))
			return TreeResponse{}, err
		}

		resp := buildTreeResponse(goals)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, treeCacheTTL)
			}
		}

		return resp, nil
	})
	if err != nil {
		return TreeResponse{}, err
	}

	return v.(TreeResponse), nil
}

func (s *service) CreateGoal(ctx context.Context, ceoID string, req CreateGoalRequest) (GoalNode, error) {
	rid := contextutil.GetRequestID(ctx)

	g := &CompanyGoal{
		ID:    uuid.New(),
		CeoID: uuid.MustParse(ceoID),
		Goal:  req.Goal,
		Year:  req.Year,
	}

	if err := s.repo.CreateGoal(ctx, g); err != nil {
		s.logger.Error("create goal failed", zap.String("request_id", rid), zap.Error(err))
		return GoalNode{}, err
	}

	s.queueEvent(ctx, g.CeoID, events.TypeGoalCreated, map[string]any{
		"goal_id": g.ID.String(),
		"year":    g.Year,
	})
	s.invalidateTree(ctx, ceoID)

	s.logger.Info("create goal success",
		zap.String("request_id", rid),
		zap.String("goal_id", g.ID.String()),
	)
	return goalNode(*g), nil
}

func (s *service) UpdateGoal(ctx context.Context, ceoID, id string, req UpdateGoalRequest) (GoalNode, error) {
	g, err := s.repo.FindGoalByIDAndTenant(ctx, ceoID, id)
	if err != nil {
		return GoalNode{}, mapOkrError(err, okrerrors.ErrGoalNotFound)
	}

	g.Goal = req.Goal
	g.Year = req.Year

	if err := s.repo.UpdateGoal(ctx, g); err != nil {
		s.logger.Error("update goal failed", zap.Error(err))
		return GoalNode{}, err
	}

	s.invalidateTree(ctx, ceoID)
	return goalNode(*g), nil
}

// DeleteGoal menghapus goal beserta subtree-nya dalam satu transaksi, plus
// event lifecycle di outbox yang sama.
func (s *service) DeleteGoal(ctx context.Context, ceoID, id string) error {
	rid := contextutil.GetRequestID(ctx)

	g, err := s.repo.FindGoalByIDAndTenant(ctx, ceoID, id)
	if err != nil {
		return mapOkrError(err, okrerrors.ErrGoalNotFound)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete goal begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).DeleteGoalCascade(ctx, ceoID, id); err != nil {
		s.logger.Error("delete goal cascade failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}

	if s.outbox != nil {
		err := s.outbox.WithTx(tx).Queue(ctx, g.CeoID, events.TopicOkrLifecycle, events.TypeGoalDeleted, map[string]any{
			"goal_id": id,
			"year":    g.Year,
		})
		if err != nil {
			s.logger.Error("queue goal deleted event failed", zap.Error(err))
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete goal commit failed", zap.Error(err))
		return err
	}

	s.invalidateTree(ctx, ceoID)

	s.logger.Info("delete goal success",
		zap.String("request_id", rid),
		zap.String("goal_id", id),
	)
	return nil
}

func (s *service) CreateObjective(ctx context.Context, ceoID string, req CreateObjectiveRequest) (ObjectiveNode, error) {
	// Goal induk harus milik tenant yang sama.
	if _, err := s.repo.FindGoalByIDAndTenant(ctx, ceoID, req.CompanyGoalID); err != nil {
		return ObjectiveNode{}, mapOkrError(err, okrerrors.ErrGoalNotFound)
	}

	o := &Objective{
		ID:            uuid.New(),
		CeoID:         uuid.MustParse(ceoID),
		CompanyGoalID: uuid.MustParse(req.CompanyGoalID),
		Division:      req.Division,
		Objective:     req.Objective,
	}

	if err := s.repo.CreateObjective(ctx, o); err != nil {
		s.logger.Error("create objective failed", zap.Error(err))
		return ObjectiveNode{}, err
	}

	s.invalidateTree(ctx, ceoID)
	return objectiveNode(*o), nil
}

func (s *service) UpdateObjective(ctx context.Context, ceoID, id string, req UpdateObjectiveRequest) (ObjectiveNode, error) {
	o, err := s.repo.FindObjectiveByIDAndTenant(ctx, ceoID, id)
	if err != nil {
		return ObjectiveNode{}, mapOkrError(err, okrerrors.ErrObjectiveNotFound)
	}

	o.Division = req.Division
	o.Objective = req.Objective

	if err := s.repo.UpdateObjective(ctx, o); err != nil {
		s.logger.Error("update objective failed", zap.Error(err))
		return ObjectiveNode{}, err
	}

	s.invalidateTree(ctx, ceoID)
	return objectiveNode(*o), nil
}

func (s *service) DeleteObjective(ctx context.Context, ceoID, id string) error {
	if _, err := s.repo.FindObjectiveByIDAndTenant(ctx, ceoID, id); err != nil {
		return mapOkrError(err, okrerrors.ErrObjectiveNotFound)
	}

	if err := s.repo.DeleteObjectiveCascade(ctx, ceoID, id); err != nil {
		s.logger.Error("delete objective failed", zap.Error(err))
		return err
	}

	s.invalidateTree(ctx, ceoID)
	return nil
}

func (s *service) CreateKeyResult(ctx context.Context, ceoID string, req CreateKeyResultRequest) (KeyResultNode, error) {
	if _, err := s.repo.FindObjectiveByIDAndTenant(ctx, ceoID, req.ObjectiveID); err != nil {
		return KeyResultNode{}, mapOkrError(err, okrerrors.ErrObjectiveNotFound)
	}

	unit := req.Unit
	if unit == "" {
		unit = DefaultUnit
	}
	weight := float64(DefaultWeight)
	if req.Weight != nil {
		weight = *req.Weight
	}

	kr := &KeyResult{
		ID:          uuid.New(),
		ObjectiveID: uuid.MustParse(req.ObjectiveID),
		KeyResult:   req.KeyResult,
		Target:      req.Target,
		Actual:      req.Actual,
		Unit:        unit,
		Weight:      weight,
	}

	if err := s.repo.CreateKeyResult(ctx, kr); err != nil {
		s.logger.Error("create key result failed", zap.Error(err))
		return KeyResultNode{}, err
	}

	s.invalidateTree(ctx, ceoID)
	return keyResultNode(*kr), nil
}

// UpdateKeyResult me-resolve kepemilikan lewat objective induk sebelum
// menulis; id lintas tenant berakhir NotFound.
func (s *service) UpdateKeyResult(ctx context.Context, ceoID, id string, req UpdateKeyResultRequest) (KeyResultNode, error) {
	kr, err := s.repo.FindKeyResultByIDAndTenant(ctx, ceoID, id)
	if err != nil {
		return KeyResultNode{}, mapOkrError(err, okrerrors.ErrKeyResultNotFound)
	}

	kr.KeyResult = req.KeyResult
	kr.Target = req.Target
	kr.Actual = req.Actual
	if req.Unit != "" {
		kr.Unit = req.Unit
	}
	if req.Weight != nil {
		kr.Weight = *req.Weight
	}

	if err := s.repo.UpdateKeyResult(ctx, kr); err != nil {
		s.logger.Error("update key result failed", zap.Error(err))
		return KeyResultNode{}, err
	}

	s.invalidateTree(ctx, ceoID)
	return keyResultNode(*kr), nil
}

func (s *service) DeleteKeyResult(ctx context.Context, ceoID, id string) error {
	if _, err := s.repo.FindKeyResultByIDAndTenant(ctx, ceoID, id); err != nil {
		return mapOkrError(err, okrerrors.ErrKeyResultNotFound)
	}

	if err := s.repo.DeleteKeyResultCascade(ctx, id); err != nil {
		s.logger.Error("delete key result failed", zap.Error(err))
		return err
	}

	s.invalidateTree(ctx, ceoID)
	return nil
}

func (s *service) CreateActionPlan(ctx context.Context, ceoID string, req CreateActionPlanRequest) (ActionPlanResponse, error) {
	if _, err := s.repo.FindKeyResultByIDAndTenant(ctx, ceoID, req.KeyResultID); err != nil {
		return ActionPlanResponse{}, mapOkrError(err, okrerrors.ErrKeyResultNotFound)
	}

	ap := &ActionPlan{
		ID:          uuid.New(),
		KeyResultID: uuid.MustParse(req.KeyResultID),
		Activity:    req.Activity,
	}

	if err := s.repo.CreateActionPlan(ctx, ap); err != nil {
		s.logger.Error("create action plan failed", zap.Error(err))
		return ActionPlanResponse{}, err
	}

	s.invalidateTree(ctx, ceoID)
	return actionPlanResponse(*ap), nil
}

func (s *service) UpdateActionPlan(ctx context.Context, ceoID, id string, req UpdateActionPlanRequest) (ActionPlanResponse, error) {
	ap, err := s.repo.FindActionPlanByIDAndTenant(ctx, ceoID, id)
	if err != nil {
		return ActionPlanResponse{}, mapOkrError(err, okrerrors.ErrActionPlanNotFound)
	}

	ap.Activity = req.Activity
	if req.IsCompleted != nil {
		ap.IsCompleted = *req.IsCompleted
	}

	if err := s.repo.UpdateActionPlan(ctx, ap); err != nil {
		s.logger.Error("update action plan failed", zap.Error(err))
		return ActionPlanResponse{}, err
	}

	s.invalidateTree(ctx, ceoID)
	return actionPlanResponse(*ap), nil
}

func (s *service) DeleteActionPlan(ctx context.Context, ceoID, id string) error {
	if _, err := s.repo.FindActionPlanByIDAndTenant(ctx, ceoID, id); err != nil {
		return mapOkrError(err, okrerrors.ErrActionPlanNotFound)
	}

	if err := s.repo.DeleteActionPlan(ctx, id); err != nil {
		s.logger.Error("delete action plan failed", zap.Error(err))
		return err
	}

	s.invalidateTree(ctx, ceoID)
	return nil
}

func (s *service) invalidateTree(ctx context.Context, ceoID string) {
	if s.rdb == nil {
		return
	}
	cacheKey := GetTreeKey(ceoID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate okr tree cache",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
	}
}

func (s *service) queueEvent(ctx context.Context, ceoID uuid.UUID, eventType string, payload any) {
	if s.outbox == nil {
		return
	}
	if err := s.outbox.Queue(ctx, ceoID, events.TopicOkrLifecycle, eventType, payload); err != nil {
		s.logger.Error("queue okr event failed",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}

func buildTreeResponse(goals []CompanyGoal) TreeResponse {
	resp := TreeResponse{Goals: make([]GoalNode, len(goals))}
	for i, g := range goals {
		node := goalNode(g)
		node.Objectives = make([]ObjectiveNode, len(g.Objectives))
		for j, o := range g.Objectives {
			objNode := objectiveNode(o)
			objNode.Progress = ObjectiveProgress(o.KeyResults)
			objNode.KeyResults = make([]KeyResultNode, len(o.KeyResults))
			for k, kr := range o.KeyResults {
				krNode := keyResultNode(kr)
				krNode.ActionPlans = make([]ActionPlanResponse, len(kr.ActionPlans))
				for l, ap := range kr.ActionPlans {
					krNode.ActionPlans[l] = actionPlanResponse(ap)
				}
				objNode.KeyResults[k] = krNode
			}
			node.Objectives[j] = objNode
		}
		resp.Goals[i] = node
	}
	return resp
}

func mapOkrError(err, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return err
}

func goalNode(g CompanyGoal) GoalNode {
	return GoalNode{
		ID:         g.ID.String(),
		Goal:       g.Goal,
		Year:       g.Year,
		Objectives: []ObjectiveNode{},
	}
}

func objectiveNode(o Objective) ObjectiveNode {
	return ObjectiveNode{
		ID:         o.ID.String(),
		Division:   o.Division,
		Objective:  o.Objective,
		KeyResults: []KeyResultNode{},
	}
}

func actionPlanResponse(ap ActionPlan) ActionPlanResponse {
	return ActionPlanResponse{
		ID:          ap.ID.String(),
		Activity:    ap.Activity,
		IsCompleted: ap.IsCompleted,
	}
}

func keyResultNode(kr KeyResult) KeyResultNode {
	return KeyResultNode{
		ID:          kr.ID.String(),
		KeyResult:   kr.KeyResult,
		Target:      kr.Target,
		Actual:      kr.Actual,
		Unit:        kr.Unit,
		Weight:      kr.Weight,
		Progress:    KeyResultProgress(kr.Target, kr.Actual),
		ActionPlans: []ActionPlanResponse{},
	}
}
