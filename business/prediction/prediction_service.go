package prediction

import (
	"context"
	"math"

	"diaPredict/domain"
	"diaPredict/pkg/logger"
	"diaPredict/pkg/metrics"

	"gorm.io/datatypes"
)

// InferenceGateway contract interface
type InferenceGateway interface {
	MakePrediction(ctx context.Context, input domain.PatientInput) (domain.RiskResult, error)
}

// PredictionRepository contract interface
type PredictionRepository interface {
	Create(ctx context.Context, prediction *domain.Prediction) error
	FindByOwner(ctx context.Context, userID uint, page, limit int) ([]domain.Prediction, int64, error)
	FindOne(ctx context.Context, id string, userID uint) (domain.Prediction, error)
	DeleteOne(ctx context.Context, id string, userID uint) error
}

// StoreHandle reports whether the persistent store can be used for the
// current request. It is queried exactly once per operation.
type StoreHandle interface {
	Available(ctx context.Context) bool
}

type Service struct {
	repo      PredictionRepository
	store     StoreHandle
	inference InferenceGateway
	fallback  *FallbackSynthesizer
	mock      *MockStore
}

func NewService(
	repo PredictionRepository,
	store StoreHandle,
	inference InferenceGateway,
	fallback *FallbackSynthesizer,
	mock *MockStore,
) *Service {
	if fallback == nil {
		fallback = NewFallbackSynthesizer(nil)
	}
	if mock == nil {
		mock = NewMockStore(nil, fallback)
	}

	return &Service{
		repo:      repo,
		store:     store,
		inference: inference,
		fallback:  fallback,
		mock:      mock,
	}
}

// Create runs inference (or the fallback), attaches recommendations and
// persists the record. With the store down, a structurally identical
// non-persisted record is returned; the second return value reports that
// degraded path so callers can mark the response.
func (s *Service) Create(ctx context.Context, userID uint, input domain.PatientInput) (domain.Prediction, bool, error) {
	result, err := s.inference.MakePrediction(ctx, input)
	if err != nil {
		logger.Warn("Inference service failed, using fallback result", "error", err)
		metrics.InferenceFallbackTotal.Inc()
		result = s.fallback.Synthesize(input)
	}
	result = attachRecommendations(result)

	if !s.store.Available(ctx) {
		metrics.MockStoreResponsesTotal.Inc()
		return s.mock.Create(userID, input, result), true, nil
	}

	prediction := domain.Prediction{
		UserID:    userID,
		InputData: datatypes.NewJSONType(input),
		Result:    datatypes.NewJSONType(result),
	}

	if err := s.repo.Create(ctx, &prediction); err != nil {
		return domain.Prediction{}, false, err
	}

	return prediction, false, nil
}

func (s *Service) List(ctx context.Context, userID uint, page, limit int) (domain.PredictionPage, bool, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}

	if !s.store.Available(ctx) {
		metrics.MockStoreResponsesTotal.Inc()
		return s.mock.List(userID), true, nil
	}

	predictions, total, err := s.repo.FindByOwner(ctx, userID, page, limit)
	if err != nil {
		return domain.PredictionPage{}, false, err
	}

	return domain.PredictionPage{
		Predictions: predictions,
		Pagination: domain.Pagination{
			Total: total,
			Page:  page,
			Limit: limit,
			Pages: int(math.Ceil(float64(total) / float64(limit))),
		},
	}, false, nil
}

func (s *Service) Get(ctx context.Context, userID uint, id string) (domain.Prediction, bool, error) {
	if !s.store.Available(ctx) {
		metrics.MockStoreResponsesTotal.Inc()
		prediction, err := s.mock.Get(userID, id)
		return prediction, true, err
	}

	prediction, err := s.repo.FindOne(ctx, id, userID)
	if err != nil {
		return domain.Prediction{}, false, err
	}

	return prediction, false, nil
}

func (s *Service) Delete(ctx context.Context, userID uint, id string) (bool, error) {
	if !s.store.Available(ctx) {
		metrics.MockStoreResponsesTotal.Inc()
		return true, s.mock.Delete(id)
	}

	return false, s.repo.DeleteOne(ctx, id, userID)
}

// attachRecommendations guarantees every result carries a recommendation
// set; the inference service may or may not supply its own.
func attachRecommendations(result domain.RiskResult) domain.RiskResult {
	if result.Recommendations == nil {
		result.Recommendations = staticRecommendations()
	}

	return result
}
