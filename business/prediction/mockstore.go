package prediction

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"diaPredict/domain"

	"gorm.io/datatypes"
)

const (
	// MockIDPrefix marks records that were synthesized instead of stored.
	MockIDPrefix = "mock-"
	// SentinelID is the one fixed id mock-mode lookups always recognize,
	// simulating a known existing record.
	SentinelID = "60d21b4667d0d8992e610c85"

	mockHistorySize = 5
)

// MockStore synthesizes prediction records with the same shape as persisted
// ones when the database is unavailable. Nothing it returns is stored
// anywhere; every response is fabricated on the spot.
type MockStore struct {
	mu       sync.Mutex
	rng      *rand.Rand
	fallback *FallbackSynthesizer
}

// NewMockStore accepts a seeded source so tests can assert exact output;
// pass nil for a time-seeded one.
func NewMockStore(rng *rand.Rand, fallback *FallbackSynthesizer) *MockStore {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if fallback == nil {
		fallback = NewFallbackSynthesizer(nil)
	}

	return &MockStore{rng: rng, fallback: fallback}
}

// Accepts reports whether mock mode recognizes the id.
func (m *MockStore) Accepts(id string) bool {
	return strings.HasPrefix(id, MockIDPrefix) || id == SentinelID
}

func (m *MockStore) Create(userID uint, input domain.PatientInput, result domain.RiskResult) domain.Prediction {
	now := time.Now()

	return domain.Prediction{
		ID:        fmt.Sprintf("%s%d", MockIDPrefix, now.UnixMilli()),
		UserID:    userID,
		InputData: datatypes.NewJSONType(input),
		Result:    datatypes.NewJSONType(result),
		CreatedAt: now,
	}
}

// List fabricates a fixed-size history with randomized vitals, one day
// apart, newest first. Pagination always reports total=5, page=1,
// limit=10, pages=1 no matter what the caller requested; this mirrors the
// legacy mock behavior and is intentionally not "fixed".
func (m *MockStore) List(userID uint) domain.PredictionPage {
	now := time.Now()

	predictions := make([]domain.Prediction, 0, mockHistorySize)
	for i := 0; i < mockHistorySize; i++ {
		createdAt := now.AddDate(0, 0, -i)
		input := m.randomInput()
		predictions = append(predictions, domain.Prediction{
			ID:        fmt.Sprintf("%s%d", MockIDPrefix, createdAt.UnixMilli()),
			UserID:    userID,
			InputData: datatypes.NewJSONType(input),
			Result:    datatypes.NewJSONType(m.fallback.Synthesize(input)),
			CreatedAt: createdAt,
		})
	}

	return domain.PredictionPage{
		Predictions: predictions,
		Pagination: domain.Pagination{
			Total: mockHistorySize,
			Page:  1,
			Limit: 10,
			Pages: 1,
		},
	}
}

// Get returns one canned record for any accepted id; the id's suffix does
// not change the content. Unrecognized ids are reported as missing.
func (m *MockStore) Get(userID uint, id string) (domain.Prediction, error) {
	if !m.Accepts(id) {
		return domain.Prediction{}, domain.ErrPredictionNotFound
	}

	input := cannedInput()

	return domain.Prediction{
		ID:        id,
		UserID:    userID,
		InputData: datatypes.NewJSONType(input),
		Result: datatypes.NewJSONType(domain.RiskResult{
			Prediction:      domain.PredictionLowRisk,
			RiskScore:       0.34,
			Details:         domain.RiskDetails{Factors: riskFactors(input)},
			Recommendations: staticRecommendations(),
		}),
		CreatedAt: time.Now(),
	}, nil
}

// Delete acknowledges accepted ids without touching any state, so repeated
// deletes of the same mock id keep succeeding.
func (m *MockStore) Delete(id string) error {
	if !m.Accepts(id) {
		return domain.ErrPredictionNotFound
	}

	return nil
}

func (m *MockStore) randomInput() domain.PatientInput {
	m.mu.Lock()
	defer m.mu.Unlock()

	genders := []string{"Male", "Female"}
	smoking := []string{"never", "former", "current"}

	hba1c := 5.0 + m.rng.Float64()*3.0
	glucose := float64(90 + m.rng.Intn(90))

	return domain.PatientInput{
		Gender:            genders[m.rng.Intn(len(genders))],
		Age:               float64(30 + m.rng.Intn(40)),
		Hypertension:      m.rng.Intn(4) == 0,
		HeartDisease:      m.rng.Intn(5) == 0,
		SmokingHistory:    smoking[m.rng.Intn(len(smoking))],
		BMI:               20.0 + m.rng.Float64()*15.0,
		HbA1cLevel:        &hba1c,
		BloodGlucoseLevel: &glucose,
	}
}

func cannedInput() domain.PatientInput {
	hba1c := 6.2
	glucose := 145.0

	return domain.PatientInput{
		Gender:            "Female",
		Age:               45,
		Hypertension:      false,
		HeartDisease:      false,
		SmokingHistory:    "never",
		BMI:               28.4,
		HbA1cLevel:        &hba1c,
		BloodGlucoseLevel: &glucose,
	}
}
