package prediction

import (
	"math/rand"
	"sync"
	"time"

	"diaPredict/domain"
)

// Clinical thresholds for the rule-based risk factors.
const (
	glucoseHighThreshold   = 140.0
	hba1cElevatedThreshold = 6.5
	bmiOverweightThreshold = 25.0
)

func staticRecommendations() *domain.Recommendations {
	return &domain.Recommendations{
		Lifestyle: []string{
			"Maintain a balanced diet low in refined sugar",
			"Aim for at least 30 minutes of physical activity per day",
		},
		Monitoring: []string{
			"Monitor blood glucose levels regularly",
		},
		Consultation: []string{
			"Schedule a follow-up consultation with your physician",
		},
	}
}

// FallbackSynthesizer produces a risk result with the same shape as a real
// inference response when the inference service is down. The classification
// and score are random; the factors follow fixed clinical thresholds.
type FallbackSynthesizer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewFallbackSynthesizer accepts a seeded source so tests can assert exact
// output; pass nil for a time-seeded one.
func NewFallbackSynthesizer(rng *rand.Rand) *FallbackSynthesizer {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &FallbackSynthesizer{rng: rng}
}

func (f *FallbackSynthesizer) Synthesize(input domain.PatientInput) domain.RiskResult {
	// rand.Rand is not safe for concurrent use
	f.mu.Lock()
	label := domain.PredictionLowRisk
	if f.rng.Intn(2) == 0 {
		label = domain.PredictionHighRisk
	}
	score := f.rng.Float64()
	f.mu.Unlock()

	return domain.RiskResult{
		Prediction:      label,
		RiskScore:       score,
		Details:         domain.RiskDetails{Factors: riskFactors(input)},
		Recommendations: staticRecommendations(),
	}
}

func riskFactors(input domain.PatientInput) map[string]string {
	factors := map[string]string{
		"blood_glucose": "Normal",
		"hba1c":         "Normal",
		"bmi":           "Normal",
		"hypertension":  "Absent",
		"heart_disease": "Absent",
	}

	if input.BloodGlucoseLevel != nil && *input.BloodGlucoseLevel > glucoseHighThreshold {
		factors["blood_glucose"] = "High"
	}
	if input.HbA1cLevel != nil && *input.HbA1cLevel > hba1cElevatedThreshold {
		factors["hba1c"] = "Elevated"
	}
	if input.BMI > bmiOverweightThreshold {
		factors["bmi"] = "Overweight"
	}
	if input.Hypertension {
		factors["hypertension"] = "Present"
	}
	if input.HeartDisease {
		factors["heart_disease"] = "Present"
	}

	return factors
}
