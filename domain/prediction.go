package domain

import (
	"errors"
	"time"

	"gorm.io/datatypes"
)

var ErrPredictionNotFound = errors.New("prediction not found")

// PatientInput holds the clinical attributes a prediction is made from.
// HbA1c and blood glucose are optional; when absent the inference service
// estimates them from the other inputs.
type PatientInput struct {
	Gender            string   `json:"gender"`
	Age               float64  `json:"age"`
	Hypertension      bool     `json:"hypertension"`
	HeartDisease      bool     `json:"heart_disease"`
	SmokingHistory    string   `json:"smoking_history"`
	BMI               float64  `json:"bmi"`
	HbA1cLevel        *float64 `json:"hba1c_level,omitempty"`
	BloodGlucoseLevel *float64 `json:"blood_glucose_level,omitempty"`
}

const (
	PredictionHighRisk = "High Risk"
	PredictionLowRisk  = "Low Risk"
)

type RiskResult struct {
	Prediction      string           `json:"prediction"`
	RiskScore       float64          `json:"riskScore"`
	Details         RiskDetails      `json:"details"`
	Recommendations *Recommendations `json:"recommendations,omitempty"`
}

type RiskDetails struct {
	Factors map[string]string `json:"factors"`
}

type Recommendations struct {
	Lifestyle    []string `json:"lifestyle"`
	Monitoring   []string `json:"monitoring"`
	Consultation []string `json:"consultation"`
}

// Prediction is a stored risk assessment. The owner column is never
// serialized; records are only visible to the user that created them.
type Prediction struct {
	ID        string                           `gorm:"primaryKey;column:id" json:"id"`
	UserID    uint                             `gorm:"column:user_id;not null;index" json:"-"`
	InputData datatypes.JSONType[PatientInput] `gorm:"column:input_data;type:jsonb" json:"inputData"`
	Result    datatypes.JSONType[RiskResult]   `gorm:"column:result;type:jsonb" json:"result"`
	CreatedAt time.Time                        `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (Prediction) TableName() string {
	return "predictions"
}

type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int   `json:"pages"`
}

type PredictionPage struct {
	Predictions []Prediction `json:"predictions"`
	Pagination  Pagination   `json:"pagination"`
}
