package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"diaPredict/domain"
	"diaPredict/pkg/logger"
	"diaPredict/pkg/metrics"
	"diaPredict/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	PredictionHandler struct {
		validate          *validator.Validate
		predictionService PredictionService
		timeout           time.Duration
	}

	PredictionService interface {
		Create(ctx context.Context, userID uint, input domain.PatientInput) (domain.Prediction, bool, error)
		List(ctx context.Context, userID uint, page, limit int) (domain.PredictionPage, bool, error)
		Get(ctx context.Context, userID uint, id string) (domain.Prediction, bool, error)
		Delete(ctx context.Context, userID uint, id string) (bool, error)
	}

	CreatePredictionRequest struct {
		Gender            string   `json:"gender" validate:"required,oneof=Male Female"`
		Age               *float64 `json:"age" validate:"required"`
		Hypertension      *bool    `json:"hypertension"`
		HeartDisease      *bool    `json:"heart_disease" validate:"required"`
		SmokingHistory    string   `json:"smoking_history" validate:"required,oneof=never former current"`
		BMI               *float64 `json:"bmi" validate:"required"`
		HbA1cLevel        *float64 `json:"hba1c_level"`
		BloodGlucoseLevel *float64 `json:"blood_glucose_level"`
	}

	ListPredictionsQuery struct {
		Page  int `query:"page"`
		Limit int `query:"limit"`
	}
)

func NewPredictionHandler(predictionService PredictionService) *PredictionHandler {
	return &PredictionHandler{
		validate:          newValidator(),
		predictionService: predictionService,
		timeout:           15 * time.Second,
	}
}

// mockMarker annotates degraded-mode messages so clients can tell a
// synthesized response from a persisted one.
func mockMarker(msg string, mocked bool) string {
	if mocked {
		return msg + " (MOCK - No DB)"
	}

	return msg
}

func (h *PredictionHandler) Create(c echo.Context) error {
	start := time.Now()
	metrics.PredictionRequestsTotal.WithLabelValues("create").Inc()

	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, response.Error("unauthorized"))
	}

	var req CreatePredictionRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, response.Error(bindMessage(err)))
	}

	if err := h.validate.Struct(&req); err != nil {
		logger.Error("Failed to validate prediction request", err)
		return c.JSON(http.StatusBadRequest, response.Error(validationMessage(err)))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	input := domain.PatientInput{
		Gender:            req.Gender,
		Age:               *req.Age,
		Hypertension:      req.Hypertension != nil && *req.Hypertension,
		HeartDisease:      *req.HeartDisease,
		SmokingHistory:    req.SmokingHistory,
		BMI:               *req.BMI,
		HbA1cLevel:        req.HbA1cLevel,
		BloodGlucoseLevel: req.BloodGlucoseLevel,
	}

	prediction, mocked, err := h.predictionService.Create(ctx, userID, input)
	if err != nil {
		logger.Error("Failed to create prediction", err)
		return c.JSON(http.StatusInternalServerError, response.Error(err.Error()))
	}

	metrics.PredictionCreateLatency.Observe(time.Since(start).Seconds())

	return c.JSON(http.StatusCreated, response.SuccessMessage(
		mockMarker("Prediction created successfully", mocked),
		prediction,
	))
}

func (h *PredictionHandler) List(c echo.Context) error {
	metrics.PredictionRequestsTotal.WithLabelValues("list").Inc()

	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, response.Error("unauthorized"))
	}

	var q ListPredictionsQuery
	if err := c.Bind(&q); err != nil {
		logger.Error("Invalid list query", err)
		return c.JSON(http.StatusBadRequest, response.Error(bindMessage(err)))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	page, mocked, err := h.predictionService.List(ctx, userID, q.Page, q.Limit)
	if err != nil {
		logger.Error("Failed to list predictions", err)
		return c.JSON(http.StatusInternalServerError, response.Error(err.Error()))
	}

	if mocked {
		return c.JSON(http.StatusOK, response.SuccessMessage(
			mockMarker("Predictions retrieved successfully", mocked),
			page,
		))
	}

	return c.JSON(http.StatusOK, response.Success(page))
}

func (h *PredictionHandler) GetByID(c echo.Context) error {
	metrics.PredictionRequestsTotal.WithLabelValues("get").Inc()

	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, response.Error("unauthorized"))
	}

	id := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	prediction, mocked, err := h.predictionService.Get(ctx, userID, id)
	if err != nil {
		if errors.Is(err, domain.ErrPredictionNotFound) {
			return c.JSON(http.StatusNotFound, response.Error(err.Error()))
		}
		logger.Error("Failed to get prediction", err)
		return c.JSON(http.StatusInternalServerError, response.Error(err.Error()))
	}

	if mocked {
		return c.JSON(http.StatusOK, response.SuccessMessage(
			mockMarker("Prediction retrieved successfully", mocked),
			echo.Map{"prediction": prediction},
		))
	}

	return c.JSON(http.StatusOK, response.Success(echo.Map{"prediction": prediction}))
}

func (h *PredictionHandler) Delete(c echo.Context) error {
	metrics.PredictionRequestsTotal.WithLabelValues("delete").Inc()

	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, response.Error("unauthorized"))
	}

	id := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	mocked, err := h.predictionService.Delete(ctx, userID, id)
	if err != nil {
		if errors.Is(err, domain.ErrPredictionNotFound) {
			return c.JSON(http.StatusNotFound, response.Error(err.Error()))
		}
		logger.Error("Failed to delete prediction", err)
		return c.JSON(http.StatusInternalServerError, response.Error(err.Error()))
	}

	return c.JSON(http.StatusOK, response.SuccessMessage(
		mockMarker("Prediction deleted successfully", mocked),
		nil,
	))
}
