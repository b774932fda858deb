package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"diaPredict/domain"
	"diaPredict/pkg/response"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

type fakePredictionService struct {
	record domain.Prediction
	page   domain.PredictionPage
	mocked bool
	err    error

	lastPage  int
	lastLimit int
}

func (f *fakePredictionService) Create(_ context.Context, _ uint, _ domain.PatientInput) (domain.Prediction, bool, error) {
	return f.record, f.mocked, f.err
}

func (f *fakePredictionService) List(_ context.Context, _ uint, page, limit int) (domain.PredictionPage, bool, error) {
	f.lastPage = page
	f.lastLimit = limit
	return f.page, f.mocked, f.err
}

func (f *fakePredictionService) Get(_ context.Context, _ uint, _ string) (domain.Prediction, bool, error) {
	return f.record, f.mocked, f.err
}

func (f *fakePredictionService) Delete(_ context.Context, _ uint, _ string) (bool, error) {
	return f.mocked, f.err
}

func storedPrediction() domain.Prediction {
	return domain.Prediction{
		ID:     "3f0c8a1e-0000-0000-0000-000000000001",
		UserID: 1,
		InputData: datatypes.NewJSONType(domain.PatientInput{
			Gender: "Male", Age: 52, SmokingHistory: "former", BMI: 27.3,
		}),
		Result: datatypes.NewJSONType(domain.RiskResult{
			Prediction: domain.PredictionHighRisk,
			RiskScore:  0.81,
		}),
		CreatedAt: time.Now(),
	}
}

const validCreateBody = `{
	"gender": "Male",
	"age": 52,
	"heart_disease": false,
	"smoking_history": "former",
	"bmi": 27.3
}`

// request builds an authenticated echo context the way the auth middleware
// would have prepared it.
func request(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", uint(1))

	return c, rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) response.Body {
	t.Helper()

	var body response.Body
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func TestPredictionCreate_Success(t *testing.T) {
	svc := &fakePredictionService{record: storedPrediction()}
	h := NewPredictionHandler(svc)

	c, rec := request(t, http.MethodPost, "/api/v1/predictions", validCreateBody)
	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusCreated, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "success", body.Status)
	assert.Equal(t, "Prediction created successfully", body.Message)

	data, ok := body.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, svc.record.ID, data["id"])
	assert.Contains(t, data, "inputData")
	assert.Contains(t, data, "result")
	assert.Contains(t, data, "createdAt")
}

func TestPredictionCreate_MockMode(t *testing.T) {
	record := storedPrediction()
	record.ID = "mock-1700000000000"
	svc := &fakePredictionService{record: record, mocked: true}
	h := NewPredictionHandler(svc)

	c, rec := request(t, http.MethodPost, "/api/v1/predictions", validCreateBody)
	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusCreated, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "success", body.Status)
	assert.Contains(t, body.Message, "(MOCK - No DB)")

	data := body.Data.(map[string]any)
	assert.True(t, strings.HasPrefix(data["id"].(string), "mock-"))
}

func TestPredictionCreate_MissingRequiredField(t *testing.T) {
	h := NewPredictionHandler(&fakePredictionService{})

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"missing gender", `{"age":52,"heart_disease":false,"smoking_history":"former","bmi":27.3}`, "gender"},
		{"missing age", `{"gender":"Male","heart_disease":false,"smoking_history":"former","bmi":27.3}`, "age"},
		{"missing heart_disease", `{"gender":"Male","age":52,"smoking_history":"former","bmi":27.3}`, "heart_disease"},
		{"missing smoking_history", `{"gender":"Male","age":52,"heart_disease":false,"bmi":27.3}`, "smoking_history"},
		{"missing bmi", `{"gender":"Male","age":52,"heart_disease":false,"smoking_history":"former"}`, "bmi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := request(t, http.MethodPost, "/api/v1/predictions", tt.body)
			require.NoError(t, h.Create(c))

			assert.Equal(t, http.StatusBadRequest, rec.Code)

			body := decodeBody(t, rec)
			assert.Equal(t, "error", body.Status)
			assert.Contains(t, body.Message, tt.field)
		})
	}
}

func TestPredictionCreate_InvalidEnumValue(t *testing.T) {
	h := NewPredictionHandler(&fakePredictionService{})

	c, rec := request(t, http.MethodPost, "/api/v1/predictions",
		`{"gender":"Other","age":52,"heart_disease":false,"smoking_history":"former","bmi":27.3}`)
	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeBody(t, rec)
	assert.Contains(t, body.Message, "gender")
	assert.Contains(t, body.Message, "Male")
}

func TestPredictionCreate_OptionalFieldTypeError(t *testing.T) {
	h := NewPredictionHandler(&fakePredictionService{})

	c, rec := request(t, http.MethodPost, "/api/v1/predictions",
		`{"gender":"Male","age":52,"heart_disease":false,"smoking_history":"former","bmi":27.3,"hba1c_level":"six"}`)
	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeBody(t, rec)
	assert.Contains(t, body.Message, "hba1c_level")
	assert.Contains(t, body.Message, "omit this field")
}

func TestPredictionCreate_Unauthenticated(t *testing.T) {
	h := NewPredictionHandler(&fakePredictionService{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/predictions", strings.NewReader(validCreateBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPredictionCreate_ServiceError(t *testing.T) {
	svc := &fakePredictionService{err: context.DeadlineExceeded}
	h := NewPredictionHandler(svc)

	c, rec := request(t, http.MethodPost, "/api/v1/predictions", validCreateBody)
	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "error", body.Status)
	assert.Equal(t, context.DeadlineExceeded.Error(), body.Message)
}

func TestPredictionList_PassesQueryParams(t *testing.T) {
	svc := &fakePredictionService{
		page: domain.PredictionPage{
			Predictions: []domain.Prediction{storedPrediction()},
			Pagination:  domain.Pagination{Total: 1, Page: 2, Limit: 5, Pages: 1},
		},
	}
	h := NewPredictionHandler(svc)

	c, rec := request(t, http.MethodGet, "/api/v1/predictions?page=2&limit=5", "")
	require.NoError(t, h.List(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, svc.lastPage)
	assert.Equal(t, 5, svc.lastLimit)

	body := decodeBody(t, rec)
	assert.Equal(t, "success", body.Status)
	assert.Empty(t, body.Message)

	data := body.Data.(map[string]any)
	assert.Contains(t, data, "predictions")
	assert.Contains(t, data, "pagination")
}

func TestPredictionList_MockMode(t *testing.T) {
	svc := &fakePredictionService{
		page: domain.PredictionPage{
			Predictions: make([]domain.Prediction, 5),
			Pagination:  domain.Pagination{Total: 5, Page: 1, Limit: 10, Pages: 1},
		},
		mocked: true,
	}
	h := NewPredictionHandler(svc)

	c, rec := request(t, http.MethodGet, "/api/v1/predictions?page=9&limit=100", "")
	require.NoError(t, h.List(c))

	assert.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Contains(t, body.Message, "(MOCK - No DB)")

	data := body.Data.(map[string]any)
	pagination := data["pagination"].(map[string]any)
	assert.Equal(t, float64(5), pagination["total"])
	assert.Equal(t, float64(1), pagination["page"])
}

func TestPredictionGetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc := &fakePredictionService{record: storedPrediction()}
		h := NewPredictionHandler(svc)

		c, rec := request(t, http.MethodGet, "/api/v1/predictions/abc", "")
		c.SetParamNames("id")
		c.SetParamValues(svc.record.ID)

		require.NoError(t, h.GetByID(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		body := decodeBody(t, rec)
		data := body.Data.(map[string]any)
		assert.Contains(t, data, "prediction")
	})

	t.Run("not found", func(t *testing.T) {
		svc := &fakePredictionService{err: domain.ErrPredictionNotFound}
		h := NewPredictionHandler(svc)

		c, rec := request(t, http.MethodGet, "/api/v1/predictions/missing", "")
		c.SetParamNames("id")
		c.SetParamValues("missing")

		require.NoError(t, h.GetByID(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)

		body := decodeBody(t, rec)
		assert.Equal(t, "error", body.Status)
		assert.Equal(t, "prediction not found", body.Message)
	})
}

func TestPredictionDelete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		h := NewPredictionHandler(&fakePredictionService{})

		c, rec := request(t, http.MethodDelete, "/api/v1/predictions/abc", "")
		c.SetParamNames("id")
		c.SetParamValues("abc")

		require.NoError(t, h.Delete(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		body := decodeBody(t, rec)
		assert.Equal(t, "success", body.Status)
		assert.Equal(t, "Prediction deleted successfully", body.Message)
	})

	t.Run("mock mode annotates the message", func(t *testing.T) {
		h := NewPredictionHandler(&fakePredictionService{mocked: true})

		c, rec := request(t, http.MethodDelete, "/api/v1/predictions/mock-1", "")
		c.SetParamNames("id")
		c.SetParamValues("mock-1")

		require.NoError(t, h.Delete(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		body := decodeBody(t, rec)
		assert.Contains(t, body.Message, "(MOCK - No DB)")
	})

	t.Run("not found", func(t *testing.T) {
		h := NewPredictionHandler(&fakePredictionService{err: domain.ErrPredictionNotFound})

		c, rec := request(t, http.MethodDelete, "/api/v1/predictions/missing", "")
		c.SetParamNames("id")
		c.SetParamValues("missing")

		require.NoError(t, h.Delete(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
