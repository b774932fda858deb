package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"diaPredict/domain"
)

type Config struct {
	URL     string
	Timeout time.Duration
}

// Client talks to the ML inference service. Any failure here is recovered
// by the caller through the fallback synthesizer, so errors are returned
// as-is without retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL: cfg.URL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type predictResponse struct {
	Prediction      string                  `json:"prediction"`
	RiskScore       float64                 `json:"risk_score"`
	Factors         map[string]string       `json:"factors"`
	Recommendations *domain.Recommendations `json:"recommendations"`
}

func (c *Client) MakePrediction(ctx context.Context, input domain.PatientInput) (domain.RiskResult, error) {
	payload, err := json.Marshal(input)
	if err != nil {
		return domain.RiskResult{}, fmt.Errorf("failed to encode inference request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(payload))
	if err != nil {
		return domain.RiskResult{}, fmt.Errorf("failed to build inference request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return domain.RiskResult{}, fmt.Errorf("inference service unreachable: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return domain.RiskResult{}, fmt.Errorf("failed to read inference response: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		return domain.RiskResult{}, fmt.Errorf("inference service returned status %d", res.StatusCode)
	}

	var parsed predictResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return domain.RiskResult{}, fmt.Errorf("failed to decode inference response: %w", err)
	}

	return domain.RiskResult{
		Prediction:      parsed.Prediction,
		RiskScore:       parsed.RiskScore,
		Details:         domain.RiskDetails{Factors: parsed.Factors},
		Recommendations: parsed.Recommendations,
	}, nil
}
