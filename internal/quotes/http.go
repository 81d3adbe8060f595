package quotes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"inspection-backend/internal/forensics"
)

// HTTPProvider implements Provider against a remote pricing API.
type HTTPProvider struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewHTTPProvider constructs an HTTPProvider.
func NewHTTPProvider(baseURL, apiKey string) (*HTTPProvider, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("QUOTE_API_URL is required for the http provider")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("QUOTE_API_KEY is required for the http provider")
	}
	timeout := 20 * time.Second
	if raw := strings.TrimSpace(os.Getenv("QUOTE_TIMEOUT_SECONDS")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			timeout = time.Duration(parsed) * time.Second
		}
	}
	return &HTTPProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type quoteAPIRequest struct {
	ContractorID      string                     `json:"contractorId"`
	WarrantyYears     int                        `json:"warrantyYears"`
	InstallComplexity string                     `json:"installComplexity"`
	Record            forensics.InspectionRecord `json:"record"`
}

type quoteAPIResponse struct {
	GrandTotal      *float64 `json:"grandTotal,omitempty"`
	GrandTotalRange *struct {
		Low  float64 `json:"low"`
		High float64 `json:"high"`
	} `json:"grandTotalRange,omitempty"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// GenerateQuote posts the job to the remote pricing API. Providers that
// return a single grand total are widened to a degenerate range.
func (p *HTTPProvider) GenerateQuote(ctx context.Context, req Request) (Base, error) {
	payload, err := json.Marshal(quoteAPIRequest{
		ContractorID:      req.ContractorID,
		WarrantyYears:     req.WarrantyYears,
		InstallComplexity: string(req.InstallComplexity),
		Record:            req.Record,
	})
	if err != nil {
		return Base{}, fmt.Errorf("marshal quote request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v1/quotes", bytes.NewReader(payload))
	if err != nil {
		return Base{}, fmt.Errorf("build quote request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return Base{}, fmt.Errorf("quote request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Base{}, fmt.Errorf("read quote response: %w", err)
	}

	var parsed quoteAPIResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return Base{}, fmt.Errorf("quote response invalid (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK {
		msg := "unknown error"
		if parsed.Error != nil && parsed.Error.Message != "" {
			msg = parsed.Error.Message
		}
		return Base{}, fmt.Errorf("quote provider status %d: %s", resp.StatusCode, msg)
	}

	switch {
	case parsed.GrandTotalRange != nil:
		return Base{Range: forensics.CostRange{Low: parsed.GrandTotalRange.Low, High: parsed.GrandTotalRange.High}}, nil
	case parsed.GrandTotal != nil:
		return Base{Range: forensics.CostRange{Low: *parsed.GrandTotal, High: *parsed.GrandTotal}}, nil
	default:
		return Base{}, fmt.Errorf("quote provider returned no total")
	}
}

var _ Provider = (*HTTPProvider)(nil)
