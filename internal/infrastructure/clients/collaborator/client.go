package collaborator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to the catalog and patient registration services
type Client interface {
	ListProcedures(ctx context.Context) ([]ProcedureDTO, error)
	ListSurgeons(ctx context.Context) ([]SurgeonDTO, error)
	ListImplants(ctx context.Context, category string) ([]ImplantDTO, error)
	ListHospitals(ctx context.Context) ([]HospitalDTO, error)
	RegisterPatient(ctx context.Context, req RegisterPatientRequest) (*RegisterPatientResponse, error)
}

// StatusError is returned when a collaborator answers with a non-2xx status
type StatusError struct {
	Endpoint   string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("collaborator %s returned status %d", e.Endpoint, e.StatusCode)
}

// Retryable reports whether the status is worth retrying
func (e *StatusError) Retryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}

type ProcedureDTO struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	BaseCost int64   `json:"baseCost"`
	Duration string  `json:"duration"`
	Recovery string  `json:"recovery"`
	Rating   float64 `json:"rating"`
}

type SurgeonDTO struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	Specialization     string  `json:"specialization"`
	ExperienceYears    int     `json:"experienceYears"`
	Rating             float64 `json:"rating"`
	TrainingType       string  `json:"trainingType"`
	OnlineConsultation bool    `json:"onlineConsultation"`
	Location           string  `json:"location"`
}

type ImplantDTO struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Brand         string `json:"brand"`
	Tier          string `json:"tier"`
	Cost          int64  `json:"cost"`
	WarrantyYears int    `json:"warrantyYears"`
	Category      string `json:"category"`
}

type HospitalDTO struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Zone              int      `json:"zone"`
	BasePrice         int64    `json:"basePrice"`
	ConsumablesCost   int64    `json:"consumablesCost"`
	Facilities        []string `json:"facilities"`
	InsuranceAccepted bool     `json:"insuranceAccepted"`
	Address           struct {
		Street  string `json:"street"`
		City    string `json:"city"`
		State   string `json:"state"`
		Country string `json:"country"`
	} `json:"address"`
	Location struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"location"`
}

type RegisterPatientRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	City     string `json:"city,omitempty"`
}

type RegisterPatientResponse struct {
	PatientID   string         `json:"patientId"`
	PatientData map[string]any `json:"patientData"`
}

// HTTPClient is the HTTP implementation of Client
type HTTPClient struct {
	catalogURL      string
	registrationURL string
	httpClient      *http.Client
}

// NewClient creates a collaborator client. An empty registration URL falls
// back to the catalog URL.
func NewClient(catalogURL, registrationURL string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if registrationURL == "" {
		registrationURL = catalogURL
	}
	return &HTTPClient{
		catalogURL:      strings.TrimRight(catalogURL, "/"),
		registrationURL: strings.TrimRight(registrationURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *HTTPClient) ListProcedures(ctx context.Context) ([]ProcedureDTO, error) {
	var response struct {
		Data []ProcedureDTO `json:"data"`
	}
	if err := c.doJSON(ctx, http.MethodGet, c.catalogURL+"/procedures", nil, &response); err != nil {
		return nil, err
	}
	return response.Data, nil
}

func (c *HTTPClient) ListSurgeons(ctx context.Context) ([]SurgeonDTO, error) {
	var response struct {
		Data []SurgeonDTO `json:"data"`
	}
	if err := c.doJSON(ctx, http.MethodGet, c.catalogURL+"/surgeons", nil, &response); err != nil {
		return nil, err
	}
	return response.Data, nil
}

func (c *HTTPClient) ListImplants(ctx context.Context, category string) ([]ImplantDTO, error) {
	parsed, err := url.Parse(c.catalogURL + "/implants")
	if err != nil {
		return nil, err
	}
	if category != "" {
		query := parsed.Query()
		query.Set("category", category)
		parsed.RawQuery = query.Encode()
	}

	var response struct {
		Data []ImplantDTO `json:"data"`
	}
	if err := c.doJSON(ctx, http.MethodGet, parsed.String(), nil, &response); err != nil {
		return nil, err
	}
	return response.Data, nil
}

func (c *HTTPClient) ListHospitals(ctx context.Context) ([]HospitalDTO, error) {
	var response struct {
		Data []HospitalDTO `json:"data"`
	}
	if err := c.doJSON(ctx, http.MethodGet, c.catalogURL+"/hospitals", nil, &response); err != nil {
		return nil, err
	}
	return response.Data, nil
}

func (c *HTTPClient) RegisterPatient(ctx context.Context, req RegisterPatientRequest) (*RegisterPatientResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	out := &RegisterPatientResponse{}
	if err := c.doJSON(ctx, http.MethodPost, c.registrationURL+"/patients", bytes.NewReader(body), out); err != nil {
		return nil, err
	}
	if out.PatientID == "" {
		return nil, fmt.Errorf("registration response has no patient id")
	}
	return out, nil
}

func (c *HTTPClient) doJSON(ctx context.Context, method, endpoint string, body io.Reader, out interface{}) error {
	httpReq, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Endpoint: httpReq.URL.Path, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return err
	}

	return nil
}
