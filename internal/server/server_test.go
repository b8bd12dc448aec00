package server

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

const referenceBody = `{
	"base_monthly_amount": 1000000,
	"regular_start_age": 65,
	"early_years_before_regular": 5,
	"annual_increase_rate": 0.034,
	"annual_return_rate": 0.05,
	"investment_end_age": 100
}`

func doRequest(h fasthttp.RequestHandler, method, uri, body string) *fasthttp.RequestCtx {
	var ctx fasthttp.RequestCtx
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(uri)
	if body != "" {
		ctx.Request.SetBodyString(body)
	}
	h(&ctx)
	return &ctx
}

func decodeError(t *testing.T, ctx *fasthttp.RequestCtx) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
	return resp
}

func TestServer_Compare(t *testing.T) {
	s := New(DefaultSettings(), nil, nil)

	ctx := doRequest(s.Handler(), fasthttp.MethodPost, "/compare", referenceBody)

	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, "application/json", string(ctx.Response.Header.ContentType()))

	var resp struct {
		CalculationMetadata CalculationMetadata `json:"calculation_metadata"`
		Summary             struct {
			FinalAge     int  `json:"final_age"`
			CrossoverAge *int `json:"crossover_age"`
		} `json:"summary"`
		Result struct {
			CrossoverAge *int `json:"crossover_age"`
			Rows         []struct {
				Age           int    `json:"age"`
				EarlyAssets   string `json:"early_assets"`
				RegularAssets string `json:"regular_assets"`
			} `json:"rows"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))

	_, err := uuid.Parse(resp.CalculationMetadata.CalculationID)
	assert.NoError(t, err, "calculation_id should be a UUID")
	_, err = time.Parse(time.RFC3339Nano, resp.CalculationMetadata.CalculationStartedAt)
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, resp.CalculationMetadata.CalculationDurationMs, int64(0))

	assert.Equal(t, 100, resp.Summary.FinalAge)
	require.NotNil(t, resp.Result.CrossoverAge)
	assert.Equal(t, 96, *resp.Result.CrossoverAge)
	require.Len(t, resp.Result.Rows, 41)
	assert.Equal(t, "8660899", resp.Result.Rows[0].EarlyAssets)
	assert.Equal(t, "0", resp.Result.Rows[0].RegularAssets)

	assert.Equal(t, 1.0, testutil.ToFloat64(s.Metrics.ComparisonsTotal.WithLabelValues(outcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.Metrics.CrossoverTotal.WithLabelValues("true")))
}

func TestServer_Compare_DefaultsAges(t *testing.T) {
	s := New(DefaultSettings(), nil, nil)

	ctx := doRequest(s.Handler(), fasthttp.MethodPost, "/compare",
		`{"base_monthly_amount": 1000000, "early_years_before_regular": 5, "annual_increase_rate": 0.034, "annual_return_rate": 0.05}`)

	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	var resp CompareResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
	assert.Equal(t, 80, resp.Summary.FinalAge)
	assert.Nil(t, resp.Summary.CrossoverAge)
	assert.Equal(t, 1.0, testutil.ToFloat64(s.Metrics.CrossoverTotal.WithLabelValues("false")))
}

func TestServer_Compare_Errors(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		body     string
		status   int
		contains string
	}{
		{name: "Wrong method", method: fasthttp.MethodGet, status: fasthttp.StatusMethodNotAllowed, contains: "Method not allowed"},
		{name: "Malformed JSON", method: fasthttp.MethodPost, body: `{"base_monthly_amount": `, status: fasthttp.StatusBadRequest, contains: "Invalid request body"},
		{name: "Empty body", method: fasthttp.MethodPost, status: fasthttp.StatusBadRequest, contains: "Invalid request body"},
		{
			name:     "Too many early years",
			method:   fasthttp.MethodPost,
			body:     `{"base_monthly_amount": 1000000, "early_years_before_regular": 7, "annual_return_rate": 0.05}`,
			status:   fasthttp.StatusBadRequest,
			contains: "early_years_before_regular",
		},
		{
			name:     "End age before regular age",
			method:   fasthttp.MethodPost,
			body:     `{"base_monthly_amount": 1000000, "annual_return_rate": 0.05, "investment_end_age": 60}`,
			status:   fasthttp.StatusBadRequest,
			contains: "investment_end_age",
		},
		{
			name:     "Negative return",
			method:   fasthttp.MethodPost,
			body:     `{"base_monthly_amount": 1000000, "annual_return_rate": -0.05}`,
			status:   fasthttp.StatusBadRequest,
			contains: "annual_return_rate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(DefaultSettings(), nil, nil)

			ctx := doRequest(s.Handler(), tt.method, "/compare", tt.body)

			assert.Equal(t, tt.status, ctx.Response.StatusCode())
			resp := decodeError(t, ctx)
			assert.Equal(t, tt.status, resp.Status)
			assert.Contains(t, resp.Message, tt.contains)
		})
	}
}

func TestServer_Compare_InvalidInputCounted(t *testing.T) {
	s := New(DefaultSettings(), nil, nil)

	doRequest(s.Handler(), fasthttp.MethodPost, "/compare", `{"base_monthly_amount": 0}`)

	assert.Equal(t, 1.0, testutil.ToFloat64(s.Metrics.ComparisonsTotal.WithLabelValues(outcomeInvalidInput)))
	assert.Equal(t, 0.0, testutil.ToFloat64(s.Metrics.ComparisonsTotal.WithLabelValues(outcomeSuccess)))
}

func TestServer_Explain(t *testing.T) {
	s := New(DefaultSettings(), nil, nil)

	ctx := doRequest(s.Handler(), fasthttp.MethodPost, "/explain?age=62", referenceBody)

	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	var resp struct {
		Breakdown struct {
			Age            int  `json:"age"`
			RegularStarted bool `json:"regular_started"`
		} `json:"breakdown"`
		Narration string `json:"narration"`
	}
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
	assert.Equal(t, 62, resp.Breakdown.Age)
	assert.False(t, resp.Breakdown.RegularStarted)
	assert.Contains(t, resp.Narration, "before the regular start age (65)")
}

func TestServer_Explain_Errors(t *testing.T) {
	s := New(DefaultSettings(), nil, nil)
	h := s.Handler()

	ctx := doRequest(h, fasthttp.MethodPost, "/explain", referenceBody)
	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
	assert.Contains(t, decodeError(t, ctx).Message, "age is required")

	ctx = doRequest(h, fasthttp.MethodPost, "/explain?age=old", referenceBody)
	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
	assert.Contains(t, decodeError(t, ctx).Message, "Invalid age")

	ctx = doRequest(h, fasthttp.MethodPost, "/explain?age=101", referenceBody)
	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
	assert.Contains(t, decodeError(t, ctx).Message, "outside the comparison range 60-100")

	ctx = doRequest(h, fasthttp.MethodGet, "/explain?age=70", "")
	assert.Equal(t, fasthttp.StatusMethodNotAllowed, ctx.Response.StatusCode())
}

func TestServer_Breakeven(t *testing.T) {
	s := New(DefaultSettings(), nil, nil)

	ctx := doRequest(s.Handler(), fasthttp.MethodPost, "/breakeven", referenceBody)

	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode(), string(ctx.Response.Body()))
	var resp BreakevenResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
	require.NotNil(t, resp.Breakeven)
	require.Len(t, resp.Breakeven.Results, 2)
	assert.InDelta(t, 0.0559, resp.Breakeven.Results[0].Rate.InexactFloat64(), 0.0005)
	assert.NotEmpty(t, resp.Breakeven.Recommendations)
	assert.NotEmpty(t, resp.CalculationMetadata.CalculationID)
}

func TestServer_Breakeven_Errors(t *testing.T) {
	s := New(DefaultSettings(), nil, nil)
	h := s.Handler()

	ctx := doRequest(h, fasthttp.MethodPost, "/breakeven?target=age", referenceBody)
	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
	assert.Contains(t, decodeError(t, ctx).Message, "Invalid target: age")

	noCrossover := strings.Replace(referenceBody, `"investment_end_age": 100`, `"investment_end_age": 80`, 1)
	ctx = doRequest(h, fasthttp.MethodPost, "/breakeven?target=return", noCrossover)
	assert.Equal(t, fasthttp.StatusUnprocessableEntity, ctx.Response.StatusCode())
	assert.Contains(t, decodeError(t, ctx).Message, "no break-even rate in range")

	ctx = doRequest(h, fasthttp.MethodPost, "/breakeven", `{"base_monthly_amount": 0}`)
	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
	assert.Contains(t, decodeError(t, ctx).Message, "base_monthly_amount")

	ctx = doRequest(h, fasthttp.MethodGet, "/breakeven", "")
	assert.Equal(t, fasthttp.StatusMethodNotAllowed, ctx.Response.StatusCode())
}

func TestServer_HealthAndNotFound(t *testing.T) {
	s := New(DefaultSettings(), nil, nil)
	s.Version = "1.2.3"
	h := s.Handler()

	ctx := doRequest(h, fasthttp.MethodGet, "/healthz", "")
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	var health HealthResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &health))
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "1.2.3", health.Version)

	ctx = doRequest(h, fasthttp.MethodPost, "/healthz", "")
	assert.Equal(t, fasthttp.StatusMethodNotAllowed, ctx.Response.StatusCode())

	ctx = doRequest(h, fasthttp.MethodGet, "/nope", "")
	assert.Equal(t, fasthttp.StatusNotFound, ctx.Response.StatusCode())
}

func TestServer_Metrics(t *testing.T) {
	s := New(DefaultSettings(), nil, nil)
	h := s.Handler()

	doRequest(h, fasthttp.MethodPost, "/compare", referenceBody)
	ctx := doRequest(h, fasthttp.MethodGet, "/metrics", "")

	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	body := string(ctx.Response.Body())
	assert.Contains(t, body, `earlypension_comparisons_total{outcome="success"} 1`)
	assert.Contains(t, body, `earlypension_crossover_total{found="true"} 1`)
	assert.Contains(t, body, "earlypension_request_duration_seconds")
	assert.True(t, strings.Contains(body, `path="/compare"`))
}

func TestServer_Logging(t *testing.T) {
	logger := &testLogger{}
	s := New(DefaultSettings(), nil, logger)

	doRequest(s.Handler(), fasthttp.MethodGet, "/healthz", "")

	require.Len(t, logger.messages, 1)
	assert.Contains(t, logger.messages[0], "/healthz 200")
}

func TestServer_ShutdownWithoutListen(t *testing.T) {
	assert.NoError(t, New(DefaultSettings(), nil, nil).Shutdown())
}

func TestLoadSettings_Defaults(t *testing.T) {
	settings, err := LoadSettings(NewViper(), "")
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), *settings)
}

func TestLoadSettings_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: \":9000\"\nread_timeout: 3s\nwrite_timeout: 4s\n"), 0644))
	t.Setenv("EARLYPENSION_WRITE_TIMEOUT", "7s")

	settings, err := LoadSettings(NewViper(), path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", settings.Addr)
	assert.Equal(t, 3*time.Second, settings.ReadTimeout)
	assert.Equal(t, 7*time.Second, settings.WriteTimeout, "Environment overrides the file")
}

func TestLoadSettings_Errors(t *testing.T) {
	_, err := LoadSettings(NewViper(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read server config")

	v := NewViper()
	v.Set("read_timeout", "0s")
	_, err = LoadSettings(v, "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "read_timeout must be positive")
}

type testLogger struct {
	messages []string
}

func (l *testLogger) Debugf(format string, args ...interface{}) {
	l.messages = append(l.messages, fmt.Sprintf(format, args...))
}
func (l *testLogger) Infof(format string, args ...interface{}) {
	l.messages = append(l.messages, fmt.Sprintf(format, args...))
}
func (l *testLogger) Warnf(format string, args ...interface{}) {
	l.messages = append(l.messages, fmt.Sprintf(format, args...))
}
func (l *testLogger) Errorf(format string, args ...interface{}) {
	l.messages = append(l.messages, fmt.Sprintf(format, args...))
}
