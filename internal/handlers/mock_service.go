package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"carbon_netzero/internal/advice"
	"carbon_netzero/internal/models"
	"carbon_netzero/internal/repository"
	"carbon_netzero/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(ctx context.Context, username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(ctx context.Context, username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockEmissions struct {
	ingestErr  error
	lastIngest models.TelemetryRecord
	ingested   int

	recent     []models.TelemetryRecord
	lastRecent service.RecentQuery
	hotspots   []models.Hotspot
	forecast   models.EmissionForecast
	lastAhead  int
	lastDept   string
	err        error

	mu          sync.Mutex
	snapshot    models.Snapshot
	snapshotErr error
	snapshots   int
}

func (m *mockEmissions) Ingest(ctx context.Context, r models.TelemetryRecord) (models.TelemetryRecord, error) {
	m.lastIngest = r
	if m.ingestErr != nil {
		return models.TelemetryRecord{}, m.ingestErr
	}
	m.ingested++
	r.ID = "rec-1"
	return r, nil
}
func (m *mockEmissions) Recent(ctx context.Context, q service.RecentQuery) ([]models.TelemetryRecord, error) {
	m.lastRecent = q
	return m.recent, m.err
}
func (m *mockEmissions) Hotspots(ctx context.Context) ([]models.Hotspot, error) {
	return m.hotspots, m.err
}
func (m *mockEmissions) Predict(ctx context.Context, minutesAhead int, department string) (models.EmissionForecast, error) {
	m.lastAhead, m.lastDept = minutesAhead, department
	return m.forecast, m.err
}
func (m *mockEmissions) LiveSnapshot(ctx context.Context, window time.Duration) (models.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots++
	return m.snapshot, m.snapshotErr
}

type mockOffsets struct {
	recorded []models.CarbonOffset
	list     []models.CarbonOffset
	err      error
}

func (m *mockOffsets) Record(ctx context.Context, o models.CarbonOffset) (models.CarbonOffset, error) {
	if m.err != nil {
		return models.CarbonOffset{}, m.err
	}
	m.recorded = append(m.recorded, o)
	o.ID = "off-1"
	return o, nil
}
func (m *mockOffsets) List(ctx context.Context) ([]models.CarbonOffset, error) {
	return m.list, m.err
}

type mockReports struct {
	summary    models.ReportSummary
	err        error
	lastFilter repository.TelemetryFilter
}

func (m *mockReports) Summary(ctx context.Context, f repository.TelemetryFilter) (models.ReportSummary, error) {
	m.lastFilter = f
	return m.summary, m.err
}

type mockAdvice struct {
	out     advice.Outcome
	lastReq advice.Request
	calls   int
}

func (m *mockAdvice) Strategies(ctx context.Context, req advice.Request) advice.Outcome {
	m.calls++
	m.lastReq = req
	return m.out
}

type mockSeeder struct {
	n     int
	err   error
	calls int
}

func (m *mockSeeder) Seed(ctx context.Context) (int, error) {
	m.calls++
	return m.n, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	return newTestRouterWithOptions(s, Options{})
}

func newTestRouterWithOptions(s *service.Service, opts Options) *gin.Engine {
	h := NewHandler(s, nil, opts)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
