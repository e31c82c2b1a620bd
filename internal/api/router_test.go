package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/ecosphere/ecosphere-api/internal/core/domain"
	"github.com/ecosphere/ecosphere-api/internal/core/ports"
)

const testSecret = "router-test-secret"

// --- Stub services ---

type stubAuthService struct {
	registerErr error
	loginErr    error
}

func (s *stubAuthService) Register(_ context.Context, email, _, role string) (*domain.User, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	if role == "" {
		role = domain.RoleUser
	}
	return &domain.User{ID: "user_1", Username: email, Email: email, Role: role}, nil
}

func (s *stubAuthService) Login(_ context.Context, email, _ string) (*ports.TokenPair, *domain.User, error) {
	if s.loginErr != nil {
		return nil, nil, s.loginErr
	}
	return &ports.TokenPair{Access: "a", Refresh: "r"}, &domain.User{ID: "user_1", Email: email}, nil
}

func (s *stubAuthService) Refresh(context.Context, string) (string, error) {
	return "new-access", nil
}

func (s *stubAuthService) Profile(_ context.Context, userID string) (*domain.User, error) {
	return &domain.User{ID: userID, Username: "alice"}, nil
}

func (s *stubAuthService) UpdateProfile(_ context.Context, userID string, _ ports.UpdateProfileInput) (*domain.User, error) {
	return &domain.User{ID: userID}, nil
}

type stubActionService struct {
	getErr error
}

func (s *stubActionService) Create(_ context.Context, userID string, input ports.ActionInput) (*domain.EcoAction, error) {
	return &domain.EcoAction{
		ID:       "action_1",
		UserID:   userID,
		Category: domain.ActionCategory(input.Category),
		CarbonKg: input.CarbonKg,
	}, nil
}

func (s *stubActionService) List(context.Context, string) ([]domain.EcoAction, error) {
	return []domain.EcoAction{{ID: "action_1", CarbonKg: 2}}, nil
}

func (s *stubActionService) Get(_ context.Context, id, userID string) (*domain.EcoAction, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return &domain.EcoAction{ID: id, UserID: userID}, nil
}

func (s *stubActionService) Update(_ context.Context, id, userID string, _ ports.ActionInput) (*domain.EcoAction, error) {
	return &domain.EcoAction{ID: id, UserID: userID}, nil
}

func (s *stubActionService) Delete(context.Context, string, string) error { return nil }

type stubEventService struct {
	completeErr error
}

func (s *stubEventService) Create(_ context.Context, hostID string, input ports.EventInput) (*domain.CommunityEvent, error) {
	return &domain.CommunityEvent{ID: "event_1", Name: input.Name, HostID: hostID, Status: domain.EventOpen}, nil
}

func (s *stubEventService) List(context.Context) ([]domain.CommunityEvent, error) {
	return nil, nil
}

func (s *stubEventService) Get(_ context.Context, id string) (*domain.CommunityEvent, error) {
	return &domain.CommunityEvent{ID: id, Status: domain.EventOpen}, nil
}

func (s *stubEventService) Update(_ context.Context, id, _, _ string, _ ports.EventInput) (*domain.CommunityEvent, error) {
	return &domain.CommunityEvent{ID: id}, nil
}

func (s *stubEventService) Delete(context.Context, string, string, string) error { return nil }
func (s *stubEventService) Join(context.Context, string, string) error           { return nil }

func (s *stubEventService) Complete(context.Context, string, string) (*ports.CompleteEventResult, error) {
	if s.completeErr != nil {
		return nil, s.completeErr
	}
	return &ports.CompleteEventResult{Status: "completed", EcoScore: 10}, nil
}

func (s *stubEventService) Cancel(context.Context, string, string, string) error { return nil }

type stubReminderService struct{}

func (s *stubReminderService) Create(_ context.Context, userID string, input ports.ReminderInput) (*domain.Reminder, error) {
	return &domain.Reminder{ID: "rem_1", UserID: userID, Message: input.Message}, nil
}

func (s *stubReminderService) List(context.Context, string) ([]domain.Reminder, error) {
	return nil, nil
}

func (s *stubReminderService) Get(_ context.Context, id, userID string) (*domain.Reminder, error) {
	return &domain.Reminder{ID: id, UserID: userID}, nil
}

func (s *stubReminderService) Update(_ context.Context, id, userID string, _ ports.ReminderInput) (*domain.Reminder, error) {
	return &domain.Reminder{ID: id, UserID: userID}, nil
}

func (s *stubReminderService) Delete(context.Context, string, string) error { return nil }

func (s *stubReminderService) DispatchDue(context.Context, time.Time) (ports.DispatchResult, error) {
	return ports.DispatchResult{}, nil
}

type stubImpactService struct{}

func (s *stubImpactService) Summary(context.Context, string) (*ports.ImpactSummary, error) {
	return &ports.ImpactSummary{
		TotalCarbon:  3.5,
		TotalSavings: 1.0,
		Breakdown:    map[string]float64{"food": 3.5},
		Severity:     map[string]int{"medium": 1},
	}, nil
}

type stubLeaderboardService struct{}

func (s *stubLeaderboardService) Top(context.Context) ([]ports.LeaderboardEntry, error) {
	return []ports.LeaderboardEntry{{Username: "alice", EcoScore: 42}}, nil
}

type stubReceiptService struct{}

func (s *stubReceiptService) Upload(_ context.Context, input ports.UploadReceiptInput) (*ports.UploadReceiptResult, error) {
	if input.File == nil {
		return nil, domain.ErrNoFile
	}
	return &ports.UploadReceiptResult{URL: "https://cdn/x", Key: "receipts/x"}, nil
}

type stubRecomputeService struct {
	runs int
}

func (s *stubRecomputeService) Run(context.Context) (int, error) {
	s.runs++
	return 3, nil
}

// --- Fixture ---

type routerFixture struct {
	deps Deps
	e    *echo.Echo
}

func newRouterFixture() *routerFixture {
	return &routerFixture{deps: Deps{
		Metrics:     prometheus.NewRegistry(),
		Auth:        &stubAuthService{},
		Actions:     &stubActionService{},
		Reminders:   &stubReminderService{},
		Events:      &stubEventService{},
		Impact:      &stubImpactService{},
		Leaderboard: &stubLeaderboardService{},
		Receipts:    &stubReceiptService{},
		Recompute:   &stubRecomputeService{},
		JWTSecret:   testSecret,
		Logger:      zerolog.Nop(),
	}}
}

func (f *routerFixture) request(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	// Deps mutations must happen before the first request.
	if f.e == nil {
		f.e = NewRouter(f.deps)
	}
	f.e.ServeHTTP(rec, req)
	return rec
}

func accessToken(t *testing.T, userID, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      userID,
		"username": "alice",
		"role":     role,
		"type":     "access",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

// --- Tests ---

func TestRouter_Register(t *testing.T) {
	f := newRouterFixture()

	rec := f.request(t, http.MethodPost, "/api/auth/register", `{"email":"a@example.com","password":"s3cret"}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var user domain.User
	if err := json.Unmarshal(rec.Body.Bytes(), &user); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if user.Role != domain.RoleUser {
		t.Errorf("expected default role, got %q", user.Role)
	}
}

func TestRouter_Register_DuplicateMapsTo409(t *testing.T) {
	f := newRouterFixture()
	f.deps.Auth = &stubAuthService{registerErr: domain.ErrUserExists}

	rec := f.request(t, http.MethodPost, "/api/auth/register", `{"email":"a@example.com","password":"s3cret"}`, "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestRouter_Register_ValidationFailure(t *testing.T) {
	f := newRouterFixture()

	rec := f.request(t, http.MethodPost, "/api/auth/register", `{"email":"not-an-email","password":"s3cret"}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_Login_BadCredentialsMapsTo401(t *testing.T) {
	f := newRouterFixture()
	f.deps.Auth = &stubAuthService{loginErr: domain.ErrInvalidCredentials}

	rec := f.request(t, http.MethodPost, "/api/auth/login", `{"email":"a@example.com","password":"wrong"}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["error"] == "" {
		t.Error("expected error envelope")
	}
}

func TestRouter_Actions_RequireAuth(t *testing.T) {
	f := newRouterFixture()

	rec := f.request(t, http.MethodGet, "/api/actions", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRouter_Actions_CreateIncludesImpact(t *testing.T) {
	f := newRouterFixture()
	token := accessToken(t, "user_1", domain.RoleUser)

	body := `{"category":"food","action_type":"groceries","carbon_kg":2.5}`
	rec := f.request(t, http.MethodPost, "/api/actions", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["impact_label"] != "Medium" {
		t.Errorf("expected impact_label Medium, got %v", resp["impact_label"])
	}
}

func TestRouter_Actions_UnknownCategoryRejected(t *testing.T) {
	f := newRouterFixture()
	token := accessToken(t, "user_1", domain.RoleUser)

	body := `{"category":"plastics","action_type":"x"}`
	rec := f.request(t, http.MethodPost, "/api/actions", body, token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRouter_Actions_NotFoundMapsTo404(t *testing.T) {
	f := newRouterFixture()
	f.deps.Actions = &stubActionService{getErr: domain.ErrActionNotFound}
	token := accessToken(t, "user_1", domain.RoleUser)

	rec := f.request(t, http.MethodGet, "/api/actions/ghost", "", token)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestRouter_Events_JoinReportsStatus(t *testing.T) {
	f := newRouterFixture()
	token := accessToken(t, "user_1", domain.RoleUser)

	rec := f.request(t, http.MethodPost, "/api/events/event_1/join", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["status"] != "joined" {
		t.Errorf("expected status joined, got %v", resp["status"])
	}
}

func TestRouter_Events_CompleteNotOpenMapsTo422(t *testing.T) {
	f := newRouterFixture()
	f.deps.Events = &stubEventService{completeErr: domain.ErrEventNotOpen}
	token := accessToken(t, "user_1", domain.RoleUser)

	rec := f.request(t, http.MethodPost, "/api/events/event_1/complete", "", token)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestRouter_Upload_MissingFileMapsTo400(t *testing.T) {
	f := newRouterFixture()
	token := accessToken(t, "user_1", domain.RoleUser)

	rec := f.request(t, http.MethodPost, "/api/uploads/receipt", "", token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["error"] != "no file provided" {
		t.Errorf("unexpected error message %q", resp["error"])
	}
}

func TestRouter_AdminRecompute_RBAC(t *testing.T) {
	f := newRouterFixture()
	recompute := &stubRecomputeService{}
	f.deps.Recompute = recompute

	userToken := accessToken(t, "user_1", domain.RoleUser)
	rec := f.request(t, http.MethodPost, "/api/admin/recompute", "", userToken)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", rec.Code)
	}
	if recompute.runs != 0 {
		t.Fatal("recompute must not run for non-admin")
	}

	adminToken := accessToken(t, "admin_1", domain.RoleAdmin)
	rec = f.request(t, http.MethodPost, "/api/admin/recompute", "", adminToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["users"] != float64(3) {
		t.Errorf("expected 3 users processed, got %v", resp["users"])
	}
}

func TestRouter_RefreshTokenRejectedOnAPIRoutes(t *testing.T) {
	f := newRouterFixture()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "user_1",
		"role": domain.RoleUser,
		"type": "refresh",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	rec := f.request(t, http.MethodGet, "/api/actions", "", signed)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRouter_Health(t *testing.T) {
	f := newRouterFixture()

	rec := f.request(t, http.MethodGet, "/health", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRouter_Leaderboard(t *testing.T) {
	f := newRouterFixture()
	token := accessToken(t, "user_1", domain.RoleUser)

	rec := f.request(t, http.MethodGet, "/api/leaderboard", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Leaders []ports.LeaderboardEntry `json:"leaders"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Leaders) != 1 || resp.Leaders[0].Username != "alice" {
		t.Errorf("unexpected leaders: %+v", resp.Leaders)
	}
}

func TestRouter_ImpactSummary(t *testing.T) {
	f := newRouterFixture()
	token := accessToken(t, "user_1", domain.RoleUser)

	rec := f.request(t, http.MethodGet, "/api/impact", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["total_carbon"] != 3.5 {
		t.Errorf("unexpected total carbon: %v", resp["total_carbon"])
	}
	if resp["total_savings"] != 1.0 {
		t.Errorf("unexpected total savings: %v", resp["total_savings"])
	}
}
