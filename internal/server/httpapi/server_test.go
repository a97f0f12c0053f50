package httpapi

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/dbx"
	"github.com/dmitrijs2005/tasktracker/internal/logging"
	"github.com/dmitrijs2005/tasktracker/internal/server/auth"
	"github.com/dmitrijs2005/tasktracker/internal/server/config"
	"github.com/dmitrijs2005/tasktracker/internal/server/models"
	tasksrepo "github.com/dmitrijs2005/tasktracker/internal/server/repositories/tasks"
	usersrepo "github.com/dmitrijs2005/tasktracker/internal/server/repositories/users"
	"github.com/dmitrijs2005/tasktracker/internal/server/services"
)

const testSecret = "test-secret"

type fakeUsersRepo struct {
	calls            int
	createFn         func(ctx context.Context, user *models.User) (*models.User, error)
	getByEmailFn     func(ctx context.Context, email string) (*models.User, error)
	getByIDFn        func(ctx context.Context, id string) (*models.User, error)
	updateProfileFn  func(ctx context.Context, id, firstName, lastName string) (*models.User, error)
	updatePasswordFn func(ctx context.Context, id, passwordHash string) error
	updatePicFn      func(ctx context.Context, id, profilePic string) (*models.User, error)
}

func (r *fakeUsersRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.calls++
	if r.createFn == nil {
		return nil, common.ErrorInternal
	}
	return r.createFn(ctx, user)
}

func (r *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.calls++
	if r.getByEmailFn == nil {
		return nil, common.ErrorNotFound
	}
	return r.getByEmailFn(ctx, email)
}

func (r *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.calls++
	if r.getByIDFn == nil {
		return nil, common.ErrorNotFound
	}
	return r.getByIDFn(ctx, id)
}

func (r *fakeUsersRepo) UpdateProfile(ctx context.Context, id, firstName, lastName string) (*models.User, error) {
	r.calls++
	if r.updateProfileFn == nil {
		return nil, common.ErrorNotFound
	}
	return r.updateProfileFn(ctx, id, firstName, lastName)
}

func (r *fakeUsersRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	r.calls++
	if r.updatePasswordFn == nil {
		return common.ErrorNotFound
	}
	return r.updatePasswordFn(ctx, id, passwordHash)
}

func (r *fakeUsersRepo) UpdateProfilePic(ctx context.Context, id, profilePic string) (*models.User, error) {
	r.calls++
	if r.updatePicFn == nil {
		return nil, common.ErrorNotFound
	}
	return r.updatePicFn(ctx, id, profilePic)
}

type fakeTasksRepo struct {
	calls           int
	createFn        func(ctx context.Context, task *models.Task) (*models.Task, error)
	listByUserFn    func(ctx context.Context, userID string) ([]*models.Task, error)
	updateFn        func(ctx context.Context, userID string, taskID int64, status, title *string) (*models.Task, error)
	deleteFn        func(ctx context.Context, userID string, taskID int64) error
	countByStatusFn func(ctx context.Context, userID string) (map[string]int64, error)
}

func (r *fakeTasksRepo) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	r.calls++
	if r.createFn == nil {
		return nil, common.ErrorInternal
	}
	return r.createFn(ctx, task)
}

func (r *fakeTasksRepo) ListByUser(ctx context.Context, userID string) ([]*models.Task, error) {
	r.calls++
	if r.listByUserFn == nil {
		return []*models.Task{}, nil
	}
	return r.listByUserFn(ctx, userID)
}

func (r *fakeTasksRepo) Update(ctx context.Context, userID string, taskID int64, status, title *string) (*models.Task, error) {
	r.calls++
	if r.updateFn == nil {
		return nil, common.ErrorNotFound
	}
	return r.updateFn(ctx, userID, taskID, status, title)
}

func (r *fakeTasksRepo) Delete(ctx context.Context, userID string, taskID int64) error {
	r.calls++
	if r.deleteFn == nil {
		return common.ErrorNotFound
	}
	return r.deleteFn(ctx, userID, taskID)
}

func (r *fakeTasksRepo) CountByStatus(ctx context.Context, userID string) (map[string]int64, error) {
	r.calls++
	if r.countByStatusFn == nil {
		return map[string]int64{}, nil
	}
	return r.countByStatusFn(ctx, userID)
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	t *fakeTasksRepo
}

func (m *fakeRepoManager) RunMigrations(ctx context.Context, db *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository             { return m.u }
func (m *fakeRepoManager) Tasks(db dbx.DBTX) tasksrepo.Repository             { return m.t }

func newTestServer() (*Server, *fakeUsersRepo, *fakeTasksRepo) {
	u := &fakeUsersRepo{}
	tr := &fakeTasksRepo{}
	rm := &fakeRepoManager{u: u, t: tr}

	cfg := &config.Config{SecretKey: testSecret, TokenValidityDuration: time.Hour}
	us := services.NewUserService(nil, rm, cfg)
	ts := services.NewTaskService(nil, rm)

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(io.Discard, nil)))
	return NewServer(":0", logger, us, ts, testSecret), u, tr
}

func testToken(t *testing.T, userID string) string {
	t.Helper()
	token, err := auth.GenerateToken(userID, []byte(testSecret), time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return token
}

// envelope mirrors Response with a decoded data map for assertions.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (e envelope) dataMap(t *testing.T) map[string]any {
	t.Helper()
	if e.Data == nil {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(e.Data, &m); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return m
}

func doRequest(t *testing.T, s *Server, method, target, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set(echoHeaderContentType, echoMIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(common.AuthHeaderName, common.AuthScheme+" "+token)
	}

	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 && rec.Header().Get(echoHeaderContentType) != "" &&
		rec.Header().Get(echoHeaderContentType) != "text/plain; charset=UTF-8" {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("unexpected error decoding %q: %v", rec.Body.String(), err)
		}
	}
	return rec, env
}

// doRawAuthRequest sends a request with the Authorization header set
// verbatim, without the Bearer prefix handling of doRequest.
func doRawAuthRequest(t *testing.T, s *Server, method, target, header string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	req.Header.Set(common.AuthHeaderName, header)

	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("unexpected error decoding %q: %v", rec.Body.String(), err)
	}
	return rec, env
}

const (
	echoHeaderContentType   = "Content-Type"
	echoMIMEApplicationJSON = "application/json"
)

func TestHealthEndpoint(t *testing.T) {
	s, _, _ := newTestServer()

	rec, _ := doRequest(t, s, http.MethodGet, "/", "", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, rec.Code)
	}
	if rec.Body.String() != "server is started!" {
		t.Errorf("expected %q, got %q", "server is started!", rec.Body.String())
	}
}

func TestUnknownRouteReturnsEnvelope(t *testing.T) {
	s, _, _ := newTestServer()

	rec, env := doRequest(t, s, http.MethodGet, "/api/nope", "", nil)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected %d, got %d", http.StatusNotFound, rec.Code)
	}
	if env.Success {
		t.Errorf("expected success=false")
	}
}
