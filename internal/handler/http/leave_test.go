package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/leave-management-go/internal/domain/leave"
	"github.com/cmlabs-hris/leave-management-go/internal/domain/user"
	"github.com/cmlabs-hris/leave-management-go/internal/handler/http/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubLeaveService lets each test decide what the service returns.
type stubLeaveService struct {
	submitFn func(ctx context.Context, actor user.Actor, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error)
	listFn   func(ctx context.Context, actor user.Actor) ([]leave.LeaveRequestResponse, error)
	getFn    func(ctx context.Context, actor user.Actor, requestID string) (leave.LeaveRequestResponse, error)
	reviewFn func(ctx context.Context, actor user.Actor, requestID string, req leave.ReviewLeaveRequestRequest) (leave.LeaveRequestResponse, error)
	removeFn func(ctx context.Context, actor user.Actor, requestID string) error
}

func (s *stubLeaveService) Submit(ctx context.Context, actor user.Actor, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	return s.submitFn(ctx, actor, req)
}

func (s *stubLeaveService) List(ctx context.Context, actor user.Actor) ([]leave.LeaveRequestResponse, error) {
	return s.listFn(ctx, actor)
}

func (s *stubLeaveService) Get(ctx context.Context, actor user.Actor, requestID string) (leave.LeaveRequestResponse, error) {
	return s.getFn(ctx, actor, requestID)
}

func (s *stubLeaveService) Review(ctx context.Context, actor user.Actor, requestID string, req leave.ReviewLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	return s.reviewFn(ctx, actor, requestID, req)
}

func (s *stubLeaveService) Remove(ctx context.Context, actor user.Actor, requestID string) error {
	return s.removeFn(ctx, actor, requestID)
}

var testTokenAuth = jwtauth.New("HS256", []byte("handler-test-secret"), nil)

// withClaims attaches a verified token to the request context, the same way
// jwtauth.Verifier would after checking the Authorization header.
func withClaims(r *http.Request, userID string, role user.Role) *http.Request {
	token, _, err := testTokenAuth.Encode(map[string]interface{}{
		"user_id": userID,
		"role":    string(role),
		"type":    "access",
	})
	if err != nil {
		panic(err)
	}
	ctx := jwtauth.NewContext(r.Context(), token, nil)
	return r.WithContext(ctx)
}

func newLeaveRouter(svc leave.LeaveService) *chi.Mux {
	handler := NewLeaveHandler(svc)
	r := chi.NewRouter()
	r.Route("/leaves", func(r chi.Router) {
		r.Get("/", handler.List)
		r.Post("/", handler.Create)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", handler.Get)
			r.Delete("/", handler.Delete)
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Put("/", handler.Review)
			})
		})
	})
	return r
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestLeaveHandler_Create_Success(t *testing.T) {
	svc := &stubLeaveService{
		submitFn: func(ctx context.Context, actor user.Actor, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
			assert.Equal(t, "user-1", actor.ID)
			assert.Equal(t, "annual", req.Type)
			return leave.LeaveRequestResponse{
				ID:           "req-1",
				RequesterID:  actor.ID,
				Type:         req.Type,
				NumberOfDays: 3,
				Status:       "pending",
			}, nil
		},
	}
	router := newLeaveRouter(svc)

	payload := bytes.NewBufferString(`{"leave_type":"annual","start_date":"2024-06-10","end_date":"2024-06-12","reason":"trip"}`)
	req := httptest.NewRequest(http.MethodPost, "/leaves", payload)
	req = withClaims(req, "user-1", user.RoleEmployee)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "req-1", data["id"])
	assert.Equal(t, "pending", data["status"])
}

func TestLeaveHandler_Create_Overlap(t *testing.T) {
	svc := &stubLeaveService{
		submitFn: func(ctx context.Context, actor user.Actor, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
			return leave.LeaveRequestResponse{}, leave.ErrOverlappingLeave
		},
	}
	router := newLeaveRouter(svc)

	payload := bytes.NewBufferString(`{"leave_type":"annual","start_date":"2024-06-10","end_date":"2024-06-12","reason":"trip"}`)
	req := httptest.NewRequest(http.MethodPost, "/leaves", payload)
	req = withClaims(req, "user-1", user.RoleEmployee)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, false, body["success"])
}

func TestLeaveHandler_Create_InvalidJSON(t *testing.T) {
	svc := &stubLeaveService{}
	router := newLeaveRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/leaves", bytes.NewBufferString("{not json"))
	req = withClaims(req, "user-1", user.RoleEmployee)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLeaveHandler_Get_NotFound(t *testing.T) {
	svc := &stubLeaveService{
		getFn: func(ctx context.Context, actor user.Actor, requestID string) (leave.LeaveRequestResponse, error) {
			return leave.LeaveRequestResponse{}, leave.ErrLeaveRequestNotFound
		},
	}
	router := newLeaveRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/leaves/missing", nil)
	req = withClaims(req, "user-1", user.RoleEmployee)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLeaveHandler_Get_Forbidden(t *testing.T) {
	svc := &stubLeaveService{
		getFn: func(ctx context.Context, actor user.Actor, requestID string) (leave.LeaveRequestResponse, error) {
			return leave.LeaveRequestResponse{}, leave.ErrNotRequestOwner
		},
	}
	router := newLeaveRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/leaves/req-1", nil)
	req = withClaims(req, "user-2", user.RoleEmployee)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestLeaveHandler_Review_EmployeeBlockedByMiddleware(t *testing.T) {
	svc := &stubLeaveService{
		reviewFn: func(ctx context.Context, actor user.Actor, requestID string, req leave.ReviewLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
			t.Fatal("service must not be reached")
			return leave.LeaveRequestResponse{}, nil
		},
	}
	router := newLeaveRouter(svc)

	payload := bytes.NewBufferString(`{"status":"approved"}`)
	req := httptest.NewRequest(http.MethodPut, "/leaves/req-1", payload)
	req = withClaims(req, "user-1", user.RoleEmployee)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestLeaveHandler_Review_Approved(t *testing.T) {
	svc := &stubLeaveService{
		reviewFn: func(ctx context.Context, actor user.Actor, requestID string, req leave.ReviewLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
			assert.Equal(t, "admin-1", actor.ID)
			assert.Equal(t, "req-1", requestID)
			return leave.LeaveRequestResponse{ID: requestID, Status: req.Status}, nil
		},
	}
	router := newLeaveRouter(svc)

	payload := bytes.NewBufferString(`{"status":"approved","comments":"ok"}`)
	req := httptest.NewRequest(http.MethodPut, "/leaves/req-1", payload)
	req = withClaims(req, "admin-1", user.RoleAdmin)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeEnvelope(t, rec)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "approved", data["status"])
}

func TestLeaveHandler_Review_Conflict(t *testing.T) {
	svc := &stubLeaveService{
		reviewFn: func(ctx context.Context, actor user.Actor, requestID string, req leave.ReviewLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
			return leave.LeaveRequestResponse{}, leave.ErrAlreadyProcessed
		},
	}
	router := newLeaveRouter(svc)

	payload := bytes.NewBufferString(`{"status":"rejected"}`)
	req := httptest.NewRequest(http.MethodPut, "/leaves/req-1", payload)
	req = withClaims(req, "admin-1", user.RoleAdmin)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLeaveHandler_Review_Unavailable(t *testing.T) {
	svc := &stubLeaveService{
		reviewFn: func(ctx context.Context, actor user.Actor, requestID string, req leave.ReviewLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
			return leave.LeaveRequestResponse{}, leave.ErrUnavailable
		},
	}
	router := newLeaveRouter(svc)

	payload := bytes.NewBufferString(`{"status":"approved"}`)
	req := httptest.NewRequest(http.MethodPut, "/leaves/req-1", payload)
	req = withClaims(req, "admin-1", user.RoleAdmin)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestLeaveHandler_Delete_Success(t *testing.T) {
	svc := &stubLeaveService{
		removeFn: func(ctx context.Context, actor user.Actor, requestID string) error {
			assert.Equal(t, "req-1", requestID)
			return nil
		},
	}
	router := newLeaveRouter(svc)

	req := httptest.NewRequest(http.MethodDelete, "/leaves/req-1", nil)
	req = withClaims(req, "user-1", user.RoleEmployee)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLeaveHandler_List_Success(t *testing.T) {
	svc := &stubLeaveService{
		listFn: func(ctx context.Context, actor user.Actor) ([]leave.LeaveRequestResponse, error) {
			return []leave.LeaveRequestResponse{{ID: "req-1"}, {ID: "req-2"}}, nil
		},
	}
	router := newLeaveRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/leaves", nil)
	req = withClaims(req, "user-1", user.RoleEmployee)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeEnvelope(t, rec)
	data := body["data"].([]interface{})
	assert.Len(t, data, 2)
}

func TestLeaveHandler_MissingToken(t *testing.T) {
	svc := &stubLeaveService{}
	router := newLeaveRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/leaves", nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
