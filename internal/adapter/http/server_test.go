package http

import (
	"bytes"
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	mw "smartfarm-credit/internal/adapter/middleware"
	"smartfarm-credit/internal/adapter/persistence"
	"smartfarm-credit/internal/domain/user"
	"smartfarm-credit/internal/infrastructure/cache"
	"smartfarm-credit/internal/infrastructure/token"
	"smartfarm-credit/internal/testutil/sqlitedb"
	"smartfarm-credit/internal/usecase/auth"
	"smartfarm-credit/internal/usecase/loan"
	"smartfarm-credit/internal/usecase/market"
	"smartfarm-credit/internal/usecase/payment"
	"smartfarm-credit/internal/usecase/review"
	ucuser "smartfarm-credit/internal/usecase/user"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type testServer struct {
	t      *testing.T
	e      *echo.Echo
	db     *gorm.DB
	issuer *token.Issuer
}

func newEchoWithValidator() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

// newTestServer wires the full router over sqlite and miniredis.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db := sqlitedb.Open(t)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	issuer := token.NewIssuer(testSecret, time.Hour)
	deny := cache.NewDenylist(rdb)

	users := persistence.NewUserRepository(db)
	loans := persistence.NewLoanRepository(db)
	payments := persistence.NewPaymentRepository(db)
	products := persistence.NewProductRepository(db)
	orders := persistence.NewOrderRepository(db)
	tx := persistence.NewGormUoW(db)

	e := newEchoWithValidator()
	Register(e, Handlers{
		Health:   NewHandler("test"),
		Auth:     NewAuthHandler(auth.NewUsecase(users, issuer, deny)),
		Users:    NewUserHandler(ucuser.NewUsecase(users, loans, products, orders)),
		Loans:    NewLoanHandler(loan.NewUsecase(loans, payments, tx)),
		Reviews:  NewReviewHandler(review.NewUsecase(tx)),
		Payments: NewPaymentHandler(payment.NewUsecase(tx)),
		Market:   NewMarketHandler(market.NewUsecase(products, orders, tx)),
	}, Guards{
		Auth:        mw.Auth(issuer, deny),
		Admin:       mw.RequireAdmin(),
		Idempotency: mw.Idempotency(rdb, time.Minute),
	})
	return &testServer{t: t, e: e, db: db, issuer: issuer}
}

func mustJSON(v any) *bytes.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

// do sends a request; mutating calls get fresh idempotency headers.
func (s *testServer) do(method, path, tok string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var req *stdhttp.Request
	if body != nil {
		req = httptest.NewRequest(method, path, mustJSON(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if tok != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+tok)
	}
	if method != stdhttp.MethodGet {
		req.Header.Set(mw.HeaderIdempotencyKey, uuid.NewString())
		req.Header.Set(mw.HeaderRequestAt, time.Now().UTC().Format(time.RFC3339))
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("bad json: %v; raw=%s", err, rec.Body.String())
	}
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d; body=%s", rec.Code, want, rec.Body.String())
	}
}

// register signs up through the API and returns the bearer token.
func (s *testServer) register(email, role string) string {
	s.t.Helper()
	rec := s.do(stdhttp.MethodPost, "/api/auth/register", "", map[string]any{
		"name":      "Test " + role,
		"email":     email,
		"password":  "correct-horse",
		"user_type": role,
	})
	expectStatus(s.t, rec, stdhttp.StatusCreated)
	var sess auth.SessionDTO
	decodeBody(s.t, rec, &sess)
	return sess.Token
}

// admin accounts cannot self-register, so seed one directly.
func (s *testServer) adminToken() string {
	s.t.Helper()
	u := &user.User{Name: "Admin", Email: "admin@example.com", PasswordHash: "x", Role: user.RoleAdmin}
	if err := persistence.NewUserRepository(s.db).Create(context.Background(), u); err != nil {
		s.t.Fatalf("seed admin: %v", err)
	}
	tok, _, err := s.issuer.Issue(u)
	if err != nil {
		s.t.Fatalf("issue: %v", err)
	}
	return tok
}
