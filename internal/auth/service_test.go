package auth_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/project-tktt/jobby/internal/auth"
	"github.com/project-tktt/jobby/internal/fetch"
	"github.com/project-tktt/jobby/internal/filter"
	"github.com/project-tktt/jobby/internal/jobsapi"
	"github.com/project-tktt/jobby/internal/route"
	"github.com/project-tktt/jobby/internal/session"
)

func TestLogin_TokenIsUsedByLaterRequests(t *testing.T) {
	var mu sync.Mutex
	var jobsAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/login":
			_, _ = io.WriteString(w, `{"jwt_token":"T1"}`)
		case "/jobs":
			mu.Lock()
			jobsAuth = r.Header.Get("Authorization")
			mu.Unlock()
			_, _ = io.WriteString(w, `[]`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	ctx := context.Background()
	logger := zaptest.NewLogger(t)
	store := session.NewMemoryStore(nil)
	client := jobsapi.NewClient(jobsapi.Config{BaseURL: srv.URL}, store, logger)
	svc := auth.NewService(client, store, 0, logger)

	gate := route.NewGate(store, logger)
	if got := gate.Resolve(ctx, route.Target{Name: route.Jobs}); got.Name != route.Login {
		t.Fatalf("before login /jobs resolves to %v, want Login", got.Name)
	}

	if st := svc.Login(ctx, jobsapi.Credentials{Username: "rahul", Password: "rahul@2021"}); !st.Success() {
		t.Fatalf("login = %s %q", st.Status, st.Reason)
	}
	if tok, ok, _ := store.Token(ctx); !ok || tok != "T1" {
		t.Fatalf("stored token = %q, %v", tok, ok)
	}
	if got := gate.Resolve(ctx, route.Target{Name: route.Jobs}); got.Name != route.Jobs {
		t.Errorf("after login /jobs resolves to %v", got.Name)
	}

	m := fetch.New[[]struct{}](logger)
	m.Run(ctx, client.JobsRequest(filter.State{}), func([]byte) ([]struct{}, error) { return nil, nil })
	mu.Lock()
	defer mu.Unlock()
	if jobsAuth != "Bearer T1" {
		t.Errorf("Authorization = %q, want Bearer T1", jobsAuth)
	}
}

func TestLogin_FailureUsesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error_msg":"Username or password is invalid"}`)
	}))
	defer srv.Close()

	logger := zaptest.NewLogger(t)
	store := session.NewMemoryStore(nil)
	svc := auth.NewService(jobsapi.NewClient(jobsapi.Config{BaseURL: srv.URL}, store, logger), store, 0, logger)

	st := svc.Login(context.Background(), jobsapi.Credentials{})
	if !st.Failed() || st.Reason != "Username or password is invalid" {
		t.Fatalf("state = %s %q", st.Status, st.Reason)
	}
	if _, ok, _ := store.Token(context.Background()); ok {
		t.Error("failed login stored a token")
	}
}

type failingStore struct{ session.Store }

func (failingStore) SetToken(context.Context, string, time.Duration) error {
	return errors.New("read-only filesystem")
}

func TestLogin_StoreFailureIsAFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"jwt_token":"T1"}`)
	}))
	defer srv.Close()

	logger := zaptest.NewLogger(t)
	store := failingStore{session.NewMemoryStore(nil)}
	svc := auth.NewService(jobsapi.NewClient(jobsapi.Config{BaseURL: srv.URL}, store, logger), store, 0, logger)

	if st := svc.Login(context.Background(), jobsapi.Credentials{Username: "u", Password: "p"}); !st.Failed() {
		t.Fatalf("status = %s, want FAILURE", st.Status)
	}
}

func TestLogout_ClearsSession(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore(nil)
	_ = store.SetToken(ctx, "T1", session.DefaultTTL)

	svc := auth.NewService(nil, store, 0, zaptest.NewLogger(t))
	if err := svc.Logout(ctx); err != nil {
		t.Fatal(err)
	}
	if route.CanEnter(session.Current(ctx, store, nil)) {
		t.Error("still authenticated after logout")
	}
}
