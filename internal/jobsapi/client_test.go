package jobsapi_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/project-tktt/jobby/internal/domain"
	"github.com/project-tktt/jobby/internal/fetch"
	"github.com/project-tktt/jobby/internal/filter"
	"github.com/project-tktt/jobby/internal/jobsapi"
	"github.com/project-tktt/jobby/internal/session"
)

type captured struct {
	mu   sync.Mutex
	reqs []*http.Request
	body []string
}

func (c *captured) last(t *testing.T) (*http.Request, string) {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.reqs) == 0 {
		t.Fatal("server received no request")
	}
	return c.reqs[len(c.reqs)-1], c.body[len(c.body)-1]
}

func newServer(t *testing.T, status int, body string) (*httptest.Server, *captured) {
	t.Helper()
	rec := &captured{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		rec.mu.Lock()
		rec.reqs = append(rec.reqs, r)
		rec.body = append(rec.body, string(raw))
		rec.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

func newClient(t *testing.T, baseURL string, store session.Store) *jobsapi.Client {
	return jobsapi.NewClient(jobsapi.Config{BaseURL: baseURL, UserAgent: "jobby-test"}, store, zaptest.NewLogger(t))
}

// ── Query encoding ─────────────────────────────────────────────────────────

func TestJobsQuery(t *testing.T) {
	cases := []struct {
		name string
		in   filter.State
		want map[string]string
		omit []string
	}{
		{
			name: "nothing selected",
			in:   filter.State{},
			want: map[string]string{"search": ""},
			omit: []string{"employment_type", "minimum_package"},
		},
		{
			name: "everything selected",
			in: filter.State{
				SearchText:      "dev",
				EmploymentTypes: []domain.EmploymentType{domain.EmploymentFullTime, domain.EmploymentPartTime},
				SalaryRange:     domain.Salary20LPA,
			},
			want: map[string]string{
				"search":          "dev",
				"employment_type": "FULLTIME,PARTTIME",
				"minimum_package": "2000000",
			},
		},
		{
			name: "salary only",
			in:   filter.State{SalaryRange: domain.Salary40LPA},
			want: map[string]string{"minimum_package": "4000000", "search": ""},
			omit: []string{"employment_type"},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			q := jobsapi.JobsQuery(c.in)
			for k, v := range c.want {
				if !q.Has(k) || q.Get(k) != v {
					t.Errorf("%s = %q (present %v), want %q", k, q.Get(k), q.Has(k), v)
				}
			}
			for _, k := range c.omit {
				if q.Has(k) {
					t.Errorf("%s should be omitted, got %q", k, q.Get(k))
				}
			}
		})
	}
}

// ── Requests ───────────────────────────────────────────────────────────────

func TestJobsRequest_SendsBearerAndFilters(t *testing.T) {
	srv, rec := newServer(t, http.StatusOK, `[]`)
	store := session.NewMemoryStore(nil)
	_ = store.SetToken(context.Background(), "T1", session.DefaultTTL)

	m := fetch.New[[]domain.JobSummary](zaptest.NewLogger(t))
	st := m.Run(context.Background(), newClient(t, srv.URL, store).JobsRequest(filter.State{
		SearchText:      "go",
		EmploymentTypes: []domain.EmploymentType{domain.EmploymentInternship},
	}), jobsapi.DecodeJobList)
	if !st.Success() {
		t.Fatalf("status = %s (%s)", st.Status, st.Reason)
	}

	req, _ := rec.last(t)
	if req.URL.Path != "/jobs" {
		t.Errorf("path = %s, want /jobs", req.URL.Path)
	}
	if got := req.Header.Get("Authorization"); got != "Bearer T1" {
		t.Errorf("Authorization = %q, want Bearer T1", got)
	}
	if got := req.URL.Query().Get("employment_type"); got != "INTERNSHIP" {
		t.Errorf("employment_type = %q", got)
	}
	if got := req.URL.Query().Get("search"); got != "go" {
		t.Errorf("search = %q", got)
	}
	if req.Header.Get("Accept") != "application/json" || req.Header.Get("User-Agent") != "jobby-test" {
		t.Errorf("missing standard headers: %v", req.Header)
	}
	if req.Header.Get("X-Request-Id") == "" {
		t.Error("missing X-Request-Id")
	}
}

func TestRequest_WithoutTokenOmitsHeader(t *testing.T) {
	srv, rec := newServer(t, http.StatusUnauthorized, `{"error_msg":"Authorization header is undefined"}`)

	m := fetch.New[domain.Profile](zaptest.NewLogger(t))
	st := m.Run(context.Background(), newClient(t, srv.URL, session.NewMemoryStore(nil)).ProfileRequest(), jobsapi.DecodeProfile)

	req, _ := rec.last(t)
	if _, ok := req.Header["Authorization"]; ok {
		t.Errorf("Authorization sent without a session: %q", req.Header.Get("Authorization"))
	}
	if !st.Failed() || st.Reason != "Authorization header is undefined" {
		t.Errorf("state = %s %q, want FAILURE with server message", st.Status, st.Reason)
	}
}

func TestJobRequest_EscapesID(t *testing.T) {
	srv, rec := newServer(t, http.StatusOK, `{}`)
	m := fetch.New[domain.JobDetailPage](zaptest.NewLogger(t))
	m.Run(context.Background(), newClient(t, srv.URL, nil).JobRequest("a/b"), jobsapi.DecodeJobDetail)

	req, _ := rec.last(t)
	if req.URL.EscapedPath() != "/jobs/a%2Fb" {
		t.Errorf("escaped path = %s, want /jobs/a%%2Fb", req.URL.EscapedPath())
	}
}

func TestLoginRequest_PostsCredentialsWithoutBearer(t *testing.T) {
	srv, rec := newServer(t, http.StatusOK, `{"jwt_token":"new-token"}`)
	store := session.NewMemoryStore(nil)
	_ = store.SetToken(context.Background(), "stale", session.DefaultTTL)

	m := fetch.New[string](zaptest.NewLogger(t))
	st := m.Run(context.Background(),
		newClient(t, srv.URL, store).LoginRequest(jobsapi.Credentials{Username: "rahul", Password: "rahul@2021"}),
		jobsapi.DecodeLogin)
	if !st.Success() || st.Value != "new-token" {
		t.Fatalf("state = %+v, want SUCCESS new-token", st)
	}

	req, body := rec.last(t)
	if req.Method != http.MethodPost || req.URL.Path != "/login" {
		t.Errorf("request = %s %s, want POST /login", req.Method, req.URL.Path)
	}
	if req.Header.Get("Authorization") != "" {
		t.Error("login must not carry a bearer header")
	}
	var creds jobsapi.Credentials
	if err := json.Unmarshal([]byte(body), &creds); err != nil {
		t.Fatal(err)
	}
	if creds.Username != "rahul" || creds.Password != "rahul@2021" {
		t.Errorf("credentials = %+v", creds)
	}
}

func TestLoginRequest_ServerErrorMessage(t *testing.T) {
	srv, _ := newServer(t, http.StatusBadRequest, `{"error_msg":"username and password didn't match"}`)

	m := fetch.New[string](zaptest.NewLogger(t))
	st := m.Run(context.Background(),
		newClient(t, srv.URL, nil).LoginRequest(jobsapi.Credentials{Username: "x", Password: "y"}),
		jobsapi.DecodeLogin)
	if st.Reason != "username and password didn't match" {
		t.Errorf("reason = %q", st.Reason)
	}
}

func TestRequest_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	m := fetch.New[[]domain.JobSummary](zaptest.NewLogger(t))
	st := m.Run(context.Background(), newClient(t, url, nil).JobsRequest(filter.State{}), jobsapi.DecodeJobList)
	if !st.Failed() || st.Err.Kind != fetch.KindNetwork {
		t.Fatalf("state = %s err %v, want network FAILURE", st.Status, st.Err)
	}
}
