package route_test

import (
	"context"
	"testing"

	"github.com/project-tktt/jobby/internal/route"
	"github.com/project-tktt/jobby/internal/session"
)

// ── Parse ──────────────────────────────────────────────────────────────────

func TestParse(t *testing.T) {
	cases := []struct {
		path string
		want route.Target
	}{
		{"/", route.Target{Name: route.Home}},
		{"", route.Target{Name: route.Home}},
		{"/login", route.Target{Name: route.Login}},
		{"/jobs", route.Target{Name: route.Jobs}},
		{"/jobs/", route.Target{Name: route.Jobs}},
		{"/jobs/123", route.Target{Name: route.JobDetail, JobID: "123"}},
		{"/jobs/123/extra", route.Target{Name: route.NotFound}},
		{"/bad-path", route.Target{Name: route.NotFound}},
	}
	for _, c := range cases {
		if got := route.Parse(c.path); got != c.want {
			t.Errorf("Parse(%q) = %+v, want %+v", c.path, got, c.want)
		}
	}
}

func TestTarget_PathRoundTrip(t *testing.T) {
	for _, p := range []string{"/", "/login", "/jobs", "/jobs/abc"} {
		if got := route.Parse(p).Path(); got != p {
			t.Errorf("Parse(%q).Path() = %q", p, got)
		}
	}
}

// ── CanEnter ───────────────────────────────────────────────────────────────

func TestCanEnter(t *testing.T) {
	if route.CanEnter(session.Session{}) {
		t.Error("CanEnter(no token) should be false")
	}
	if !route.CanEnter(session.Session{Token: "t"}) {
		t.Error("CanEnter(token) should be true")
	}
}

// ── Redirect ───────────────────────────────────────────────────────────────

func TestRedirect_ProtectedWithoutSessionGoesToLogin(t *testing.T) {
	for _, target := range []route.Target{
		{Name: route.Home},
		{Name: route.Jobs},
		{Name: route.JobDetail, JobID: "123"},
	} {
		got := route.Redirect(target, session.Session{})
		if got.Name != route.Login {
			t.Errorf("Redirect(%s, signed out) = %s, want LOGIN", target.Name, got.Name)
		}
	}
}

func TestRedirect_ProtectedWithSessionIsKept(t *testing.T) {
	target := route.Target{Name: route.JobDetail, JobID: "123"}
	if got := route.Redirect(target, session.Session{Token: "t"}); got != target {
		t.Errorf("Redirect = %+v, want %+v", got, target)
	}
}

func TestRedirect_LoginWithSessionGoesHome(t *testing.T) {
	got := route.Redirect(route.Target{Name: route.Login}, session.Session{Token: "t"})
	if got.Name != route.Home {
		t.Errorf("Redirect(LOGIN, signed in) = %s, want HOME", got.Name)
	}
}

func TestRedirect_PublicTargetsPassThrough(t *testing.T) {
	for _, target := range []route.Target{{Name: route.Login}, {Name: route.NotFound}} {
		if got := route.Redirect(target, session.Session{}); got != target {
			t.Errorf("Redirect(%s, signed out) = %s", target.Name, got.Name)
		}
	}
}

func TestGate_Resolve(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore(nil)
	gate := route.NewGate(store, nil)

	if got := gate.Resolve(ctx, route.Target{Name: route.Jobs}); got.Name != route.Login {
		t.Fatalf("signed out Resolve(JOBS) = %s, want LOGIN", got.Name)
	}
	if err := store.SetToken(ctx, "t", session.DefaultTTL); err != nil {
		t.Fatal(err)
	}
	if got := gate.Resolve(ctx, route.Target{Name: route.Jobs}); got.Name != route.Jobs {
		t.Fatalf("signed in Resolve(JOBS) = %s, want JOBS", got.Name)
	}
}
