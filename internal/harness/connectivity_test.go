package harness

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func statusServer(t *testing.T, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// deadURL returns a loopback URL with no listener behind it.
func deadURL(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	return url
}

func TestOTLPReachableStatuses(t *testing.T) {
	dashboard := statusServer(t, http.StatusOK)

	for _, tc := range []struct {
		status    int
		reachable bool
	}{
		{400, true},
		{405, true},
		{200, false},
		{404, false},
		{500, false},
		{503, false},
	} {
		t.Run(fmt.Sprintf("status_%d", tc.status), func(t *testing.T) {
			otlp := statusServer(t, tc.status)
			check := NewConnectivityCheck(dashboard.URL, otlp.URL, 2*time.Second)
			res := check.Run(context.Background())

			if got := res.DetailBool("otlp_endpoint_reachable"); got != tc.reachable {
				t.Fatalf("otlp status %d: reachable = %v, want %v", tc.status, got, tc.reachable)
			}
		})
	}
}

func TestDashboardOnlyOKIsReachable(t *testing.T) {
	otlp := statusServer(t, http.StatusBadRequest)

	for _, tc := range []struct {
		status    int
		reachable bool
	}{
		{200, true},
		{301, false},
		{400, false},
		{404, false},
		{500, false},
	} {
		dashboard := statusServer(t, tc.status)
		check := NewConnectivityCheck(dashboard.URL, otlp.URL, 2*time.Second)
		res := check.Run(context.Background())

		if got := res.DetailBool("dashboard_reachable"); got != tc.reachable {
			t.Fatalf("dashboard status %d: reachable = %v, want %v", tc.status, got, tc.reachable)
		}
	}
}

func TestConnectionErrorIsUnreachableNotFatal(t *testing.T) {
	check := NewConnectivityCheck(deadURL(t), deadURL(t), 500*time.Millisecond)
	res := check.Run(context.Background())

	if res.Success {
		t.Fatal("expected failure when nothing is listening")
	}
	if res.DetailBool("dashboard_reachable") || res.DetailBool("otlp_endpoint_reachable") {
		t.Fatal("connection errors must classify as unreachable")
	}
}

func TestConnectivitySuccessAndDetails(t *testing.T) {
	dashboard := statusServer(t, http.StatusOK)
	otlp := statusServer(t, http.StatusMethodNotAllowed)

	check := NewConnectivityCheck(dashboard.URL, otlp.URL, 2*time.Second)
	res := check.Run(context.Background())

	if !res.Success {
		t.Fatalf("expected success, got %+v", res)
	}
	if res.TestName != "aspire_connectivity" {
		t.Fatalf("TestName = %q", res.TestName)
	}

	want := map[string]any{
		"dashboard_reachable":     true,
		"otlp_endpoint_reachable": true,
		"dashboard_url":           dashboard.URL,
		"otlp_url":                otlp.URL,
	}
	if diff := cmp.Diff(want, res.Details); diff != "" {
		t.Fatalf("details mismatch (-want +got):\n%s", diff)
	}
}
