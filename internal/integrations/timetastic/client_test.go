package timetastic

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "test-key")
}

func TestFetchUsersParsesRecords(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", got)
		}
		w.Write([]byte(`[{"id":1,"firstName":"Ada","lastName":"Lovelace"},{"id":2,"firstName":"Grace","lastName":"Hopper"}]`))
	})

	users, err := client.FetchUsers()
	if err != nil {
		t.Fatalf("FetchUsers failed: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("got %d users, want 2", len(users))
	}
	if users[0].DisplayName() != "Ada Lovelace" {
		t.Fatalf("unexpected first user: %+v", users[0])
	}
}

func TestFetchNotFoundMeansEmpty(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	departments, err := client.FetchDepartments()
	if err != nil {
		t.Fatalf("404 should not be an error, got %v", err)
	}
	if len(departments) != 0 {
		t.Fatalf("expected no departments, got %d", len(departments))
	}

	absences, err := client.FetchAbsences("2025-06-03", "2025-06-15")
	if err != nil {
		t.Fatalf("404 should not be an error, got %v", err)
	}
	if len(absences) != 0 {
		t.Fatalf("expected no absences, got %d", len(absences))
	}
}

func TestFetchServerErrorPropagates(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
	})

	if _, err := client.FetchAbsenceTypes(); err == nil {
		t.Fatalf("expected an error for a 500 response")
	} else if !strings.Contains(err.Error(), "500") {
		t.Fatalf("error should carry the status, got %v", err)
	}
	if _, err := client.FetchAbsences("2025-06-03", "2025-06-15"); err == nil {
		t.Fatalf("expected an error for a 500 response")
	}
}

func TestFetchAbsencesEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("start") != "2025-06-03" || r.URL.Query().Get("end") != "2025-06-15" {
			t.Errorf("missing date range query, got %s", r.URL.RawQuery)
		}
		w.Write([]byte(`{"holidays":[{"id":7,"userId":1,"userName":"Ada Lovelace","startDate":"2025-06-10","endDate":"2025-06-10","status":"Approved"}]}`))
	})

	absences, err := client.FetchAbsences("2025-06-03", "2025-06-15")
	if err != nil {
		t.Fatalf("FetchAbsences failed: %v", err)
	}
	if len(absences) != 1 || absences[0].UserName != "Ada Lovelace" {
		t.Fatalf("unexpected absences: %+v", absences)
	}
}

func TestFetchAbsencesBareArray(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":7,"userId":1,"startDate":"2025-06-10","endDate":"2025-06-11"}]`))
	})

	absences, err := client.FetchAbsences("2025-06-03", "2025-06-15")
	if err != nil {
		t.Fatalf("FetchAbsences failed: %v", err)
	}
	if len(absences) != 1 || absences[0].ID != 7 {
		t.Fatalf("unexpected absences: %+v", absences)
	}
}

func TestFetchAbsencesMalformedEnvelopeMeansEmpty(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message":"maintenance"}`))
	})

	absences, err := client.FetchAbsences("2025-06-03", "2025-06-15")
	if err != nil {
		t.Fatalf("a malformed envelope should not fail the run, got %v", err)
	}
	if len(absences) != 0 {
		t.Fatalf("expected no absences, got %d", len(absences))
	}
}
