package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gitelweb/ossync/internal/shared"
)

const itemJSON = `{
	"wo_folio": "OS42",
	"id_work_orders_tasks": 9001,
	"id_status_work_order": 1,
	"id_priorities": 2,
	"created_by": "NOC",
	"completed_percentage": 50,
	"parent_description": "GERDAU SAPUCAIA",
	"creation_date": "2024-03-01T12:00:00Z",
	"items_log_description": "Camera 14",
	"personnel_description": "Augusto Brum",
	"description": "Corretiva",
	"tasks_log_task_type_main": "Corretiva",
	"real_duration": 90,
	"task_status": "done"
}`

// apiServer serves a token endpoint plus a scripted work-orders endpoint.
func apiServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()

	var grants atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("POST /oauth/token", func(w http.ResponseWriter, r *http.Request) {
		n := grants.Add(1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"access_token":"tok-%d","token_type":"bearer","expires_in":3600}`, n)
	})
	mux.HandleFunc("/work_orders/", handler)
	mux.HandleFunc("/work_orders", handler)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	creds := newTestManager(t, srv.URL+"/oauth/token")
	client := NewClient(srv.URL, creds, 0, srv.Client(), shared.NewLogger(nil))
	return srv, client
}

func TestFetchByFolioFound(t *testing.T) {
	_, client := apiServer(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Errorf("Authorization = %q", got)
		}
		fmt.Fprintf(w, `{"data":[%s]}`, itemJSON)
	})

	outcome := client.FetchByFolio(context.Background(), "OS42")
	if outcome.Kind != OutcomeFound {
		t.Fatalf("kind = %v, err = %v", outcome.Kind, outcome.Err)
	}
	if len(outcome.Items) != 1 {
		t.Fatalf("got %d items", len(outcome.Items))
	}

	item := outcome.Items[0]
	if item.Folio != "OS42" || item.TaskID != 9001 {
		t.Errorf("keys = %q / %d", item.Folio, item.TaskID)
	}
	if !item.Valid() {
		t.Error("item should be valid")
	}
	if item.TechnicianText == nil || *item.TechnicianText != "Augusto Brum" {
		t.Errorf("technician = %v", item.TechnicianText)
	}
}

func TestFetchByFolioNotFound(t *testing.T) {
	_, client := apiServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	outcome := client.FetchByFolio(context.Background(), "OS999")
	if outcome.Kind != OutcomeNotFound {
		t.Errorf("kind = %v, want NotFound", outcome.Kind)
	}
	if outcome.Err != nil {
		t.Errorf("not-found outcome carries error: %v", outcome.Err)
	}
}

func TestFetchRetriesOnceAfter401(t *testing.T) {
	var calls atomic.Int64
	_, client := apiServer(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok-2" {
			t.Errorf("retry Authorization = %q", got)
		}
		fmt.Fprintf(w, `{"data":[%s]}`, itemJSON)
	})

	outcome := client.FetchByFolio(context.Background(), "OS42")
	if outcome.Kind != OutcomeFound {
		t.Fatalf("kind = %v, err = %v", outcome.Kind, outcome.Err)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("endpoint hit %d times, want 2", got)
	}
}

func TestFetchGivesUpAfterSecond401(t *testing.T) {
	_, client := apiServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	outcome := client.FetchByFolio(context.Background(), "OS42")
	if outcome.Kind != OutcomeTransient {
		t.Fatalf("kind = %v, want Transient", outcome.Kind)
	}
	if !errors.Is(outcome.Err, shared.ErrNotAuthenticated) {
		t.Errorf("err = %v, want ErrNotAuthenticated", outcome.Err)
	}
}

func TestFetchServerErrorIsTransient(t *testing.T) {
	_, client := apiServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})

	outcome := client.FetchByFolio(context.Background(), "OS42")
	if outcome.Kind != OutcomeTransient {
		t.Fatalf("kind = %v, want Transient", outcome.Kind)
	}
	if !errors.Is(outcome.Err, shared.ErrAPIRequest) {
		t.Errorf("err = %v, want ErrAPIRequest", outcome.Err)
	}
}

func TestFetchPage(t *testing.T) {
	_, client := apiServer(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("page"); got != "3" {
			t.Errorf("page = %q", got)
		}
		if got := r.URL.Query().Get("per_page"); got != "100" {
			t.Errorf("per_page = %q", got)
		}
		fmt.Fprint(w, `{"data":[]}`)
	})

	items, err := client.FetchPage(context.Background(), 3, 100)
	if err != nil {
		t.Fatalf("FetchPage: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("got %d items, want empty page", len(items))
	}
}

func TestFetchMalformedPayload(t *testing.T) {
	_, client := apiServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data": "not a list"`)
	})

	if _, err := client.FetchPage(context.Background(), 1, 100); !errors.Is(err, shared.ErrUnexpectedPayload) {
		t.Errorf("err = %v, want ErrUnexpectedPayload", err)
	}
}
