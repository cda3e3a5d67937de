package culler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nikbrunner/newtab/internal/model"
)

func TestCheckCatalog(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.WriteHeader(http.StatusOK)
		case "/gone":
			w.WriteHeader(http.StatusGone)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	links := []model.Link{
		{URL: server.URL + "/ok", Name: "Alive"},
		{URL: server.URL + "/gone", Name: "Gone"},
		{URL: server.URL + "/missing", Name: "Missing"},
	}

	results := CheckCatalog(links, Options{Concurrency: 2, Timeout: 2 * time.Second})

	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}

	wantStatus := []Status{Healthy, Dead, Dead}
	for i, want := range wantStatus {
		if results[i].Status != want {
			t.Errorf("%s: status = %v, want %v", results[i].Link.Name, results[i].Status, want)
		}
	}
}

func TestCheckCatalogProbesProjectLinks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/repo" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	links := []model.Link{{
		URL:         server.URL + "/site",
		Name:        "Site",
		ProjectLink: server.URL + "/repo",
	}}

	results := CheckCatalog(links, Options{Concurrency: 1, Timeout: 2 * time.Second})

	if len(results) != 2 {
		t.Fatalf("got %d results, want site and project targets", len(results))
	}
	if results[0].Project || results[0].Status != Healthy {
		t.Errorf("site target = %+v, want healthy non-project", results[0])
	}
	if !results[1].Project || results[1].Status != Dead {
		t.Errorf("project target = %+v, want dead project link", results[1])
	}
	if results[1].URL != server.URL+"/repo" {
		t.Errorf("project target URL = %q", results[1].URL)
	}
}

func TestCheckCatalogPrivateDomain(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	links := []model.Link{{URL: server.URL + "/private", Name: "Private"}}

	host := server.Listener.Addr().String()
	results := CheckCatalog(links, Options{
		Concurrency:    1,
		Timeout:        2 * time.Second,
		PrivateDomains: []string{host},
	})

	if results[0].Status != Unreachable {
		t.Errorf("status = %v, want Unreachable for private domain", results[0].Status)
	}
	if results[0].Error != "Possibly private (auth required)" {
		t.Errorf("error = %q", results[0].Error)
	}
}

func TestCheckCatalogUnreachable(t *testing.T) {
	links := []model.Link{{URL: "http://127.0.0.1:1/nope", Name: "Refused"}}

	results := CheckCatalog(links, Options{Concurrency: 1, Timeout: time.Second})

	if results[0].Status != Unreachable {
		t.Errorf("status = %v, want Unreachable", results[0].Status)
	}
	if results[0].Error == "" {
		t.Error("expected a normalized error message")
	}
}

func TestByCategory(t *testing.T) {
	results := []Result{
		{Link: model.Link{Name: "A", Category: "Dev"}},
		{Link: model.Link{Name: "B", Category: "News"}},
		{Link: model.Link{Name: "C", Category: "Dev"}},
	}

	groups := ByCategory(results)

	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	if groups[0].Category != "Dev" || len(groups[0].Results) != 2 {
		t.Errorf("first group = %q with %d results, want Dev/2", groups[0].Category, len(groups[0].Results))
	}
	if groups[1].Category != "News" || len(groups[1].Results) != 1 {
		t.Errorf("second group = %q with %d results, want News/1", groups[1].Category, len(groups[1].Results))
	}
}
