package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/gorilla/websocket"

	"github.com/muurk/selectbox/internal/fetch"
	"github.com/muurk/selectbox/internal/selectbox"
)

const countries = `
options:
  - id: fr
    text: France
  - id: fi
    text: Finland
  - id: de
    text: Germany
  - id: 44
    text: United Kingdom
`

func newTestServer(t *testing.T, config *Config) (*Server, *httptest.Server) {
	t.Helper()
	if config.DataPath == "" {
		config.DataPath = filepath.Join(t.TempDir(), "options.yaml")
		if err := os.WriteFile(config.DataPath, []byte(countries), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	s, err := New(config)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(func() {
		ts.Close()
		_ = s.Shutdown(context.Background())
	})
	return s, ts
}

func getJSON(t *testing.T, url string) (int, map[string]any) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return resp.StatusCode, body
}

func TestParseSource(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    int
		wantErr bool
	}{
		{"options key", countries, 4, false},
		{"bare list", "- {id: 1, text: one}\n- {id: 2, text: two}\n", 2, false},
		{"empty", "", 0, false},
		{"missing text", "options:\n  - id: 1\n", 0, true},
		{"not yaml", "options: [", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := ParseSource([]byte(tt.data))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSource() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && src.Len() != tt.want {
				t.Errorf("Len() = %d, want %d", src.Len(), tt.want)
			}
		})
	}
}

func TestSourceSearch(t *testing.T) {
	src, err := ParseSource([]byte(countries))
	if err != nil {
		t.Fatal(err)
	}

	got := src.Search("f", selectbox.SearchPattern, 0)
	want := []map[string]any{
		{"id": "fr", "text": "France"},
		{"id": "fi", "text": "Finland"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Search() mismatch (-want +got):\n%s", diff)
	}

	if got := src.Search("", selectbox.SearchPattern, 3); len(got) != 3 {
		t.Errorf("limited Search() returned %d items", len(got))
	}
	if got := src.Search("", selectbox.SearchPattern, 0); got[3]["id"] != "44" {
		t.Errorf("numeric id = %v, want string 44", got[3]["id"])
	}
}

func TestOptionsHandler(t *testing.T) {
	_, ts := newTestServer(t, &Config{})

	status, body := getJSON(t, ts.URL+"/options?q=an")
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	data, _ := body["data"].([]any)
	if len(data) != 3 {
		t.Errorf("data = %v, want France, Finland and Germany", data)
	}

	status, body = getJSON(t, ts.URL+"/options?limit=-1")
	if status != http.StatusBadRequest || body["error"] == nil {
		t.Errorf("bad limit: status = %d, body = %v", status, body)
	}

	status, _ = getJSON(t, ts.URL+"/options?mode=regex")
	if status != http.StatusBadRequest {
		t.Errorf("bad mode: status = %d", status)
	}
}

func TestOptionsHandlerCustomTermQuery(t *testing.T) {
	_, ts := newTestServer(t, &Config{TermQuery: "search", Limit: 1})

	_, body := getJSON(t, ts.URL+"/options?search=f")
	data, _ := body["data"].([]any)
	if len(data) != 1 {
		t.Errorf("data = %v, want one item", data)
	}
}

func TestVersionAndRoot(t *testing.T) {
	_, ts := newTestServer(t, &Config{})

	_, body := getJSON(t, ts.URL+"/version")
	if body["version"] == "" {
		t.Error("version should be reported")
	}

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("GET / status = %d", resp.StatusCode)
	}
}

func TestLatencyHonoursCancellation(t *testing.T) {
	_, ts := newTestServer(t, &Config{Latency: time.Minute})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/options", nil)
	start := time.Now()
	if resp, err := http.DefaultClient.Do(req); err == nil {
		resp.Body.Close()
		t.Fatal("request should time out")
	}
	if time.Since(start) > 5*time.Second {
		t.Error("request was not abandoned promptly")
	}
}

func TestWebSocketHandler(t *testing.T) {
	s, ts := newTestServer(t, &Config{})
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer conn.Close()

	for _, tt := range []struct {
		query string
		want  int
	}{
		{"q=fr", 1},
		{"q=", 4},
		{"q=zzz", 0},
	} {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(tt.query)); err != nil {
			t.Fatal(err)
		}
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatal(err)
		}
		var reply optionsResponse
		if err := json.Unmarshal(data, &reply); err != nil {
			t.Fatal(err)
		}
		if len(reply.Data) != tt.want {
			t.Errorf("%q: %d items, want %d", tt.query, len(reply.Data), tt.want)
		}
	}

	if n := s.GetActiveConnections(); n != 1 {
		t.Errorf("GetActiveConnections() = %d, want 1", n)
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte("limit=x")); err != nil {
		t.Fatal(err)
	}
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"error"`) {
		t.Errorf("reply = %s, want an error", data)
	}
}

func TestClientsAgainstServer(t *testing.T) {
	_, ts := newTestServer(t, &Config{})
	ctx := context.Background()

	for _, endpoint := range []string{
		ts.URL + "/options",
		"ws" + strings.TrimPrefix(ts.URL, "http") + "/ws",
	} {
		t.Run(endpoint[:strings.Index(endpoint, ":")], func(t *testing.T) {
			url, err := fetch.BuildURL(endpoint, nil, "q", "germ")
			if err != nil {
				t.Fatal(err)
			}
			items, err := fetch.NewFetcher(endpoint, nil, nil).Fetch(ctx, url)
			if err != nil {
				t.Fatalf("Fetch() error = %v", err)
			}
			if len(items) != 1 || items[0]["id"] != "de" {
				t.Errorf("items = %v", items)
			}
		})
	}
}
