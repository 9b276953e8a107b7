package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/drivefetch/drivefetch/internal/app/model"
	"github.com/drivefetch/drivefetch/internal/app/service"
)

type mapThemeStore struct {
	mu      sync.Mutex
	markers map[string]string
}

func (s *mapThemeStore) Get(ctx context.Context, sessionID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.markers[sessionID], nil
}

func (s *mapThemeStore) Set(ctx context.Context, sessionID, marker string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.markers[sessionID] = marker
	return nil
}

func newTestServer() *Server {
	notifier := service.NewNotifier(time.Minute, time.Second)
	converter := service.NewConverter(service.ConverterDeps{
		Delay:    0,
		Notifier: notifier,
	})
	theme := service.NewThemeService(&mapThemeStore{markers: make(map[string]string)}, nil)

	return New(Dependencies{
		Converter:     converter,
		Notifier:      notifier,
		Theme:         theme,
		SessionSecret: []byte("test-secret"),
		DisplayWindow: time.Minute,
		FadeDelay:     time.Second,
	})
}

func jsonRequest(method, target string, body string) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestServer_Convert(t *testing.T) {
	s := newTestServer()

	resp, err := s.App().Test(jsonRequest(http.MethodPost, "/api/convert",
		`{"link":"https://drive.google.com/file/d/1A2b_3C-xyz/view?usp=sharing"}`))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var out struct {
		OutputLink  string       `json:"output_link"`
		CopyEnabled bool         `json:"copy_enabled"`
		Status      model.Status `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}

	want := "https://drive.google.com/uc?export=download&id=1A2b_3C-xyz"
	if out.OutputLink != want {
		t.Fatalf("output = %q, want %q", out.OutputLink, want)
	}
	if !out.CopyEnabled {
		t.Fatal("copy should be enabled")
	}
	if out.Status.Message != model.MsgGenerated {
		t.Fatalf("status = %+v", out.Status)
	}
}

func TestServer_Convert_EmptyInput(t *testing.T) {
	s := newTestServer()

	resp, err := s.App().Test(jsonRequest(http.MethodPost, "/api/convert", `{"link":"  "}`))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var out struct {
		OutputLink string       `json:"output_link"`
		Status     model.Status `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if out.OutputLink != "" {
		t.Fatalf("expected no output, got %q", out.OutputLink)
	}
	if out.Status.Message != model.MsgEmptyInput || out.Status.Severity != model.SeverityError {
		t.Fatalf("status = %+v", out.Status)
	}
}

func TestServer_Copy_NoOutput(t *testing.T) {
	s := newTestServer()

	resp, err := s.App().Test(jsonRequest(http.MethodPost, "/api/copy", `{"succeeded":true}`))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var out struct {
		Status model.Status `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if out.Status.Message != model.MsgNothingToCopy || out.Status.Severity != model.SeverityInfo {
		t.Fatalf("status = %+v", out.Status)
	}
}

func TestServer_Page(t *testing.T) {
	s := newTestServer()

	resp, err := s.App().Test(httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	html := string(body)
	if !strings.Contains(html, "Generate") || !strings.Contains(html, "Dark mode") {
		t.Fatal("page is missing expected controls")
	}
	if strings.Contains(html, `<body class="dark"`) {
		t.Fatal("default theme must be light")
	}
}

func TestServer_ThemeRoundTrip(t *testing.T) {
	s := newTestServer()

	resp, err := s.App().Test(jsonRequest(http.MethodPut, "/api/theme", `{"dark":true}`))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()

	// Re-apply the saved preference under the same session cookie.
	var cookie *http.Cookie
	for _, ck := range resp.Cookies() {
		if ck.Name == "drivefetch_session" {
			cookie = ck
		}
	}
	if cookie == nil {
		t.Fatal("expected a session cookie")
	}

	pageReq := httptest.NewRequest(http.MethodGet, "/", nil)
	pageReq.AddCookie(cookie)
	pageResp, err := s.App().Test(pageReq)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer pageResp.Body.Close()

	body, _ := io.ReadAll(pageResp.Body)
	if !strings.Contains(string(body), `<body class="dark"`) {
		t.Fatal("dark preference did not survive reload")
	}

	themeReq := httptest.NewRequest(http.MethodGet, "/api/theme", nil)
	themeReq.AddCookie(cookie)
	themeResp, err := s.App().Test(themeReq)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer themeResp.Body.Close()

	var out struct {
		Dark bool `json:"dark"`
	}
	if err := json.NewDecoder(themeResp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !out.Dark {
		t.Fatal("expected dark=true")
	}
}
