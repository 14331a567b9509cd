package bot

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testRegistrar(ts *httptest.Server) *WebhookRegistrar {
	return &WebhookRegistrar{apiBase: ts.URL, httpClient: ts.Client()}
}

func TestRegisterWebhookRequest(t *testing.T) {
	var gotPath string
	var gotBody map[string]string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotBody)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer ts.Close()

	if err := testRegistrar(ts).Register("123:ABC", "https://app.example.com"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if gotPath != "/bot123:ABC/setWebhook" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if len(gotBody) != 1 || gotBody["url"] != "https://app.example.com/123:ABC" {
		t.Fatalf("unexpected body %v", gotBody)
	}
}

func TestRegisterWebhookErrors(t *testing.T) {
	t.Run("missing external url", func(t *testing.T) {
		if err := NewWebhookRegistrar().Register("123:ABC", ""); err != errNoExternalURL {
			t.Fatalf("expected errNoExternalURL, got %v", err)
		}
	})

	t.Run("non-200 status", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"ok":false,"description":"Unauthorized"}`))
		}))
		defer ts.Close()
		if err := testRegistrar(ts).Register("bad", "https://app.example.com"); err == nil {
			t.Fatal("expected error on 401")
		}
	})

	t.Run("ok=false with 200 status", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"ok":false,"description":"bad webhook"}`))
		}))
		defer ts.Close()
		if err := testRegistrar(ts).Register("123:ABC", "https://app.example.com"); err == nil {
			t.Fatal("expected error on ok=false")
		}
	})

	t.Run("malformed response", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		}))
		defer ts.Close()
		if err := testRegistrar(ts).Register("123:ABC", "https://app.example.com"); err == nil {
			t.Fatal("expected decode error")
		}
	})

	t.Run("connection refused", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		ts.Close()
		if err := testRegistrar(ts).Register("123:ABC", "https://app.example.com"); err == nil {
			t.Fatal("expected transport error")
		}
	})
}

func TestDeleteWebhook(t *testing.T) {
	var gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer ts.Close()

	if err := testRegistrar(ts).Delete("123:ABC"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if gotPath != "/bot123:ABC/deleteWebhook" {
		t.Fatalf("unexpected path %q", gotPath)
	}
}
