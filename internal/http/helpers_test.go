package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"

	"lrkr/internal/cart"
	"lrkr/internal/http/handlers"
	applog "lrkr/internal/log"
	"lrkr/internal/repos"
	"lrkr/web"
)

const (
	adminEmail = "admin@lrkr.test"
	adminPass  = "Passw0rd!"
)

type testApp struct {
	app  *fiber.App
	db   *sqlx.DB
	deps *handlers.Deps
	slot *cart.MemorySlot
}

// newTestApp builds the full route table over an in-memory database. Limits
// are generous unless lim overrides them.
func newTestApp(t *testing.T, lim ...handlers.Limits) *testApp {
	t.Helper()
	db, err := repos.OpenDB(":memory:", repos.Admin{Email: adminEmail, Password: adminPass})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	limits := handlers.Limits{General: 1000, Availability: 1000, Login: 1000, Submissions: 1000, Window: time.Minute}
	if len(lim) > 0 {
		limits = lim[0]
	}
	slot := cart.NewMemorySlot()
	deps := handlers.NewDeps(db, slot, nil)
	app := handlers.NewApp(deps, handlers.AppConfig{
		Views:     web.Engine(),
		BodyLimit: 1 << 20,
		Limits:    limits,
	})
	return &testApp{app: app, db: db, deps: deps, slot: slot}
}

// do sends a request with an optional JSON body and cookies.
func (ta *testApp) do(t *testing.T, method, path string, body any, cookies ...*http.Cookie) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			rd = strings.NewReader(b)
		default:
			raw, err := json.Marshal(b)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			rd = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	resp, err := ta.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return v
}

func sidFrom(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == "sid" {
			return &http.Cookie{Name: "sid", Value: c.Value}
		}
	}
	t.Fatal("sid cookie missing")
	return nil
}

// loginAdmin returns a sid cookie bound to the seeded admin.
func (ta *testApp) loginAdmin(t *testing.T) *http.Cookie {
	t.Helper()
	resp := ta.do(t, "POST", "/api/v1/auth/login", map[string]string{"email": adminEmail, "password": adminPass})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("admin login: status %d", resp.StatusCode)
	}
	return sidFrom(t, resp)
}

type logEntry struct {
	Level  string         `json:"level"`
	Kind   string         `json:"kind"`
	Action string         `json:"action"`
	Err    string         `json:"err"`
	Fields map[string]any `json:"fields"`
}

type lockedBuf struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (l *lockedBuf) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.b.Write(p)
}

func captureLogs(t *testing.T, fn func()) []logEntry {
	t.Helper()
	buf := &lockedBuf{}
	restore := applog.SetOutput(buf)
	defer restore()

	fn()

	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.b.String()), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		var e logEntry
		if err := json.Unmarshal([]byte(line), &e); err == nil {
			entries = append(entries, e)
		}
	}
	return entries
}

func findLog(entries []logEntry, action string) (logEntry, bool) {
	for _, e := range entries {
		if e.Action == action {
			return e, true
		}
	}
	return logEntry{}, false
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(b)
}
