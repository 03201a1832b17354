package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/irsalhamdi/art-market/api"
	"github.com/irsalhamdi/art-market/api/background"
	"github.com/irsalhamdi/art-market/config"
	"github.com/irsalhamdi/art-market/core/user"
	"github.com/irsalhamdi/art-market/database"
	"github.com/irsalhamdi/art-market/rate"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type TestEnv struct {
	DB      *sqlx.DB
	Server  *httptest.Server
	URL     string
	Uploads *uploadRecorder

	client *http.Client
}

// NewTestEnv creates a fresh database named after the test inside the shared
// postgres container and serves the full API mux on top of it.
func NewTestEnv(t *testing.T, name string) (*TestEnv, error) {
	admin, err := database.Open(config.DB{
		User:       "postgres",
		Password:   "postgres",
		Host:       dbHost,
		Name:       "postgres",
		DisableTLS: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening admin connection: %w", err)
	}
	defer admin.Close()

	if _, err := admin.Exec("CREATE DATABASE " + name); err != nil {
		return nil, fmt.Errorf("creating database %q: %w", name, err)
	}

	db, err := database.Open(config.DB{
		User:       "postgres",
		Password:   "postgres",
		Host:       dbHost,
		Name:       name,
		DisableTLS: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening test connection: %w", err)
	}

	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("migrating test database: %w", err)
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	session := scs.New()
	session.Lifetime = time.Hour

	uploads := &uploadRecorder{}

	mux := api.APIMux(api.APIConfig{
		Log:          logger,
		DB:           db,
		Session:      session,
		Background:   background.New(logger),
		Storage:      uploads,
		LoginLimiter: rate.NewLimiter(1000, 10, rate.Every(time.Millisecond)),
	})

	srv := httptest.NewServer(mux)

	t.Cleanup(func() {
		srv.Close()
		db.Close()
	})

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}

	env := &TestEnv{
		DB:      db,
		Server:  srv,
		URL:     srv.URL,
		Uploads: uploads,
		client:  &http.Client{Jar: jar},
	}

	return env, nil
}

func (e *TestEnv) Client() *http.Client {
	return e.client
}

// Signup registers a user through the API and leaves the session logged in.
func (e *TestEnv) Signup(t *testing.T, username string) user.User {
	t.Helper()

	body := map[string]string{
		"username":        username,
		"email":           username + "@example.com",
		"firstName":       "Test",
		"lastName":        "User",
		"password":        "supersecret",
		"passwordConfirm": "supersecret",
	}

	var usr user.User
	e.postJSON(t, "/auth/signup", body, http.StatusCreated, &usr)
	return usr
}

func (e *TestEnv) Login(t *testing.T, username string) {
	t.Helper()

	body := map[string]string{
		"username": username,
		"password": "supersecret",
	}
	e.postJSON(t, "/auth/login", body, http.StatusOK, nil)
}

func (e *TestEnv) Logout(t *testing.T) {
	t.Helper()
	e.postJSON(t, "/auth/logout", nil, http.StatusNoContent, nil)
}

func (e *TestEnv) postJSON(t *testing.T, path string, body interface{}, wantStatus int, out interface{}) {
	t.Helper()
	e.doJSON(t, http.MethodPost, path, body, wantStatus, out)
}

func (e *TestEnv) doJSON(t *testing.T, method string, path string, body interface{}, wantStatus int, out interface{}) {
	t.Helper()

	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshaling request body: %v", err)
		}
		rd = bytes.NewReader(raw)
	}

	r, err := http.NewRequest(method, e.URL+path, rd)
	if err != nil {
		t.Fatal(err)
	}
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}

	w, err := e.client.Do(r)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Body.Close()

	if w.StatusCode != wantStatus {
		raw, _ := io.ReadAll(w.Body)
		t.Fatalf("%s %s: status %s, want %d (body: %s)", method, path, w.Status, wantStatus, raw)
	}

	if out != nil {
		if err := json.NewDecoder(w.Body).Decode(out); err != nil {
			t.Fatalf("decoding response of %s %s: %v", method, path, err)
		}
	}
}

// uploadRecorder is the storage.Uploader used by tests. It keeps everything
// in memory and serves URLs under a fake host.
type uploadRecorder struct {
	mu      sync.Mutex
	uploads []recordedUpload
}

type recordedUpload struct {
	Key         string
	ContentType string
	Data        []byte
}

func (u *uploadRecorder) Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	u.uploads = append(u.uploads, recordedUpload{Key: key, ContentType: contentType, Data: data})

	return "http://images.test/" + key, nil
}

// Wait blocks until n uploads were recorded or the timeout expires, since
// uploads happen on background goroutines.
func (u *uploadRecorder) Wait(n int, timeout time.Duration) []recordedUpload {
	deadline := time.Now().Add(timeout)
	for {
		u.mu.Lock()
		if len(u.uploads) >= n {
			out := make([]recordedUpload, len(u.uploads))
			copy(out, u.uploads)
			u.mu.Unlock()
			return out
		}
		u.mu.Unlock()

		if time.Now().After(deadline) {
			return nil
		}
		time.Sleep(10 * time.Millisecond)
	}
}
