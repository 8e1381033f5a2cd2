package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/justinas/nosurf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jlaasonen/precinct/internal/errors"
	"github.com/jlaasonen/precinct/internal/logging"
	"github.com/jlaasonen/precinct/internal/models"
	"github.com/jlaasonen/precinct/internal/repositories"
	"github.com/jlaasonen/precinct/internal/sqlite"
	"github.com/jlaasonen/precinct/internal/testhelpers"
	"github.com/jlaasonen/precinct/internal/workflow"
)

// waitForReady calls the specified endpoint until it gets a HTTP 200 Success
// response or until the context is cancelled or the 1-second timeout is reached.
func waitForReady(ctx context.Context, endpoint string) error {
	timeout := 1 * time.Second
	client := http.Client{}
	startTime := time.Now()
	var (
		err  error
		req  *http.Request
		resp *http.Response
	)
	for {
		if req, err = http.NewRequestWithContext(
			ctx,
			http.MethodGet,
			endpoint,
			nil,
		); err != nil {
			return errors.Wrap(err, "create request")
		}

		if resp, err = client.Do(req); err == nil {
			if resp.StatusCode == http.StatusOK {
				if err = resp.Body.Close(); err != nil {
					return errors.Wrap(err, "close response body")
				}
				return nil
			}
			if err = resp.Body.Close(); err != nil {
				return errors.Wrap(err, "close response body")
			}
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			if time.Since(startTime) >= timeout {
				return errors.New("timeout waiting for endpoint to be ready")
			}
			time.Sleep(250 * time.Millisecond)
		}
	}
}

type testServer struct {
	url   string
	dbURL string
}

// rosterMember is one seeded department member for driving the workflow over
// the API.
type rosterMember struct {
	NationalID string
	MemberID   int64
}

type roster map[workflow.Role]rosterMember

// startTestServer starts the server on a random port against a fresh database
// file, waits for it to be ready, and seeds the department roster.
func startTestServer(t *testing.T) (*testServer, roster) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())

	dbURL := filepath.Join(t.TempDir(), "precinct.sqlite")
	lookupEnv := func(key string) (string, bool) {
		switch key {
		case "PRECINCT_ADDR":
			return "localhost:0", true
		case "PRECINCT_SQLITE_URL":
			return dbURL, true
		case "PRECINCT_PPROF_PORT":
			return ":0", true
		default:
			return "", false
		}
	}

	// We need to grab the dynamically allocated port from the log output.
	addrCh := make(chan string, 1)
	logger := slog.New(logging.NewContextHandler(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		AddSource: false,
		Level:     slog.LevelDebug,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == "Addr" {
				addrCh <- a.Value.String()
			}
			return a
		},
	})))

	// Start the server and wait for it to be ready.
	go func() {
		if err := run(ctx, logger, lookupEnv); err != nil {
			cancel()
			assert.NoError(t, err)
		}
	}()
	select {
	case <-ctx.Done():
		t.Fatal("server failed to start")
		return nil, nil
	case addr := <-addrCh:
		serverURL := fmt.Sprintf("http://%s", addr)
		require.NoError(t, waitForReady(ctx, fmt.Sprintf("%s/api/healthy", serverURL)))
		srv := &testServer{url: serverURL, dbURL: dbURL}
		return srv, srv.seedRoster(t)
	}
}

// seedRoster enlists one member per rank directly in the database file the
// server runs against.
func (s *testServer) seedRoster(t *testing.T) roster {
	t.Helper()
	ctx := context.Background()
	logger := testhelpers.NewLogger(io.Discard)
	dbs, err := sqlite.NewDatabase(ctx, s.dbURL, logger)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, dbs.Close())
	}()

	persons := repositories.NewPersonRepository(dbs, logger)
	members := repositories.NewMemberRepository(dbs, logger)

	out := roster{}
	ranks := []workflow.Role{
		workflow.RoleCadet, workflow.RoleOfficer, workflow.RoleDetective, workflow.RoleSergeant,
		workflow.RoleCaptain, workflow.RolePoliceChief, workflow.RoleJudge,
	}
	for i, role := range ranks {
		nationalID := uuid.NewString()
		personID, err := persons.Upsert(ctx, &models.Person{
			NationalID: nationalID,
			FullName:   fmt.Sprintf("Seeded %s", role),
		})
		require.NoError(t, err)
		memberID, err := members.Enlist(ctx, personID, fmt.Sprintf("T-%04d", i+1), role)
		require.NoError(t, err)
		out[role] = rosterMember{NationalID: nationalID, MemberID: memberID}
	}
	return out
}

// apiClient is one logged-in identity with its own session cookie and CSRF
// token.
type apiClient struct {
	t       *testing.T
	baseURL string
	client  http.Client
	csrf    string
}

func (s *testServer) newClient(t *testing.T) *apiClient {
	t.Helper()
	jar, err := newUnsafeCookieJar()
	require.NoError(t, err)
	return &apiClient{
		t:       t,
		baseURL: s.url,
		client:  http.Client{Jar: jar},
	}
}

// login authenticates the client and fetches the CSRF token for unsafe
// requests.
func (c *apiClient) login(nationalID, fullName string) {
	c.t.Helper()
	resp, _ := c.postJSON("/api/login", map[string]any{
		"national_id": nationalID,
		"full_name":   fullName,
	})
	require.Equal(c.t, http.StatusOK, resp.StatusCode)

	resp, body := c.getJSON("/api/session")
	require.Equal(c.t, http.StatusOK, resp.StatusCode)
	c.csrf, _ = body["csrf_token"].(string)
	require.NotEmpty(c.t, c.csrf)
}

func (c *apiClient) do(method, urlPath string, payload any) (*http.Response, map[string]any) {
	c.t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(c.t, err)
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, c.baseURL+urlPath, body)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")
	if c.csrf != "" {
		req.Header.Set(nosurf.HeaderName, c.csrf)
	}
	resp, err := c.client.Do(req)
	require.NoError(c.t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	require.NoError(c.t, resp.Body.Close())

	decoded := map[string]any{}
	if len(raw) > 0 {
		// Error statuses from clientError are plain text.
		_ = json.Unmarshal(raw, &decoded)
	}
	return resp, decoded
}

func (c *apiClient) postJSON(urlPath string, payload any) (*http.Response, map[string]any) {
	c.t.Helper()
	return c.do(http.MethodPost, urlPath, payload)
}

func (c *apiClient) getJSON(urlPath string) (*http.Response, map[string]any) {
	c.t.Helper()
	return c.do(http.MethodGet, urlPath, nil)
}

// jsonID extracts an integer identifier from a decoded JSON object.
func jsonID(t *testing.T, body map[string]any, key string) int64 {
	t.Helper()
	v, ok := body[key].(float64)
	require.True(t, ok, "missing %q in %v", key, body)
	return int64(v)
}
