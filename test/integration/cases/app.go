//go:build integration

package cases

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/PavelNikolaichev/LangLearn.Backend/internal/bootstrap"
	"github.com/PavelNikolaichev/LangLearn.Backend/internal/config"
	itinfra "github.com/PavelNikolaichev/LangLearn.Backend/test/integration/infra"
)

const testJWTKey = "integration-test-signing-key-0123456789"

// App is the whole service wired by bootstrap against real containers.
type App struct {
	Env    itinfra.Env
	DB     *sql.DB
	Server *httptest.Server
}

// MustStartApp boots Postgres and Redis, plus RabbitMQ when withRabbit is set.
func MustStartApp(t *testing.T, withRabbit bool) *App {
	t.Helper()

	env := itinfra.Env{
		PostgresDSN: itinfra.StartPostgres(t),
		RedisAddr:   itinfra.StartRedis(t),
	}
	if withRabbit {
		env.RabbitURL = itinfra.StartRabbit(t)
	}

	cfg := &config.Config{
		// prod: a broken broker must fail the boot instead of degrading
		Env:              "prod",
		HTTPAddr:         ":0",
		JWTKey:           testJWTKey,
		TokenTTL:         time.Hour,
		BcryptCost:       4,
		DBAddr:           env.PostgresDSN,
		DBAutoMigrate:    true,
		RedisAddr:        env.RedisAddr,
		CacheTTL:         time.Minute,
		RabbitURL:        env.RabbitURL,
		RabbitExchange:   "langlearn.events",
		HTTPReadTimeout:  5 * time.Second,
		HTTPWriteTimeout: 5 * time.Second,
		HTTPIdleTimeout:  time.Minute,
	}

	deps := bootstrap.DefaultDeps()
	deps.LoadConfig = func() (*config.Config, error) { return cfg, nil }

	srv, cleanup, err := bootstrap.NewServerWithDeps(deps)
	require.NoError(t, err, "bootstrap against %s", env)
	t.Cleanup(cleanup)

	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)

	db, err := config.NewDB(env.PostgresDSN, false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return &App{Env: env, DB: db, Server: ts}
}

// Do sends a JSON request and returns the status and raw body.
func (a *App) Do(t *testing.T, method, path, token string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, a.Server.URL+path, rdr)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := a.Server.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res.StatusCode, raw
}

// Data unwraps {"data": ...} into out.
func Data(t *testing.T, raw []byte, out any) {
	t.Helper()

	var env struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &env), "body=%s", raw)
	require.NoError(t, json.Unmarshal(env.Data, out), "body=%s", raw)
}

// ErrorCode pulls error.code out of an error body.
func ErrorCode(t *testing.T, raw []byte) string {
	t.Helper()

	var env struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(raw, &env), "body=%s", raw)
	return env.Error.Code
}

// MustTokenExisting logs in an existing account.
func (a *App) MustTokenExisting(t *testing.T, email, password string) string {
	t.Helper()

	status, raw := a.Do(t, http.MethodPost, "/auth/login", "", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusOK, status, "login: %s", raw)

	var out struct {
		Token string `json:"token"`
	}
	Data(t, raw, &out)
	require.NotEmpty(t, out.Token)
	return out.Token
}

// MustToken registers and logs in a fresh account, returning its bearer token.
func (a *App) MustToken(t *testing.T, email string) string {
	t.Helper()

	status, raw := a.Do(t, http.MethodPost, "/auth/register", "", map[string]string{"email": email, "password": "secret123"})
	require.Equal(t, http.StatusOK, status, "register: %s", raw)

	return a.MustTokenExisting(t, email, "secret123")
}
