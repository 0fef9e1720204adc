package container_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"
	"github.com/samber/do"
	"github.com/serroba/shortlink/internal/container"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemoryInjector(t *testing.T) *do.Injector {
	t.Helper()

	opts := &container.Options{
		Port:      8888,
		BaseURL:   "https://sho.rt/",
		Backend:   container.BackendMemory,
		LogFormat: "console",
		LogLevel:  "error",
	}
	require.NoError(t, opts.Validate())

	injector := do.New()
	do.ProvideValue(injector, opts)
	container.LoggerPackage(injector)
	container.RedisPackage(injector)
	container.PostgresPackage(injector)
	container.PublisherGroupPackage(injector)
	container.RepositoryPackage(injector)
	container.ShortenerPackage(injector)
	container.HTTPPackage(injector)

	t.Cleanup(func() { _ = injector.Shutdown() })

	return injector
}

func TestOptions(t *testing.T) {
	t.Run("base url defaults to localhost and port", func(t *testing.T) {
		opts := &container.Options{Port: 9000}

		assert.Equal(t, "http://localhost:9000", opts.ShortBaseURL())
	})

	t.Run("base url drops trailing slash", func(t *testing.T) {
		opts := &container.Options{BaseURL: "https://sho.rt/"}

		assert.Equal(t, "https://sho.rt", opts.ShortBaseURL())
	})

	t.Run("rejects unknown backend", func(t *testing.T) {
		opts := &container.Options{Backend: "mysql", LogFormat: "json"}

		assert.Error(t, opts.Validate())
	})

	t.Run("rejects unknown log format", func(t *testing.T) {
		opts := &container.Options{Backend: container.BackendMemory, LogFormat: "xml"}

		assert.Error(t, opts.Validate())
	})
}

func TestNewLogger(t *testing.T) {
	t.Run("builds json logger", func(t *testing.T) {
		logger, err := container.NewLogger("json", "debug")

		require.NoError(t, err)
		assert.NotNil(t, logger)
	})

	t.Run("rejects unknown level", func(t *testing.T) {
		_, err := container.NewLogger("console", "loud")

		assert.Error(t, err)
	})
}

func TestHTTPPackage_MemoryBackend(t *testing.T) {
	injector := newMemoryInjector(t)

	router := do.MustInvoke[*chi.Mux](injector)
	_ = do.MustInvoke[huma.API](injector)

	body, _ := json.Marshal(map[string]string{"longUrl": "https://example.com/path/"})
	req := httptest.NewRequest(http.MethodPost, "/shorten", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		ShortURL string `json:"shortUrl"`
		Code     string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "https://sho.rt/"+created.Code, created.ShortURL)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/"+created.Code, nil))

	assert.Equal(t, http.StatusMovedPermanently, w.Code)
	assert.Equal(t, "https://example.com/path", w.Header().Get("Location"))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"redis":"disabled"`)
}
