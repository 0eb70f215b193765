package http_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContractMatchesRouter(t *testing.T) {
	doc := loadContract(t)
	ts := newTestServer(t, fakeHealthChecker{healthy: true})

	routes, ok := ts.handler.(chi.Routes)
	require.True(t, ok)

	mounted := map[string]bool{}
	err := chi.Walk(routes, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		mounted[method+" "+route] = true
		return nil
	})
	require.NoError(t, err)

	documented := map[string]bool{}
	for path, item := range doc.Paths.Map() {
		for method := range item.Operations() {
			key := method + " " + path
			documented[key] = true
			assert.True(t, mounted[key], "%s is documented but not mounted", key)
		}
	}

	for key := range mounted {
		if strings.Contains(key, " /api/") {
			assert.True(t, documented[key], "%s is mounted but not documented", key)
		}
	}
}
