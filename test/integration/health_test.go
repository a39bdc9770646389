package integration_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealth(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)

	res, body := ts.SendRequest(t, nil, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, `"status":"ok"`)
}
