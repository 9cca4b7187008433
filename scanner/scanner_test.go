package scanner_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"guestdesk/config"
	"guestdesk/scanner"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newClient(t *testing.T, handler http.HandlerFunc) *scanner.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return scanner.NewClient(&config.Config{ScanningURL: srv.URL}, zap.NewNop())
}

func TestScanDocumentSuccess(t *testing.T) {
	t.Parallel()
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/IDScan/ScanDocument", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = w.Write([]byte(`{"Result":true,"ScannedDocument":{"DocumentNumber":"AB123","GivenName":"Jane","Gender":"F"}}`))
	})

	doc, err := c.ScanDocument(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "AB123", doc.DocumentNumber)
	assert.Equal(t, "Jane", doc.GivenName)
	assert.Equal(t, "F", doc.Gender)
}

func TestScanDocumentRejected(t *testing.T) {
	t.Parallel()
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"Result":false,"ErrorMessage":"no document on glass"}`))
	})

	_, err := c.ScanDocument(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no document on glass")
}

func TestScanDocumentServerError(t *testing.T) {
	t.Parallel()
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := c.ScanDocument(context.Background())
	require.Error(t, err)
}
