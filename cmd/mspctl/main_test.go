package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/msp-aci-api/internal/dto"
	"github.com/noah-isme/msp-aci-api/internal/models"
	"github.com/noah-isme/msp-aci-api/internal/repository"
	"github.com/noah-isme/msp-aci-api/internal/seed"
	"github.com/noah-isme/msp-aci-api/internal/server"
	"github.com/noah-isme/msp-aci-api/pkg/storage"
)

func newSeededAPI(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := repository.NewMemoryStore()
	_, err := seed.Load(context.Background(), store, nil)
	require.NoError(t, err)

	archive, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	router := server.NewRouter(server.Options{}, server.NewHandlers(server.Dependencies{
		Store: store,
		Archive: &server.ArchiveDependencies{
			Storage: archive,
			Signer:  storage.NewSignedURLSigner("test-secret", time.Hour),
		},
	}))
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func run(t *testing.T, srv *httptest.Server, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs(append([]string{"--api-url", srv.URL + "/api"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestStatsTable(t *testing.T) {
	srv := newSeededAPI(t)

	out, err := run(t, srv, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "27250 €")
	assert.Contains(t, out, "22750 €")
}

func TestStatsJSON(t *testing.T) {
	srv := newSeededAPI(t)

	out, err := run(t, srv, "stats", "--json")
	require.NoError(t, err)

	var stats models.Stats
	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	assert.Equal(t, 6, stats.ValidatedCoreIndicators)
	assert.Equal(t, 13, stats.TotalOptionalIndicators)
}

func TestIndicatorsFilterByType(t *testing.T) {
	srv := newSeededAPI(t)

	out, err := run(t, srv, "indicators", "--type", "core", "--json")
	require.NoError(t, err)

	var indicators []models.Indicator
	require.NoError(t, json.Unmarshal([]byte(out), &indicators))
	assert.Len(t, indicators, 6)
}

func TestMissionsForAssociate(t *testing.T) {
	srv := newSeededAPI(t)

	out, err := run(t, srv, "missions", "--associate", "3", "--json")
	require.NoError(t, err)

	var missions []models.Mission
	require.NoError(t, json.Unmarshal([]byte(out), &missions))
	assert.Len(t, missions, 3)
	for _, m := range missions {
		assert.EqualValues(t, 3, m.AssociateID)
	}
}

func TestMissionsRejectsBothFilters(t *testing.T) {
	srv := newSeededAPI(t)

	_, err := run(t, srv, "missions", "--associate", "1", "--indicator", "1")
	assert.Error(t, err)
}

func TestAssociatesTable(t *testing.T) {
	srv := newSeededAPI(t)

	out, err := run(t, srv, "associates")
	require.NoError(t, err)
	assert.Contains(t, out, "Sophie Lefevre")
	assert.Contains(t, out, "pharmacist")
}

func TestExportWritesFile(t *testing.T) {
	srv := newSeededAPI(t)
	target := filepath.Join(t.TempDir(), "report.csv")

	out, err := run(t, srv, "export", "--format", "csv", "--out", target)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote "+target)

	payload, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(payload), "AS01")
}

func TestArchivePrintsDownloadLink(t *testing.T) {
	srv := newSeededAPI(t)

	out, err := run(t, srv, "archive", "--format", "xlsx", "--json")
	require.NoError(t, err)

	var archived dto.ArchivedExport
	require.NoError(t, json.Unmarshal([]byte(out), &archived))
	assert.Equal(t, "xlsx", archived.Format)
	assert.Equal(t, "/api/compensation/archive/"+archived.Token, archived.DownloadURL)
}

func TestAPIErrorIsSurfaced(t *testing.T) {
	srv := newSeededAPI(t)

	_, err := run(t, srv, "export", "--format", "docx", "--out", filepath.Join(t.TempDir(), "x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "VALIDATION_ERROR")
}

func TestAttachmentName(t *testing.T) {
	assert.Equal(t, "compensation_20261019.csv", attachmentName(`attachment; filename="compensation_20261019.csv"`))
	assert.Empty(t, attachmentName("inline"))
}
