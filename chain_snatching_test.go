package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/firwatch/crime_data_api/config"
)

const firCSV = "fir_id,date,time,area,crime_type,details\n" +
	"1,15-03-2024,09:30,Downtown,Chain Snatching,near market\n" +
	"2,16-03-2024,18:45,Downtown,Chain snatching,main road\n" +
	"3,17-03-2024,21:10,Northside,chain-snatching,bus stop\n" +
	"4,18-03-2024,11:00,Downtown,Theft,shop\n"

func chainServer(t *testing.T) (*echo.Echo, string) {
	t.Helper()
	e, cfg := newTestServer(t)
	require.NoError(t, os.WriteFile(cfg.FirCsvPath, []byte(firCSV), 0644))

	_, body := login(t, e, "admin", "password123")
	return e, body["access_token"].(string)
}

func chainGet(t *testing.T, e *echo.Echo, token, path string) (int, chainResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	resp := chainResponse{}
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec.Code, resp
}

func TestChainSnatchingAggregation(t *testing.T) {
	e, token := chainServer(t)

	code, resp := chainGet(t, e, token, "/chain-snatching")
	require.Equal(t, http.StatusOK, code)

	assert.True(t, resp.Success)
	assert.Equal(t, 3, resp.Total, "theft row must be excluded")
	require.Len(t, resp.Results, 2)

	assert.Equal(t, "Downtown", resp.Results[0].Area)
	assert.Equal(t, 2, resp.Results[0].Count)
	assert.Equal(t, 12.9716, resp.Results[0].Lat)
	assert.Equal(t, 77.5946, resp.Results[0].Lng)

	assert.Equal(t, "Northside", resp.Results[1].Area)
	assert.Equal(t, 1, resp.Results[1].Count)
}

func TestChainSnatchingAreaFilter(t *testing.T) {
	e, token := chainServer(t)

	code, resp := chainGet(t, e, token, "/chain-snatching?area=northside")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, resp.Total)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "Northside", resp.Results[0].Area)
}

func TestChainSnatchingDateFilter(t *testing.T) {
	e, token := chainServer(t)

	code, resp := chainGet(t, e, token, "/chain-snatching?start_date=2024-03-17")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, resp.Total)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "Northside", resp.Results[0].Area)

	code, _ = chainGet(t, e, token, "/chain-snatching?start_date=17-03-2024")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestChainSnatchingTimeFilter(t *testing.T) {
	e, token := chainServer(t)

	code, resp := chainGet(t, e, token, "/chain-snatching?end_time=12:00")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, resp.Total)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "Downtown", resp.Results[0].Area)
}

func TestChainSnatchingPagination(t *testing.T) {
	e, token := chainServer(t)

	code, resp := chainGet(t, e, token, "/chain-snatching?limit=1")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 3, resp.Total, "total covers all groups, not just the page")
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "Downtown", resp.Results[0].Area)

	code, resp = chainGet(t, e, token, "/chain-snatching?limit=1&offset=1")
	require.Equal(t, http.StatusOK, code)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "Northside", resp.Results[0].Area)

	code, _ = chainGet(t, e, token, "/chain-snatching?limit=nope")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestChainSnatchingMissingFile(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		UploadDir:  dir,
		JwtSecret:  "test-secret",
		FirCsvPath: dir + "/absent.csv",
		MaxUpload:  "8M",
	}
	e := newRouter(NewAPI(cfg, zerolog.Nop()))

	_, body := login(t, e, "admin", "password123")
	token := body["access_token"].(string)

	code, resp := chainGet(t, e, token, "/chain-snatching")
	require.Equal(t, http.StatusOK, code)
	assert.True(t, resp.Success)
	assert.Equal(t, 0, resp.Total)
	assert.Empty(t, resp.Results)
}
