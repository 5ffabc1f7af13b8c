package main

import (
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/firwatch/crime_data_api/config"
)

type API struct {
	cfg *config.Config
	log zerolog.Logger
}

func NewAPI(cfg *config.Config, log zerolog.Logger) *API {
	return &API{cfg: cfg, log: log}
}

// Health is the root probe the frontend polls before logging in.
func (a *API) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "running"})
}

type typeCount struct {
	CrimeType string `json:"crime_type"`
	Count     int    `json:"count"`
}

type locationCount struct {
	Location string `json:"location"`
	Count    int    `json:"count"`
}

// Upload accepts a multipart CSV (bare or zip/gzip/lz4 archived), stores it
// under a sanitized name and reports the parsed shape. Re-uploading the same
// name overwrites the previous file.
func (a *API) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "file field is required"})
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if ext != ".csv" && !isArchiveExt(ext) {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "only CSV files are supported (.csv, optionally .zip/.gz/.lz4 archived)",
		})
	}

	if err := os.MkdirAll(a.cfg.UploadDir, 0755); err != nil {
		a.log.Error().Err(err).Str("dir", a.cfg.UploadDir).Msg("creating upload dir")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not store file"})
	}

	name := SanitizeFilename(fileHeader.Filename)
	dstPath := filepath.Join(a.cfg.UploadDir, name)
	if err := saveMultipartFile(fileHeader, dstPath); err != nil {
		a.log.Error().Err(err).Str("file", name).Msg("saving upload")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not store file"})
	}

	if isArchiveExt(filepath.Ext(dstPath)) {
		unpacked, err := unpackArchive(dstPath)
		if err != nil {
			os.Remove(dstPath)
			a.log.Error().Err(err).Str("file", name).Msg("unpacking archive")
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not unpack archive"})
		}
		if unpacked == "" {
			os.Remove(dstPath)
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "archive is empty"})
		}
		// Zip entries carry their own names; normalize again.
		clean := SanitizeFilename(filepath.Base(unpacked))
		cleanPath := filepath.Join(a.cfg.UploadDir, clean)
		if cleanPath != unpacked {
			if err := os.Rename(unpacked, cleanPath); err != nil {
				os.Remove(unpacked)
				return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not store file"})
			}
		}
		if filepath.Ext(cleanPath) != ".csv" {
			os.Remove(cleanPath)
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "archive does not contain a CSV file"})
		}
		dstPath = cleanPath
		name = clean
	}

	ds, err := LoadDataset(dstPath)
	if err != nil {
		a.log.Error().Err(err).Str("file", name).Msg("parsing upload")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not parse CSV: " + err.Error()})
	}

	a.log.Info().Str("file", name).Int("rows", ds.Total()).Msg("file uploaded")
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":  "file uploaded successfully",
		"filename": name,
		"rows":     ds.Total(),
		"columns":  ds.Columns,
	})
}

func saveMultipartFile(fileHeader *multipart.FileHeader, dstPath string) error {
	src, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(dstPath)
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}

// requireDataset resolves the file query parameter against the upload
// directory and loads it. On failure the response is already written and the
// returned dataset is nil.
func (a *API) requireDataset(c echo.Context) (*Dataset, string, error) {
	name := c.QueryParam("file")
	if name == "" {
		return nil, "", c.JSON(http.StatusBadRequest, map[string]string{"error": "file query parameter is required"})
	}

	// Uploads are addressed by bare name only, no directory escapes.
	name = filepath.Base(name)
	path := filepath.Join(a.cfg.UploadDir, name)
	if _, err := os.Stat(path); err != nil {
		return nil, "", c.JSON(http.StatusNotFound, map[string]string{"error": "file not found: " + name})
	}

	ds, err := LoadDataset(path)
	if err != nil {
		a.log.Error().Err(err).Str("file", name).Msg("parsing dataset")
		return nil, "", c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not parse CSV: " + err.Error()})
	}
	return ds, name, nil
}

// TotalCrimes reports the row count of an uploaded file.
func (a *API) TotalCrimes(c echo.Context) error {
	ds, name, err := a.requireDataset(c)
	if ds == nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"total_crimes": ds.Total(),
		"file":         name,
	})
}

// CrimesByType returns per-crime-type counts sorted by descending count.
func (a *API) CrimesByType(c echo.Context) error {
	ds, _, err := a.requireDataset(c)
	if ds == nil {
		return err
	}

	col := ds.CrimeTypeColumn()
	if col < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":             "crime_type column not found in dataset",
			"available_columns": ds.Columns,
		})
	}

	breakdown := []typeCount{}
	for _, e := range ds.CountBy(col) {
		breakdown = append(breakdown, typeCount{CrimeType: e.Label, Count: e.Count})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"group_by":     "crime_type",
		"total_crimes": ds.Total(),
		"breakdown":    breakdown,
	})
}

// CrimesByYear returns per-year counts in chronological order. Rows without a
// parseable year stay in total_crimes but not in the breakdown.
func (a *API) CrimesByYear(c echo.Context) error {
	ds, _, err := a.requireDataset(c)
	if ds == nil {
		return err
	}

	col := ds.YearColumn()
	if col < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":             "year column not found in dataset",
			"available_columns": ds.Columns,
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"group_by":     "year",
		"total_crimes": ds.Total(),
		"breakdown":    ds.CountByYear(col),
	})
}

// CrimesByLocation returns per-location counts sorted by descending count.
func (a *API) CrimesByLocation(c echo.Context) error {
	ds, _, err := a.requireDataset(c)
	if ds == nil {
		return err
	}

	col := ds.LocationColumn()
	if col < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":             "location column not found in dataset",
			"available_columns": ds.Columns,
		})
	}

	breakdown := []locationCount{}
	for _, e := range ds.CountBy(col) {
		breakdown = append(breakdown, locationCount{Location: e.Label, Count: e.Count})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"group_by":     "location",
		"total_crimes": ds.Total(),
		"breakdown":    breakdown,
	})
}

// Summary is the legacy label/value endpoint the first frontend expects.
func (a *API) Summary(c echo.Context) error {
	ds, _, err := a.requireDataset(c)
	if ds == nil {
		return err
	}

	groupBy := c.QueryParam("group_by")
	if groupBy == "" {
		groupBy = "type"
	}
	return c.JSON(http.StatusOK, ds.Summarize(groupBy))
}

// ColumnStats exposes the per-column summary statistics, as JSON or as a
// rendered text table with format=table.
func (a *API) ColumnStats(c echo.Context) error {
	ds, name, err := a.requireDataset(c)
	if ds == nil {
		return err
	}

	stats := AnalyzeColumns(ds)
	if c.QueryParam("format") == "table" {
		return c.String(http.StatusOK, GenerateStatsTable(stats))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"file":    name,
		"columns": stats,
	})
}
