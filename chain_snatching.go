package main

import (
	"errors"
	"net/http"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// Demo coordinates for the known areas, used for map markers.
var areaCoordinates = map[string][2]float64{
	"Downtown":  {12.9716, 77.5946},
	"Northside": {12.9860, 77.6100},
	"Eastend":   {12.9600, 77.6200},
	"Westpark":  {12.9500, 77.5800},
}

// FIR dates arrive day-first; ISO is accepted too.
var firDateLayouts = []string{"02-01-2006", "02/01/2006", "2006-01-02"}

type chainResult struct {
	Area  string  `json:"area"`
	Count int     `json:"count"`
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
}

type chainResponse struct {
	Success bool          `json:"success"`
	Total   int           `json:"total"`
	Results []chainResult `json:"results"`
	Limit   int           `json:"limit"`
	Offset  int           `json:"offset"`
}

// ChainSnatching aggregates chain-snatching incidents from the FIR file by
// area, with optional area/date/time filters and pagination. A missing FIR
// file is an empty result, not an error.
func (a *API) ChainSnatching(c echo.Context) error {
	limit, offset, err := paginationParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	empty := chainResponse{Success: true, Total: 0, Results: []chainResult{}, Limit: limit, Offset: offset}

	var startDate, endDate time.Time
	if v := c.QueryParam("start_date"); v != "" {
		startDate, err = time.Parse("2006-01-02", v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid start_date format, use YYYY-MM-DD"})
		}
	}
	if v := c.QueryParam("end_date"); v != "" {
		endDate, err = time.Parse("2006-01-02", v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid end_date format, use YYYY-MM-DD"})
		}
	}

	if _, err := os.Stat(a.cfg.FirCsvPath); err != nil {
		return c.JSON(http.StatusOK, empty)
	}
	ds, err := LoadDataset(a.cfg.FirCsvPath)
	if err != nil {
		a.log.Error().Err(err).Str("file", a.cfg.FirCsvPath).Msg("parsing fir data")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not parse FIR data"})
	}

	crimeCol := ds.ColumnIndex("crime_type")
	areaCol := ds.ColumnIndex("area")
	if crimeCol < 0 || areaCol < 0 {
		return c.JSON(http.StatusOK, empty)
	}
	dateCol := ds.ColumnIndex("date")
	timeCol := ds.ColumnIndex("time")

	areaFilter := c.QueryParam("area")
	startTime := c.QueryParam("start_time")
	endTime := c.QueryParam("end_time")

	counts := map[string]int{}
	for _, row := range ds.Rows {
		if !strings.Contains(strings.ToLower(row[crimeCol]), "chain") {
			continue
		}
		if areaFilter != "" && !strings.EqualFold(strings.TrimSpace(row[areaCol]), areaFilter) {
			continue
		}
		if dateCol >= 0 && (!startDate.IsZero() || !endDate.IsZero()) {
			rowDate, ok := parseFirDate(row[dateCol])
			if !ok {
				continue
			}
			if !startDate.IsZero() && rowDate.Before(startDate) {
				continue
			}
			if !endDate.IsZero() && rowDate.After(endDate) {
				continue
			}
		}
		if timeCol >= 0 {
			rowTime := strings.TrimSpace(row[timeCol])
			if startTime != "" && rowTime < startTime {
				continue
			}
			if endTime != "" && rowTime > endTime {
				continue
			}
		}
		counts[strings.TrimSpace(row[areaCol])]++
	}

	grouped := make([]chainResult, 0, len(counts))
	total := 0
	for area, count := range counts {
		total += count
		coords, ok := areaCoordinates[area]
		if !ok {
			coords = [2]float64{0, 0}
		}
		grouped = append(grouped, chainResult{Area: area, Count: count, Lat: coords[0], Lng: coords[1]})
	}
	sort.Slice(grouped, func(i, j int) bool {
		if grouped[i].Count != grouped[j].Count {
			return grouped[i].Count > grouped[j].Count
		}
		return grouped[i].Area < grouped[j].Area
	})

	if offset > len(grouped) {
		offset = len(grouped)
	}
	end := offset + limit
	if end > len(grouped) {
		end = len(grouped)
	}

	return c.JSON(http.StatusOK, chainResponse{
		Success: true,
		Total:   total,
		Results: grouped[offset:end],
		Limit:   limit,
		Offset:  offset,
	})
}

func paginationParams(c echo.Context) (limit, offset int, err error) {
	limit = 100
	if v := c.QueryParam("limit"); v != "" {
		limit, err = strconv.Atoi(v)
		if err != nil || limit < 0 {
			return 0, 0, errors.New("invalid limit")
		}
	}
	if v := c.QueryParam("offset"); v != "" {
		offset, err = strconv.Atoi(v)
		if err != nil || offset < 0 {
			return 0, 0, errors.New("invalid offset")
		}
	}
	return limit, offset, nil
}

func parseFirDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range firDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
