package main

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// DrawBreakdownBars renders a breakdown as a PNG bar chart.
func DrawBreakdownBars(title string, items []SummaryItem) ([]byte, error) {
	if len(items) == 0 {
		return nil, errors.New("no data to plot")
	}

	var bars []chart.Value
	for _, item := range items {
		bars = append(bars, chart.Value{
			Value: float64(item.Value),
			Label: item.Label,
		})
	}

	graph := chart.BarChart{
		Title: title,
		Background: chart.Style{
			FillColor:   drawing.ColorWhite,
			StrokeColor: drawing.ColorBlue,
		},
		Height:   1024,
		Width:    2028,
		BarWidth: 60,
		Bars:     bars,
		YAxis: chart.YAxis{
			Name: "Count",
		},
	}

	graph.Background.StrokeWidth = 1
	graph.Background.StrokeColor = drawing.ColorFromHex("efefef")

	buffer := bytes.NewBuffer([]byte{})
	err := graph.Render(chart.PNG, buffer)
	if err != nil {
		return nil, fmt.Errorf("error rendering chart: %v", err)
	}

	return buffer.Bytes(), nil
}

// PlotBreakdown serves the selected breakdown of an uploaded file as a PNG
// bar chart.
func (a *API) PlotBreakdown(c echo.Context) error {
	ds, name, err := a.requireDataset(c)
	if ds == nil {
		return err
	}

	groupBy := c.QueryParam("group_by")
	if groupBy == "" {
		groupBy = "type"
	}
	items := ds.Summarize(groupBy)
	if len(items) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "nothing to plot for group_by=" + groupBy})
	}

	png, err := DrawBreakdownBars(fmt.Sprintf("Crimes by %s (%s)", groupBy, name), items)
	if err != nil {
		a.log.Error().Err(err).Str("file", name).Msg("rendering plot")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not render chart"})
	}
	return c.Blob(http.StatusOK, "image/png", png)
}
