package main

import (
	"net/http"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/labstack/echo/v4"
)

// Dashboard renders an interactive bar-chart page for an uploaded file, for
// browsers that hit the server directly without the JS frontend.
func (a *API) Dashboard(c echo.Context) error {
	ds, name, err := a.requireDataset(c)
	if ds == nil {
		return err
	}

	groupBy := c.QueryParam("group_by")
	if groupBy == "" {
		groupBy = "type"
	}
	items := ds.Summarize(groupBy)

	labels := make([]string, 0, len(items))
	values := make([]opts.BarData, 0, len(items))
	for _, item := range items {
		labels = append(labels, item.Label)
		values = append(values, opts.BarData{Value: item.Value})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Crime counts: " + name,
			Subtitle: "grouped by " + groupBy,
		}),
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Crime Dashboard"}),
	)
	bar.SetXAxis(labels).AddSeries("crimes", values)

	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)
	return bar.Render(c.Response())
}
