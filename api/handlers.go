package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/corpatlas-org/corpatlas/dataset"
	"github.com/corpatlas-org/corpatlas/engine"
)

// ============================================================================
// HTTP API — The engine as an explicit request/response surface
// ============================================================================
// Each request triggers exactly one engine call: a changed filter on the
// consumer side becomes one GET here, nothing re-runs implicitly.
// ============================================================================

// Handler serves engine queries over a loaded Dataset.
type Handler struct {
	ds       *dataset.Dataset
	defaults Defaults
	log      *logrus.Entry
}

// Defaults fill in omitted query parameters.
type Defaults struct {
	Continent string
	Metric    engine.Metric
	TopN      int
}

// NewHandler creates a handler over an immutable dataset. The dataset is
// shared read-only state; handlers never mutate it, so concurrent requests
// need no locking.
func NewHandler(ds *dataset.Dataset, defaults Defaults, log *logrus.Entry) *Handler {
	if defaults.TopN == 0 {
		defaults.TopN = 10
	}
	if defaults.Continent == "" {
		if continents := ds.Continents(); len(continents) > 0 {
			defaults.Continent = continents[0]
		}
	}
	return &Handler{ds: ds, defaults: defaults, log: log}
}

// RegisterRoutes attaches all API routes to an echo instance.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)

	api := e.Group("/api")
	api.GET("/continents", h.GetContinents)
	api.GET("/metrics", h.GetMetrics)
	api.GET("/rank", h.GetRank)
	api.GET("/correlation", h.GetCorrelation)
	api.GET("/means", h.GetMeans)
	api.GET("/map", h.GetMap)
	api.GET("/dashboard", h.GetDashboard)
}

// --- HANDLERS ---

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"records": h.ds.Len(),
	})
}

// GetContinents lists the distinct continent values of the dataset, for
// populating a filter widget.
func (h *Handler) GetContinents(c echo.Context) error {
	return c.JSON(http.StatusOK, h.ds.Continents())
}

// GetMetrics lists the rankable metrics.
func (h *Handler) GetMetrics(c echo.Context) error {
	type metricInfo struct {
		Key    string `json:"key"`
		Label  string `json:"label"`
		Header string `json:"header"`
	}
	out := make([]metricInfo, 0, len(engine.Metrics))
	for _, m := range engine.Metrics {
		out = append(out, metricInfo{Key: m.Key(), Label: m.String(), Header: m.Header()})
	}
	return c.JSON(http.StatusOK, out)
}

// GetRank returns the filtered-and-ranked subset.
// Query: continent, metric, top.
func (h *Handler) GetRank(c echo.Context) error {
	params, err := h.queryParams(c)
	if err != nil {
		return badRequest(c, err)
	}

	ranked, err := engine.RankByMetric(h.ds, params.Continent, params.Metric, params.TopN)
	if err != nil {
		return badRequest(c, err)
	}

	rows := make([]engine.RankedCompany, len(ranked))
	key := params.Metric.Key()
	for i, r := range ranked {
		rows[i] = engine.RankedCompany{
			Rank:    i + 1,
			Company: r.Company,
			Country: r.Country,
			Value:   r.Numeric(key).Value,
		}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"continent": params.Continent,
		"metric":    params.Metric.Key(),
		"topN":      params.TopN,
		"count":     len(rows),
		"data":      rows,
	})
}

// GetCorrelation returns the Pearson coefficient between two columns.
// Query: x, y (column key or header).
func (h *Handler) GetCorrelation(c echo.Context) error {
	x := c.QueryParam("x")
	y := c.QueryParam("y")
	if x == "" || y == "" {
		return badRequest(c, errors.New("query parameters x and y are required"))
	}

	corr := engine.PearsonCorrelation(h.ds, x, y)
	return c.JSON(http.StatusOK, corr)
}

// GetMeans returns per-column means with the engine's all-or-nothing
// fallback. Query: columns (comma-separated names).
func (h *Handler) GetMeans(c echo.Context) error {
	raw := c.QueryParam("columns")
	if raw == "" {
		return badRequest(c, errors.New("query parameter columns is required"))
	}

	columns := strings.Split(raw, ",")
	for i := range columns {
		columns[i] = strings.TrimSpace(columns[i])
	}

	means, exact := engine.SafeColumnMeans(h.ds, columns)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"means": means,
		"exact": exact,
	})
}

// GetMap returns scatter-layer points and the mean-centered viewport.
func (h *Handler) GetMap(c echo.Context) error {
	return c.JSON(http.StatusOK, engine.MapPoints(h.ds))
}

// GetDashboard runs one full query and returns everything a dashboard
// redraw needs. Query: continent, metric, top, x, y.
func (h *Handler) GetDashboard(c echo.Context) error {
	params, err := h.queryParams(c)
	if err != nil {
		return badRequest(c, err)
	}

	var opts []engine.Option
	if h.log != nil {
		opts = append(opts, engine.WithLogger(h.log))
	}

	result, err := engine.Execute(params, h.ds, opts...)
	if err != nil {
		return badRequest(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// --- PARAM PARSING ---

// queryParams assembles engine.Params from query strings, filling defaults
// for omitted values. Validation itself stays in the engine.
func (h *Handler) queryParams(c echo.Context) (engine.Params, error) {
	params := engine.Params{
		Continent: h.defaults.Continent,
		Metric:    h.defaults.Metric,
		TopN:      h.defaults.TopN,
		XAxis:     engine.MetricSales,
		YAxis:     engine.MetricProfits,
	}

	if v := c.QueryParam("continent"); v != "" {
		params.Continent = v
	}
	if v := c.QueryParam("metric"); v != "" {
		m, err := engine.ParseMetric(v)
		if err != nil {
			return params, err
		}
		params.Metric = m
	}
	if v := c.QueryParam("top"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return params, errors.New("top must be an integer")
		}
		params.TopN = n // range-checked by the engine
	}
	if v := c.QueryParam("x"); v != "" {
		m, err := engine.ParseMetric(v)
		if err != nil {
			return params, err
		}
		params.XAxis = m
	}
	if v := c.QueryParam("y"); v != "" {
		m, err := engine.ParseMetric(v)
		if err != nil {
			return params, err
		}
		params.YAxis = m
	}

	return params, nil
}

func badRequest(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
}
