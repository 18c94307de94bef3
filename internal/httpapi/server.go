// Package httpapi exposes the attendance core over HTTP for the browser
// front end: the UI collects the name and GPS coordinates, this layer runs
// the distance gate and the recorder, and the reporting views read the
// aggregates.
package httpapi

import (
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/minseo-lab/chulgeun/internal/attendance"
	"github.com/minseo-lab/chulgeun/internal/config"
	"github.com/minseo-lab/chulgeun/internal/geo"
	"github.com/minseo-lab/chulgeun/internal/report"
	"github.com/minseo-lab/chulgeun/internal/store"
)

// Server wires the recorder, cache, and report aggregation behind the
// HTTP surface.
type Server struct {
	cfg      config.Config
	loc      *time.Location
	gate     geo.Gate
	cache    *store.Cache
	recorder *attendance.Recorder
	logger   *slog.Logger

	// now is the wall clock; tests fix it.
	now func() time.Time
}

// NewServer builds a server over an already-opened cache.
func NewServer(cfg config.Config, cache *store.Cache, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	recorder := attendance.NewRecorder(logger, cache, cache, cfg.AttendancePolicy())
	recorder.AllowName = cfg.AllowsName
	return &Server{
		cfg:   cfg,
		loc:   cfg.Location(),
		gate:  geo.Gate{Site: geo.Point{Lat: cfg.Site.Latitude, Lon: cfg.Site.Longitude}, RadiusM: cfg.Site.RadiusM},
		cache: cache,
		recorder: recorder,
		logger:   logger,
		now:      time.Now,
	}
}

// Router builds the route table.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", s.health)

	api := r.Group("/api")
	api.POST("/attendance/clock-in", func(c *gin.Context) { s.clock(c, attendance.KindClockIn) })
	api.POST("/attendance/clock-out", func(c *gin.Context) { s.clock(c, attendance.KindClockOut) })
	api.POST("/attendance/absent", s.absent)
	api.GET("/attendance/status", s.status)
	api.GET("/attendance/records", s.records)
	api.GET("/reports/monthly", s.monthly)
	api.GET("/reports/monthly.csv", s.monthlyCSV)

	return r
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type clockRequest struct {
	Name      string   `json:"name" binding:"required"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Reason    string   `json:"reason"`
}

type absentRequest struct {
	Name   string `json:"name" binding:"required"`
	Reason string `json:"reason"`
}

// clock handles clock-in and clock-out: distance gate first, then the
// recorder. The gate runs here because the recorder's contract leaves it
// to the caller; 결근 goes through absent and never reaches it.
func (s *Server) clock(c *gin.Context, kind attendance.RequestKind) {
	var req clockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": "invalid body", "detail": err.Error()})
		return
	}
	if req.Latitude == nil || req.Longitude == nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": "location required"})
		return
	}

	pos := geo.Point{Lat: *req.Latitude, Lon: *req.Longitude}
	distance, ok := s.gate.Check(pos)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{
			"status":   "error",
			"error":    string(attendance.RejectOutOfRadius),
			"distance": geo.FormatMeters(distance),
			"radius_m": s.cfg.Site.RadiusM,
		})
		return
	}

	rec, err := s.recorder.Record(c.Request.Context(), attendance.Request{
		Name:     req.Name,
		Kind:     kind,
		Location: pos.String(),
		Distance: geo.FormatMeters(distance),
		Reason:   req.Reason,
		Now:      s.now().In(s.loc),
	})
	if err != nil {
		s.writeRecordError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "data": recordJSON(rec), "distance": geo.FormatMeters(distance)})
}

func (s *Server) absent(c *gin.Context) {
	var req absentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": "invalid body", "detail": err.Error()})
		return
	}

	rec, err := s.recorder.Record(c.Request.Context(), attendance.Request{
		Name:   req.Name,
		Kind:   attendance.KindAbsent,
		Reason: req.Reason,
		Now:    s.now().In(s.loc),
	})
	if err != nil {
		s.writeRecordError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "data": recordJSON(rec)})
}

// writeRecordError maps the recorder's error taxonomy onto status codes:
// rejections are the user's problem (422), store failures are ours (502).
func (s *Server) writeRecordError(c *gin.Context, err error) {
	if code := attendance.RejectCodeOf(err); code != "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"status": "rejected", "error": string(code), "detail": err.Error()})
		return
	}
	if attendance.IsStoreUnavailable(err) {
		s.logger.Error("store unavailable", "err", err)
		c.JSON(http.StatusBadGateway, gin.H{"status": "error", "error": "store_unavailable", "detail": err.Error()})
		return
	}
	s.logger.Error("record failed", "err", err)
	c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "error": "internal"})
}

func (s *Server) status(c *gin.Context) {
	name := attendance.NormalizeName(c.Query("name"))
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": "name required"})
		return
	}
	if c.Query("refresh") == "true" {
		s.cache.Invalidate()
	}

	rows, err := s.cache.Records(c.Request.Context())
	if err != nil {
		s.logger.Error("store unavailable", "err", err)
		c.JSON(http.StatusBadGateway, gin.H{"status": "error", "error": "store_unavailable", "detail": err.Error()})
		return
	}

	st := attendance.DeriveStatus(rows, name, s.now().In(s.loc), s.logger)
	c.JSON(http.StatusOK, gin.H{"status": "ok", "data": gin.H{
		"name":        name,
		"clocked_in":  st.ClockedIn,
		"clocked_out": st.ClockedOut,
		"absent":      st.Absent,
	}})
}

// records returns the raw log, newest first, the order the records view
// shows it in.
func (s *Server) records(c *gin.Context) {
	if c.Query("refresh") == "true" {
		s.cache.Invalidate()
	}
	rows, err := s.cache.Records(c.Request.Context())
	if err != nil {
		s.logger.Error("store unavailable", "err", err)
		c.JSON(http.StatusBadGateway, gin.H{"status": "error", "error": "store_unavailable", "detail": err.Error()})
		return
	}

	sorted := make([][]string, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return firstCell(sorted[i]) > firstCell(sorted[j])
	})
	c.JSON(http.StatusOK, gin.H{"status": "ok", "data": sorted})
}

func firstCell(row []string) string {
	if len(row) > 0 {
		return row[0]
	}
	return ""
}

func (s *Server) monthly(c *gin.Context) {
	year, month, ok := s.yearMonth(c)
	if !ok {
		return
	}
	rows, err := s.cache.Records(c.Request.Context())
	if err != nil {
		s.logger.Error("store unavailable", "err", err)
		c.JSON(http.StatusBadGateway, gin.H{"status": "error", "error": "store_unavailable", "detail": err.Error()})
		return
	}
	summaries := report.AggregateMonth(rows, year, month, s.loc, s.logger)
	c.JSON(http.StatusOK, gin.H{"status": "ok", "year": year, "month": int(month), "data": summaries})
}

func (s *Server) monthlyCSV(c *gin.Context) {
	year, month, ok := s.yearMonth(c)
	if !ok {
		return
	}
	rows, err := s.cache.Records(c.Request.Context())
	if err != nil {
		s.logger.Error("store unavailable", "err", err)
		c.JSON(http.StatusBadGateway, gin.H{"status": "error", "error": "store_unavailable", "detail": err.Error()})
		return
	}
	summaries := report.AggregateMonth(rows, year, month, s.loc, s.logger)

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition",
		`attachment; filename="attendance-`+strconv.Itoa(year)+`-`+twoDigits(int(month))+`.csv"`)
	c.Status(http.StatusOK)
	if err := report.WriteMonthCSV(c.Writer, summaries, year, month); err != nil {
		s.logger.Error("csv export failed", "err", err)
	}
}

// yearMonth parses the year/month query pair, defaulting to the current
// site-local month.
func (s *Server) yearMonth(c *gin.Context) (int, time.Month, bool) {
	now := s.now().In(s.loc)
	year, month := now.Year(), now.Month()

	if v := c.Query("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": "invalid year"})
			return 0, 0, false
		}
		year = y
	}
	if v := c.Query("month"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil || m < 1 || m > 12 {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": "invalid month"})
			return 0, 0, false
		}
		month = time.Month(m)
	}
	return year, month, true
}

func twoDigits(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

func recordJSON(rec attendance.Record) gin.H {
	return gin.H{
		"id":        rec.ID,
		"timestamp": rec.Timestamp.Format(attendance.TimestampLayout),
		"name":      rec.Name,
		"event":     string(rec.Event),
		"location":  rec.Location,
		"distance":  rec.Distance,
		"reason":    rec.Reason,
	}
}
