package handlers

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/asume21/Codedswitchmonatize-sub012/internal/theory"
	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
)

type MetricsHandler struct {
	startTime time.Time
	version   string
	history   bool
}

func NewMetricsHandler(version string, historyEnabled bool) *MetricsHandler {
	return &MetricsHandler{
		startTime: time.Now(),
		version:   version,
		history:   historyEnabled,
	}
}

const (
	secondsPerMinute = 60
	secondsPerHour   = 3600
)

// formatUptime formats the uptime duration with seconds rounded to 2 decimal places
func formatUptime(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % secondsPerMinute
	seconds := d.Seconds() - float64(hours*secondsPerHour) - float64(minutes*secondsPerMinute)

	if hours > 0 {
		return fmt.Sprintf("%dh%dm%.2fs", hours, minutes, seconds)
	}
	if minutes > 0 {
		return fmt.Sprintf("%dm%.2fs", minutes, seconds)
	}
	return fmt.Sprintf("%.2fs", seconds)
}

type MetricsResponse struct {
	Status    string                 `json:"status"`
	Uptime    string                 `json:"uptime"`
	Timestamp string                 `json:"timestamp"`
	Version   string                 `json:"version"`
	StartTime string                 `json:"start_time"`
	Started   string                 `json:"started"` // e.g. "3 hours ago"
	System    SystemMetrics          `json:"system"`
	API       map[string]interface{} `json:"api"`
}

type SystemMetrics struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutine"`
	MemAlloc     string `json:"mem_alloc"`
	MemTotal     string `json:"mem_total"`
	MemSys       string `json:"mem_sys"`
	NumGC        uint32 `json:"num_gc"`
}

func (h *MetricsHandler) GetMetrics(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	now := time.Now()

	metrics := MetricsResponse{
		Status:    "healthy",
		Uptime:    formatUptime(now.Sub(h.startTime)),
		Timestamp: now.UTC().Format(time.RFC3339),
		Version:   h.version,
		StartTime: h.startTime.UTC().Format(time.RFC3339),
		Started:   humanize.RelTime(h.startTime, now, "ago", "from now"),
		System: SystemMetrics{
			GoVersion:    runtime.Version(),
			NumGoroutine: runtime.NumGoroutine(),
			MemAlloc:     humanize.IBytes(m.Alloc),
			MemTotal:     humanize.IBytes(m.TotalAlloc),
			MemSys:       humanize.IBytes(m.Sys),
			NumGC:        m.NumGC,
		},
		API: map[string]interface{}{
			"version":         "1.0.0",
			"genres":          len(theory.Genres()),
			"keys":            len(theory.SupportedKeys()),
			"history_enabled": h.history,
		},
	}

	c.JSON(http.StatusOK, metrics)
}
