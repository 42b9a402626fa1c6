package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	// AI 网关调用指标：按流程名与结果统计
	GatewayCallCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ai_gateway_calls_total",
			Help: "Total number of AI gateway flow invocations",
		},
		[]string{"flow", "result"},
	)

	GatewayCallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ai_gateway_call_duration_seconds",
			Help:    "Duration of AI gateway flow invocations",
			Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"flow"},
	)
)

func Init() {
	prometheus.MustRegister(RequestCounter)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(GatewayCallCounter)
	prometheus.MustRegister(GatewayCallDuration)
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

// ObserveGatewayCall 记录一次AI流程调用
func ObserveGatewayCall(flow string, start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	GatewayCallCounter.WithLabelValues(flow, result).Inc()
	GatewayCallDuration.WithLabelValues(flow).Observe(time.Since(start).Seconds())
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
