package httpserver

import (
	"context"
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"gradewise/internal/handle"
)

var requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "gradewise_http_request_duration_seconds",
	Help:    "HTTP request durations by path and status.",
	Buckets: prometheus.DefBuckets,
}, []string{"path", "status"})

// Options configures the assembled server.
type Options struct {
	Handle *handle.Handle
	// PDFDir, when non-empty, is served at /pdfs/ (dir storage
	// backend). S3 deployments return absolute URLs instead and leave
	// this empty.
	PDFDir string
	// DB, when non-nil, is pinged by /healthz.
	DB  *sql.DB
	Log *zap.Logger
}

// New assembles the service mux: API routes, static artifact serving,
// health and metrics.
func New(o Options) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/v1/grade", o.Handle.Grade)
	mux.HandleFunc("/v1/grade/file", o.Handle.GradeFile)
	mux.HandleFunc("/v1/lessonplan", o.Handle.LessonPlan)
	mux.HandleFunc("/v1/assignment", o.Handle.Assignment)
	mux.HandleFunc("/v1/history", o.Handle.History)

	if o.PDFDir != "" {
		mux.Handle("/pdfs/", http.StripPrefix("/pdfs/", http.FileServer(http.Dir(o.PDFDir))))
	}

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if o.DB != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := o.DB.PingContext(ctx); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("db: not ok\n" + err.Error()))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", promhttp.Handler())

	return logMiddleware(mux, o.Log)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func logMiddleware(next http.Handler, log *zap.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		took := time.Since(start)
		requestDuration.WithLabelValues(r.URL.Path, strconv.Itoa(rec.status)).Observe(took.Seconds())
		log.Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("took", took))
	})
}

// Start runs the server with sane header timeouts until it fails.
func Start(addr string, h http.Handler, log *zap.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Info("listening", zap.String("addr", addr))
	return srv.ListenAndServe()
}
