package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/newnonsick/Football-APP-Backend/internal/config"
	"github.com/newnonsick/Football-APP-Backend/internal/platform/logging"
)

func TestInitUptrace_Disabled(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
	}{
		{name: "flag off", cfg: config.Config{UptraceEnabled: false}},
		{name: "empty dsn", cfg: config.Config{UptraceEnabled: true, UptraceDSN: "  "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.cfg.ServiceName = "football-live-api"
			tt.cfg.ServiceVersion = "dev"
			tt.cfg.AppEnv = config.EnvDev

			shutdown, err := InitUptrace(tt.cfg, logging.NewNop())
			if err != nil {
				t.Fatalf("init uptrace: %v", err)
			}
			if err := shutdown(t.Context()); err != nil {
				t.Fatalf("shutdown uptrace: %v", err)
			}
		})
	}
}

func TestInitPyroscope_Disabled(t *testing.T) {
	stop, err := InitPyroscope(config.Config{}, logging.NewNop())
	if err != nil {
		t.Fatalf("init pyroscope: %v", err)
	}
	if err := stop(); err != nil {
		t.Fatalf("stop pyroscope: %v", err)
	}
}

func TestStartPprof(t *testing.T) {
	stop, err := StartPprof(config.Config{}, logging.NewNop())
	if err != nil {
		t.Fatalf("start pprof disabled: %v", err)
	}
	if err := stop(t.Context()); err != nil {
		t.Fatalf("stop pprof disabled: %v", err)
	}

	if _, err := StartPprof(config.Config{PprofEnabled: true}, logging.NewNop()); err == nil {
		t.Fatalf("expected error for empty pprof addr")
	}
}

func TestPprofMux(t *testing.T) {
	rec := httptest.NewRecorder()
	pprofMux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/pprof/cmdline", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("cmdline status=%d want=200", rec.Code)
	}
}
