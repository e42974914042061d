package config

import (
	"testing"
	"time"

	"github.com/newnonsick/Football-APP-Backend/internal/platform/logging"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("FOOTBALL_DATA_TOKEN", "token-abc")
	t.Setenv("API_TOKEN", "")
	t.Setenv("UPTRACE_ENABLED", "false")
}

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HTTPAddr != ":2734" {
		t.Fatalf("unexpected HTTPAddr %q", cfg.HTTPAddr)
	}
	if cfg.StoreDriver != StoreDriverMemory {
		t.Fatalf("expected memory store in dev, got %q", cfg.StoreDriver)
	}
	if cfg.PollFixturesInterval != 10*time.Second || cfg.PollStandingsInterval != time.Minute ||
		cfg.PollScorersInterval != time.Minute || cfg.PollTeamsInterval != time.Minute {
		t.Fatalf("unexpected poll intervals: %+v", cfg)
	}
	if cfg.UpcomingWindowDays != 7 || cfg.UpcomingFallbackSize != 10 {
		t.Fatalf("unexpected upcoming window: %d/%d", cfg.UpcomingWindowDays, cfg.UpcomingFallbackSize)
	}
	if cfg.FootballDataCompetition != "PL" || cfg.FootballDataMaxRetries != 0 || cfg.FootballDataCircuitEnabled {
		t.Fatalf("unexpected football-data defaults: %+v", cfg)
	}
	if cfg.NotifyWorkers != 64 || cfg.WSSendBuffer != 256 || cfg.PulseliveConcurrency != 4 {
		t.Fatalf("unexpected worker defaults: %+v", cfg)
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("unexpected log level %v", cfg.LogLevel)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("unexpected CORS origins %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoad_StoreDriverDefaultsToPostgresOutsideDev(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_ENV", EnvProd)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.StoreDriver != StoreDriverPostgres {
		t.Fatalf("expected postgres store, got %q", cfg.StoreDriver)
	}
}

func TestLoad_TokenFallsBackToAPIToken(t *testing.T) {
	setRequired(t)
	t.Setenv("FOOTBALL_DATA_TOKEN", "")
	t.Setenv("API_TOKEN", "legacy-token")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.FootballDataToken != "legacy-token" {
		t.Fatalf("unexpected token %q", cfg.FootballDataToken)
	}
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing token while polling", env: map[string]string{"FOOTBALL_DATA_TOKEN": ""}},
		{name: "bad store driver", env: map[string]string{"STORE_DRIVER": "mongo"}},
		{name: "bad interval", env: map[string]string{"POLL_FIXTURES_INTERVAL": "soon"}},
		{name: "zero interval", env: map[string]string{"POLL_TEAMS_INTERVAL": "0s"}},
		{name: "negative retries", env: map[string]string{"FOOTBALL_DATA_MAX_RETRIES": "-1"}},
		{name: "bad bool", env: map[string]string{"AMQP_ENABLED": "maybe"}},
		{name: "mqtt qos", env: map[string]string{"MQTT_QOS": "3"}},
		{name: "fcm without credentials", env: map[string]string{"FCM_ENABLED": "true"}},
		{name: "uptrace without dsn", env: map[string]string{"UPTRACE_ENABLED": "true", "UPTRACE_DSN": ""}},
		{name: "pyroscope without address", env: map[string]string{"PYROSCOPE_ENABLED": "true"}},
		{name: "zero workers", env: map[string]string{"NOTIFY_WORKERS": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestLoad_PollingDisabledDoesNotNeedToken(t *testing.T) {
	setRequired(t)
	t.Setenv("FOOTBALL_DATA_TOKEN", "")
	t.Setenv("POLL_ENABLED", "false")

	if _, err := Load(); err != nil {
		t.Fatalf("load config: %v", err)
	}
}

func TestLoad_BrokerAndFirebaseSettings(t *testing.T) {
	setRequired(t)
	t.Setenv("AMQP_ENABLED", "true")
	t.Setenv("AMQP_EXCHANGE", "football.events")
	t.Setenv("MQTT_ENABLED", "true")
	t.Setenv("MQTT_TOPIC_PREFIX", "/epl/")
	t.Setenv("MQTT_QOS", "1")
	t.Setenv("FCM_ENABLED", "true")
	t.Setenv("FIREBASE_CLIENT_EMAIL", "svc@project.iam.gserviceaccount.com")
	t.Setenv("FIREBASE_PROJECT_ID", "football-app")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.AMQPEnabled || cfg.AMQPExchange != "football.events" {
		t.Fatalf("unexpected amqp config: %+v", cfg)
	}
	if !cfg.MQTTEnabled || cfg.MQTTTopicPrefix != "epl" || cfg.MQTTQoS != 1 {
		t.Fatalf("unexpected mqtt config: %+v", cfg)
	}
	if cfg.FirebaseServiceAccount.ProjectID != "football-app" {
		t.Fatalf("unexpected firebase project %q", cfg.FirebaseServiceAccount.ProjectID)
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	setRequired(t)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "foo=bar, uptrace-dsn='https://token@api.uptrace.dev?grpc=4317'")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]logging.Level{
		"debug":   logging.LevelDebug,
		"WARNING": logging.LevelWarn,
		"error":   logging.LevelError,
		"":        logging.LevelInfo,
		"verbose": logging.LevelInfo,
	}
	for in, want := range tests {
		if got := parseLogLevel(in); got != want {
			t.Fatalf("parseLogLevel(%q)=%v want=%v", in, got, want)
		}
	}
}
