package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/newnonsick/Football-APP-Backend/external/broker"
	"github.com/newnonsick/Football-APP-Backend/external/fcm"
	"github.com/newnonsick/Football-APP-Backend/external/footballdata"
	"github.com/newnonsick/Football-APP-Backend/external/pulselive"
	"github.com/newnonsick/Football-APP-Backend/internal/config"
	"github.com/newnonsick/Football-APP-Backend/internal/domain/feed"
	"github.com/newnonsick/Football-APP-Backend/internal/interfaces/httpapi"
	"github.com/newnonsick/Football-APP-Backend/internal/interfaces/realtime"
	"github.com/newnonsick/Football-APP-Backend/internal/platform/id"
	"github.com/newnonsick/Football-APP-Backend/internal/platform/logging"
	"github.com/newnonsick/Football-APP-Backend/internal/platform/poller"
	"github.com/newnonsick/Football-APP-Backend/internal/platform/resilience"
	"github.com/newnonsick/Football-APP-Backend/internal/usecase"
	"github.com/sourcegraph/conc"
)

const shutdownTimeout = 10 * time.Second

// App owns the poll tasks, the Read API server and the collaborators that
// need an orderly shutdown.
type App struct {
	cfg      config.Config
	logger   *logging.Logger
	server   *http.Server
	pollers  []*poller.Poller
	hub      *realtime.Hub
	notifier *usecase.Notifier
	closers  []namedCloser
}

type namedCloser struct {
	name  string
	close func() error
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (_ *App, err error) {
	if logger == nil {
		logger = logging.Default()
	}
	a := &App{cfg: cfg, logger: logger}
	defer func() {
		if err != nil {
			a.runClosers()
		}
	}()

	repos, err := a.openRepositories(ctx)
	if err != nil {
		return nil, err
	}

	a.hub = realtime.NewHub(cfg.WSSendBuffer, logger)
	sinks, err := a.brokerSinks()
	if err != nil {
		return nil, err
	}
	publisher := realtime.NewPublisher(logger, append([]realtime.Sink{a.hub}, sinks...)...)

	sender, err := newPushSender(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	a.notifier, err = usecase.NewNotifier(repos.followed, repos.users, sender, cfg.NotifyWorkers, logger)
	if err != nil {
		return nil, err
	}

	settlement := usecase.NewSettlementService(repos.wagers, publisher, logger)
	dispatcher := usecase.NewEventDispatcher(publisher, a.notifier, settlement, logger)
	tracker := usecase.NewMatchTracker(repos.matches, repos.followed, repos.favorites, id.NewUUIDGenerator(), dispatcher, logger)

	state := usecase.NewState()
	provider := footballdata.NewClient(footballdata.ClientConfig{
		BaseURL:     cfg.FootballDataBaseURL,
		Token:       cfg.FootballDataToken,
		Competition: cfg.FootballDataCompetition,
		Timeout:     cfg.FootballDataTimeout,
		MaxRetries:  cfg.FootballDataMaxRetries,
		Logger:      logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.FootballDataCircuitEnabled,
			FailureThreshold: cfg.FootballDataCircuitFailureCount,
			OpenTimeout:      cfg.FootballDataCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.FootballDataCircuitHalfOpenMaxReq,
		},
	})

	var players usecase.PlayerSearcher
	if cfg.PulseliveEnabled {
		players = pulselive.NewClient(pulselive.ClientConfig{
			BaseURL: cfg.PulseliveBaseURL,
			Timeout: cfg.PulseliveTimeout,
			Logger:  logger,
		})
	}

	fixtures := usecase.NewFixtureSync(provider, state, tracker, publisher, usecase.FixtureSyncConfig{
		WindowDays:   cfg.UpcomingWindowDays,
		FallbackSize: cfg.UpcomingFallbackSize,
	}, logger)
	standings := usecase.NewStandingsSync(provider, state, publisher, logger)
	scorers := usecase.NewScorerSync(provider, players, state, publisher, cfg.PulseliveConcurrency, logger)
	teams := usecase.NewTeamsSync(provider, state, publisher, logger)

	var resources []httpapi.ResourceStatus
	if cfg.PollEnabled {
		a.pollers = []*poller.Poller{
			poller.New(string(feed.ResourceFixtures), fixtures.Cycle, cfg.PollFixturesInterval, logger),
			poller.New(string(feed.ResourceStandings), standings.Cycle, cfg.PollStandingsInterval, logger),
			poller.New(string(feed.ResourceScorers), scorers.Cycle, cfg.PollScorersInterval, logger),
			poller.New(string(feed.ResourceTeams), teams.Cycle, cfg.PollTeamsInterval, logger),
		}
		for _, p := range a.pollers {
			resources = append(resources, p)
		}
	}

	handler := httpapi.NewHandler(usecase.NewQueryService(state), resources, logger)
	router := httpapi.NewRouter(handler, a.hub, logger, cfg.CORSAllowedOrigins)

	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}
	a.server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return a, nil
}

// Handler exposes the Read API router.
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Run starts the poll tasks and the HTTP server, blocks until ctx is done or
// the server fails, then shuts everything down.
func (a *App) Run(ctx context.Context) error {
	pollCtx, stopPolling := context.WithCancel(ctx)
	defer stopPolling()

	var tasks conc.WaitGroup
	for _, p := range a.pollers {
		tasks.Go(func() { p.Run(pollCtx) })
	}

	serveErr := make(chan error, 1)
	go func() {
		a.logger.Info("http server starting", "addr", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("shutdown requested")
	case err, ok := <-serveErr:
		if ok {
			runErr = fmt.Errorf("http server: %w", err)
		}
	}

	stopPolling()
	for _, p := range a.pollers {
		p.Stop()
	}
	tasks.Wait()

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil && runErr == nil {
		runErr = fmt.Errorf("graceful shutdown: %w", err)
	}
	a.hub.Close()
	a.notifier.Close()
	a.runClosers()

	a.logger.Info("http server stopped")
	return runErr
}

func (a *App) runClosers() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		c := a.closers[i]
		if err := c.close(); err != nil {
			a.logger.Warn("close failed", "component", c.name, "error", err)
		}
	}
	a.closers = nil
}

func (a *App) addCloser(name string, fn func() error) {
	a.closers = append(a.closers, namedCloser{name: name, close: fn})
}

func (a *App) brokerSinks() ([]realtime.Sink, error) {
	var sinks []realtime.Sink

	if a.cfg.AMQPEnabled {
		amqpSink, err := broker.NewAMQPPublisher(broker.AMQPConfig{
			URL:      a.cfg.AMQPURL,
			Exchange: a.cfg.AMQPExchange,
			Logger:   a.logger,
		})
		if err != nil {
			return nil, fmt.Errorf("amqp bridge: %w", err)
		}
		a.addCloser("amqp", amqpSink.Close)
		sinks = append(sinks, amqpSink)
	}

	if a.cfg.MQTTEnabled {
		mqttSink, err := broker.NewMQTTPublisher(broker.MQTTConfig{
			Broker:      a.cfg.MQTTBroker,
			ClientID:    a.cfg.MQTTClientID,
			Username:    a.cfg.MQTTUsername,
			Password:    a.cfg.MQTTPassword,
			TopicPrefix: a.cfg.MQTTTopicPrefix,
			QoS:         byte(a.cfg.MQTTQoS),
			Logger:      a.logger,
		})
		if err != nil {
			return nil, fmt.Errorf("mqtt bridge: %w", err)
		}
		a.addCloser("mqtt", mqttSink.Close)
		sinks = append(sinks, mqttSink)
	}

	return sinks, nil
}

func newPushSender(ctx context.Context, cfg config.Config, logger *logging.Logger) (usecase.PushSender, error) {
	if !cfg.FCMEnabled {
		logger.Info("fcm disabled", "reason", "FCM_ENABLED=false")
		return fcm.NewLogSender(logger), nil
	}

	account := cfg.FirebaseServiceAccount
	sender, err := fcm.NewSender(ctx, fcm.Credentials{
		File: cfg.FirebaseCredentialsFile,
		JSON: cfg.FirebaseCredentialsJSON,
		ServiceAccount: fcm.ServiceAccount{
			ProjectID:               account.ProjectID,
			PrivateKeyID:            account.PrivateKeyID,
			PrivateKey:              account.PrivateKey,
			ClientEmail:             account.ClientEmail,
			ClientID:                account.ClientID,
			AuthURI:                 account.AuthURI,
			TokenURI:                account.TokenURI,
			AuthProviderX509CertURL: account.AuthProviderX509CertURL,
			ClientX509CertURL:       account.ClientX509CertURL,
			UniverseDomain:          account.UniverseDomain,
		},
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("fcm sender: %w", err)
	}
	return sender, nil
}
