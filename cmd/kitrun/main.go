package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	stdlog "log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/afex/hystrix-go/hystrix"
	"github.com/oklog/run"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/kitrun/kitrun/addsvc"
	"github.com/kitrun/kitrun/circuitbreaker"
	"github.com/kitrun/kitrun/config"
	"github.com/kitrun/kitrun/endpoint"
	"github.com/kitrun/kitrun/fetch"
	"github.com/kitrun/kitrun/log"
	"github.com/kitrun/kitrun/log/level"
	"github.com/kitrun/kitrun/metrics/prometheus"
	"github.com/kitrun/kitrun/modules"
	"github.com/kitrun/kitrun/ratelimit"
	"github.com/kitrun/kitrun/runtime"
	"github.com/kitrun/kitrun/script"
)

const (
	exitSuccess = 0
	exitFailure = 1
	exitConfig  = 2
)

const fetchCommand = "fetch"

func main() {
	os.Exit(realMain(os.Args[1:], os.Stdout, os.Stderr, os.LookupEnv))
}

func realMain(args []string, stdout, stderr io.Writer, lookupEnv func(string) (string, bool)) int {
	fs := flag.NewFlagSet("kitrun", flag.ContinueOnError)
	fs.SetOutput(stderr)
	flags := config.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return exitSuccess
		}
		return exitConfig
	}

	cfg, err := config.Load(flags.Path(), lookupEnv)
	if err == nil {
		err = flags.Apply(&cfg)
	}
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		fmt.Fprintf(stderr, "kitrun: %v\n", err)
		return exitConfig
	}

	// `package log` domain
	var logger log.Logger
	{
		logger, err = log.New(stderr, cfg.Log.Format)
		if err != nil {
			fmt.Fprintf(stderr, "kitrun: %v\n", err)
			return exitConfig
		}
		allow, err := level.Parse(cfg.Log.Level)
		if err != nil {
			fmt.Fprintf(stderr, "kitrun: %v\n", err)
			return exitConfig
		}
		logger = level.NewFilter(logger, allow)
		logger = log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)
		stdlog.SetOutput(log.NewStdlibAdapter(logger)) // hystrix logs through the stdlib
		stdlog.SetFlags(0)
	}

	// `package metrics` domain
	reg := stdprometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	var (
		fetchRequests = prometheus.NewCounterFrom(reg, stdprometheus.CounterOpts{
			Namespace: "kitrun",
			Subsystem: "fetch",
			Name:      "requests_total",
			Help:      "Fetches issued, by status code.",
		}, []string{"status"})
		fetchDuration = prometheus.NewHistogramFrom(reg, stdprometheus.HistogramOpts{
			Namespace: "kitrun",
			Subsystem: "fetch",
			Name:      "request_duration_seconds",
			Help:      "Fetch duration in seconds, by status code.",
			Buckets:   stdprometheus.DefBuckets,
		}, []string{"status"})
		sumCalls = prometheus.NewCounterFrom(reg, stdprometheus.CounterOpts{
			Namespace: "kitrun",
			Subsystem: "addsvc",
			Name:      "sum_calls_total",
			Help:      "Calls to the sum helper.",
		}, []string{})
		sumResults = prometheus.NewHistogramFrom(reg, stdprometheus.HistogramOpts{
			Namespace: "kitrun",
			Subsystem: "addsvc",
			Name:      "sum_result",
			Help:      "Results of the sum helper.",
			Buckets:   stdprometheus.LinearBuckets(0, 10, 10),
		}, []string{})
		loopInst = runtime.Instrumenting{
			TimersFired: prometheus.NewCounterFrom(reg, stdprometheus.CounterOpts{
				Namespace: "kitrun",
				Subsystem: "loop",
				Name:      "timers_fired_total",
				Help:      "Timer callbacks run, by kind.",
			}, []string{"kind"}),
			Unhandled: prometheus.NewCounterFrom(reg, stdprometheus.CounterOpts{
				Namespace: "kitrun",
				Subsystem: "loop",
				Name:      "unhandled_errors_total",
				Help:      "Unhandled errors, by source.",
			}, []string{"source"}),
			Pending: prometheus.NewGaugeFrom(reg, stdprometheus.GaugeOpts{
				Namespace: "kitrun",
				Subsystem: "loop",
				Name:      "pending",
				Help:      "Armed timers plus in-flight fetches.",
			}, []string{}),
		}
	)

	// Network domain. The first middleware is the outermost.
	var fetcher fetch.Fetcher
	{
		mws := []endpoint.Middleware[fetch.Request, *fetch.Response]{
			fetch.LoggingMiddleware(logger),
			fetch.InstrumentingMiddleware(fetchRequests, fetchDuration),
		}
		switch cfg.Fetch.Breaker {
		case config.BreakerGobreaker:
			mws = append(mws, circuitbreaker.Gobreaker[fetch.Request, *fetch.Response](
				gobreaker.NewCircuitBreaker(gobreaker.Settings{Name: fetchCommand}),
			))
		case config.BreakerHystrix:
			hystrix.ConfigureCommand(fetchCommand, hystrix.CommandConfig{
				Timeout: hystrixTimeout(cfg.Fetch.Timeout),
			})
			mws = append(mws, circuitbreaker.Hystrix[fetch.Request, *fetch.Response](fetchCommand))
		}
		if cfg.Fetch.Rate > 0 {
			mws = append(mws, ratelimit.NewDelayingLimiter[fetch.Request, *fetch.Response](
				rate.NewLimiter(rate.Limit(cfg.Fetch.Rate), 1),
			))
		}
		fetcher = fetch.NewHTTPFetcher(
			fetch.WithTimeout(cfg.Fetch.Timeout),
			fetch.WithUserAgent(cfg.Fetch.UserAgent),
			fetch.WithMiddleware(mws...),
		)
	}

	// Business domain
	imports := modules.NewRegistry()
	{
		var svc addsvc.Service
		svc = addsvc.NewBasicService()
		svc = addsvc.LoggingMiddleware(logger)(svc)
		svc = addsvc.InstrumentingMiddleware(sumCalls, sumResults)(svc)
		if err := addsvc.Register(imports, svc); err != nil {
			level.Error(logger).Log("during", "Register", "err", err)
			return exitFailure
		}
	}

	loop := runtime.New(
		runtime.WithFetcher(fetcher),
		runtime.WithConsole(stdout),
		runtime.WithLogger(logger),
		runtime.WithInstrumenting(loopInst),
	)

	var g run.Group
	{
		g.Add(func() error {
			return loop.Run(context.Background(), script.Main(imports, cfg.ScriptOptions()))
		}, func(error) {
			loop.Shutdown()
		})
	}
	if cfg.Debug.Addr != "" {
		ln, err := net.Listen("tcp", cfg.Debug.Addr)
		if err != nil {
			level.Error(logger).Log("transport", "debug/HTTP", "during", "Listen", "err", err)
			return exitFailure
		}
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		g.Add(func() error {
			level.Info(logger).Log("transport", "debug/HTTP", "addr", ln.Addr())
			return http.Serve(ln, mux)
		}, func(error) {
			ln.Close()
		})
	}
	{
		// This function just sits and waits for ctrl-C.
		cancelInterrupt := make(chan struct{})
		g.Add(func() error {
			c := make(chan os.Signal, 1)
			signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(c)
			select {
			case sig := <-c:
				return fmt.Errorf("received signal %s", sig)
			case <-cancelInterrupt:
				return nil
			}
		}, func(error) {
			close(cancelInterrupt)
		})
	}

	if err := g.Run(); err != nil {
		level.Error(logger).Log("exit", err)
		return exitFailure
	}
	return exitSuccess
}

// hystrixTimeout is the hystrix command timeout in milliseconds. Hystrix
// times out after one second by default, which a slow fetch can exceed.
func hystrixTimeout(fetchTimeout time.Duration) int {
	const floor = 10 * time.Second
	if fetchTimeout < floor {
		fetchTimeout = floor
	}
	return int((fetchTimeout + time.Second) / time.Millisecond)
}
