package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater"
	"github.com/go-pkgz/repeater/strategy"
	"github.com/robfig/cron/v3"
	"github.com/umputun/go-flags"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/billnote/notewatch/app/backend"
	"github.com/billnote/notewatch/app/manager"
	"github.com/billnote/notewatch/app/notify"
	"github.com/billnote/notewatch/app/poller"
	"github.com/billnote/notewatch/app/store"
	"github.com/billnote/notewatch/app/store/persistence"
	"github.com/billnote/notewatch/app/web"
)

var opts struct {
	Listen string `short:"l" long:"listen" env:"NOTEWATCH_LISTEN" default:"localhost:8080" description:"listen address for the api server"`
	DBPath string `long:"db" env:"NOTEWATCH_DB" default:"notewatch.db" description:"sqlite database path"`

	Backend struct {
		URL     string        `long:"url" env:"URL" default:"http://localhost:8000" description:"note-generation backend base url"`
		Timeout time.Duration `long:"timeout" env:"TIMEOUT" default:"30s" description:"backend request timeout"`
	} `group:"backend" namespace:"backend" env-namespace:"NOTEWATCH_BACKEND"`

	Poll struct {
		Interval    time.Duration `long:"interval" env:"INTERVAL" default:"3s" description:"status poll interval"`
		Concurrency int           `long:"concurrency" env:"CONCURRENCY" default:"8" description:"max concurrent status fetches"`
	} `group:"poll" namespace:"poll" env-namespace:"NOTEWATCH_POLL"`

	Repeater struct {
		Attempts int           `long:"attempts" env:"ATTEMPTS" default:"1" description:"how many times to repeat failed delete or notification"`
		Duration time.Duration `long:"duration" env:"DURATION" default:"1s" description:"initial repeater duration"`
		Factor   float64       `long:"factor" env:"FACTOR" default:"3" description:"backoff factor"`
		Jitter   bool          `long:"jitter" env:"JITTER" description:"jitter"`
	} `group:"repeater" namespace:"repeater" env-namespace:"NOTEWATCH_REPEATER"`

	Notify struct {
		OnCompletion []string      `long:"on-completion" env:"ON_COMPLETION" description:"destination url(s) notified on completed tasks" env-delim:","`
		OnFailure    []string      `long:"on-failure" env:"ON_FAILURE" description:"destination url(s) notified on failed tasks" env-delim:","`
		Config       string        `long:"config" env:"CONFIG" description:"yaml file with notification destinations"`
		Timeout      time.Duration `long:"timeout" env:"TIMEOUT" default:"10s" description:"notification delivery timeout"`
		HostName     string        `long:"host" env:"HOSTNAME" description:"host name reported in notifications"`
	} `group:"notify" namespace:"notify" env-namespace:"NOTEWATCH_NOTIFY"`

	Web struct {
		AuthHash  string  `long:"auth-hash" env:"AUTH_HASH" description:"bcrypt hash of the api password, empty disables auth"`
		SubmitRPS float64 `long:"submit-rps" env:"SUBMIT_RPS" default:"1" description:"max submissions per second per client"`
	} `group:"web" namespace:"web" env-namespace:"NOTEWATCH_WEB"`

	Cleanup struct {
		Schedule   string `long:"schedule" env:"SCHEDULE" default:"0 3 * * *" description:"cron spec for attempt history cleanup"`
		MaxHistory int    `long:"max-history" env:"MAX_HISTORY" default:"100" description:"max attempt history entries to keep per task"`
	} `group:"cleanup" namespace:"cleanup" env-namespace:"NOTEWATCH_CLEANUP"`

	Log struct {
		Enabled         bool   `long:"enabled" env:"ENABLED" description:"enable logging to file"`
		Filename        string `long:"file" env:"FILE" default:"notewatch.log" description:"log file name"`
		MaxSize         int    `long:"max-size" env:"MAX_SIZE" default:"100" description:"max log file size in megabytes"`
		MaxBackups      int    `long:"max-backups" env:"MAX_BACKUPS" default:"7" description:"max number of rotated log files"`
		MaxAge          int    `long:"max-age" env:"MAX_AGE" default:"0" description:"max age of rotated log files in days"`
		EnabledCompress bool   `long:"enabled-compress" env:"ENABLED_COMPRESS" description:"enable compression of rotated log files"`
	} `group:"log" namespace:"log" env-namespace:"NOTEWATCH_LOG"`

	Dbg bool `long:"dbg" env:"NOTEWATCH_DEBUG" description:"debug mode"`
}

var revision = "unknown"

func main() {
	fmt.Printf("notewatch %s\n", revision)

	if _, err := flags.Parse(&opts); err != nil {
		os.Exit(2)
	}
	setupLogs()

	defer func() {
		if x := recover(); x != nil {
			log.Printf("[WARN] run time panic:\n%v", x)
			panic(x)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	signals(cancel) // handle SIGQUIT and SIGTERM

	if err := run(ctx); err != nil {
		log.Printf("[ERROR] notewatch failed, %v", err)
		os.Exit(1)
	}
}

// run wires all services and blocks until ctx canceled
func run(ctx context.Context) error {
	persister, err := persistence.NewSQLiteStore(opts.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open task database at %q: %w", opts.DBPath, err)
	}

	st := store.New(persister)
	if err = st.Load(); err != nil {
		return fmt.Errorf("failed to load tasks: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Printf("[WARN] failed to close store: %v", err)
		}
	}()

	client := backend.New(opts.Backend.URL, opts.Backend.Timeout)

	notifier, err := notify.NewService(notify.Params{
		OnCompletion: opts.Notify.OnCompletion,
		OnFailure:    opts.Notify.OnFailure,
		ConfigFile:   opts.Notify.Config,
		Timeout:      opts.Notify.Timeout,
	})
	if err != nil {
		return fmt.Errorf("failed to make notifier: %w", err)
	}

	rptr := repeater.New(&strategy.Backoff{Repeats: opts.Repeater.Attempts, Duration: opts.Repeater.Duration,
		Factor: opts.Repeater.Factor, Jitter: opts.Repeater.Jitter})

	mgr := &manager.Manager{
		Store:         st,
		Backend:       client,
		Notifier:      notifier,
		Repeater:      rptr,
		HostName:      makeHostName(),
		NotifyTimeout: opts.Notify.Timeout,
	}

	pollSvc := &poller.Poller{
		Store:        st,
		Fetcher:      client,
		EventHandler: mgr,
		Interval:     opts.Poll.Interval,
		Concurrency:  opts.Poll.Concurrency,
	}
	go func() {
		if err := pollSvc.Run(ctx); err != nil {
			log.Printf("[ERROR] poller terminated, %v", err)
		}
	}()

	janitor := cron.New()
	if _, err = janitor.AddFunc(opts.Cleanup.Schedule, func() { st.Cleanup(opts.Cleanup.MaxHistory) }); err != nil {
		return fmt.Errorf("invalid cleanup schedule %q: %w", opts.Cleanup.Schedule, err)
	}
	janitor.Start()
	defer janitor.Stop()

	srv, err := web.New(web.Config{
		Manager:      mgr,
		Reader:       st,
		Version:      revision,
		Hostname:     makeHostName(),
		PasswordHash: opts.Web.AuthHash,
		SubmitRPS:    opts.Web.SubmitRPS,
	})
	if err != nil {
		return fmt.Errorf("failed to make web server: %w", err)
	}
	return srv.Run(ctx, opts.Listen)
}

func makeHostName() string {
	if opts.Notify.HostName != "" {
		return opts.Notify.HostName
	}
	host, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return host
}

// setupLogs configures logging, returns the writer logs go to
func setupLogs() io.Writer {
	logOpts := []log.Option{log.Msec}
	if opts.Dbg {
		logOpts = []log.Option{log.Debug, log.Msec, log.CallerFunc, log.CallerPkg, log.CallerFile}
	}

	if !opts.Log.Enabled {
		log.Setup(append(logOpts, log.Out(os.Stdout), log.Err(os.Stderr))...)
		return os.Stdout
	}

	fileWriter := &lumberjack.Logger{
		Filename:   opts.Log.Filename,
		MaxSize:    opts.Log.MaxSize,
		MaxBackups: opts.Log.MaxBackups,
		MaxAge:     opts.Log.MaxAge,
		Compress:   opts.Log.EnabledCompress,
	}
	log.Setup(append(logOpts, log.Out(fileWriter), log.Err(fileWriter))...)
	return fileWriter
}

func signals(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	go func() {
		stacktrace := make([]byte, 8192)
		for sig := range sigChan {
			if sig == syscall.SIGQUIT { // catch SIGQUIT and print stack traces
				length := runtime.Stack(stacktrace, true)
				fmt.Println(string(stacktrace[:length]))
				continue
			}
			cancel() // terminate on SIGTERM
		}
	}()
	signal.Notify(sigChan, syscall.SIGQUIT, syscall.SIGTERM)
}
