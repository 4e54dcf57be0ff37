package main

import (
	"context"
	"enrollment/internal/api"
	"enrollment/internal/config"
	"enrollment/internal/engine"
	"enrollment/internal/report"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := newLogger(cfg.Verbose)
	p := engine.NewPipeline(cfg, logger)

	if cfg.Addr != "" {
		err = serve(cfg.Addr, p, logger)
	} else {
		err = printReport(cfg, p)
	}
	if err != nil {
		logger.Fatal(err)
	}
}

// newLogger logs to stderr so stdout only ever carries the report.
func newLogger(verbose bool) *log.Logger {
	l := log.New("enrollment")
	l.SetOutput(colorable.NewColorableStderr())
	l.SetHeader("${time_rfc3339} ${level} ${prefix}")
	if !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		l.DisableColor()
	}
	l.SetLevel(log.WARN)
	if verbose {
		l.SetLevel(log.DEBUG)
	}
	return l
}

func printReport(cfg config.Config, p *engine.Pipeline) error {
	if cfg.Format == config.FormatJSON {
		r, err := p.Report()
		if err != nil {
			return err
		}
		return report.WriteJSON(os.Stdout, r)
	}
	return p.Run(os.Stdout)
}

// serve starts the API right away and fills it once the report is built.
// A failed load takes the server down with it.
func serve(addr string, p *engine.Pipeline, logger *log.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	h := api.NewHandler(nil)
	e := api.NewServer(h, logger)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting report load")
		t0 := time.Now()
		r, err := p.Report()
		if err != nil {
			return err
		}
		h.SetData(r)
		logger.Infof("report ready in %v: %d programs", time.Since(t0), r.Summary.Programs)
		return nil
	})

	g.Go(func() error {
		logger.Infof("listening on %s", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
