package internal

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/controlkit/pidloop/internal/api"
	"github.com/controlkit/pidloop/internal/configuration"
	"github.com/controlkit/pidloop/internal/loops"
	"github.com/controlkit/pidloop/internal/simulation"
	"github.com/controlkit/pidloop/internal/statistics"
	"github.com/controlkit/pidloop/internal/ui"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RunDaemon() {
	loopList := InitializeLoops()

	ctx, cancel := context.WithCancel(context.Background())

	var g run.Group
	{
		if configuration.CurrentConfig.Statistics.Enabled {
			statistics.Register(statistics.NewLoopCollector(loopList))

			// === Prometheus Exporter
			g.Add(func() error {
				port := servicePort(configuration.CurrentConfig.Statistics.Port, 9000)
				addr := fmt.Sprintf(":%d", port)
				server := &http.Server{Addr: addr, Handler: promhttp.Handler()}
				if err := server.ListenAndServe(); err != nil {
					ui.Error("Cannot start prometheus metrics endpoint (%s)", err.Error())
				}

				<-ctx.Done()
				ui.Info("Stopping statistics server...")
				timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer timeoutCancel()
				return server.Shutdown(timeoutCtx)
			}, func(err error) {
				if err != nil {
					ui.Warning("Error stopping statistics server: " + err.Error())
				} else {
					ui.Info("Statistics server stopped.")
				}
			})
		}
	}
	{
		if configuration.CurrentConfig.Api.Enabled {
			// === REST API
			g.Add(func() error {
				port := servicePort(configuration.CurrentConfig.Api.Port, 9001)
				restService := api.CreateRestService()
				if err := restService.Start(fmt.Sprintf(":%d", port)); err != nil {
					ui.Error("Cannot start REST api endpoint (%s)", err.Error())
				}

				<-ctx.Done()
				ui.Info("Stopping REST api...")
				timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer timeoutCancel()
				return restService.Shutdown(timeoutCtx)
			}, func(err error) {
				if err != nil {
					ui.Warning("Error stopping REST api: " + err.Error())
				} else {
					ui.Info("REST api stopped.")
				}
			})
		}
	}
	{
		// === loop tickers, one goroutine per loop
		for _, loop := range loopList {
			l := loop
			plant := simulation.NewFirstOrderPlant(configuration.CurrentConfig.Simulation.Plant)

			g.Add(func() error {
				err := runLoop(ctx, l, plant)
				ui.Info("Loop %s stopped.", l.GetId())
				return err
			}, func(err error) {
				if err != nil {
					ui.Warning("Error running loop: %v", err)
				}
			})
		}

		if len(loopList) == 0 {
			ui.Fatal("No valid loop configurations, exiting.")
		}
	}
	{
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

		g.Add(func() error {
			<-sig
			ui.Info("Received SIGTERM signal, exiting...")
			return nil
		}, func(err error) {
			defer close(sig)
			cancel()
		})
	}

	if err := g.Run(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	} else {
		ui.Info("Done.")
		os.Exit(0)
	}
}

// servicePort falls back to the given default when the configured
// port is outside the valid range.
func servicePort(configured int, fallback int) int {
	if configured <= 0 || configured > 65535 {
		return fallback
	}
	return configured
}

// InitializeLoops assembles all configured loops and registers them
// in the loop map.
func InitializeLoops() []*loops.Loop {
	config := configuration.CurrentConfig

	var loopList []*loops.Loop
	for _, loopConfig := range config.Loops {
		loop, err := loops.NewLoop(loopConfig, config.Filters, config.Simulation.HistoryWindowSize)
		if err != nil {
			ui.Fatal("Unable to process loop configuration: %s: %v", loopConfig.ID, err)
		}
		loops.LoopMap.Set(loop.GetId(), loop)
		loopList = append(loopList, loop)
	}

	return loopList
}

// runLoop ticks a single loop against its plant until the context is
// cancelled. Each loop is confined to exactly one goroutine.
func runLoop(ctx context.Context, l *loops.Loop, plant simulation.Plant) error {
	tickDuration := time.Duration(l.Controller().TickDuration() * float64(time.Second))
	if tickDuration <= 0 {
		tickDuration = time.Millisecond
	}

	ticker := time.NewTicker(tickDuration)
	defer ticker.Stop()

	output := 0.0
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			measure := plant(output)
			output = l.Tick(measure)
			ui.Debug("Loop %s: measure %f -> output %f", l.GetId(), measure, output)
		}
	}
}
