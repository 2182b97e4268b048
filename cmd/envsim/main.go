package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/signalsfoundry/astro-environment/core"
	"github.com/signalsfoundry/astro-environment/internal/logging"
	"github.com/signalsfoundry/astro-environment/internal/observability"
	"github.com/signalsfoundry/astro-environment/models"
	"github.com/signalsfoundry/astro-environment/timectrl"
)

func main() {
	scenarioPath := flag.String("scenario", "configs/environment.json", "path to the environment scenario JSON")
	duration := flag.Duration("duration", 60*time.Second, "total simulation duration")
	tick := flag.Duration("tick", 10*time.Second, "tick interval (simulation time)")
	accelerated := flag.Bool("accelerated", true, "run in accelerated mode (vs real-time)")
	metricsAddr := flag.String("metrics-addr", "", "address for the /metrics listener (empty disables)")
	flag.Parse()

	log := logging.NewFromEnv()
	ctx, log := logging.WithRunLogger(context.Background(), log)

	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv(), log)
	if err != nil {
		log.Error(ctx, "tracing init failed", logging.String("error", err.Error()))
		os.Exit(1)
	}
	defer observability.ShutdownWithTimeout(context.Background(), shutdownTracing, log)

	collector, err := observability.NewSetupCollector(nil)
	if err != nil {
		log.Error(ctx, "metrics init failed", logging.String("error", err.Error()))
		os.Exit(1)
	}
	if *metricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", collector.Handler())
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
				log.Error(ctx, "metrics listener failed", logging.String("error", err.Error()))
			}
		}()
	}

	f, err := os.Open(*scenarioPath)
	if err != nil {
		log.Error(ctx, "open scenario failed", logging.String("path", *scenarioPath), logging.String("error", err.Error()))
		os.Exit(1)
	}
	scenario, err := models.LoadEnvironmentScenario(f)
	f.Close()
	if err != nil {
		log.Error(ctx, "load scenario failed", logging.String("error", err.Error()))
		os.Exit(1)
	}
	log.Info(ctx, "scenario loaded",
		logging.String("path", *scenarioPath),
		logging.Int("bodies", scenario.Store.Len()),
		logging.String("global_origin", scenario.GlobalFrameOrigin),
		logging.String("global_orientation", scenario.GlobalFrameOrientation),
	)

	tracer := otel.Tracer("envsim")
	assembler := core.NewAssembler(models.DefaultFactorySet())
	assembler.Log = log
	assembler.Metrics = collector

	spanCtx, span := tracer.Start(ctx, "resolve_creation_order")
	ordered, err := core.DetermineBodyCreationOrder(scenario.Store)
	span.End()
	if err != nil {
		log.Error(spanCtx, "dependency resolution failed", logging.String("error", err.Error()))
		os.Exit(1)
	}

	spanCtx, span = tracer.Start(ctx, "assemble_bodies")
	bodies, err := assembler.AssembleBodies(spanCtx, ordered)
	span.End()
	if err != nil {
		log.Error(spanCtx, "assembly failed", logging.String("error", err.Error()))
		os.Exit(1)
	}

	spanCtx, span = tracer.Start(ctx, "reconcile_global_frame")
	err = assembler.ReconcileGlobalFrame(spanCtx, bodies, scenario.GlobalFrameOrigin, scenario.GlobalFrameOrientation)
	span.End()
	if err != nil {
		log.Error(spanCtx, "frame reconciliation failed", logging.String("error", err.Error()))
		os.Exit(1)
	}

	mode := timectrl.RealTime
	if *accelerated {
		mode = timectrl.Accelerated
	}
	start := time.Now().UTC()
	tc := timectrl.NewTimeController(start, *tick, mode)

	names := bodies.Names()
	tc.AddListener(func(simTime time.Time) {
		fmt.Printf("[%s]\n", simTime.Format(time.RFC3339))
		for _, name := range names {
			body := bodies.Body(name)
			if body.Ephemeris() == nil {
				continue
			}
			state, err := body.StateInGlobalFrame(simTime)
			if err != nil {
				fmt.Printf("↳ %-12s state error: %v\n", name, err)
				continue
			}
			fmt.Printf("↳ %-12s pos=(%.3e, %.3e, %.3e) m vel=(%.3e, %.3e, %.3e) m/s\n",
				name,
				state.Position.X, state.Position.Y, state.Position.Z,
				state.Velocity.X, state.Velocity.Y, state.Velocity.Z,
			)
		}
	})

	log.Info(ctx, "starting simulation",
		logging.String("duration", duration.String()),
		logging.String("tick", tick.String()),
	)
	<-tc.Start(*duration)
	log.Info(ctx, "simulation complete")
}
