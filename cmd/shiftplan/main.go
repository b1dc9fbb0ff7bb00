// Command shiftplan runs one planning invocation from a YAML config
// file, optionally re-triggering itself on a cron schedule. It is an
// external collaborator around the core (spec.md §1 "Out of scope"):
// all the interesting logic lives in internal/planner and below.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"

	"github.com/kestrel-ops/shiftplan-go/internal/config"
	"github.com/kestrel-ops/shiftplan-go/internal/configio"
	"github.com/kestrel-ops/shiftplan-go/internal/planner"
)

func main() {
	cfgPath := flag.String("config", "", "path to the YAML run configuration (default: $SHIFTPLAN_CONFIG or ./shiftplan.yaml)")
	cronSpec := flag.String("cron", "", "if set, re-run the plan on this cron schedule instead of running once")
	sundayPolicy := flag.String("sunday-policy", "", "Sunday-distribution policy: smart, balanced, cost_focused, load_balancing, surcharge_equity (default: the config file's global.sunday_policy, or \"smart\")")
	flag.Parse()

	procCfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if *cfgPath != "" {
		procCfg.ConfigPath = *cfgPath
	}

	runOnce := func() {
		cfg, err := configio.LoadYAML(procCfg.ConfigPath)
		if err != nil {
			log.Printf("load error: %v", err)
			return
		}

		sol, err := planner.Plan(context.Background(), cfg, planner.Options{
			Workers:      procCfg.SolverWorkers,
			Verbose:      procCfg.LogVerbose,
			SundayPolicy: *sundayPolicy,
		})
		if err != nil {
			log.Printf("plan error: %v", err)
			return
		}

		report := planner.Verify(cfg, sol)
		log.Printf("run %s: %d shifts assigned, %d active employees, total cost %.2f, verification valid=%v",
			sol.RunID, len(sol.Assignments), sol.TotalMetrics.ActiveEmployees, sol.TotalMetrics.TotalCost, report.Valid)
		for _, w := range report.Warnings() {
			log.Printf("verify warning: %s", w)
		}
		for _, e := range report.Errors() {
			log.Printf("verify error: %s", e)
		}
	}

	if *cronSpec == "" {
		runOnce()
		return
	}

	c := cron.New()
	if _, err := c.AddFunc(*cronSpec, runOnce); err != nil {
		log.Fatalf("invalid cron spec %q: %v", *cronSpec, err)
	}
	c.Start()
	log.Printf("shiftplan scheduled on %q, waiting", *cronSpec)

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, os.Interrupt, syscall.SIGTERM)
	<-shutdownCh
	<-c.Stop().Done()
}
