package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"crimeflow/internal/config"
	"crimeflow/internal/metrics"
	"crimeflow/internal/metrics/prompush"
	"crimeflow/internal/pipeline"
	"crimeflow/internal/probe"

	// register all backends with the storage factory.
	// config specifies which to use but we need to build in support for all of them.
	_ "crimeflow/internal/storage/all"
)

// main is the entry point for the crimeflow binary. It loads the pipeline
// config, optionally initializes a metrics backend, and runs every dataset
// concurrently.
func main() {
	var (
		cfgPath           string
		probePath         string
		metricsBackendFlg string
		pushGatewayURLFlg string
		validate          bool
	)

	flag.StringVar(&cfgPath, "config", "configs/pipelines/incidents.json", "pipeline config JSON path")
	flag.StringVar(&probePath, "probe", "", "probe a CSV file (print inferred columns) and exit")
	flag.StringVar(&metricsBackendFlg, "metrics-backend", "none", "metrics backend to use (e.g. pushgateway, none)")
	flag.StringVar(&pushGatewayURLFlg, "pushgateway-url", "", "Pushgateway base URL (overrides env PUSHGATEWAY_URL)")
	flag.BoolVar(&validate, "validate", false, "validate the configuration and exit")
	verbose := flag.Bool("v", false, "enable verbose logs")

	flag.Parse()

	if probePath != "" {
		if err := probeFile(probePath); err != nil {
			fatalf("probe: %v", err)
		}
		return
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fatalf("load config: %v", err)
	}

	issues := config.Validate(cfg)
	hasError := false
	for _, iss := range issues {
		fmt.Fprintf(os.Stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
		if iss.Severity == config.SeverityError {
			hasError = true
		}
	}
	if hasError {
		log.Printf("Configuration is invalid: %v", cfgPath)
		os.Exit(1)
	}

	// If validate flag is set, only validate the configuration and exit
	if validate {
		log.Printf("Configuration is valid: %v", cfgPath)
		os.Exit(0)
	}

	// Decide metrics backend: flag → env → default.
	backendName := metricsBackendFlg
	if backendName == "" {
		backendName = os.Getenv("METRICS_BACKEND")
	}
	switch backendName {
	case "pushgateway":
		// Decide Pushgateway URL: flag → env → default.
		gwURL := pushGatewayURLFlg
		if gwURL == "" {
			gwURL = os.Getenv("PUSHGATEWAY_URL")
		}
		if gwURL == "" {
			gwURL = "http://localhost:9091"
		}

		jobName := cfg.Job
		if jobName == "" {
			jobName = "crimeflow"
		}

		b, err := prompush.NewBackend(jobName, gwURL)
		if err != nil {
			log.Printf("metrics: failed to init prom push backend: %v; using nop", err)
		} else {
			log.Printf("metrics: url=%v, backend=%v, job_name=%v", gwURL, backendName, jobName)
			metrics.SetBackend(b)
			defer func() {
				if err := metrics.Flush(); err != nil {
					log.Printf("metrics: flush error: %v", err)
				}
			}()
		}

	case "", "none":
		// metrics disabled; nop backend remains
		if *verbose {
			log.Printf("metrics: disabled (backend=%q)", backendName)
		}

	default:
		log.Printf("metrics: unknown backend %q; metrics disabled", backendName)
	}

	ctx := context.Background()
	start := time.Now()

	// Datasets run concurrently and fail independently. Each dataset renders
	// into its own buffer and the finished section is written out under a
	// mutex, so report sections never interleave. Errors are logged and
	// counted rather than cancelling sibling datasets.
	var (
		outMu    sync.Mutex
		failures int
		g        errgroup.Group
	)
	for _, ds := range cfg.Datasets {
		ds := ds
		g.Go(func() error {
			var section bytes.Buffer
			res, err := pipeline.Run(ctx, ds, &section)
			outMu.Lock()
			os.Stdout.Write(section.Bytes())
			if err != nil {
				failures++
			}
			outMu.Unlock()
			if err != nil {
				log.Printf("dataset %s: %v", ds.Name, err)
				return nil
			}
			if *verbose {
				log.Printf("dataset %s: run=%s parsed=%d skipped=%d deduped=%d violent=%d join_dropped=%d hours_dropped=%d exported=%d in %s",
					ds.Name, res.RunID, res.Parsed, res.Skipped, res.Deduped, res.Violent,
					res.JoinDropped, res.HoursDropped, res.Exported, res.Elapsed.Truncate(time.Millisecond))
			}
			return nil
		})
	}
	_ = g.Wait()

	if *verbose {
		log.Printf("completed in %s", time.Since(start).Truncate(time.Millisecond))
	}
	if failures > 0 {
		os.Exit(1)
	}
}

// probeFile samples a CSV file and prints the inferred schema.
func probeFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	cols, err := probe.Sample(f, 1<<20, ',')
	if err != nil {
		return err
	}
	for _, c := range cols {
		fmt.Printf("%-30s %-30s %s\n", c.Header, c.Slug, c.Type)
	}
	return nil
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
