// Command nakasim-sweep runs the same scenario across a range of
// seeds concurrently, each in its own Network and Scheduler, writing
// each run's CSVs into its own seed-numbered subdirectory. Supplements
// the single-run nakasim command with the seed-variance sweeps a
// network-parameter study needs.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/tolelom/nakasim/config"
	"github.com/tolelom/nakasim/scenario"
)

func main() {
	cfgPath := flag.String("config", "", "path to a base scenario JSON file")
	startSeed := flag.Uint64("start_seed", 0, "first seed in the sweep (inclusive)")
	numSeeds := flag.Uint64("num_seeds", 10, "how many consecutive seeds to run")
	workers := flag.Int("workers", 4, "maximum concurrent simulations")
	outDir := flag.String("out", "./out/sweep", "parent directory; each seed writes to out/<seed>/")
	flag.Parse()

	base := config.DefaultConfig()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			log.Fatalf("config: %v", err)
		}
		base = loaded
	}
	if *numSeeds == 0 {
		log.Fatalf("num_seeds must be >= 1")
	}
	if *workers <= 0 {
		log.Fatalf("workers must be >= 1")
	}

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		log.Fatalf("mkdir: %v", err)
	}

	type job struct {
		seed uint64
	}
	jobs := make(chan job)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var failures []error
	var completed int

	worker := func() {
		defer wg.Done()
		for j := range jobs {
			cfg := *base
			cfg.Seed = j.seed
			cfg.OutputDir = filepath.Join(*outDir, fmt.Sprintf("%d", j.seed))
			if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
				mu.Lock()
				failures = append(failures, fmt.Errorf("seed %d: mkdir: %w", j.seed, err))
				mu.Unlock()
				continue
			}
			result, err := scenario.Run(&cfg)
			mu.Lock()
			if err != nil {
				failures = append(failures, fmt.Errorf("seed %d: %w", j.seed, err))
			} else {
				completed++
				log.Printf("seed %d done: %d blocks, %.2fs", j.seed, result.BlocksMined, result.FinalTime)
			}
			mu.Unlock()
		}
	}

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go worker()
	}
	for s := *startSeed; s < *startSeed+*numSeeds; s++ {
		jobs <- job{seed: s}
	}
	close(jobs)
	wg.Wait()

	log.Printf("sweep finished: %d/%d runs succeeded", completed, *numSeeds)
	for _, err := range failures {
		log.Printf("failure: %v", err)
	}
	if len(failures) > 0 {
		os.Exit(1)
	}
}
