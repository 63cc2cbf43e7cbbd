package simulation

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/moneyflow/projection/internal/domain"
	"github.com/moneyflow/projection/internal/withdrawal"
	"github.com/shopspring/decimal"
)

// ErrNoAccounts is returned when a run is requested with no accounts.
var ErrNoAccounts = errors.New("no accounts to simulate")

// Simulator runs block-bootstrap Monte Carlo projections over a set of
// account snapshots. Trials are independent and run on a bounded worker
// pool; trial i always uses seed BaseSeed+i, so results are reproducible
// for a given seed regardless of scheduling or worker count.
type Simulator struct {
	Source   ReturnSource
	Logger   Logger
	Workers  int
	BaseSeed int64
}

// New builds a Simulator with a no-op logger and one worker per CPU.
func New(source ReturnSource) *Simulator {
	return &Simulator{
		Source:  source,
		Logger:  NopLogger{},
		Workers: runtime.NumCPU(),
	}
}

// Run executes the configured number of trials and reduces them to an
// AggregateResult. Cancellation returns the context error and no partial
// aggregate.
func (s *Simulator) Run(ctx context.Context, accounts []domain.AccountSnapshot, cfg domain.SimulationConfig) (*AggregateResult, error) {
	trials, err := s.RunTrials(ctx, accounts, cfg, nil)
	if err != nil {
		return nil, err
	}
	return Aggregate(trials, accounts, cfg, s.Source), nil
}

// RunTrials executes the raw trials. A non-nil fiThreshold makes each trial
// accumulate until real net worth first reaches the threshold and withdraw
// from then on; with a nil threshold withdrawals (if enabled) start in year
// one.
func (s *Simulator) RunTrials(ctx context.Context, accounts []domain.AccountSnapshot, cfg domain.SimulationConfig, fiThreshold *decimal.Decimal) ([]TrialPath, error) {
	if err := validate(accounts, cfg); err != nil {
		return nil, err
	}

	policy, err := withdrawal.NewPolicy(cfg.Withdrawal)
	if err != nil {
		return nil, err
	}

	seed := s.BaseSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	workers := s.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	spec := trialSpec{
		accounts:    accounts,
		cfg:         cfg,
		policy:      policy,
		fiThreshold: fiThreshold,
	}

	s.Logger.Debugf("running %d trials over %d years (seed %d, %d workers)",
		cfg.NumSimulations, cfg.Years, seed, workers)

	trials := make([]TrialPath, cfg.NumSimulations)
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, workers)

	for i := 0; i < cfg.NumSimulations; i++ {
		wg.Add(1)
		go func(trialIndex int) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			if ctx.Err() != nil {
				return
			}
			rng := rand.New(rand.NewSource(seed + int64(trialIndex)))
			trials[trialIndex] = runTrial(rng, s.Source, spec)
		}(i)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		s.Logger.Warnf("simulation cancelled: %v", err)
		return nil, err
	}
	return trials, nil
}

func validate(accounts []domain.AccountSnapshot, cfg domain.SimulationConfig) error {
	if len(accounts) == 0 {
		return ErrNoAccounts
	}
	if cfg.NumSimulations <= 0 {
		return fmt.Errorf("num_simulations must be positive, got %d", cfg.NumSimulations)
	}
	if cfg.Years < 0 {
		return fmt.Errorf("years must not be negative, got %d", cfg.Years)
	}
	return nil
}
