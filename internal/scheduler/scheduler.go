package scheduler

import (
	"context"
	"fmt"
	"log"

	"TrendSentry/internal/pipeline"

	"github.com/robfig/cron/v3"
)

// Scheduler manages all cron tasks.
type Scheduler struct {
	Cron   *cron.Cron
	Runner *pipeline.Runner
	Ctx    context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, runner *pipeline.Runner) *Scheduler {
	return &Scheduler{
		Cron:   cron.New(cron.WithSeconds()),
		Runner: runner,
		Ctx:    ctx,
	}
}

// RegisterAll registers the watchlist, scan, index, and stop-loss tasks.
func (s *Scheduler) RegisterAll(watchlistCron, scanCron, indexCron, stopLossCron string) error {
	if _, err := s.Cron.AddFunc(watchlistCron, s.watchlistTask); err != nil {
		return fmt.Errorf("register watchlist task: %w", err)
	}
	if _, err := s.Cron.AddFunc(scanCron, s.scanTask); err != nil {
		return fmt.Errorf("register scan task: %w", err)
	}
	if _, err := s.Cron.AddFunc(indexCron, s.indexTask); err != nil {
		return fmt.Errorf("register index task: %w", err)
	}
	if _, err := s.Cron.AddFunc(stopLossCron, s.stopLossTask); err != nil {
		return fmt.Errorf("register stop-loss task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

func (s *Scheduler) watchlistTask() {
	log.Println("[INFO] running watchlist checklist task")
	if err := s.Runner.RunWatchlistReport(s.Ctx); err != nil {
		log.Printf("[ERROR] watchlist task: %v", err)
	}
}

func (s *Scheduler) scanTask() {
	log.Println("[INFO] running market scan task")
	if err := s.Runner.RunScan(s.Ctx); err != nil {
		log.Printf("[ERROR] scan task: %v", err)
	}
}

func (s *Scheduler) indexTask() {
	log.Println("[INFO] running index trend task")
	if err := s.Runner.RunIndexBuy(s.Ctx); err != nil {
		log.Printf("[ERROR] index buy task: %v", err)
	}
	if err := s.Runner.RunIndexSell(s.Ctx); err != nil {
		log.Printf("[ERROR] index sell task: %v", err)
	}
}

func (s *Scheduler) stopLossTask() {
	log.Println("[INFO] running stop-loss task")
	if err := s.Runner.RunStopLoss(s.Ctx); err != nil {
		log.Printf("[ERROR] stop-loss task: %v", err)
	}
}
