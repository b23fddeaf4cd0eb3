package service

import (
	"fmt"
	"log"
	"time"

	"hosteria/internal/repository"
)

type JobService struct {
	Repo *repository.JobRepository
}

func NewJobService(repo *repository.JobRepository) *JobService {
	return &JobService{Repo: repo}
}

// AutoCheckout moves stays still in checkin past their end date to checkout.
func (s *JobService) AutoCheckout() error {
	log.Println("Cron Job: Checking for stays to mark as 'checkout'...")

	ids, err := s.Repo.ListOverdueCheckins(time.Now().UTC())
	if err != nil {
		return fmt.Errorf("cron job: failed to list overdue checkins: %w", err)
	}
	if len(ids) == 0 {
		log.Println("Cron Job: No overdue checkins found.")
		return nil
	}

	log.Printf("Cron Job: Found %d stays to mark as 'checkout'. IDs: %v", len(ids), ids)
	updated, err := s.Repo.UpdateReservationStates(ids, "checkout")
	if err != nil {
		return fmt.Errorf("cron job: failed to update reservation states: %w", err)
	}
	log.Printf("Cron Job: Successfully updated %d stays to 'checkout'.", updated)
	return nil
}

// PurgeStalePending deletes unpaid pending reservations whose stay already
// ended without ever being confirmed.
func (s *JobService) PurgeStalePending() error {
	deleted, err := s.Repo.DeleteStalePending(time.Now().UTC())
	if err != nil {
		return fmt.Errorf("cron job: failed to purge stale pending reservations: %w", err)
	}
	if deleted > 0 {
		log.Printf("Cron Job: Purged %d stale pending reservations.", deleted)
	}
	return nil
}
