package jobs

import (
	"context"
	"log"

	"stocktrack/internal/repositories"
)

const reorderScanLimit = 500

// ReorderScanService periodically surfaces items that have fallen to or
// below their reorder point. This is a coarse operational digest; the
// per-movement low-stock notifications come from the stock ledger itself.
type ReorderScanService struct {
	itemRepo repositories.ItemRepository
}

func NewReorderScanService(itemRepo repositories.ItemRepository) *ReorderScanService {
	return &ReorderScanService{itemRepo: itemRepo}
}

func (s *ReorderScanService) Run(ctx context.Context) error {
	items, err := s.itemRepo.ListBelowReorderPoint(ctx, reorderScanLimit)
	if err != nil {
		log.Printf("Reorder scan failed: %v", err)
		return err
	}

	if len(items) == 0 {
		log.Println("Reorder scan: no items below reorder point")
		return nil
	}

	log.Printf("Reorder scan: %d item(s) at or below reorder point:", len(items))
	for _, item := range items {
		log.Printf("- %s (%s): %d units on hand, reorder point %d",
			item.Name, item.SKU, item.CurrentStock, *item.ReorderPoint)
	}
	return nil
}
