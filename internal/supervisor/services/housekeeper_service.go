// Ascent - Competitive Programming Practice Recommender
// Copyright 2026 Raunak B. (raunakbh)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/raunakbh/ascent

package services

import (
	"context"

	"github.com/raunakbh/ascent/internal/store"
)

// HousekeeperService supervises the snooze-expiry and user-purge sweeps.
type HousekeeperService struct {
	housekeeper *store.Housekeeper
}

// NewHousekeeperService wraps the housekeeper loop as a service.
func NewHousekeeperService(h *store.Housekeeper) *HousekeeperService {
	return &HousekeeperService{housekeeper: h}
}

// Serve implements suture.Service.
func (s *HousekeeperService) Serve(ctx context.Context) error {
	return s.housekeeper.Run(ctx)
}

// String implements fmt.Stringer for supervisor logging.
func (s *HousekeeperService) String() string {
	return "store-housekeeper"
}
