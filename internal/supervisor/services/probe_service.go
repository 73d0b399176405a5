// Ascent - Competitive Programming Practice Recommender
// Copyright 2026 Raunak B. (raunakbh)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/raunakbh/ascent

package services

import (
	"context"

	"github.com/raunakbh/ascent/internal/judge"
)

// AvailabilityProbeService supervises the periodic judge health check.
type AvailabilityProbeService struct {
	probe *judge.Probe
}

// NewAvailabilityProbeService wraps the probe loop as a service.
func NewAvailabilityProbeService(probe *judge.Probe) *AvailabilityProbeService {
	return &AvailabilityProbeService{probe: probe}
}

// Serve implements suture.Service.
func (s *AvailabilityProbeService) Serve(ctx context.Context) error {
	return s.probe.Run(ctx)
}

// String implements fmt.Stringer for supervisor logging.
func (s *AvailabilityProbeService) String() string {
	return "availability-probe"
}
