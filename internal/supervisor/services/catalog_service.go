// Ascent - Competitive Programming Practice Recommender
// Copyright 2026 Raunak B. (raunakbh)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/raunakbh/ascent

package services

import (
	"context"

	"github.com/raunakbh/ascent/internal/catalog"
)

// CatalogRefreshService supervises the hourly catalog refresh loop.
type CatalogRefreshService struct {
	cache *catalog.Cache
}

// NewCatalogRefreshService wraps the cache's refresh loop as a service.
func NewCatalogRefreshService(cache *catalog.Cache) *CatalogRefreshService {
	return &CatalogRefreshService{cache: cache}
}

// Serve implements suture.Service.
func (s *CatalogRefreshService) Serve(ctx context.Context) error {
	return s.cache.Run(ctx)
}

// String implements fmt.Stringer for supervisor logging.
func (s *CatalogRefreshService) String() string {
	return "catalog-refresh"
}
