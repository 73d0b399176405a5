// Ascent - Competitive Programming Practice Recommender
// Copyright 2026 Raunak B. (raunakbh)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/raunakbh/ascent

package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks that required configuration is present and valid.
// Struct tags cover the field-level rules; cross-field and semantic checks
// follow by hand.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config field %s: failed %q rule", fe.Namespace(), fe.Tag())
		}
		return fmt.Errorf("config validation: %w", err)
	}

	if err := c.validateJudge(); err != nil {
		return err
	}

	return c.validateHousekeeping()
}

// validateJudge applies judge checks the struct tags cannot express.
func (c *Config) validateJudge() error {
	u, err := url.Parse(c.Judge.BaseURL)
	if err != nil {
		return fmt.Errorf("JUDGE_BASE_URL is invalid: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("JUDGE_BASE_URL must use http or https, got %q", u.Scheme)
	}
	if strings.HasSuffix(c.Judge.BaseURL, "/") {
		return fmt.Errorf("JUDGE_BASE_URL must not end with a trailing slash")
	}
	if c.Judge.Timeout >= c.Judge.ProbeInterval {
		return fmt.Errorf("JUDGE_TIMEOUT (%s) must be shorter than JUDGE_PROBE_INTERVAL (%s)",
			c.Judge.Timeout, c.Judge.ProbeInterval)
	}
	return nil
}

// validateHousekeeping rejects sweep intervals that outpace their TTLs so a
// misconfigured deployment cannot busy-loop the store.
func (c *Config) validateHousekeeping() error {
	if c.Housekeeping.SnoozeSweepInterval > c.Housekeeping.SnoozeTTL {
		return fmt.Errorf("SNOOZE_SWEEP_INTERVAL (%s) must not exceed SNOOZE_TTL (%s)",
			c.Housekeeping.SnoozeSweepInterval, c.Housekeeping.SnoozeTTL)
	}
	if c.Housekeeping.PurgeSweepInterval > c.Housekeeping.InactiveTTL {
		return fmt.Errorf("PURGE_SWEEP_INTERVAL (%s) must not exceed INACTIVE_TTL (%s)",
			c.Housekeeping.PurgeSweepInterval, c.Housekeeping.InactiveTTL)
	}
	return nil
}
