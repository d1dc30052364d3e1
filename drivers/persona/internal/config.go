package driver

import (
	"fmt"
	"strings"

	"github.com/datazip-inc/tap-persona/constants"
	"github.com/datazip-inc/tap-persona/utils"
	"github.com/datazip-inc/tap-persona/utils/typeutils"
)

// Config holds Persona API connection configuration
type Config struct {
	APIKey     string `json:"api_key" validate:"required" secret:"true" desc:"API key for Persona authentication"`
	BaseURL    string `json:"base_url" default:"https://withpersona.com/api/v1" desc:"Base API URL for Persona"`
	StartDate  string `json:"start_date" desc:"Replication floor for the first sync (RFC3339); unset means unbounded backfill"`
	PageSize   int    `json:"page_size" default:"100" desc:"Number of records to fetch per page"`
	RetryCount int    `json:"retry_count" default:"3" desc:"Number of retries for rate-limited or failed requests"`
}

func (c *Config) Validate() error {
	if err := utils.Validate(c); err != nil {
		return fmt.Errorf("invalid config: %s", err)
	}

	if c.BaseURL == "" {
		c.BaseURL = "https://withpersona.com/api/v1"
	}
	c.BaseURL = strings.TrimSuffix(c.BaseURL, "/")
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return fmt.Errorf("base_url must include http or https scheme")
	}

	if c.PageSize < 0 {
		return fmt.Errorf("page_size must be a positive integer")
	}
	if c.PageSize == 0 {
		c.PageSize = constants.DefaultPageSize
	}

	if c.RetryCount <= 0 {
		c.RetryCount = constants.DefaultRetryCount
	}

	if c.StartDate != "" {
		if _, err := typeutils.ParseTimestamp(c.StartDate); err != nil {
			return fmt.Errorf("invalid start_date: %s", err)
		}
	}

	return nil
}
