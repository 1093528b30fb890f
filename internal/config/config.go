package config

import (
	"time"

	"github.com/dmitrijs2005/melodydiary/internal/common"
)

// InvitePolicy decides who may add other users to a group.
type InvitePolicy string

const (
	// InviteOwnerOnly lets only the group owner add members.
	InviteOwnerOnly InvitePolicy = "owner"
	// InviteAnyMember lets any current member add members.
	InviteAnyMember InvitePolicy = "member"
)

// ParseInvitePolicy validates a policy name from JSON or flags.
func ParseInvitePolicy(s string) (InvitePolicy, error) {
	switch p := InvitePolicy(s); p {
	case InviteOwnerOnly, InviteAnyMember:
		return p, nil
	default:
		return "", common.ErrInvalidInvitePolicy
	}
}

// Config holds runtime settings for the diary CLI.
type Config struct {
	DatabasePath   string
	AccessCode     string
	AdminCode      string
	InviteLink     string
	InvitePolicy   InvitePolicy
	LogLevel       string
	EnhancerModel  string
	EnhancerAPIKey string
	EnhanceTimeout time.Duration
	SeedDemo       bool
}

// LoadDefaults populates c with the stock demo settings.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "diary.db"
	c.AccessCode = "2010"
	c.AdminCode = "1803"
	c.InviteLink = ""
	c.InvitePolicy = InviteOwnerOnly
	c.LogLevel = "warn"
	c.EnhancerModel = "gemini-3-flash-preview"
	c.EnhancerAPIKey = ""
	c.EnhanceTimeout = 15 * time.Second
	c.SeedDemo = true
}

// LoadConfig applies defaults, then the JSON file (if any), then flags.
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
