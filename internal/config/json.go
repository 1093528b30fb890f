package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/melodydiary/internal/flagx"
	"github.com/dmitrijs2005/melodydiary/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish "absent" from zero values.
type JsonConfig struct {
	DatabasePath   *string         `json:"database_path"`
	AccessCode     *string         `json:"access_code"`
	AdminCode      *string         `json:"admin_code"`
	InviteLink     *string         `json:"invite_link"`
	InvitePolicy   *string         `json:"invite_policy"`
	LogLevel       *string         `json:"log_level"`
	EnhancerModel  *string         `json:"enhancer_model"`
	EnhancerAPIKey *string         `json:"enhancer_api_key"`
	EnhanceTimeout *timex.Duration `json:"enhance_timeout"`
	SeedDemo       *bool           `json:"seed_demo"`
}

// parseJson overlays cfg with the file named by -c/-config. It panics on
// read, decode or validation errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if err := jc.apply(cfg); err != nil {
		panic(err)
	}
}

func (jc *JsonConfig) apply(cfg *Config) error {
	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.AccessCode, jc.AccessCode)
	setString(&cfg.AdminCode, jc.AdminCode)
	setString(&cfg.InviteLink, jc.InviteLink)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.EnhancerModel, jc.EnhancerModel)
	setString(&cfg.EnhancerAPIKey, jc.EnhancerAPIKey)

	if jc.InvitePolicy != nil {
		p, err := ParseInvitePolicy(*jc.InvitePolicy)
		if err != nil {
			return err
		}
		cfg.InvitePolicy = p
	}
	if jc.EnhanceTimeout != nil {
		cfg.EnhanceTimeout = jc.EnhanceTimeout.Duration
	}
	if jc.SeedDemo != nil {
		cfg.SeedDemo = *jc.SeedDemo
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
