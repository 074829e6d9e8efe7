package pagetext

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
)

// DefaultTimeout is the per-navigation timeout applied when the
// configuration does not specify one.
const DefaultTimeout = 30 * time.Second

// Config is the run configuration consumed by the extraction and repair
// pipelines. It is loaded from a JSON file with optional keys; unrecognized
// or malformed keys are dropped with a diagnostic rather than failing the
// load.
type Config struct {
	// TimeoutMS is the per-navigation timeout in milliseconds.
	TimeoutMS int `json:"timeout" validate:"omitempty,min=1"`

	// Selector and SelectorType describe the legacy single flat selector
	// mode, used when Selectors is empty.
	Selector     string       `json:"selector"`
	SelectorType SelectorKind `json:"selector_type" validate:"omitempty,oneof=css xpath"`

	// BaseURL, when set, is prepended to relative URLs before fetching.
	BaseURL string `json:"baseurl"`

	// Selectors is the selector tree evaluated against each fetched page.
	Selectors []*SelectorNode `json:"selectors"`
}

// Timeout returns the configured per-navigation timeout with the default
// applied.
func (c *Config) Timeout() time.Duration {
	if c.TimeoutMS <= 0 {
		return DefaultTimeout
	}
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// Nodes returns the selector tree to evaluate per page: the configured
// tree, the legacy flat selector folded into a single node, or nil for
// full-markup mode.
func (c *Config) Nodes() []*SelectorNode {
	if len(c.Selectors) > 0 {
		return c.Selectors
	}
	if c.Selector != "" {
		return []*SelectorNode{{Selector: c.Selector, Kind: c.SelectorType}}
	}
	return nil
}

// Validate returns an EINVALID error if the configuration cannot be used.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return Errorf(EINVALID, "invalid config: %v", err)
	}
	return nil
}

// configKeys are the recognized top-level configuration keys.
var configKeys = map[string]bool{
	"timeout":       true,
	"selector":      true,
	"selector_type": true,
	"baseurl":       true,
	"selectors":     true,
}

// ParseConfig decodes a JSON configuration document. Unrecognized keys and
// keys whose values have the wrong shape are dropped with a diagnostic;
// a document that is not a JSON object at all, or that validates to an
// unusable configuration, is an EINVALID error.
func ParseConfig(data []byte, logger *slog.Logger) (*Config, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, Errorf(EINVALID, "invalid config JSON: %v", err)
	}

	cfg := &Config{}
	for key, value := range raw {
		if !configKeys[key] {
			logger.Warn("dropping unrecognized config key", "key", key)
			continue
		}

		var err error
		switch key {
		case "timeout":
			err = json.Unmarshal(value, &cfg.TimeoutMS)
		case "selector":
			err = json.Unmarshal(value, &cfg.Selector)
		case "selector_type":
			err = json.Unmarshal(value, &cfg.SelectorType)
		case "baseurl":
			err = json.Unmarshal(value, &cfg.BaseURL)
		case "selectors":
			var nodes []nodeConfig
			if err = json.Unmarshal(value, &nodes); err == nil {
				for _, nc := range nodes {
					cfg.Selectors = append(cfg.Selectors, nc.toNode())
				}
			}
		}
		if err != nil {
			logger.Warn("dropping malformed config key", "key", key, "error", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// nodeConfig mirrors the JSON shape of one selector tree node. The
// exclusion list is accepted under both spellings the config format has
// historically used.
type nodeConfig struct {
	Selector      string          `json:"selector"`
	SelectorType  SelectorKind    `json:"selector_type"`
	Separator     string          `json:"separator"`
	Exclusions    []string        `json:"exclusions"`
	ExclusionsAlt []string        `json:"Exclusions"`
	Selectors     []nodeConfig    `json:"selectors"`
	Replace       []replaceConfig `json:"replace"`
}

type replaceConfig struct {
	TargetTag  string `json:"target_tag"`
	ReplaceStr string `json:"replace_str"`
}

func (nc nodeConfig) toNode() *SelectorNode {
	node := &SelectorNode{
		Selector:   nc.Selector,
		Kind:       nc.SelectorType,
		Separator:  nc.Separator,
		Exclusions: nc.Exclusions,
	}
	if len(node.Exclusions) == 0 {
		node.Exclusions = nc.ExclusionsAlt
	}
	for _, child := range nc.Selectors {
		node.Children = append(node.Children, child.toNode())
	}
	for _, r := range nc.Replace {
		node.Replacements = append(node.Replacements, Replacement{
			TargetTag:   r.TargetTag,
			Replacement: r.ReplaceStr,
		})
	}
	return node
}
