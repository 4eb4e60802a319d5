package commands

import (
	"fmt"
	"net/url"
	"time"

	"buildcrafter/internal/extract"
	"buildcrafter/internal/source"
	"buildcrafter/internal/store"
	"buildcrafter/lib/configutil"
	"buildcrafter/lib/osutil"
	"buildcrafter/lib/restyutil"
)

type KindConfig struct {
	Input          string `json:"input"`
	Output         string `json:"output"`
	RequestDelayMs *int   `json:"request_delay_ms"`
}

type Config struct {
	BaseUrl          string                `json:"base_url"`
	PathPrefix       string                `json:"path_prefix"`
	UserAgent        string                `json:"user_agent"`
	TimeoutSeconds   int                   `json:"timeout_seconds"`
	ImageDir         string                `json:"image_dir"`
	CloudflareBypass bool                  `json:"cloudflare_bypass"`
	Kinds            map[string]KindConfig `json:"kinds"`
	Store            store.Config          `json:"store"`
}

var defaultConfig = Config{
	BaseUrl:        "https://core-keeper.fandom.com",
	PathPrefix:     "/wiki/",
	UserAgent:      source.DefaultUserAgent,
	TimeoutSeconds: 15,
	ImageDir:       "images",
	Store: store.Config{
		File: "items.db",
	},
}

func loadConfig() Config {
	cfg, err := configutil.ReadConfigOr(*configPath, defaultConfig)
	if err != nil {
		osutil.Fatal("failed to read config", err)
	}
	return cfg
}

func (c Config) baseUrl() *url.URL {
	u, err := url.Parse(c.BaseUrl)
	if err != nil {
		osutil.Fatal("invalid base_url", err)
	}
	return u
}

var dump *restyutil.Dump

// httpDump creates the dump directory once, every client shares it and its
// message numbering.
func httpDump() *restyutil.Dump {
	if dumpHttp == nil || *dumpHttp == "" {
		return nil
	}
	if dump == nil {
		output, err := restyutil.NewFilesystemOutput(*dumpHttp)
		if err != nil {
			osutil.Fatal("failed to create http dump directory", err)
		}
		dump = restyutil.NewDump(output)
	}
	return dump
}

func (c Config) http(delay time.Duration) source.HTTPConfig {
	return source.HTTPConfig{
		BaseUrl:          c.BaseUrl,
		UserAgent:        c.UserAgent,
		Timeout:          time.Duration(c.TimeoutSeconds) * time.Second,
		Delay:            delay,
		CloudflareBypass: c.CloudflareBypass,
		Dump:             httpDump(),
	}
}

// kind returns the built-in kind with the overrides of the config applied.
func (c Config) kind(name string) extract.Kind {
	kind, ok := extract.KindByName(name)
	if !ok {
		osutil.Fatal("unknown kind", fmt.Errorf("%q is not one of %v", name, extract.KindNames()))
	}

	override, ok := c.Kinds[kind.Name]
	if !ok {
		return kind
	}
	if override.Input != "" {
		kind.Input = override.Input
	}
	if override.Output != "" {
		kind.Output = override.Output
	}
	if override.RequestDelayMs != nil {
		kind.RequestDelay = time.Duration(*override.RequestDelayMs) * time.Millisecond
	}
	return kind
}
