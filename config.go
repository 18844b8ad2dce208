package inertia

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/joeshaw/envdecode"
)

// Environments the adapter distinguishes. Development serves assets from
// the Vite dev server; production resolves them through the manifest.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config is the adapter's configuration surface. Constructed once,
// immutable, shared read-only across all requests. The zero value plus
// defaults matches a stock Vite project; see New.
type Config struct {
	// Environment is "development" or "production".
	Environment string `toml:"environment" env:"INERTIA_ENVIRONMENT,default=development"`
	// Version is the current asset version; clients declaring a
	// different one are forced into a full reload.
	Version string `toml:"version" env:"INERTIA_VERSION,default=1.0"`
	// ManifestPath locates the Vite build manifest.
	ManifestPath string `toml:"manifest_path" env:"INERTIA_MANIFEST_PATH,default=dist/.vite/manifest.json"`
	// RootDir is the frontend source directory, the first half of the
	// manifest entry key.
	RootDir string `toml:"root_dir" env:"INERTIA_ROOT_DIR,default=src"`
	// RootTemplate is the HTML shell template file, used by the default
	// template renderer.
	RootTemplate string `toml:"root_template" env:"INERTIA_ROOT_TEMPLATE,default=index.html"`
	// Entrypoint is the frontend entry file name.
	Entrypoint string `toml:"entrypoint" env:"INERTIA_ENTRYPOINT,default=main.js"`
	// DevServerURL is the Vite dev server address.
	DevServerURL string `toml:"dev_server_url" env:"INERTIA_DEV_SERVER_URL,default=http://localhost:5173"`
	// SSRURL is the companion render service address.
	SSRURL string `toml:"ssr_url" env:"INERTIA_SSR_URL,default=http://localhost:13714"`
	// SSREnabled turns on server-side rendering with classic fallback.
	SSREnabled bool `toml:"ssr_enabled" env:"INERTIA_SSR_ENABLED,default=false"`
	// React injects the React refresh preamble into the dev head.
	React bool `toml:"react" env:"INERTIA_REACT,default=false"`
	// UseFlashMessages enables Flash and flash-message injection.
	UseFlashMessages bool `toml:"use_flash_messages" env:"INERTIA_USE_FLASH_MESSAGES,default=false"`
	// UseFlashErrors enables FlashValidationError and flash-error
	// injection.
	UseFlashErrors bool `toml:"use_flash_errors" env:"INERTIA_USE_FLASH_ERRORS,default=false"`
	// FlashMessageKey is the prop key flashed messages appear under.
	FlashMessageKey string `toml:"flash_message_key" env:"INERTIA_FLASH_MESSAGE_KEY,default=messages"`
	// FlashErrorKey is the prop key flashed errors appear under.
	FlashErrorKey string `toml:"flash_error_key" env:"INERTIA_FLASH_ERROR_KEY,default=errors"`
	// FlashMessagesSessionKey is the session key flash messages live in.
	FlashMessagesSessionKey string `toml:"flash_messages_session_key" env:"INERTIA_FLASH_MESSAGES_SESSION_KEY,default=_messages"`
	// FlashErrorsSessionKey is the session key flash errors live in.
	FlashErrorsSessionKey string `toml:"flash_errors_session_key" env:"INERTIA_FLASH_ERRORS_SESSION_KEY,default=_errors"`
	// AssetsPrefix is prepended to manifest asset paths, for apps served
	// behind a path prefix or CDN mount.
	AssetsPrefix string `toml:"assets_prefix" env:"INERTIA_ASSETS_PREFIX,default="`
}

// withDefaults fills unset string fields. Boolean fields default to
// false, which is already the zero value.
func (c Config) withDefaults() Config {
	if c.Environment == "" {
		c.Environment = EnvDevelopment
	}
	if c.Version == "" {
		c.Version = "1.0"
	}
	if c.ManifestPath == "" {
		c.ManifestPath = "dist/.vite/manifest.json"
	}
	if c.RootDir == "" {
		c.RootDir = "src"
	}
	if c.RootTemplate == "" {
		c.RootTemplate = "index.html"
	}
	if c.Entrypoint == "" {
		c.Entrypoint = "main.js"
	}
	if c.DevServerURL == "" {
		c.DevServerURL = "http://localhost:5173"
	}
	if c.SSRURL == "" {
		c.SSRURL = "http://localhost:13714"
	}
	if c.FlashMessageKey == "" {
		c.FlashMessageKey = "messages"
	}
	if c.FlashErrorKey == "" {
		c.FlashErrorKey = "errors"
	}
	if c.FlashMessagesSessionKey == "" {
		c.FlashMessagesSessionKey = "_messages"
	}
	if c.FlashErrorsSessionKey == "" {
		c.FlashErrorsSessionKey = "_errors"
	}
	return c
}

// Validate checks field combinations that cannot work.
func (c Config) Validate() error {
	if c.Environment != EnvDevelopment && c.Environment != EnvProduction {
		return fmt.Errorf("inertia: unknown environment %q", c.Environment)
	}
	return nil
}

// FromFile loads a Config from a TOML file and applies defaults.
func FromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("inertia: config load failed (%s): %w", path, err)
	}
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("inertia: config parse failed (%s): %w", path, err)
	}
	cfg = cfg.withDefaults()
	return cfg, cfg.Validate()
}

// FromEnv loads a Config from INERTIA_* environment variables and
// applies defaults.
func FromEnv() (Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("inertia: config from env: %w", err)
	}
	cfg = cfg.withDefaults()
	return cfg, cfg.Validate()
}
