package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "100KB"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	SecretKey struct {
		Access  string `json:"access" yaml:"access"`
		Refresh string `json:"refresh" yaml:"refresh"`
	} `json:"secretKey" yaml:"secretKey"`

	Auth AuthConfig `json:"auth" yaml:"auth"`

	// Loyalty configures the spend-based progression and checkout pricing.
	Loyalty LoyaltyConfig `json:"loyalty" yaml:"loyalty"`

	// Payment selects and configures the payment processor.
	Payment PaymentConfig `json:"payment" yaml:"payment"`

	// Mail configures invoice email dispatch.
	Mail MailConfig `json:"mail" yaml:"mail"`

	// PubSub configuration for order/loyalty event publishing.
	PubSub PubSubConfig `json:"pubsub" yaml:"pubsub"`

	// QRCode configuration for order receipt QR codes.
	QRCode QRCodeConfig `json:"qrcode" yaml:"qrcode"`

	// Admin bootstraps the administrator role for matching emails.
	Admin AdminConfig `json:"admin" yaml:"admin"`
}

// AuthConfig defines authentication-related configuration.
type AuthConfig struct {
	BcryptCost int `json:"bcryptCost" yaml:"bcryptCost"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// LoyaltyConfig defines the loyalty bracket and checkout pricing knobs.
// All monetary values are integer minor units.
type LoyaltyConfig struct {
	// Spend required to advance one level.
	BracketSize int64 `json:"bracketSize" yaml:"bracketSize"`

	// Flat percentage discount applied to the subtotal for authenticated users.
	DiscountPercent int64 `json:"discountPercent" yaml:"discountPercent"`

	// Tax percentage applied to the (discounted) subtotal.
	TaxPercent int64 `json:"taxPercent" yaml:"taxPercent"`
}

// PaymentConfig defines payment processor configuration.
type PaymentConfig struct {
	// Provider type: "simulated" for the embedded confirmation flow or
	// "stripe" for hosted checkout sessions.
	Provider string `json:"provider" yaml:"provider"`

	// Stripe secret key (for stripe provider).
	StripeSecretKey string `json:"stripeSecretKey" yaml:"stripeSecretKey"`

	// ISO currency code for checkout sessions.
	Currency string `json:"currency" yaml:"currency"`

	// Return URLs for the hosted checkout flow. SuccessURL should contain
	// the {CHECKOUT_SESSION_ID} placeholder.
	SuccessURL string `json:"successUrl" yaml:"successUrl"`
	CancelURL  string `json:"cancelUrl" yaml:"cancelUrl"`
}

// MailConfig defines invoice email configuration.
type MailConfig struct {
	// Provider type: "resend" or "log" for development.
	Provider string `json:"provider" yaml:"provider"`

	// Resend API key (for resend provider).
	APIKey string `json:"apiKey" yaml:"apiKey"`

	// Sender address, e.g. "Game Store <noreply@example.com>".
	From string `json:"from" yaml:"from"`
}

// PubSubConfig defines Pub/Sub configuration for event publishing.
type PubSubConfig struct {
	// Provider type: "local" for local HTTP or "google" for Google Pub/Sub.
	Provider string `json:"provider" yaml:"provider"`

	// Google Cloud project ID (for google provider).
	ProjectID string `json:"projectId" yaml:"projectId"`

	// Pub/Sub topic ID (for google provider).
	TopicID string `json:"topicId" yaml:"topicId"`

	// Local HTTP endpoint for development (for local provider).
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`
}

// QRCodeConfig defines QR code generation configuration.
type QRCodeConfig struct {
	Size                 int    `json:"size" yaml:"size"`
	ErrorCorrectionLevel string `json:"errorCorrectionLevel" yaml:"errorCorrectionLevel"`
	BaseURL              string `json:"baseUrl" yaml:"baseUrl"`
}

// AdminConfig lists emails promoted to the administrator role at
// registration time. The role itself is persisted on the user row.
type AdminConfig struct {
	Emails []string `json:"emails" yaml:"emails"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	// Try to find and load the config file
	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	// Load YAML config file
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
			// Example: PAYMENT_STRIPESECRETKEY -> payment.stripeSecretKey
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}

	applyLoyaltyDefaults(cfg)

	return cfg, nil
}

// applyLoyaltyDefaults fills in the canonical progression constants when the
// section is absent, so a bare config still checks out correctly.
func applyLoyaltyDefaults(cfg *Config) {
	if cfg.Loyalty.BracketSize <= 0 {
		cfg.Loyalty.BracketSize = 1000
	}
	if cfg.Loyalty.DiscountPercent <= 0 {
		cfg.Loyalty.DiscountPercent = 5
	}
	if cfg.Loyalty.TaxPercent <= 0 {
		cfg.Loyalty.TaxPercent = 21
	}
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
