package portalauth

import (
	"errors"
	"fmt"

	"github.com/kokomatto/portalauth/session"
)

// StoreConfig controls the durable session store.
type StoreConfig struct {
	// RedisPrefix namespaces the session keys. The keys themselves are
	// fixed: <prefix>:isAuthenticated and <prefix>:userRole.
	RedisPrefix string
	// Channel carries cross-process change notices.
	Channel string
}

// VerificationConfig lists the partner roles that carry a verification
// record. Each subject gets its own state machine and its own durable
// record; records persist across logins.
type VerificationConfig struct {
	Subjects []string
}

// DemoCredential is one identifier/secret pair in the fixed login table.
// There is no password hashing here; the table is a stand-in credential
// check, not an account system.
type DemoCredential struct {
	Identifier string
	Secret     string
	Role       session.Role
}

// AccountConfig holds the demo credential table.
type AccountConfig struct {
	Credentials []DemoCredential
}

// AuditConfig controls the async audit dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig controls the engine counters.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

// Config is the full engine configuration. Configure it before Build;
// the engine treats it as immutable afterward.
type Config struct {
	Store        StoreConfig
	Verification VerificationConfig
	Account      AccountConfig
	Audit        AuditConfig
	Metrics      MetricsConfig
}

// DefaultConfig returns the storefront defaults: the kokomatto key prefix,
// the auth-change channel, the four demo credentials, affiliate and
// merchant verification subjects, metrics on, audit off.
func DefaultConfig() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		Store: StoreConfig{
			RedisPrefix: "kokomatto",
			Channel:     "auth-change",
		},
		Verification: VerificationConfig{
			Subjects: []string{"affiliate", "merchant"},
		},
		Account: AccountConfig{
			Credentials: []DemoCredential{
				{Identifier: "user", Secret: "password", Role: session.RoleUser},
				{Identifier: "admin", Secret: "superadmin", Role: session.RoleAdmin},
				{Identifier: "merchant", Secret: "supermerchant", Role: session.RoleMerchant},
				{Identifier: "affiliate", Secret: "affiliate123", Role: session.RoleAffiliate},
			},
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 256,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

func cloneConfig(cfg Config) Config {
	out := cfg
	out.Verification.Subjects = append([]string(nil), cfg.Verification.Subjects...)
	out.Account.Credentials = append([]DemoCredential(nil), cfg.Account.Credentials...)
	return out
}

// Validate checks the configuration for internal consistency.
func (c Config) Validate() error {
	if c.Store.RedisPrefix == "" {
		return errors.New("Store.RedisPrefix must not be empty")
	}
	if c.Store.Channel == "" {
		return errors.New("Store.Channel must not be empty")
	}

	seen := make(map[string]struct{}, len(c.Account.Credentials))
	for _, cred := range c.Account.Credentials {
		if cred.Identifier == "" || cred.Secret == "" {
			return errors.New("credential identifier and secret must not be empty")
		}
		if !cred.Role.Valid() || cred.Role == session.RoleGuest {
			return fmt.Errorf("%w: credential %q", ErrRoleInvalid, cred.Identifier)
		}
		if _, dup := seen[cred.Identifier]; dup {
			return fmt.Errorf("duplicate credential identifier %q", cred.Identifier)
		}
		seen[cred.Identifier] = struct{}{}
	}

	subjects := make(map[string]struct{}, len(c.Verification.Subjects))
	for _, subject := range c.Verification.Subjects {
		if subject == "" {
			return errors.New("verification subject must not be empty")
		}
		if _, dup := subjects[subject]; dup {
			return fmt.Errorf("duplicate verification subject %q", subject)
		}
		subjects[subject] = struct{}{}
	}

	if c.Audit.Enabled && c.Audit.BufferSize < 0 {
		return errors.New("Audit.BufferSize must not be negative")
	}

	return nil
}
