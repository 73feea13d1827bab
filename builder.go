package portalauth

import (
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/kokomatto/portalauth/guard"
	"github.com/kokomatto/portalauth/internal/audit"
	"github.com/kokomatto/portalauth/nav"
	"github.com/kokomatto/portalauth/session"
	"github.com/kokomatto/portalauth/verification"
)

// Builder assembles an [Engine]. Configure it with the With* methods and
// call Build once; a Builder is not reusable.
type Builder struct {
	config Config
	redis  redis.UniversalClient

	sessionStore      session.Store
	verificationStore verification.Store
	rules             []guard.Rule
	auditSink         AuditSink

	built bool
}

// New creates a Builder with the default configuration: the storefront
// route table, the four demo credentials, affiliate and merchant
// verification subjects, metrics on, audit off.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the whole configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithRedis supplies the Redis client backing both the session store and
// the verification records. Not needed when WithStore and
// WithVerificationStore provide implementations directly.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithStore supplies a session store directly, bypassing Redis wiring.
// Single-process embeddings and tests use this with a MemoryStore.
func (b *Builder) WithStore(store session.Store) *Builder {
	b.sessionStore = store
	return b
}

// WithVerificationStore supplies a verification record store directly.
func (b *Builder) WithVerificationStore(store verification.Store) *Builder {
	b.verificationStore = store
	return b
}

// WithCredentials replaces the demo credential table.
func (b *Builder) WithCredentials(creds []DemoCredential) *Builder {
	b.config.Account.Credentials = append([]DemoCredential(nil), creds...)
	return b
}

// WithRules replaces the route rule set. Defaults to guard.DefaultRules.
func (b *Builder) WithRules(rules []guard.Rule) *Builder {
	b.rules = rules
	return b
}

// WithAuditSink enables auditing into the given sink.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	b.config.Audit.Enabled = sink != nil
	return b
}

// WithMetricsEnabled toggles the engine counters.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms toggles the guard resolve latency histogram.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build validates the configuration, wires the stores, and returns the
// Engine. The caller owns the Redis client's lifecycle; Engine.Close only
// releases what Build created.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	sessionStore := b.sessionStore
	if sessionStore == nil {
		if b.redis == nil {
			return nil, errors.New("redis client or session store required")
		}
		store, err := session.NewRedisStore(b.redis, cfg.Store.RedisPrefix, cfg.Store.Channel)
		if err != nil {
			return nil, err
		}
		sessionStore = store
	}

	verificationStore := b.verificationStore
	if verificationStore == nil {
		if b.redis != nil {
			store, err := verification.NewRedisStore(b.redis, cfg.Store.RedisPrefix)
			if err != nil {
				return nil, err
			}
			verificationStore = store
		} else {
			verificationStore = verification.NewMemoryStore()
		}
	}

	machines := make(map[string]*verification.Machine, len(cfg.Verification.Subjects))
	for _, subject := range cfg.Verification.Subjects {
		machine, err := verification.NewMachine(verificationStore, subject)
		if err != nil {
			return nil, err
		}
		machines[subject] = machine
	}

	rules := b.rules
	if rules == nil {
		rules = guard.DefaultRules
	}
	g, err := guard.New(rules)
	if err != nil {
		return nil, err
	}

	credentials := make(map[string]DemoCredential, len(cfg.Account.Credentials))
	for _, cred := range cfg.Account.Credentials {
		credentials[cred.Identifier] = cred
	}

	engine := &Engine{
		config:       cfg,
		store:        sessionStore,
		verification: machines,
		guard:        g,
		nav:          nav.NewResolver(),
		credentials:  credentials,
		metrics:      NewMetrics(cfg.Metrics),
		audit: audit.NewDispatcher(audit.Config{
			Enabled:    cfg.Audit.Enabled,
			BufferSize: cfg.Audit.BufferSize,
			DropIfFull: cfg.Audit.DropIfFull,
		}, b.auditSink),
	}
	engine.initFlows()

	b.built = true

	return engine, nil
}
