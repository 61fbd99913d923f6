package authui

import (
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/singlebase/authui/locale"
	"github.com/singlebase/authui/session"
)

// Builder assembles a Controller. Builders are single-use: Build returns an
// error when called twice.
type Builder struct {
	config     Config
	client     Client
	files      FileStore
	logger     zerolog.Logger
	auditSink  AuditSink
	snapshots  *session.Store
	instanceID string

	built bool
}

// New returns a Builder seeded with the default configuration and a no-op
// logger.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
		logger: zerolog.Nop(),
	}
}

// DefaultConfig returns the widget defaults for hosts that want to tweak a
// full Config before WithConfig.
func DefaultConfig() Config {
	return defaultConfig()
}

// WithClient sets the host-supplied authentication client. A missing client
// is detected at Initialize, not here, so the instance can report a
// permanent failed state instead of never existing.
func (b *Builder) WithClient(c Client) *Builder {
	b.client = c
	return b
}

// WithFileStore sets the optional file-storage accessor for photo uploads.
func (b *Builder) WithFileStore(fs FileStore) *Builder {
	b.files = fs
	return b
}

// WithConfig replaces the configuration wholesale with a clone of cfg.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithConfigPatch merges a partial configuration over the current one.
func (b *Builder) WithConfigPatch(patch ConfigPatch) *Builder {
	b.config = patch.apply(b.config)
	return b
}

// WithLogger sets the structured logger. The default discards everything.
func (b *Builder) WithLogger(logger zerolog.Logger) *Builder {
	b.logger = logger
	return b
}

// WithAuditSink sets the destination for action audit events.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithSessionStore enables snapshot persistence for resumable flows.
func (b *Builder) WithSessionStore(store *session.Store) *Builder {
	b.snapshots = store
	return b
}

// WithInstanceID fixes the instance identifier; the default is a random UUID.
func (b *Builder) WithInstanceID(id string) *Builder {
	b.instanceID = id
	return b
}

// Build validates the transition table against the declared view enum and
// assembles the Controller. Configuration usability (the redirect/callback
// rule) is checked by Initialize so a bad config surfaces as a failed
// instance rather than no instance at all.
func (b *Builder) Build() (*Controller, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	if err := validateTransitions(); err != nil {
		return nil, err
	}

	cfg := cloneConfig(b.config)

	id := b.instanceID
	if id == "" {
		id = uuid.NewString()
	}

	ctrl := &Controller{
		id:        id,
		client:    b.client,
		files:     b.files,
		config:    cfg,
		logger:    b.logger.With().Str("component", "authui").Str("instance", id).Logger(),
		audit:     newAuditDispatcher(cfg.Audit, b.auditSink),
		metrics:   NewMetrics(cfg.Metrics),
		snapshots: b.snapshots,
		locales:   locale.NewStore(cfg.Lang, cfg.Locales),
		subs:      map[int]func(Snapshot){},
	}

	b.built = true

	return ctrl, nil
}
