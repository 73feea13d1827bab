package portal

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/kokomatto/portalauth/guard"
	"github.com/kokomatto/portalauth/nav"
	"github.com/kokomatto/portalauth/session"
	"github.com/kokomatto/portalauth/verification"
)

// Audience identifies which portal a shell wraps.
type Audience uint8

const (
	// AudiencePublic is the storefront seen before login.
	AudiencePublic Audience = iota
	// AudienceShopper is the logged-in shopper experience.
	AudienceShopper
	// AudienceAdmin is the back office.
	AudienceAdmin
	// AudienceAffiliate is the partner portal shared by affiliates and
	// merchants.
	AudienceAffiliate
)

// String returns the audience name.
func (a Audience) String() string {
	switch a {
	case AudienceShopper:
		return "shopper"
	case AudienceAdmin:
		return "admin"
	case AudienceAffiliate:
		return "affiliate"
	default:
		return "public"
	}
}

// ErrNotMounted is returned by operations that need a mounted shell.
var ErrNotMounted = errors.New("shell not mounted")

// View is the snapshot a shell hands its render callback. Overlay is nil
// for shells without a verification machine; Blocked mirrors the overlay's
// blocking flag after dismissal is applied. The content under a blocking
// overlay stays mounted; Blocked is a presentation rule.
type View struct {
	Session session.Session
	Menu    nav.Menu
	Path    string
	Overlay *verification.Overlay
	Blocked bool
}

// RenderFunc receives every view the shell produces. It runs synchronously
// on the goroutine that triggered the change and must not block.
type RenderFunc func(View)

// Shell is one mounted portal surface.
type Shell struct {
	id       string
	audience Audience
	store    session.Store
	guard    *guard.Guard
	nav      *nav.Resolver
	machine  *verification.Machine
	render   RenderFunc

	mu          sync.Mutex
	mounted     bool
	unsubscribe func()
	path        string
	dismissed   verification.Status
	hasDismiss  bool
}

// NewShell creates a Shell. machine is optional; pass nil for surfaces
// without a verification gate.
func NewShell(
	audience Audience,
	store session.Store,
	g *guard.Guard,
	resolver *nav.Resolver,
	machine *verification.Machine,
	render RenderFunc,
) (*Shell, error) {
	if store == nil {
		return nil, errors.New("session store required")
	}
	if g == nil {
		return nil, errors.New("guard required")
	}
	if resolver == nil {
		return nil, errors.New("nav resolver required")
	}
	if render == nil {
		return nil, errors.New("render callback required")
	}

	return &Shell{
		id:       uuid.NewString(),
		audience: audience,
		store:    store,
		guard:    g,
		nav:      resolver,
		machine:  machine,
		render:   render,
	}, nil
}

// ID returns the shell's instance ID.
func (s *Shell) ID() string {
	return s.id
}

// Audience returns which portal this shell wraps.
func (s *Shell) Audience() Audience {
	return s.audience
}

// Mount subscribes to the session store and renders the initial view.
// Mounting twice is an error.
func (s *Shell) Mount(ctx context.Context) error {
	s.mu.Lock()
	if s.mounted {
		s.mu.Unlock()
		return errors.New("shell already mounted")
	}
	s.mounted = true
	s.unsubscribe = s.store.Subscribe(func(sess session.Session) {
		s.refresh(context.Background(), sess)
	})
	s.mu.Unlock()

	sess, err := s.store.Get(ctx)
	if err != nil {
		return err
	}
	s.refresh(ctx, sess)
	return nil
}

// Unmount releases the store subscription. Unmount is idempotent; after it
// returns no further renders occur from change notices.
func (s *Shell) Unmount() {
	s.mu.Lock()
	unsubscribe := s.unsubscribe
	s.mounted = false
	s.unsubscribe = nil
	s.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

// Navigate applies the route guard to path. Allowed navigations update the
// shell's current path and re-render; denied ones leave it untouched and
// return the redirect decision for the caller's router.
func (s *Shell) Navigate(ctx context.Context, path string) (guard.Decision, error) {
	s.mu.Lock()
	mounted := s.mounted
	s.mu.Unlock()
	if !mounted {
		return guard.Decision{}, ErrNotMounted
	}

	sess, err := s.store.Get(ctx)
	if err != nil {
		return guard.Decision{}, err
	}

	decision := s.guard.Resolve(path, sess)
	if !decision.Allow {
		return decision, nil
	}

	s.mu.Lock()
	s.path = path
	s.mu.Unlock()

	s.refresh(ctx, sess)
	return decision, nil
}

// Path returns the shell's current path.
func (s *Shell) Path() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.path
}

// DismissOverlay closes a dismissible overlay until the verification
// status next changes. Blocking overlays cannot be dismissed.
func (s *Shell) DismissOverlay(ctx context.Context) error {
	s.mu.Lock()
	mounted := s.mounted
	s.mu.Unlock()
	if !mounted {
		return ErrNotMounted
	}
	if s.machine == nil {
		return nil
	}

	status, err := s.machine.Status(ctx)
	if err != nil {
		return err
	}
	if verification.OverlayFor(status).Blocking {
		return errors.New("overlay is not dismissible")
	}

	s.mu.Lock()
	s.dismissed = status
	s.hasDismiss = true
	s.mu.Unlock()

	sess, err := s.store.Get(ctx)
	if err != nil {
		return err
	}
	s.refresh(ctx, sess)
	return nil
}

// refresh rebuilds the view and invokes the render callback. Change
// notices arriving after Unmount are dropped.
func (s *Shell) refresh(ctx context.Context, sess session.Session) {
	s.mu.Lock()
	if !s.mounted {
		s.mu.Unlock()
		return
	}
	path := s.path
	dismissed := s.dismissed
	hasDismiss := s.hasDismiss
	s.mu.Unlock()

	view := View{
		Session: sess,
		Menu:    s.nav.Resolve(sess.Role),
		Path:    path,
	}

	if s.machine != nil {
		status, err := s.machine.Status(ctx)
		if err != nil {
			// Unreachable verification store reads as pending, the same
			// fail-safe an absent record gets.
			status = verification.StatusPending
		}
		overlay := verification.OverlayFor(status)
		if !hasDismiss || dismissed != status {
			view.Overlay = &overlay
			view.Blocked = overlay.Blocking
		}
	}

	s.render(view)
}
