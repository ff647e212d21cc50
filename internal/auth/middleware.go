package auth

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/identity-service/internal/events"
	"github.com/spec-kit/identity-service/internal/observability"
)

const identityKey = "auth_identity"

// OutcomeState is the terminal state of one authentication pass.
type OutcomeState int

const (
	// Anonymous means no identity was attached; the request proceeds
	// and downstream guards decide whether that is acceptable.
	Anonymous OutcomeState = iota
	// Authenticated means a live identity was attached.
	Authenticated
)

// Outcome is the explicit result of the authentication stage. The
// fail-open policy lives in this type: every failure inside the stage
// produces an Anonymous outcome, never an error.
type Outcome struct {
	State    OutcomeState
	Identity *Identity
}

// Middleware runs the per-request authentication pass:
// extract -> decode -> resolve -> attach.
type Middleware struct {
	codec      *TokenCodec
	resolver   *IdentityResolver
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// NewMiddleware constructs the stage. Dispatcher and metrics may be nil.
func NewMiddleware(codec *TokenCodec, resolver *IdentityResolver, dispatcher events.Dispatcher, metrics *observability.Metrics, logger *zap.Logger) *Middleware {
	return &Middleware{codec: codec, resolver: resolver, dispatcher: dispatcher, metrics: metrics, logger: logger}
}

// Authenticate is the fiber handler form of the stage. It never
// returns an error and never writes a response; an unauthenticated
// request simply continues without an identity.
func (m *Middleware) Authenticate(c *fiber.Ctx) error {
	outcome := m.run(c)
	if outcome.State == Authenticated {
		c.Locals(identityKey, outcome.Identity)
		m.metrics.RecordAuthOutcome("authenticated")
	} else {
		m.metrics.RecordAuthOutcome("anonymous")
	}
	return c.Next()
}

// run executes one pass and contains every failure, including panics
// from the lookup path. A broken auth path degrades to anonymous, not
// to a failed request.
func (m *Middleware) run(c *fiber.Ctx) (outcome Outcome) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("authentication stage panic", zap.Any("panic", r))
			outcome = Outcome{State: Anonymous}
		}
	}()

	token, found := TokenFromRequest(c)
	if !found {
		return Outcome{State: Anonymous}
	}
	m.logger.Debug("token found", zap.String("path", c.Path()))

	claims, err := m.codec.Decode(token)
	if err != nil {
		m.logger.Warn("token rejected", zap.String("path", c.Path()))
		m.publish(c, events.EventTokenRejected, "")
		return Outcome{State: Anonymous}
	}

	identity, err := m.resolver.Resolve(c.Context(), claims.Subject)
	if err != nil {
		m.logger.Warn("identity unresolved", zap.String("subject", claims.Subject))
		return Outcome{State: Anonymous}
	}

	m.logger.Debug("authenticated",
		zap.Int64("user_id", identity.UserID),
		zap.String("role", string(identity.Role)))
	return Outcome{State: Authenticated, Identity: identity}
}

func (m *Middleware) publish(c *fiber.Ctx, eventType events.EventType, subject string) {
	if m.dispatcher == nil {
		return
	}
	_ = m.dispatcher.Publish(c.Context(), events.NewEvent(eventType, subject, map[string]any{
		"path": c.Path(),
	}))
}

// IdentityFromContext retrieves the identity attached by Authenticate.
func IdentityFromContext(c *fiber.Ctx) (*Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return nil, false
	}
	identity, ok := val.(*Identity)
	return identity, ok
}
