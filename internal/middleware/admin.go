package middleware

import (
	"net/url"
	"strings"
	"time"

	"anime-stream/internal/services"
	"anime-stream/internal/utils"

	"github.com/gofiber/fiber/v2"
)

const sessionLocal = "session"

// Gate runs the admin check on every request it guards.
type Gate struct {
	gate       *services.AdminGate
	cookieName string
	entryURL   string
}

func NewGate(gate *services.AdminGate, cookieName, entryURL string) *Gate {
	return &Gate{
		gate:       gate,
		cookieName: cookieName,
		entryURL:   entryURL,
	}
}

// SessionToken reads the bearer token, falling back to the session cookie.
func SessionToken(c *fiber.Ctx, cookieName string) string {
	if auth := c.Get(fiber.HeaderAuthorization); auth != "" {
		parts := strings.SplitN(auth, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	return c.Cookies(cookieName)
}

// CurrentSession returns the session stored by RequireAdmin or RequireAdminPage.
func CurrentSession(c *fiber.Ctx) *services.Session {
	session, _ := c.Locals(sessionLocal).(*services.Session)
	return session
}

func (g *Gate) Token(c *fiber.Ctx) string {
	return SessionToken(c, g.cookieName)
}

// ClearSession expires the session cookie on the client.
func (g *Gate) ClearSession(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     g.cookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// RequireAdmin guards JSON endpoints.
func (g *Gate) RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		res := g.gate.Check(c.UserContext(), g.Token(c))
		switch {
		case res.State == services.GateAuthorized:
			c.Locals(sessionLocal, res.Session)
			return c.Next()
		case res.Reason == services.ReasonNotAdmin:
			g.ClearSession(c)
			return utils.ErrorResponse(c, fiber.StatusForbidden, "Access denied")
		case res.Reason == services.ReasonError:
			return utils.ErrorResponse(c, fiber.StatusServiceUnavailable, "Unable to verify session")
		default:
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Authorization required")
		}
	}
}

// RequireAdminPage guards HTML pages: anything but an authorized admin is
// sent to the auth entry point.
func (g *Gate) RequireAdminPage() fiber.Handler {
	return func(c *fiber.Ctx) error {
		res := g.gate.Check(c.UserContext(), g.Token(c))
		if res.State == services.GateAuthorized {
			c.Locals(sessionLocal, res.Session)
			return c.Next()
		}

		notice := ""
		switch res.Reason {
		case services.ReasonNotAdmin:
			g.ClearSession(c)
			notice = string(res.Reason)
		case services.ReasonError:
			notice = string(res.Reason)
		}
		return c.Redirect(WithNotice(g.entryURL, notice), fiber.StatusSeeOther)
	}
}

// WithNotice appends a notice code to target's query string.
func WithNotice(target, notice string) string {
	if notice == "" {
		return target
	}
	u, err := url.Parse(target)
	if err != nil {
		return target
	}
	q := u.Query()
	q.Set("notice", notice)
	u.RawQuery = q.Encode()
	return u.String()
}
