package services

import (
	"context"

	"anime-stream/internal/models"
	"anime-stream/internal/repository"

	"github.com/sirupsen/logrus"
)

// GateState is the outcome of Check; the check itself runs synchronously
// inside each guarded request.
type GateState string

const (
	GateAuthorized  GateState = "authorized"
	GateRedirecting GateState = "redirecting"
)

// GateReason values double as the notice codes shown on the auth page.
type GateReason string

const (
	ReasonNone      GateReason = ""
	ReasonNoSession GateReason = "no_session"
	ReasonNotAdmin  GateReason = "access_denied"
	ReasonError     GateReason = "check_failed"
)

type GateResult struct {
	State   GateState
	Reason  GateReason
	Session *Session
	// SignedOut is set when the gate terminated the session itself.
	SignedOut bool
}

// AdminGate decides whether a request may enter the admin back office.
// Nothing is cached: each Check asks the auth service and the role table.
type AdminGate struct {
	sessions SessionProvider
	roles    repository.UserRoleRepository
	logger   *logrus.Logger
}

func NewAdminGate(sessions SessionProvider, roles repository.UserRoleRepository, logger *logrus.Logger) *AdminGate {
	return &AdminGate{
		sessions: sessions,
		roles:    roles,
		logger:   logger,
	}
}

func (g *AdminGate) Check(ctx context.Context, token string) GateResult {
	session, err := g.sessions.GetSession(ctx, token)
	if err != nil {
		g.logger.WithError(err).Error("Failed to look up session")
		return GateResult{State: GateRedirecting, Reason: ReasonError}
	}
	if session == nil {
		return GateResult{State: GateRedirecting, Reason: ReasonNoSession}
	}

	isAdmin, err := g.roles.HasRole(ctx, session.UserID, models.RoleAdmin)
	if err != nil {
		g.logger.WithError(err).WithField("user_id", session.UserID).Error("Failed to check admin role")
		return GateResult{State: GateRedirecting, Reason: ReasonError, Session: session}
	}

	if !isAdmin {
		g.logger.WithField("user_id", session.UserID).Warn("Admin access denied, signing out")
		if err := g.sessions.SignOut(ctx, token); err != nil {
			g.logger.WithError(err).WithField("user_id", session.UserID).Warn("Sign-out after denied access failed")
		}
		return GateResult{State: GateRedirecting, Reason: ReasonNotAdmin, Session: session, SignedOut: true}
	}

	return GateResult{State: GateAuthorized, Session: session}
}

// Logout ends the session at the auth service.
func (g *AdminGate) Logout(ctx context.Context, token string) error {
	return g.sessions.SignOut(ctx, token)
}
