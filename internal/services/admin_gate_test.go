package services

import (
	"context"
	"errors"
	"testing"

	"anime-stream/internal/models"
	"anime-stream/internal/repository/repotest"

	"github.com/stretchr/testify/assert"
)

func TestAdminGate(t *testing.T) {
	ctx := context.Background()

	t.Run("no session", func(t *testing.T) {
		store := repotest.NewStore()
		sessions := newFakeSessions()
		logger, _ := newTestLogger()
		gate := NewAdminGate(sessions, store.Roles(), logger)

		res := gate.Check(ctx, "")
		assert.Equal(t, GateRedirecting, res.State)
		assert.Equal(t, ReasonNoSession, res.Reason)
		assert.Empty(t, sessions.signOuts)
		assert.Empty(t, store.Calls(), "role table is not queried without a session")
	})

	t.Run("session without admin role", func(t *testing.T) {
		store := repotest.NewStore()
		store.SeedRole("user-1", "editor")
		sessions := newFakeSessions()
		sessions.sessions["tok"] = &Session{UserID: "user-1"}
		logger, _ := newTestLogger()
		gate := NewAdminGate(sessions, store.Roles(), logger)

		res := gate.Check(ctx, "tok")
		assert.Equal(t, GateRedirecting, res.State)
		assert.Equal(t, ReasonNotAdmin, res.Reason)
		assert.True(t, res.SignedOut)
		assert.Equal(t, []string{"tok"}, sessions.signOuts)
	})

	t.Run("admin", func(t *testing.T) {
		store := repotest.NewStore()
		store.SeedRole("user-1", models.RoleAdmin)
		sessions := newFakeSessions()
		sessions.sessions["tok"] = &Session{UserID: "user-1"}
		logger, _ := newTestLogger()
		gate := NewAdminGate(sessions, store.Roles(), logger)

		res := gate.Check(ctx, "tok")
		assert.Equal(t, GateAuthorized, res.State)
		assert.Equal(t, "user-1", res.Session.UserID)
		assert.Empty(t, sessions.signOuts)
	})

	t.Run("revocation is seen on the next check", func(t *testing.T) {
		store := repotest.NewStore()
		store.SeedRole("user-1", models.RoleAdmin)
		sessions := newFakeSessions()
		sessions.sessions["tok"] = &Session{UserID: "user-1"}
		logger, _ := newTestLogger()
		gate := NewAdminGate(sessions, store.Roles(), logger)

		assert.Equal(t, GateAuthorized, gate.Check(ctx, "tok").State)

		_, err := store.Roles().Revoke(ctx, "user-1", models.RoleAdmin)
		assert.NoError(t, err)
		assert.Equal(t, GateRedirecting, gate.Check(ctx, "tok").State)
	})

	t.Run("lookup failure redirects without sign-out", func(t *testing.T) {
		store := repotest.NewStore()
		store.Err = errors.New("db down")
		sessions := newFakeSessions()
		sessions.sessions["tok"] = &Session{UserID: "user-1"}
		logger, _ := newTestLogger()
		gate := NewAdminGate(sessions, store.Roles(), logger)

		res := gate.Check(ctx, "tok")
		assert.Equal(t, GateRedirecting, res.State)
		assert.Equal(t, ReasonError, res.Reason)
		assert.Empty(t, sessions.signOuts)
	})
}
