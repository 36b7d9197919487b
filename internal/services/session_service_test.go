package services

import (
	"testing"
	"time"

	"stash/internal/models"
	"stash/internal/testutil"
)

func TestSessionCreate(t *testing.T) {
	t.Run("returns_token_and_stores_row", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSessionService(db)

		user := testutil.CreateTestUser(t, db)
		token, err := svc.Create(user)
		testutil.AssertNoError(t, err)

		if token == "" {
			t.Fatal("expected non-empty session token")
		}

		var count int64
		db.Model(&models.Session{}).Where("user_id = ?", user.ID).Count(&count)
		if count != 1 {
			t.Errorf("expected 1 session row, got %d", count)
		}
	})

	t.Run("multiple_sessions_per_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSessionService(db)

		user := testutil.CreateTestUser(t, db)
		first, err := svc.Create(user)
		testutil.AssertNoError(t, err)
		second, err := svc.Create(user)
		testutil.AssertNoError(t, err)

		// Logging in twice keeps both sessions alive independently.
		if _, err := svc.Resolve(first); err != nil {
			t.Errorf("first session should still resolve: %v", err)
		}
		if _, err := svc.Resolve(second); err != nil {
			t.Errorf("second session should resolve: %v", err)
		}
	})
}

func TestSessionResolve(t *testing.T) {
	t.Run("valid_token", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSessionService(db)

		user := testutil.CreateTestUser(t, db)
		token, err := svc.Create(user)
		testutil.AssertNoError(t, err)

		resolved, err := svc.Resolve(token)
		testutil.AssertNoError(t, err)
		if resolved.ID != user.ID {
			t.Errorf("expected user %d, got %d", user.ID, resolved.ID)
		}
	})

	t.Run("garbage_token", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSessionService(db)

		_, err := svc.Resolve("not-a-token")
		testutil.AssertAppError(t, err, "UNAUTHORIZED")
	})

	t.Run("destroyed_session", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSessionService(db)

		user := testutil.CreateTestUser(t, db)
		token, err := svc.Create(user)
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, svc.Destroy(token))

		// A signed token whose row is gone must not resolve even
		// though its embedded expiry is still in the future.
		_, err = svc.Resolve(token)
		testutil.AssertAppError(t, err, "UNAUTHORIZED")
	})

	t.Run("expired_row_is_reaped", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSessionService(db)

		user := testutil.CreateTestUser(t, db)
		token, err := svc.Create(user)
		testutil.AssertNoError(t, err)

		db.Model(&models.Session{}).Where("user_id = ?", user.ID).
			Update("expires_at", time.Now().Add(-time.Minute))

		_, err = svc.Resolve(token)
		testutil.AssertAppError(t, err, "SESSION_EXPIRED")

		var count int64
		db.Model(&models.Session{}).Where("user_id = ?", user.ID).Count(&count)
		if count != 0 {
			t.Errorf("expected expired session row to be reaped, found %d", count)
		}
	})

	t.Run("inactive_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSessionService(db)

		user := testutil.CreateTestUser(t, db)
		token, err := svc.Create(user)
		testutil.AssertNoError(t, err)

		db.Model(user).Update("is_active", false)

		_, err = svc.Resolve(token)
		testutil.AssertAppError(t, err, "UNAUTHORIZED")
	})
}

func TestSessionDestroy(t *testing.T) {
	t.Run("removes_row", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSessionService(db)

		user := testutil.CreateTestUser(t, db)
		token, err := svc.Create(user)
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, svc.Destroy(token))

		var count int64
		db.Model(&models.Session{}).Where("user_id = ?", user.ID).Count(&count)
		if count != 0 {
			t.Errorf("expected 0 session rows after destroy, got %d", count)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSessionService(db)

		user := testutil.CreateTestUser(t, db)
		token, err := svc.Create(user)
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, svc.Destroy(token))
		testutil.AssertNoError(t, svc.Destroy(token))
	})

	t.Run("garbage_token_is_noop", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSessionService(db)

		testutil.AssertNoError(t, svc.Destroy("not-a-token"))
	})
}
