package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/guardtag/GuardTag/internal/pkg/session"
	"github.com/guardtag/GuardTag/internal/pkg/usercontext"
)

// UserContextMiddleware resolves the session once per request and
// stores the complete user context in Locals, so handlers never touch
// the session store directly.
func UserContextMiddleware(c *fiber.Ctx) error {
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		// On error: treat as anonymous
		usercontext.SetUserContext(c, usercontext.UserContext{})
		return c.Next()
	}

	userID := sess.Get(usercontext.KeyUserID)
	if userID == nil {
		usercontext.SetUserContext(c, usercontext.UserContext{})
		return c.Next()
	}

	username, _ := sess.Get(usercontext.KeyUsername).(string)
	isAdmin, _ := sess.Get(usercontext.KeyIsAdmin).(bool)

	uid, ok := userID.(uint)
	if !ok {
		usercontext.SetUserContext(c, usercontext.UserContext{})
		return c.Next()
	}

	usercontext.SetUserContext(c, usercontext.UserContext{
		UserID:     uid,
		Username:   username,
		IsLoggedIn: true,
		IsAdmin:    isAdmin,
	})

	return c.Next()
}
