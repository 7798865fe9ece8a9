package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/chamseddine-glitch/sha/internal/auth"
	"github.com/chamseddine-glitch/sha/internal/http/signedcookie"
)

const ctxKeyAdminSession = "admin_session"

// AdminSession resolves the signed session cookie against the session store.
// Absent or expired sessions just leave the context unauthenticated; handlers
// behind RequireAdmin reject from there.
func AdminSession(codec *signedcookie.Codec, sessions *auth.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := codec.GetID(c)
		if !ok {
			c.Next()
			return
		}

		sess, err := sessions.Get(c.Request.Context(), id)
		if err != nil || sess == nil {
			codec.Clear(c)
			c.Next()
			return
		}

		c.Set(ctxKeyAdminSession, sess)
		c.Next()
	}
}

// CurrentSession retrieves the authenticated admin session, if any.
func CurrentSession(c *gin.Context) (*auth.Session, bool) {
	v, ok := c.Get(ctxKeyAdminSession)
	if !ok {
		return nil, false
	}
	sess, ok := v.(*auth.Session)
	return sess, ok && sess != nil
}
