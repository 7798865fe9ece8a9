package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/chamseddine-glitch/sha/internal/http/signedcookie"
)

const ctxKeyProfileID = "profile_id"

// Profile gives every browser a stable draft-profile identity. Drafts and
// seen-order markers key on this ID, so each admin browser works on its own
// draft.
func Profile(codec *signedcookie.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := codec.GetID(c)
		if !ok {
			id = uuid.NewString()
			codec.Set(c, id)
		}
		c.Set(ctxKeyProfileID, id)
		c.Next()
	}
}

func GetProfileID(c *gin.Context) string {
	if v, ok := c.Get(ctxKeyProfileID); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
