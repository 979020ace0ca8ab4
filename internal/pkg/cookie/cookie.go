package cookie

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	AccessTokenCookieName = "access_token"
	CartSessionCookieName = "cart_session"
)

func SetTokenCookie(c *gin.Context, accessToken string, expiry time.Duration) {
	c.SetCookie(
		AccessTokenCookieName,
		accessToken,
		int(expiry.Seconds()),
		"/",
		"",
		false,
		true, // HttpOnly
	)
}

func ClearTokenCookie(c *gin.Context) {
	c.SetCookie(AccessTokenCookieName, "", -1, "/", "", false, true)
}

func GetAccessToken(c *gin.Context) string {
	token, _ := c.Cookie(AccessTokenCookieName)
	return token
}

// CartSessionID returns the cart session key for this browser, minting a new
// one when absent. The cart lives for the UI session only, so the cookie is
// a session cookie (no Max-Age).
func CartSessionID(c *gin.Context) uuid.UUID {
	if raw, err := c.Cookie(CartSessionCookieName); err == nil {
		if id, perr := uuid.Parse(raw); perr == nil {
			return id
		}
	}

	id := uuid.New()
	c.SetCookie(CartSessionCookieName, id.String(), 0, "/", "", false, true)
	return id
}
