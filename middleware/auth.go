package middleware

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
)

// RevocationPolicy decides, from decoded token claims, whether a verified
// token should still be rejected. Returning true revokes the request.
type RevocationPolicy func(claims jwt.MapClaims) bool

// AdminOnly revokes every token that does not carry a true isAdmin claim.
// There is no stateful revocation list; the role check is the whole policy.
func AdminOnly(claims jwt.MapClaims) bool {
	isAdmin, _ := claims["isAdmin"].(bool)
	return !isAdmin
}

// publicRoute is one entry of the open surface: the request is let through
// untouched when its path matches and its method is listed (nil = any).
type publicRoute struct {
	methods []string
	path    *regexp.Regexp
}

var readMethods = []string{http.MethodGet, http.MethodOptions}

var publicRoutes = []publicRoute{
	{methods: readMethods, path: regexp.MustCompile(`^/public/uploads(.*)`)},
	{methods: readMethods, path: regexp.MustCompile(`^/api/v1/products(.*)`)},
	{methods: readMethods, path: regexp.MustCompile(`^/api/v1/categories(.*)`)},
	{methods: nil, path: regexp.MustCompile(`^/api/v1/users(.*)`)},
}

func isPublic(method, path string) bool {
	for _, route := range publicRoutes {
		if !route.path.MatchString(path) {
			continue
		}
		if route.methods == nil {
			return true
		}
		for _, m := range route.methods {
			if m == method {
				return true
			}
		}
	}
	return false
}

// AuthGuard verifies the bearer token of every request outside the public
// surface: HS256 signature and expiry first, then the revocation policy on
// the decoded claims. The secret is injected once at construction.
func AuthGuard(secret []byte, isRevoked RevocationPolicy) gin.HandlerFunc {
	return func(c *gin.Context) {
		if isPublic(c.Request.Method, c.Request.URL.Path) {
			c.Next()
			return
		}

		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token required"})
			return
		}
		tokenString = strings.TrimPrefix(tokenString, "Bearer ")

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		if isRevoked != nil && isRevoked(claims) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token has been revoked"})
			return
		}

		c.Set("userId", claims["userId"])
		c.Set("isAdmin", claims["isAdmin"])
		c.Next()
	}
}
