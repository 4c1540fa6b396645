package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/quizforge/internal/dto"
	"github.com/lshigami/quizforge/internal/model"
	"github.com/lshigami/quizforge/internal/repository"
	"github.com/rs/zerolog/log"
)

const userContextKey = "user"

// Middleware resolves the bearer token to an active user and stores it on the
// gin context. Requests without a valid token are rejected with 401.
type Middleware struct {
	tokens   *TokenManager
	userRepo repository.UserRepository
}

func NewMiddleware(tokens *TokenManager, userRepo repository.UserRepository) *Middleware {
	return &Middleware{tokens: tokens, userRepo: userRepo}
}

func (m *Middleware) Authenticate() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			abort(ctx, http.StatusUnauthorized, "Authentication required")
			return
		}
		claims, err := m.tokens.Parse(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			abort(ctx, http.StatusUnauthorized, "Invalid or expired token")
			return
		}
		user, err := m.userRepo.FindByID(claims.UserID)
		if err != nil {
			log.Warn().Err(err).Str("userID", claims.UserID.String()).Msg("Auth: token refers to unknown user")
			abort(ctx, http.StatusUnauthorized, "Invalid or expired token")
			return
		}
		if !user.IsActive {
			abort(ctx, http.StatusUnauthorized, "Account is suspended")
			return
		}
		if user.AwaitingApproval() {
			abort(ctx, http.StatusUnauthorized, "Account is pending approval")
			return
		}
		ctx.Set(userContextKey, user)
		ctx.Next()
	}
}

// RequireRoles allows the request through only for the listed roles.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, ok := CurrentUser(ctx)
		if !ok {
			abort(ctx, http.StatusUnauthorized, "Authentication required")
			return
		}
		for _, r := range roles {
			if user.Role == r {
				ctx.Next()
				return
			}
		}
		abort(ctx, http.StatusForbidden, "Permission denied")
	}
}

// CurrentUser returns the user stored by Authenticate.
func CurrentUser(ctx *gin.Context) (*model.User, bool) {
	v, exists := ctx.Get(userContextKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*model.User)
	return user, ok && user != nil
}

// SetCurrentUser stores user on ctx the same way Authenticate does.
func SetCurrentUser(ctx *gin.Context, user *model.User) {
	ctx.Set(userContextKey, user)
}

func abort(ctx *gin.Context, status int, message string) {
	ctx.AbortWithStatusJSON(status, dto.ErrorResponse{Message: message})
}
