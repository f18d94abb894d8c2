package http

import (
	"net/http"

	"github.com/cmlabs-hris/leave-management-go/internal/domain/auth"
	"github.com/cmlabs-hris/leave-management-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
)

// actorFromRequest builds the acting user from the verified JWT claims.
func actorFromRequest(r *http.Request) (user.Actor, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return user.Actor{}, auth.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return user.Actor{}, auth.ErrInvalidToken
	}

	role, ok := claims["role"].(string)
	if !ok || role == "" {
		return user.Actor{}, auth.ErrInvalidToken
	}

	return user.Actor{ID: userID, Role: user.Role(role)}, nil
}
