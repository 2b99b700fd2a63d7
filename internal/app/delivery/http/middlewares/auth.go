package middlewares

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"appointmed-service/internal/pkg/constvars"
	"appointmed-service/internal/pkg/exceptions"
	"appointmed-service/internal/pkg/utils"
)

// Authenticate verifies the bearer token and resolves the caller's role from
// the role assignment store. A uid without an assignment is rejected: roles
// come only from the assignment collection, never from a fallback identity
// check.
func (m *Middlewares) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get(constvars.HeaderAuthorization)
		if authHeader == "" {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		uid, err := utils.ParseJWT(token, m.InternalConfig.JWT.Secret)
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenInvalidOrExpired(err))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		assignment, err := m.RoleRepository.FindByUID(ctx, uid)
		if err != nil {
			if err == context.DeadlineExceeded {
				utils.BuildErrorResponse(m.Log, w, exceptions.ErrServerDeadlineExceeded(err))
				return
			}
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}
		if assignment == nil {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrRoleAssignmentMissing(fmt.Errorf("uid %s has no role assignment", uid)))
			return
		}

		reqCtx := context.WithValue(r.Context(), constvars.CONTEXT_UID_KEY, uid)
		reqCtx = context.WithValue(reqCtx, constvars.CONTEXT_ROLE_KEY, assignment.Role)
		next.ServeHTTP(w, r.WithContext(reqCtx))
	})
}

// RequireRole gates a route to the given roles. It must run after
// Authenticate.
func (m *Middlewares) RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, _ := r.Context().Value(constvars.CONTEXT_ROLE_KEY).(string)
			for _, allowed := range roles {
				if role == allowed {
					next.ServeHTTP(w, r)
					return
				}
			}
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrRoleAssignmentMissing(fmt.Errorf("role %q not allowed", role)))
		})
	}
}
