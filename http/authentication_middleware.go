package http

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/orderly-app/orderly"
	octx "github.com/orderly-app/orderly/context"
	"github.com/orderly-app/orderly/jsonweb"
	"github.com/orderly-app/orderly/kit/platform/errors"
	kithttp "github.com/orderly-app/orderly/kit/transport/http"
)

// AuthenticationHandler authenticates incoming requests from their
// bearer token and attaches the principal to the request context.
//
// Anonymous requests pass through without a principal: the tenancy
// waterfall treats a missing principal as a missed signal, and handlers
// that need a user enforce it themselves.
type AuthenticationHandler struct {
	kithttp.ErrorHandler
	log *zap.Logger

	tokens *jsonweb.TokenParser
	users  orderly.UserService

	handler http.Handler
}

// NewAuthenticationHandler wraps next with token authentication.
func NewAuthenticationHandler(log *zap.Logger, tokens *jsonweb.TokenParser, users orderly.UserService, next http.Handler) *AuthenticationHandler {
	return &AuthenticationHandler{
		log:     log,
		tokens:  tokens,
		users:   users,
		handler: next,
	}
}

func (h *AuthenticationHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	v, ok := bearerToken(r)
	if !ok {
		// Anonymous request.
		h.handler.ServeHTTP(w, r)
		return
	}

	token, err := h.tokens.Parse(v)
	if err != nil {
		h.HandleHTTPError(ctx, err, w)
		return
	}
	userID, err := token.UserID()
	if err != nil {
		h.HandleHTTPError(ctx, err, w)
		return
	}

	u, err := h.users.FindUserByID(ctx, userID)
	if err != nil {
		h.log.Debug("Token user not found", zap.String("user_id", userID.String()))
		h.HandleHTTPError(ctx, &errors.Error{
			Code: errors.EUnauthorized,
			Msg:  "token user no longer exists",
		}, w)
		return
	}

	ctx = octx.SetPrincipal(ctx, u)
	h.handler.ServeHTTP(w, r.WithContext(ctx))
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	return strings.TrimPrefix(header, prefix), true
}
