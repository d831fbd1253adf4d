// Package credentials implements account signup and signin. Passwords
// are bcrypt-hashed; signin establishes a cookie session and hands back
// a short-lived access token.
package credentials

import (
	"context"
	"errors"
	"net/http"
	"regexp"

	userstore "github.com/dalemusser/storefront/internal/app/store/users"
	"github.com/dalemusser/storefront/internal/app/system/auth"
	"github.com/dalemusser/storefront/internal/app/system/httpjson"
	"github.com/dalemusser/storefront/internal/app/system/ratelimit"
	"github.com/dalemusser/storefront/internal/app/system/timeouts"
	"github.com/dalemusser/storefront/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type Handler struct {
	Users      *userstore.Store
	SessionMgr *auth.SessionManager
	Tokens     *auth.TokenMinter
	Limits     *ratelimit.SigninLimiter
	Log        *zap.Logger
}

func NewHandler(db *mongo.Database, sessionMgr *auth.SessionManager, tokens *auth.TokenMinter, logger *zap.Logger) *Handler {
	return &Handler{
		Users:      userstore.New(db),
		SessionMgr: sessionMgr,
		Tokens:     tokens,
		Limits:     ratelimit.NewSigninLimiter(),
		Log:        logger,
	}
}

type signupRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// HandleSignup registers a shopper account. New accounts always get the
// "user" role; admins are provisioned out of band.
// POST /credentials/signup
func (h *Handler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}
	if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.Password == "" {
		httpjson.BadRequest(w, "All fields are required")
		return
	}
	if !emailPattern.MatchString(req.Email) {
		httpjson.BadRequest(w, "Please enter a valid email address")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		h.Log.Error("signup: hash password", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Users.Create(ctx, models.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         "user",
	})
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			httpjson.BadRequest(w, "user already exist")
			return
		}
		h.Log.Error("signup: create user", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	h.Log.Info("user created", zap.String("id", created.ID.Hex()))

	httpjson.Write(w, http.StatusCreated, httpjson.Envelope{
		"message": "user created successfully",
		"id":      created.ID.Hex(),
	})
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleSignin verifies credentials, establishes the session, and
// returns the access-token payload. Unknown email and wrong password
// are indistinguishable to the caller.
// POST /credentials/signin
func (h *Handler) HandleSignin(w http.ResponseWriter, r *http.Request) {
	var req signinRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		httpjson.BadRequest(w, "Email and password are required")
		return
	}

	if ok, reason := h.Limits.Check(r, req.Email); !ok {
		h.Log.Warn("signin rate limited",
			zap.String("ip", ratelimit.ClientIP(r)))
		httpjson.TooManyRequests(w, reason)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.Unauthorized(w, "Invalid credentials")
			return
		}
		h.Log.Error("signin: load user", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		httpjson.Unauthorized(w, "Invalid credentials")
		return
	}

	token, err := h.Tokens.Mint(u.ID.Hex(), u.Role, u.FullName())
	if err != nil {
		h.Log.Error("signin: mint token", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	sessionUser := auth.SessionUser{
		ID:    u.ID.Hex(),
		Name:  u.FullName(),
		Email: u.Email,
		Role:  u.Role,
	}
	if err := h.SessionMgr.SignIn(w, r, sessionUser); err != nil {
		h.Log.Error("signin: establish session", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	h.Limits.ResetEmail(u.Email)

	httpjson.Write(w, http.StatusOK, httpjson.Envelope{
		"message": "Sign-in successful!",
		"data": httpjson.Envelope{
			"id":          u.ID.Hex(),
			"name":        u.FullName(),
			"role":        u.Role,
			"accessToken": token,
		},
	})
}

// HandleSignout clears the cookie session. Signing out without a
// session is not an error.
// POST /credentials/signout
func (h *Handler) HandleSignout(w http.ResponseWriter, r *http.Request) {
	if err := h.SessionMgr.SignOut(w, r); err != nil {
		h.Log.Error("signout: clear session", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	httpjson.Message(w, http.StatusOK, "Signed out successfully")
}
