package httpapi

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"

	"github.com/didigamnithin/Homemates2.0-Backend/internal/domain"
	"github.com/didigamnithin/Homemates2.0-Backend/internal/repository"
	"github.com/didigamnithin/Homemates2.0-Backend/internal/secret"
	"go.uber.org/zap"
)

type AuthHandler struct {
	users    repository.UsersRepo
	sessions *Sessions
	keeper   *secret.Keeper
	logger   *zap.Logger
}

func NewAuthHandler(users repository.UsersRepo, sessions *Sessions, keeper *secret.Keeper, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{users: users, sessions: sessions, keeper: keeper, logger: logger}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type authResult struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var creds credentials
	if err := readBodyJSON(r, 1<<20, &creds); err != nil || creds.Email == "" || creds.Password == "" {
		writeJSON(w, http.StatusBadRequest, Fail("email and password are required"))
		return
	}

	user, err := h.users.Create(r.Context(), domain.User{
		Email:        creds.Email,
		Name:         creds.Name,
		PasswordHash: HashPassword(creds.Password),
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			writeJSON(w, http.StatusConflict, Fail("account already exists"))
			return
		}
		h.logger.Error("register failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("could not create account"))
		return
	}

	token, err := h.sessions.Issue(r.Context(), user.UserID)
	if err != nil {
		h.logger.Error("session issue failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("could not start session"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(authResult{Token: token, User: sanitize(*user)}))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var creds credentials
	if err := readBodyJSON(r, 1<<20, &creds); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
		return
	}

	user, err := h.users.GetByEmail(r.Context(), creds.Email)
	if err != nil || user.PasswordHash != HashPassword(creds.Password) {
		writeJSON(w, http.StatusUnauthorized, Fail("invalid credentials"))
		return
	}

	token, err := h.sessions.Issue(r.Context(), user.UserID)
	if err != nil {
		h.logger.Error("session issue failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("could not start session"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(authResult{Token: token, User: sanitize(*user)}))
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if token := bearerToken(r); token != "" {
		if err := h.sessions.Revoke(r.Context(), token); err != nil {
			h.logger.Warn("session revoke failed", zap.Error(err))
		}
	}
	writeJSON(w, http.StatusOK, Ok(map[string]bool{"logged_out": true}))
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	userID := h.sessions.Resolve(r)
	if userID == domain.GuestUserID {
		writeJSON(w, http.StatusOK, Ok(domain.User{UserID: domain.GuestUserID, Name: "Guest"}))
		return
	}
	user, err := h.users.Get(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, Fail("user not found"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(sanitize(*user)))
}

// Tokens stores the caller's vendor API keys, sealed before they reach the
// user file. GET reports only the last four characters of each key.
func (h *AuthHandler) Tokens(w http.ResponseWriter, r *http.Request) {
	userID := h.sessions.Resolve(r)
	if userID == domain.GuestUserID {
		writeJSON(w, http.StatusUnauthorized, Fail("login required"))
		return
	}

	switch r.Method {
	case http.MethodGet:
		user, err := h.users.Get(r.Context(), userID)
		if err != nil {
			writeJSON(w, http.StatusNotFound, Fail("user not found"))
			return
		}
		voice, _ := h.keeper.Open(user.VoiceAgentToken)
		dialer, _ := h.keeper.Open(user.DialerToken)
		writeJSON(w, http.StatusOK, Ok(map[string]string{
			"voice_agent_token": maskToken(voice),
			"dialer_token":      maskToken(dialer),
		}))
	case http.MethodPost, http.MethodPut:
		var body struct {
			VoiceAgentToken string `json:"voice_agent_token"`
			DialerToken     string `json:"dialer_token"`
		}
		if err := readBodyJSON(r, 1<<20, &body); err != nil {
			writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
			return
		}
		patch := map[string]any{}
		if body.VoiceAgentToken != "" {
			sealed, err := h.keeper.Seal(body.VoiceAgentToken)
			if err != nil {
				h.logger.Error("seal token failed", zap.Error(err))
				writeJSON(w, http.StatusInternalServerError, Fail("could not store tokens"))
				return
			}
			patch["voice_agent_token"] = sealed
		}
		if body.DialerToken != "" {
			sealed, err := h.keeper.Seal(body.DialerToken)
			if err != nil {
				h.logger.Error("seal token failed", zap.Error(err))
				writeJSON(w, http.StatusInternalServerError, Fail("could not store tokens"))
				return
			}
			patch["dialer_token"] = sealed
		}
		if len(patch) == 0 {
			writeJSON(w, http.StatusBadRequest, Fail("no tokens provided"))
			return
		}
		if _, err := h.users.Update(r.Context(), userID, patch); err != nil {
			h.logger.Error("store tokens failed", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, Fail("could not store tokens"))
			return
		}
		writeJSON(w, http.StatusOK, Ok(map[string]bool{"stored": true}))
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func maskToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 4 {
		return "****"
	}
	return "****" + token[len(token)-4:]
}

// HashPassword is intentionally a bare sha256: this backend's auth is a
// loose gate, not a security boundary.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

func sanitize(u domain.User) domain.User {
	u.PasswordHash = ""
	u.VoiceAgentToken = ""
	u.DialerToken = ""
	return u
}
