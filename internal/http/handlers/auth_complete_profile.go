package handlers

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	httpx "github.com/neogulmap/neogulmap/internal/http"
	"github.com/neogulmap/neogulmap/internal/store/core"
	"github.com/neogulmap/neogulmap/internal/util"
)

// CompleteProfileRequest es el body de POST /v1/auth/signup.
type CompleteProfileRequest struct {
	Nickname     string `json:"nickname"`
	ProfileImage string `json:"profileImage,omitempty"`
}

// CompleteProfile es el alta explícita de perfil tras el primer login social:
// setea el nickname (y opcionalmente la imagen) y con eso la cuenta pasa a
// perfil completo. El token identifica al usuario pero el estado del perfil
// se relee del store: un token emitido antes del alta sigue siendo válido y
// no puede "des-completar" nada.
func (h *Handlers) CompleteProfile(w http.ResponseWriter, r *http.Request) {
	claims := h.authenticate(w, r)
	if claims == nil {
		return
	}

	var req CompleteProfileRequest
	if !httpx.ReadJSON(w, r, &req) {
		return
	}
	nickname := strings.TrimSpace(req.Nickname)
	if nickname == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "nickname requerido", 1701)
		return
	}
	if len([]rune(nickname)) > 30 {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "nickname demasiado largo", 1702)
		return
	}

	user, err := h.Store.GetUserByID(r.Context(), claims.Subject)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "user_not_found", "usuario no encontrado", 1703)
			return
		}
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "no se pudo leer el usuario", 1704)
		return
	}

	user.Nickname = &nickname
	if img := strings.TrimSpace(req.ProfileImage); img != "" {
		user.ProfileImage = &img
	}
	updated, err := h.Store.UpdateUser(r.Context(), user)
	if err != nil {
		if errors.Is(err, core.ErrConflict) {
			httpx.WriteError(w, http.StatusConflict, "nickname_taken", "nickname ya en uso", 1705)
			return
		}
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "no se pudo actualizar el perfil", 1706)
		return
	}

	h.Log.Info("profile_completed",
		zap.String("email", util.MaskEmail(updated.Email)),
		zap.String("user_id", updated.ID),
	)
	httpx.WriteJSON(w, http.StatusOK, loginSuccess{
		Success:        true,
		Message:        "perfil completado",
		RequiresSignup: false,
		User:           publicUser(updated),
	})
}
