package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/mbiancareli/studio-manager/internal/httperr"
	"github.com/mbiancareli/studio-manager/internal/middleware"
	"github.com/mbiancareli/studio-manager/internal/models"
)

type UserHandler struct {
	db *gorm.DB
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{db: db}
}

// --------- Requests ---------

type UpdateUserRequest struct {
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`

	Address *struct {
		CEP        *string `json:"cep,omitempty"`
		State      *string `json:"state,omitempty"`
		City       *string `json:"city,omitempty"`
		Street     *string `json:"street,omitempty"`
		Number     *string `json:"number,omitempty"`
		Complement *string `json:"complement,omitempty"`
	} `json:"address,omitempty"`
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

type UpdateWhatsAppMessagesRequest struct {
	Confirm    *string `json:"confirm,omitempty"`
	Reschedule *string `json:"reschedule,omitempty"`
	Cancel     *string `json:"cancel,omitempty"`
}

// --------- Handlers ---------

func (h *UserHandler) GetMe(c *gin.Context) {
	userID := middleware.UserID(c)

	var user models.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		httperr.Internal(c, "user_not_found", "Usuário não encontrado.")
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID := middleware.UserID(c)

	var user models.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		httperr.Internal(c, "user_not_found", "Usuário não encontrado.")
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email != user.Email {
			var count int64
			h.db.Model(&models.User{}).Where("email = ? AND id <> ?", email, userID).Count(&count)
			if count > 0 {
				httperr.Conflict(c, "email_already_exists", "E-mail já está em uso.")
				return
			}
			user.Email = email
		}
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Address != nil {
		if req.Address.CEP != nil {
			user.Address.CEP = *req.Address.CEP
		}
		if req.Address.State != nil {
			user.Address.State = *req.Address.State
		}
		if req.Address.City != nil {
			user.Address.City = *req.Address.City
		}
		if req.Address.Street != nil {
			user.Address.Street = *req.Address.Street
		}
		if req.Address.Number != nil {
			user.Address.Number = *req.Address.Number
		}
		if req.Address.Complement != nil {
			user.Address.Complement = *req.Address.Complement
		}
	}

	if err := h.db.Save(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_update_user", "Erro ao atualizar usuário.")
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdatePassword(c *gin.Context) {
	userID := middleware.UserID(c)

	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		httperr.Internal(c, "user_not_found", "Usuário não encontrado.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		httperr.Conflict(c, "wrong_current_password", "Senha atual incorreta.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Erro ao processar senha.")
		return
	}

	user.PasswordHash = string(hashed)
	if err := h.db.Save(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_update_password", "Erro ao atualizar senha.")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *UserHandler) UpdateWhatsAppMessages(c *gin.Context) {
	userID := middleware.UserID(c)

	var req UpdateWhatsAppMessagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		httperr.Internal(c, "user_not_found", "Usuário não encontrado.")
		return
	}

	if req.Confirm != nil {
		user.WhatsAppMessages.Confirm = *req.Confirm
	}
	if req.Reschedule != nil {
		user.WhatsAppMessages.Reschedule = *req.Reschedule
	}
	if req.Cancel != nil {
		user.WhatsAppMessages.Cancel = *req.Cancel
	}

	if err := h.db.Save(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_update_messages", "Erro ao atualizar mensagens.")
		return
	}

	c.JSON(http.StatusOK, user)
}
