package handler

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/stemwithlyn/booking/internal/apiserver/database"
	"github.com/stemwithlyn/booking/internal/auth/jwt"
	"github.com/stemwithlyn/booking/internal/common/cnst"
	"github.com/stemwithlyn/booking/internal/common/dto"
	"github.com/stemwithlyn/booking/internal/common/errorx"
	"github.com/stemwithlyn/booking/internal/i18n"
)

// Auth handles operator login and portal user invites
type Auth struct {
	db         database.Database
	jwtService *jwt.Service
	eh         *errorx.ErrorHandler
	logger     *zap.Logger
}

// NewAuth creates a new authentication handler
func NewAuth(db database.Database, jwtService *jwt.Service, eh *errorx.ErrorHandler, logger *zap.Logger) *Auth {
	return &Auth{
		db:         db,
		jwtService: jwtService,
		eh:         eh,
		logger:     logger.Named("handler.auth"),
	}
}

// Login handles POST /api/auth/login
func (h *Auth) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.eh.HandleError(c, bindError(err))
		return
	}

	user, err := h.db.GetUserByUsername(c.Request.Context(), req.Username)
	if err != nil {
		if errors.Is(err, database.ErrRecordNotFound) {
			h.eh.HandleError(c, errorx.ErrInvalidCredentials)
			return
		}
		h.eh.HandleError(c, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		h.eh.HandleError(c, errorx.ErrInvalidCredentials)
		return
	}

	token, err := h.jwtService.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		h.eh.HandleError(c, err)
		return
	}

	h.logger.Info("user logged in", zap.Uint("user_id", user.ID), zap.String("role", string(user.Role)))
	i18n.RespondOK(c, i18n.SuccessLogin, gin.H{
		"token": token,
		"user":  user,
	})
}

// InviteUser handles POST /api/users. It creates a portal user and links
// the given clients to it.
func (h *Auth) InviteUser(c *gin.Context) {
	var req dto.InviteUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.eh.HandleError(c, bindError(err))
		return
	}
	role := req.Role
	switch role {
	case "":
		role = cnst.RoleClient
	case cnst.RoleClient, cnst.RoleUser:
	default:
		h.eh.HandleError(c, errorx.ValidationError("role must be user or client"))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.eh.HandleError(c, err)
		return
	}
	user := &database.User{
		Name:         req.Name,
		Username:     strings.TrimSpace(req.Username),
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: string(hash),
		Role:         role,
		UserType:     req.UserType,
	}

	err = h.db.Transaction(c.Request.Context(), func(ctx context.Context) error {
		if err := h.db.CreateUser(ctx, user); err != nil {
			return err
		}
		for _, clientID := range req.ClientIDs {
			if err := h.db.LinkClientToUser(ctx, clientID, user.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		h.eh.HandleError(c, err)
		return
	}

	h.logger.Info("portal user invited", zap.Uint("user_id", user.ID), zap.Uints("client_ids", req.ClientIDs))
	i18n.RespondCreated(c, i18n.SuccessUserInvited, gin.H{"user": user})
}
