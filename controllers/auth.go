package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"snapbook-backend/models"
	"snapbook-backend/services"
	"snapbook-backend/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginInput struct {
	Identifier string `json:"identifier" binding:"required"` // Can be email or phone
	Password   string `json:"password" binding:"required"`
}

type AuthController struct {
	Accounts     services.Accounts
	Sessions     *services.Sessions
	Secret       string
	Expiry       time.Duration
	SecureCookie bool
	Log          *zap.Logger
}

func (a *AuthController) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	newUser := models.User{
		Email:    strings.TrimSpace(input.Email),
		Phone:    strings.TrimSpace(input.Phone),
		Name:     input.Name,
		Password: input.Password, // Will be hashed in BeforeCreate hook
	}
	if err := a.Accounts.Create(c.Request.Context(), &newUser); err != nil {
		if errors.Is(err, services.ErrAccountExists) {
			utils.RespondWithError(c, http.StatusConflict, "Email or phone already registered")
			return
		}
		a.Log.Error("failed to create account", zap.Error(err))
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	token, ok := a.issueToken(c, newUser)
	if !ok {
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful",
		"token":   token,
		"user":    userBody(newUser),
	})
}

func (a *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	user, err := a.Accounts.FindByIdentifier(c.Request.Context(), input.Identifier)
	if err != nil {
		if errors.Is(err, services.ErrAccountNotFound) {
			utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		} else {
			a.Log.Error("account lookup failed", zap.Error(err))
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !user.IsActive || !utils.CheckPasswordHash(input.Password, user.Password) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, ok := a.issueToken(c, user)
	if !ok {
		return
	}

	if err := a.Accounts.TouchLogin(c.Request.Context(), user.ID, time.Now()); err != nil {
		a.Log.Warn("failed to record last login", zap.String("user", user.ID.String()), zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  userBody(user),
	})
}

// Logout closes the photographer's dashboard session and clears the cookie.
func (a *AuthController) Logout(c *gin.Context) {
	a.Sessions.Close(c.GetString(utils.ContextPhotographerID))
	c.SetCookie("token", "", -1, "/", "", a.SecureCookie, true)
	utils.RespondWithMessage(c, http.StatusOK, "Logged out successfully", nil)
}

func (a *AuthController) Me(c *gin.Context) {
	id := c.GetString(utils.ContextPhotographerID)
	if id == "" {
		utils.RespondWithError(c, http.StatusInternalServerError, "Photographer ID not found in context")
		return
	}

	user, err := a.Accounts.FindByID(c.Request.Context(), id)
	if err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": userBody(user)})
}

func (a *AuthController) issueToken(c *gin.Context, user models.User) (string, bool) {
	token, err := utils.GenerateToken(user.ID.String(), a.Secret, a.Expiry)
	if err != nil {
		a.Log.Error("failed to generate token", zap.Error(err))
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return "", false
	}
	c.SetCookie("token", token, int(a.Expiry.Seconds()), "/", "", a.SecureCookie, true)
	return token, true
}

func userBody(u models.User) gin.H {
	return gin.H{
		"id":    u.ID,
		"email": u.Email,
		"name":  u.Name,
		"phone": u.Phone,
	}
}
