package controllers

import (
	"log"
	"net/http"

	"github.com/vivek-java-dev/Calorie-Tracker/config"
	"github.com/vivek-java-dev/Calorie-Tracker/models"
	"github.com/vivek-java-dev/Calorie-Tracker/services"
	"github.com/vivek-java-dev/Calorie-Tracker/utils"

	"github.com/gin-gonic/gin"
)

type GoogleLoginInput struct {
	IDToken string `json:"idToken"`
}

// GoogleLogin exchanges a Google sign-in ID token for an API token,
// creating the user on first login.
func GoogleLogin(c *gin.Context) {
	var input GoogleLoginInput
	if err := c.ShouldBindJSON(&input); err != nil || input.IDToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "idToken is required"})
		return
	}

	claims, err := services.NewGoogleAuthService().VerifyIDToken(c.Request.Context(), input.IDToken)
	if err != nil {
		log.Printf("Google token verification failed: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid Google token"})
		return
	}

	var user models.User
	err = config.DB.Where("email = ?", claims.Email).First(&user).Error
	if err != nil {
		user = models.User{
			Email:    claims.Email,
			Name:     claims.Name,
			Avatar:   claims.Picture,
			GoogleID: claims.Sub,
		}
		if err := config.DB.Create(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
			return
		}
	}

	token, err := utils.GenerateJWT(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}
