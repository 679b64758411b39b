package controllers

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/vivek-java-dev/Calorie-Tracker/models"
	"github.com/vivek-java-dev/Calorie-Tracker/services"
	"github.com/vivek-java-dev/Calorie-Tracker/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxMealImageBytes = 10 << 20 // 10 MiB

type AnalysisController struct {
	Gemini *services.GeminiService
	Hub    *services.RealtimeHub
}

func NewAnalysisController(gemini *services.GeminiService, hub *services.RealtimeHub) *AnalysisController {
	return &AnalysisController{Gemini: gemini, Hub: hub}
}

type AnalyzeTextInput struct {
	UserText string `json:"user_text"`
	Date     string `json:"date"`
}

// AnalyzeUserText runs a free-text meal or exercise description
// through the analysis model and persists the result as an entry.
func (ac *AnalysisController) AnalyzeUserText(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var input AnalyzeTextInput
	_ = c.ShouldBindJSON(&input)

	userText := strings.TrimSpace(input.UserText)
	if userText == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request: user_text is required and must be a non-empty string",
		})
		return
	}

	date := entryDate(input.Date, c.Query("date"))
	submissionID := uuid.NewString()

	nutrition, err := ac.Gemini.AnalyzeUserText(c.Request.Context(), userText)
	if err != nil {
		ac.respondGatewayError(c, err, "Failed to analyze meal text")
		return
	}

	ac.saveAndRespond(c, userID, nutrition, date, "", submissionID, "Meal analyzed and saved successfully")
}

// AnalyzeMealImage accepts a multipart meal photo, runs it through the
// vision model, archives the image and persists the resulting entry.
func (ac *AnalysisController) AnalyzeMealImage(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	fileHeader, err := c.FormFile("meal_image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request: meal_image file is required",
		})
		return
	}

	if fileHeader.Size > maxMealImageBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"success": false,
			"error":   "File too large. Maximum size is 10MB.",
		})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid file type. Only image files are allowed.",
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	imageData, err := io.ReadAll(io.LimitReader(file, maxMealImageBytes+1))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to read uploaded file"})
		return
	}
	if len(imageData) > maxMealImageBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"success": false,
			"error":   "File too large. Maximum size is 10MB.",
		})
		return
	}

	date := entryDate(c.PostForm("date"), c.Query("date"))
	submissionID := uuid.NewString()

	nutrition, err := ac.Gemini.AnalyzeMealImage(c.Request.Context(), imageData, contentType)
	if err != nil {
		ac.respondGatewayError(c, err, "Failed to analyze meal image")
		return
	}

	imageURL, err := utils.UploadMealImage(imageData, contentType)
	if err != nil {
		// archival is best-effort; the entry is saved without a URL
		log.Printf("meal image upload failed: %v", err)
		imageURL = ""
	}

	ac.saveAndRespond(c, userID, nutrition, date, imageURL, submissionID, "Meal image analyzed and saved successfully")
}

func (ac *AnalysisController) saveAndRespond(c *gin.Context, userID uint, nutrition *services.NutritionData, date, imageURL, submissionID, message string) {
	entry := entryFromNutrition(nutrition, userID, date)
	entry.ImageURL = imageURL

	saved, err := services.NewEntryService().Create(entry)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "Database validation error: " + err.Error(),
			})
			return
		}
		// The analysis succeeded; hand it back so the caller can
		// resubmit without re-billing the model.
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to save entry",
			"data": gin.H{
				"analysis":      nutrition,
				"submission_id": submissionID,
			},
		})
		return
	}

	if ac.Hub != nil {
		ac.Hub.EmitEntryCreated(userID, saved)
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"analysis":      nutrition,
			"saved_entry":   saved,
			"submission_id": submissionID,
		},
		"message": message,
	})
}

func (ac *AnalysisController) respondGatewayError(c *gin.Context, err error, genericMsg string) {
	switch {
	case errors.Is(err, services.ErrGatewayAuth):
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   "Gemini authentication failed (missing/invalid API key). Update GEMINI_API_KEY and restart the server.",
		})
	case errors.Is(err, services.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{
			"success": false,
			"error":   "Gemini request blocked (rate limit or quota). Check your Google AI usage/billing, then try again.",
		})
	default:
		log.Printf("analysis gateway error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   genericMsg,
		})
	}
}

// entryFromNutrition maps the normalized analysis result onto a store
// entry, keeping macros on meals and duration on exercises only.
func entryFromNutrition(n *services.NutritionData, userID uint, date string) *models.Entry {
	entry := &models.Entry{
		UserID:         userID,
		UserText:       n.UserText,
		Name:           n.Name,
		Type:           n.Type,
		Calories:       n.Calories,
		HealthAnalysis: n.HealthAnalysis,
		Date:           date,
	}

	switch n.Type {
	case models.EntryTypeMeal:
		proteins, carbs, fats := n.Proteins, n.Carbs, n.Fats
		entry.Proteins = &proteins
		entry.Carbs = &carbs
		entry.Fats = &fats
		entry.Items = n.Items
	case models.EntryTypeExercise:
		if n.Duration > 0 {
			duration := n.Duration
			entry.Duration = &duration
		}
	}
	return entry
}

func entryDate(candidates ...string) string {
	for _, d := range candidates {
		if d != "" {
			return d
		}
	}
	return time.Now().Format("2006-01-02")
}
