package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/vivek-java-dev/Calorie-Tracker/services"

	"github.com/gin-gonic/gin"
)

type EntryController struct {
	Hub *services.RealtimeHub
}

func NewEntryController(hub *services.RealtimeHub) *EntryController {
	return &EntryController{Hub: hub}
}

// GetEntries returns one day's entries newest-first together with the
// freshly computed day summary.
func (ec *EntryController) GetEntries(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request: date is required",
			"hint":    "Provide date as query parameter (?date=2025-02-01)",
		})
		return
	}

	entries, err := services.NewEntryService().ListByDate(userID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to fetch entries",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"date":    date,
			"summary": services.Summarize(entries),
			"entries": entries,
		},
		"message": "Entries retrieved successfully",
	})
}

// DeleteEntries removes a single entry by id or a whole day by date.
// Exactly one of the two query parameters must be present.
func (ec *EntryController) DeleteEntries(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id := c.Query("id")
	date := c.Query("date")

	if id == "" && date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Either id or date is required"})
		return
	}

	svc := services.NewEntryService()

	if id != "" {
		entryID, err := strconv.ParseUint(id, 10, 64)
		if err != nil || entryID == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid entry id"})
			return
		}

		deleted, err := svc.DeleteByID(userID, uint(entryID))
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "Entry not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		if ec.Hub != nil {
			ec.Hub.EmitEntryDeleted(userID, gin.H{"id": deleted.ID, "date": deleted.Date})
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Entry deleted successfully",
			"data":    deleted,
		})
		return
	}

	fullDate, err := expandShortDate(date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YY-MM-DD"})
		return
	}

	count, err := svc.DeleteByDate(userID, fullDate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if ec.Hub != nil && count > 0 {
		ec.Hub.EmitEntryDeleted(userID, gin.H{"date": fullDate, "deletedCount": count})
	}
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      fmt.Sprintf("Deleted entries for %s", date),
		"deletedCount": count,
	})
}

// expandShortDate accepts the delete route's historical YY-MM-DD short
// form, expanding two-digit years with a fixed "20" century. Full
// YYYY-MM-DD dates pass through, and month/day are zero-padded so the
// result always matches the stored format. The list and create routes
// take full dates only; this asymmetry is kept for client
// compatibility.
func expandShortDate(date string) (string, error) {
	parts := strings.Split(date, "-")
	if len(parts) != 3 {
		return "", fmt.Errorf("invalid date format")
	}
	year := parts[0]

	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 1 || m > 12 {
		return "", fmt.Errorf("invalid month")
	}
	d, err := strconv.Atoi(parts[2])
	if err != nil || d < 1 || d > 31 {
		return "", fmt.Errorf("invalid day")
	}

	switch len(year) {
	case 2:
		year = "20" + year
	case 4:
	default:
		return "", fmt.Errorf("invalid year")
	}
	if _, err := strconv.Atoi(year); err != nil {
		return "", fmt.Errorf("invalid year")
	}

	return fmt.Sprintf("%s-%02d-%02d", year, m, d), nil
}

func userIDFromCtx(c *gin.Context) (uint, bool) {
	v, ok := c.Get("userID")
	if !ok {
		return 0, false
	}
	switch id := v.(type) {
	case uint:
		return id, true
	case int:
		return uint(id), true
	case int64:
		return uint(id), true
	default:
		return 0, false
	}
}
