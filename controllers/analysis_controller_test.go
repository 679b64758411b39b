package controllers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/vivek-java-dev/Calorie-Tracker/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func analysisRouter() *gin.Engine {
	return testRouter(func(api *gin.RouterGroup) {
		ctrl := NewAnalysisController(services.NewGeminiService(), nil)
		api.POST("/analyze-user-text", ctrl.AnalyzeUserText)
		api.POST("/analyze-meal-image", ctrl.AnalyzeMealImage)
	})
}

func TestAnalyzeUserTextRequiresText(t *testing.T) {
	r := analysisRouter()

	for _, payload := range []string{``, `{}`, `{"user_text":""}`, `{"user_text":"   "}`, `{"date":"2026-01-24"}`} {
		req := httptest.NewRequest(http.MethodPost, "/api/analyze-user-text", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		w, body := doRequest(t, r, req)

		require.Equal(t, http.StatusBadRequest, w.Code, "payload %q", payload)
		require.Equal(t, false, body["success"])
		require.Contains(t, body["error"], "user_text")
	}
}

func multipartImage(t *testing.T, field, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	return buf, mw.FormDataContentType()
}

func TestAnalyzeMealImageRequiresFile(t *testing.T) {
	r := analysisRouter()

	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	require.NoError(t, mw.WriteField("date", "2026-01-24"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/analyze-meal-image", buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w, body := doRequest(t, r, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, body["error"], "meal_image file is required")
}

func TestAnalyzeMealImageRejectsNonImageType(t *testing.T) {
	r := analysisRouter()

	buf, contentType := multipartImage(t, "meal_image", "notes.txt", "text/plain", []byte("not an image"))
	req := httptest.NewRequest(http.MethodPost, "/api/analyze-meal-image", buf)
	req.Header.Set("Content-Type", contentType)
	w, body := doRequest(t, r, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, body["error"], "Only image files are allowed")
}

func TestAnalyzeMealImageRejectsOversizedFile(t *testing.T) {
	r := analysisRouter()

	oversized := make([]byte, maxMealImageBytes+1)
	buf, contentType := multipartImage(t, "meal_image", "huge.jpg", "image/jpeg", oversized)
	req := httptest.NewRequest(http.MethodPost, "/api/analyze-meal-image", buf)
	req.Header.Set("Content-Type", contentType)
	w, body := doRequest(t, r, req)

	require.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	require.Contains(t, body["error"], "File too large")
}
