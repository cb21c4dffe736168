package handler

import (
	"net/http"

	"krishiconnect/internal/i18n"

	"github.com/gin-gonic/gin"
)

// I18nHandler exposes the string table and voice prompts
type I18nHandler struct {
	catalog *i18n.Catalog
}

func NewI18nHandler(catalog *i18n.Catalog) *I18nHandler {
	return &I18nHandler{catalog: catalog}
}

func (h *I18nHandler) ListLanguages(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Languages())
}

func (h *I18nHandler) GetTable(c *gin.Context) {
	lang := c.Param("lang")
	if !h.catalog.Supports(lang) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Unsupported language"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"language":   lang,
		"voice_lang": h.catalog.VoiceLang(lang),
		"strings":    h.catalog.Table(lang),
	})
}

// GetVoicePrompt resolves a prompt key; lang defaults to English.
func (h *I18nHandler) GetVoicePrompt(c *gin.Context) {
	key := c.Param("key")
	if !h.catalog.Has(key) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Unknown prompt"})
		return
	}
	lang := c.DefaultQuery("lang", i18n.FallbackLanguage)
	c.JSON(http.StatusOK, gin.H{
		"key":        key,
		"text":       h.catalog.T(lang, key),
		"voice_lang": h.catalog.VoiceLang(lang),
	})
}

// RegisterI18nRoutes registers the public string table routes
func (h *I18nHandler) RegisterI18nRoutes(rg *gin.RouterGroup) {
	rg.GET("/i18n/languages", h.ListLanguages)
	rg.GET("/i18n/:lang", h.GetTable)
	rg.GET("/voice/prompts/:key", h.GetVoicePrompt)
}
