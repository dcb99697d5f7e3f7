package handlers

import (
	"net/http"

	"github.com/asume21/Codedswitchmonatize-sub012/internal/theory"
	"github.com/gin-gonic/gin"
)

type keyInfo struct {
	Name  string      `json:"name"`
	Root  string      `json:"root"`
	Mode  theory.Mode `json:"mode"`
	Notes []string    `json:"notes"`
}

type genreInfo struct {
	Name      string            `json:"name"`
	Templates []theory.Template `json:"templates"`
}

// ListKeys returns every supported key with its scale
func ListKeys(c *gin.Context) {
	keys := theory.SupportedKeys()
	out := make([]keyInfo, 0, len(keys))
	for _, k := range keys {
		notes, err := k.Notes()
		if err != nil {
			// SupportedKeys only returns table entries
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		out = append(out, keyInfo{Name: k.String(), Root: k.Root, Mode: k.Mode, Notes: notes})
	}
	c.JSON(http.StatusOK, gin.H{"keys": out})
}

// ListGenres returns the genres and their progression templates
func ListGenres(c *gin.Context) {
	names := theory.Genres()
	out := make([]genreInfo, 0, len(names))
	for _, name := range names {
		out = append(out, genreInfo{Name: name, Templates: theory.Templates(name)})
	}
	c.JSON(http.StatusOK, gin.H{
		"default": theory.DefaultGenre,
		"genres":  out,
	})
}
