// Package flash carries one-shot user-facing messages across redirects,
// stored in the session the way the rest of the app stores the login.
package flash

import (
	"encoding/gob"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

func init() {
	// The cookie and redis stores gob-encode session values; gorilla keeps
	// flashes as a []interface{} under the category key.
	gob.Register([]interface{}{})
}

const (
	CategoryError   = "error"
	CategorySuccess = "success"
	CategoryInfo    = "info"
)

var categories = []string{CategoryError, CategorySuccess, CategoryInfo}

// Message is a flashed message with its display category.
type Message struct {
	Category string
	Text     string
}

// Add queues a message for the next rendered page.
func Add(c *gin.Context, category, text string) {
	session := sessions.Default(c)
	session.AddFlash(text, category)
	_ = session.Save()
}

// Take drains all pending messages. Reading flashes mutates the session, so
// it is saved before returning.
func Take(c *gin.Context) []Message {
	session := sessions.Default(c)
	var out []Message
	for _, category := range categories {
		for _, f := range session.Flashes(category) {
			if text, ok := f.(string); ok {
				out = append(out, Message{Category: category, Text: text})
			}
		}
	}
	_ = session.Save()
	return out
}

// Error flashes an error message and redirects.
func Error(c *gin.Context, location, text string) {
	Add(c, CategoryError, text)
	c.Redirect(http.StatusFound, location)
}

// Success flashes a success message and redirects.
func Success(c *gin.Context, location, text string) {
	Add(c, CategorySuccess, text)
	c.Redirect(http.StatusFound, location)
}

// Info flashes an informational message and redirects.
func Info(c *gin.Context, location, text string) {
	Add(c, CategoryInfo, text)
	c.Redirect(http.StatusFound, location)
}
