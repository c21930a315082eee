package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/SergioCaMi/Gallery/models"
	"github.com/SergioCaMi/Gallery/security"
)

// pageData is the render-model every template consumes: the page title,
// the records to show, an optional inline message with its color, and
// the session user for the navbar.
type pageData struct {
	Title        string
	Images       []models.Image
	Message      string
	MessageColor string
	User         *models.SessionUser
}

func newPageData(c *gin.Context, title string, images []models.Image) pageData {
	return pageData{
		Title:        title,
		Images:       images,
		MessageColor: "black",
		User:         security.CurrentUser(c.Request),
	}
}

func (p pageData) withMessage(message, color string) pageData {
	p.Message = message
	p.MessageColor = color
	return p
}

// errorData is the render-model of the error page. Message is always a
// user-facing phrase; raw errors stay in the logs.
type errorData struct {
	Message string
	Status  int
	User    *models.SessionUser
}

func renderError(c *gin.Context, status int, message string) {
	c.HTML(status, "error.html", errorData{
		Message: message,
		Status:  status,
		User:    security.CurrentUser(c.Request),
	})
}
