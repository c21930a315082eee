package controllers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SergioCaMi/Gallery/models"
	"github.com/SergioCaMi/Gallery/security"
	"github.com/SergioCaMi/Gallery/services"
	"github.com/SergioCaMi/Gallery/store"
)

// ImageController serves the gallery pages. The store backend is picked
// at startup; handlers never know which one they talk to.
type ImageController struct {
	Store   store.ImageStore
	Fetcher *services.Fetcher
}

func NewImageController(s store.ImageStore, f *services.Fetcher) *ImageController {
	return &ImageController{Store: s, Fetcher: f}
}

// Home renders the gallery, oldest records first.
func (ic *ImageController) Home(c *gin.Context) {
	images, err := ic.Store.List(c.Request.Context())
	if err != nil {
		slog.Error("Failed to list images", "error", err)
		renderError(c, http.StatusInternalServerError, "Something went wrong. Please try again later.")
		return
	}
	c.HTML(http.StatusOK, "home.html", newPageData(c, "Home", images))
}

// NewImageForm shows the create form together with the current gallery.
func (ic *ImageController) NewImageForm(c *gin.Context) {
	images, err := ic.Store.List(c.Request.Context())
	if err != nil {
		slog.Error("Failed to list images", "error", err)
		renderError(c, http.StatusInternalServerError, "Something went wrong. Please try again later.")
		return
	}
	c.HTML(http.StatusOK, "add_image.html", newPageData(c, "New Image", images))
}

// CreateImage runs the ingestion pipeline: duplicate check, remote
// fetch, best-effort enrichment, persist. The fetch is a hard
// prerequisite; a failed palette or EXIF pass is not.
func (ic *ImageController) CreateImage(c *gin.Context) {
	ctx := c.Request.Context()
	title := c.PostForm("title")
	url := c.PostForm("urlImagen")

	// Duplicate guard first: a known URL must not cost a fetch.
	existing, err := ic.Store.GetByURL(ctx, url)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		slog.Error("Duplicate check failed", "url", url, "error", err)
		renderError(c, http.StatusInternalServerError, "The image could not be added.")
		return
	}
	if existing != nil {
		ic.renderForm(c, http.StatusBadRequest,
			fmt.Sprintf("The image %q is already in the archive.", title), "red")
		return
	}

	data, err := ic.Fetcher.Fetch(ctx, url)
	if err != nil {
		slog.Error("Failed to fetch image", "url", url, "error", err)
		renderError(c, http.StatusInternalServerError, "The image could not be downloaded.")
		return
	}

	img := models.Image{
		Title:       title,
		URL:         url,
		Date:        parseDate(c.PostForm("date")),
		Description: c.PostForm("description"),
		Colors:      services.Palette(data),
		Exif:        services.ExifTags(data),
	}
	if user := security.CurrentUser(c.Request); user != nil {
		img.Owner = models.Owner{Name: user.Name, Email: user.Email}
	}

	if _, err := ic.Store.Create(ctx, img); err != nil {
		if errors.Is(err, store.ErrDuplicateURL) {
			// Lost the race against a concurrent create of the same URL.
			ic.renderForm(c, http.StatusBadRequest,
				fmt.Sprintf("The image %q is already in the archive.", title), "red")
			return
		}
		slog.Error("Failed to save image", "url", url, "error", err)
		renderError(c, http.StatusInternalServerError, "The image could not be saved.")
		return
	}

	ic.renderForm(c, http.StatusCreated,
		fmt.Sprintf("The image %q has been added successfully.", title), "green")
}

// renderForm re-renders the create form with a refreshed gallery and an
// inline message.
func (ic *ImageController) renderForm(c *gin.Context, status int, message, color string) {
	images, err := ic.Store.List(c.Request.Context())
	if err != nil {
		slog.Error("Failed to list images", "error", err)
		renderError(c, http.StatusInternalServerError, "Something went wrong. Please try again later.")
		return
	}
	c.HTML(status, "add_image.html", newPageData(c, "New Image", images).withMessage(message, color))
}

// ViewImage renders the detail page for one record.
func (ic *ImageController) ViewImage(c *gin.Context) {
	img, err := ic.Store.GetByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		renderError(c, http.StatusNotFound, "Image not found")
		return
	}
	if err != nil {
		slog.Error("Failed to load image", "id", c.Param("id"), "error", err)
		renderError(c, http.StatusInternalServerError, "The image could not be loaded.")
		return
	}
	c.HTML(http.StatusOK, "view_image.html", newPageData(c, "View", []models.Image{*img}))
}

// EditImageForm shows the edit form preloaded with the record's current
// values.
func (ic *ImageController) EditImageForm(c *gin.Context) {
	img, err := ic.Store.GetByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		renderError(c, http.StatusNotFound, "Image not found")
		return
	}
	if err != nil {
		slog.Error("Failed to load image", "id", c.Param("id"), "error", err)
		renderError(c, http.StatusInternalServerError, "The image could not be loaded.")
		return
	}
	c.HTML(http.StatusOK, "edit_image.html", newPageData(c, "Edit", []models.Image{*img}))
}

// UpdateImage saves the editable fields. Colors, EXIF, the source URL
// and the owner snapshot are write-once and never touched here.
func (ic *ImageController) UpdateImage(c *gin.Context) {
	upd := models.ImageUpdate{}
	if title, ok := c.GetPostForm("title"); ok {
		upd.Title = &title
	}
	if description, ok := c.GetPostForm("description"); ok {
		upd.Description = &description
	}
	if date := parseDate(c.PostForm("date")); !date.IsZero() {
		upd.Date = &date
	}

	_, err := ic.Store.Update(c.Request.Context(), c.PostForm("id"), upd)
	if errors.Is(err, store.ErrNotFound) {
		renderError(c, http.StatusNotFound, "Image not found")
		return
	}
	if err != nil {
		slog.Error("Failed to update image", "id", c.PostForm("id"), "error", err)
		renderError(c, http.StatusInternalServerError, "The image could not be updated.")
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// DeleteImage removes a record and re-renders the gallery with a
// confirmation message.
func (ic *ImageController) DeleteImage(c *gin.Context) {
	deleted, err := ic.Store.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		slog.Error("Failed to delete image", "id", c.Param("id"), "error", err)
		renderError(c, http.StatusInternalServerError, "The image could not be deleted.")
		return
	}
	if !deleted {
		renderError(c, http.StatusNotFound, "Image not found")
		return
	}

	images, err := ic.Store.List(c.Request.Context())
	if err != nil {
		slog.Error("Failed to list images", "error", err)
		renderError(c, http.StatusInternalServerError, "Something went wrong. Please try again later.")
		return
	}
	c.HTML(http.StatusOK, "home.html",
		newPageData(c, "Home", images).withMessage("The image has been deleted successfully.", "green"))
}

// DownloadImage proxies the original bytes from the source URL with an
// attachment disposition.
func (ic *ImageController) DownloadImage(c *gin.Context) {
	ctx := c.Request.Context()

	img, err := ic.Store.GetByID(ctx, c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		renderError(c, http.StatusNotFound, "Image not found")
		return
	}
	if err != nil {
		slog.Error("Failed to load image", "id", c.Param("id"), "error", err)
		renderError(c, http.StatusInternalServerError, "The image could not be loaded.")
		return
	}

	data, err := ic.Fetcher.Fetch(ctx, img.URL)
	if err != nil {
		slog.Error("Failed to download image", "url", img.URL, "error", err)
		renderError(c, http.StatusInternalServerError, "The image could not be downloaded.")
		return
	}

	filename := fmt.Sprintf("image-%d.jpg", time.Now().UnixMilli())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "image/jpeg", data)
}

// NotFound is the catch-all for unmatched routes.
func (ic *ImageController) NotFound(c *gin.Context) {
	renderError(c, http.StatusNotFound, "Page not found")
}

// parseDate accepts the form's date input and, for round-trips of
// previously rendered values, RFC 3339. Anything else is a zero time,
// which the store replaces with the current time on create.
func parseDate(s string) time.Time {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
