// Admin HTTP handlers used by the admin page.
//
//   - POST /api/admin/add        (multipart or urlencoded form)
//   - POST /api/admin/add-file   (same, kept for the upload form)
//   - POST /api/admin/delete     (JSON {id})
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-table-order/internal/services"
	"github.com/tbourn/go-table-order/internal/utils"
)

// AddMenuItemResponse acknowledges a new menu item.
type AddMenuItemResponse struct {
	OK bool `json:"ok" example:"true"`
	ID uint `json:"id" example:"7"`
}

// DeleteMenuItemRequest is the JSON payload of POST /api/admin/delete. The id
// may be sent as a number or a numeric string.
type DeleteMenuItemRequest struct {
	ID userRef `json:"id" swaggertype:"integer" example:"7"`
}

// AddMenuItem godoc
// @ID          addMenuItem
// @Summary     Add a menu item
// @Description Adds a menu item from a form. `price` tolerates thousands separators ("25 000"). `image` is either an uploaded JPEG/PNG/WebP/GIF file or an image URL.
// @Tags        Admin
// @Accept      multipart/form-data
// @Produce     json
//
// @Param       name         formData  string  true   "Item name"            example(Palov)
// @Param       price        formData  string  true   "Price in so‘m"        example(25000)
// @Param       description  formData  string  false  "Description"
// @Param       category     formData  string  false  "Category"             example(taom)
// @Param       image        formData  file    false  "Image file"
//
// @Success     200  {object} handlers.AddMenuItemResponse
// @Failure     400  {object} handlers.ErrorResponse "Missing or invalid field, unsupported image"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /admin/add [post]
// @Router      /admin/add-file [post]
func (h *Handlers) AddMenuItem(c *gin.Context) {
	rawPrice := strings.TrimSpace(c.PostForm("price"))
	if rawPrice == "" {
		fail(c, http.StatusBadRequest, ErrCodeValidation, "price is required")
		return
	}
	price, err := utils.ParsePrice(rawPrice)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeValidation, fmt.Sprintf("price %q is not a whole non-negative number", rawPrice))
		return
	}

	in := services.NewMenuItem{
		Name:        c.PostForm("name"),
		Price:       price,
		Image:       c.PostForm("image"),
		Description: c.PostForm("description"),
		Category:    c.PostForm("category"),
	}

	fh, err := c.FormFile("image")
	switch {
	case err == nil:
		in.Upload = fh
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	default:
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "malformed multipart body")
		return
	}

	item, err := h.menuSvc.Add(c.Request.Context(), in)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, AddMenuItemResponse{OK: true, ID: item.ID})
}

// DeleteMenuItem godoc
// @ID          deleteMenuItem
// @Summary     Delete a menu item
// @Description Removes a menu item and its uploaded image. Unknown ids succeed without changes.
// @Tags        Admin
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.DeleteMenuItemRequest  true  "Item id"
//
// @Success     200  {object} handlers.OKResponse
// @Failure     400  {object} handlers.ErrorResponse "Missing or invalid id"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /admin/delete [post]
func (h *Handlers) DeleteMenuItem(c *gin.Context) {
	var req DeleteMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	id, err := utils.ParseID(string(req.ID))
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeValidation, "id must be a positive integer")
		return
	}

	if err := h.menuSvc.Delete(c.Request.Context(), id); err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, OKResponse{OK: true})
}
