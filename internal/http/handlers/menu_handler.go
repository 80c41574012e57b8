// Menu HTTP handlers.
//
//   - GET /api/menu   (list, optional category filter and search, ETag support)
package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-table-order/internal/domain"
	"github.com/tbourn/go-table-order/internal/media"
)

// MenuItemView is the public projection of a menu item. Absent optional
// fields are rendered as empty strings, never null.
type MenuItemView struct {
	ID          uint   `json:"id"          example:"1"`
	Name        string `json:"name"        example:"Palov"`
	Price       int64  `json:"price"       example:"25000"`
	Image       string `json:"image"       example:"/uploads/1718000000-palov.jpg"`
	Description string `json:"description" example:"Toshkent palovi"`
	Category    string `json:"category"    example:"taom"`
}

func toMenuView(it domain.MenuItem) MenuItemView {
	return MenuItemView{
		ID:          it.ID,
		Name:        it.Name,
		Price:       it.Price,
		Image:       media.URL(it.Image),
		Description: it.Description,
		Category:    it.Category,
	}
}

// ListMenu godoc
// @ID          listMenu
// @Summary     List the menu
// @Description Returns every menu item in insertion order. `cat` restricts the list to one category; `q` ranks items by name, category and description and drops non-matching ones.
// @Tags        Menu
// @Produce     json
//
// @Param       cat            query   string  false "Category filter"             example(ichimlik)
// @Param       q              query   string  false "Search query"                example(palov)
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"  example(W/\"menu:3:1718000000\")
//
// @Success     200  {array}  handlers.MenuItemView
// @Header      200  {string} ETag "Weak ETag for the current menu"
// @Success     304  {string} string "Not Modified"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /menu [get]
func (h *Handlers) ListMenu(c *gin.Context) {
	ctx := c.Request.Context()
	category := strings.TrimSpace(c.Query("cat"))
	query := strings.TrimSpace(c.Query("q"))

	// ETag pre-check (best effort).
	if v, err := h.menuSvc.Version(ctx); err == nil {
		etag := fmt.Sprintf(`W/"menu:%s:%s:%s"`, v, url.QueryEscape(category), url.QueryEscape(query))
		c.Header("ETag", etag)
		if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
			c.Status(http.StatusNotModified)
			return
		}
	}

	items, err := h.menuSvc.Search(ctx, query, category)
	if err != nil {
		failErr(c, err)
		return
	}

	out := make([]MenuItemView, 0, len(items))
	for _, it := range items {
		out = append(out, toMenuView(it))
	}
	ok(c, http.StatusOK, out)
}
