// Page handlers render the embedded HTML pages.
//
//   - GET /        (mini-app, ?table=<label>)
//   - GET /admin   (admin page)
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-table-order/internal/domain"
	"github.com/tbourn/go-table-order/internal/web"
)

// Pages renders the HTML pages. The engine must have web.Templates()
// installed via SetHTMLTemplate.
type Pages struct {
	BotUsername string
}

// MiniApp renders the customer mini-app for the table in the query string.
// A missing or blank table renders the unknown-table label.
func (p Pages) MiniApp(c *gin.Context) {
	table := strings.TrimSpace(c.Query("table"))
	if table == "" {
		table = domain.UnknownTable
	}
	c.HTML(http.StatusOK, web.MiniAppPage, web.MiniAppData{Table: table})
}

// Admin renders the menu management page.
func (p Pages) Admin(c *gin.Context) {
	c.HTML(http.StatusOK, web.AdminPage, web.AdminData{BotUsername: p.BotUsername})
}
