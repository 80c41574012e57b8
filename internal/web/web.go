// Package web embeds the HTML pages served to customers and operators: the
// mini-app opened from the bot and the admin page.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var files embed.FS

// Template names.
const (
	MiniAppPage = "index.html"
	AdminPage   = "admin.html"
)

// Templates parses the embedded pages. It panics if a template is malformed,
// which can only happen at build time.
func Templates() *template.Template {
	return template.Must(template.New("").ParseFS(files, "templates/*.html"))
}

// MiniAppData is rendered into the mini-app page.
type MiniAppData struct {
	Table string
}

// AdminData is rendered into the admin page.
type AdminData struct {
	BotUsername string
}
