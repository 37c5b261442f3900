package views

import (
	"embed"
	"net/http"

	"github.com/gofiber/template/html/v2"

	"github.com/ManuelReschke/ShopFox/internal/pkg/catalog"
)

//go:embed *.html layouts/*.html partials/*.html
var FS embed.FS

// Layout is the default page layout passed to c.Render.
const Layout = "layouts/main"

// NewEngine returns the html template engine over the embedded templates.
func NewEngine() *html.Engine {
	engine := html.NewFileSystem(http.FS(FS), ".html")
	engine.AddFunc("price", catalog.FormatPrice)
	return engine
}
