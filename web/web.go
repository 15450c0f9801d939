// Package web 打包网页模板，编译进二进制
package web

import (
	"embed"
	"html/template"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	// 投票状态：1赞 -1踩 0没投
	"vote": func(v *int8) int {
		if v == nil {
			return 0
		}
		return int(*v)
	},
	"date": func(t time.Time) string {
		return t.Format("2006-01-02")
	},
}

// Templates 解析全部模板，名字就是文件名，例如 list.html
func Templates() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
}
