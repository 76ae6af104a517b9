package preview

import (
	"fmt"
	"html/template"
	"io"
	"net/url"
	"path/filepath"

	"github.com/kamal-hamza/storefront-cli/internal/core/domain"
)

// Resolver maps a preview token to a displayable location
type Resolver func(domain.PreviewToken) (string, error)

type pictureSource struct {
	Media  string
	SrcSet template.Srcset
}

// Locations are produced by our own resolver, so they are trusted and
// file:// URLs survive html/template's URL filtering.
type pictureData struct {
	Title    string
	Sources  []pictureSource
	Fallback template.URL
}

var pictureTmpl = template.Must(template.New("picture").Parse(
	`<picture>
{{- range .Sources}}
  <source media="{{.Media}}" srcset="{{.SrcSet}}">
{{- end}}
  <img src="{{.Fallback}}" alt="Responsive preview">
</picture>`))

var pageTmpl = template.Must(template.Must(pictureTmpl.Clone()).New("page").Parse(
	`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>body{margin:0;background:#f3f4f6}picture img{display:block;width:100%;height:auto}</style>
</head>
<body>
{{template "picture" .}}
</body>
</html>
`))

// RenderPicture writes the <picture> element for p
func RenderPicture(w io.Writer, p domain.ResponsivePreview, resolve Resolver) error {
	data, err := buildPicture(p, resolve)
	if err != nil {
		return err
	}
	return pictureTmpl.Execute(w, data)
}

// RenderPage writes a standalone HTML document showing p
func RenderPage(w io.Writer, p domain.ResponsivePreview, resolve Resolver) error {
	data, err := buildPicture(p, resolve)
	if err != nil {
		return err
	}
	data.Title = "Responsive preview"
	return pageTmpl.Execute(w, data)
}

func buildPicture(p domain.ResponsivePreview, resolve Resolver) (pictureData, error) {
	var data pictureData

	for _, src := range p.Sources {
		loc, err := resolveURL(src, resolve)
		if err != nil {
			return data, err
		}
		data.Sources = append(data.Sources, pictureSource{
			Media:  fmt.Sprintf("(min-width: %dpx)", src.MinViewportWidth),
			SrcSet: template.Srcset(loc),
		})
	}

	loc, err := resolveURL(p.Fallback, resolve)
	if err != nil {
		return data, err
	}
	data.Fallback = template.URL(loc)

	return data, nil
}

// resolveURL turns absolute file paths into file:// URLs
func resolveURL(src domain.PreviewSource, resolve Resolver) (string, error) {
	loc, err := resolve(src.Token)
	if err != nil {
		return "", fmt.Errorf("%s preview: %w", src.Slot, err)
	}
	if filepath.IsAbs(loc) {
		return (&url.URL{Scheme: "file", Path: filepath.ToSlash(loc)}).String(), nil
	}
	return loc, nil
}
