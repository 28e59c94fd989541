// Package web embeds the HTML templates and static assets served by the
// HTTP layer.
package web

import "embed"

// TemplatesFS holds the page and partial templates.
//
//go:embed templates/*.html
var TemplatesFS embed.FS

// StaticFS holds the css/js assets.
//
//go:embed static/*
var StaticFS embed.FS
