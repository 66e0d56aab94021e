// Package web provides embedded static assets (CSS, JS) served at /static/.
// The admin interface loads TailwindCSS and HTMX from CDN in development;
// production builds vendor the compiled files into static/ before compiling.
package web

import "embed"

// StaticFS embeds the web/static/ directory tree.
//
//go:embed all:static
var StaticFS embed.FS
