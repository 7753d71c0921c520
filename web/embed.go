package web

import "embed"

// TemplatesFS embeds the default email template.
//
//go:embed templates/*.html
var TemplatesFS embed.FS
