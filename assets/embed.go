package assets

import "embed"

// TemplatesFS contains the login and prompt pages served by authd and imagine.
//
//go:embed templates
var TemplatesFS embed.FS
