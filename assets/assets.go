// Package assets embeds the files shipped with the binaries.
package assets

import "embed"

const (
	CatalogFile       = "catalog.yaml"
	EmailTemplatesDir = "templates/email"
)

//go:embed catalog.yaml all:templates
var FS embed.FS
