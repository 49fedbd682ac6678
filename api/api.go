// Package api embeds the OpenAPI document served and enforced by the HTTP adapter.
package api

import _ "embed"

//go:embed openapi.json
var OpenAPI []byte
