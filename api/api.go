// Package api embeds the OpenAPI document served at /openapi.json and used for request validation.
package api

import _ "embed"

//go:embed openapi.json
var Spec []byte
