// Package docs registers the OpenAPI document with swag so that the Swagger UI
// under /docs serves it.
package docs

import (
	"ftl/api"

	"github.com/swaggo/swag"
)

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Title:            "FTL order lifecycle API",
	Description:      "Freight orders and delivery events recorded on the semantic ledger platform.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  string(api.OpenAPI),
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
