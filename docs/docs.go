// Package docs holds the swaggo-generated API description. Regenerate with
// `swag init -g cmd/contactd/docs.go`; edit the annotations, not this file.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "contactd maintainers"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/directory/contacts": {
            "get": {
                "produces": ["application/json"],
                "summary": "List directory entries in insertion order",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "summary": "Insert or overwrite a contact",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/directory/contacts/{name}": {
            "get": {
                "produces": ["application/json"],
                "summary": "Look up the email bound to a name",
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/names/{name}": {
            "get": {
                "produces": ["application/json"],
                "summary": "Resolve a logical name to an object ref",
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/objects/{handle}/invoke": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "summary": "Dynamically invoke an operation by name with typed arguments",
                "responses": {
                    "200": {"description": "Result or exception envelope"},
                    "400": {"description": "Bad Request"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/observers": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "summary": "Subscribe a webhook observer",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "contactd API",
	Description:      "HTTP API for the remote contact directory: naming, typed and dynamic dispatch, observer subscriptions.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
