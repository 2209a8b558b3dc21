// Package docs holds the Swagger description served under /swagger/.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/repos/{owner}/{name}/commits/{sha}": {
            "get": {
                "description": "Derives the display-ready view of a commit. author/committer, when present, override the logins in the payload.",
                "produces": ["application/json"],
                "summary": "Show one commit",
                "parameters": [
                    {"type": "string", "description": "Repository owner", "name": "owner", "in": "path", "required": true},
                    {"type": "string", "description": "Repository name", "name": "name", "in": "path", "required": true},
                    {"type": "string", "description": "Commit SHA", "name": "sha", "in": "path", "required": true},
                    {"type": "string", "description": "Known author login", "name": "author", "in": "query"},
                    {"type": "string", "description": "Known committer login", "name": "committer", "in": "query"},
                    {"type": "boolean", "description": "Ignore the stored snapshot", "name": "refresh", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Envelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Envelope"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/response.Envelope"}}
                }
            }
        },
        "/repos/{owner}/{name}/commits/{sha}/files/{kind}": {
            "get": {
                "produces": ["application/json"],
                "summary": "List changed files of one kind",
                "parameters": [
                    {"type": "string", "description": "Repository owner", "name": "owner", "in": "path", "required": true},
                    {"type": "string", "description": "Repository name", "name": "name", "in": "path", "required": true},
                    {"type": "string", "description": "Commit SHA", "name": "sha", "in": "path", "required": true},
                    {"type": "string", "description": "added, removed or modified", "name": "kind", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Envelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Envelope"}}
                }
            }
        }
    },
    "definitions": {
        "response.Envelope": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {},
                "error": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "commit-view API",
	Description:      "Display-ready views of single GitHub commits.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
