// Package docs registers the OpenAPI document served under /swagger/.
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
        "/v1/doodle/render": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["doodle"],
                "summary": "Render a poll, applying at most one submitted vote",
                "parameters": [
                    {
                        "description": "poll and optional vote",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/http.RenderPollRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.PollResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/v1/doodle/polls/{storage_key}/votes": {
            "get": {
                "produces": ["application/json"],
                "tags": ["doodle"],
                "summary": "List the stored votes of a poll",
                "parameters": [
                    {"type": "string", "description": "poll storage key", "name": "storage_key", "in": "path", "required": true},
                    {"type": "string", "description": "name or time", "name": "sorted_by", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.VoteSetResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "http.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "http.VoteRequest": {
            "type": "object",
            "properties": {
                "form_id": {"type": "string"},
                "fullname": {"type": "string"},
                "selected_indexes": {"type": "array", "items": {"type": "integer"}}
            }
        },
        "http.RenderPollRequest": {
            "type": "object",
            "properties": {
                "markup": {"type": "string"},
                "title": {"type": "string"},
                "options": {"type": "array", "items": {"type": "string"}},
                "vote_type": {"type": "string"},
                "sorted_by": {"type": "string"},
                "is_open": {"type": "boolean"},
                "display_mode": {"type": "string"},
                "is_latest_revision": {"type": "boolean"},
                "vote": {"$ref": "#/definitions/http.VoteRequest"}
            }
        },
        "http.VoterRowResponse": {
            "type": "object",
            "properties": {
                "voter_name": {"type": "string"},
                "marked": {"type": "array", "items": {"type": "boolean"}},
                "voted_at": {"type": "string"},
                "voted_at_display": {"type": "string"}
            }
        },
        "http.PollResponse": {
            "type": "object",
            "properties": {
                "storage_key": {"type": "string"},
                "form_id": {"type": "string"},
                "title": {"type": "string"},
                "options": {"type": "array", "items": {"type": "string"}},
                "counts": {"type": "array", "items": {"type": "integer"}},
                "rows": {"type": "array", "items": {"$ref": "#/definitions/http.VoterRowResponse"}},
                "result_label": {"type": "string"},
                "input_type": {"type": "string"},
                "voting_enabled": {"type": "boolean"},
                "message": {"type": "string"}
            }
        },
        "http.VoteRecordResponse": {
            "type": "object",
            "properties": {
                "voter_name": {"type": "string"},
                "selected_indexes": {"type": "array", "items": {"type": "integer"}},
                "submitted_at": {"type": "integer"},
                "source_address": {"type": "string"}
            }
        },
        "http.VoteSetResponse": {
            "type": "object",
            "properties": {
                "storage_key": {"type": "string"},
                "sorted_by": {"type": "string"},
                "records": {"type": "array", "items": {"$ref": "#/definitions/http.VoteRecordResponse"}}
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
	Title:            "Doodle poll API",
	Description:      "Renders doodle polls and records votes.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
