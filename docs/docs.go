// Package docs registers the OpenAPI description of the HTTP API with swag.
// It is maintained by hand; keep it in step with the handler annotations.
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
        "/parse/text": {
            "post": {
                "description": "Parse raw credit report text and return the result without storing anything.",
                "consumes": ["application/json", "text/plain"],
                "produces": ["application/json"],
                "tags": ["parse"],
                "summary": "Parse report text",
                "parameters": [
                    {"description": "Report text", "name": "request", "in": "body", "schema": {"$ref": "#/definitions/handler.ParseTextRequest"}},
                    {"type": "string", "description": "Bureau hint for text/plain bodies", "name": "bureau", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Parsing result", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "400": {"description": "Invalid body", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "413": {"description": "Body too large", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "422": {"description": "No text or nothing extractable", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/stats": {
            "get": {
                "description": "Get counts of reports by parse status and quality tier, the average confidence of completed parses, and extracted entity totals.",
                "produces": ["application/json"],
                "tags": ["stats"],
                "summary": "Get report statistics",
                "responses": {
                    "200": {"description": "Aggregate statistics", "schema": {"$ref": "#/definitions/handler.Response"}}
                }
            }
        },
        "/reports": {
            "get": {
                "description": "List uploaded reports, newest first",
                "produces": ["application/json"],
                "tags": ["reports"],
                "summary": "List reports",
                "parameters": [
                    {"type": "integer", "default": 0, "description": "Offset for pagination", "name": "offset", "in": "query"},
                    {"type": "integer", "default": 20, "description": "Limit for pagination (max 100)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "List of reports", "schema": {"$ref": "#/definitions/handler.Response"}}
                }
            },
            "post": {
                "description": "Upload a PDF or TXT credit report and start parsing it in the background",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["reports"],
                "summary": "Upload a report",
                "parameters": [
                    {"type": "file", "description": "Report file (pdf or txt)", "name": "file", "in": "formData", "required": true},
                    {"type": "string", "description": "Bureau hint (experian, equifax, transunion)", "name": "bureau", "in": "formData"}
                ],
                "responses": {
                    "201": {"description": "Report created", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "400": {"description": "Missing or unsupported file", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "413": {"description": "File too large", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "500": {"description": "Upload failed", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/reports/{id}": {
            "get": {
                "description": "Get a report with its parse status",
                "produces": ["application/json"],
                "tags": ["reports"],
                "summary": "Get a report",
                "parameters": [{"type": "string", "description": "Report ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Report", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "400": {"description": "Invalid report ID", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "404": {"description": "Report not found", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/reports/{id}/parse": {
            "post": {
                "description": "Re-run parsing for a report whose last parse completed or failed",
                "produces": ["application/json"],
                "tags": ["reports"],
                "summary": "Re-parse a report",
                "parameters": [{"type": "string", "description": "Report ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "202": {"description": "Parse restarted", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "404": {"description": "Report not found", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "409": {"description": "Parse already in progress", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/reports/{id}/result": {
            "get": {
                "description": "Get the extracted personal info, accounts, negative items, inquiries, scores and a recomputed account summary",
                "produces": ["application/json"],
                "tags": ["reports"],
                "summary": "Get the parsed result",
                "parameters": [{"type": "string", "description": "Report ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Parsing result", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "404": {"description": "Report not found", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "409": {"description": "Report not parsed yet", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/reports/{id}/export": {
            "get": {
                "description": "Download the parsed result as an xlsx workbook (one sheet per category) or a CSV of accounts",
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "text/csv"],
                "tags": ["reports"],
                "summary": "Export the parsed result",
                "parameters": [
                    {"type": "string", "description": "Report ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "default": "xlsx", "description": "Export format (xlsx or csv)", "name": "format", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Exported file", "schema": {"type": "file"}},
                    "400": {"description": "Unsupported format", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "409": {"description": "Report not parsed yet", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/reports/{id}/download": {
            "get": {
                "description": "Get a presigned URL for the original uploaded file",
                "produces": ["application/json"],
                "tags": ["reports"],
                "summary": "Get a download URL",
                "parameters": [{"type": "string", "description": "Report ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Presigned URL", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "404": {"description": "Report not found", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        }
    },
    "definitions": {
        "handler.APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "handler.ErrorResponseBody": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/handler.APIError"},
                "success": {"type": "boolean", "example": false}
            }
        },
        "handler.PagMeta": {
            "type": "object",
            "properties": {
                "limit": {"type": "integer"},
                "offset": {"type": "integer"},
                "total": {"type": "integer"}
            }
        },
        "handler.ParseTextRequest": {
            "type": "object",
            "properties": {
                "bureau": {"type": "string", "example": "experian"},
                "text": {"type": "string"}
            }
        },
        "handler.Response": {
            "type": "object",
            "properties": {
                "data": {},
                "meta": {"$ref": "#/definitions/handler.PagMeta"},
                "success": {"type": "boolean", "example": true}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "CreditScan API",
	Description:      "Credit bureau report upload, parsing and export service.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
