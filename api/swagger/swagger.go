package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Course Compass Planner API",
        "description": "Schedule generation, conflict detection, and degree audit for student course planning",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Catalog", "description": "Course, program, and student lookups"},
        {"name": "Planner", "description": "Schedule generation and saved schedules"},
        {"name": "Audit", "description": "Degree audit and what-if analysis"},
        {"name": "Export", "description": "Schedule envelope round-trip and downloads"},
        {"name": "Advisor", "description": "Canned advisor chat"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/courses": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List catalog courses",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "department", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "pageSize", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/courses/{id}": {
            "get": {
                "tags": ["Catalog"],
                "summary": "Get one course with its sections",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/programs": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List academic programs",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/programs/{id}": {
            "get": {
                "tags": ["Catalog"],
                "summary": "Get one academic program",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/{id}": {
            "get": {
                "tags": ["Catalog"],
                "summary": "Get a student record",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedules/generate": {
            "post": {
                "tags": ["Planner"],
                "summary": "Generate ranked conflict-free schedules",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GenerateScheduleRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "No eligible sections or budget exceeded", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedules/conflicts": {
            "post": {
                "tags": ["Planner"],
                "summary": "Detect conflicts in a section selection",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ConflictCheckRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedules": {
            "get": {
                "tags": ["Planner"],
                "summary": "List saved schedules",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Planner"],
                "summary": "Save a schedule to the session",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SaveScheduleRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedules/{id}": {
            "get": {
                "tags": ["Planner"],
                "summary": "Get one saved schedule",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "patch": {
                "tags": ["Planner"],
                "summary": "Rename a saved schedule",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RenameScheduleRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Planner"],
                "summary": "Delete a saved schedule",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/schedules/{id}/duplicate": {
            "post": {
                "tags": ["Planner"],
                "summary": "Duplicate a saved schedule",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedules/export": {
            "post": {
                "tags": ["Export"],
                "summary": "Serialise a schedule into the portable envelope",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedules/import": {
            "post": {
                "tags": ["Export"],
                "summary": "Rehydrate a schedule from an envelope",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid format", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Unresolved reference", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedules/{id}/download": {
            "post": {
                "tags": ["Export"],
                "summary": "Download a schedule as CSV or PDF",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "Rendered file"}
                }
            }
        },
        "/audit": {
            "post": {
                "tags": ["Audit"],
                "summary": "Run the canonical degree audit for a student",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AuditRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/audit/what-if": {
            "post": {
                "tags": ["Audit"],
                "summary": "Audit a hypothetical plan against any program",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/WhatIfRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/advisor/chat": {
            "post": {
                "tags": ["Advisor"],
                "summary": "Ask the advisor a question",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AdvisorChatRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "GenerateScheduleRequest": {
            "type": "object",
            "required": ["term_id", "course_ids"],
            "properties": {
                "student_id": {"type": "string"},
                "term_id": {"type": "string"},
                "course_ids": {"type": "array", "items": {"type": "string"}},
                "busy_times": {"type": "array", "items": {"type": "object"}},
                "fixed_sections": {"type": "array", "items": {"type": "string"}},
                "filters": {"type": "object"},
                "preferences": {"type": "object"},
                "completed_courses": {"type": "array", "items": {"type": "string"}},
                "max_results": {"type": "integer"}
            }
        },
        "ConflictCheckRequest": {
            "type": "object",
            "required": ["section_ids"],
            "properties": {
                "section_ids": {"type": "array", "items": {"type": "string"}},
                "busy_times": {"type": "array", "items": {"type": "object"}},
                "completed_courses": {"type": "array", "items": {"type": "string"}}
            }
        },
        "SaveScheduleRequest": {
            "type": "object",
            "required": ["schedule"],
            "properties": {
                "schedule": {"type": "object"}
            }
        },
        "RenameScheduleRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string"}
            }
        },
        "AuditRequest": {
            "type": "object",
            "required": ["student_id"],
            "properties": {
                "student_id": {"type": "string"},
                "program_id": {"type": "string"}
            }
        },
        "WhatIfRequest": {
            "type": "object",
            "required": ["program_id"],
            "properties": {
                "program_id": {"type": "string"},
                "student_id": {"type": "string"},
                "completed_courses": {"type": "array", "items": {"type": "string"}}
            }
        },
        "AdvisorChatRequest": {
            "type": "object",
            "required": ["message"],
            "properties": {
                "student_id": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
