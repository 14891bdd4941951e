package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Vitrine Booking API",
        "description": "Availability, calendar and booking flow service for themed showcase sites",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Availability", "description": "Slot and calendar reads"},
        {"name": "Booking", "description": "Three step booking flow"},
        {"name": "Export", "description": "Printable opening hours"},
        {"name": "Admin", "description": "Operational endpoints"}
    ],
    "paths": {
        "/sites/{site}/availability": {
            "get": {
                "tags": ["Availability"],
                "summary": "Available slots for one day",
                "parameters": [
                    {"name": "site", "in": "path", "type": "string", "required": true},
                    {"name": "date", "in": "query", "type": "string", "required": true, "description": "YYYY-MM-DD"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid date"},
                    "404": {"description": "Unknown site"}
                }
            }
        },
        "/sites/{site}/calendar": {
            "get": {
                "tags": ["Availability"],
                "summary": "Month grid with day availability",
                "parameters": [
                    {"name": "site", "in": "path", "type": "string", "required": true},
                    {"name": "month", "in": "query", "type": "string", "description": "YYYY-MM, defaults to the current month"}
                ],
                "responses": {
                    "200": {"description": "42 day cells, Monday first", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid month"},
                    "404": {"description": "Unknown site"}
                }
            }
        },
        "/sites/{site}/schedule/export": {
            "get": {
                "tags": ["Export"],
                "summary": "Export the weekly opening hours",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "site", "in": "path", "type": "string", "required": true},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"], "default": "csv"}
                ],
                "responses": {
                    "200": {"description": "Rendered schedule document"},
                    "400": {"description": "Unknown format"},
                    "404": {"description": "Unknown site"}
                }
            }
        },
        "/sites/{site}/booking-sessions": {
            "post": {
                "tags": ["Booking"],
                "summary": "Open a booking session for a site",
                "parameters": [
                    {"name": "site", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "201": {"description": "Session created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown site"}
                }
            }
        },
        "/booking-sessions/{id}": {
            "get": {
                "tags": ["Booking"],
                "summary": "Current state of a booking session",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown session"},
                    "410": {"description": "Session expired"}
                }
            }
        },
        "/booking-sessions/{id}/date": {
            "post": {
                "tags": ["Booking"],
                "summary": "Pick the appointment date",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SelectDateRequest"}}
                ],
                "responses": {
                    "200": {"description": "Session advanced to the time step"},
                    "400": {"description": "Invalid payload"},
                    "409": {"description": "Date not selectable or wrong step"}
                }
            }
        },
        "/booking-sessions/{id}/time": {
            "post": {
                "tags": ["Booking"],
                "summary": "Pick the appointment time",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SelectTimeRequest"}}
                ],
                "responses": {
                    "200": {"description": "Slot recorded"},
                    "400": {"description": "Invalid payload"},
                    "409": {"description": "Slot unavailable or wrong step"}
                }
            }
        },
        "/booking-sessions/{id}/confirm": {
            "post": {
                "tags": ["Booking"],
                "summary": "Advance the session one step",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Session advanced"},
                    "409": {"description": "Step requirements not met"}
                }
            }
        },
        "/booking-sessions/{id}/back": {
            "post": {
                "tags": ["Booking"],
                "summary": "Move the session one step backwards",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Session moved"},
                    "409": {"description": "Already at the first step"}
                }
            }
        },
        "/booking-sessions/{id}/submit": {
            "post": {
                "tags": ["Booking"],
                "summary": "Submit the booking with contact details",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubmitRequest"}}
                ],
                "responses": {
                    "200": {"description": "Booking accepted"},
                    "400": {"description": "Invalid contact details"},
                    "409": {"description": "Slot no longer available"},
                    "502": {"description": "Submission collaborator failed"}
                }
            }
        },
        "/admin/sites/reload": {
            "post": {
                "tags": ["Admin"],
                "summary": "Reload site configurations from disk",
                "responses": {
                    "200": {"description": "Reloaded site keys and revision"},
                    "500": {"description": "Configuration directory unreadable"}
                }
            }
        }
    },
    "definitions": {
        "SelectDateRequest": {
            "type": "object",
            "required": ["date"],
            "properties": {
                "date": {"type": "string", "example": "2026-09-10"}
            }
        },
        "SelectTimeRequest": {
            "type": "object",
            "required": ["time"],
            "properties": {
                "time": {"type": "string", "example": "10:00"}
            }
        },
        "SubmitRequest": {
            "type": "object",
            "required": ["name", "email"],
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"}
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
