// Package swagger serves the OpenAPI document for the hostel API.
package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Hostel Management API",
        "description": "REST API for hostel administration: students, rooms, attendance, fees, complaints, leaves and announcements.",
        "version": "1.0"
    },
    "basePath": "/api",
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Authenticate and obtain a token",
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Create an account",
                "security": [{"BearerAuth": []}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}
            }
        },
        "/auth/change-password": {
            "post": {
                "tags": ["auth"],
                "summary": "Change the caller's password",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/students": {
            "get": {"tags": ["students"], "summary": "List students", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["students"], "summary": "Register a student", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}}}
        },
        "/students/me": {
            "get": {"tags": ["students"], "summary": "Fetch the caller's student profile", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["students"], "summary": "Update the caller's contact details", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/students/{id}": {
            "get": {"tags": ["students"], "summary": "Fetch a student", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"tags": ["students"], "summary": "Update a student", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["students"], "summary": "Delete a student", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/rooms": {
            "get": {"tags": ["rooms"], "summary": "List rooms with occupancy status", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["rooms"], "summary": "Create a room", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}}}
        },
        "/rooms/{id}": {
            "get": {"tags": ["rooms"], "summary": "Fetch a room", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["rooms"], "summary": "Update a room", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["rooms"], "summary": "Delete a room", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/room-requests": {
            "get": {"tags": ["room-requests"], "summary": "List all room requests", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["room-requests"], "summary": "Request a room assignment", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}}}
        },
        "/room-requests/{id}": {
            "delete": {"tags": ["room-requests"], "summary": "Cancel the caller's pending room request", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}
        },
        "/room-requests/{id}/approve": {
            "put": {"tags": ["room-requests"], "summary": "Approve a room request", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/room-requests/{id}/reject": {
            "put": {"tags": ["room-requests"], "summary": "Reject a room request", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/attendance/checkin": {
            "post": {"tags": ["attendance"], "summary": "Check in for today", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/attendance/checkout": {
            "post": {"tags": ["attendance"], "summary": "Check out for today", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/attendance/status": {
            "get": {"tags": ["attendance"], "summary": "Fetch the caller's attendance status for today", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/attendance/today": {
            "get": {"tags": ["attendance"], "summary": "List today's attendance for every student", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/fees": {
            "get": {"tags": ["fees"], "summary": "List all fees", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["fees"], "summary": "Charge a student for a month", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}}}
        },
        "/fees/generate": {
            "post": {"tags": ["fees"], "summary": "Generate monthly fees for all students", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/fees/{id}": {
            "put": {"tags": ["fees"], "summary": "Update a fee record", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/fees/{id}/toggle": {
            "put": {"tags": ["fees"], "summary": "Toggle a fee between paid and pending", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/complaints": {
            "get": {"tags": ["complaints"], "summary": "List all complaints", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["complaints"], "summary": "File a complaint", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}}}
        },
        "/complaints/{id}/resolve": {
            "put": {"tags": ["complaints"], "summary": "Resolve a complaint", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/leaves": {
            "get": {"tags": ["leaves"], "summary": "List all leave applications", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["leaves"], "summary": "Apply for leave", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}}}
        },
        "/leaves/{id}": {
            "delete": {"tags": ["leaves"], "summary": "Delete a leave application", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/leaves/{id}/approve": {
            "put": {"tags": ["leaves"], "summary": "Approve a leave application", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/leaves/{id}/reject": {
            "put": {"tags": ["leaves"], "summary": "Reject a leave application", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/announcements": {
            "get": {"tags": ["announcements"], "summary": "List announcements", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["announcements"], "summary": "Post an announcement", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}}}
        },
        "/notifications": {
            "get": {"tags": ["notifications"], "summary": "List notifications; admins see every account's", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/notifications/{id}": {
            "delete": {"tags": ["notifications"], "summary": "Delete a notification", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/notifications/unread-count": {
            "get": {"tags": ["notifications"], "summary": "Count the caller's unread notifications", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/mess-menu": {
            "get": {"tags": ["mess-menu"], "summary": "Fetch the weekly mess menu", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["mess-menu"], "summary": "Update one weekday's menu", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/dashboard/stats": {
            "get": {"tags": ["dashboard"], "summary": "Fetch dashboard statistics", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/reports/students": {
            "get": {"tags": ["reports"], "summary": "Download the student roster", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/reports/fees": {
            "get": {"tags": ["reports"], "summary": "Download the fee ledger", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/reports/attendance": {
            "get": {"tags": ["reports"], "summary": "Download today's attendance log", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        }
    }
}`

type swaggerDoc struct{}

func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
