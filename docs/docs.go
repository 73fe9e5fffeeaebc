// Package docs holds the OpenAPI description served at /swagger.
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
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/order": {
            "post": {
                "tags": ["orders"],
                "summary": "Place an order from a table",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/CreateOrderRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Success"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Error"}},
                    "404": {"description": "Unknown restaurant", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/customer/{subdomain}": {
            "get": {
                "tags": ["customer"],
                "summary": "Menu for a restaurant table",
                "produces": ["application/json"],
                "parameters": [
                    {"in": "path", "name": "subdomain", "type": "string", "required": true},
                    {"in": "query", "name": "table", "type": "integer", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/CustomerMenu"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/api/order/{id}/status": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["orders"],
                "summary": "Move an order to Preparing, Ready or Served",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "path", "name": "id", "type": "integer", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Success"}},
                    "400": {"description": "Invalid status", "schema": {"$ref": "#/definitions/Error"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/api/order/{id}/add-item": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["orders"],
                "summary": "Append a menu item to an order",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "path", "name": "id", "type": "integer", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/AddItemRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Success"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Error"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/api/order/{id}/bill": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["orders"],
                "summary": "Bill with GST",
                "produces": ["application/json"],
                "parameters": [
                    {"in": "path", "name": "id", "type": "integer", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Bill"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/api/kitchen/additions": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["kitchen"],
                "summary": "Additions waiting for the kitchen",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Addition"}}}
                }
            }
        },
        "/api/kitchen/addition/{id}/status": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["kitchen"],
                "summary": "Acknowledge an addition",
                "produces": ["application/json"],
                "parameters": [
                    {"in": "path", "name": "id", "type": "integer", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Success"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/admin/orders/by-date": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin"],
                "summary": "Served revenue for one day",
                "produces": ["application/json"],
                "parameters": [
                    {"in": "query", "name": "date", "type": "string", "format": "date", "required": true},
                    {"in": "query", "name": "restaurant_id", "type": "integer", "description": "superadmin only"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/DailyReport"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/events": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["events"],
                "summary": "Live orders feed",
                "produces": ["text/event-stream"],
                "responses": {
                    "200": {"description": "data: OrdersSnapshot per tick", "schema": {"$ref": "#/definitions/OrdersSnapshot"}}
                }
            }
        },
        "/events/additions": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["events"],
                "summary": "Live kitchen additions feed",
                "produces": ["text/event-stream"],
                "responses": {
                    "200": {"description": "data: []Addition per tick", "schema": {"type": "array", "items": {"$ref": "#/definitions/Addition"}}}
                }
            }
        }
    },
    "definitions": {
        "Success": {"type": "object", "properties": {"success": {"type": "boolean", "example": true}}},
        "Error": {"type": "object", "properties": {"error": {"type": "string"}}},
        "CreateOrderItem": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "example": "Tea"},
                "price": {"type": "number", "example": 10},
                "qty": {"type": "integer", "example": 2}
            }
        },
        "CreateOrderRequest": {
            "type": "object",
            "properties": {
                "restaurant_id": {"type": "integer", "example": 1},
                "table": {"type": "integer", "example": 4},
                "items": {"type": "array", "items": {"$ref": "#/definitions/CreateOrderItem"}}
            }
        },
        "UpdateStatusRequest": {
            "type": "object",
            "properties": {"status": {"type": "string", "enum": ["Preparing", "Ready", "Served"]}}
        },
        "AddItemRequest": {
            "type": "object",
            "properties": {
                "item_id": {"type": "integer", "example": 12},
                "qty": {"type": "integer", "example": 1}
            }
        },
        "Order": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "restaurant_id": {"type": "integer"},
                "table_no": {"type": "integer"},
                "items": {"type": "string", "description": "JSON-encoded [{name, price, qty}]"},
                "total": {"type": "number"},
                "status": {"type": "string", "enum": ["Received", "Preparing", "Ready", "Served"]},
                "created_at": {"type": "string", "format": "date-time"}
            }
        },
        "LineItem": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "price": {"type": "number"},
                "qty": {"type": "integer"}
            }
        },
        "Addition": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "order_id": {"type": "integer"},
                "table_no": {"type": "integer"},
                "item_name": {"type": "string"},
                "qty": {"type": "integer"},
                "price": {"type": "number"},
                "status": {"type": "string", "enum": ["New", "Preparing"]},
                "created_at": {"type": "string", "format": "date-time"}
            }
        },
        "DailyReport": {
            "type": "object",
            "properties": {
                "orders": {"type": "array", "items": {"$ref": "#/definitions/Order"}},
                "revenue": {"type": "number"},
                "count": {"type": "integer"}
            }
        },
        "OrdersSnapshot": {
            "type": "object",
            "properties": {
                "orders": {"type": "array", "items": {"$ref": "#/definitions/Order"}},
                "today_revenue": {"type": "number"}
            }
        },
        "Bill": {
            "type": "object",
            "properties": {
                "restaurant_name": {"type": "string"},
                "order": {"$ref": "#/definitions/Order"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/LineItem"}},
                "subtotal": {"type": "number"},
                "gst": {"type": "number"},
                "total": {"type": "number"}
            }
        },
        "MenuItem": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "price": {"type": "number"},
                "category": {"type": "string"},
                "image": {"type": "string"}
            }
        },
        "CustomerMenu": {
            "type": "object",
            "properties": {
                "restaurant_id": {"type": "integer"},
                "restaurant_name": {"type": "string"},
                "table": {"type": "integer"},
                "menu": {"type": "array", "items": {"$ref": "#/definitions/MenuItem"}}
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
	Title:            "ordenes-mesa order service",
	Description:      "Table ordering, kitchen additions and live dashboards for many restaurants.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
