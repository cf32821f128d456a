package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "description": "Local tracking desk for the RTE gateway: trajectory history, delivery receipts and late delivery charges.",
        "title": "rtetrack API",
        "version": "1.0"
    },
    "host": "127.0.0.1:8080",
    "basePath": "/",
    "paths": {
        "/v1/tracking": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tracking"],
                "summary": "Query the trajectory history of a shipment",
                "parameters": [
                    {
                        "description": "CNPJ and invoice number",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/queryRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/trackingResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/v1/receipt": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tracking"],
                "summary": "Fetch the delivery receipt of a shipment",
                "parameters": [
                    {
                        "description": "CNPJ and invoice number",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/queryRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/receiptResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/v1/charge": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tracking"],
                "summary": "Charge the carrier for a late delivery",
                "parameters": [
                    {
                        "description": "CNPJ and invoice number",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/queryRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/chargeResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "queryRequest": {
            "type": "object",
            "required": ["cnpj", "nf"],
            "properties": {
                "cnpj": {"type": "string"},
                "nf": {"type": "string"}
            }
        },
        "trackingResponse": {
            "type": "object",
            "properties": {
                "report": {"type": "string"},
                "late": {"type": "boolean"},
                "charge_button": {"type": "string", "enum": ["hidden", "shown"]}
            }
        },
        "receiptResponse": {
            "type": "object",
            "properties": {
                "kind": {"type": "string", "enum": ["url", "download", "not_found"]},
                "url": {"type": "string"},
                "file_name": {"type": "string"},
                "image": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "chargeResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            }
        },
        "errorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        }
    }
}`

type s struct{}

func (s *s) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &s{})
}
