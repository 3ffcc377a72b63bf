package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "CCTV Shop API",
        "description": "Warranty, claim, and quotation backend for the camera shop",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Auth", "description": "Admin authentication"},
        {"name": "Warranties", "description": "Warranty record management"},
        {"name": "Claims", "description": "Warranty claim lifecycle"},
        {"name": "Quotations", "description": "Quote request triage"},
        {"name": "Public", "description": "Unauthenticated customer surface"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Admin login",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": ["Auth"],
                "summary": "Rotate a refresh token",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["Auth"],
                "summary": "Revoke the current refresh token",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/auth/change-password": {
            "post": {
                "tags": ["Auth"],
                "summary": "Change the current admin's password",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Auth"],
                "summary": "Current admin profile",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/warranties": {
            "get": {
                "tags": ["Warranties"],
                "summary": "List warranty records",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "status", "in": "query", "type": "string", "enum": ["Active", "Expired", "Voided"]},
                    {"name": "product_id", "in": "query", "type": "string"},
                    {"name": "customer_name", "in": "query", "type": "string"},
                    {"name": "phone_number", "in": "query", "type": "string"},
                    {"name": "start_date", "in": "query", "type": "string", "format": "date"},
                    {"name": "end_date", "in": "query", "type": "string", "format": "date"},
                    {"name": "sort_by", "in": "query", "type": "string"},
                    {"name": "sort_order", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "page_size", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Warranties"],
                "summary": "Register a warranty record",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateWarrantyRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/warranties/stats": {
            "get": {
                "tags": ["Warranties"],
                "summary": "Warranty dashboard statistics",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/warranties/export": {
            "get": {
                "tags": ["Warranties"],
                "summary": "Export warranty records as CSV or PDF",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        },
        "/warranties/sweep-expired": {
            "post": {
                "tags": ["Warranties"],
                "summary": "Flip lapsed Active warranties to Expired",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/warranties/status/{status}": {
            "get": {
                "tags": ["Warranties"],
                "summary": "List warranty records in a given status",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "status", "in": "path", "required": true, "type": "string", "enum": ["Active", "Expired", "Voided"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/warranties/{id}": {
            "get": {
                "tags": ["Warranties"],
                "summary": "Get a warranty record",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found"}
                }
            },
            "put": {
                "tags": ["Warranties"],
                "summary": "Update a warranty record",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateWarrantyRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Warranties"],
                "summary": "Delete a warranty record",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/claims": {
            "get": {
                "tags": ["Claims"],
                "summary": "List claims",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "status", "in": "query", "type": "string", "enum": ["Pending", "Approved", "Rejected"]},
                    {"name": "warranty_record_id", "in": "query", "type": "string"},
                    {"name": "customer_name", "in": "query", "type": "string"},
                    {"name": "phone_number", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "page_size", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/claims/stats": {
            "get": {
                "tags": ["Claims"],
                "summary": "Claim dashboard statistics",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/claims/export": {
            "get": {
                "tags": ["Claims"],
                "summary": "Export claims as CSV or PDF",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        },
        "/claims/status/{status}": {
            "get": {
                "tags": ["Claims"],
                "summary": "List claims in a given status",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "status", "in": "path", "required": true, "type": "string", "enum": ["Pending", "Approved", "Rejected"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/claims/{id}": {
            "get": {
                "tags": ["Claims"],
                "summary": "Get a claim",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found"}
                }
            },
            "put": {
                "tags": ["Claims"],
                "summary": "Update a claim's issue description",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateClaimRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Claims"],
                "summary": "Delete a claim",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/claims/{id}/status": {
            "patch": {
                "tags": ["Claims"],
                "summary": "Approve, reject, or reopen a claim",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateClaimStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/quotations": {
            "get": {
                "tags": ["Quotations"],
                "summary": "List quotations",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "status", "in": "query", "type": "string", "enum": ["Pending", "Contacted", "Closed"]},
                    {"name": "service_type", "in": "query", "type": "string"},
                    {"name": "camera_type", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "page_size", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/quotations/{id}": {
            "get": {
                "tags": ["Quotations"],
                "summary": "Get a quotation",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Quotations"],
                "summary": "Triage a quotation",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateQuotationRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Quotations"],
                "summary": "Delete a quotation",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/public/claims": {
            "post": {
                "tags": ["Public"],
                "summary": "File a warranty claim",
                "description": "The phone number must match a registered warranty. Without an explicit warranty_record_id the most recent Active warranty is used.",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateClaimRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No warranties registered under the phone number"},
                    "422": {"description": "No Active warranty to claim against"}
                }
            }
        },
        "/public/claims/phone/{phoneNumber}": {
            "get": {
                "tags": ["Public"],
                "summary": "List claims filed under a phone number",
                "parameters": [
                    {"name": "phoneNumber", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/public/warranties/phone/{phoneNumber}": {
            "get": {
                "tags": ["Public"],
                "summary": "List warranties registered under a phone number",
                "parameters": [
                    {"name": "phoneNumber", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/public/warranties/id/{warrantyId}": {
            "get": {
                "tags": ["Public"],
                "summary": "Look up a warranty by its printed identifier",
                "parameters": [
                    {"name": "warrantyId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/public/eligibility/{phoneNumber}": {
            "get": {
                "tags": ["Public"],
                "summary": "Check claim eligibility for a phone number",
                "parameters": [
                    {"name": "phoneNumber", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/public/quotations": {
            "post": {
                "tags": ["Public"],
                "summary": "Request a quotation",
                "description": "Multipart form with up to three site photos under the images field.",
                "consumes": ["multipart/form-data"],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "CreateWarrantyRequest": {
            "type": "object",
            "required": ["customer_name", "phone_number", "product_id", "quantity_purchased", "purchase_date", "warranty_valid_until"],
            "properties": {
                "customer_name": {"type": "string"},
                "phone_number": {"type": "string"},
                "customer_address": {"type": "string"},
                "product_id": {"type": "string"},
                "quantity_purchased": {"type": "integer"},
                "purchase_date": {"type": "string", "format": "date-time"},
                "warranty_valid_until": {"type": "string", "format": "date-time"},
                "warranty_status": {"type": "string", "enum": ["Active", "Expired", "Voided"]}
            }
        },
        "UpdateWarrantyRequest": {
            "type": "object",
            "properties": {
                "customer_name": {"type": "string"},
                "phone_number": {"type": "string"},
                "customer_address": {"type": "string"},
                "quantity_purchased": {"type": "integer"},
                "purchase_date": {"type": "string", "format": "date-time"},
                "warranty_valid_until": {"type": "string", "format": "date-time"},
                "warranty_status": {"type": "string", "enum": ["Active", "Expired", "Voided"]}
            }
        },
        "CreateClaimRequest": {
            "type": "object",
            "required": ["phone_number", "issue_description"],
            "properties": {
                "phone_number": {"type": "string"},
                "warranty_record_id": {"type": "string"},
                "issue_description": {"type": "string"}
            }
        },
        "UpdateClaimRequest": {
            "type": "object",
            "properties": {
                "issue_description": {"type": "string"}
            }
        },
        "UpdateClaimStatusRequest": {
            "type": "object",
            "required": ["status"],
            "properties": {
                "status": {"type": "string", "enum": ["Pending", "Approved", "Rejected"]}
            }
        },
        "UpdateQuotationRequest": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["Pending", "Contacted", "Closed"]},
                "assigned_admin_id": {"type": "string"},
                "admin_notes": {"type": "string"}
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
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
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
