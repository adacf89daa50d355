package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "EduPoint Scoring API",
        "description": "Academic scoring configuration and result computation service",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Grading Systems", "description": "Grade scale catalog"},
        {"name": "Scoring Configs", "description": "Per-level scoring configuration"},
        {"name": "Results", "description": "Termly score entry, computation and ranking"},
        {"name": "Session Results", "description": "Senior Secondary annual rollups"}
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
        "/grading-systems": {
            "get": {
                "tags": ["Grading Systems"],
                "summary": "List grading systems",
                "parameters": [
                    {"name": "active", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Grading Systems"],
                "summary": "Create grading system",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SaveGradingSystemRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/grading-systems/{id}": {
            "get": {
                "tags": ["Grading Systems"],
                "summary": "Get grading system",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Grading Systems"],
                "summary": "Update grading system",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SaveGradingSystemRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Grading Systems"],
                "summary": "Deactivate grading system",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/scoring-configs": {
            "get": {
                "tags": ["Scoring Configs"],
                "summary": "List scoring configurations",
                "parameters": [
                    {"name": "educationLevel", "in": "query", "type": "string"},
                    {"name": "resultType", "in": "query", "type": "string"},
                    {"name": "active", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Scoring Configs"],
                "summary": "Create scoring configuration",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SaveScoringConfigRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation failed with full violation list", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Default configuration conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/scoring-configs/validate": {
            "post": {
                "tags": ["Scoring Configs"],
                "summary": "Validate a configuration without saving it",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SaveScoringConfigRequest"}}
                ],
                "responses": {
                    "200": {"description": "Validation outcome with violations", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/scoring-configs/default/{level}": {
            "get": {
                "tags": ["Scoring Configs"],
                "summary": "Get the default configuration for an education level",
                "parameters": [
                    {"name": "level", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No default configured", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/scoring-configs/{id}": {
            "get": {
                "tags": ["Scoring Configs"],
                "summary": "Get scoring configuration",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Scoring Configs"],
                "summary": "Update scoring configuration",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SaveScoringConfigRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Scoring Configs"],
                "summary": "Deactivate scoring configuration",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/results": {
            "post": {
                "tags": ["Results"],
                "summary": "Enter raw scores and compute the result",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/EnterScoresRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Result immutable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Score data error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/results/rank": {
            "post": {
                "tags": ["Results"],
                "summary": "Rank a class scope",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/results/{id}": {
            "get": {
                "tags": ["Results"],
                "summary": "Get a termly result",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/results/{id}/recompute": {
            "post": {
                "tags": ["Results"],
                "summary": "Recompute the derived tuple from stored raw scores",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/results/{id}/status": {
            "patch": {
                "tags": ["Results"],
                "summary": "Move a result forward through the approval workflow",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Backward transition rejected", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/session-results/aggregate": {
            "post": {
                "tags": ["Session Results"],
                "summary": "Aggregate three termly results into a session result",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "412": {"description": "Incomplete term set", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/session-results/rank": {
            "post": {
                "tags": ["Session Results"],
                "summary": "Rank session results across a class scope",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "GradeRange": {
            "type": "object",
            "properties": {
                "grade": {"type": "string"},
                "remark": {"type": "string"},
                "min_score": {"type": "number"},
                "max_score": {"type": "number"},
                "grade_point": {"type": "number"},
                "is_passing": {"type": "boolean"}
            }
        },
        "SaveGradingSystemRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "type": {"type": "string", "enum": ["PERCENTAGE", "POINTS", "LETTER", "PASS_FAIL"]},
                "min_score": {"type": "number"},
                "max_score": {"type": "number"},
                "pass_mark": {"type": "number"},
                "ranges": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/GradeRange"}
                }
            },
            "required": ["name", "type", "ranges"]
        },
        "SaveScoringConfigRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "education_level": {"type": "string", "enum": ["NURSERY", "PRIMARY", "JUNIOR_SECONDARY", "SENIOR_SECONDARY"]},
                "result_type": {"type": "string", "enum": ["TERMLY", "SESSION"]},
                "grading_system_id": {"type": "string"},
                "is_default": {"type": "boolean"},
                "first_test_max": {"type": "number"},
                "second_test_max": {"type": "number"},
                "third_test_max": {"type": "number"},
                "first_term_max": {"type": "number"},
                "second_term_max": {"type": "number"},
                "third_term_max": {"type": "number"},
                "continuous_assessment_max": {"type": "number"},
                "take_home_test_max": {"type": "number"},
                "appearance_max": {"type": "number"},
                "practical_max": {"type": "number"},
                "project_max": {"type": "number"},
                "note_copying_max": {"type": "number"},
                "exam_max": {"type": "number"},
                "total_max": {"type": "number"},
                "ca_weight_percent": {"type": "number"},
                "exam_weight_percent": {"type": "number"}
            },
            "required": ["name", "education_level", "result_type", "grading_system_id"]
        },
        "EnterScoresRequest": {
            "type": "object",
            "properties": {
                "student_id": {"type": "string"},
                "subject_id": {"type": "string"},
                "class_id": {"type": "string"},
                "exam_session_id": {"type": "string"},
                "configuration_id": {"type": "string"},
                "education_level": {"type": "string"},
                "scores": {"type": "object"}
            },
            "required": ["student_id", "subject_id", "class_id", "exam_session_id"]
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
                "violations": {"type": "array", "items": {"type": "object"}},
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
