package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Teaching Program Planner API",
        "description": "Academic calendar, effective weeks and teaching-hour allocation for teachers.",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "tags": [
        {
            "name": "Programs",
            "description": "Calendar, objectives and weekly allocation"
        },
        {
            "name": "Topics",
            "description": "Planned topic lookups"
        },
        {
            "name": "Holidays",
            "description": "Manual and public holidays"
        },
        {
            "name": "Schedules",
            "description": "Weekly teaching slots"
        },
        {
            "name": "Classes",
            "description": "Class roster"
        },
        {
            "name": "System",
            "description": "Operational endpoints"
        }
    ],
    "paths": {
        "/programs/calendar": {
            "get": {
                "tags": [
                    "Programs"
                ],
                "summary": "Load the effective-week calendar",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Falls back to the default template when nothing is stored.",
                "parameters": [
                    {
                        "name": "subject",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "name": "grade",
                        "in": "query",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "year",
                        "in": "query",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "semester",
                        "in": "query",
                        "required": true,
                        "type": "string",
                        "enum": [
                            "Ganjil",
                            "Genap"
                        ]
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            },
            "put": {
                "tags": [
                    "Programs"
                ],
                "summary": "Save the effective-week calendar",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/SaveCalendarRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/programs/calendar/sync-budget": {
            "post": {
                "tags": [
                    "Programs"
                ],
                "summary": "Derive the weekly hour budget from the teaching schedule",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "subject",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "name": "grade",
                        "in": "query",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "year",
                        "in": "query",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "semester",
                        "in": "query",
                        "required": true,
                        "type": "string",
                        "enum": [
                            "Ganjil",
                            "Genap"
                        ]
                    },
                    {
                        "name": "subject_id",
                        "in": "query",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/programs/allocation": {
            "get": {
                "tags": [
                    "Programs"
                ],
                "summary": "Load objectives and weekly assignments",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "subject",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "name": "grade",
                        "in": "query",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "year",
                        "in": "query",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "semester",
                        "in": "query",
                        "required": true,
                        "type": "string",
                        "enum": [
                            "Ganjil",
                            "Genap"
                        ]
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            },
            "delete": {
                "tags": [
                    "Programs"
                ],
                "summary": "Delete the program objectives and assignments",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "subject",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "name": "grade",
                        "in": "query",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "year",
                        "in": "query",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "semester",
                        "in": "query",
                        "required": true,
                        "type": "string",
                        "enum": [
                            "Ganjil",
                            "Genap"
                        ]
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                }
            }
        },
        "/programs/allocation/objectives": {
            "put": {
                "tags": [
                    "Programs"
                ],
                "summary": "Replace the program objectives",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/SaveObjectivesRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/programs/allocation/auto-distribute": {
            "post": {
                "tags": [
                    "Programs"
                ],
                "summary": "Propose a weekly assignment map",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "The proposal is not saved.",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/AutoDistributeRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/programs/allocation/assignments": {
            "put": {
                "tags": [
                    "Programs"
                ],
                "summary": "Validate and save the weekly assignments",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/SaveAssignmentsRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "422": {
                        "description": "Allocation mismatch; error.details lists every objective",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/programs/allocation/weeks": {
            "get": {
                "tags": [
                    "Programs"
                ],
                "summary": "Per-week holiday grid",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "grade",
                        "in": "query",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "year",
                        "in": "query",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "semester",
                        "in": "query",
                        "required": true,
                        "type": "string",
                        "enum": [
                            "Ganjil",
                            "Genap"
                        ]
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/programs/allocation/import-atp": {
            "post": {
                "tags": [
                    "Programs"
                ],
                "summary": "Replace the objectives with the learning-objective flow rows",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "subject",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "name": "grade",
                        "in": "query",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "year",
                        "in": "query",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "semester",
                        "in": "query",
                        "required": true,
                        "type": "string",
                        "enum": [
                            "Ganjil",
                            "Genap"
                        ]
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/programs/atp": {
            "get": {
                "tags": [
                    "Programs"
                ],
                "summary": "Load the learning-objective flow",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "subject",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "name": "grade",
                        "in": "query",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "year",
                        "in": "query",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "semester",
                        "in": "query",
                        "required": true,
                        "type": "string",
                        "enum": [
                            "Ganjil",
                            "Genap"
                        ]
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            },
            "put": {
                "tags": [
                    "Programs"
                ],
                "summary": "Replace the learning-objective flow",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/SaveATPRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/topics/current": {
            "get": {
                "tags": [
                    "Topics"
                ],
                "summary": "Resolve the planned topic for a class and date",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "class",
                        "in": "query",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "subject",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "name": "date",
                        "in": "query",
                        "type": "string",
                        "format": "date"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/topics/today": {
            "get": {
                "tags": [
                    "Topics"
                ],
                "summary": "Planned topics for every teaching slot of a day",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "date",
                        "in": "query",
                        "type": "string",
                        "format": "date"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/holidays": {
            "get": {
                "tags": [
                    "Holidays"
                ],
                "summary": "List holidays visible to the current teacher",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "type",
                        "in": "query",
                        "type": "string",
                        "enum": [
                            "manual",
                            "public"
                        ]
                    },
                    {
                        "name": "from",
                        "in": "query",
                        "type": "string",
                        "format": "date"
                    },
                    {
                        "name": "to",
                        "in": "query",
                        "type": "string",
                        "format": "date"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "Holidays"
                ],
                "summary": "Create a holiday",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/HolidayRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/holidays/{id}": {
            "put": {
                "tags": [
                    "Holidays"
                ],
                "summary": "Update a holiday",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/HolidayRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            },
            "delete": {
                "tags": [
                    "Holidays"
                ],
                "summary": "Delete a holiday",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                }
            }
        },
        "/schedules": {
            "get": {
                "tags": [
                    "Schedules"
                ],
                "summary": "List weekly teaching slots",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "day",
                        "in": "query",
                        "type": "integer",
                        "minimum": 1,
                        "maximum": 7
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "Schedules"
                ],
                "summary": "Add a weekly teaching slot",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/TeachingScheduleRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/schedules/{id}": {
            "delete": {
                "tags": [
                    "Schedules"
                ],
                "summary": "Remove a weekly teaching slot",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                }
            }
        },
        "/classes": {
            "get": {
                "tags": [
                    "Classes"
                ],
                "summary": "List class sections",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            },
            "put": {
                "tags": [
                    "Classes"
                ],
                "summary": "Replace the class roster",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ReplaceRosterRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/metrics/summary": {
            "get": {
                "tags": [
                    "System"
                ],
                "summary": "Planner and transport counters (admin only)",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "CalendarMonth": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "totalWeeks": {
                    "type": "integer"
                },
                "nonEffectiveWeeks": {
                    "type": "integer"
                },
                "keterangan": {
                    "type": "string"
                }
            }
        },
        "Objective": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "elemen": {
                    "type": "string"
                },
                "materi": {
                    "type": "string"
                },
                "kd": {
                    "type": "string"
                },
                "jp": {
                    "type": "integer"
                }
            }
        },
        "SaveCalendarRequest": {
            "type": "object",
            "properties": {
                "subject": {
                    "type": "string"
                },
                "subjectId": {
                    "type": "string"
                },
                "grade": {
                    "type": "string"
                },
                "year": {
                    "type": "string"
                },
                "semester": {
                    "type": "string"
                },
                "pekanEfektif": {
                    "type": "array",
                    "minItems": 6,
                    "maxItems": 6,
                    "items": {
                        "$ref": "#/definitions/CalendarMonth"
                    }
                },
                "jpPerWeek": {
                    "type": "integer"
                }
            }
        },
        "SaveObjectivesRequest": {
            "type": "object",
            "properties": {
                "subject": {
                    "type": "string"
                },
                "subjectId": {
                    "type": "string"
                },
                "grade": {
                    "type": "string"
                },
                "year": {
                    "type": "string"
                },
                "semester": {
                    "type": "string"
                },
                "prota": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/Objective"
                    }
                },
                "jpPerWeek": {
                    "type": "integer"
                }
            }
        },
        "AutoDistributeRequest": {
            "type": "object",
            "properties": {
                "subject": {
                    "type": "string"
                },
                "subjectId": {
                    "type": "string"
                },
                "grade": {
                    "type": "string"
                },
                "year": {
                    "type": "string"
                },
                "semester": {
                    "type": "string"
                },
                "prota": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/Objective"
                    }
                },
                "jpPerWeek": {
                    "type": "integer"
                }
            }
        },
        "SaveAssignmentsRequest": {
            "type": "object",
            "properties": {
                "subject": {
                    "type": "string"
                },
                "subjectId": {
                    "type": "string"
                },
                "grade": {
                    "type": "string"
                },
                "year": {
                    "type": "string"
                },
                "semester": {
                    "type": "string"
                },
                "prota": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/Objective"
                    }
                },
                "promes": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "string"
                    },
                    "description": "keys are {objectiveId}_{month}_{week}"
                }
            }
        },
        "ATPItem": {
            "type": "object",
            "properties": {
                "elemen": {
                    "type": "string"
                },
                "materi": {
                    "type": "string"
                },
                "tp": {
                    "type": "string"
                },
                "jp": {
                    "type": "integer"
                }
            }
        },
        "SaveATPRequest": {
            "type": "object",
            "properties": {
                "subject": {
                    "type": "string"
                },
                "subjectId": {
                    "type": "string"
                },
                "grade": {
                    "type": "string"
                },
                "year": {
                    "type": "string"
                },
                "semester": {
                    "type": "string"
                },
                "atpItems": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/ATPItem"
                    }
                }
            }
        },
        "HolidayRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "category": {
                    "type": "string"
                },
                "type": {
                    "type": "string",
                    "enum": [
                        "manual",
                        "public"
                    ]
                },
                "date": {
                    "type": "string"
                },
                "startDate": {
                    "type": "string"
                },
                "endDate": {
                    "type": "string"
                }
            }
        },
        "TeachingScheduleRequest": {
            "type": "object",
            "properties": {
                "class": {
                    "type": "string"
                },
                "subject": {
                    "type": "string"
                },
                "subjectId": {
                    "type": "string"
                },
                "dayOfWeek": {
                    "type": "integer"
                },
                "startPeriod": {
                    "type": "integer"
                },
                "endPeriod": {
                    "type": "integer"
                },
                "startTime": {
                    "type": "string"
                },
                "endTime": {
                    "type": "string"
                }
            }
        },
        "ClassSectionItem": {
            "type": "object",
            "properties": {
                "rombel": {
                    "type": "string"
                },
                "level": {
                    "type": "string"
                }
            }
        },
        "ReplaceRosterRequest": {
            "type": "object",
            "properties": {
                "sections": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/ClassSectionItem"
                    }
                }
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {
                    "type": "integer"
                },
                "page_size": {
                    "type": "integer"
                },
                "total_count": {
                    "type": "integer"
                }
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "status": {
                    "type": "integer"
                },
                "details": {
                    "type": "object"
                }
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "object"
                },
                "error": {
                    "$ref": "#/definitions/APIError"
                },
                "pagination": {
                    "$ref": "#/definitions/Pagination"
                },
                "meta": {
                    "type": "object"
                }
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
