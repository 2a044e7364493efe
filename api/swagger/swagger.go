package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Course Planner API",
        "description": "Builds clash-free university timetables from live registration data.",
        "version": "0.2.0"
    },
    "basePath": "/api/v1",
    "schemes": ["http", "https"],
    "tags": [
        {"name": "Timetables", "description": "Timetable generation, filtering and export"},
        {"name": "Observability", "description": "Health and metrics"}
    ],
    "paths": {
        "/schedule": {
            "post": {
                "tags": ["Timetables"],
                "summary": "Generate conflict-free timetables",
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "parameters": [
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/GenerateTimetableRequest"}}
                ],
                "responses": {
                    "200": {"description": "Ranked timetables, best first", "schema": {"$ref": "#/definitions/GenerateTimetableEnvelope"}},
                    "400": {"description": "Invalid term or course list", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "A course has no sections (EMPTY_GROUP)", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "No clash-free timetable exists (NO_VALID_COMBINATION)", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "Registration system unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "503": {"description": "Search timed out", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/customization": {
            "post": {
                "tags": ["Timetables"],
                "summary": "Filter timetables by availability",
                "description": "Removes every timetable that meets during a blocked period and re-ranks the rest. dayTime is one of allday, morning, midday, afternoon, evening or customize.",
                "parameters": [
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/CustomizeTimetableRequest"}}
                ],
                "responses": {
                    "200": {"description": "Filtered timetables", "schema": {"$ref": "#/definitions/TimetableSummaryEnvelope"}},
                    "400": {"description": "Invalid constraint (INVALID_CONSTRAINT)", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Nothing survived the filter", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedule/load": {
            "post": {
                "tags": ["Timetables"],
                "summary": "Score one timetable",
                "parameters": [
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/LoadTimetableRequest"}}
                ],
                "responses": {
                    "200": {"description": "Score and drawing data", "schema": {"$ref": "#/definitions/LoadTimetableEnvelope"}},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedule/export": {
            "post": {
                "tags": ["Timetables"],
                "summary": "Download one timetable as CSV or PDF",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/ExportTimetableRequest"}}
                ],
                "responses": {
                    "200": {"description": "File download", "schema": {"type": "file"}},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedule/cache": {
            "delete": {
                "tags": ["Timetables"],
                "summary": "Drop cached timetables of a term",
                "produces": ["application/json"],
                "parameters": [
                    {"in": "query", "name": "term", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid term", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/status": {
            "get": {
                "tags": ["Observability"],
                "summary": "Aggregated service counters",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "Section": {
            "type": "object",
            "required": ["id", "time", "days"],
            "properties": {
                "id": {"type": "string", "example": "COMP1020A01"},
                "time": {"type": "string", "example": "09:30 am-10:20 am"},
                "days": {"type": "string", "example": "MWF"},
                "crn": {"type": "string"},
                "enrolled": {"type": "string", "example": "120/150"},
                "waitlist": {"type": "string", "example": "0/10"},
                "instructor": {"type": "string"},
                "location": {"type": "string"},
                "status": {"type": "boolean"},
                "title": {"type": "string"}
            }
        },
        "ClassList": {"type": "array", "items": {"$ref": "#/definitions/Section"}},
        "GenerateTimetableRequest": {
            "type": "object",
            "required": ["term", "courses"],
            "properties": {
                "term": {"type": "string", "example": "fall 2024"},
                "courses": {"type": "string", "example": "COMP1020 MATH1240"}
            }
        },
        "TimetableSummary": {
            "type": "object",
            "properties": {
                "ways": {"type": "integer"},
                "smallestTimeGap": {"type": "string", "example": "1.50"},
                "daysUsed": {"type": "integer"},
                "bestClassList": {"$ref": "#/definitions/ClassList"},
                "startTimeList": {"type": "array", "items": {"type": "number"}},
                "endTimeList": {"type": "array", "items": {"type": "number"}},
                "classListWays": {"type": "array", "items": {"$ref": "#/definitions/ClassList"}}
            }
        },
        "GenerateTimetableResponse": {
            "allOf": [
                {"$ref": "#/definitions/TimetableSummary"},
                {
                    "type": "object",
                    "properties": {
                        "term": {"type": "string", "example": "202490"},
                        "termLabel": {"type": "string", "example": "Fall 2024"},
                        "courses": {"type": "array", "items": {"type": "string"}},
                        "splitCourses": {"type": "array", "items": {"type": "string"}},
                        "warnings": {"type": "array", "items": {"type": "string"}}
                    }
                }
            ]
        },
        "Customization": {
            "type": "object",
            "properties": {
                "weekDay": {"type": "string", "enum": ["M", "T", "W", "R", "F"]},
                "dayTime": {"type": "string", "enum": ["allday", "morning", "midday", "afternoon", "evening", "customize"]},
                "customTime": {"type": "string", "example": "12:30 pm-01:20 pm"}
            }
        },
        "CustomizeTimetableRequest": {
            "type": "object",
            "required": ["classListWays", "customizations"],
            "properties": {
                "classListWays": {"type": "array", "items": {"$ref": "#/definitions/ClassList"}},
                "customizations": {"type": "array", "items": {"$ref": "#/definitions/Customization"}}
            }
        },
        "LoadTimetableRequest": {
            "type": "object",
            "required": ["currentClassList"],
            "properties": {
                "currentClassList": {"$ref": "#/definitions/ClassList"}
            }
        },
        "LoadTimetableResponse": {
            "type": "object",
            "properties": {
                "timeGap": {"type": "string"},
                "daysUsed": {"type": "integer"},
                "startTimeList": {"type": "array", "items": {"type": "number"}},
                "endTimeList": {"type": "array", "items": {"type": "number"}}
            }
        },
        "ExportTimetableRequest": {
            "type": "object",
            "required": ["format", "classList"],
            "properties": {
                "format": {"type": "string", "enum": ["csv", "pdf"]},
                "title": {"type": "string"},
                "classList": {"$ref": "#/definitions/ClassList"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string", "example": "NO_VALID_COMBINATION"},
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
        },
        "GenerateTimetableEnvelope": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/GenerateTimetableResponse"},
                "meta": {"type": "object"}
            }
        },
        "TimetableSummaryEnvelope": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/TimetableSummary"},
                "meta": {"type": "object"}
            }
        },
        "LoadTimetableEnvelope": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/LoadTimetableResponse"}
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
