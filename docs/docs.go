// Package docs содержит описание API в формате Swagger 2.0 для gin-swagger.
// Шаблон ведётся вручную вместе с аннотациями обработчиков.
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
        "/api/classes/": {
            "get": {
                "description": "Занятия по возрастанию id с создателем, RSVP и вопросами",
                "produces": ["application/json"],
                "tags": ["classes"],
                "summary": "Список занятий",
                "parameters": [
                    {"type": "integer", "default": 0, "description": "Сколько пропустить", "name": "skip", "in": "query"},
                    {"type": "integer", "default": 100, "description": "Сколько вернуть", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/schemas.Class"}}},
                    "400": {"description": "Ошибка валидации (VALIDATION_ERROR)", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "500": {"description": "Ошибка сервера (DB_ERROR)", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            },
            "post": {
                "description": "Создаёт занятие. Создатель находится по telegram id или создаётся",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["classes"],
                "summary": "Создание занятия",
                "parameters": [
                    {"description": "Данные занятия", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/schemas.ClassCreateRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/schemas.Class"}},
                    "400": {"description": "Ошибка валидации (VALIDATION_ERROR)", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "500": {"description": "Ошибка сервера (DB_ERROR)", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/api/classes/{class_id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["classes"],
                "summary": "Получение занятия",
                "parameters": [
                    {"type": "integer", "description": "ID занятия", "name": "class_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/schemas.Class"}},
                    "400": {"description": "Неверный идентификатор (INVALID_CLASS_ID)", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "404": {"description": "Занятие не найдено (CLASS_NOT_FOUND)", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            },
            "put": {
                "description": "Меняет только переданные поля. Доступно только создателю",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["classes"],
                "summary": "Обновление занятия",
                "parameters": [
                    {"type": "integer", "description": "ID занятия", "name": "class_id", "in": "path", "required": true},
                    {"description": "Изменения", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/schemas.ClassUpdateRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/schemas.Class"}},
                    "400": {"description": "Ошибка валидации (VALIDATION_ERROR, INVALID_CLASS_ID)", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "403": {"description": "Не создатель (FORBIDDEN)", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "404": {"description": "Занятие не найдено (CLASS_NOT_FOUND)", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "500": {"description": "Ошибка сервера (DB_ERROR)", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            },
            "delete": {
                "description": "Доступно только создателю",
                "produces": ["application/json"],
                "tags": ["classes"],
                "summary": "Удаление занятия",
                "parameters": [
                    {"type": "integer", "description": "ID занятия", "name": "class_id", "in": "path", "required": true},
                    {"type": "integer", "description": "Telegram id удаляющего", "name": "deleter_telegram_id", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.DeleteResponse"}},
                    "400": {"description": "Ошибка валидации (VALIDATION_ERROR, INVALID_CLASS_ID)", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "403": {"description": "Не создатель (FORBIDDEN)", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "404": {"description": "Занятие не найдено (CLASS_NOT_FOUND)", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "500": {"description": "Ошибка сервера (DB_ERROR)", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/api/classes/{class_id}/questions": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["classes"],
                "summary": "Вопрос к занятию",
                "parameters": [
                    {"type": "integer", "description": "ID занятия", "name": "class_id", "in": "path", "required": true},
                    {"description": "Вопрос", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/schemas.QuestionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/schemas.Question"}},
                    "400": {"description": "Ошибка валидации (VALIDATION_ERROR, INVALID_CLASS_ID)", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "404": {"description": "Занятие не найдено (CLASS_NOT_FOUND)", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "500": {"description": "Ошибка сервера (DB_ERROR)", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/api/classes/{class_id}/rsvp": {
            "post": {
                "description": "Создаёт или обновляет единственный RSVP пользователя для занятия",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["classes"],
                "summary": "Ответ на занятие",
                "parameters": [
                    {"type": "integer", "description": "ID занятия", "name": "class_id", "in": "path", "required": true},
                    {"description": "Ответ", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/schemas.RsvpRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/schemas.RSVP"}},
                    "400": {"description": "Ошибка валидации (VALIDATION_ERROR, INVALID_CLASS_ID)", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "404": {"description": "Занятие не найдено (CLASS_NOT_FOUND)", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "500": {"description": "Ошибка сервера (DB_ERROR)", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/api/classes/{class_id}/ws": {
            "get": {
                "description": "rsvp_updated, question_asked, class_updated, class_deleted",
                "tags": ["classes"],
                "summary": "События занятия",
                "parameters": [
                    {"type": "integer", "description": "ID занятия", "name": "class_id", "in": "path", "required": true}
                ],
                "responses": {
                    "400": {"description": "Неверный идентификатор (INVALID_CLASS_ID)", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/healthz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Состояние сервиса",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.HealthResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/response.HealthResponse"}}
                }
            }
        }
    },
    "definitions": {
        "response.DeleteResponse": {
            "type": "object",
            "properties": {
                "class_id": {"type": "integer", "example": 1},
                "status": {"type": "string", "example": "deleted"}
            }
        },
        "response.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"description": "Код ошибки для программной обработки", "type": "string", "example": "VALIDATION_ERROR"},
                "details": {"description": "Дополнительные детали об ошибке (опционально)", "type": "string", "example": "status must be one of: yes no tentative"},
                "message": {"description": "Человекочитаемое сообщение об ошибке", "type": "string", "example": "Ошибка валидации данных"}
            }
        },
        "response.HealthResponse": {
            "type": "object",
            "properties": {
                "cache": {"type": "string", "example": "ok"},
                "database": {"type": "string", "example": "ok"},
                "status": {"type": "string", "example": "ok"}
            }
        },
        "schemas.Class": {
            "type": "object",
            "properties": {
                "class_time": {"type": "string"},
                "creator": {"$ref": "#/definitions/schemas.User"},
                "creator_id": {"type": "integer"},
                "description": {"type": "string"},
                "id": {"type": "integer"},
                "questions": {"type": "array", "items": {"$ref": "#/definitions/schemas.Question"}},
                "rsvps": {"type": "array", "items": {"$ref": "#/definitions/schemas.RSVP"}},
                "topic": {"type": "string", "example": "Intro"}
            }
        },
        "schemas.ClassCreateRequest": {
            "type": "object",
            "required": ["class_time", "creator_first_name", "creator_telegram_id", "topic"],
            "properties": {
                "class_time": {"type": "string"},
                "creator_first_name": {"type": "string"},
                "creator_last_name": {"type": "string"},
                "creator_telegram_id": {"type": "integer"},
                "creator_username": {"type": "string"},
                "description": {"type": "string"},
                "topic": {"type": "string"}
            }
        },
        "schemas.ClassUpdate": {
            "type": "object",
            "properties": {
                "class_time": {"type": "string", "format": "date-time"},
                "description": {"type": "string"},
                "topic": {"type": "string"}
            }
        },
        "schemas.ClassUpdateRequest": {
            "type": "object",
            "required": ["updater_telegram_id"],
            "properties": {
                "update_data": {"$ref": "#/definitions/schemas.ClassUpdate"},
                "updater_telegram_id": {"type": "integer"}
            }
        },
        "schemas.Question": {
            "type": "object",
            "properties": {
                "class_id": {"type": "integer"},
                "created_at": {"type": "string"},
                "id": {"type": "integer"},
                "text": {"type": "string"},
                "user": {"$ref": "#/definitions/schemas.User"},
                "user_id": {"type": "integer"}
            }
        },
        "schemas.QuestionRequest": {
            "type": "object",
            "required": ["first_name", "telegram_id", "text"],
            "properties": {
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "telegram_id": {"type": "integer"},
                "text": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "schemas.RSVP": {
            "type": "object",
            "properties": {
                "class_id": {"type": "integer"},
                "id": {"type": "integer"},
                "status": {"type": "string", "example": "yes"},
                "updated_at": {"type": "string"},
                "user": {"$ref": "#/definitions/schemas.User"},
                "user_id": {"type": "integer"}
            }
        },
        "schemas.RsvpRequest": {
            "type": "object",
            "required": ["first_name", "status", "telegram_id"],
            "properties": {
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "status": {"type": "string", "example": "yes"},
                "telegram_id": {"type": "integer"},
                "username": {"type": "string"}
            }
        },
        "schemas.User": {
            "type": "object",
            "properties": {
                "first_name": {"type": "string", "example": "Анна"},
                "id": {"type": "integer", "example": 1},
                "last_name": {"type": "string"},
                "telegram_id": {"type": "integer", "example": 111},
                "username": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "",
	Schemes:          []string{},
	Title:            "Расписание занятий и RSVP для Telegram",
	Description:      "",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
