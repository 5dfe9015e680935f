// Package docs User Service API documentation
package docs

// Swagger documentation info
// @title User Service API
// @version 1.0
// @description User account management with JWT authentication, token revocation and role-based access control

// @host localhost:3000
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT token.

// @tag.name auth
// @tag.description Login, logout and token revocation

// @tag.name users
// @tag.description User management
