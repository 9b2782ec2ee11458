// Package swagger provides API documentation
package swagger

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &struct {
	Version     string
	Host        string
	BasePath    string
	Schemes     []string
	Title       string
	Description string
}{
	Version:     "1.0",
	Host:        "",
	BasePath:    "/v1",
	Schemes:     []string{},
	Title:       "Vobiz Call Broker",
	Description: "Voice call session broker with operator-initiated transfer",
}

// Placeholder for swagger documentation
// Run 'swag init' to generate complete API documentation
