// Package main Parley API
//
//	@title			Parley API
//	@version		1.0
//	@description	Multi-feature chat API with rooms, private messaging, file sharing, anonymous stranger matching and WebRTC video call signaling
//	@termsOfService	http://swagger.io/terms/
//
//	@contact.name	Parley Support
//	@contact.url	https://github.com/observer/parley
//	@contact.email	support@parley.example.com
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@externalDocs.description	OpenAPI
//	@externalDocs.url			https://swagger.io/resources/open-api/
package main
