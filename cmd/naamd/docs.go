package main

// General API documentation for swaggo. Run `swag init -g cmd/naamd/docs.go`
// to generate docs.
//
// @title           naamd API
// @version         1.0
// @description     HTTP API predicting a religion label from personal names.
//
// @contact.name   naamd maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
