package main

// General API documentation for swaggo. Regenerate the docs package with
// `swag init -g cmd/contactd/docs.go`.
//
// @title           contactd API
// @version         1.0
// @description     HTTP API for the remote contact directory: naming, typed and dynamic dispatch, observer subscriptions.
//
// @contact.name   contactd maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
