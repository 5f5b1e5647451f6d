package main

import (
	"os"
)

// @title           Todo List API
// @version         1.0
// @description     Multi-user todo list with cookie sessions and bearer tokens.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
