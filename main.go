package main

import (
	"fmt"
	"os"

	"news-portal/cmd"
)

// @title News Portal API
// @version 1.0
// @description Article publishing API with categories, tags and role based access.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT token.
func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
