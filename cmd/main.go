package main

import (
	"ratelock/internal/app"

	"github.com/sirupsen/logrus"
)

// @title Rate Lock API
// @version 1.0
// @description Currency catalog, live cross rates and 24 hour rate locks.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := app.Run(); err != nil {
		logrus.WithError(err).Fatal("application stopped")
	}
}
