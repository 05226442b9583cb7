package main

import (
	"retoken/internal/rotator/app"
)

var (
	version string
)

func main() {
	application := app.NewApp(version)
	application.Run()
}
