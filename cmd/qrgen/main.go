package main

import (
	"os"

	"github.com/kpauljoseph/qrgen/internal/app"
	"github.com/kpauljoseph/qrgen/internal/config"
)

func main() {
	os.Exit(app.Execute(os.Args[1:], config.OSEnv(), os.Stdout, os.Stderr))
}
