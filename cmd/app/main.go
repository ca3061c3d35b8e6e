package main

import (
	"github.com/reelmatch/core/internal/app"
	"github.com/reelmatch/core/internal/config"
)

func main() {
	app.Go(config.Load())
}
