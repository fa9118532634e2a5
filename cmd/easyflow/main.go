package main

import (
	"context"
	"log"

	"github.com/easyflowhq/easyflow/internal/client/cli"
	"github.com/easyflowhq/easyflow/internal/client/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
