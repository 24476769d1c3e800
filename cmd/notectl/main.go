package main

import (
	"context"

	"github.com/dbelyav/notekeep/internal/client/cli"
	"github.com/dbelyav/notekeep/internal/client/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app := cli.NewApp(cfg)

	app.Run(ctx)

}
