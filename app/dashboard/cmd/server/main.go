package main

import (
	"flag"
	"os"

	"github.com/go-kratos/kratos/v2"
	"github.com/go-kratos/kratos/v2/config"
	"github.com/go-kratos/kratos/v2/config/file"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/dashboard/internal/conf"
	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/dashboard/internal/data"
	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/dashboard/internal/server"
	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/dashboard/internal/service"
	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/dashboard/internal/usecase"
)

// go build -ldflags "-X main.Version=x.y.z"
var (
	// Name service name
	Name string = "dashboard"
	// Version service version
	Version string
	// flagconf config file path
	flagconf string

	id, _ = os.Hostname()
)

func init() {
	flag.StringVar(&flagconf, "conf", "app/dashboard/configs/config.yaml", "config path, eg: -conf config.yaml")
}

func main() {
	flag.Parse()
	logger := log.With(log.NewStdLogger(os.Stdout),
		"ts", log.DefaultTimestamp,
		"caller", log.DefaultCaller,
		"service.id", id,
		"service.name", Name,
		"service.version", Version,
	)

	c := config.New(
		config.WithSource(
			file.NewSource(flagconf),
		),
	)
	defer c.Close()

	if err := c.Load(); err != nil {
		panic(err)
	}

	var bc conf.Bootstrap
	if err := c.Scan(&bc); err != nil {
		panic(err)
	}

	app, cleanup, err := initApp(bc.Server, bc.Assistant, logger)
	if err != nil {
		panic(err)
	}
	defer cleanup()

	if err := app.Run(); err != nil {
		panic(err)
	}
}

// initApp wires the layers from the engine up to the HTTP server
func initApp(sc *conf.Server, ac *conf.Assistant, logger log.Logger) (*kratos.App, func(), error) {
	eng, err := server.NewAssistantEngine(ac, logger)
	if err != nil {
		return nil, nil, err
	}
	d, cleanup, err := data.NewData(eng, logger)
	if err != nil {
		return nil, nil, err
	}
	assistantRepo := data.NewAssistantRepo(d, logger)
	chatUseCase := usecase.NewChatUseCase(assistantRepo, logger)
	chatService := service.NewChatService(chatUseCase, logger)
	httpServer := server.NewHTTPServer(sc, chatService, logger)
	return newApp(logger, httpServer), cleanup, nil
}

func newApp(logger log.Logger, hs *http.Server) *kratos.App {
	return kratos.New(
		kratos.ID(id),
		kratos.Name(Name),
		kratos.Version(Version),
		kratos.Metadata(map[string]string{}),
		kratos.Logger(logger),
		kratos.Server(hs),
	)
}
