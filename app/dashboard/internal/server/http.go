package server

import (
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/dashboard/internal/conf"
	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/dashboard/internal/service"
)

func NewHTTPServer(c *conf.Server, s *service.ChatService, logger log.Logger) *http.Server {
	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
		),
	}
	if c != nil && c.Http != nil {
		if c.Http.Addr != "" {
			opts = append(opts, http.Address(c.Http.Addr))
		}
		if c.Http.Timeout != "" {
			if d, err := time.ParseDuration(c.Http.Timeout); err == nil {
				opts = append(opts, http.Timeout(d))
			} else {
				log.NewHelper(logger).Warnf("ignoring http timeout %q: %v", c.Http.Timeout, err)
			}
		}
	}

	srv := http.NewServer(opts...)
	service.RegisterChatHTTPServer(srv, s)
	return srv
}
