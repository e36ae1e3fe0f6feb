package service

import (
	"context"

	"github.com/go-kratos/kratos/v2/transport/http"
)

// RegisterChatHTTPServer mounts the chat routes under /api
func RegisterChatHTTPServer(srv *http.Server, s *ChatService) {
	r := srv.Route("/api")
	r.POST("/chat", chatHandler(s))
	r.DELETE("/chat/{session_id}", resetHandler(s))
	r.GET("/datasets", datasetsHandler(s))
	r.GET("/forecast/{key}", forecastHandler(s))
	r.GET("/insights", insightsHandler(s))
}

func chatHandler(s *ChatService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in ChatRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		h := ctx.Middleware(func(c context.Context, req interface{}) (interface{}, error) {
			return s.Chat(c, req.(*ChatRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}

func resetHandler(s *ChatService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		sessionID := ctx.Vars().Get("session_id")
		h := ctx.Middleware(func(c context.Context, req interface{}) (interface{}, error) {
			return s.Reset(c, req.(string))
		})
		out, err := h(ctx, sessionID)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}

func datasetsHandler(s *ChatService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		h := ctx.Middleware(func(c context.Context, _ interface{}) (interface{}, error) {
			return s.Datasets(c)
		})
		out, err := h(ctx, nil)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}

type forecastQuery struct {
	key   string
	years string
	chart string
}

func forecastHandler(s *ChatService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		in := forecastQuery{
			key:   ctx.Vars().Get("key"),
			years: ctx.Query().Get("years"),
			chart: ctx.Query().Get("chart"),
		}
		h := ctx.Middleware(func(c context.Context, req interface{}) (interface{}, error) {
			q := req.(forecastQuery)
			return s.Forecast(c, q.key, q.years, q.chart)
		})
		out, err := h(ctx, in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}

func insightsHandler(s *ChatService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		h := ctx.Middleware(func(c context.Context, _ interface{}) (interface{}, error) {
			return s.Insights(c)
		})
		out, err := h(ctx, nil)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}
