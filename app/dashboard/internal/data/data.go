package data

import (
	"github.com/go-kratos/kratos/v2/log"

	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/assistant/pkg/engine"
)

// Data shared resources of the data layer
type Data struct {
	engine *engine.Engine
}

func NewData(eng *engine.Engine, logger log.Logger) (*Data, func(), error) {
	cleanup := func() {
		log.NewHelper(logger).Info("closing the data resources")
		if err := eng.Close(); err != nil {
			log.NewHelper(logger).Errorf("close engine: %v", err)
		}
	}
	return &Data{engine: eng}, cleanup, nil
}
