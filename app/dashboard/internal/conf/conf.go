package conf

type Bootstrap struct {
	Server    *Server    `json:"server"`
	Assistant *Assistant `json:"assistant"`
}

type Server struct {
	Http *HTTP `json:"http"`
}

type HTTP struct {
	Addr    string `json:"addr"`
	Timeout string `json:"timeout"`
}

type Assistant struct {
	Llm         *LLM         `json:"llm"`
	Log         *Log         `json:"log"`
	Concurrency *Concurrency `json:"concurrency"`
	Forecast    *Forecast    `json:"forecast"`
	Roster      *Roster      `json:"roster"`
}

type LLM struct {
	Provider       string   `json:"provider"`
	BaseUrl        string   `json:"base_url"`
	ApiKey         string   `json:"api_key"`
	Models         []string `json:"models"`
	TimeoutSeconds int32    `json:"timeout_seconds"`
	Temperature    *float32 `json:"temperature"`
	MaxHistory     int32    `json:"max_history"`
	MaxSessions    int32    `json:"max_sessions"`
	SessionIdle    int32    `json:"session_idle_minutes"`
}

type Log struct {
	Level string `json:"level"`
	File  string `json:"file"`
}

type Concurrency struct {
	Qps int32 `json:"qps"`
	Rpm int32 `json:"rpm"`
}

type Forecast struct {
	DefaultYears []int32 `json:"default_years"`
}

type Roster struct {
	Seed int64 `json:"seed"`
	Size int32 `json:"size"`
}
