package monitor

import "time"

type Status struct {
	PostgreSQL bool      `json:"postgresql"`
	Redis      bool      `json:"redis"`
	Cache      bool      `json:"cache"`
	CacheSize  int       `json:"cache_size"`
	LastCheck  time.Time `json:"last_check"`
}
