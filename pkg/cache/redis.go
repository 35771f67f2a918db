package cache

import (
	"strings"

	"github.com/redis/go-redis/v9"
)

func NewRedis(addr, password string) (*redis.Client, func() error) {
	if !strings.Contains(addr, ":") {
		addr = addr + ":6379"
	}

	r := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	return r, r.Close
}
