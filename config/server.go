package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Server http server config struct
type Server struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

func getServerConfig(v *viper.Viper) *Server {
	return &Server{
		Host:            v.GetString("server.host"),
		Port:            getIntOrDefault(v, "server.port", 3000),
		ReadTimeout:     getDurationOrDefault(v, "server.read_timeout", 15*time.Second),
		WriteTimeout:    getDurationOrDefault(v, "server.write_timeout", 15*time.Second),
		IdleTimeout:     getDurationOrDefault(v, "server.idle_timeout", 60*time.Second),
		ShutdownTimeout: getDurationOrDefault(v, "server.shutdown_timeout", 30*time.Second),
	}
}

// CORS cross-origin config struct
type CORS struct {
	AllowOrigins     []string
	AllowCredentials bool
	MaxAge           time.Duration
}

func getCORSConfig(v *viper.Viper) *CORS {
	origins := v.GetStringSlice("cors.allow_origins")
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return &CORS{
		AllowOrigins:     origins,
		AllowCredentials: v.GetBool("cors.allow_credentials"),
		MaxAge:           getDurationOrDefault(v, "cors.max_age", 12*time.Hour),
	}
}
