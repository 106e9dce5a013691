package config

import (
	"time"

	"github.com/spf13/viper"
)

// Data represents the data configuration
type Data struct {
	Database *Database
}

// Database holds the relational store settings.
type Database struct {
	Migrate bool
	Master  *DBNode
}

// DBNode represents a database node
type DBNode struct {
	Driver          string
	Source          string
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	Logging         bool
	MaxIdleConn     int
	MaxOpenConn     int
	ConnMaxLifeTime time.Duration
	ConnMaxIdleTime time.Duration
	AcquireTimeout  time.Duration
}

// getDataConfig returns data config
func getDataConfig(v *viper.Viper) *Data {
	return &Data{
		Database: &Database{
			Migrate: getBoolOrDefault(v, "data.database.migrate", true),
			Master:  getDBNode(v, "data.database.master"),
		},
	}
}

func getDBNode(v *viper.Viper, prefix string) *DBNode {
	return &DBNode{
		Driver:          getStringOrDefault(v, prefix+".driver", "mysql"),
		Source:          v.GetString(prefix + ".source"),
		Host:            getStringOrDefault(v, prefix+".host", "localhost"),
		Port:            v.GetInt(prefix + ".port"),
		User:            v.GetString(prefix + ".user"),
		Password:        v.GetString(prefix + ".password"),
		Name:            v.GetString(prefix + ".name"),
		Logging:         v.GetBool(prefix + ".logging"),
		MaxIdleConn:     getIntOrDefault(v, prefix+".max_idle_conn", 5),
		MaxOpenConn:     getIntOrDefault(v, prefix+".max_open_conn", 5),
		ConnMaxLifeTime: getDurationOrDefault(v, prefix+".conn_max_life_time", 0),
		ConnMaxIdleTime: getDurationOrDefault(v, prefix+".conn_max_idle_time", 10*time.Second),
		AcquireTimeout:  getDurationOrDefault(v, prefix+".acquire_timeout", 30*time.Second),
	}
}
