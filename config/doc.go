// Package config loads taskapi settings with Viper.
//
// Sources, in order of precedence: environment variables, the config file,
// then defaults. The file is found with --conf or as config.{yaml,json,toml}
// in ".", "$HOME/.taskapi" or "/etc/taskapi"; running without a file is
// allowed.
//
// Environment variables mirror the keys with dots replaced by underscores:
//
//	SERVER_PORT=8080
//	DATA_DATABASE_MASTER_SOURCE="file:tasks.db?_fk=1"
//	AUTH_JWT_SECRET=change-me
//
// The legacy names PORT, DB_HOST, DB_PORT, DB_USER, DB_PASSWORD and DB_NAME
// are honoured as well.
//
// Example YAML:
//
//	app_name: taskapi
//	run_mode: release
//	server:
//	  host: 0.0.0.0
//	  port: 3000
//	data:
//	  database:
//	    migrate: true
//	    master:
//	      driver: mysql
//	      host: localhost
//	      port: 3306
//	      user: root
//	      password: secret
//	      name: tasks
//	      max_open_conn: 5
//	      conn_max_idle_time: 10s
//	      acquire_timeout: 30s
//	auth:
//	  jwt:
//	    secret: change-me
//	    expire: 24h
//	logger:
//	  level: 4
//	  format: json
//	  output: stdout
//
// Watch reloads the file on change and hands the new Config to a callback.
package config
