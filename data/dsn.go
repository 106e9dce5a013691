package data

import (
	"fmt"
	"net"
	"net/url"
	"strconv"

	"github.com/ncobase/taskapi/config"

	"github.com/go-sql-driver/mysql"
)

// BuildDSN returns the node's source, composing one from host, port, user,
// password and name when source is empty.
func BuildDSN(driver string, n *config.DBNode) (string, error) {
	if n.Source != "" {
		return n.Source, nil
	}

	switch driver {
	case "mysql":
		c := mysql.NewConfig()
		c.User = n.User
		c.Passwd = n.Password
		c.Net = "tcp"
		c.Addr = net.JoinHostPort(n.Host, strconv.Itoa(portOrDefault(n.Port, 3306)))
		c.DBName = n.Name
		c.ParseTime = true
		c.Params = map[string]string{"charset": "utf8mb4"}
		return c.FormatDSN(), nil
	case "postgres":
		u := &url.URL{
			Scheme:   "postgres",
			Host:     net.JoinHostPort(n.Host, strconv.Itoa(portOrDefault(n.Port, 5432))),
			Path:     "/" + n.Name,
			RawQuery: "sslmode=disable",
		}
		if n.User != "" {
			u.User = url.UserPassword(n.User, n.Password)
		}
		return u.String(), nil
	case "sqlite3":
		name := n.Name
		if name == "" {
			name = "taskapi.db"
		}
		return fmt.Sprintf("file:%s?_fk=1", name), nil
	default:
		return "", fmt.Errorf("data: cannot build dsn for driver %q", driver)
	}
}

func portOrDefault(port, def int) int {
	if port > 0 {
		return port
	}
	return def
}
