// Package database opens the MySQL pool the repositories run on.
package database

import (
	"context"
	"database/sql"
	"net"
	"time"

	"github.com/go-sql-driver/mysql"
)

// Open connects to MySQL and verifies the connection before returning the
// pool. All DATETIME columns surface as UTC time.Time values.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	dc := mysql.NewConfig()
	dc.User = user
	dc.Passwd = pass
	dc.Net = "tcp"
	dc.Addr = net.JoinHostPort(host, port)
	dc.DBName = name
	dc.ParseTime = true
	dc.Loc = time.UTC
	dc.Params = map[string]string{"charset": "utf8mb4"}

	db, err := sql.Open("mysql", dc.FormatDSN())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
