//go:build casbin

package main

import (
	"fmt"
	"log/slog"
	"os"

	gormadapter "github.com/casbin/gorm-adapter/v3"
	_ "github.com/go-sql-driver/mysql"

	casbinauthority "github.com/resourcegate/resourcegate/authority/casbin"
	"github.com/resourcegate/resourcegate/internal/api/rest/handlers"
)

const (
	MysqlUserEnv = "MYSQL_USER"
	MysqlPassEnv = "MYSQL_PASSWORD"
	MysqlHostEnv = "MYSQL_HOST"
	MysqlPortEnv = "MYSQL_PORT"
)

// getConfig returns a string representation of the Casbin configuration model for request, policy, role definitions,
// policy effect, and matchers. Paths are matched with keyMatch so a rule on
// /check/* covers the whole subtree.
func getConfig() string {
	return `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && keyMatch(r.obj, p.obj) && r.act == p.act
`
}

// getMysqlDSN constructs a MySQL Data Source Name (DSN) from environment variables and returns it as a string.
func getMysqlDSN() string {
	mysqlUser := os.Getenv(MysqlUserEnv)
	mysqlPass := os.Getenv(MysqlPassEnv)
	mysqlHost := os.Getenv(MysqlHostEnv)
	mysqlPort := os.Getenv(MysqlPortEnv)
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/", mysqlUser, mysqlPass, mysqlHost, mysqlPort)
}

// newPolicyRepo initializes a new gormadapter.Adapter connected to a MySQL database and seeds default rules.
func newPolicyRepo() (*gormadapter.Adapter, error) {
	a, err := gormadapter.NewAdapter("mysql", getMysqlDSN())
	if err != nil {
		return nil, err
	}

	if err := a.AddPolicy("p", "p", []string{"admin", "/check/*", "read"}); err != nil {
		return nil, err
	}

	if err := a.AddPolicy("p", "p", []string{"admin", "/check/*", "add-node"}); err != nil {
		return nil, err
	}

	if err := a.AddPolicy("p", "p", []string{"admin", "/check/*", "set-property"}); err != nil {
		return nil, err
	}

	if err := a.AddPolicy("p", "p", []string{"admin", "/check/*", "remove"}); err != nil {
		return nil, err
	}

	if err := a.AddPolicy("g", "g", []string{"user1@example.com", "admin"}); err != nil {
		return nil, err
	}

	return a, nil
}

// newSessionOpener initializes a Casbin-backed authority store over MySQL.
func newSessionOpener(logger *slog.Logger) (handlers.SessionOpener, error) {
	logger.Info("initializing authority store with Casbin")

	policyRepo, err := newPolicyRepo()
	if err != nil {
		return nil, err
	}

	return casbinauthority.NewStore(getConfig(), policyRepo)
}
