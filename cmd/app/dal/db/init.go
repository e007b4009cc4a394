package db

import (
	"strings"

	"cliphive.com/cmd/model"
	"cliphive.com/config"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormopentracing "gorm.io/plugin/opentracing"
)

var DB *gorm.DB

// Init opens the shared persistence context. SkipDefaultTransaction is on:
// the command bus owns transaction boundaries, gorm must not add its own
// around single writes.
func Init() {
	var err error
	dsn := mysqlDSN()
	DB, err = gorm.Open(mysql.Open(dsn),
		&gorm.Config{
			PrepareStmt:            true,
			SkipDefaultTransaction: true,
		},
	)
	if err != nil {
		panic(err)
	}
	if err = DB.Use(gormopentracing.New()); err != nil {
		panic(err)
	}

	if err = DB.AutoMigrate(
		&model.Video{},
		&model.Comment{},
		&model.VideoLike{},
		&model.UserProfile{},
	); err != nil {
		panic(err)
	}
}

func mysqlDSN() string {
	c := config.ConfigInfo.Mysql
	charset := c.Charset
	if charset == "" {
		charset = "utf8mb4"
	}
	return strings.Join([]string{c.Username, ":", c.Password, "@tcp(", c.Addr, ")/",
		c.Database, "?charset=", charset, "&parseTime=True&loc=Local"}, "")
}
