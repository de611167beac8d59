package mysql

import (
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Open connects to MySQL. TranslateError turns driver duplicate-key errors
// into gorm.ErrDuplicatedKey so repositories can tag them uniformly.
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(mysql.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
}
