package db

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store — долговременное хранилище чатов и событий.
type Store struct {
	db *gorm.DB
}

// Open открывает sqlite-базу и прогоняет миграции.
func Open(path string) (*Store, error) {
	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к базе данных: %w", err)
	}

	if err := gdb.AutoMigrate(&Chat{}, &Event{}); err != nil {
		return nil, fmt.Errorf("ошибка миграции таблиц: %w", err)
	}

	log.Println("✅ База данных инициализирована")
	return &Store{db: gdb}, nil
}
