package repository

import (
	"github.com/deppfellow/printgallery/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Categories Categories
	Images     Images
	Users      Users
}

// NewRepositories picks the store for the configured driver.
//
// With a database pool on s the Postgres repositories are used; without
// one (database.driver=memory) every repository shares one MemoryStore.
func NewRepositories(s *server.Server) *Repositories {
	if s.DB == nil {
		return NewMemoryRepositories(NewMemoryStore())
	}
	return NewPostgresRepositories(s.DB.Pool)
}

// NewPostgresRepositories builds the SQL repositories over db.
func NewPostgresRepositories(db DBTX) *Repositories {
	return &Repositories{
		Categories: NewCategoryRepository(db),
		Images:     NewImageRepository(db),
		Users:      NewUserRepository(db),
	}
}
