package repository

import (
	"context"
	"sync"
	"time"

	"github.com/deppfellow/printgallery/internal/errs"
	"github.com/deppfellow/printgallery/internal/model"
)

// MemoryStore keeps every table in process memory.
//
// Relationship lookups are linear scans over the slices, and the unique
// slug/username rules of the SQL schema are enforced by hand.
type MemoryStore struct {
	mu         sync.RWMutex
	categories []model.Category
	images     []model.Image
	users      []model.User

	nextTopicID int32
	nextImageID int32
	nextUserID  int32

	now func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		now: func() time.Time { return time.Now().UTC().Truncate(time.Second) },
	}
}

// NewMemoryRepositories exposes one store through the repository interfaces.
func NewMemoryRepositories(store *MemoryStore) *Repositories {
	return &Repositories{
		Categories: memoryCategories{store},
		Images:     memoryImages{store},
		Users:      memoryUsers{store},
	}
}

func duplicate(entity, code, column, label string) *errs.Error {
	return errs.ConstraintViolation(code, "A "+entity+" with this "+label+" already exists", column)
}

type memoryCategories struct{ s *MemoryStore }

func (m memoryCategories) List(_ context.Context) ([]model.Category, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	return append([]model.Category{}, m.s.categories...), nil
}

func (m memoryCategories) GetBySlug(_ context.Context, slug string) (*model.Category, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	for _, c := range m.s.categories {
		if c.Slug == slug {
			return &c, nil
		}
	}
	return nil, errs.NotFound("category")
}

func (m memoryCategories) slugTaken(slug string, except int32) bool {
	for _, c := range m.s.categories {
		if c.Slug == slug && c.TopicID != except {
			return true
		}
	}
	return false
}

func (m memoryCategories) Create(_ context.Context, in model.NewCategory) (*model.Category, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	if m.slugTaken(in.Slug, 0) {
		return nil, duplicate("Category", "CATEGORY_ALREADY_EXISTS", "slug", "Slug")
	}

	m.s.nextTopicID++
	c := model.Category{TopicID: m.s.nextTopicID, Slug: in.Slug, Description: in.Description}
	m.s.categories = append(m.s.categories, c)
	return &c, nil
}

func (m memoryCategories) DeleteBySlug(_ context.Context, slug string) (*model.Category, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	for i, c := range m.s.categories {
		if c.Slug == slug {
			m.s.categories = append(m.s.categories[:i], m.s.categories[i+1:]...)
			return &c, nil
		}
	}
	return nil, errs.NotFound("category")
}

func (m memoryCategories) Update(_ context.Context, topicID int32, patch model.Patch[model.Category]) (*model.Category, error) {
	if patch.Column == "" {
		return nil, errs.InvalidArgument("valueToUpdate", "valueToUpdate is required")
	}

	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	for i := range m.s.categories {
		if m.s.categories[i].TopicID != topicID {
			continue
		}
		updated := m.s.categories[i]
		patch.Apply(&updated)
		if m.slugTaken(updated.Slug, topicID) {
			return nil, duplicate("Category", "CATEGORY_ALREADY_EXISTS", "slug", "Slug")
		}
		m.s.categories[i] = updated
		return &updated, nil
	}
	return nil, errs.NotFound("category")
}

type memoryImages struct{ s *MemoryStore }

func (m memoryImages) filter(keep func(model.Image) bool) []model.Image {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	out := []model.Image{}
	for _, img := range m.s.images {
		if keep(img) {
			out = append(out, img)
		}
	}
	return out
}

func (m memoryImages) List(_ context.Context) ([]model.Image, error) {
	return m.filter(func(model.Image) bool { return true }), nil
}

func (m memoryImages) GetByID(_ context.Context, imageID int32) (*model.Image, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	for _, img := range m.s.images {
		if img.ImageID == imageID {
			return &img, nil
		}
	}
	return nil, errs.NotFound("image")
}

func (m memoryImages) ListByCategory(_ context.Context, slug string) ([]model.Image, error) {
	return m.filter(func(img model.Image) bool {
		return img.Category != nil && *img.Category == slug
	}), nil
}

func (m memoryImages) ListByPoster(_ context.Context, username string) ([]model.Image, error) {
	return m.filter(func(img model.Image) bool { return img.PostedBy == username }), nil
}

func (m memoryImages) Create(_ context.Context, in model.NewImage) (*model.Image, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	m.s.nextImageID++
	img := model.Image{
		ImageID:      m.s.nextImageID,
		Title:        in.Title,
		Description:  in.Description,
		DisplayName:  in.DisplayName,
		PostedBy:     in.PostedBy,
		DateUploaded: m.s.now(),
		Price:        in.Price,
		ThumbnailURL: in.ThumbnailURL,
		ObjImageURL:  in.ObjImageURL,
		Format:       in.Format,
		Category:     in.Category,
	}
	m.s.images = append(m.s.images, img)
	return &img, nil
}

func (m memoryImages) Delete(_ context.Context, imageID int32) (*model.Image, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	for i, img := range m.s.images {
		if img.ImageID == imageID {
			m.s.images = append(m.s.images[:i], m.s.images[i+1:]...)
			return &img, nil
		}
	}
	return nil, errs.NotFound("image")
}

func (m memoryImages) Update(_ context.Context, imageID int32, patch model.Patch[model.Image]) (*model.Image, error) {
	if patch.Column == "" {
		return nil, errs.InvalidArgument("valueToChange", "valueToChange is required")
	}

	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	for i := range m.s.images {
		if m.s.images[i].ImageID == imageID {
			patch.Apply(&m.s.images[i])
			updated := m.s.images[i]
			return &updated, nil
		}
	}
	return nil, errs.NotFound("image")
}

type memoryUsers struct{ s *MemoryStore }

func (m memoryUsers) List(_ context.Context) ([]model.User, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	return append([]model.User{}, m.s.users...), nil
}

func (m memoryUsers) GetByUsername(_ context.Context, username string) (*model.User, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	for _, u := range m.s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, errs.NotFound("user")
}

func (m memoryUsers) usernameTaken(username string, except int32) bool {
	for _, u := range m.s.users {
		if u.Username == username && u.UserID != except {
			return true
		}
	}
	return false
}

func (m memoryUsers) Create(_ context.Context, in model.NewUser) (*model.User, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	if m.usernameTaken(in.Username, 0) {
		return nil, duplicate("User", "USER_ALREADY_EXISTS", "username", "Username")
	}

	m.s.nextUserID++
	u := model.User{
		UserID:       m.s.nextUserID,
		Username:     in.Username,
		Fullname:     in.Fullname,
		EmailAddress: in.EmailAddress,
		DateJoined:   m.s.now(),
		Location:     in.Location,
		OwnsPrinter:  in.OwnsPrinter != nil && *in.OwnsPrinter,
		DesignerTag:  in.DesignerTag != nil && *in.DesignerTag,
		Avatar:       in.Avatar,
		Rating:       in.Rating,
	}
	m.s.users = append(m.s.users, u)
	return &u, nil
}

func (m memoryUsers) DeleteByUsername(_ context.Context, username string) (*model.User, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	for i, u := range m.s.users {
		if u.Username == username {
			m.s.users = append(m.s.users[:i], m.s.users[i+1:]...)
			return &u, nil
		}
	}
	return nil, errs.NotFound("user")
}

func (m memoryUsers) Update(_ context.Context, userID int32, patch model.Patch[model.User]) (*model.User, error) {
	if patch.Column == "" {
		return nil, errs.InvalidArgument("valueToUpdate", "valueToUpdate is required")
	}

	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	for i := range m.s.users {
		if m.s.users[i].UserID != userID {
			continue
		}
		updated := m.s.users[i]
		patch.Apply(&updated)
		if m.usernameTaken(updated.Username, userID) {
			return nil, duplicate("User", "USER_ALREADY_EXISTS", "username", "Username")
		}
		m.s.users[i] = updated
		return &updated, nil
	}
	return nil, errs.NotFound("user")
}
