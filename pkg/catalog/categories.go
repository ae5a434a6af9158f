package catalog

import "sync"

// Category is a browsable product grouping. The backend has no categories
// resource; products carry a free-form category name, so the storefront
// ships a built-in set and staff additions live only for the process.
type Category struct {
	Name     string
	ImageRef string
}

func defaultCategories() []Category {
	return []Category{
		{Name: "Home & Garden", ImageRef: "img/categories/home-garden.jpg"},
		{Name: "Fashion", ImageRef: "img/categories/fashion.jpg"},
		{Name: "Kitchenware", ImageRef: "img/categories/kitchenware.jpg"},
	}
}

type categorySet struct {
	mu   sync.Mutex
	list []Category
}

func newCategorySet() *categorySet {
	return &categorySet{list: defaultCategories()}
}

func (s *categorySet) all() []Category {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := make([]Category, len(s.list))
	copy(list, s.list)
	return list
}

// add appends the category unless one with the same name already exists.
func (s *categorySet) add(c Category) error {
	if c.Name == "" {
		return ErrInvalidCategory
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.list {
		if existing.Name == c.Name {
			return nil
		}
	}
	s.list = append(s.list, c)
	return nil
}
