package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownService услуга отсутствует в каталоге
	ErrUnknownService = errors.New("domain: unknown service")

	// ErrNoServices в запросе не выбрано ни одной услуги
	ErrNoServices = errors.New("domain: no services selected")
)

// Service элемент каталога услуг, неизменяем после загрузки
type Service struct {
	ID              string
	Name            string
	DurationMinutes int
}

// Catalog каталог услуг с сохранением порядка из конфигурации
type Catalog struct {
	ordered []Service
	byID    map[string]Service
}

func NewCatalog(services []Service) *Catalog {
	c := &Catalog{
		ordered: make([]Service, 0, len(services)),
		byID:    make(map[string]Service, len(services)),
	}
	for _, s := range services {
		c.ordered = append(c.ordered, s)
		c.byID[s.ID] = s
	}
	return c
}

// All возвращает копию каталога
func (c *Catalog) All() []Service {
	out := make([]Service, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// Get ищет услугу по ID
func (c *Catalog) Get(id string) (Service, bool) {
	s, ok := c.byID[id]
	return s, ok
}

// Resolve находит услуги и суммирует их длительность
func (c *Catalog) Resolve(ids []string) ([]Service, int, error) {
	if len(ids) == 0 {
		return nil, 0, ErrNoServices
	}

	services := make([]Service, 0, len(ids))
	total := 0
	for _, id := range ids {
		s, ok := c.byID[id]
		if !ok {
			return nil, 0, fmt.Errorf("%w: %q", ErrUnknownService, id)
		}
		services = append(services, s)
		total += s.DurationMinutes
	}
	return services, total, nil
}

// ServiceNames имена услуг для уведомлений
func ServiceNames(services []Service) []string {
	names := make([]string, len(services))
	for i, s := range services {
		names[i] = s.Name
	}
	return names
}
