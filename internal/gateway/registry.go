package gateway

import (
	"fmt"
	"net/url"
)

// Registry — статическая таблица "логическое имя сервиса -> адрес".
// Заменяет runtime service discovery: адреса приходят из конфига
// один раз при старте шлюза.
type Registry map[string]*url.URL

func NewRegistry(services map[string]string) (Registry, error) {
	reg := make(Registry, len(services))
	for name, raw := range services {
		u, err := url.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("gateway: invalid address for %s: %w", name, err)
		}
		if u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("gateway: address for %s must be absolute, got %q", name, raw)
		}
		reg[name] = u
	}
	return reg, nil
}

// Resolve возвращает адрес сервиса по логическому имени.
func (r Registry) Resolve(name string) (*url.URL, bool) {
	u, ok := r[name]
	return u, ok
}
