package ports

import "github.com/inkpost/blog-system/internal/core/domain"

// Notifier receives notifications emitted by the stores. Implementations
// must not block the caller for long.
type Notifier interface {
	Notify(n domain.Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(n domain.Notification)

func (f NotifierFunc) Notify(n domain.Notification) { f(n) }
