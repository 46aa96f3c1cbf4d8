package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
)

// EventPublisher forwards committed domain events to interested consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...kernel.DomainEvent) error
}
