package persistence

import "context"

// RosterRepository stores named roster documents.
type RosterRepository interface {
	SaveRoster(ctx context.Context, name string, doc Document) error
	GetRoster(ctx context.Context, name string) (Document, error)
	ListRosters(ctx context.Context) ([]string, error)
	DeleteRoster(ctx context.Context, name string) error
}
