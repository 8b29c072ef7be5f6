package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/teamspaces/workspace-manager/internal/core/domain"
	"github.com/teamspaces/workspace-manager/internal/core/ports"
)

// ResourceCounter reports committed per-tenant resource counts; the quota
// governor seeds its live counters from it.
type ResourceCounter struct {
	db *mongo.Database
}

func NewResourceCounter(db *mongo.Database) *ResourceCounter {
	return &ResourceCounter{db: db}
}

func (c *ResourceCounter) Count(ctx context.Context, tenantID string, kind ports.ResourceKind) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var col *mongo.Collection
	switch kind {
	case ports.KindUsers:
		col = c.db.Collection(collectionUsers)
	case ports.KindProjects:
		col = c.db.Collection(collectionProjects)
	default:
		return 0, fmt.Errorf("%w: unknown resource kind %q", domain.ErrInvalidInput, kind)
	}

	n, err := col.CountDocuments(ctx, bson.M{"tenant_id": tenantID})
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", kind, err)
	}
	return n, nil
}
