package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/teamspaces/workspace-manager/internal/core/domain"
)

const collectionTenants = "tenants"

type TenantRepository struct {
	col *mongo.Collection
}

func NewTenantRepository(db *mongo.Database) *TenantRepository {
	return &TenantRepository{col: db.Collection(collectionTenants)}
}

// Create inserts a new tenant document. The unique index on subdomain turns
// a registration race into ErrSubdomainExists.
func (r *TenantRepository) Create(ctx context.Context, t *domain.Tenant) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, t); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrSubdomainExists
		}
		return fmt.Errorf("insert tenant: %w", err)
	}
	return nil
}

func (r *TenantRepository) FindByID(ctx context.Context, id string) (*domain.Tenant, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *TenantRepository) FindBySubdomain(ctx context.Context, subdomain string) (*domain.Tenant, error) {
	return r.findOne(ctx, bson.M{"subdomain": subdomain})
}

func (r *TenantRepository) findOne(ctx context.Context, filter bson.M) (*domain.Tenant, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var t domain.Tenant
	if err := r.col.FindOne(ctx, filter).Decode(&t); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTenantNotFound
		}
		return nil, fmt.Errorf("find tenant: %w", err)
	}
	return &t, nil
}
