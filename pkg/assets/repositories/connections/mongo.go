package dbconnections

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AssetsDBConfig struct {
	ConnectionString string
	Database         string
}

type AssetsDBProductionConnection struct {
	config AssetsDBConfig
	client *mongo.Client
}

var _ AssetsDBConnection = (*AssetsDBProductionConnection)(nil)

func NewAssetsDBProductionConnection(ctx context.Context, config AssetsDBConfig) (*AssetsDBProductionConnection, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(config.ConnectionString))
	if err != nil {
		return nil, err
	}

	return &AssetsDBProductionConnection{
		config: config,
		client: client,
	}, nil
}

func (c *AssetsDBProductionConnection) Collection(collectionName string) *mongo.Collection {
	return c.client.Database(c.config.Database).Collection(collectionName)
}

func (c *AssetsDBProductionConnection) Disconnect(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}
