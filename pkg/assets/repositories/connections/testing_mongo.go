package dbconnections

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AssetsDBTestingConnection struct {
	testDBName string
	client     *mongo.Client
}

var _ AssetsDBConnection = (*AssetsDBTestingConnection)(nil)

// NewAssetsDBTestingConnection works on a randomly named database that is
// dropped when the test finishes.
func NewAssetsDBTestingConnection(t *testing.T) *AssetsDBTestingConnection {
	connectionString := os.Getenv("PICTECH_TESTING_MONGO_CONNECTION_STRING")
	if connectionString == "" {
		t.Skip("PICTECH_TESTING_MONGO_CONNECTION_STRING is not set")
	}

	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(connectionString))
	if err != nil {
		t.Fatalf("Cannot connect to mongodb: %s", err)
	}

	testDBName := generateTestDBName(t, client)
	conn := &AssetsDBTestingConnection{testDBName, client}

	t.Cleanup(conn.Cleanup)
	return conn
}

func (c *AssetsDBTestingConnection) Collection(name string) *mongo.Collection {
	return c.client.Database(c.testDBName).Collection(name)
}

func (c *AssetsDBTestingConnection) Cleanup() {
	ctx := context.Background()
	if err := c.client.Database(c.testDBName).Drop(ctx); err != nil {
		panic("Cannot cleanup testing database '" + c.testDBName + "': " + err.Error())
	}

	c.client.Disconnect(ctx)
}

func generateTestDBName(t *testing.T, client *mongo.Client) string {
	databases, err := client.ListDatabaseNames(context.Background(), bson.M{})
	if err != nil {
		t.Fatalf("Cannot fetch database names list: %s", err)
	}

	existing := make(map[string]bool, len(databases))
	for _, name := range databases {
		existing[name] = true
	}

	for i := 0; i < 10; i++ {
		id := uuid.New().String()
		if !existing[id] {
			return id
		}
	}

	t.Fatal("Cannot generate unique test DB name")
	return ""
}
