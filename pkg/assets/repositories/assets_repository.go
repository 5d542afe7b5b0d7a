package assetsrepositories

import (
	"context"
	"errors"

	dbconnections "github.com/thebartekbanach/pictech/pkg/assets/repositories/connections"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const assetsCollection = "assets"

type assetsRepository struct {
	conn dbconnections.AssetsDBConnection
}

var _ AssetsRepository = (*assetsRepository)(nil)

func NewAssetsRepository(conn dbconnections.AssetsDBConnection) AssetsRepository {
	return &assetsRepository{conn}
}

func (repo *assetsRepository) CreateAssetInfo(ctx context.Context, info AssetModel) error {
	collection := repo.conn.Collection(assetsCollection)

	result := collection.FindOne(ctx, bson.M{"objectName": info.ObjectName})
	if err := result.Err(); err != mongo.ErrNoDocuments {
		if err != nil {
			return err
		}
		return ErrAssetInfoAlreadyExists
	}

	_, err := collection.InsertOne(ctx, info)
	return err
}

func (repo *assetsRepository) DeleteAssetInfo(ctx context.Context, objectName string) error {
	collection := repo.conn.Collection(assetsCollection)

	result, err := collection.DeleteOne(ctx, bson.M{"objectName": objectName})
	if err != nil {
		return err
	}

	if result.DeletedCount == 0 {
		return ErrAssetInfoNotFound
	}

	return nil
}

func (repo *assetsRepository) GetAssetInfo(ctx context.Context, objectName string) (AssetModel, error) {
	collection := repo.conn.Collection(assetsCollection)

	var info AssetModel
	if err := collection.FindOne(ctx, bson.M{"objectName": objectName}).Decode(&info); err != nil {
		if err == mongo.ErrNoDocuments {
			return AssetModel{}, ErrAssetInfoNotFound
		}

		return AssetModel{}, err
	}

	return info, nil
}

func (repo *assetsRepository) GetAssetInfosOfTask(ctx context.Context, requestID string) ([]AssetModel, error) {
	collection := repo.conn.Collection(assetsCollection)

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := collection.Find(ctx, bson.M{"requestId": requestID}, findOptions)
	if err != nil {
		return nil, err
	}

	infos := []AssetModel{}
	if err := cursor.All(ctx, &infos); err != nil {
		return nil, err
	}

	return infos, nil
}

var (
	ErrAssetInfoNotFound      = errors.New("asset info not found")
	ErrAssetInfoAlreadyExists = errors.New("asset info already exists")
)
