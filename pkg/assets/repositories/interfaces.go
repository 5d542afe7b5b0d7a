package assetsrepositories

import (
	"context"
	"time"
)

// AssetModel describes one materialized output of a remote task.
type AssetModel struct {
	ObjectName string    `json:"objectName" bson:"objectName"`
	Location   string    `json:"location" bson:"location"`
	Storage    string    `json:"storage" bson:"storage"`
	RequestID  string    `json:"requestId" bson:"requestId"`
	TaskKind   string    `json:"taskKind" bson:"taskKind"`
	SourceURL  string    `json:"sourceUrl" bson:"sourceUrl"`
	MimeType   string    `json:"mimeType" bson:"mimeType"`
	Size       int64     `json:"size" bson:"size"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
}

type AssetsRepository interface {
	CreateAssetInfo(ctx context.Context, info AssetModel) error
	DeleteAssetInfo(ctx context.Context, objectName string) error
	GetAssetInfo(ctx context.Context, objectName string) (AssetModel, error)
	GetAssetInfosOfTask(ctx context.Context, requestID string) ([]AssetModel, error)
}

// AssetsStorage keeps asset bytes. Save overwrites an existing object of the
// same name and returns where the object can be found.
type AssetsStorage interface {
	Name() string
	Save(ctx context.Context, objectName, mimeType string, data []byte) (location string, err error)
	Get(ctx context.Context, objectName string) ([]byte, error)
	Delete(ctx context.Context, objectName string) error
}
