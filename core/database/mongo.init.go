package database

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"safety_hub/core/global"
	"safety_hub/core/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Connect kết nối tới MongoDB và trả về client
func Connect(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// Ping để chắc chắn kết nối hoạt động
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client, nil
}

// EnsureDatabaseAndCollections đảm bảo rằng cơ sở dữ liệu và các collection cần thiết tồn tại.
// Nếu các collection không tồn tại, chúng sẽ được tạo ra.
func EnsureDatabaseAndCollections(client *mongo.Client) error {
	dbName := global.ServerConfig.MongoDB_DBName
	log := logger.GetAppLogger()

	// Context tổng 30 giây để duyệt tất cả collections
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := client.Database(dbName)

	// Lấy danh sách tên collection từ global.MongoDB_ColNames bằng reflection
	collections := []string{}
	v := reflect.ValueOf(global.MongoDB_ColNames)
	for i := 0; i < v.NumField(); i++ {
		collections = append(collections, v.Field(i).String())
	}

	collList, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to list collections: %w", err)
	}

	existing := make(map[string]bool, len(collList))
	for _, name := range collList {
		existing[name] = true
	}

	for _, collectionName := range collections {
		if existing[collectionName] {
			continue
		}
		log.Infof("Collection %s chưa tồn tại, tạo mới.", collectionName)
		if err := db.CreateCollection(ctx, collectionName); err != nil {
			return fmt.Errorf("failed to create collection %s: %w", collectionName, err)
		}
	}

	log.Infof("Database and collections are ensured in database: %s", dbName)
	return nil
}

// indexSpec mô tả một index cần đảm bảo trên collection
type indexSpec struct {
	Keys   bson.D
	Unique bool
}

// collectionIndexes định nghĩa các index cho từng collection (key = tên field trong CollectionName)
func collectionIndexes() map[string][]indexSpec {
	return map[string][]indexSpec{
		global.MongoDB_ColNames.Incidents: {
			{Keys: bson.D{{Key: "organizationId", Value: 1}}},
			{Keys: bson.D{{Key: "projectId", Value: 1}}},
			{Keys: bson.D{{Key: "code", Value: 1}}, Unique: true},
		},
		global.MongoDB_ColNames.NotificationRules: {
			{Keys: bson.D{{Key: "isActive", Value: 1}}},
			{Keys: bson.D{{Key: "organizationId", Value: 1}}},
		},
		global.MongoDB_ColNames.Notifications: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "incidentId", Value: 1}}},
		},
		global.MongoDB_ColNames.RecipientContacts: {
			{Keys: bson.D{{Key: "userId", Value: 1}}, Unique: true},
		},
		global.MongoDB_ColNames.ProjectMembers: {
			{Keys: bson.D{{Key: "projectId", Value: 1}, {Key: "userId", Value: 1}}, Unique: true},
		},
		global.MongoDB_ColNames.OrganizationMembers: {
			{Keys: bson.D{{Key: "organizationId", Value: 1}, {Key: "userId", Value: 1}}, Unique: true},
			{Keys: bson.D{{Key: "status", Value: 1}}},
		},
	}
}

// EnsureIndexes tạo các index cần thiết cho các collection
func EnsureIndexes(client *mongo.Client) error {
	dbName := global.ServerConfig.MongoDB_DBName
	log := logger.GetAppLogger()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := client.Database(dbName)

	for collectionName, specs := range collectionIndexes() {
		collection := db.Collection(collectionName)
		for _, spec := range specs {
			indexOpts := options.Index()
			if spec.Unique {
				indexOpts.SetUnique(true)
			}
			if _, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
				Keys:    spec.Keys,
				Options: indexOpts,
			}); err != nil {
				return fmt.Errorf("không thể tạo index cho collection %s: %w", collectionName, err)
			}
		}
		log.WithField("collection", collectionName).Debug("Đã đảm bảo indexes")
	}

	return nil
}
