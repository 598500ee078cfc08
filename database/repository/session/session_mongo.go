package sessionRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tripflow/database"
	"tripflow/utils"

	"go.uber.org/zap"
)

const (
	dbName          = "tripflow"
	sessionCollName = "sessions"
	jobCollName     = "jobs"
)

// MongoSessionRepo is the durable Mongo-backed implementation of
// store.SessionStore. Sessions and jobs survive process restarts; the
// per-session job lock lives on the session document itself.
type MongoSessionRepo struct {
	sessionColl *mongo.Collection
	jobColl     *mongo.Collection
}

// NewMongoSessionRepo creates the repository against the global client.
// The unique id indexes back both lookups and the job-lock upsert.
func NewMongoSessionRepo() *MongoSessionRepo {
	db := database.MongoClient.Database(dbName)
	repo := &MongoSessionRepo{
		sessionColl: db.Collection(sessionCollName),
		jobColl:     db.Collection(jobCollName),
	}
	repo.ensureIndexes()
	return repo
}

func (repo *MongoSessionRepo) ensureIndexes() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	idIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	for _, coll := range []*mongo.Collection{repo.sessionColl, repo.jobColl} {
		if _, err := coll.Indexes().CreateOne(ctx, idIndex); err != nil {
			utils.GetLogger().Warn("Failed to ensure id index",
				zap.String("collection", coll.Name()), zap.Error(err))
		}
	}
}
