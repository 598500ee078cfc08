package sessionRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tripflow/store"
)

// AcquireJob claims the session for jobID using a conditional update, so
// two concurrent jobs can never both hold the same session.
func (repo *MongoSessionRepo) AcquireJob(ctx context.Context, sessionID, jobID string) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"id": sessionID,
		"$or": []bson.M{
			{"activeJobId": ""},
			{"activeJobId": bson.M{"$exists": false}},
			{"activeJobId": jobID},
		},
	}
	update := bson.M{"$set": bson.M{"activeJobId": jobID}}
	opts := options.FindOneAndUpdate().SetUpsert(true)
	err := repo.sessionColl.FindOneAndUpdate(ctxWithTimeout, filter, update, opts).Err()
	if err == nil || errors.Is(err, mongo.ErrNoDocuments) {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		// Upsert raced against a document held by another job.
		return store.ErrJobConflict
	}
	// A filter miss on an existing document surfaces as a write conflict
	// against the upsert path; treat it as a held lock.
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		return store.ErrJobConflict
	}
	return fmt.Errorf("error acquiring job lock for session %s: %w", sessionID, err)
}

// ReleaseJob clears the active-job marker if jobID still holds it.
func (repo *MongoSessionRepo) ReleaseJob(ctx context.Context, sessionID, jobID string) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": sessionID, "activeJobId": jobID}
	update := bson.M{"$set": bson.M{"activeJobId": ""}}
	if _, err := repo.sessionColl.UpdateOne(ctxWithTimeout, filter, update); err != nil {
		return fmt.Errorf("error releasing job lock for session %s: %w", sessionID, err)
	}
	return nil
}
