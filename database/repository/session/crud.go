package sessionRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tripflow/models"
	"tripflow/store"
)

// GetSession retrieves a session document by its id.
func (repo *MongoSessionRepo) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var session models.Session
	err := repo.sessionColl.FindOne(ctxWithTimeout, bson.M{"id": sessionID}).Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("error fetching session %s: %w", sessionID, err)
	}
	return &session, nil
}

// PutSession upserts a session document.
func (repo *MongoSessionRepo) PutSession(ctx context.Context, session *models.Session) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": session.ID}
	update := bson.M{"$set": session}
	opts := options.Update().SetUpsert(true)
	if _, err := repo.sessionColl.UpdateOne(ctxWithTimeout, filter, update, opts); err != nil {
		return fmt.Errorf("error storing session %s: %w", session.ID, err)
	}
	return nil
}

// DeleteSession removes a session document.
func (repo *MongoSessionRepo) DeleteSession(ctx context.Context, sessionID string) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.sessionColl.DeleteOne(ctxWithTimeout, bson.M{"id": sessionID}); err != nil {
		return fmt.Errorf("error deleting session %s: %w", sessionID, err)
	}
	return nil
}

// GetJob retrieves a job document by its id.
func (repo *MongoSessionRepo) GetJob(ctx context.Context, jobID string) (*models.Job, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var job models.Job
	err := repo.jobColl.FindOne(ctxWithTimeout, bson.M{"id": jobID}).Decode(&job)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("error fetching job %s: %w", jobID, err)
	}
	return &job, nil
}

// PutJob upserts a job document.
func (repo *MongoSessionRepo) PutJob(ctx context.Context, job *models.Job) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": job.ID}
	update := bson.M{"$set": job}
	opts := options.Update().SetUpsert(true)
	if _, err := repo.jobColl.UpdateOne(ctxWithTimeout, filter, update, opts); err != nil {
		return fmt.Errorf("error storing job %s: %w", job.ID, err)
	}
	return nil
}
