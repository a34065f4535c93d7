package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/couchbase/gocb/v2"
)

type CouchbaseConfig struct {
	ConnStr    string
	Username   string
	Password   string
	BucketName string
	Scope      string
	Collection string
	Timeout    time.Duration
}

// CouchbaseSessions stores sessions as documents with a TTL equal to the
// token lifetime, so expired sessions disappear on their own.
type CouchbaseSessions struct {
	Cluster    *gocb.Cluster
	Bucket     *gocb.Bucket
	Collection *gocb.Collection
	Timeout    time.Duration
}

// ConnectCouchbase opens the cluster and waits for the bucket to be ready.
func ConnectCouchbase(cfg CouchbaseConfig) (*CouchbaseSessions, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	cluster, err := gocb.Connect(cfg.ConnStr, gocb.ClusterOptions{
		Authenticator: gocb.PasswordAuthenticator{
			Username: cfg.Username,
			Password: cfg.Password,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("couchbase connect: %w", err)
	}

	bucket := cluster.Bucket(cfg.BucketName)
	if err := bucket.WaitUntilReady(timeout, nil); err != nil {
		_ = cluster.Close(nil)
		return nil, fmt.Errorf("couchbase bucket %q: %w", cfg.BucketName, err)
	}

	return &CouchbaseSessions{
		Cluster:    cluster,
		Bucket:     bucket,
		Collection: bucket.Scope(cfg.Scope).Collection(cfg.Collection),
		Timeout:    timeout,
	}, nil
}

func (s *CouchbaseSessions) Save(ctx context.Context, key string, session SessionData, ttl time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	_, err := s.Collection.Upsert(key, session, &gocb.UpsertOptions{Context: ctx, Expiry: ttl})
	return err
}

func (s *CouchbaseSessions) Get(ctx context.Context, key string) (SessionData, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	res, err := s.Collection.Get(key, &gocb.GetOptions{Context: ctx})
	if errors.Is(err, gocb.ErrDocumentNotFound) {
		return SessionData{}, ErrSessionNotFound
	}
	if err != nil {
		return SessionData{}, err
	}

	var session SessionData
	if err := res.Content(&session); err != nil {
		return SessionData{}, err
	}
	return session, nil
}

func (s *CouchbaseSessions) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	_, err := s.Collection.Remove(key, &gocb.RemoveOptions{Context: ctx})
	if errors.Is(err, gocb.ErrDocumentNotFound) {
		return ErrSessionNotFound
	}
	return err
}

func (s *CouchbaseSessions) Close() error {
	return s.Cluster.Close(nil)
}
