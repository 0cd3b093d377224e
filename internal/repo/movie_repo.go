package repo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/s84/movie-catalog/internal/domain"
)

func (s *Store) CreateMovie(ctx context.Context, m *domain.Movie) error {
	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now
	if m.Comments == nil {
		m.Comments = []domain.Comment{}
	}

	res, err := s.colMovies.InsertOne(ctx, m)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		m.ID = oid
	}
	return nil
}

func (s *Store) ListMovies(ctx context.Context) ([]domain.Movie, error) {
	cur, err := s.colMovies.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []domain.Movie{}
	for cur.Next(ctx) {
		var m domain.Movie
		if err := cur.Decode(&m); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, cur.Err()
}

func (s *Store) FindMovieByID(ctx context.Context, id primitive.ObjectID) (*domain.Movie, error) {
	var m domain.Movie
	err := s.colMovies.FindOne(ctx, bson.M{"_id": id}).Decode(&m)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// UpdateMovie applies the given whitelisted fields and returns the updated
// document, or (nil, nil) when the movie does not exist.
func (s *Store) UpdateMovie(ctx context.Context, id primitive.ObjectID, fields bson.M) (*domain.Movie, error) {
	fields["updated_at"] = time.Now().UTC()

	res := s.colMovies.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": fields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var m domain.Movie
	if err := res.Decode(&m); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (s *Store) DeleteMovie(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := s.colMovies.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount == 1, nil
}

// AddComment appends atomically with $push, so two concurrent writers cannot
// lose each other's comment. Returns the full comment list after the append,
// or (nil, nil) when the movie does not exist.
func (s *Store) AddComment(ctx context.Context, movieID primitive.ObjectID, c domain.Comment) ([]domain.Comment, error) {
	now := time.Now().UTC()
	c.ID = primitive.NewObjectID()
	c.CreatedAt = now
	c.UpdatedAt = now

	res := s.colMovies.FindOneAndUpdate(ctx,
		bson.M{"_id": movieID},
		bson.M{
			"$push": bson.M{"comments": c},
			"$set":  bson.M{"updated_at": now},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var m domain.Movie
	if err := res.Decode(&m); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return m.Comments, nil
}

// RemoveComment pulls the comment by its embedded _id and returns the
// remaining list. (nil, ErrNotFound) means the movie is gone; a list of the
// same length as before means the comment id did not match (callers check
// existence first, so that only happens on a concurrent delete).
func (s *Store) RemoveComment(ctx context.Context, movieID, commentID primitive.ObjectID) ([]domain.Comment, error) {
	res := s.colMovies.FindOneAndUpdate(ctx,
		bson.M{"_id": movieID},
		bson.M{
			"$pull": bson.M{"comments": bson.M{"_id": commentID}},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var m domain.Movie
	if err := res.Decode(&m); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if m.Comments == nil {
		m.Comments = []domain.Comment{}
	}
	return m.Comments, nil
}
