package mirror

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/AnshRaj112/heritage-backend/internal/models"
)

const (
	storyCollection = "story_mirror"
	placeCollection = "place_mirror"

	defaultMongoTimeout = 5 * time.Second
)

// inserter is satisfied by *mongo.Collection.
type inserter interface {
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
}

type storyDocument struct {
	RecordID     int64     `bson:"record_id"`
	Name         string    `bson:"name"`
	Age          string    `bson:"age"`
	Location     string    `bson:"location"`
	StoryTitle   string    `bson:"story_title"`
	StorySummary string    `bson:"story_summary"`
	StoryMoral   string    `bson:"story_moral"`
	CreatedAt    time.Time `bson:"created_at"`
}

type placeDocument struct {
	RecordID               int64     `bson:"record_id"`
	Name                   string    `bson:"name"`
	Age                    string    `bson:"age"`
	Location               string    `bson:"location"`
	PlaceName              string    `bson:"place_name"`
	PlaceDescription       string    `bson:"place_description"`
	HistoricalSignificance string    `bson:"historical_significance,omitempty"`
	HasImage               bool      `bson:"has_image"`
	CreatedAt              time.Time `bson:"created_at"`
}

// Mongo stores a document copy of every submission. Image bytes are not
// copied; has_image records whether one was uploaded.
type Mongo struct {
	stories inserter
	places  inserter
	timeout time.Duration
}

func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{
		stories: db.Collection(storyCollection),
		places:  db.Collection(placeCollection),
		timeout: defaultMongoTimeout,
	}
}

func (m *Mongo) MirrorStory(ctx context.Context, story models.Story) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	_, err := m.stories.InsertOne(ctx, storyDocument{
		RecordID:     story.ID,
		Name:         story.Name,
		Age:          story.Age,
		Location:     story.Location,
		StoryTitle:   story.StoryTitle,
		StorySummary: story.StorySummary,
		StoryMoral:   story.StoryMoral,
		CreatedAt:    story.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("mirror story to mongo: %w", err)
	}
	return nil
}

func (m *Mongo) MirrorPlace(ctx context.Context, place models.PlaceHistory, image []byte) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	_, err := m.places.InsertOne(ctx, placeDocument{
		RecordID:               place.ID,
		Name:                   place.Name,
		Age:                    place.Age,
		Location:               place.Location,
		PlaceName:              place.PlaceName,
		PlaceDescription:       place.PlaceDescription,
		HistoricalSignificance: place.HistoricalSignificance,
		HasImage:               len(image) > 0,
		CreatedAt:              place.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("mirror place history to mongo: %w", err)
	}
	return nil
}
