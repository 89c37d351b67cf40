package mirror

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/AnshRaj112/heritage-backend/internal/models"
)

type recordingMirror struct {
	stories []models.Story
	places  []models.PlaceHistory
	err     error
}

func (r *recordingMirror) MirrorStory(ctx context.Context, story models.Story) error {
	r.stories = append(r.stories, story)
	return r.err
}

func (r *recordingMirror) MirrorPlace(ctx context.Context, place models.PlaceHistory, image []byte) error {
	r.places = append(r.places, place)
	return r.err
}

func TestMultiCallsEveryMirrorAndJoinsErrors(t *testing.T) {
	failing := &recordingMirror{err: errors.New("disk full")}
	ok := &recordingMirror{}
	m := Multi{failing, ok}

	err := m.MirrorStory(context.Background(), models.Story{Name: "Ravi"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Len(t, failing.stories, 1)
	assert.Len(t, ok.stories, 1)

	ok.err = nil
	failing.err = nil
	require.NoError(t, m.MirrorPlace(context.Background(), models.PlaceHistory{Name: "Ravi"}, nil))
	assert.Len(t, ok.places, 1)
}

type fakeUploader struct {
	params uploader.UploadParams
	body   []byte
	err    error
}

func (f *fakeUploader) Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error) {
	f.params = params
	if r, ok := file.(io.Reader); ok {
		f.body, _ = io.ReadAll(r)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &uploader.UploadResult{SecureURL: "https://res.example/img.jpg"}, nil
}

func TestCloudinaryMirrorUsesDiskLayout(t *testing.T) {
	up := &fakeUploader{}
	c := newCloudinary(up, zap.NewNop())
	place := models.PlaceHistory{ID: 4, Name: "Sita Devi", PlaceName: "Golconda Fort", CreatedAt: created}

	require.NoError(t, c.MirrorPlace(context.Background(), place, []byte("jpeg-bytes")))
	assert.Equal(t, "place_histories/Sita_Devi", up.params.Folder)
	assert.Equal(t, "Golconda_Fort_20240309_140507", up.params.PublicID)
	assert.True(t, bytes.Equal([]byte("jpeg-bytes"), up.body))

	up.err = errors.New("quota")
	assert.Error(t, c.MirrorPlace(context.Background(), place, []byte("x")))
	assert.NoError(t, c.MirrorPlace(context.Background(), place, nil))
	assert.NoError(t, c.MirrorStory(context.Background(), models.Story{}))
}

type fakeCollection struct {
	docs []interface{}
}

func (f *fakeCollection) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error) {
	f.docs = append(f.docs, document)
	return &mongo.InsertOneResult{}, nil
}

func TestMongoMirrorStoresDocuments(t *testing.T) {
	stories, places := &fakeCollection{}, &fakeCollection{}
	m := &Mongo{stories: stories, places: places, timeout: defaultMongoTimeout}

	require.NoError(t, m.MirrorStory(context.Background(), models.Story{ID: 1, Name: "Ravi", StoryTitle: "The Clever Fox"}))
	require.NoError(t, m.MirrorPlace(context.Background(), models.PlaceHistory{ID: 2, PlaceName: "Fort"}, []byte("img")))

	require.Len(t, stories.docs, 1)
	doc := stories.docs[0].(storyDocument)
	assert.Equal(t, int64(1), doc.RecordID)
	assert.Equal(t, "The Clever Fox", doc.StoryTitle)

	require.Len(t, places.docs, 1)
	pdoc := places.docs[0].(placeDocument)
	assert.True(t, pdoc.HasImage)
	assert.Equal(t, "Fort", pdoc.PlaceName)
}
