package mirror

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/AnshRaj112/heritage-backend/internal/models"
	"github.com/AnshRaj112/heritage-backend/pkg/utils"
)

// Disk writes mirrored artifacts below a root directory:
//
//	stories/<name>/story_<stamp>.json
//	place_histories/<name>/<place>_<stamp>.jpg
//	admin_data/<file>
//
// where <name> and <place> are sanitized with utils.SanitizeFilename.
type Disk struct {
	root string
}

func NewDisk(root string) *Disk {
	if root == "" {
		root = "."
	}
	return &Disk{root: root}
}

// Root returns the directory the mirror writes into.
func (d *Disk) Root() string {
	return d.root
}

// EnsureLayout creates the three top-level directories.
func (d *Disk) EnsureLayout() error {
	for _, dir := range []string{StoriesDir, PlaceHistoriesDir, AdminDataDir} {
		if err := os.MkdirAll(filepath.Join(d.root, dir), 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}

// storyArtifact is the on-disk JSON shape of a story.
type storyArtifact struct {
	Name         string `json:"name"`
	Age          string `json:"age"`
	Location     string `json:"location"`
	StoryTitle   string `json:"story_title"`
	StorySummary string `json:"story_summary"`
	StoryMoral   string `json:"story_moral"`
	Timestamp    string `json:"timestamp"`
}

// StoryPath returns the artifact path of a story relative to the root.
func StoryPath(story models.Story) string {
	return filepath.Join(StoriesDir, utils.SanitizeFilename(story.Name), "story_"+Stamp(story.CreatedAt)+".json")
}

// ImagePath returns the artifact path of a place image relative to the root.
// The extension is always .jpg regardless of the uploaded format.
func ImagePath(place models.PlaceHistory) string {
	return filepath.Join(PlaceHistoriesDir, utils.SanitizeFilename(place.Name),
		utils.SanitizeFilename(place.PlaceName)+"_"+Stamp(place.CreatedAt)+".jpg")
}

func (d *Disk) MirrorStory(ctx context.Context, story models.Story) error {
	data, err := MarshalIndent(storyArtifact{
		Name:         story.Name,
		Age:          story.Age,
		Location:     story.Location,
		StoryTitle:   story.StoryTitle,
		StorySummary: story.StorySummary,
		StoryMoral:   story.StoryMoral,
		Timestamp:    story.CreatedAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("encode story artifact: %w", err)
	}
	return d.write(StoryPath(story), data)
}

// MirrorPlace writes the uploaded image, if any. Place text is not mirrored to disk.
func (d *Disk) MirrorPlace(ctx context.Context, place models.PlaceHistory, image []byte) error {
	if len(image) == 0 {
		return nil
	}
	return d.write(ImagePath(place), image)
}

// WriteAdminFile stores data as admin_data/<name> and returns the path
// relative to the root.
func (d *Disk) WriteAdminFile(name string, data []byte) (string, error) {
	rel := filepath.Join(AdminDataDir, filepath.Base(name))
	if err := d.write(rel, data); err != nil {
		return "", err
	}
	return rel, nil
}

// FindImage returns the root-relative path of the image mirrored for a
// submitter and place, or "" when there is none. When several uploads match,
// the one with the latest timestamp suffix wins.
func (d *Disk) FindImage(name, placeName string) (string, error) {
	dir := filepath.Join(PlaceHistoriesDir, utils.SanitizeFilename(name))
	prefix := utils.SanitizeFilename(placeName) + "_"
	entries, err := os.ReadDir(filepath.Join(d.root, dir))
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read image dir: %w", err)
	}

	// "Fort_" also prefixes "Fort_Old_<stamp>.jpg"; keep exact stamps only.
	var names []string
	for _, e := range entries {
		base := e.Name()
		if e.IsDir() || !strings.HasPrefix(base, prefix) || !strings.HasSuffix(base, ".jpg") {
			continue
		}
		stamp := strings.TrimSuffix(strings.TrimPrefix(base, prefix), ".jpg")
		if _, err := time.Parse(stampLayout, stamp); err == nil {
			names = append(names, base)
		}
	}
	if len(names) == 0 {
		return "", nil
	}
	sort.Strings(names)
	return filepath.Join(dir, names[len(names)-1]), nil
}

// write stores data at rel through a temp file in the same directory so a
// reader never sees a partial artifact.
func (d *Disk) write(rel string, data []byte) error {
	target := filepath.Join(d.root, rel)
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".mirror-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", rel, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", rel, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", rel, err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		return fmt.Errorf("rename %s: %w", rel, err)
	}
	return nil
}

// MarshalIndent encodes v as two-space indented UTF-8 JSON without escaping
// HTML characters.
func MarshalIndent(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
