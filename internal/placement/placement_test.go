package placement

import (
	"testing"

	"github.com/elise-bgn/DownloadsCleaner/internal/category"
	"github.com/elise-bgn/DownloadsCleaner/internal/scanner"
	"github.com/elise-bgn/DownloadsCleaner/internal/testutil"
)

func newTestPlanner(t *testing.T) (*Planner, *testutil.TestFixture) {
	t.Helper()
	fixture := testutil.NewFixture(t)
	return New(fixture.RootDir, category.Default()), fixture
}

func TestDirName(t *testing.T) {
	cases := []struct {
		label string
		want  string
	}{
		{"Images", "Downloaded Images"},
		{"Music", "Downloaded Music"},
		{"Others", "Downloaded Others"},
		{"Folders", "Downloaded Folders"},
	}
	for _, c := range cases {
		if got := DirName(c.label); got != c.want {
			t.Errorf("DirName(%q) = %q, want %q", c.label, got, c.want)
		}
	}
}

// =============================================================================
// Classification Routing Tests
// =============================================================================

func TestPlanForFiles(t *testing.T) {
	planner, fixture := newTestPlanner(t)

	cases := []struct {
		name     string
		category string
		destDir  string
	}{
		{"photo.jpg", "Images", "Downloaded Images"},
		{"track.mp3", "Music", "Downloaded Music"},
		{"clip.mp4", "Videos", "Downloaded Videos"},
		{"report.pdf", "Documents", "Downloaded Documents"},
		{"archive.xyz", "Others", "Downloaded Others"},
		{"README", "Others", "Downloaded Others"},
		{"PHOTO.JPG", "Images", "Downloaded Images"},
	}

	for _, c := range cases {
		plan, err := planner.PlanFor(scanner.Entry{Name: c.name})
		if err != nil {
			t.Fatalf("PlanFor(%q) failed: %v", c.name, err)
		}
		if plan.Category != c.category {
			t.Errorf("%q: category = %q, want %q", c.name, plan.Category, c.category)
		}
		if plan.Dir != fixture.Path(c.destDir) {
			t.Errorf("%q: dir = %q, want %q", c.name, plan.Dir, fixture.Path(c.destDir))
		}
		if plan.Path != fixture.Path(c.destDir+"/"+c.name) {
			t.Errorf("%q: path = %q", c.name, plan.Path)
		}
		if plan.Renamed {
			t.Errorf("%q: unexpected rename with empty destination", c.name)
		}
	}
}

func TestPlanForDirectory(t *testing.T) {
	planner, fixture := newTestPlanner(t)

	plan, err := planner.PlanFor(scanner.Entry{Name: "project", IsDir: true})
	if err != nil {
		t.Fatalf("PlanFor failed: %v", err)
	}

	if plan.Category != FoldersLabel {
		t.Errorf("expected category %q, got %q", FoldersLabel, plan.Category)
	}
	if plan.Path != fixture.Path("Downloaded Folders/project") {
		t.Errorf("unexpected path: %q", plan.Path)
	}
}

func TestPlanForDirectoryIgnoresExtension(t *testing.T) {
	planner, fixture := newTestPlanner(t)

	// A directory named like an image still goes to Folders.
	plan, err := planner.PlanFor(scanner.Entry{Name: "vacation.jpg", IsDir: true})
	if err != nil {
		t.Fatalf("PlanFor failed: %v", err)
	}
	if plan.Dir != fixture.Path("Downloaded Folders") {
		t.Errorf("directory should plan into Downloaded Folders, got %q", plan.Dir)
	}
}

func TestPlanForMultiDotName(t *testing.T) {
	fixture := testutil.NewFixture(t)

	// Classification sees a name's final dot-suffix only, so a ".gz"
	// rule claims backup.tar.gz while a ".tar.gz" rule never matches.
	cases := []struct {
		name     string
		archives []string
		want     string
	}{
		{"tar.gz rule never matches", []string{".tar.gz"}, category.CatchAll},
		{"gz rule claims the name", []string{".gz"}, "Archives"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rules := category.MergeRules(category.DefaultRules(), map[string][]string{
				"Archives": c.archives,
			})
			reg, err := category.NewRegistry(rules)
			if err != nil {
				t.Fatalf("NewRegistry failed: %v", err)
			}

			plan, err := New(fixture.RootDir, reg).PlanFor(scanner.Entry{Name: "backup.tar.gz"})
			if err != nil {
				t.Fatalf("PlanFor failed: %v", err)
			}
			if plan.Category != c.want {
				t.Errorf("category = %q, want %q", plan.Category, c.want)
			}
		})
	}
}

// =============================================================================
// Collision Tests
// =============================================================================

func TestPlanForCollision(t *testing.T) {
	planner, fixture := newTestPlanner(t)
	fixture.CreateFile("Downloaded Documents/notes.txt", []byte("existing"))

	plan, err := planner.PlanFor(scanner.Entry{Name: "notes.txt"})
	if err != nil {
		t.Fatalf("PlanFor failed: %v", err)
	}

	if plan.Path != fixture.Path("Downloaded Documents/notes-1.txt") {
		t.Errorf("expected numbered name, got %q", plan.Path)
	}
	if !plan.Renamed {
		t.Error("expected Renamed to be set")
	}
}

func TestPlanForRepeatedCollisions(t *testing.T) {
	planner, fixture := newTestPlanner(t)
	fixture.CreateFile("Downloaded Documents/notes.txt", []byte("a"))
	fixture.CreateFile("Downloaded Documents/notes-1.txt", []byte("b"))
	fixture.CreateFile("Downloaded Documents/notes-2.txt", []byte("c"))

	plan, err := planner.PlanFor(scanner.Entry{Name: "notes.txt"})
	if err != nil {
		t.Fatalf("PlanFor failed: %v", err)
	}

	if plan.Path != fixture.Path("Downloaded Documents/notes-3.txt") {
		t.Errorf("expected notes-3.txt, got %q", plan.Path)
	}
}

func TestPlanForCollisionKeepsExtension(t *testing.T) {
	planner, fixture := newTestPlanner(t)
	fixture.CreateFile("Downloaded Images/photo.jpg", []byte("x"))

	plan, err := planner.PlanFor(scanner.Entry{Name: "photo.jpg"})
	if err != nil {
		t.Fatalf("PlanFor failed: %v", err)
	}

	if plan.Path != fixture.Path("Downloaded Images/photo-1.jpg") {
		t.Errorf("suffix should come before the extension, got %q", plan.Path)
	}
}

func TestPlanForFolderCollision(t *testing.T) {
	planner, fixture := newTestPlanner(t)
	fixture.CreateDir("Downloaded Folders/project")

	plan, err := planner.PlanFor(scanner.Entry{Name: "project", IsDir: true})
	if err != nil {
		t.Fatalf("PlanFor failed: %v", err)
	}

	if plan.Path != fixture.Path("Downloaded Folders/project-1") {
		t.Errorf("expected project-1, got %q", plan.Path)
	}
}

// =============================================================================
// Reserved Name Tests
// =============================================================================

func TestIsReserved(t *testing.T) {
	planner, _ := newTestPlanner(t)

	reserved := []string{
		"Downloaded Images",
		"Downloaded Music",
		"Downloaded Videos",
		"Downloaded Documents",
		"Downloaded Others",
		"Downloaded Folders",
	}
	for _, name := range reserved {
		if !planner.IsReserved(name) {
			t.Errorf("expected %q to be reserved", name)
		}
	}

	free := []string{
		"Downloads",
		"Downloaded",
		"Downloaded Memes",
		"photo.jpg",
		"downloaded images",
	}
	for _, name := range free {
		if planner.IsReserved(name) {
			t.Errorf("expected %q to not be reserved", name)
		}
	}
}

func TestIsReservedWithCustomCategories(t *testing.T) {
	fixture := testutil.NewFixture(t)
	rules := category.MergeRules(category.DefaultRules(), map[string][]string{
		"Archives": {".zip"},
	})
	reg, err := category.NewRegistry(rules)
	if err != nil {
		t.Fatalf("NewRegistry failed: %v", err)
	}

	planner := New(fixture.RootDir, reg)
	if !planner.IsReserved("Downloaded Archives") {
		t.Error("custom category folder should be reserved")
	}
}

// =============================================================================
// Allocation Edge Cases
// =============================================================================

func TestAllocateMissingDestinationDir(t *testing.T) {
	fixture := testutil.NewFixture(t)

	path, renamed, err := allocate(fixture.Path("Downloaded Music"), "song.mp3")
	if err != nil {
		t.Fatalf("allocate failed: %v", err)
	}
	if renamed {
		t.Error("no collision possible in a missing directory")
	}
	if path != fixture.Path("Downloaded Music/song.mp3") {
		t.Errorf("unexpected path: %q", path)
	}
}
