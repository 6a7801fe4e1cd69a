package root

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Reiker1894/isekai-system/internal/engine"
	"github.com/Reiker1894/isekai-system/internal/storage"
)

type cliEnv struct {
	dataFile  string
	backupDir string
}

func newCLIEnv(t *testing.T) cliEnv {
	t.Helper()
	dir := t.TempDir()
	env := cliEnv{
		dataFile:  filepath.Join(dir, "system_memory.json"),
		backupDir: filepath.Join(dir, "backups"),
	}
	t.Setenv("ISEKAI_DATA_FILE", env.dataFile)
	t.Setenv("ISEKAI_BACKUP_DIR", env.backupDir)
	t.Setenv("ISEKAI_STORE", "json")
	t.Setenv("ISEKAI_AUTO_BACKUP", "true")
	return env
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := runCLI(t, args...)
	if err != nil {
		t.Fatalf("isekai %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

func loadDoc(t *testing.T, path string) *storage.Document {
	t.Helper()
	doc, err := storage.NewJSONStore(path).Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return doc
}

func TestInitSeedsWorldAndBacksUp(t *testing.T) {
	env := newCLIEnv(t)

	out := mustRun(t, "init")
	if !strings.Contains(out, "World initialized") {
		t.Fatalf("output=%q", out)
	}
	doc := loadDoc(t, env.dataFile)
	if len(doc.Domains) != 5 || len(doc.World.Realms) != 7 || len(doc.RewardStore) != 3 {
		t.Fatalf("domains=%d realms=%d rewards=%d", len(doc.Domains), len(doc.World.Realms), len(doc.RewardStore))
	}

	names, err := storage.NewBackups(env.backupDir).List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(names) != 1 {
		t.Fatalf("backups=%v, want the daily snapshot", names)
	}

	if out := mustRun(t, "status"); !strings.Contains(out, "Character Sheet") {
		t.Fatalf("status output=%q", out)
	}
}

func TestMissionAddAndComplete(t *testing.T) {
	env := newCLIEnv(t)
	mustRun(t, "init")

	out := mustRun(t, "mission", "add", "Leer un capítulo", "--type", "daily", "--diff", "2", "--domain", "academia")
	if !strings.Contains(out, "Mission added") {
		t.Fatalf("add output=%q", out)
	}
	if out := mustRun(t, "mission", "list"); !strings.Contains(out, "[0] Leer un capítulo") {
		t.Fatalf("list output=%q", out)
	}

	out = mustRun(t, "mission", "done", "daily", "0")
	if !strings.Contains(out, "Mission completed: Leer un capítulo") {
		t.Fatalf("done output=%q", out)
	}
	doc := loadDoc(t, env.dataFile)
	m := doc.Missions[string(engine.MissionDaily)][0]
	if m.Status != engine.StatusCompleted || doc.DarkPoints != m.RewardDark || doc.Stats.Exp != m.RewardExp {
		t.Fatalf("mission=%+v dark=%d exp=%d", m, doc.DarkPoints, doc.Stats.Exp)
	}
	if doc.Domains["academia"].Exp != engine.MissionDomainXPPerDifficulty*m.Difficulty {
		t.Fatalf("academia exp=%d", doc.Domains["academia"].Exp)
	}

	if _, err := runCLI(t, "mission", "done", "daily", "0"); !errors.Is(err, engine.ErrInvalidState) {
		t.Fatalf("second completion err=%v", err)
	}
	if after := loadDoc(t, env.dataFile); after.DarkPoints != doc.DarkPoints {
		t.Fatalf("failed completion changed the document")
	}
}

func TestMissionDoneShowsRewardAndBalance(t *testing.T) {
	env := newCLIEnv(t)
	mustRun(t, "mission", "add", "Correr", "--type", "daily", "--diff", "1")
	mustRun(t, "mission", "add", "Estudiar", "--type", "daily", "--diff", "3")

	mustRun(t, "mission", "done", "daily", "0")
	out := mustRun(t, "mission", "done", "daily", "1")

	doc := loadDoc(t, env.dataFile)
	second := doc.Missions[string(engine.MissionDaily)][1]
	want := fmt.Sprintf("+%d (balance %d)", second.RewardDark, doc.DarkPoints)
	if second.RewardDark == doc.DarkPoints || !strings.Contains(out, want) {
		t.Fatalf("done output=%q, want %q", out, want)
	}
}

func TestFailedActionDoesNotSave(t *testing.T) {
	env := newCLIEnv(t)

	if _, err := runCLI(t, "mission", "add", "Imposible", "--diff", "9"); !errors.Is(err, engine.ErrInvalidInput) {
		t.Fatalf("err=%v, want ErrInvalidInput", err)
	}
	if _, err := os.Stat(env.dataFile); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("document written after a failed action: %v", err)
	}
	if _, err := runCLI(t, "boss", "start", "hydra"); !errors.Is(err, engine.ErrUnknownBoss) {
		t.Fatalf("err=%v, want ErrUnknownBoss", err)
	}
	if _, err := runCLI(t, "boss", "damage", "10"); !errors.Is(err, engine.ErrNoActiveBoss) {
		t.Fatalf("err=%v, want ErrNoActiveBoss", err)
	}
}

func TestBackupRestoreAndChapter(t *testing.T) {
	env := newCLIEnv(t)
	mustRun(t, "init")
	mustRun(t, "backup", "create", "antes")
	mustRun(t, "reward", "add", "Helado", "40")

	if doc := loadDoc(t, env.dataFile); len(doc.RewardStore) != 4 {
		t.Fatalf("rewards=%d, want 4", len(doc.RewardStore))
	}
	mustRun(t, "backup", "restore", "antes")
	if doc := loadDoc(t, env.dataFile); len(doc.RewardStore) != 3 {
		t.Fatalf("rewards after restore=%d, want 3", len(doc.RewardStore))
	}

	if _, err := runCLI(t, "backup", "restore", "nunca"); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing backup err=%v", err)
	}

	out := mustRun(t, "backup", "chapter", "antes")
	if !strings.Contains(out, "CAPÍTULO DEL antes") || !strings.Contains(out, "No había boss activo.") {
		t.Fatalf("chapter=%q", out)
	}
}

func TestDataFlagOverridesEnv(t *testing.T) {
	env := newCLIEnv(t)
	other := filepath.Join(t.TempDir(), "other.json")

	mustRun(t, "--data", other, "emotion", "set", "stress", "130")
	if _, err := os.Stat(env.dataFile); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("env data file written despite --data")
	}
	if got := loadDoc(t, other).Emotion.Get(storage.EmotionStress); got != 100 {
		t.Fatalf("stress=%d, want clamped 100", got)
	}
}

func TestHabitCommands(t *testing.T) {
	env := newCLIEnv(t)
	mustRun(t, "init")
	mustRun(t, "habit", "add", "Meditar", "--effect", "clarity=5", "--domain", "academia=10")

	doc := loadDoc(t, env.dataFile)
	if len(doc.Habits.Definitions) != 1 {
		t.Fatalf("habits=%d", len(doc.Habits.Definitions))
	}
	id := doc.Habits.Definitions[0].ID

	out := mustRun(t, "habit", "toggle", id, "--date", "2025-03-10")
	if !strings.Contains(out, "Meditar done (streak 1)") {
		t.Fatalf("toggle output=%q", out)
	}
	doc = loadDoc(t, env.dataFile)
	if !doc.Habits.DailyLog["2025-03-10"][id] || doc.Domains["academia"].Exp != 10 {
		t.Fatalf("log=%v academia=%d", doc.Habits.DailyLog, doc.Domains["academia"].Exp)
	}
	if _, err := runCLI(t, "habit", "toggle", "missing"); !errors.Is(err, engine.ErrNotFound) {
		t.Fatalf("unknown habit err=%v", err)
	}
}
