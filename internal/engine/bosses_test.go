package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/Reiker1894/isekai-system/internal/storage"
)

func TestEmbeddedBossCatalog(t *testing.T) {
	svc, _, _ := newTestService(t)
	cat := svc.BossCatalog()
	if len(cat) != 2 {
		t.Fatalf("catalog size=%d, want 2", len(cat))
	}
	for _, b := range cat {
		if len(b.Phases) != 3 {
			t.Fatalf("boss %s has %d phases, want 3", b.ID, len(b.Phases))
		}
		for i, p := range b.Phases {
			if p.HP <= 0 || p.Attack == "" || p.CounterMission == "" || len(p.Debuff) == 0 {
				t.Fatalf("boss %s phase %d incomplete: %+v", b.ID, i+1, p)
			}
			for k := range p.Debuff {
				if !Attribute(k).IsValid() {
					t.Fatalf("boss %s phase %d debuffs non-attribute %q", b.ID, i+1, k)
				}
			}
		}
	}
}

func TestStartBattleUnknownBoss(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, err := svc.StartBattle("lich")
	if !errors.Is(err, ErrUnknownBoss) {
		t.Fatalf("err=%v, want ErrUnknownBoss", err)
	}
	var ub UnknownBossError
	if !errors.As(err, &ub) || ub.ID != "lich" {
		t.Fatalf("err=%#v", err)
	}
	if _, ok := svc.CurrentBoss(); ok {
		t.Fatalf("boss state set after failed start")
	}
}

func TestStartBattle(t *testing.T) {
	svc, clock, _ := newTestService(t)
	b, err := svc.StartBattle("beso_bruja")
	if err != nil {
		t.Fatalf("StartBattle: %v", err)
	}
	if b.Phase != 1 || b.CurrentHP != 40 || b.TotalPhases != 3 || b.Defeated {
		t.Fatalf("boss=%+v", b)
	}
	if !b.Expires.Equal(clock.Now().Add(30 * 24 * time.Hour)) {
		t.Fatalf("expires=%v, want 30 days out", b.Expires)
	}

	if _, err := svc.StartBattle("dragon_finanzas"); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("second battle err=%v, want ErrInvalidState", err)
	}
}

func TestApplyDamagePhaseRollover(t *testing.T) {
	svc, _, _ := newTestService(t)
	if _, err := svc.StartBattle("beso_bruja"); err != nil {
		t.Fatalf("StartBattle: %v", err)
	}

	res, err := svc.ApplyDamage(50)
	if err != nil {
		t.Fatalf("ApplyDamage: %v", err)
	}
	if !res.PhaseChanged || res.Boss.Phase != 2 || res.Boss.CurrentHP != 60 {
		t.Fatalf("after overkill: %+v", res.Boss)
	}

	res, err = svc.ApplyDamage(10)
	if err != nil {
		t.Fatalf("ApplyDamage: %v", err)
	}
	if res.PhaseChanged || res.Boss.CurrentHP != 50 {
		t.Fatalf("after chip damage: %+v", res.Boss)
	}
	if _, err := svc.ApplyDamage(-1); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("negative damage err=%v", err)
	}
}

func TestApplyDamageVictory(t *testing.T) {
	svc, _, _ := newTestService(t)
	if _, err := svc.StartBattle("beso_bruja"); err != nil {
		t.Fatalf("StartBattle: %v", err)
	}

	var res DamageResult
	for _, dmg := range []int{40, 60, 500} {
		var err error
		res, err = svc.ApplyDamage(dmg)
		if err != nil {
			t.Fatalf("ApplyDamage(%d): %v", dmg, err)
		}
		if res.Boss.CurrentHP < 0 || res.Boss.Phase > res.Boss.TotalPhases {
			t.Fatalf("invalid boss state %+v", res.Boss)
		}
	}
	if !res.Defeated || !res.Boss.Defeated || res.Boss.CurrentHP != 0 || res.Boss.Phase != 3 {
		t.Fatalf("boss not defeated: %+v", res.Boss)
	}
	if res.Level.LevelsGained != 2 {
		t.Fatalf("levels gained=%d, want 2 from 300 exp", res.Level.LevelsGained)
	}
	if countEffects(svc, "Victoria Heroica") != 1 {
		t.Fatalf("missing victory effect")
	}

	if _, err := svc.ApplyDamage(1); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("damage after defeat err=%v, want ErrInvalidState", err)
	}
	if _, err := svc.StartBattle("dragon_finanzas"); err != nil {
		t.Fatalf("start after defeat: %v", err)
	}
}

func TestBossAttackThreshold(t *testing.T) {
	svc, clock, _ := newTestService(t)
	if _, err := svc.StartBattle("beso_bruja"); err != nil {
		t.Fatalf("StartBattle: %v", err)
	}

	res, err := svc.BossAttack()
	if err != nil {
		t.Fatalf("BossAttack: %v", err)
	}
	if res.Attacked || res.Effect != nil {
		t.Fatalf("attacked at average 50: %+v", res)
	}

	mustSetEmotion(t, svc, storage.EmotionStress, 80)
	res, err = svc.BossAttack()
	if err != nil {
		t.Fatalf("BossAttack: %v", err)
	}
	if !res.Attacked || res.Effect == nil {
		t.Fatalf("expected attack: %+v", res)
	}
	if res.Effect.Modifiers["strength"] != -1 || res.Effect.Kind != EffectDebuff {
		t.Fatalf("effect=%+v", res.Effect)
	}
	if !res.Effect.Expires.Equal(clock.Now().Add(24 * time.Hour)) {
		t.Fatalf("attack effect expires=%v, want one day", res.Effect.Expires)
	}
	if got := svc.FinalStats().Strength; got != 9 {
		t.Fatalf("strength=%d, want 9", got)
	}
}

func TestBossOperationsWithoutBoss(t *testing.T) {
	svc, _, _ := newTestService(t)
	if _, err := svc.ApplyDamage(5); !errors.Is(err, ErrNoActiveBoss) {
		t.Fatalf("ApplyDamage err=%v", err)
	}
	if _, err := svc.BossAttack(); !errors.Is(err, ErrNoActiveBoss) {
		t.Fatalf("BossAttack err=%v", err)
	}
	if err := svc.ResetBoss(); !errors.Is(err, ErrNoActiveBoss) {
		t.Fatalf("ResetBoss err=%v", err)
	}
}

func TestResetBoss(t *testing.T) {
	svc, _, _ := newTestService(t)
	if _, err := svc.StartBattle("dragon_finanzas"); err != nil {
		t.Fatalf("StartBattle: %v", err)
	}
	if err := svc.ResetBoss(); err != nil {
		t.Fatalf("ResetBoss: %v", err)
	}
	if _, ok := svc.CurrentBoss(); ok {
		t.Fatalf("boss still set after reset")
	}
}

func TestCustomBossCatalog(t *testing.T) {
	defs, err := ParseBossCatalog([]byte(`[{"id":"slime","name":"Slime","phases":[{"name":"Blob","hp":5,"debuff":{"luck":-1}}]}]`))
	if err != nil {
		t.Fatalf("ParseBossCatalog: %v", err)
	}
	svc := NewService(nil, &scriptedRoller{}, WithBossCatalog(defs))
	if _, err := svc.StartBattle("beso_bruja"); !errors.Is(err, ErrUnknownBoss) {
		t.Fatalf("embedded boss still present: %v", err)
	}
	if _, err := svc.StartBattle("slime"); err != nil {
		t.Fatalf("StartBattle: %v", err)
	}
	res, err := svc.ApplyDamage(5)
	if err != nil {
		t.Fatalf("ApplyDamage: %v", err)
	}
	if !res.Defeated {
		t.Fatalf("single-phase boss not defeated: %+v", res.Boss)
	}

	if _, err := ParseBossCatalog([]byte(`[{"id":"x","phases":[{"hp":0}]}]`)); err == nil {
		t.Fatalf("expected error for zero hp phase")
	}
	if _, err := ParseBossCatalog([]byte(`[{"id":"x","phases":[]}]`)); err == nil {
		t.Fatalf("expected error for boss without phases")
	}
}
