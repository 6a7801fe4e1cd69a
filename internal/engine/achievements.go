package engine

import (
	"github.com/Reiker1894/isekai-system/internal/storage"
)

// Achievement represents a badge the character can earn.
type Achievement struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Earned      bool
}

// AchievementChecker derives earned badges from a document snapshot.
type AchievementChecker struct {
	doc *storage.Document
}

func NewAchievementChecker(doc *storage.Document) *AchievementChecker {
	return &AchievementChecker{doc: doc}
}

// GetAchievements returns all achievements with their earned status.
func (c *AchievementChecker) GetAchievements() []Achievement {
	return []Achievement{
		// Level milestones
		c.levelAchievement("first_steps", "Primeros Pasos", "Alcanza el nivel 2", "🌱", 2),
		c.levelAchievement("awakened", "Despertar", "Alcanza el nivel 5", "🌿", 5),
		c.levelAchievement("hunter", "Cazador", "Alcanza el nivel 10", "⭐", 10),
		c.levelAchievement("monarch", "Monarca", "Alcanza el nivel 20", "💫", 20),

		// Mission milestones
		c.missionAchievement("first_mission", "Primera Misión", "Completa 1 misión", "✓", 1),
		c.missionAchievement("productive", "Productivo", "Completa 10 misiones", "📋", 10),
		c.missionAchievement("relentless", "Implacable", "Completa 50 misiones", "🏅", 50),

		// Domains
		c.domainAchievement("specialist", "Especialista", "Un dominio en nivel 3", "🎓", 3),
		c.milestoneAchievement("milestone", "Hito Alcanzado", "Desbloquea un hito de dominio", "🗺"),

		// Battles and habits
		c.bossAchievement("boss_slayer", "Matajefes", "Derrota a un boss", "🏆"),
		c.streakAchievement("streak_week", "Semana Perfecta", "Racha de 7 días en un hábito", "🔁", StreakBonusInterval),
	}
}

// CountEarned returns how many achievements have been earned.
func (c *AchievementChecker) CountEarned() int {
	count := 0
	for _, a := range c.GetAchievements() {
		if a.Earned {
			count++
		}
	}
	return count
}

// CountTotal returns total number of achievements.
func (c *AchievementChecker) CountTotal() int {
	return len(c.GetAchievements())
}

func (c *AchievementChecker) levelAchievement(id, name, desc, icon string, level int) Achievement {
	earned := c.doc.Stats.Level >= level
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

func (c *AchievementChecker) missionAchievement(id, name, desc, icon string, count int) Achievement {
	done := 0
	for _, list := range c.doc.Missions {
		for _, m := range list {
			if m.Status == StatusCompleted {
				done++
			}
		}
	}
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: done >= count}
}

func (c *AchievementChecker) domainAchievement(id, name, desc, icon string, level int) Achievement {
	earned := false
	for _, d := range c.doc.Domains {
		if d != nil && d.Level >= level {
			earned = true
			break
		}
	}
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

func (c *AchievementChecker) milestoneAchievement(id, name, desc, icon string) Achievement {
	earned := false
	for _, d := range c.doc.Domains {
		if d != nil && len(d.Unlocked) > 0 {
			earned = true
			break
		}
	}
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

func (c *AchievementChecker) bossAchievement(id, name, desc, icon string) Achievement {
	earned := c.doc.Boss != nil && c.doc.Boss.Defeated
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

func (c *AchievementChecker) streakAchievement(id, name, desc, icon string, days int) Achievement {
	earned := false
	for _, n := range c.doc.Habits.Streaks {
		if n >= days {
			earned = true
			break
		}
	}
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

// Achievements is a convenience wrapper over the service's document.
func (s *Service) Achievements() []Achievement {
	return NewAchievementChecker(s.doc).GetAchievements()
}
