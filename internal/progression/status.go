package progression

import (
	"github.com/osse101/DreamJournal_Go/internal/domain"
)

// buildStatus derives the ascension view of a profile from the level table
func buildStatus(p *domain.Profile, levels []domain.LevelInfo) *domain.AscensionStatus {
	current, ok := domain.FindLevel(levels, p.Level)
	if !ok {
		current = domain.LevelInfo{Level: p.Level}
	}

	status := &domain.AscensionStatus{
		Level:       p.Level,
		Current:     current,
		Inspiration: p.Inspiration,
		Threshold:   current.RequiredInspiration,
		AtMaxLevel:  p.Level >= domain.MaxLevel,
		SkillPaths:  domain.UnlockedSkillPaths(p.Level),
	}
	if !status.AtMaxLevel {
		if next, ok := domain.FindLevel(levels, p.Level+1); ok {
			status.Next = &next
		}
	}

	status.Eligible = !status.AtMaxLevel && p.Inspiration >= status.Threshold
	if shortfall := status.Threshold - p.Inspiration; shortfall > 0 {
		status.Shortfall = shortfall
	}
	return status
}

// newlyUnlocked lists skill paths opened by moving from one level to the next
func newlyUnlocked(from, to int) []domain.SkillPath {
	var paths []domain.SkillPath
	for _, sp := range domain.SkillPaths {
		if from < sp.MinLevel && to >= sp.MinLevel {
			paths = append(paths, sp)
		}
	}
	return paths
}
