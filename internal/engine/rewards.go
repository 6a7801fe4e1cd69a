package engine

import (
	"fmt"
	"strings"

	"github.com/Reiker1894/isekai-system/internal/storage"
)

func (s *Service) Rewards() []storage.Reward {
	out := make([]storage.Reward, len(s.doc.RewardStore))
	copy(out, s.doc.RewardStore)
	return out
}

func (s *Service) AddReward(name string, cost int) (storage.Reward, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return storage.Reward{}, invalidInput("reward name is required")
	}
	if cost <= 0 {
		return storage.Reward{}, invalidInput("reward cost must be positive, got %d", cost)
	}
	if s.rewardIndex(name) >= 0 {
		return storage.Reward{}, StateError{Entity: "reward " + name, State: "already in store", Op: "add"}
	}
	r := storage.Reward{Name: name, Cost: cost}
	s.doc.RewardStore = append(s.doc.RewardStore, r)
	return r, nil
}

func (s *Service) RemoveReward(name string) error {
	i := s.rewardIndex(name)
	if i < 0 {
		return NotFoundError{Kind: "reward", Key: name}
	}
	s.doc.RewardStore = append(s.doc.RewardStore[:i], s.doc.RewardStore[i+1:]...)
	return nil
}

// BuyReward spends dark points. The balance never goes negative.
func (s *Service) BuyReward(name string) (storage.Reward, error) {
	i := s.rewardIndex(name)
	if i < 0 {
		return storage.Reward{}, NotFoundError{Kind: "reward", Key: name}
	}
	r := s.doc.RewardStore[i]
	if s.doc.DarkPoints < r.Cost {
		return storage.Reward{}, fmt.Errorf("%w: %s costs %d, balance %d", ErrInsufficientPoints, r.Name, r.Cost, s.doc.DarkPoints)
	}
	s.doc.DarkPoints -= r.Cost
	s.appendLog(fmt.Sprintf("Recompensa adquirida: %s (-%d Dark Points)", r.Name, r.Cost))
	return r, nil
}

func (s *Service) rewardIndex(name string) int {
	for i, r := range s.doc.RewardStore {
		if r.Name == name {
			return i
		}
	}
	return -1
}
